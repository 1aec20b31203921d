package policy

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/lunch-vote/models"
)

type fakeProfiles struct {
	profiles map[uint]*models.EmployeeProfile
	err      error
	calls    int
}

func (f *fakeProfiles) FindProfileByUserID(_ context.Context, userID uint) (*models.EmployeeProfile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func TestAPIVersion(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		allowed bool
	}{
		{name: "missing header defaults to latest", header: "", allowed: true},
		{name: "latest", header: "latest", allowed: true},
		{name: "padded latest", header: " latest ", allowed: true},
		{name: "unknown version", header: "v2", allowed: false},
		{name: "case sensitive", header: "LATEST", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := APIVersion().Evaluate(context.Background(), Request{APIVersion: tt.header})
			assert.Equal(t, tt.allowed, d.Allowed)
			if !tt.allowed {
				assert.Equal(t, http.StatusForbidden, d.Status)
				assert.Equal(t, ReasonBadAPIVersion, d.Reason)
			}
		})
	}
}

func TestAPIVersionCustomSet(t *testing.T) {
	p := APIVersion("latest", "2024-01")
	assert.True(t, p.Evaluate(context.Background(), Request{APIVersion: "2024-01"}).Allowed)
	assert.False(t, p.Evaluate(context.Background(), Request{APIVersion: "2023-01"}).Allowed)
}

func TestAuthenticated(t *testing.T) {
	d := Authenticated().Evaluate(context.Background(), Request{})
	assert.False(t, d.Allowed)
	assert.Equal(t, http.StatusUnauthorized, d.Status)
	assert.Equal(t, ReasonNotAuthenticated, d.Reason)

	assert.True(t, Authenticated().Evaluate(context.Background(), Request{UserID: 7}).Allowed)
}

func TestCanVote(t *testing.T) {
	finder := &fakeProfiles{profiles: map[uint]*models.EmployeeProfile{
		1: {ID: 10, UserID: 1},
		3: nil,
	}}
	ctx := context.Background()

	assert.True(t, CanVote(finder).Evaluate(ctx, Request{UserID: 1}).Allowed)

	d := CanVote(finder).Evaluate(ctx, Request{UserID: 2})
	assert.False(t, d.Allowed, "missing profile must deny")
	assert.Equal(t, http.StatusForbidden, d.Status)

	assert.False(t, CanVote(finder).Evaluate(ctx, Request{UserID: 3}).Allowed, "nil profile must deny")

	calls := finder.calls
	assert.False(t, CanVote(finder).Evaluate(ctx, Request{}).Allowed)
	assert.Equal(t, calls, finder.calls, "anonymous requests skip the lookup")

	failing := &fakeProfiles{err: errors.New("connection refused")}
	assert.False(t, CanVote(failing).Evaluate(ctx, Request{UserID: 1}).Allowed, "lookup errors fail closed")
}

func TestEvaluateShortCircuits(t *testing.T) {
	var order []string
	record := func(name string, d Decision) Predicate {
		return PredicateFunc(func(context.Context, Request) Decision {
			order = append(order, name)
			return d
		})
	}

	d := Evaluate(context.Background(), Request{},
		record("first", Allow()),
		record("second", Deny(http.StatusUnauthorized, "nope")),
		record("third", Deny(http.StatusForbidden, "never reached")),
	)

	assert.False(t, d.Allowed)
	assert.Equal(t, "nope", d.Reason)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestEvaluateAllowsWhenEmpty(t *testing.T) {
	assert.True(t, Evaluate(context.Background(), Request{}).Allowed)
}

func TestVotePolicyChain(t *testing.T) {
	finder := &fakeProfiles{profiles: map[uint]*models.EmployeeProfile{1: {ID: 1, UserID: 1}}}
	chain := []Predicate{Authenticated(), APIVersion(), CanVote(finder)}
	ctx := context.Background()

	assert.Equal(t, http.StatusUnauthorized, Evaluate(ctx, Request{}, chain...).Status)
	assert.Equal(t, ReasonBadAPIVersion, Evaluate(ctx, Request{UserID: 1, APIVersion: "v9"}, chain...).Reason)
	assert.Equal(t, ReasonCannotVote, Evaluate(ctx, Request{UserID: 2}, chain...).Reason)
	assert.True(t, Evaluate(ctx, Request{UserID: 1}, chain...).Allowed)
}
