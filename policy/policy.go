// Package policy holds the authorization predicates evaluated before a handler
// runs. Predicates are checked in order and the first denial wins.
package policy

import (
	"context"
	"net/http"
	"strings"

	"github.com/yeremiapane/lunch-vote/models"
)

const (
	// APIVersionHeader is the request header a client uses to declare its API version.
	APIVersionHeader = "API-VERSION"
	// DefaultAPIVersion is assumed when the header is missing.
	DefaultAPIVersion = "latest"
)

// SupportedAPIVersions lists the versions this server accepts.
var SupportedAPIVersions = []string{DefaultAPIVersion}

const (
	ReasonNotAuthenticated = "Authentication credentials were not provided."
	ReasonBadAPIVersion    = "Unsupported API version."
	ReasonCannotVote       = "You do not have permission to perform this action."
)

// Request is the part of an HTTP request the predicates look at.
type Request struct {
	// UserID is the authenticated principal, 0 when anonymous.
	UserID     uint
	APIVersion string
}

func (r Request) Authenticated() bool {
	return r.UserID != 0
}

type Decision struct {
	Allowed bool
	Status  int
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true, Status: http.StatusOK}
}

func Deny(status int, reason string) Decision {
	return Decision{Allowed: false, Status: status, Reason: reason}
}

type Predicate interface {
	Evaluate(ctx context.Context, req Request) Decision
}

// PredicateFunc adapts a plain function to Predicate.
type PredicateFunc func(ctx context.Context, req Request) Decision

func (f PredicateFunc) Evaluate(ctx context.Context, req Request) Decision {
	return f(ctx, req)
}

// Evaluate runs preds in order and stops at the first denial.
func Evaluate(ctx context.Context, req Request, preds ...Predicate) Decision {
	for _, p := range preds {
		if d := p.Evaluate(ctx, req); !d.Allowed {
			return d
		}
	}
	return Allow()
}

// Authenticated denies anonymous requests.
func Authenticated() Predicate {
	return PredicateFunc(func(_ context.Context, req Request) Decision {
		if !req.Authenticated() {
			return Deny(http.StatusUnauthorized, ReasonNotAuthenticated)
		}
		return Allow()
	})
}

// APIVersion allows requests whose declared version is in supported. A missing
// header counts as DefaultAPIVersion.
func APIVersion(supported ...string) Predicate {
	if len(supported) == 0 {
		supported = SupportedAPIVersions
	}
	return PredicateFunc(func(_ context.Context, req Request) Decision {
		version := strings.TrimSpace(req.APIVersion)
		if version == "" {
			version = DefaultAPIVersion
		}
		for _, v := range supported {
			if v == version {
				return Allow()
			}
		}
		return Deny(http.StatusForbidden, ReasonBadAPIVersion)
	})
}

type ProfileFinder interface {
	FindProfileByUserID(ctx context.Context, userID uint) (*models.EmployeeProfile, error)
}

// CanVote allows only principals with an employee profile. Any lookup failure
// denies.
func CanVote(profiles ProfileFinder) Predicate {
	return PredicateFunc(func(ctx context.Context, req Request) Decision {
		if !req.Authenticated() {
			return Deny(http.StatusForbidden, ReasonCannotVote)
		}
		profile, err := profiles.FindProfileByUserID(ctx, req.UserID)
		if err != nil || profile == nil {
			return Deny(http.StatusForbidden, ReasonCannotVote)
		}
		return Allow()
	})
}
