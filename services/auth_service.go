package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/lunch-vote/config"
	"github.com/yeremiapane/lunch-vote/models"
	"github.com/yeremiapane/lunch-vote/repository"
	"github.com/yeremiapane/lunch-vote/utils"
	"golang.org/x/crypto/bcrypt"
)

const msgDuplicateUsername = "A user with that username already exists."

type RegisterInput struct {
	Username string
	Password string
	Email    string
	UserType string
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AuthService struct {
	users repository.UserRepository
	cfg   *config.Config

	// Cost is the bcrypt work factor for new passwords.
	Cost int

	// dummyHash is compared against when no account matches so unknown
	// usernames cost the same as wrong passwords.
	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg, Cost: bcrypt.DefaultCost}
}

func (s *AuthService) secret() []byte {
	return []byte(s.cfg.JWTSecret)
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	verr := &ValidationError{}

	username := strings.TrimSpace(in.Username)
	switch {
	case username == "":
		verr.Add("username", "This field may not be blank.")
	case len(username) > 150:
		verr.Add("username", "Ensure this field has no more than 150 characters.")
	}
	if in.Password == "" {
		verr.Add("password", "This field may not be blank.")
	}

	withProfile := false
	switch in.UserType {
	case models.UserTypeBasic:
	case models.UserTypeEmployee:
		withProfile = true
	case "":
		verr.Add("user_type", "This field is required.")
	default:
		verr.Add("user_type", fmt.Sprintf("\"%s\" is not a valid choice.", in.UserType))
	}

	if err := verr.errOrNil(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.Cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    strings.TrimSpace(in.Email),
		Password: string(hashed),
	}
	if err := s.users.InsertUnique(ctx, user, withProfile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewValidationError("username", msgDuplicateUsername)
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"username":  user.Username,
		"user_type": in.UserType,
	}).Info("user registered")
	return user, nil
}

// IssueToken exchanges credentials for an access and refresh token. The
// identifier is matched against usernames first, then against the email of
// users holding an employee profile.
func (s *AuthService) IssueToken(ctx context.Context, identifier, password string) (*TokenPair, error) {
	user, err := s.resolveUser(ctx, identifier)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("resolve user: %w", err)
		}
		s.burnCompare(password)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		utils.InfoLogger.WithField("user_id", user.ID).Info("token request with wrong password")
		return nil, ErrInvalidCredentials
	}

	access, err := utils.GenerateToken(user.ID, utils.TokenTypeAccess, s.secret(), s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateToken(user.ID, utils.TokenTypeRefresh, s.secret(), s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// resolveUser falls back to employee email because profiles carry no username
// of their own; basic accounts are never matched by email.
func (s *AuthService) resolveUser(ctx context.Context, identifier string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, repository.ErrNotFound
	}
	user, err := s.users.FindByUsername(ctx, identifier)
	if !errors.Is(err, repository.ErrNotFound) {
		return user, err
	}
	return s.users.FindEmployeeByEmail(ctx, identifier)
}

func (s *AuthService) burnCompare(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("lunch-vote-placeholder"), s.Cost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

// Refresh returns a new access token for a valid refresh token whose user
// still exists.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := utils.ParseToken(refreshToken, utils.TokenTypeRefresh, s.secret())
	if err != nil {
		return "", ErrInvalidToken
	}
	if _, err := s.users.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", fmt.Errorf("look up user %d: %w", claims.UserID, err)
	}
	return utils.GenerateToken(claims.UserID, utils.TokenTypeAccess, s.secret(), s.cfg.AccessTokenTTL)
}
