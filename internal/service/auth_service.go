package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bookshelf-service/internal/auth"
	"github.com/spec-kit/bookshelf-service/internal/domain"
	"github.com/spec-kit/bookshelf-service/internal/events"
	"github.com/spec-kit/bookshelf-service/internal/repository"
	apperrors "github.com/spec-kit/bookshelf-service/pkg/util"
)

// Hash of a throwaway value. Compared against when the username does not
// exist so failed logins cost the same either way.
const dummyPasswordHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// AuthService coordinates registration, login and token refresh.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, dispatcher events.Dispatcher, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, dispatcher: dispatcher, bcryptCost: bcryptCost}
}

// Register creates a new account.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, apperrors.NewConflict("username already registered", nil)
		}
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{Username: user.Username})
	return user, nil
}

// Login authenticates credentials and issues a token pair. An unknown
// username and a wrong password collapse into the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = auth.ComparePassword(dummyPasswordHash, password)
			return domain.TokenPair{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return domain.TokenPair{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return domain.TokenPair{}, apperrors.NewUnauthorized("invalid credentials")
	}

	return s.tokens.GeneratePair(user.Username)
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is never rotated; the submitted one is returned
// unchanged.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	username, err := s.tokens.ExtractUsername(refreshToken)
	if err != nil {
		return domain.TokenPair{}, apperrors.NewUnauthorized("invalid or expired refresh token")
	}

	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TokenPair{}, apperrors.NewUnauthorized("unknown account")
		}
		return domain.TokenPair{}, err
	}

	claims, err := s.tokens.ParseToken(refreshToken)
	if err != nil || claims.Kind != domain.TokenKindRefresh {
		return domain.TokenPair{}, apperrors.NewUnauthorized("invalid or expired refresh token")
	}

	accessToken, _, err := s.tokens.GenerateToken(username, domain.TokenKindAccess)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
