package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tableside/internal/apperr"
	"tableside/internal/cache"
	"tableside/internal/httpx"
	"tableside/internal/logger"
	"tableside/internal/models"
)

// ErrInvalidCredentials is returned when the email or password does not
// match. Handlers translate it to 401 without leaking which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Store is the storage surface of the auth service
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// session is what we keep in redis under the bearer token
type session struct {
	UserID uuid.UUID   `json:"user_id"`
	Role   models.Role `json:"role"`
}

// Service manages accounts and redis-backed bearer sessions
type Service struct {
	store      Store
	sessions   cache.Cache
	sessionTTL time.Duration
	logger     *logger.Logger
}

// NewService creates the auth service. Sessions live in the cache for
// sessionTTL and are destroyed on logout.
func NewService(store Store, sessions cache.Cache, sessionTTL time.Duration, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     log,
	}
}

// Register creates a customer account. Emails are stored lowercase.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email: %w", apperr.ErrAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user_registered", "new account created", httpx.RequestID(ctx), map[string]interface{}{
		"user_id": user.ID.String(),
	})
	return user, nil
}

// Login verifies credentials and issues an opaque session token.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token := uuid.NewString()
	payload, err := json.Marshal(session{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.sessions.Set(ctx, s.sessionKey(token), payload, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &models.LoginResponse{Token: token, User: user}, nil
}

// Logout destroys the session behind the token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Del(ctx, s.sessionKey(token))
}

// Resolve looks a bearer token up and returns the identity behind it,
// or ErrInvalidCredentials when the session is missing or expired.
func (s *Service) Resolve(ctx context.Context, token string) (uuid.UUID, models.Role, error) {
	raw, err := s.sessions.Get(ctx, s.sessionKey(token))
	if err != nil {
		return uuid.Nil, "", err
	}
	if raw == "" {
		return uuid.Nil, "", ErrInvalidCredentials
	}

	var sess session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return sess.UserID, sess.Role, nil
}

// Profile returns the account behind an authenticated request
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

func (s *Service) sessionKey(token string) string {
	return s.sessions.GenerateKey("session", token)
}
