package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/user"
	idgen "github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/id"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/platform/logging"
)

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(principal user.Principal, now time.Time) (token string, expiresAt time.Time, err error)
}

type RegisterInput struct {
	Username string
	Password string
}

// Session is the result of a successful login.
type Session struct {
	User      user.User
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	userRepo user.Repository
	issuer   TokenIssuer
	idGen    idgen.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewAuthService(userRepo user.Repository, issuer TokenIssuer, idGen idgen.Generator, logger *logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
		idGen:    idGen,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	return s.createUser(ctx, input, false)
}

// Login checks the password and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	u, exists, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		recordSpanError(span, err)
		return Session{}, fmt.Errorf("get user by username: %w", err)
	}
	hash := user.HashPassword(password)
	if !exists || subtle.ConstantTimeCompare([]byte(hash), []byte(u.PasswordHash)) != 1 {
		s.logger.WarnContext(ctx, "login rejected", "username", username)
		return Session{}, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	token, expiresAt, err := s.issuer.Issue(u.Principal(), s.now().UTC())
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	return Session{User: u, Token: token, ExpiresAt: expiresAt}, nil
}

// Profile returns the stored user behind an authenticated principal.
func (s *AuthService) Profile(ctx context.Context, userID string) (user.User, error) {
	u, exists, err := s.userRepo.GetByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return u, nil
}

// EnsureAdmin creates the admin account when it does not exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (user.User, bool, error) {
	username = strings.TrimSpace(username)
	existing, exists, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return user.User{}, false, fmt.Errorf("get admin user: %w", err)
	}
	if exists {
		if !existing.IsAdmin {
			s.logger.Warn("admin username belongs to a regular user", "username", username)
		}
		return existing, false, nil
	}

	created, err := s.createUser(ctx, RegisterInput{Username: username, Password: password}, true)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			existing, _, getErr := s.userRepo.GetByUsername(ctx, username)
			if getErr != nil {
				return user.User{}, false, fmt.Errorf("get admin user: %w", getErr)
			}
			return existing, false, nil
		}
		return user.User{}, false, err
	}

	s.logger.Info("admin user created", "username", username, "user_id", created.ID)
	return created, true, nil
}

func (s *AuthService) createUser(ctx context.Context, input RegisterInput, isAdmin bool) (user.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" {
		return user.User{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if input.Password == "" {
		return user.User{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	userID, err := s.idGen.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	u := user.User{
		ID:           userID,
		Username:     input.Username,
		PasswordHash: user.HashPassword(input.Password),
		IsAdmin:      isAdmin,
		CreatedAt:    s.now().UTC(),
	}
	if err := u.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return user.User{}, fmt.Errorf("%w: username %q is taken", ErrConflict, input.Username)
		}
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}
