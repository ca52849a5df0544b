package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/domain/user"
	"github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/infrastructure/repository/memory"
	usermock "github.com/AbhiyanshuSingh/ISL-Fantasy-App/internal/mocks/domain/user"
	"github.com/stretchr/testify/mock"
)

func newAuthServiceForTest(repo user.Repository) *AuthService {
	service := NewAuthService(repo, fixedIssuer{}, &sequenceIDGenerator{prefix: "user"}, testLogger)
	service.now = func() time.Time { return time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC) }
	return service
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	store := memory.NewStore()
	service := newAuthServiceForTest(store.Users())

	registered, err := service.Register(t.Context(), RegisterInput{Username: " alice ", Password: "pw-123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Username != "alice" || registered.IsAdmin {
		t.Fatalf("unexpected user: %+v", registered)
	}
	if registered.PasswordHash != user.HashPassword("pw-123") {
		t.Fatalf("password must be stored hashed")
	}

	session, err := service.Login(t.Context(), "ALICE", "pw-123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token != "token-"+registered.ID || session.User.ID != registered.ID {
		t.Fatalf("unexpected session: %+v", session)
	}
	if !session.ExpiresAt.Equal(time.Date(2026, 10, 18, 11, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected expiry: %v", session.ExpiresAt)
	}

	profile, err := service.Profile(t.Context(), registered.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Username != "alice" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestAuthService_Register_Rejections(t *testing.T) {
	store := memory.NewStore()
	service := newAuthServiceForTest(store.Users())
	if _, err := service.Register(t.Context(), RegisterInput{Username: "bob", Password: "pw"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	testCases := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{name: "duplicate username", input: RegisterInput{Username: "Bob", Password: "other"}, wantErr: ErrConflict},
		{name: "blank username", input: RegisterInput{Username: "  ", Password: "pw"}, wantErr: ErrInvalidInput},
		{name: "blank password", input: RegisterInput{Username: "carol"}, wantErr: ErrInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.Register(t.Context(), tc.input); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestAuthService_Login_Rejections(t *testing.T) {
	store := memory.NewStore()
	service := newAuthServiceForTest(store.Users())
	if _, err := service.Register(t.Context(), RegisterInput{Username: "bob", Password: "pw"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if _, err := service.Login(t.Context(), "bob", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for bad password, got %v", err)
	}
	if _, err := service.Login(t.Context(), "nobody", "pw"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}
	if _, err := service.Login(t.Context(), "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	store := memory.NewStore()
	service := newAuthServiceForTest(store.Users())

	admin, created, err := service.EnsureAdmin(t.Context(), "admin", "admin123")
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if !created || !admin.IsAdmin {
		t.Fatalf("expected new admin, got created=%v user=%+v", created, admin)
	}

	again, created, err := service.EnsureAdmin(t.Context(), "admin", "changed")
	if err != nil {
		t.Fatalf("ensure admin again: %v", err)
	}
	if created || again.ID != admin.ID {
		t.Fatalf("expected existing admin, got created=%v user=%+v", created, again)
	}
	if again.PasswordHash != user.HashPassword("admin123") {
		t.Fatalf("existing admin password must not change")
	}
}

func TestAuthService_EnsureAdmin_LookupFailure(t *testing.T) {
	repo := usermock.NewRepository(t)
	repo.On("GetByUsername", mock.Anything, "admin").Return(user.User{}, false, errors.New("db down")).Once()

	service := newAuthServiceForTest(repo)
	if _, _, err := service.EnsureAdmin(t.Context(), "admin", "admin123"); err == nil {
		t.Fatalf("expected lookup error")
	}
}
