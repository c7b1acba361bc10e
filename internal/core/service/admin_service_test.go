package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ireserve/ireserve-api/internal/core/domain"
	"github.com/ireserve/ireserve-api/internal/core/ports"
	"github.com/ireserve/ireserve-api/internal/core/token"
)

type stubRegistry struct {
	tokens map[string]struct{}
}

func newStubRegistry() *stubRegistry {
	return &stubRegistry{tokens: make(map[string]struct{})}
}

func (r *stubRegistry) Register(_ context.Context, token string) error {
	r.tokens[token] = struct{}{}
	return nil
}

func (r *stubRegistry) IsActive(_ context.Context, token string) (bool, error) {
	_, ok := r.tokens[token]
	return ok, nil
}

func (r *stubRegistry) Revoke(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

type stubAdminRepo struct {
	admins map[string]*domain.Admin
	nextID int
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func cloneAdmin(a *domain.Admin) *domain.Admin {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.Username == admin.Username || a.Email == admin.Email {
			return nil, domain.ErrAdminExists
		}
	}
	copy := cloneAdmin(admin)
	r.nextID++
	copy.ID = fmt.Sprintf("admin_%d", r.nextID)
	r.admins[copy.ID] = cloneAdmin(copy)
	return cloneAdmin(copy), nil
}

func (r *stubAdminRepo) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return cloneAdmin(a), nil
}

func (r *stubAdminRepo) FindByUsername(_ context.Context, username string) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.Username == username {
			return cloneAdmin(a), nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) List(_ context.Context) ([]domain.Admin, error) {
	out := make([]domain.Admin, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAdminRepo) Update(_ context.Context, id string, update ports.AdminUpdate) (*domain.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	if update.Username != nil {
		a.Username = *update.Username
	}
	if update.Email != nil {
		a.Email = *update.Email
	}
	if update.PasswordHash != nil {
		a.PasswordHash = *update.PasswordHash
	}
	if update.IsSuperAdmin != nil {
		a.IsSuperAdmin = *update.IsSuperAdmin
	}
	if update.Status != nil {
		a.Status = *update.Status
	}
	return cloneAdmin(a), nil
}

func (r *stubAdminRepo) Deactivate(_ context.Context, id string) (*domain.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	a.Status = domain.AdminInactive
	return cloneAdmin(a), nil
}

func newAdminService(repo ports.AdminRepository, registry ports.RefreshTokenRegistry) *AdminService {
	tokens := token.NewManager("access-secret", "refresh-secret", 0, 0)
	return NewAdminService(repo, tokens, registry, zerolog.Nop())
}

func registerAdmin(t *testing.T, svc *AdminService, username, password string, super bool) *domain.Admin {
	t.Helper()
	admin, err := svc.Register(context.Background(), ports.RegisterAdminInput{
		Firstname:    "Test",
		Lastname:     "Admin",
		Username:     username,
		Email:        username + "@x.com",
		Password:     password,
		IsSuperAdmin: super,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return admin
}

func TestAdminService_Register_HashesPassword(t *testing.T) {
	svc := newAdminService(newStubAdminRepo(), newStubRegistry())

	admin := registerAdmin(t, svc, "a1", "secret1", false)
	if admin.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if admin.Status != domain.AdminActive {
		t.Fatalf("expected active status, got %s", admin.Status)
	}
}

func TestAdminService_Register_Duplicate(t *testing.T) {
	svc := newAdminService(newStubAdminRepo(), newStubRegistry())

	registerAdmin(t, svc, "a1", "secret1", false)
	_, err := svc.Register(context.Background(), ports.RegisterAdminInput{
		Username: "a1", Email: "a1@x.com", Password: "secret2",
	})
	if !errors.Is(err, domain.ErrAdminExists) {
		t.Fatalf("expected ErrAdminExists, got %v", err)
	}
}

func TestAdminService_Login_Success(t *testing.T) {
	registry := newStubRegistry()
	svc := newAdminService(newStubAdminRepo(), registry)

	admin := registerAdmin(t, svc, "a1", "secret1", false)
	pair, err := svc.Login(context.Background(), "a1", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}

	active, _ := registry.IsActive(context.Background(), pair.RefreshToken)
	if !active {
		t.Fatalf("refresh token not registered")
	}

	profile, err := svc.Profile(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if profile.Username != "a1" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestAdminService_Login_WrongPassword(t *testing.T) {
	svc := newAdminService(newStubAdminRepo(), newStubRegistry())

	registerAdmin(t, svc, "a1", "secret1", false)
	if _, err := svc.Login(context.Background(), "a1", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAdminService_Login_InactiveAfterCredentialsMatch(t *testing.T) {
	repo := newStubAdminRepo()
	svc := newAdminService(repo, newStubRegistry())

	admin := registerAdmin(t, svc, "a1", "secret1", false)
	inactive := domain.AdminInactive
	if _, err := repo.Update(context.Background(), admin.ID, ports.AdminUpdate{Status: &inactive}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// Wrong password still reports invalid credentials, not inactive.
	if _, err := svc.Login(context.Background(), "a1", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// Correct password surfaces the inactive account.
	if _, err := svc.Login(context.Background(), "a1", "secret1"); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestAdminService_Refresh_Flow(t *testing.T) {
	svc := newAdminService(newStubAdminRepo(), newStubRegistry())

	registerAdmin(t, svc, "a1", "secret1", false)
	pair, err := svc.Login(context.Background(), "a1", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	access, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if access == "" {
		t.Fatalf("expected new access token")
	}
}

func TestAdminService_Refresh_MissingToken(t *testing.T) {
	svc := newAdminService(newStubAdminRepo(), newStubRegistry())

	if _, err := svc.Refresh(context.Background(), ""); !errors.Is(err, domain.ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestAdminService_Refresh_UnregisteredToken(t *testing.T) {
	svc := newAdminService(newStubAdminRepo(), newStubRegistry())

	registerAdmin(t, svc, "a1", "secret1", false)
	// Cryptographically valid but never registered.
	tokens := token.NewManager("access-secret", "refresh-secret", 0, 0)
	refresh, err := tokens.IssueRefresh("admin_1")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), refresh); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAdminService_Logout_Idempotent(t *testing.T) {
	svc := newAdminService(newStubAdminRepo(), newStubRegistry())

	registerAdmin(t, svc, "a1", "secret1", false)
	pair, err := svc.Login(context.Background(), "a1", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("first logout failed: %v", err)
	}
	if err := svc.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("second logout failed: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid after logout, got %v", err)
	}
}

func TestAdminService_Update_RejectsEmptyUniqueField(t *testing.T) {
	svc := newAdminService(newStubAdminRepo(), newStubRegistry())

	admin := registerAdmin(t, svc, "a1", "secret1", false)
	empty := ""
	if _, err := svc.Update(context.Background(), admin.ID, ports.UpdateAdminInput{Username: &empty}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAdminService_Deactivate(t *testing.T) {
	svc := newAdminService(newStubAdminRepo(), newStubRegistry())

	admin := registerAdmin(t, svc, "a1", "secret1", false)
	updated, err := svc.Deactivate(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if updated.Status != domain.AdminInactive {
		t.Fatalf("expected inactive status, got %s", updated.Status)
	}

	// A deactivated admin can no longer log in.
	if _, err := svc.Login(context.Background(), "a1", "secret1"); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}
