package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ireserve/ireserve-api/internal/core/domain"
	"github.com/ireserve/ireserve-api/internal/core/ports"
	"github.com/ireserve/ireserve-api/internal/core/token"
)

// AdminService implements the admin account lifecycle: registration, login,
// token refresh, logout, and the super-admin-gated CRUD operations.
type AdminService struct {
	repo     ports.AdminRepository
	tokens   *token.Manager
	registry ports.RefreshTokenRegistry
	logger   zerolog.Logger
}

func NewAdminService(repo ports.AdminRepository, tokens *token.Manager, registry ports.RefreshTokenRegistry, logger zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, tokens: tokens, registry: registry, logger: logger}
}

// Register persists a new admin with a hashed password. Registration never
// issues tokens. Uniqueness of username and email is store-enforced.
func (s *AdminService) Register(ctx context.Context, in ports.RegisterAdminInput) (*domain.Admin, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin := &domain.Admin{
		ProfilePicture: in.ProfilePicture,
		Firstname:      in.Firstname,
		MiddleInitial:  in.MiddleInitial,
		Lastname:       in.Lastname,
		Username:       in.Username,
		Email:          in.Email,
		PasswordHash:   string(hash),
		IsSuperAdmin:   in.IsSuperAdmin,
		Status:         domain.AdminActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, admin)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("admin registered")
	return created, nil
}

// Login resolves the admin by username and compares the password first; the
// active-status check runs only after credentials matched, so a wrong
// password and an inactive account remain distinguishable failures.
func (s *AdminService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if admin.Status != domain.AdminActive {
		return nil, domain.ErrAccountInactive
	}

	// Admin access tokens carry no role claim; super-admin status is
	// re-read from the store on every privileged request.
	access, err := s.tokens.IssueAccess(admin.ID, "")
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(admin.ID)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Register(ctx, refresh); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", admin.Username).Msg("admin logged in")
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Profile returns the admin record for the authenticated subject.
func (s *AdminService) Profile(ctx context.Context, id string) (*domain.Admin, error) {
	return s.repo.FindByID(ctx, id)
}

// Refresh issues a new access token. Registry membership gates the request
// ahead of cryptographic verification; there is no refresh-token rotation.
func (s *AdminService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrTokenMissing
	}

	active, err := s.registry.IsActive(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if !active {
		return "", domain.ErrTokenInvalid
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", domain.ErrTokenInvalid
	}

	return s.tokens.IssueAccess(claims.Subject, "")
}

// Logout revokes the refresh token. Revoking an unknown token succeeds.
func (s *AdminService) Logout(ctx context.Context, refreshToken string) error {
	return s.registry.Revoke(ctx, refreshToken)
}

func (s *AdminService) List(ctx context.Context) ([]domain.Admin, error) {
	return s.repo.List(ctx)
}

func (s *AdminService) Get(ctx context.Context, id string) (*domain.Admin, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update. Unique fields may change but never to an
// empty value; a supplied password is rehashed before storage.
func (s *AdminService) Update(ctx context.Context, id string, in ports.UpdateAdminInput) (*domain.Admin, error) {
	if in.Username != nil && *in.Username == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", domain.ErrInvalidInput)
	}
	if in.Email != nil && *in.Email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", domain.ErrInvalidInput)
	}

	update := ports.AdminUpdate{
		ProfilePicture: in.ProfilePicture,
		Firstname:      in.Firstname,
		MiddleInitial:  in.MiddleInitial,
		Lastname:       in.Lastname,
		Username:       in.Username,
		Email:          in.Email,
		IsSuperAdmin:   in.IsSuperAdmin,
	}

	if in.Status != nil {
		status := domain.AdminStatus(*in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: status must be one of active, inactive, suspended", domain.ErrInvalidInput)
		}
		update.Status = &status
	}

	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("%w: password cannot be empty", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		update.PasswordHash = &hashed
	}

	return s.repo.Update(ctx, id, update)
}

// Deactivate soft-deletes the admin by moving it to the inactive status.
func (s *AdminService) Deactivate(ctx context.Context, id string) (*domain.Admin, error) {
	admin, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("admin_id", id).Msg("admin deactivated")
	return admin, nil
}
