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

// UserService implements the student/faculty account lifecycle and the
// admin-gated user CRUD operations.
type UserService struct {
	repo     ports.UserRepository
	tokens   *token.Manager
	registry ports.RefreshTokenRegistry
	logger   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, tokens *token.Manager, registry ports.RefreshTokenRegistry, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, registry: registry, logger: logger}
}

// Register persists a new user with a hashed password. Students must carry
// a remaining_time value; the check runs before any write. Registration
// never issues tokens.
func (s *UserService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	if in.IDNumber == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: id_number, email and password are required", domain.ErrInvalidInput)
	}

	userType := domain.UserType(in.UserType)
	if userType == "" {
		userType = domain.UserStudent
	}
	if !userType.Valid() {
		return nil, fmt.Errorf("%w: user_type must be student or faculty", domain.ErrInvalidInput)
	}

	if userType == domain.UserStudent && in.RemainingTime == nil {
		return nil, domain.ErrRemainingTimeRequired
	}

	exists, err := s.repo.ExistsByIDNumber(ctx, in.IDNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var remaining *string
	if userType == domain.UserStudent {
		remaining = in.RemainingTime
	}

	now := time.Now().UTC()
	user := &domain.User{
		IDNumber:      in.IDNumber,
		Firstname:     in.Firstname,
		MiddleInitial: in.MiddleInitial,
		Lastname:      in.Lastname,
		ProgramCourse: in.ProgramCourse,
		Email:         in.Email,
		PasswordHash:  string(hash),
		UserType:      userType,
		RemainingTime: remaining,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("id_number", created.IDNumber).Str("user_type", string(created.UserType)).Msg("user registered")
	return created, nil
}

// Login resolves the user by id_number with soft-deleted records excluded
// from the lookup predicate, then compares the password. Both a missing
// record and a wrong password surface as invalid credentials.
func (s *UserService) Login(ctx context.Context, idNumber, password string) (*ports.TokenPair, error) {
	if idNumber == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindActiveByIDNumber(ctx, idNumber)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccess(user.ID, string(user.UserType))
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.registry.Register(ctx, refresh); err != nil {
		return nil, err
	}

	s.logger.Info().Str("id_number", user.IDNumber).Msg("user logged in")
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Profile returns the record for the authenticated subject. Soft-deleted
// records are invisible here.
func (s *UserService) Profile(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// Refresh issues a new access token. Registry membership gates the request
// ahead of cryptographic verification. The user record is re-loaded so the
// new access token carries the current user_type claim; a subject that no
// longer resolves to a live account is rejected.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
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

	user, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrTokenInvalid
		}
		return "", err
	}
	if user.IsDeleted {
		return "", domain.ErrTokenInvalid
	}

	return s.tokens.IssueAccess(user.ID, string(user.UserType))
}

// Logout revokes the refresh token. Revoking an unknown token succeeds.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	return s.registry.Revoke(ctx, refreshToken)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// Update applies a partial update. Unique fields may change but never to an
// empty value; a supplied password is rehashed before storage.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if in.IDNumber != nil && *in.IDNumber == "" {
		return nil, fmt.Errorf("%w: id_number cannot be empty", domain.ErrInvalidInput)
	}
	if in.Email != nil && *in.Email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", domain.ErrInvalidInput)
	}

	update := ports.UserUpdate{
		IDNumber:      in.IDNumber,
		Firstname:     in.Firstname,
		MiddleInitial: in.MiddleInitial,
		Lastname:      in.Lastname,
		ProgramCourse: in.ProgramCourse,
		Email:         in.Email,
		RemainingTime: in.RemainingTime,
	}

	if in.UserType != nil {
		userType := domain.UserType(*in.UserType)
		if !userType.Valid() {
			return nil, fmt.Errorf("%w: user_type must be student or faculty", domain.ErrInvalidInput)
		}
		update.UserType = &userType
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

// SoftDelete flags the user as deleted; subsequent logins and listings no
// longer see the record.
func (s *UserService) SoftDelete(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Msg("user soft-deleted")
	return user, nil
}
