package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ireserve/ireserve-api/internal/core/domain"
	"github.com/ireserve/ireserve-api/internal/core/ports"
)

type stubAdminRepo struct {
	findByID func(ctx context.Context, id string) (*domain.Admin, error)
}

func (r *stubAdminRepo) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	return r.findByID(ctx, id)
}

func (r *stubAdminRepo) Create(context.Context, *domain.Admin) (*domain.Admin, error) {
	return nil, errors.New("not implemented")
}

func (r *stubAdminRepo) FindByUsername(context.Context, string) (*domain.Admin, error) {
	return nil, errors.New("not implemented")
}

func (r *stubAdminRepo) List(context.Context) ([]domain.Admin, error) {
	return nil, errors.New("not implemented")
}

func (r *stubAdminRepo) Update(context.Context, string, ports.AdminUpdate) (*domain.Admin, error) {
	return nil, errors.New("not implemented")
}

func (r *stubAdminRepo) Deactivate(context.Context, string) (*domain.Admin, error) {
	return nil, errors.New("not implemented")
}

func runSuperAdmin(t *testing.T, repo ports.AdminRepository, subjectID string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if subjectID != "" {
		c.Set("subject_id", subjectID)
	}

	called := false
	mw := SuperAdmin(repo)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestSuperAdmin_Allows(t *testing.T) {
	repo := &stubAdminRepo{findByID: func(_ context.Context, id string) (*domain.Admin, error) {
		if id != "admin_1" {
			t.Fatalf("unexpected lookup id: %s", id)
		}
		return &domain.Admin{ID: id, IsSuperAdmin: true}, nil
	}}

	rec, called := runSuperAdmin(t, repo, "admin_1")
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSuperAdmin_ForbidsRegularAdmin(t *testing.T) {
	repo := &stubAdminRepo{findByID: func(_ context.Context, id string) (*domain.Admin, error) {
		return &domain.Admin{ID: id, IsSuperAdmin: false}, nil
	}}

	rec, called := runSuperAdmin(t, repo, "admin_1")
	if called {
		t.Fatalf("next handler should not be called")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestSuperAdmin_ForbidsUnknownSubject(t *testing.T) {
	repo := &stubAdminRepo{findByID: func(context.Context, string) (*domain.Admin, error) {
		return nil, domain.ErrAdminNotFound
	}}

	rec, _ := runSuperAdmin(t, repo, "ghost")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestSuperAdmin_StoreFaultIsInternal(t *testing.T) {
	repo := &stubAdminRepo{findByID: func(context.Context, string) (*domain.Admin, error) {
		return nil, errors.New("connection reset")
	}}

	rec, _ := runSuperAdmin(t, repo, "admin_1")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
