// Package token issues and verifies the two JWT kinds used for sessions.
// Access and refresh tokens are signed with independent secrets so a token
// of one kind can never verify as the other.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ireserve/ireserve-api/internal/core/domain"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims is the resolved identity carried by a verified token.
type Claims struct {
	// Subject is the store-assigned identifier of the actor.
	Subject string
	// Role is the user_type claim when present. Admin tokens carry none.
	Role string
}

// Manager signs and verifies access and refresh tokens. Issuing is pure:
// registering a refresh token with the registry is the caller's job.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewManager builds a Manager. Non-positive TTLs fall back to the defaults
// (15 minutes access, 7 days refresh).
func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Manager {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccess signs a short-lived access token. The user_type claim is set
// only when role is non-empty; admin subjects pass an empty role.
func (m *Manager) IssueAccess(subjectID, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":  subjectID,
		"exp": time.Now().Add(m.accessTTL).Unix(),
	}
	if role != "" {
		claims["user_type"] = role
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.accessSecret)
}

// IssueRefresh signs a long-lived refresh token carrying only the subject.
func (m *Manager) IssueRefresh(subjectID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  subjectID,
		"exp": time.Now().Add(m.refreshTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.refreshSecret)
}

// VerifyAccess checks signature and expiry against the access secret.
func (m *Manager) VerifyAccess(raw string) (Claims, error) {
	return m.verify(raw, m.accessSecret)
}

// VerifyRefresh checks signature and expiry against the refresh secret.
// Registry membership is a separate, prior check owned by the caller.
func (m *Manager) VerifyRefresh(raw string) (Claims, error) {
	return m.verify(raw, m.refreshSecret)
}

func (m *Manager) verify(raw string, secret []byte) (Claims, error) {
	if raw == "" {
		return Claims{}, domain.ErrTokenMissing
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return Claims{}, domain.ErrTokenInvalid
	}

	subject, _ := claims["id"].(string)
	if subject == "" {
		return Claims{}, domain.ErrTokenInvalid
	}
	role, _ := claims["user_type"].(string)

	return Claims{Subject: subject, Role: role}, nil
}
