package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/sponnect/sponnect/api"
	"github.com/sponnect/sponnect/internal/session"
	"github.com/sponnect/sponnect/pkg/models"
	"github.com/sponnect/sponnect/pkg/repository/mock"
)

func TestSessionMiddleware(t *testing.T) {
	router := newTestRouter(mock.NewMocks())

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized},
		{"wrong secret", func() string {
			tok, _ := session.Mint(&session.Session{Role: models.RoleSponsor, UserID: 1}, "othersecret", 0)
			return tok
		}(), http.StatusUnauthorized},
		{"valid token", mintToken(t, models.RoleSponsor, 1, false), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, "/v1/sponsor/campaigns", tt.token, nil)
			mustStatus(t, rec, tt.wantStatus)
		})
	}
}

// The gate checks run in a fixed order: authentication, then role, then the
// flagged bit cached in the session.
func TestRequireRoleOrdering(t *testing.T) {
	router := newTestRouter(mock.NewMocks())

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantError  string
	}{
		{
			name:       "unauthenticated",
			token:      "",
			wantStatus: http.StatusUnauthorized,
			wantError:  "authentication required",
		},
		{
			name:       "wrong role",
			token:      mintToken(t, models.RoleInfluencer, 1, false),
			wantStatus: http.StatusForbidden,
			wantError:  "role not permitted",
		},
		{
			name:       "flagged account",
			token:      mintToken(t, models.RoleSponsor, 1, true),
			wantStatus: http.StatusForbidden,
			wantError:  "account has been flagged",
		},
		{
			// role is checked before the flag, so a flagged influencer
			// hitting a sponsor route sees the role error
			name:       "wrong role and flagged",
			token:      mintToken(t, models.RoleInfluencer, 1, true),
			wantStatus: http.StatusForbidden,
			wantError:  "role not permitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, "/v1/sponsor/campaigns", tt.token, nil)
			mustStatus(t, rec, tt.wantStatus)
			if !strings.Contains(rec.Body.String(), tt.wantError) {
				t.Fatalf("expected error containing %q, got %s", tt.wantError, rec.Body.String())
			}
		})
	}
}

func TestFlaggedAdminExempt(t *testing.T) {
	router := newTestRouter(mock.NewMocks())

	rec := doRequest(t, router, http.MethodGet, "/v1/admin/dashboard", mintToken(t, models.RoleAdmin, 1, true), nil)
	mustStatus(t, rec, http.StatusOK)
}

func TestSessionFromContext(t *testing.T) {
	if got := api.SessionFromContext(context.Background()); got != nil {
		t.Fatalf("expected nil session on empty context, got %+v", got)
	}

	sess := &session.Session{Role: models.RoleSponsor, UserID: 7}
	ctx := api.WithSession(context.Background(), sess)
	if got := api.SessionFromContext(ctx); got != sess {
		t.Fatalf("expected bound session back, got %+v", got)
	}
}
