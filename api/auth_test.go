package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sponnect/sponnect/internal/session"
	"github.com/sponnect/sponnect/pkg/models"
	"github.com/sponnect/sponnect/pkg/repository/mock"
)

func seedSponsor(t *testing.T, m *mock.Mocks, username, password string) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	id, err := m.Sponsors.CreateSponsor(context.Background(), &models.Sponsor{
		Username:     username,
		Name:         "Acme Corp",
		PasswordHash: string(hash),
		Budget:       10000,
		Industry:     "Tech",
	})
	if err != nil {
		t.Fatalf("failed to seed sponsor: %v", err)
	}
	return id
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		prepare    func(t *testing.T, m *mock.Mocks)
		wantStatus int
		checkBody  func(t *testing.T, b []byte)
	}{
		{
			name:       "invalid json",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown user type",
			body:       map[string]any{"user_type": "wizard", "username": "merlin", "password": "pw", "confirm_password": "pw"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "admin self-register refused",
			body:       map[string]any{"user_type": "admin", "username": "root", "password": "pw", "confirm_password": "pw"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "sponsor success",
			body: map[string]any{
				"user_type": "sponsor", "username": "acme42", "password": "hunter2",
				"confirm_password": "hunter2", "name": "Acme", "budget": 10000, "industry": "Tech",
			},
			wantStatus: http.StatusCreated,
			checkBody: func(t *testing.T, b []byte) {
				var sp models.Sponsor
				if err := json.Unmarshal(b, &sp); err != nil {
					t.Fatalf("unmarshal sponsor: %v", err)
				}
				if sp.ID == 0 || sp.Username != "acme42" {
					t.Fatalf("unexpected sponsor: %+v", sp)
				}
			},
		},
		{
			name: "influencer success",
			body: map[string]any{
				"user_type": "influencer", "username": "river", "password": "hunter2",
				"confirm_password": "hunter2", "name": "River", "category": "Tech", "niche": "Gadgets", "reach": 50000,
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "password mismatch",
			body: map[string]any{
				"user_type": "sponsor", "username": "acme42", "password": "hunter2",
				"confirm_password": "other", "budget": 100, "industry": "Tech",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username",
			body: map[string]any{
				"user_type": "sponsor", "username": "taken", "password": "hunter2",
				"confirm_password": "hunter2", "budget": 100, "industry": "Tech",
			},
			prepare: func(t *testing.T, m *mock.Mocks) {
				seedSponsor(t, m, "taken", "whatever")
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mock.NewMocks()
			if tt.prepare != nil {
				tt.prepare(t, m)
			}
			router := newTestRouter(m)

			rec := doRequest(t, router, http.MethodPost, "/v1/auth/register", "", tt.body)
			mustStatus(t, rec, tt.wantStatus)
			if tt.checkBody != nil {
				tt.checkBody(t, rec.Body.Bytes())
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		prepare    func(t *testing.T, m *mock.Mocks)
		wantStatus int
		checkBody  func(t *testing.T, b []byte)
	}{
		{
			name:       "invalid json",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing credentials",
			body:       map[string]any{"user_type": "sponsor", "username": "acme42"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown account",
			body:       map[string]any{"user_type": "sponsor", "username": "nobody", "password": "pw"},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "wrong password",
			body: map[string]any{"user_type": "sponsor", "username": "acme42", "password": "wrong"},
			prepare: func(t *testing.T, m *mock.Mocks) {
				seedSponsor(t, m, "acme42", "hunter2")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "success",
			body: map[string]any{"user_type": "sponsor", "username": "acme42", "password": "hunter2"},
			prepare: func(t *testing.T, m *mock.Mocks) {
				seedSponsor(t, m, "acme42", "hunter2")
			},
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, b []byte) {
				var resp struct {
					Token   string      `json:"token"`
					Role    models.Role `json:"role"`
					Flagged bool        `json:"flagged"`
				}
				if err := json.Unmarshal(b, &resp); err != nil {
					t.Fatalf("unmarshal response: %v", err)
				}
				if resp.Token == "" || resp.Role != models.RoleSponsor || resp.Flagged {
					t.Fatalf("unexpected response: %+v", resp)
				}
				sess, err := session.Parse(resp.Token, testSecret)
				if err != nil {
					t.Fatalf("invalid token: %v", err)
				}
				if sess.Role != models.RoleSponsor {
					t.Fatalf("unexpected session role %q", sess.Role)
				}
			},
		},
		{
			name: "flagged sponsor still logs in",
			body: map[string]any{"user_type": "sponsor", "username": "acme42", "password": "hunter2"},
			prepare: func(t *testing.T, m *mock.Mocks) {
				id := seedSponsor(t, m, "acme42", "hunter2")
				if _, err := m.Flags.CreateFlag(context.Background(), &models.Flag{
					EntityType: models.EntitySponsor, EntityID: id, AdminID: 1, Reason: "terms",
				}); err != nil {
					t.Fatalf("failed to seed flag: %v", err)
				}
			},
			wantStatus: http.StatusOK,
			checkBody: func(t *testing.T, b []byte) {
				var resp struct {
					Flagged bool `json:"flagged"`
				}
				if err := json.Unmarshal(b, &resp); err != nil {
					t.Fatalf("unmarshal response: %v", err)
				}
				if !resp.Flagged {
					t.Fatalf("expected flagged bit in login response")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mock.NewMocks()
			if tt.prepare != nil {
				tt.prepare(t, m)
			}
			router := newTestRouter(m)

			rec := doRequest(t, router, http.MethodPost, "/v1/auth/login", "", tt.body)
			mustStatus(t, rec, tt.wantStatus)
			if tt.checkBody != nil {
				tt.checkBody(t, rec.Body.Bytes())
			}
		})
	}
}

func TestSponsorProfile(t *testing.T) {
	m := mock.NewMocks()
	id := seedSponsor(t, m, "acme42", "hunter2")
	router := newTestRouter(m)
	token := mintToken(t, models.RoleSponsor, id, false)

	rec := doRequest(t, router, http.MethodGet, "/v1/sponsor/profile", token, nil)
	mustStatus(t, rec, http.StatusOK)
	var sp models.Sponsor
	decodeBody(t, rec, &sp)
	if sp.Username != "acme42" {
		t.Fatalf("unexpected profile: %+v", sp)
	}

	rec = doRequest(t, router, http.MethodPut, "/v1/sponsor/profile", token, map[string]any{
		"current_password": "hunter2",
		"name":             "Acme Global",
		"budget":           20000,
		"industry":         "Retail",
	})
	mustStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &sp)
	if sp.Name != "Acme Global" || sp.Budget != 20000 {
		t.Fatalf("update not applied: %+v", sp)
	}

	// wrong current password
	rec = doRequest(t, router, http.MethodPut, "/v1/sponsor/profile", token, map[string]any{
		"current_password": "bogus",
		"name":             "Acme",
		"budget":           100,
		"industry":         "Tech",
	})
	mustStatus(t, rec, http.StatusUnauthorized)
}
