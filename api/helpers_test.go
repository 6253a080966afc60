package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/sponnect/sponnect/api"
	"github.com/sponnect/sponnect/internal/account"
	"github.com/sponnect/sponnect/internal/adrequest"
	"github.com/sponnect/sponnect/internal/campaign"
	"github.com/sponnect/sponnect/internal/moderation"
	"github.com/sponnect/sponnect/internal/session"
	"github.com/sponnect/sponnect/pkg/models"
	"github.com/sponnect/sponnect/pkg/repository/mock"
)

const testSecret = "testsecret"

// newTestRouter wires the handlers against in-memory mocks with the same
// route table and middleware the server uses.
func newTestRouter(m *mock.Mocks) *mux.Router {
	mod := moderation.New(m.Flags, m.Sponsors, m.Influencers, m.Campaigns, nil)
	accounts := account.New(m.Admins, m.Sponsors, m.Influencers, mod, nil)
	campaigns := campaign.New(m.Campaigns, mod, nil)
	requests := adrequest.New(m.AdRequests, m.Campaigns, m.Sponsors, m.Influencers, mod, nil)

	authHandler := api.NewAuthHandler(accounts, testSecret, time.Hour)
	campaignsHandler := api.NewCampaignsHandler(campaigns, accounts)
	adRequestsHandler := api.NewAdRequestsHandler(requests)
	adminHandler := api.NewAdminHandler(mod, m.Sponsors, m.Influencers, m.Campaigns, m.AdRequests, m.Flags)

	r := mux.NewRouter()
	r.HandleFunc("/v1/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/v1/auth/login", authHandler.Login).Methods("POST")

	protected := r.PathPrefix("/v1").Subrouter()
	protected.Use(api.SessionMiddlewareWithSecret(testSecret))

	sponsor := protected.PathPrefix("/sponsor").Subrouter()
	sponsor.Use(api.RequireRole(models.RoleSponsor))
	sponsor.HandleFunc("/profile", authHandler.GetSponsorProfile).Methods("GET")
	sponsor.HandleFunc("/profile", authHandler.UpdateSponsorProfile).Methods("PUT")
	sponsor.HandleFunc("/campaigns", campaignsHandler.ListMine).Methods("GET")
	sponsor.HandleFunc("/campaigns", campaignsHandler.Create).Methods("POST")
	sponsor.HandleFunc("/campaigns/{id}", campaignsHandler.Update).Methods("PUT")
	sponsor.HandleFunc("/campaigns/{id}", campaignsHandler.Delete).Methods("DELETE")
	sponsor.HandleFunc("/influencers", campaignsHandler.SearchInfluencers).Methods("GET")
	sponsor.HandleFunc("/ad_requests", adRequestsHandler.ListForSponsor).Methods("GET")
	sponsor.HandleFunc("/ad_requests", adRequestsHandler.CreateDirect).Methods("POST")
	sponsor.HandleFunc("/ad_requests/{id}/decision", adRequestsHandler.SponsorDecision).Methods("POST")
	sponsor.HandleFunc("/ad_requests/{id}/negotiate", adRequestsHandler.Negotiate).Methods("POST")
	sponsor.HandleFunc("/ad_requests/{id}/payment", adRequestsHandler.RecordPayment).Methods("POST")
	sponsor.HandleFunc("/ad_requests/{id}/invoice", adRequestsHandler.DownloadInvoice).Methods("GET")
	sponsor.HandleFunc("/ad_requests/{id}", adRequestsHandler.Delete).Methods("DELETE")

	influencer := protected.PathPrefix("/influencer").Subrouter()
	influencer.Use(api.RequireRole(models.RoleInfluencer))
	influencer.HandleFunc("/profile", authHandler.GetInfluencerProfile).Methods("GET")
	influencer.HandleFunc("/profile", authHandler.UpdateInfluencerProfile).Methods("PUT")
	influencer.HandleFunc("/campaigns", campaignsHandler.BrowsePublic).Methods("GET")
	influencer.HandleFunc("/campaigns/{id}/interest", adRequestsHandler.ExpressInterest).Methods("POST")
	influencer.HandleFunc("/ad_requests", adRequestsHandler.ListForInfluencer).Methods("GET")
	influencer.HandleFunc("/ad_requests/{id}/decision", adRequestsHandler.InfluencerDecision).Methods("POST")
	influencer.HandleFunc("/ad_requests/{id}/negotiate", adRequestsHandler.Negotiate).Methods("POST")
	influencer.HandleFunc("/ad_requests/{id}/invoice", adRequestsHandler.DownloadInvoice).Methods("GET")

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(api.RequireRole(models.RoleAdmin))
	admin.HandleFunc("/dashboard", adminHandler.Dashboard).Methods("GET")
	admin.HandleFunc("/flags/{entity_type}", adminHandler.ListFlagged).Methods("GET")
	admin.HandleFunc("/flags/{entity_type}/{entity_id}", adminHandler.Flag).Methods("POST")
	admin.HandleFunc("/flags/{entity_type}/{entity_id}", adminHandler.Unflag).Methods("DELETE")

	return r
}

func mintToken(t *testing.T, role models.Role, userID int64, flagged bool) string {
	t.Helper()
	token, err := session.Mint(&session.Session{Role: role, UserID: userID, Flagged: flagged}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

// doRequest performs a request against the router and returns the recorder.
// A non-empty token goes out as a bearer Authorization header.
func doRequest(t *testing.T, router *mux.Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			reader = bytes.NewBufferString(s)
		} else {
			b, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("failed to marshal body: %v", err)
			}
			reader = bytes.NewBuffer(b)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
}

func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
