package api_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/sponnect/sponnect/pkg/models"
	"github.com/sponnect/sponnect/pkg/repository/mock"
)

// seedMarketplace creates one sponsor, one influencer and one public
// campaign and returns their ids.
func seedMarketplace(t *testing.T, m *mock.Mocks) (sponsorID, influencerID, campaignID int64) {
	t.Helper()
	ctx := context.Background()

	sponsorID, err := m.Sponsors.CreateSponsor(ctx, &models.Sponsor{Username: "acme", Name: "Acme Corp"})
	if err != nil {
		t.Fatalf("failed to seed sponsor: %v", err)
	}
	influencerID, err = m.Influencers.CreateInfluencer(ctx, &models.Influencer{Username: "river", Name: "River", Reach: 50000})
	if err != nil {
		t.Fatalf("failed to seed influencer: %v", err)
	}
	campaignID, err = m.Campaigns.CreateCampaign(ctx, &models.Campaign{
		SponsorID:     sponsorID,
		Name:          "Summer Launch",
		Visibility:    models.VisibilityPublic,
		Requirements:  "two posts",
		PaymentAmount: 500,
	})
	if err != nil {
		t.Fatalf("failed to seed campaign: %v", err)
	}
	return sponsorID, influencerID, campaignID
}

func TestAdRequestLifecycleHandlers(t *testing.T) {
	m := mock.NewMocks()
	sponsorID, influencerID, campaignID := seedMarketplace(t, m)
	router := newTestRouter(m)
	sponsorToken := mintToken(t, models.RoleSponsor, sponsorID, false)
	influencerToken := mintToken(t, models.RoleInfluencer, influencerID, false)

	// influencer applies to the public campaign
	rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/v1/influencer/campaigns/%d/interest", campaignID), influencerToken, nil)
	mustStatus(t, rec, http.StatusCreated)
	var ar models.AdRequest
	decodeBody(t, rec, &ar)
	if ar.Status != models.StatusPending || ar.PaymentAmount != 500 {
		t.Fatalf("unexpected request: %+v", ar)
	}

	// applying twice conflicts
	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/v1/influencer/campaigns/%d/interest", campaignID), influencerToken, nil)
	mustStatus(t, rec, http.StatusConflict)

	// both sides appear in their lists
	rec = doRequest(t, router, http.MethodGet, "/v1/sponsor/ad_requests", sponsorToken, nil)
	mustStatus(t, rec, http.StatusOK)
	var list []models.AdRequest
	decodeBody(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("expected one sponsor request, got %+v", list)
	}
	rec = doRequest(t, router, http.MethodGet, "/v1/influencer/ad_requests", influencerToken, nil)
	mustStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &list)
	if len(list) != 1 {
		t.Fatalf("expected one influencer request, got %+v", list)
	}

	// negotiate, then both parties accept
	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/v1/influencer/ad_requests/%d/negotiate", ar.ID), influencerToken, map[string]any{"messages": "can we do 700?"})
	mustStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &ar)
	if ar.Messages != "can we do 700?" {
		t.Fatalf("negotiate not applied: %+v", ar)
	}

	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/v1/sponsor/ad_requests/%d/decision", ar.ID), sponsorToken, map[string]any{"accepted": true})
	mustStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &ar)
	if ar.Status != models.StatusPending {
		t.Fatalf("expected Pending after one accept, got %q", ar.Status)
	}

	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/v1/influencer/ad_requests/%d/decision", ar.ID), influencerToken, map[string]any{"accepted": true})
	mustStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &ar)
	if ar.Status != models.StatusAccepted {
		t.Fatalf("expected Accepted, got %q", ar.Status)
	}

	// payment, once
	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/v1/sponsor/ad_requests/%d/payment", ar.ID), sponsorToken, map[string]any{"amount": 700})
	mustStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &ar)
	if !ar.PaymentStatus || ar.PaymentAmount != 700 {
		t.Fatalf("payment not recorded: %+v", ar)
	}
	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/v1/sponsor/ad_requests/%d/payment", ar.ID), sponsorToken, map[string]any{"amount": 999})
	mustStatus(t, rec, http.StatusConflict)

	// both parties can download the invoice
	for _, token := range []string{sponsorToken, influencerToken} {
		path := "/v1/sponsor/ad_requests/%d/invoice"
		if token == influencerToken {
			path = "/v1/influencer/ad_requests/%d/invoice"
		}
		rec = doRequest(t, router, http.MethodGet, fmt.Sprintf(path, ar.ID), token, nil)
		mustStatus(t, rec, http.StatusOK)
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Fatalf("expected pdf content type, got %q", ct)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
			t.Fatalf("expected a PDF body")
		}
	}

	rec = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/v1/sponsor/ad_requests/%d", ar.ID), sponsorToken, nil)
	mustStatus(t, rec, http.StatusOK)
	rec = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/v1/sponsor/ad_requests/%d", ar.ID), sponsorToken, nil)
	mustStatus(t, rec, http.StatusNotFound)
}

func TestCreateDirectHandler(t *testing.T) {
	m := mock.NewMocks()
	sponsorID, influencerID, campaignID := seedMarketplace(t, m)
	router := newTestRouter(m)
	token := mintToken(t, models.RoleSponsor, sponsorID, false)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name:       "success",
			body:       map[string]any{"campaign_id": campaignID, "influencer_id": influencerID, "payment_amount": 800, "requirements": "three reels", "messages": "hello"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing influencer",
			body:       map[string]any{"campaign_id": campaignID, "influencer_id": 9999, "payment_amount": 800},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing campaign",
			body:       map[string]any{"campaign_id": 9999, "influencer_id": influencerID, "payment_amount": 800},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "zero payment",
			body:       map[string]any{"campaign_id": campaignID, "influencer_id": influencerID, "payment_amount": 0},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/v1/sponsor/ad_requests", token, tt.body)
			mustStatus(t, rec, tt.wantStatus)
		})
	}
}

func TestDecisionOwnership(t *testing.T) {
	m := mock.NewMocks()
	sponsorID, influencerID, campaignID := seedMarketplace(t, m)
	router := newTestRouter(m)
	influencerToken := mintToken(t, models.RoleInfluencer, influencerID, false)

	rec := doRequest(t, router, http.MethodPost, fmt.Sprintf("/v1/influencer/campaigns/%d/interest", campaignID), influencerToken, nil)
	mustStatus(t, rec, http.StatusCreated)
	var ar models.AdRequest
	decodeBody(t, rec, &ar)

	// a different sponsor cannot decide on this request
	otherSponsor := mintToken(t, models.RoleSponsor, sponsorID+1, false)
	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/v1/sponsor/ad_requests/%d/decision", ar.ID), otherSponsor, map[string]any{"accepted": true})
	mustStatus(t, rec, http.StatusForbidden)

	// blank negotiation message is a 400
	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/v1/influencer/ad_requests/%d/negotiate", ar.ID), influencerToken, map[string]any{"messages": "  "})
	mustStatus(t, rec, http.StatusBadRequest)
}
