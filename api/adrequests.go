package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sponnect/sponnect/internal/adrequest"
	"github.com/sponnect/sponnect/internal/invoice"
	"github.com/sponnect/sponnect/pkg/models"
)

type AdRequestsHandler struct {
	requests *adrequest.Service
}

func NewAdRequestsHandler(requests *adrequest.Service) *AdRequestsHandler {
	return &AdRequestsHandler{requests: requests}
}

type createAdRequestRequest struct {
	CampaignID    int64  `json:"campaign_id"`
	InfluencerID  int64  `json:"influencer_id"`
	PaymentAmount int64  `json:"payment_amount"`
	Requirements  string `json:"requirements"`
	Messages      string `json:"messages"`
}

type decisionRequest struct {
	Accepted bool `json:"accepted"`
}

type negotiateRequest struct {
	Messages string `json:"messages"`
}

type paymentRequest struct {
	Amount int64 `json:"amount"`
}

func (h *AdRequestsHandler) ListForSponsor(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	out, err := h.requests.ListForSponsor(r.Context(), sess.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if out == nil {
		out = []models.AdRequest{}
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *AdRequestsHandler) ListForInfluencer(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	out, err := h.requests.ListForInfluencer(r.Context(), sess.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if out == nil {
		out = []models.AdRequest{}
	}
	writeJSON(w, out, http.StatusOK)
}

// CreateDirect is the sponsor offering a campaign to an influencer.
func (h *AdRequestsHandler) CreateDirect(w http.ResponseWriter, r *http.Request) {
	var req createAdRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	sess := SessionFromContext(r.Context())
	ar, err := h.requests.CreateDirect(r.Context(), sess.UserID, req.CampaignID, req.InfluencerID, req.PaymentAmount, req.Requirements, req.Messages)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, ar, http.StatusCreated)
}

// ExpressInterest is the influencer applying to a public campaign.
func (h *AdRequestsHandler) ExpressInterest(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sess := SessionFromContext(r.Context())
	ar, err := h.requests.ExpressInterest(r.Context(), sess.UserID, campaignID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, ar, http.StatusCreated)
}

func (h *AdRequestsHandler) SponsorDecision(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	sess := SessionFromContext(r.Context())
	ar, err := h.requests.SetSponsorDecision(r.Context(), id, sess.UserID, req.Accepted)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, ar, http.StatusOK)
}

func (h *AdRequestsHandler) InfluencerDecision(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	sess := SessionFromContext(r.Context())
	ar, err := h.requests.SetInfluencerDecision(r.Context(), id, sess.UserID, req.Accepted)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, ar, http.StatusOK)
}

// Negotiate overwrites the request's message field; either party may call it
// through their role-prefixed route.
func (h *AdRequestsHandler) Negotiate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req negotiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	sess := SessionFromContext(r.Context())
	ar, err := h.requests.Negotiate(r.Context(), sess.Role, sess.UserID, id, req.Messages)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, ar, http.StatusOK)
}

func (h *AdRequestsHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	sess := SessionFromContext(r.Context())
	ar, err := h.requests.RecordPayment(r.Context(), id, sess.UserID, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, ar, http.StatusOK)
}

func (h *AdRequestsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sess := SessionFromContext(r.Context())
	if err := h.requests.Delete(r.Context(), id, sess.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, messageResponse{Message: "ad request deleted"}, http.StatusOK)
}

// DownloadInvoice streams the request's invoice PDF to either party.
func (h *AdRequestsHandler) DownloadInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sess := SessionFromContext(r.Context())
	detail, err := h.requests.GetDetail(r.Context(), sess.Role, sess.UserID, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	pdf, err := invoice.Render(invoice.Data{
		RequestID:      detail.Request.ID,
		CampaignName:   detail.CampaignName,
		SponsorName:    detail.SponsorName,
		InfluencerName: detail.InfluencerName,
		PaymentAmount:  detail.Request.PaymentAmount,
		Status:         detail.Request.Status,
		Paid:           detail.Request.PaymentStatus,
		Issued:         time.Now().UTC(),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+invoice.Filename(detail.Request.ID)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
