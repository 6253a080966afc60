package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sponnect/sponnect/internal/apperr"
	"github.com/sponnect/sponnect/internal/moderation"
	"github.com/sponnect/sponnect/pkg/models"
	"github.com/sponnect/sponnect/pkg/repository"
)

type AdminHandler struct {
	moderation  *moderation.Service
	sponsors    repository.SponsorRepo
	influencers repository.InfluencerRepo
	campaigns   repository.CampaignRepo
	requests    repository.AdRequestRepo
	flags       repository.FlagRepo
}

func NewAdminHandler(mod *moderation.Service, sponsors repository.SponsorRepo, influencers repository.InfluencerRepo, campaigns repository.CampaignRepo, requests repository.AdRequestRepo, flags repository.FlagRepo) *AdminHandler {
	return &AdminHandler{
		moderation:  mod,
		sponsors:    sponsors,
		influencers: influencers,
		campaigns:   campaigns,
		requests:    requests,
		flags:       flags,
	}
}

func (h *AdminHandler) Flag(w http.ResponseWriter, r *http.Request) {
	entityType, entityID, ok := flagPath(w, r)
	if !ok {
		return
	}

	sess := SessionFromContext(r.Context())
	f, err := h.moderation.Flag(r.Context(), sess.UserID, entityType, entityID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, f, http.StatusCreated)
}

func (h *AdminHandler) Unflag(w http.ResponseWriter, r *http.Request) {
	entityType, entityID, ok := flagPath(w, r)
	if !ok {
		return
	}

	sess := SessionFromContext(r.Context())
	if err := h.moderation.Unflag(r.Context(), sess.UserID, entityType, entityID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, messageResponse{Message: "flag removed"}, http.StatusOK)
}

func (h *AdminHandler) ListFlagged(w http.ResponseWriter, r *http.Request) {
	entityType, err := models.ParseEntityType(mux.Vars(r)["entity_type"])
	if err != nil {
		writeDomainError(w, apperr.Validationf("%v", err))
		return
	}

	ids, err := h.moderation.ListFlagged(r.Context(), entityType)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}
	writeJSON(w, map[string]any{"entity_type": entityType, "entity_ids": ids}, http.StatusOK)
}

type dashboardResponse struct {
	Sponsors         int64 `json:"sponsors"`
	Influencers      int64 `json:"influencers"`
	PublicCampaigns  int64 `json:"public_campaigns"`
	PrivateCampaigns int64 `json:"private_campaigns"`
	PendingRequests  int64 `json:"pending_requests"`
	AcceptedRequests int64 `json:"accepted_requests"`
	RejectedRequests int64 `json:"rejected_requests"`
	Flags            int64 `json:"flags"`
}

// Dashboard aggregates platform counts for the admin landing view.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var resp dashboardResponse
	var err error

	if resp.Sponsors, err = h.sponsors.CountSponsors(ctx); err != nil {
		writeDomainError(w, err)
		return
	}
	if resp.Influencers, err = h.influencers.CountInfluencers(ctx); err != nil {
		writeDomainError(w, err)
		return
	}
	if resp.PublicCampaigns, err = h.campaigns.CountCampaignsByVisibility(ctx, models.VisibilityPublic); err != nil {
		writeDomainError(w, err)
		return
	}
	if resp.PrivateCampaigns, err = h.campaigns.CountCampaignsByVisibility(ctx, models.VisibilityPrivate); err != nil {
		writeDomainError(w, err)
		return
	}
	if resp.PendingRequests, err = h.requests.CountAdRequestsByStatus(ctx, models.StatusPending); err != nil {
		writeDomainError(w, err)
		return
	}
	if resp.AcceptedRequests, err = h.requests.CountAdRequestsByStatus(ctx, models.StatusAccepted); err != nil {
		writeDomainError(w, err)
		return
	}
	if resp.RejectedRequests, err = h.requests.CountAdRequestsByStatus(ctx, models.StatusRejected); err != nil {
		writeDomainError(w, err)
		return
	}
	if resp.Flags, err = h.flags.CountFlags(ctx); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

func flagPath(w http.ResponseWriter, r *http.Request) (models.EntityType, int64, bool) {
	entityType, err := models.ParseEntityType(mux.Vars(r)["entity_type"])
	if err != nil {
		writeDomainError(w, apperr.Validationf("%v", err))
		return "", 0, false
	}
	id, ok := pathID(w, r, "entity_id")
	if !ok {
		return "", 0, false
	}
	return entityType, id, true
}
