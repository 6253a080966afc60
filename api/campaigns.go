package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sponnect/sponnect/internal/account"
	"github.com/sponnect/sponnect/internal/campaign"
	"github.com/sponnect/sponnect/pkg/models"
)

type CampaignsHandler struct {
	campaigns *campaign.Service
	accounts  *account.Service
}

func NewCampaignsHandler(campaigns *campaign.Service, accounts *account.Service) *CampaignsHandler {
	return &CampaignsHandler{campaigns: campaigns, accounts: accounts}
}

type campaignRequest struct {
	Name          string `json:"campaign_name"`
	Description   string `json:"description"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Budget        int64  `json:"budget"`
	Visibility    string `json:"visibility"`
	Goals         string `json:"goals"`
	Requirements  string `json:"requirements"`
	PaymentAmount int64  `json:"payment"`
}

func (h *CampaignsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	out, err := h.campaigns.ListBySponsor(r.Context(), sess.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if out == nil {
		out = []models.Campaign{}
	}
	writeJSON(w, out, http.StatusOK)
}

func (h *CampaignsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	sess := SessionFromContext(r.Context())
	c, err := h.campaigns.Create(r.Context(), sess.UserID, campaign.CreateInput{
		Name:          req.Name,
		Description:   req.Description,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Budget:        req.Budget,
		Visibility:    req.Visibility,
		Goals:         req.Goals,
		Requirements:  req.Requirements,
		PaymentAmount: req.PaymentAmount,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, c, http.StatusCreated)
}

func (h *CampaignsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	sess := SessionFromContext(r.Context())
	c, err := h.campaigns.Update(r.Context(), sess.UserID, id, campaign.UpdateInput{
		Name:          req.Name,
		Description:   req.Description,
		EndDate:       req.EndDate,
		Budget:        req.Budget,
		Visibility:    req.Visibility,
		Goals:         req.Goals,
		Requirements:  req.Requirements,
		PaymentAmount: req.PaymentAmount,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, c, http.StatusOK)
}

func (h *CampaignsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sess := SessionFromContext(r.Context())
	if err := h.campaigns.Delete(r.Context(), sess.UserID, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, messageResponse{Message: "campaign deleted"}, http.StatusOK)
}

// BrowsePublic lists unflagged public campaigns for influencers, optionally
// filtered by a name substring.
func (h *CampaignsHandler) BrowsePublic(w http.ResponseWriter, r *http.Request) {
	out, err := h.campaigns.SearchPublic(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if out == nil {
		out = []models.Campaign{}
	}
	writeJSON(w, out, http.StatusOK)
}

// SearchInfluencers finds influencers for a sponsor by category, niche and
// minimum reach.
func (h *CampaignsHandler) SearchInfluencers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var minReach int64
	if v := q.Get("min_reach"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid min_reach")
			return
		}
		minReach = parsed
	}

	out, err := h.accounts.SearchInfluencers(r.Context(), q.Get("category"), q.Get("niche"), minReach)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if out == nil {
		out = []models.Influencer{}
	}
	writeJSON(w, out, http.StatusOK)
}

// pathID parses the numeric {name} path segment, writing the error response
// itself on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
