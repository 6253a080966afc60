package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sponnect/sponnect/internal/account"
	"github.com/sponnect/sponnect/internal/apperr"
	"github.com/sponnect/sponnect/internal/session"
	"github.com/sponnect/sponnect/pkg/models"
)

type AuthHandler struct {
	accounts      *account.Service
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(accounts *account.Service, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{accounts: accounts, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type registerRequest struct {
	UserType        string `json:"user_type"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Name            string `json:"name"`

	// sponsor fields
	Budget   int64  `json:"budget,omitempty"`
	Industry string `json:"industry,omitempty"`

	// influencer fields
	Category string `json:"category,omitempty"`
	Niche    string `json:"niche,omitempty"`
	Reach    int64  `json:"reach,omitempty"`
}

type loginRequest struct {
	UserType string `json:"user_type"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string      `json:"token"`
	Role    models.Role `json:"role"`
	UserID  int64       `json:"user_id"`
	Flagged bool        `json:"flagged"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	role, err := models.ParseRole(req.UserType)
	if err != nil {
		writeDomainError(w, apperr.Validationf("invalid user type %q", req.UserType))
		return
	}

	ctx := r.Context()

	switch role {
	case models.RoleSponsor:
		sp, err := h.accounts.RegisterSponsor(ctx, account.SponsorRegistration{
			Username:        req.Username,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
			Name:            req.Name,
			Budget:          req.Budget,
			Industry:        req.Industry,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, sp, http.StatusCreated)
	case models.RoleInfluencer:
		inf, err := h.accounts.RegisterInfluencer(ctx, account.InfluencerRegistration{
			Username:        req.Username,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
			Name:            req.Name,
			Category:        req.Category,
			Niche:           req.Niche,
			Reach:           req.Reach,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, inf, http.StatusCreated)
	default:
		// admins are seeded, never self-registered
		writeDomainError(w, apperr.Validationf("admin accounts cannot be registered"))
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeDomainError(w, apperr.Validationf("username and password are required"))
		return
	}

	role, err := models.ParseRole(req.UserType)
	if err != nil {
		writeDomainError(w, apperr.Validationf("invalid user type %q", req.UserType))
		return
	}

	sess, err := h.accounts.Login(r.Context(), role, req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := session.Mint(sess, h.jwtSecret, h.tokenDuration)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	writeJSON(w, authResponse{Token: token, Role: sess.Role, UserID: sess.UserID, Flagged: sess.Flagged}, http.StatusOK)
}

type sponsorProfileRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password,omitempty"`
	Name            string `json:"name"`
	Budget          int64  `json:"budget"`
	Industry        string `json:"industry"`
}

type influencerProfileRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password,omitempty"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Niche           string `json:"niche"`
	Reach           int64  `json:"reach"`
}

func (h *AuthHandler) GetSponsorProfile(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	sp, err := h.accounts.GetSponsor(r.Context(), sess.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, sp, http.StatusOK)
}

func (h *AuthHandler) UpdateSponsorProfile(w http.ResponseWriter, r *http.Request) {
	var req sponsorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	sess := SessionFromContext(r.Context())
	sp, err := h.accounts.UpdateSponsorProfile(r.Context(), sess.UserID, account.SponsorProfileUpdate{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		Name:            req.Name,
		Budget:          req.Budget,
		Industry:        req.Industry,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, sp, http.StatusOK)
}

func (h *AuthHandler) GetInfluencerProfile(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	inf, err := h.accounts.GetInfluencer(r.Context(), sess.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, inf, http.StatusOK)
}

func (h *AuthHandler) UpdateInfluencerProfile(w http.ResponseWriter, r *http.Request) {
	var req influencerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	sess := SessionFromContext(r.Context())
	inf, err := h.accounts.UpdateInfluencerProfile(r.Context(), sess.UserID, account.InfluencerProfileUpdate{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		Name:            req.Name,
		Category:        req.Category,
		Niche:           req.Niche,
		Reach:           req.Reach,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, inf, http.StatusOK)
}
