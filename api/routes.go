package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sponnect/sponnect/internal/account"
	"github.com/sponnect/sponnect/internal/adrequest"
	"github.com/sponnect/sponnect/internal/campaign"
	"github.com/sponnect/sponnect/internal/config"
	"github.com/sponnect/sponnect/internal/db"
	"github.com/sponnect/sponnect/internal/moderation"
	"github.com/sponnect/sponnect/internal/repository/sqlite"
	"github.com/sponnect/sponnect/pkg/models"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(MetricsMiddleware)

	// Repository and services
	repo := sqlite.New(database, logger)
	mod := moderation.New(repo, repo, repo, repo, logger)
	accounts := account.New(repo, repo, repo, mod, logger)
	campaigns := campaign.New(repo, mod, logger)
	requests := adrequest.New(repo, repo, repo, repo, mod, logger)

	// Handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(accounts, cfg.JWTSecret, cfg.TokenDuration)
	campaignsHandler := NewCampaignsHandler(campaigns, accounts)
	adRequestsHandler := NewAdRequestsHandler(requests)
	adminHandler := NewAdminHandler(mod, repo, repo, repo, repo, repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/v1/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/v1/auth/login", authHandler.Login).Methods("POST")

	// Protected role-prefixed subtrees. The session middleware binds the
	// login-time context; RequireRole gates on role then the cached
	// flagged bit, in that order.
	protected := r.PathPrefix("/v1").Subrouter()
	protected.Use(SessionMiddlewareWithSecret(cfg.JWTSecret))

	sponsor := protected.PathPrefix("/sponsor").Subrouter()
	sponsor.Use(RequireRole(models.RoleSponsor))
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
	influencer.Use(RequireRole(models.RoleInfluencer))
	influencer.HandleFunc("/profile", authHandler.GetInfluencerProfile).Methods("GET")
	influencer.HandleFunc("/profile", authHandler.UpdateInfluencerProfile).Methods("PUT")
	influencer.HandleFunc("/campaigns", campaignsHandler.BrowsePublic).Methods("GET")
	influencer.HandleFunc("/campaigns/{id}/interest", adRequestsHandler.ExpressInterest).Methods("POST")
	influencer.HandleFunc("/ad_requests", adRequestsHandler.ListForInfluencer).Methods("GET")
	influencer.HandleFunc("/ad_requests/{id}/decision", adRequestsHandler.InfluencerDecision).Methods("POST")
	influencer.HandleFunc("/ad_requests/{id}/negotiate", adRequestsHandler.Negotiate).Methods("POST")
	influencer.HandleFunc("/ad_requests/{id}/invoice", adRequestsHandler.DownloadInvoice).Methods("GET")

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(RequireRole(models.RoleAdmin))
	admin.HandleFunc("/dashboard", adminHandler.Dashboard).Methods("GET")
	admin.HandleFunc("/flags/{entity_type}", adminHandler.ListFlagged).Methods("GET")
	admin.HandleFunc("/flags/{entity_type}/{entity_id}", adminHandler.Flag).Methods("POST")
	admin.HandleFunc("/flags/{entity_type}/{entity_id}", adminHandler.Unflag).Methods("DELETE")

	return r
}
