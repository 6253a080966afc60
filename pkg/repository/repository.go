package repository

import (
	"context"

	"github.com/sponnect/sponnect/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
// Lookups return (nil, nil) when no row matches.

type AdminRepo interface {
	CreateAdmin(ctx context.Context, a *models.Admin) (int64, error)
	GetAdminByID(ctx context.Context, id int64) (*models.Admin, error)
	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	UpdateAdmin(ctx context.Context, a *models.Admin) error
	CountAdmins(ctx context.Context) (int64, error)
}

type SponsorRepo interface {
	CreateSponsor(ctx context.Context, s *models.Sponsor) (int64, error)
	GetSponsorByID(ctx context.Context, id int64) (*models.Sponsor, error)
	GetSponsorByUsername(ctx context.Context, username string) (*models.Sponsor, error)
	UpdateSponsor(ctx context.Context, s *models.Sponsor) error
	CountSponsors(ctx context.Context) (int64, error)
}

type InfluencerRepo interface {
	CreateInfluencer(ctx context.Context, i *models.Influencer) (int64, error)
	GetInfluencerByID(ctx context.Context, id int64) (*models.Influencer, error)
	GetInfluencerByUsername(ctx context.Context, username string) (*models.Influencer, error)
	UpdateInfluencer(ctx context.Context, i *models.Influencer) error
	SearchInfluencers(ctx context.Context, category, niche string, minReach int64) ([]models.Influencer, error)
	CountInfluencers(ctx context.Context) (int64, error)
}

type CampaignRepo interface {
	CreateCampaign(ctx context.Context, c *models.Campaign) (int64, error)
	GetCampaignByID(ctx context.Context, id int64) (*models.Campaign, error)
	UpdateCampaign(ctx context.Context, c *models.Campaign) error
	// DeleteCampaignCascade removes the campaign and its dependent ad
	// requests in one transaction.
	DeleteCampaignCascade(ctx context.Context, id int64) error
	ListCampaignsBySponsor(ctx context.Context, sponsorID int64) ([]models.Campaign, error)
	// SearchPublicCampaigns matches public campaigns whose name contains q
	// (all public campaigns when q is empty).
	SearchPublicCampaigns(ctx context.Context, q string) ([]models.Campaign, error)
	CountCampaignsByVisibility(ctx context.Context, visibility string) (int64, error)
}

type AdRequestRepo interface {
	CreateAdRequest(ctx context.Context, ar *models.AdRequest) (int64, error)
	GetAdRequestByID(ctx context.Context, id int64) (*models.AdRequest, error)
	// UpdateAdRequest writes the full mutable row (messages, requirements,
	// payment fields, acceptance flags, status) as a single statement.
	UpdateAdRequest(ctx context.Context, ar *models.AdRequest) error
	DeleteAdRequest(ctx context.Context, id int64) error
	ListAdRequestsBySponsor(ctx context.Context, sponsorID int64) ([]models.AdRequest, error)
	ListAdRequestsByInfluencer(ctx context.Context, influencerID int64) ([]models.AdRequest, error)
	ExistsForTriple(ctx context.Context, campaignID, sponsorID, influencerID int64) (bool, error)
	CountAdRequestsByStatus(ctx context.Context, status models.Status) (int64, error)
}

type FlagRepo interface {
	CreateFlag(ctx context.Context, f *models.Flag) (int64, error)
	GetFlag(ctx context.Context, entityType models.EntityType, entityID int64) (*models.Flag, error)
	DeleteFlag(ctx context.Context, entityType models.EntityType, entityID int64) error
	ListFlagged(ctx context.Context, entityType models.EntityType) ([]int64, error)
	CountFlags(ctx context.Context) (int64, error)
}
