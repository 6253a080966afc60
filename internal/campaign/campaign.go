// Package campaign implements the sponsor-owned campaign registry.
package campaign

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/sponnect/sponnect/internal/apperr"
	"github.com/sponnect/sponnect/internal/moderation"
	"github.com/sponnect/sponnect/pkg/models"
	"github.com/sponnect/sponnect/pkg/repository"
)

// DateLayout is the wire format for campaign dates.
const DateLayout = "2006-01-02"

type Service struct {
	campaigns  repository.CampaignRepo
	moderation *moderation.Service
	logger     *slog.Logger
}

func New(campaigns repository.CampaignRepo, mod *moderation.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{campaigns: campaigns, moderation: mod, logger: logger}
}

type CreateInput struct {
	Name          string
	Description   string
	StartDate     string
	EndDate       string
	Budget        int64
	Visibility    string
	Goals         string
	Requirements  string
	PaymentAmount int64
}

// UpdateInput carries the editable fields. The start date is fixed at
// creation and the update route does not accept it.
type UpdateInput struct {
	Name          string
	Description   string
	EndDate       string
	Budget        int64
	Visibility    string
	Goals         string
	Requirements  string
	PaymentAmount int64
}

// Create registers a campaign for the sponsor. The start date may not lie in
// the past and the end date may not precede the start.
func (s *Service) Create(ctx context.Context, sponsorID int64, in CreateInput) (*models.Campaign, error) {
	if in.Name == "" {
		return nil, apperr.Validationf("campaign name is required")
	}
	start, err := time.Parse(DateLayout, in.StartDate)
	if err != nil {
		return nil, apperr.Validationf("invalid start date %q, want YYYY-MM-DD", in.StartDate)
	}
	end, err := time.Parse(DateLayout, in.EndDate)
	if err != nil {
		return nil, apperr.Validationf("invalid end date %q, want YYYY-MM-DD", in.EndDate)
	}
	if end.Before(start) {
		return nil, apperr.Validationf("end date must not precede start date")
	}
	today, _ := time.Parse(DateLayout, time.Now().UTC().Format(DateLayout))
	if start.Before(today) {
		return nil, apperr.Validationf("start date must not be in the past")
	}
	if err := validateCommon(in.Budget, in.PaymentAmount, in.Visibility); err != nil {
		return nil, err
	}

	c := &models.Campaign{
		SponsorID:     sponsorID,
		Name:          in.Name,
		Description:   in.Description,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Budget:        in.Budget,
		Visibility:    in.Visibility,
		Goals:         in.Goals,
		Requirements:  in.Requirements,
		PaymentAmount: in.PaymentAmount,
	}
	id, err := s.campaigns.CreateCampaign(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id

	s.logger.Info("campaign created", slog.Int64("campaign_id", id), slog.Int64("sponsor_id", sponsorID))

	return c, nil
}

// Update rewrites the editable fields of a campaign the sponsor owns.
// Flagged campaigns are frozen until an admin unflags them.
func (s *Service) Update(ctx context.Context, sponsorID, campaignID int64, in UpdateInput) (*models.Campaign, error) {
	c, err := s.owned(ctx, sponsorID, campaignID)
	if err != nil {
		return nil, err
	}

	flagged, err := s.moderation.IsFlagged(ctx, models.EntityCampaign, campaignID)
	if err != nil {
		return nil, err
	}
	if flagged {
		return nil, apperr.ErrCampaignFlagged
	}

	if in.Name == "" {
		return nil, apperr.Validationf("campaign name is required")
	}
	end, err := time.Parse(DateLayout, in.EndDate)
	if err != nil {
		return nil, apperr.Validationf("invalid end date %q, want YYYY-MM-DD", in.EndDate)
	}
	start, err := time.Parse(DateLayout, c.StartDate)
	if err == nil && end.Before(start) {
		return nil, apperr.Validationf("end date must not precede start date")
	}
	if err := validateCommon(in.Budget, in.PaymentAmount, in.Visibility); err != nil {
		return nil, err
	}

	c.Name = in.Name
	c.Description = in.Description
	c.EndDate = in.EndDate
	c.Budget = in.Budget
	c.Visibility = in.Visibility
	c.Goals = in.Goals
	c.Requirements = in.Requirements
	c.PaymentAmount = in.PaymentAmount

	if err := s.campaigns.UpdateCampaign(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete hard-deletes an owned campaign and its dependent ad requests.
func (s *Service) Delete(ctx context.Context, sponsorID, campaignID int64) error {
	if _, err := s.owned(ctx, sponsorID, campaignID); err != nil {
		return err
	}

	if err := s.campaigns.DeleteCampaignCascade(ctx, campaignID); err != nil {
		return err
	}

	s.logger.Info("campaign deleted", slog.Int64("campaign_id", campaignID), slog.Int64("sponsor_id", sponsorID))

	return nil
}

func (s *Service) ListBySponsor(ctx context.Context, sponsorID int64) ([]models.Campaign, error) {
	return s.campaigns.ListCampaignsBySponsor(ctx, sponsorID)
}

// SearchPublic lists public campaigns matching q, hiding flagged ones.
func (s *Service) SearchPublic(ctx context.Context, q string) ([]models.Campaign, error) {
	found, err := s.campaigns.SearchPublicCampaigns(ctx, q)
	if err != nil {
		return nil, err
	}

	flaggedIDs, err := s.moderation.ListFlagged(ctx, models.EntityCampaign)
	if err != nil {
		return nil, err
	}
	flagged := make(map[int64]bool, len(flaggedIDs))
	for _, id := range flaggedIDs {
		flagged[id] = true
	}

	out := found[:0]
	for _, c := range found {
		if !flagged[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) owned(ctx context.Context, sponsorID, campaignID int64) (*models.Campaign, error) {
	c, err := s.campaigns.GetCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.ErrNotFound
	}
	if c.SponsorID != sponsorID {
		return nil, apperr.ErrOwnershipMismatch
	}
	return c, nil
}

func validateCommon(budget, payment int64, visibility string) error {
	if budget < 0 {
		return apperr.Validationf("budget must not be negative")
	}
	if payment < 0 {
		return apperr.Validationf("payment amount must not be negative")
	}
	if visibility != models.VisibilityPublic && visibility != models.VisibilityPrivate {
		return apperr.Validationf("visibility must be %q or %q", models.VisibilityPublic, models.VisibilityPrivate)
	}
	return nil
}
