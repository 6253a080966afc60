// Package adrequest implements the accept/reject/negotiate lifecycle tying
// a sponsor, an influencer and a campaign together. The status field is
// never written directly: it is re-derived from the two tri-state acceptance
// flags after every mutation, so flipping a flag can move a request back out
// of Accepted or Rejected (renegotiation).
package adrequest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sponnect/sponnect/internal/apperr"
	"github.com/sponnect/sponnect/internal/metrics"
	"github.com/sponnect/sponnect/internal/moderation"
	"github.com/sponnect/sponnect/pkg/models"
	"github.com/sponnect/sponnect/pkg/repository"
)

type Service struct {
	requests    repository.AdRequestRepo
	campaigns   repository.CampaignRepo
	sponsors    repository.SponsorRepo
	influencers repository.InfluencerRepo
	moderation  *moderation.Service
	logger      *slog.Logger
}

func New(requests repository.AdRequestRepo, campaigns repository.CampaignRepo, sponsors repository.SponsorRepo, influencers repository.InfluencerRepo, mod *moderation.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		requests:    requests,
		campaigns:   campaigns,
		sponsors:    sponsors,
		influencers: influencers,
		moderation:  mod,
		logger:      logger,
	}
}

// CreateDirect is the sponsor-initiated offer against one of their own
// campaigns. Offers against flagged campaigns are refused.
func (s *Service) CreateDirect(ctx context.Context, sponsorID, campaignID, influencerID, payment int64, requirements, messages string) (*models.AdRequest, error) {
	c, err := s.campaigns.GetCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("campaign: %w", apperr.ErrNotFound)
	}
	if c.SponsorID != sponsorID {
		return nil, apperr.ErrOwnershipMismatch
	}

	flagged, err := s.moderation.IsFlagged(ctx, models.EntityCampaign, campaignID)
	if err != nil {
		return nil, err
	}
	if flagged {
		return nil, apperr.ErrCampaignFlagged
	}

	inf, err := s.influencers.GetInfluencerByID(ctx, influencerID)
	if err != nil {
		return nil, err
	}
	if inf == nil {
		return nil, fmt.Errorf("influencer: %w", apperr.ErrNotFound)
	}

	if payment <= 0 {
		return nil, apperr.ErrInvalidAmount
	}

	ar := &models.AdRequest{
		CampaignID:    campaignID,
		SponsorID:     sponsorID,
		InfluencerID:  influencerID,
		Messages:      messages,
		Requirements:  requirements,
		PaymentAmount: payment,
		Status:        models.StatusPending,
	}
	return s.insert(ctx, ar)
}

// ExpressInterest is the influencer-initiated request against a public
// campaign, pre-filled from the campaign's requirements and payment. At most
// one request may exist per (campaign, sponsor, influencer) triple.
func (s *Service) ExpressInterest(ctx context.Context, influencerID, campaignID int64) (*models.AdRequest, error) {
	c, err := s.campaigns.GetCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("campaign: %w", apperr.ErrNotFound)
	}
	if c.Visibility != models.VisibilityPublic {
		return nil, apperr.Validationf("campaign is not public")
	}

	flagged, err := s.moderation.IsFlagged(ctx, models.EntityCampaign, campaignID)
	if err != nil {
		return nil, err
	}
	if flagged {
		return nil, apperr.ErrCampaignFlagged
	}

	exists, err := s.requests.ExistsForTriple(ctx, campaignID, c.SponsorID, influencerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.ErrDuplicateRequest
	}

	ar := &models.AdRequest{
		CampaignID:    campaignID,
		SponsorID:     c.SponsorID,
		InfluencerID:  influencerID,
		Requirements:  c.Requirements,
		PaymentAmount: c.PaymentAmount,
		Status:        models.StatusPending,
	}
	return s.insert(ctx, ar)
}

// SetSponsorDecision records the sponsor's accept or reject and re-derives
// the status. The referenced campaign and influencer must still exist.
func (s *Service) SetSponsorDecision(ctx context.Context, requestID, sponsorID int64, accepted bool) (*models.AdRequest, error) {
	ar, err := s.ownedBySponsor(ctx, requestID, sponsorID)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, ar, true, false); err != nil {
		return nil, err
	}

	ar.SponsorAccepted = &accepted
	return s.applyStatus(ctx, ar)
}

// SetInfluencerDecision is the influencer-side mirror of SetSponsorDecision.
func (s *Service) SetInfluencerDecision(ctx context.Context, requestID, influencerID int64, accepted bool) (*models.AdRequest, error) {
	ar, err := s.requests.GetAdRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if ar == nil {
		return nil, apperr.ErrNotFound
	}
	if ar.InfluencerID != influencerID {
		return nil, apperr.ErrOwnershipMismatch
	}
	if err := s.checkReferences(ctx, ar, false, true); err != nil {
		return nil, err
	}

	ar.InfluencerAccepted = &accepted
	return s.applyStatus(ctx, ar)
}

// Negotiate overwrites the messages field, last writer wins. Either party of
// the request may call it.
func (s *Service) Negotiate(ctx context.Context, actorRole models.Role, actorID, requestID int64, message string) (*models.AdRequest, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperr.ErrEmptyMessage
	}

	ar, err := s.requests.GetAdRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if ar == nil {
		return nil, apperr.ErrNotFound
	}
	switch actorRole {
	case models.RoleSponsor:
		if ar.SponsorID != actorID {
			return nil, apperr.ErrOwnershipMismatch
		}
	case models.RoleInfluencer:
		if ar.InfluencerID != actorID {
			return nil, apperr.ErrOwnershipMismatch
		}
	default:
		return nil, apperr.ErrRoleMismatch
	}

	ar.Messages = message
	// status derivation is a no-op here since the flags did not change,
	// but it runs after every mutation without exception
	return s.applyStatus(ctx, ar)
}

// RecordPayment marks the request paid. Payment is not gated on the request
// being Accepted; any status may be paid.
func (s *Service) RecordPayment(ctx context.Context, requestID, sponsorID, amount int64) (*models.AdRequest, error) {
	ar, err := s.ownedBySponsor(ctx, requestID, sponsorID)
	if err != nil {
		return nil, err
	}
	if ar.PaymentStatus {
		return nil, apperr.ErrAlreadyPaid
	}
	if amount <= 0 {
		return nil, apperr.ErrInvalidAmount
	}

	ar.PaymentAmount = amount
	ar.PaymentStatus = true
	if err := s.requests.UpdateAdRequest(ctx, ar); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded", slog.Int64("request_id", ar.ID), slog.Int64("amount", amount))
	metrics.PaymentsRecorded.Inc()

	return ar, nil
}

// Delete hard-deletes a request; only the owning sponsor may do so.
func (s *Service) Delete(ctx context.Context, requestID, sponsorID int64) error {
	if _, err := s.ownedBySponsor(ctx, requestID, sponsorID); err != nil {
		return err
	}
	return s.requests.DeleteAdRequest(ctx, requestID)
}

func (s *Service) ListForSponsor(ctx context.Context, sponsorID int64) ([]models.AdRequest, error) {
	return s.requests.ListAdRequestsBySponsor(ctx, sponsorID)
}

func (s *Service) ListForInfluencer(ctx context.Context, influencerID int64) ([]models.AdRequest, error) {
	return s.requests.ListAdRequestsByInfluencer(ctx, influencerID)
}

// Detail is the denormalized view of a request used for invoices. The actor
// must be one of the two parties.
type Detail struct {
	Request        *models.AdRequest
	CampaignName   string
	SponsorName    string
	InfluencerName string
}

func (s *Service) GetDetail(ctx context.Context, actorRole models.Role, actorID, requestID int64) (*Detail, error) {
	ar, err := s.requests.GetAdRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if ar == nil {
		return nil, apperr.ErrNotFound
	}
	switch actorRole {
	case models.RoleSponsor:
		if ar.SponsorID != actorID {
			return nil, apperr.ErrOwnershipMismatch
		}
	case models.RoleInfluencer:
		if ar.InfluencerID != actorID {
			return nil, apperr.ErrOwnershipMismatch
		}
	default:
		return nil, apperr.ErrRoleMismatch
	}

	d := &Detail{Request: ar}
	if c, err := s.campaigns.GetCampaignByID(ctx, ar.CampaignID); err != nil {
		return nil, err
	} else if c != nil {
		d.CampaignName = c.Name
	}
	if sp, err := s.sponsors.GetSponsorByID(ctx, ar.SponsorID); err != nil {
		return nil, err
	} else if sp != nil {
		d.SponsorName = displayName(sp.Name, sp.Username)
	}
	if inf, err := s.influencers.GetInfluencerByID(ctx, ar.InfluencerID); err != nil {
		return nil, err
	} else if inf != nil {
		d.InfluencerName = displayName(inf.Name, inf.Username)
	}
	return d, nil
}

func (s *Service) ownedBySponsor(ctx context.Context, requestID, sponsorID int64) (*models.AdRequest, error) {
	ar, err := s.requests.GetAdRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if ar == nil {
		return nil, apperr.ErrNotFound
	}
	if ar.SponsorID != sponsorID {
		return nil, apperr.ErrOwnershipMismatch
	}
	return ar, nil
}

// checkReferences verifies the request's foreign rows still exist before a
// decision lands. The deciding party's own row is implied by the session.
func (s *Service) checkReferences(ctx context.Context, ar *models.AdRequest, needInfluencer, needSponsor bool) error {
	c, err := s.campaigns.GetCampaignByID(ctx, ar.CampaignID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("campaign: %w", apperr.ErrNotFound)
	}
	if needInfluencer {
		inf, err := s.influencers.GetInfluencerByID(ctx, ar.InfluencerID)
		if err != nil {
			return err
		}
		if inf == nil {
			return fmt.Errorf("influencer: %w", apperr.ErrNotFound)
		}
	}
	if needSponsor {
		sp, err := s.sponsors.GetSponsorByID(ctx, ar.SponsorID)
		if err != nil {
			return err
		}
		if sp == nil {
			return fmt.Errorf("sponsor: %w", apperr.ErrNotFound)
		}
	}
	return nil
}

func (s *Service) insert(ctx context.Context, ar *models.AdRequest) (*models.AdRequest, error) {
	id, err := s.requests.CreateAdRequest(ctx, ar)
	if err != nil {
		return nil, err
	}
	ar.ID = id

	s.logger.Info("ad request created",
		slog.Int64("request_id", id),
		slog.Int64("campaign_id", ar.CampaignID),
		slog.Int64("influencer_id", ar.InfluencerID),
	)
	metrics.AdRequestTransitions.WithLabelValues(string(ar.Status)).Inc()

	return ar, nil
}

func (s *Service) applyStatus(ctx context.Context, ar *models.AdRequest) (*models.AdRequest, error) {
	ar.Status = models.DeriveStatus(ar.SponsorAccepted, ar.InfluencerAccepted)
	if err := s.requests.UpdateAdRequest(ctx, ar); err != nil {
		return nil, err
	}
	metrics.AdRequestTransitions.WithLabelValues(string(ar.Status)).Inc()
	return ar, nil
}

func displayName(name, username string) string {
	if name != "" {
		return name
	}
	return username
}
