// Package moderation is the admin-authored flag ledger. A flag suspends an
// entity's normal capabilities: flagged accounts are locked out of gated
// operations from their next login on, flagged campaigns cannot be updated
// or receive new offers.
package moderation

import (
	"context"
	"io"
	"log/slog"

	"github.com/sponnect/sponnect/internal/apperr"
	"github.com/sponnect/sponnect/pkg/models"
	"github.com/sponnect/sponnect/pkg/repository"
)

// FlagReason is the single compliance reason recorded on every flag.
const FlagReason = "Flagged by admin for violating platform terms"

type Service struct {
	flags       repository.FlagRepo
	sponsors    repository.SponsorRepo
	influencers repository.InfluencerRepo
	campaigns   repository.CampaignRepo
	logger      *slog.Logger
}

func New(flags repository.FlagRepo, sponsors repository.SponsorRepo, influencers repository.InfluencerRepo, campaigns repository.CampaignRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{flags: flags, sponsors: sponsors, influencers: influencers, campaigns: campaigns, logger: logger}
}

// Flag records a moderation flag against the entity. At most one active flag
// exists per (entity_type, entity_id); a second attempt conflicts.
func (s *Service) Flag(ctx context.Context, adminID int64, entityType models.EntityType, entityID int64) (*models.Flag, error) {
	exists, err := s.entityExists(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}

	existing, err := s.flags.GetFlag(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrAlreadyFlagged
	}

	f := &models.Flag{
		Reason:     FlagReason,
		EntityType: entityType,
		EntityID:   entityID,
		AdminID:    adminID,
	}
	id, err := s.flags.CreateFlag(ctx, f)
	if err != nil {
		return nil, err
	}
	f.ID = id

	s.logger.Info("entity flagged",
		slog.String("entity_type", string(entityType)),
		slog.Int64("entity_id", entityID),
		slog.Int64("admin_id", adminID),
	)

	return f, nil
}

// Unflag removes the single active flag for the entity.
func (s *Service) Unflag(ctx context.Context, adminID int64, entityType models.EntityType, entityID int64) error {
	existing, err := s.flags.GetFlag(ctx, entityType, entityID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.ErrNotFlagged
	}

	if err := s.flags.DeleteFlag(ctx, entityType, entityID); err != nil {
		return err
	}

	s.logger.Info("entity unflagged",
		slog.String("entity_type", string(entityType)),
		slog.Int64("entity_id", entityID),
		slog.Int64("admin_id", adminID),
	)

	return nil
}

func (s *Service) IsFlagged(ctx context.Context, entityType models.EntityType, entityID int64) (bool, error) {
	f, err := s.flags.GetFlag(ctx, entityType, entityID)
	if err != nil {
		return false, err
	}
	return f != nil, nil
}

func (s *Service) ListFlagged(ctx context.Context, entityType models.EntityType) ([]int64, error) {
	return s.flags.ListFlagged(ctx, entityType)
}

func (s *Service) entityExists(ctx context.Context, entityType models.EntityType, entityID int64) (bool, error) {
	switch entityType {
	case models.EntitySponsor:
		sp, err := s.sponsors.GetSponsorByID(ctx, entityID)
		return sp != nil, err
	case models.EntityInfluencer:
		inf, err := s.influencers.GetInfluencerByID(ctx, entityID)
		return inf != nil, err
	case models.EntityCampaign:
		c, err := s.campaigns.GetCampaignByID(ctx, entityID)
		return c != nil, err
	}
	return false, apperr.Validationf("invalid entity type %q", entityType)
}
