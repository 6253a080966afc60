// Package account is the credential store logic: registration, login and
// self-service profile updates for the three role tables.
package account

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/sponnect/sponnect/internal/apperr"
	"github.com/sponnect/sponnect/internal/moderation"
	"github.com/sponnect/sponnect/internal/session"
	"github.com/sponnect/sponnect/pkg/models"
	"github.com/sponnect/sponnect/pkg/repository"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]{3,20}$`)
	alphaRe    = regexp.MustCompile(`^[a-zA-Z ]+$`)
)

// Default admin credentials seeded into an empty database.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin"
)

type Service struct {
	admins      repository.AdminRepo
	sponsors    repository.SponsorRepo
	influencers repository.InfluencerRepo
	moderation  *moderation.Service
	logger      *slog.Logger
}

func New(admins repository.AdminRepo, sponsors repository.SponsorRepo, influencers repository.InfluencerRepo, mod *moderation.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{admins: admins, sponsors: sponsors, influencers: influencers, moderation: mod, logger: logger}
}

type SponsorRegistration struct {
	Username        string
	Password        string
	ConfirmPassword string
	Name            string
	Budget          int64
	Industry        string
}

type InfluencerRegistration struct {
	Username        string
	Password        string
	ConfirmPassword string
	Name            string
	Category        string
	Niche           string
	Reach           int64
}

// RegisterSponsor validates and stores a new sponsor account. Usernames are
// unique per role table, not globally.
func (s *Service) RegisterSponsor(ctx context.Context, in SponsorRegistration) (*models.Sponsor, error) {
	if err := validateCredentials(in.Username, in.Password, in.ConfirmPassword); err != nil {
		return nil, err
	}
	if in.Budget <= 0 {
		return nil, apperr.Validationf("budget must be a positive number")
	}
	if !alphaRe.MatchString(in.Industry) {
		return nil, apperr.Validationf("industry must be alphabetic")
	}

	existing, err := s.sponsors.GetSponsorByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	sp := &models.Sponsor{
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: string(hash),
		Budget:       in.Budget,
		Industry:     in.Industry,
	}
	id, err := s.sponsors.CreateSponsor(ctx, sp)
	if err != nil {
		return nil, err
	}
	sp.ID = id

	s.logger.Info("sponsor registered", slog.Int64("sponsor_id", id), slog.String("username", in.Username))

	return sp, nil
}

// RegisterInfluencer validates and stores a new influencer account.
func (s *Service) RegisterInfluencer(ctx context.Context, in InfluencerRegistration) (*models.Influencer, error) {
	if err := validateCredentials(in.Username, in.Password, in.ConfirmPassword); err != nil {
		return nil, err
	}
	if !alphaRe.MatchString(in.Category) {
		return nil, apperr.Validationf("category must be alphabetic")
	}
	if !alphaRe.MatchString(in.Niche) {
		return nil, apperr.Validationf("niche must be alphabetic")
	}
	if in.Reach < 0 {
		return nil, apperr.Validationf("reach must not be negative")
	}

	existing, err := s.influencers.GetInfluencerByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	inf := &models.Influencer{
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: string(hash),
		Category:     in.Category,
		Niche:        in.Niche,
		Reach:        in.Reach,
	}
	id, err := s.influencers.CreateInfluencer(ctx, inf)
	if err != nil {
		return nil, err
	}
	inf.ID = id

	s.logger.Info("influencer registered", slog.Int64("influencer_id", id), slog.String("username", in.Username))

	return inf, nil
}

// Login verifies credentials against the role's table and builds the session
// context. The flagged bit is joined against the moderation ledger here,
// once; it is cached in the session for the session's lifetime and gated
// operations consult the cached bit, never the live ledger.
func (s *Service) Login(ctx context.Context, role models.Role, username, password string) (*session.Session, error) {
	var (
		id      int64
		name    string
		hash    string
		flagged bool
	)

	switch role {
	case models.RoleAdmin:
		a, err := s.admins.GetAdminByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, fmt.Errorf("admin not registered: %w", apperr.ErrNotFound)
		}
		id, name, hash = a.ID, a.Name, a.PasswordHash
	case models.RoleSponsor:
		sp, err := s.sponsors.GetSponsorByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if sp == nil {
			return nil, fmt.Errorf("sponsor not registered: %w", apperr.ErrNotFound)
		}
		id, name, hash = sp.ID, sp.Name, sp.PasswordHash
		if flagged, err = s.moderation.IsFlagged(ctx, models.EntitySponsor, id); err != nil {
			return nil, err
		}
	case models.RoleInfluencer:
		inf, err := s.influencers.GetInfluencerByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if inf == nil {
			return nil, fmt.Errorf("influencer not registered: %w", apperr.ErrNotFound)
		}
		id, name, hash = inf.ID, inf.Name, inf.PasswordHash
		if flagged, err = s.moderation.IsFlagged(ctx, models.EntityInfluencer, id); err != nil {
			return nil, err
		}
	default:
		return nil, apperr.Validationf("invalid user type %q", role)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, fmt.Errorf("incorrect password: %w", apperr.ErrNotAuthenticated)
	}

	return &session.Session{Role: role, UserID: id, Name: name, Flagged: flagged}, nil
}

type SponsorProfileUpdate struct {
	CurrentPassword string
	NewPassword     string
	Name            string
	Budget          int64
	Industry        string
}

type InfluencerProfileUpdate struct {
	CurrentPassword string
	NewPassword     string
	Name            string
	Category        string
	Niche           string
	Reach           int64
}

// UpdateSponsorProfile rewrites mutable profile fields after re-verifying
// the current password. The username is fixed at registration.
func (s *Service) UpdateSponsorProfile(ctx context.Context, sponsorID int64, in SponsorProfileUpdate) (*models.Sponsor, error) {
	sp, err := s.sponsors.GetSponsorByID(ctx, sponsorID)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, apperr.ErrNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(sp.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return nil, fmt.Errorf("incorrect password: %w", apperr.ErrNotAuthenticated)
	}
	if in.Budget <= 0 {
		return nil, apperr.Validationf("budget must be a positive number")
	}
	if !alphaRe.MatchString(in.Industry) {
		return nil, apperr.Validationf("industry must be alphabetic")
	}

	sp.Name = in.Name
	sp.Budget = in.Budget
	sp.Industry = in.Industry
	if in.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		sp.PasswordHash = string(hash)
	}

	if err := s.sponsors.UpdateSponsor(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

// UpdateInfluencerProfile is the influencer-side mirror of
// UpdateSponsorProfile.
func (s *Service) UpdateInfluencerProfile(ctx context.Context, influencerID int64, in InfluencerProfileUpdate) (*models.Influencer, error) {
	inf, err := s.influencers.GetInfluencerByID(ctx, influencerID)
	if err != nil {
		return nil, err
	}
	if inf == nil {
		return nil, apperr.ErrNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(inf.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return nil, fmt.Errorf("incorrect password: %w", apperr.ErrNotAuthenticated)
	}
	if !alphaRe.MatchString(in.Category) {
		return nil, apperr.Validationf("category must be alphabetic")
	}
	if !alphaRe.MatchString(in.Niche) {
		return nil, apperr.Validationf("niche must be alphabetic")
	}
	if in.Reach < 0 {
		return nil, apperr.Validationf("reach must not be negative")
	}

	inf.Name = in.Name
	inf.Category = in.Category
	inf.Niche = in.Niche
	inf.Reach = in.Reach
	if in.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		inf.PasswordHash = string(hash)
	}

	if err := s.influencers.UpdateInfluencer(ctx, inf); err != nil {
		return nil, err
	}
	return inf, nil
}

func (s *Service) GetSponsor(ctx context.Context, id int64) (*models.Sponsor, error) {
	sp, err := s.sponsors.GetSponsorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, apperr.ErrNotFound
	}
	return sp, nil
}

func (s *Service) GetInfluencer(ctx context.Context, id int64) (*models.Influencer, error) {
	inf, err := s.influencers.GetInfluencerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inf == nil {
		return nil, apperr.ErrNotFound
	}
	return inf, nil
}

func (s *Service) SearchInfluencers(ctx context.Context, category, niche string, minReach int64) ([]models.Influencer, error) {
	return s.influencers.SearchInfluencers(ctx, category, niche, minReach)
}

// EnsureDefaultAdmin seeds the initial admin account when the admins table
// is empty, so a fresh database is administrable out of the box.
func (s *Service) EnsureDefaultAdmin(ctx context.Context) error {
	n, err := s.admins.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.admins.CreateAdmin(ctx, &models.Admin{
		Username:     DefaultAdminUsername,
		Name:         "Admin",
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}

	s.logger.Info("default admin account created", slog.String("username", DefaultAdminUsername))

	return nil
}

func validateCredentials(username, password, confirm string) error {
	if !usernameRe.MatchString(username) {
		return apperr.Validationf("username must be 3-20 alphanumeric characters")
	}
	if password == "" {
		return apperr.Validationf("password is required")
	}
	if password != confirm {
		return apperr.Validationf("passwords do not match")
	}
	return nil
}
