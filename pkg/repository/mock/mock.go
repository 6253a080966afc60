// Package mock provides in-memory repository implementations for tests.
// Each repo stores rows in a map and can be forced to fail by setting Err.
package mock

import (
	"context"
	"sort"
	"strings"

	"github.com/sponnect/sponnect/pkg/models"
	"github.com/sponnect/sponnect/pkg/repository"
)

type Mocks struct {
	Admins      *AdminRepo
	Sponsors    *SponsorRepo
	Influencers *InfluencerRepo
	Campaigns   *CampaignRepo
	AdRequests  *AdRequestRepo
	Flags       *FlagRepo
}

func NewMocks() *Mocks {
	m := &Mocks{
		Admins:      &AdminRepo{rows: map[int64]*models.Admin{}},
		Sponsors:    &SponsorRepo{rows: map[int64]*models.Sponsor{}},
		Influencers: &InfluencerRepo{rows: map[int64]*models.Influencer{}},
		Campaigns:   &CampaignRepo{rows: map[int64]*models.Campaign{}},
		AdRequests:  &AdRequestRepo{rows: map[int64]*models.AdRequest{}},
		Flags:       &FlagRepo{rows: map[int64]*models.Flag{}},
	}
	m.Campaigns.adRequests = m.AdRequests
	return m
}

var _ repository.AdminRepo = (*AdminRepo)(nil)
var _ repository.SponsorRepo = (*SponsorRepo)(nil)
var _ repository.InfluencerRepo = (*InfluencerRepo)(nil)
var _ repository.CampaignRepo = (*CampaignRepo)(nil)
var _ repository.AdRequestRepo = (*AdRequestRepo)(nil)
var _ repository.FlagRepo = (*FlagRepo)(nil)

type AdminRepo struct {
	rows   map[int64]*models.Admin
	nextID int64
	Err    error
}

func (m *AdminRepo) CreateAdmin(ctx context.Context, a *models.Admin) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	cp := *a
	cp.ID = m.nextID
	m.rows[cp.ID] = &cp
	return cp.ID, nil
}

func (m *AdminRepo) GetAdminByID(ctx context.Context, id int64) (*models.Admin, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.rows[id], nil
}

func (m *AdminRepo) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, a := range m.rows {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, nil
}

func (m *AdminRepo) UpdateAdmin(ctx context.Context, a *models.Admin) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *a
	m.rows[a.ID] = &cp
	return nil
}

func (m *AdminRepo) CountAdmins(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.rows)), nil
}

type SponsorRepo struct {
	rows   map[int64]*models.Sponsor
	nextID int64
	Err    error
}

func (m *SponsorRepo) CreateSponsor(ctx context.Context, s *models.Sponsor) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	cp := *s
	cp.ID = m.nextID
	m.rows[cp.ID] = &cp
	return cp.ID, nil
}

func (m *SponsorRepo) GetSponsorByID(ctx context.Context, id int64) (*models.Sponsor, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.rows[id], nil
}

func (m *SponsorRepo) GetSponsorByUsername(ctx context.Context, username string) (*models.Sponsor, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, s := range m.rows {
		if s.Username == username {
			return s, nil
		}
	}
	return nil, nil
}

func (m *SponsorRepo) UpdateSponsor(ctx context.Context, s *models.Sponsor) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *SponsorRepo) CountSponsors(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.rows)), nil
}

type InfluencerRepo struct {
	rows   map[int64]*models.Influencer
	nextID int64
	Err    error
}

func (m *InfluencerRepo) CreateInfluencer(ctx context.Context, i *models.Influencer) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	cp := *i
	cp.ID = m.nextID
	m.rows[cp.ID] = &cp
	return cp.ID, nil
}

func (m *InfluencerRepo) GetInfluencerByID(ctx context.Context, id int64) (*models.Influencer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.rows[id], nil
}

func (m *InfluencerRepo) GetInfluencerByUsername(ctx context.Context, username string) (*models.Influencer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, i := range m.rows {
		if i.Username == username {
			return i, nil
		}
	}
	return nil, nil
}

func (m *InfluencerRepo) UpdateInfluencer(ctx context.Context, i *models.Influencer) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *i
	m.rows[i.ID] = &cp
	return nil
}

func (m *InfluencerRepo) SearchInfluencers(ctx context.Context, category, niche string, minReach int64) ([]models.Influencer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Influencer
	for _, i := range m.rows {
		if i.Reach < minReach {
			continue
		}
		if category != "" && i.Category != category {
			continue
		}
		if niche != "" && i.Niche != niche {
			continue
		}
		out = append(out, *i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Reach > out[b].Reach })
	return out, nil
}

func (m *InfluencerRepo) CountInfluencers(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.rows)), nil
}

type CampaignRepo struct {
	rows       map[int64]*models.Campaign
	nextID     int64
	adRequests *AdRequestRepo
	Err        error
}

func (m *CampaignRepo) CreateCampaign(ctx context.Context, c *models.Campaign) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	cp := *c
	cp.ID = m.nextID
	m.rows[cp.ID] = &cp
	return cp.ID, nil
}

func (m *CampaignRepo) GetCampaignByID(ctx context.Context, id int64) (*models.Campaign, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.rows[id], nil
}

func (m *CampaignRepo) UpdateCampaign(ctx context.Context, c *models.Campaign) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *CampaignRepo) DeleteCampaignCascade(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.rows, id)
	if m.adRequests != nil {
		for arID, ar := range m.adRequests.rows {
			if ar.CampaignID == id {
				delete(m.adRequests.rows, arID)
			}
		}
	}
	return nil
}

func (m *CampaignRepo) ListCampaignsBySponsor(ctx context.Context, sponsorID int64) ([]models.Campaign, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Campaign
	for _, c := range m.rows {
		if c.SponsorID == sponsorID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (m *CampaignRepo) SearchPublicCampaigns(ctx context.Context, q string) ([]models.Campaign, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Campaign
	for _, c := range m.rows {
		if c.Visibility != models.VisibilityPublic {
			continue
		}
		if q != "" && !strings.Contains(c.Name, q) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (m *CampaignRepo) CountCampaignsByVisibility(ctx context.Context, visibility string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	var n int64
	for _, c := range m.rows {
		if c.Visibility == visibility {
			n++
		}
	}
	return n, nil
}

type AdRequestRepo struct {
	rows   map[int64]*models.AdRequest
	nextID int64
	Err    error
}

func (m *AdRequestRepo) CreateAdRequest(ctx context.Context, ar *models.AdRequest) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	cp := *ar
	cp.ID = m.nextID
	m.rows[cp.ID] = &cp
	return cp.ID, nil
}

func (m *AdRequestRepo) GetAdRequestByID(ctx context.Context, id int64) (*models.AdRequest, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if ar, ok := m.rows[id]; ok {
		cp := *ar
		return &cp, nil
	}
	return nil, nil
}

func (m *AdRequestRepo) UpdateAdRequest(ctx context.Context, ar *models.AdRequest) error {
	if m.Err != nil {
		return m.Err
	}
	cp := *ar
	m.rows[ar.ID] = &cp
	return nil
}

func (m *AdRequestRepo) DeleteAdRequest(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.rows, id)
	return nil
}

func (m *AdRequestRepo) ListAdRequestsBySponsor(ctx context.Context, sponsorID int64) ([]models.AdRequest, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.AdRequest
	for _, ar := range m.rows {
		if ar.SponsorID == sponsorID {
			out = append(out, *ar)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (m *AdRequestRepo) ListAdRequestsByInfluencer(ctx context.Context, influencerID int64) ([]models.AdRequest, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.AdRequest
	for _, ar := range m.rows {
		if ar.InfluencerID == influencerID {
			out = append(out, *ar)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (m *AdRequestRepo) ExistsForTriple(ctx context.Context, campaignID, sponsorID, influencerID int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, ar := range m.rows {
		if ar.CampaignID == campaignID && ar.SponsorID == sponsorID && ar.InfluencerID == influencerID {
			return true, nil
		}
	}
	return false, nil
}

func (m *AdRequestRepo) CountAdRequestsByStatus(ctx context.Context, status models.Status) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	var n int64
	for _, ar := range m.rows {
		if ar.Status == status {
			n++
		}
	}
	return n, nil
}

type FlagRepo struct {
	rows   map[int64]*models.Flag
	nextID int64
	Err    error
}

func (m *FlagRepo) CreateFlag(ctx context.Context, f *models.Flag) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	m.nextID++
	cp := *f
	cp.ID = m.nextID
	m.rows[cp.ID] = &cp
	return cp.ID, nil
}

func (m *FlagRepo) GetFlag(ctx context.Context, entityType models.EntityType, entityID int64) (*models.Flag, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, f := range m.rows {
		if f.EntityType == entityType && f.EntityID == entityID {
			return f, nil
		}
	}
	return nil, nil
}

func (m *FlagRepo) DeleteFlag(ctx context.Context, entityType models.EntityType, entityID int64) error {
	if m.Err != nil {
		return m.Err
	}
	for id, f := range m.rows {
		if f.EntityType == entityType && f.EntityID == entityID {
			delete(m.rows, id)
		}
	}
	return nil
}

func (m *FlagRepo) ListFlagged(ctx context.Context, entityType models.EntityType) ([]int64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []int64
	for _, f := range m.rows {
		if f.EntityType == entityType {
			out = append(out, f.EntityID)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out, nil
}

func (m *FlagRepo) CountFlags(ctx context.Context) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.rows)), nil
}
