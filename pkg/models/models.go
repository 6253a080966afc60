package models

import "fmt"

// Role identifies which of the three account tables a session is bound to.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSponsor    Role = "sponsor"
	RoleInfluencer Role = "influencer"
)

// ParseRole validates a user_type form value against the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleSponsor, RoleInfluencer:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid user type %q", s)
}

// EntityType names what a moderation flag points at.
type EntityType string

const (
	EntityInfluencer EntityType = "influencer"
	EntitySponsor    EntityType = "sponsor"
	EntityCampaign   EntityType = "campaign"
)

func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(s) {
	case EntityInfluencer, EntitySponsor, EntityCampaign:
		return EntityType(s), nil
	}
	return "", fmt.Errorf("invalid entity type %q", s)
}

// Status of an ad request, always derived from the two acceptance flags.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

// DeriveStatus computes the request status from the two tri-state acceptance
// flags. A nil flag means that party has not decided yet. Any explicit false
// rejects; both true accepts; everything else stays pending. Flipping a flag
// later can move a request back out of a terminal state (renegotiation).
func DeriveStatus(sponsorAccepted, influencerAccepted *bool) Status {
	if (sponsorAccepted != nil && !*sponsorAccepted) || (influencerAccepted != nil && !*influencerAccepted) {
		return StatusRejected
	}
	if sponsorAccepted != nil && *sponsorAccepted && influencerAccepted != nil && *influencerAccepted {
		return StatusAccepted
	}
	return StatusPending
}

type Admin struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Name         string `json:"name,omitempty" db:"name"`
	PasswordHash string `json:"-" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
}

type Sponsor struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Name         string `json:"name,omitempty" db:"name"`
	PasswordHash string `json:"-" db:"password_hash"`
	Budget       int64  `json:"budget" db:"budget"`
	Industry     string `json:"industry" db:"industry"`
	Created      int64  `json:"created" db:"created"`
}

type Influencer struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Name         string `json:"name,omitempty" db:"name"`
	PasswordHash string `json:"-" db:"password_hash"`
	Category     string `json:"category" db:"category"`
	Niche        string `json:"niche" db:"niche"`
	Reach        int64  `json:"reach" db:"reach"`
	Created      int64  `json:"created" db:"created"`
}

// Campaign dates are YYYY-MM-DD strings, matching the inbound form format.
type Campaign struct {
	ID            int64  `json:"id" db:"id"`
	SponsorID     int64  `json:"sponsor_id" db:"sponsor_id"`
	Name          string `json:"name" db:"name"`
	Description   string `json:"description,omitempty" db:"description"`
	StartDate     string `json:"start_date" db:"start_date"`
	EndDate       string `json:"end_date" db:"end_date"`
	Budget        int64  `json:"budget" db:"budget"`
	Visibility    string `json:"visibility" db:"visibility"`
	Goals         string `json:"goals,omitempty" db:"goals"`
	Requirements  string `json:"requirements,omitempty" db:"requirements"`
	PaymentAmount int64  `json:"payment_amount" db:"payment_amount"`
	Created       int64  `json:"created" db:"created"`
}

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type AdRequest struct {
	ID                 int64  `json:"id" db:"id"`
	CampaignID         int64  `json:"campaign_id" db:"campaign_id"`
	SponsorID          int64  `json:"sponsor_id" db:"sponsor_id"`
	InfluencerID       int64  `json:"influencer_id" db:"influencer_id"`
	Messages           string `json:"messages,omitempty" db:"messages"`
	Requirements       string `json:"requirements,omitempty" db:"requirements"`
	PaymentAmount      int64  `json:"payment_amount" db:"payment_amount"`
	SponsorAccepted    *bool  `json:"sponsor_accepted,omitempty" db:"sponsor_accepted"`
	InfluencerAccepted *bool  `json:"influencer_accepted,omitempty" db:"influencer_accepted"`
	Status             Status `json:"status" db:"status"`
	PaymentStatus      bool   `json:"payment_status" db:"payment_status"`
	Created            int64  `json:"created" db:"created"`
}

type Flag struct {
	ID         int64      `json:"id" db:"id"`
	Reason     string     `json:"reason" db:"reason"`
	EntityType EntityType `json:"entity_type" db:"entity_type"`
	EntityID   int64      `json:"entity_id" db:"entity_id"`
	AdminID    int64      `json:"admin_id" db:"admin_id"`
	Created    int64      `json:"created" db:"created"`
}
