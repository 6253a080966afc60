package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sponnect/sponnect/pkg/models"
)

const adRequestColumns = `id, campaign_id, sponsor_id, influencer_id, messages, requirements, payment_amount, sponsor_accepted, influencer_accepted, status, payment_status, created`

func (r *SQLiteRepo) CreateAdRequest(ctx context.Context, ar *models.AdRequest) (int64, error) {
	if ar == nil {
		return 0, fmt.Errorf("ad request is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO ad_requests (campaign_id, sponsor_id, influencer_id, messages, requirements, payment_amount, sponsor_accepted, influencer_accepted, status, payment_status, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ar.CampaignID, ar.SponsorID, ar.InfluencerID, ar.Messages, ar.Requirements, ar.PaymentAmount,
		boolToNull(ar.SponsorAccepted), boolToNull(ar.InfluencerAccepted), string(ar.Status), ar.PaymentStatus, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetAdRequestByID(ctx context.Context, id int64) (*models.AdRequest, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+adRequestColumns+` FROM ad_requests WHERE id = ?`, id)
	var ar models.AdRequest
	if err := scanAdRequest(row.Scan, &ar); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	return &ar, nil
}

// UpdateAdRequest writes the whole mutable row in one statement so a
// decision and its derived status land atomically.
func (r *SQLiteRepo) UpdateAdRequest(ctx context.Context, ar *models.AdRequest) error {
	if ar == nil {
		return fmt.Errorf("ad request is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE ad_requests SET messages = ?, requirements = ?, payment_amount = ?, sponsor_accepted = ?, influencer_accepted = ?, status = ?, payment_status = ? WHERE id = ?`,
		ar.Messages, ar.Requirements, ar.PaymentAmount,
		boolToNull(ar.SponsorAccepted), boolToNull(ar.InfluencerAccepted), string(ar.Status), ar.PaymentStatus, ar.ID)
	return err
}

func (r *SQLiteRepo) DeleteAdRequest(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM ad_requests WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepo) ListAdRequestsBySponsor(ctx context.Context, sponsorID int64) ([]models.AdRequest, error) {
	return r.listAdRequests(ctx, `sponsor_id`, sponsorID)
}

func (r *SQLiteRepo) ListAdRequestsByInfluencer(ctx context.Context, influencerID int64) ([]models.AdRequest, error) {
	return r.listAdRequests(ctx, `influencer_id`, influencerID)
}

func (r *SQLiteRepo) listAdRequests(ctx context.Context, column string, id int64) ([]models.AdRequest, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+adRequestColumns+` FROM ad_requests WHERE `+column+` = ? ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AdRequest
	for rows.Next() {
		var ar models.AdRequest
		if err := scanAdRequest(rows.Scan, &ar); err != nil {
			return nil, err
		}
		out = append(out, ar)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) ExistsForTriple(ctx context.Context, campaignID, sponsorID, influencerID int64) (bool, error) {
	var n int64
	err := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM ad_requests WHERE campaign_id = ? AND sponsor_id = ? AND influencer_id = ?`,
		campaignID, sponsorID, influencerID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLiteRepo) CountAdRequestsByStatus(ctx context.Context, status models.Status) (int64, error) {
	var n int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM ad_requests WHERE status = ?`, string(status)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanAdRequest(scan func(...any) error, ar *models.AdRequest) error {
	var messages, reqs sql.NullString
	var sponsorAcc, influencerAcc sql.NullBool
	var status string
	if err := scan(&ar.ID, &ar.CampaignID, &ar.SponsorID, &ar.InfluencerID, &messages, &reqs, &ar.PaymentAmount, &sponsorAcc, &influencerAcc, &status, &ar.PaymentStatus, &ar.Created); err != nil {
		return err
	}
	ar.Messages = messages.String
	ar.Requirements = reqs.String
	ar.Status = models.Status(status)
	if sponsorAcc.Valid {
		v := sponsorAcc.Bool
		ar.SponsorAccepted = &v
	}
	if influencerAcc.Valid {
		v := influencerAcc.Bool
		ar.InfluencerAccepted = &v
	}
	return nil
}

// boolToNull maps a tri-state acceptance flag onto a nullable column.
func boolToNull(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
