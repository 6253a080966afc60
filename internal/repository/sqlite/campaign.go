package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sponnect/sponnect/pkg/models"
)

const campaignColumns = `id, sponsor_id, name, description, start_date, end_date, budget, visibility, goals, requirements, payment_amount, created`

func (r *SQLiteRepo) CreateCampaign(ctx context.Context, c *models.Campaign) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("campaign is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO campaigns (sponsor_id, name, description, start_date, end_date, budget, visibility, goals, requirements, payment_amount, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.SponsorID, c.Name, c.Description, c.StartDate, c.EndDate, c.Budget, c.Visibility, c.Goals, c.Requirements, c.PaymentAmount, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetCampaignByID(ctx context.Context, id int64) (*models.Campaign, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = ?`, id)
	var c models.Campaign
	if err := scanCampaign(row.Scan, &c); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	return &c, nil
}

func (r *SQLiteRepo) UpdateCampaign(ctx context.Context, c *models.Campaign) error {
	if c == nil {
		return fmt.Errorf("campaign is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE campaigns SET name = ?, description = ?, start_date = ?, end_date = ?, budget = ?, visibility = ?, goals = ?, requirements = ?, payment_amount = ? WHERE id = ?`,
		c.Name, c.Description, c.StartDate, c.EndDate, c.Budget, c.Visibility, c.Goals, c.Requirements, c.PaymentAmount, c.ID)
	return err
}

// DeleteCampaignCascade removes the campaign together with its ad requests.
// The storage schema has no ON DELETE CASCADE, so both deletes run in one
// transaction to keep orphaned ad requests from surviving a partial failure.
func (r *SQLiteRepo) DeleteCampaignCascade(ctx context.Context, id int64) error {
	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM ad_requests WHERE campaign_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
		return err
	})
}

func (r *SQLiteRepo) ListCampaignsBySponsor(ctx context.Context, sponsorID int64) ([]models.Campaign, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE sponsor_id = ? ORDER BY id`, sponsorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCampaigns(rows)
}

func (r *SQLiteRepo) SearchPublicCampaigns(ctx context.Context, q string) ([]models.Campaign, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE visibility = ? AND name LIKE ? ORDER BY id`,
		models.VisibilityPublic, "%"+q+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCampaigns(rows)
}

func (r *SQLiteRepo) CountCampaignsByVisibility(ctx context.Context, visibility string) (int64, error) {
	var n int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM campaigns WHERE visibility = ?`, visibility).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanCampaign(scan func(...any) error, c *models.Campaign) error {
	var desc, goals, reqs sql.NullString
	if err := scan(&c.ID, &c.SponsorID, &c.Name, &desc, &c.StartDate, &c.EndDate, &c.Budget, &c.Visibility, &goals, &reqs, &c.PaymentAmount, &c.Created); err != nil {
		return err
	}
	c.Description = desc.String
	c.Goals = goals.String
	c.Requirements = reqs.String
	return nil
}

func collectCampaigns(rows *sql.Rows) ([]models.Campaign, error) {
	var out []models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := scanCampaign(rows.Scan, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
