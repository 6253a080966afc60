package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sponnect/sponnect/pkg/models"
)

func (r *SQLiteRepo) CreateSponsor(ctx context.Context, s *models.Sponsor) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("sponsor is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO sponsors (username, name, password_hash, budget, industry, created) VALUES (?, ?, ?, ?, ?, ?)`,
		s.Username, s.Name, s.PasswordHash, s.Budget, s.Industry, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetSponsorByID(ctx context.Context, id int64) (*models.Sponsor, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, username, name, password_hash, budget, industry, created FROM sponsors WHERE id = ?`, id)
	return scanSponsor(row)
}

func (r *SQLiteRepo) GetSponsorByUsername(ctx context.Context, username string) (*models.Sponsor, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, username, name, password_hash, budget, industry, created FROM sponsors WHERE username = ?`, username)
	return scanSponsor(row)
}

func (r *SQLiteRepo) UpdateSponsor(ctx context.Context, s *models.Sponsor) error {
	if s == nil {
		return fmt.Errorf("sponsor is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE sponsors SET username = ?, name = ?, password_hash = ?, budget = ?, industry = ? WHERE id = ?`,
		s.Username, s.Name, s.PasswordHash, s.Budget, s.Industry, s.ID)
	return err
}

func (r *SQLiteRepo) CountSponsors(ctx context.Context) (int64, error) {
	var n int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM sponsors`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanSponsor(row *sql.Row) (*models.Sponsor, error) {
	var s models.Sponsor
	var name sql.NullString
	if err := row.Scan(&s.ID, &s.Username, &name, &s.PasswordHash, &s.Budget, &s.Industry, &s.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if name.Valid {
		s.Name = name.String
	}

	return &s, nil
}
