package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sponnect/sponnect/pkg/models"
)

func (r *SQLiteRepo) CreateInfluencer(ctx context.Context, i *models.Influencer) (int64, error) {
	if i == nil {
		return 0, fmt.Errorf("influencer is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO influencers (username, name, password_hash, category, niche, reach, created) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		i.Username, i.Name, i.PasswordHash, i.Category, i.Niche, i.Reach, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetInfluencerByID(ctx context.Context, id int64) (*models.Influencer, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, username, name, password_hash, category, niche, reach, created FROM influencers WHERE id = ?`, id)
	return scanInfluencer(row)
}

func (r *SQLiteRepo) GetInfluencerByUsername(ctx context.Context, username string) (*models.Influencer, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, username, name, password_hash, category, niche, reach, created FROM influencers WHERE username = ?`, username)
	return scanInfluencer(row)
}

func (r *SQLiteRepo) UpdateInfluencer(ctx context.Context, i *models.Influencer) error {
	if i == nil {
		return fmt.Errorf("influencer is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE influencers SET username = ?, name = ?, password_hash = ?, category = ?, niche = ?, reach = ? WHERE id = ?`,
		i.Username, i.Name, i.PasswordHash, i.Category, i.Niche, i.Reach, i.ID)
	return err
}

// SearchInfluencers filters by exact category and niche when non-empty and by
// minimum reach. Results are ordered by reach, widest first.
func (r *SQLiteRepo) SearchInfluencers(ctx context.Context, category, niche string, minReach int64) ([]models.Influencer, error) {
	query := `SELECT id, username, name, password_hash, category, niche, reach, created FROM influencers WHERE reach >= ?`
	args := []any{minReach}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	if niche != "" {
		query += ` AND niche = ?`
		args = append(args, niche)
	}
	query += ` ORDER BY reach DESC`

	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Influencer
	for rows.Next() {
		var i models.Influencer
		var name sql.NullString
		if err := rows.Scan(&i.ID, &i.Username, &name, &i.PasswordHash, &i.Category, &i.Niche, &i.Reach, &i.Created); err != nil {
			return nil, err
		}
		if name.Valid {
			i.Name = name.String
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CountInfluencers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM influencers`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanInfluencer(row *sql.Row) (*models.Influencer, error) {
	var i models.Influencer
	var name sql.NullString
	if err := row.Scan(&i.ID, &i.Username, &name, &i.PasswordHash, &i.Category, &i.Niche, &i.Reach, &i.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if name.Valid {
		i.Name = name.String
	}

	return &i, nil
}
