package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sponnect/sponnect/pkg/models"
)

func (r *SQLiteRepo) CreateFlag(ctx context.Context, f *models.Flag) (int64, error) {
	if f == nil {
		return 0, fmt.Errorf("flag is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO flags (reason, entity_type, entity_id, admin_id, created) VALUES (?, ?, ?, ?, ?)`,
		f.Reason, string(f.EntityType), f.EntityID, f.AdminID, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetFlag(ctx context.Context, entityType models.EntityType, entityID int64) (*models.Flag, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, reason, entity_type, entity_id, admin_id, created FROM flags WHERE entity_type = ? AND entity_id = ?`,
		string(entityType), entityID)
	var f models.Flag
	var et string
	if err := row.Scan(&f.ID, &f.Reason, &et, &f.EntityID, &f.AdminID, &f.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	f.EntityType = models.EntityType(et)
	return &f, nil
}

func (r *SQLiteRepo) DeleteFlag(ctx context.Context, entityType models.EntityType, entityID int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM flags WHERE entity_type = ? AND entity_id = ?`, string(entityType), entityID)
	return err
}

func (r *SQLiteRepo) ListFlagged(ctx context.Context, entityType models.EntityType) ([]int64, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT entity_id FROM flags WHERE entity_type = ? ORDER BY entity_id`, string(entityType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) CountFlags(ctx context.Context) (int64, error) {
	var n int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM flags`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
