package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sponnect/sponnect/pkg/models"
)

func (r *SQLiteRepo) CreateAdmin(ctx context.Context, a *models.Admin) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("admin is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO admins (username, name, password_hash, created) VALUES (?, ?, ?, ?)`, a.Username, a.Name, a.PasswordHash, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetAdminByID(ctx context.Context, id int64) (*models.Admin, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, username, name, password_hash, created FROM admins WHERE id = ?`, id)
	return scanAdmin(row)
}

func (r *SQLiteRepo) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, username, name, password_hash, created FROM admins WHERE username = ?`, username)
	return scanAdmin(row)
}

func (r *SQLiteRepo) UpdateAdmin(ctx context.Context, a *models.Admin) error {
	if a == nil {
		return fmt.Errorf("admin is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE admins SET username = ?, name = ?, password_hash = ? WHERE id = ?`, a.Username, a.Name, a.PasswordHash, a.ID)
	return err
}

func (r *SQLiteRepo) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM admins`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanAdmin(row *sql.Row) (*models.Admin, error) {
	var a models.Admin
	var name sql.NullString
	if err := row.Scan(&a.ID, &a.Username, &name, &a.PasswordHash, &a.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if name.Valid {
		a.Name = name.String
	}

	return &a, nil
}
