package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"appraise/internal/auth"
	domauth "appraise/internal/domain/auth"
	"appraise/internal/platform/config"
)

// Seed ensures an HR admin account exists so a fresh install can be operated.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	if email == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := cfg.SeedAdminPassword
	if password == "" {
		password = "ChangeMe123!"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (username, first_name, last_name, email, password_hash, role)
    VALUES ($1, 'HR', 'Admin', $2, $3, $4)
  `, cfg.SeedAdminUsername, email, hash, domauth.RoleHR)
	return err
}
