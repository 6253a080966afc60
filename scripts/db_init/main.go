// Command db_init prepares a database file: it applies migrations and seeds
// the default admin account.
package main

import (
	"context"
	"fmt"
	"os"

	dbfs "github.com/sponnect/sponnect/db"
	"github.com/sponnect/sponnect/internal/account"
	"github.com/sponnect/sponnect/internal/config"
	"github.com/sponnect/sponnect/internal/db"
	"github.com/sponnect/sponnect/internal/moderation"
	"github.com/sponnect/sponnect/internal/repository/sqlite"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	repo := sqlite.New(database, nil)
	mod := moderation.New(repo, repo, repo, repo, nil)
	accounts := account.New(repo, repo, repo, mod, nil)
	if err := accounts.EnsureDefaultAdmin(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Admin seed error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database initialized successfully.")
}
