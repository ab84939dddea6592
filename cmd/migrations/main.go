package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/vncsmyrnk/bookmarks/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/bookmarks/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("a command is required: up, down or status.")
	}
	command := os.Args[1]

	cfg, err := config.LoadPostgres()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	switch command {
	case "up":
		err = postgres.Migrate(ctx, db)
	case "down":
		err = postgres.Rollback(ctx, db)
	case "status":
		err = postgres.MigrationStatus(ctx, db)
	default:
		log.Fatalf("unknown command %q", command)
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("migrations %s: done.\n", command)
}
