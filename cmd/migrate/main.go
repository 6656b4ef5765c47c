package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Skotchmaster/shop_schema/internal/config"
	"github.com/Skotchmaster/shop_schema/internal/migrations"
	pkgdb "github.com/Skotchmaster/shop_schema/pkg/db"
	"github.com/Skotchmaster/shop_schema/pkg/logging"
)

const usage = `usage: migrate <command>

commands:
  up              apply every pending migration
  down            roll back the last applied migration
  to <id>         migrate up to and including <id>
  rollback <id>   roll back every migration after <id>
  list            print known migration ids`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	slog.SetDefault(logging.New(cfg.LogLevel).With("service", "migrate"))

	cmd, args := os.Args[1], os.Args[2:]
	if cmd == "list" {
		fmt.Println(strings.Join(migrations.IDs(), "\n"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DBOptions())
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = pkgdb.Close(db) }()

	switch cmd {
	case "up":
		err = migrations.Migrate(db)
	case "down":
		err = migrations.RollbackLast(db)
	case "to", "rollback":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		if cmd == "to" {
			err = migrations.MigrateTo(db, args[0])
		} else {
			err = migrations.RollbackTo(db, args[0])
		}
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
	slog.Info("migrate_done", "command", cmd)
}
