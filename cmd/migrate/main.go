package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/pms-portal/billing-api/internal/config"
	"github.com/pms-portal/billing-api/internal/logger"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	migrationsDir := flag.String("dir", "./migrations", "directory holding goose SQL migrations")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate [-dir path] up|up-to VERSION|down|down-to VERSION|redo|reset|status|version|create NAME")
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing command")
	}
	command, arguments := args[0], args[1:]

	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Database credentials may live in Key Vault outside development
	cfg, err := config.LoadWithSecrets(context.Background(), log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	log.Info("running migration command",
		zap.String("command", command),
		zap.String("dir", *migrationsDir),
		zap.String("database", cfg.Database.Name))

	switch command {
	case "up":
		err = goose.Up(db, *migrationsDir)
	case "up-to", "down-to":
		if len(arguments) == 0 {
			return fmt.Errorf("%s requires a target version", command)
		}
		var version int64
		if _, scanErr := fmt.Sscan(arguments[0], &version); scanErr != nil {
			return fmt.Errorf("invalid version %q: %w", arguments[0], scanErr)
		}
		if command == "up-to" {
			err = goose.UpTo(db, *migrationsDir, version)
		} else {
			err = goose.DownTo(db, *migrationsDir, version)
		}
	case "down":
		err = goose.Down(db, *migrationsDir)
	case "redo":
		err = goose.Redo(db, *migrationsDir)
	case "reset":
		err = goose.Reset(db, *migrationsDir)
	case "status":
		err = goose.Status(db, *migrationsDir)
	case "version":
		err = goose.Version(db, *migrationsDir)
	case "create":
		if len(arguments) == 0 {
			return fmt.Errorf("create requires a migration name")
		}
		err = goose.Create(db, *migrationsDir, arguments[0], "sql")
	default:
		flag.Usage()
		return fmt.Errorf("unknown command: %s", command)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", command, err)
	}

	log.Info("migration command completed", zap.String("command", command))
	return nil
}
