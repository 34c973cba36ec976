package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/amaclone/storefront/pkg/config"
	"github.com/amaclone/storefront/pkg/db"
	"github.com/amaclone/storefront/pkg/logger"
	"github.com/amaclone/storefront/pkg/migrate"
)

// gooseCommands are passed straight through to goose.
var gooseCommands = map[string]bool{
	"up":      true,
	"down":    true,
	"redo":    true,
	"reset":   true,
	"status":  true,
	"version": true,
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|redo|reset|status|version|goto|create|validate")
	dir := flag.String("dir", "", "goose migrations directory; empty uses the migrations built into the binary")
	name := flag.String("name", "", "migration name (for create)")
	target := flag.String("target", "", "target version (YYYYMMDDHHMMSS) for -cmd=goto")
	flag.Parse()

	switch *cmd {
	case "create":
		outDir := *dir
		if outDir == "" {
			outDir = migrate.DefaultDir
		}
		path, err := migrate.CreateSQLMigration(outDir, *name)
		exitOnErr("create migration", err)
		fmt.Println("created migration:", path)
		return

	case "validate":
		var err error
		if *dir == "" {
			err = migrate.ValidateEmbedded()
		} else {
			err = migrate.ValidateDir(*dir)
		}
		exitOnErr("validate migrations", err)
		fmt.Println("migration validation passed")
		return
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Console:     cfg.App.ConsoleLogs(),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	requireResource(ctx, logg, "sql database", err)

	ctx = logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"driver": dbClient.Driver(),
		"cmd":    *cmd,
		"dir":    *dir,
	})
	logg.Info(ctx, "migrate ready")

	switch {
	case *cmd == "goto":
		if *target == "" {
			fmt.Fprintln(os.Stderr, "missing -target for goto")
			os.Exit(1)
		}
		exitOnErr("goose goto", migrate.MigrateToVersion(ctx, sqlDB, dbClient.Driver(), *dir, *target))
	case gooseCommands[*cmd]:
		exitOnErr("goose "+*cmd, migrate.Run(ctx, sqlDB, dbClient.Driver(), *dir, *cmd))
	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
	logg.Info(ctx, "migrate finished")
}

func exitOnErr(action string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%s failed: %v\n", action, err)
	os.Exit(1)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
