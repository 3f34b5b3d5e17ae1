package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"gocart/internal/handler/middleware"
	"gocart/internal/pkg/config"
	"gocart/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	dir := flag.String("dir", "file://migrations", "migration directory URL")
	atlasBin := flag.String("atlas", "atlas", "path to the atlas binary")
	dryRun := flag.Bool("dry-run", false, "print pending migrations without applying them")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := migrate(ctx, logger, cfg.DB, *atlasBin, *dir, *dryRun); err != nil {
		logger.Error("マイグレーションに失敗しました", "error", err)
		os.Exit(1)
	}
}

func migrate(ctx context.Context, logger *slog.Logger, db config.DBConfig, atlasBin, dir string, dryRun bool) error {
	client, err := atlasexec.NewClient(".", atlasBin)
	if err != nil {
		return errs.Wrap(err, "init atlas client")
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    db.BuildDSN(),
		DirURL: dir,
		DryRun: dryRun,
	})
	if err != nil {
		return errs.Wrapf(err, "apply migrations from %s", dir)
	}

	applied := make([]string, 0, len(res.Applied))
	for _, f := range res.Applied {
		applied = append(applied, f.Name)
	}
	logger.Info("マイグレーション実行完了",
		"database", db.DBName,
		"current", res.Current,
		"target", res.Target,
		"applied", applied,
		"dry_run", dryRun)
	return nil
}
