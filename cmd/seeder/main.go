package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"book_my_hotel/internal/adapters/jsonserver"
	"book_my_hotel/internal/adapters/observability"
	redisad "book_my_hotel/internal/adapters/redis"
	"book_my_hotel/internal/app"
	"book_my_hotel/internal/domain"
	"book_my_hotel/internal/shared"
	mysqlrepo "book_my_hotel/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if err := rootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd(cfg shared.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seeder",
		Short: "Load the hotel catalog from a JSON server or a db.json file",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			workers, _ := cmd.Flags().GetInt("workers")
			rps, _ := cmd.Flags().GetInt("rps")
			id, _ := cmd.Flags().GetInt64("id")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, source, workers, rps, id)
		},
	}
	cmd.Flags().String("source", cfg.SeedSource, "JSON server base URL or path to a db.json file")
	cmd.Flags().Int("workers", cfg.SeedWorkers, "concurrent hotel upserts")
	cmd.Flags().Int("rps", cfg.SeedRPS, "outbound request rate limit when the source is a URL")
	cmd.Flags().Int64("id", 0, "reseed a single hotel by id instead of the whole catalog")
	return cmd
}

// catalogSource picks the HTTP client for URLs and the file reader otherwise.
func catalogSource(source string, rps int) domain.CatalogSource {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return jsonserver.New(source, rps)
	}
	return jsonserver.NewFileSource(source)
}

// checkReachable fails fast when a remote source does not answer. File
// sources have no Ping and are always considered reachable.
func checkReachable(ctx context.Context, src domain.CatalogSource) error {
	p, ok := src.(interface{ Ping(context.Context) bool })
	if !ok {
		return nil
	}
	if !p.Ping(ctx) {
		return errors.New("catalog source unreachable")
	}
	return nil
}

func run(ctx context.Context, cfg shared.Config, source string, workers, rps int, id int64) error {
	log.Info().
		Str("source", source).
		Int("workers", workers).
		Int("rps", rps).
		Int64("id", id).
		Msg("seeder starting")

	src := catalogSource(source, rps)
	if err := checkReachable(ctx, src); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info().Msg("db ping ok")

	rc := redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer rc.Close()

	seeder := app.NewCatalogSeeder(src, mysqlrepo.New(db), redisad.New(rc))
	if id > 0 {
		if err := seeder.SeedOne(ctx, id); err != nil {
			return err
		}
		log.Info().Int64("hotel_id", id).Msg("hotel reseeded")
		return nil
	}

	rep, err := seeder.Run(ctx, workers)
	if err != nil {
		return err
	}
	log.Info().
		Int("ok", rep.OK).
		Int("invalid", rep.Invalid).
		Int("failed", rep.Failed).
		Msg("seeding completed")
	if rep.Failed > 0 {
		return fmt.Errorf("%d hotels failed to seed", rep.Failed)
	}
	return nil
}
