package cli

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/andrekvist/burgersim/internal/adapters/httpapi"
	"github.com/andrekvist/burgersim/internal/adapters/metrics"
	"github.com/andrekvist/burgersim/internal/adapters/persistence"
	"github.com/andrekvist/burgersim/internal/application/session"
	"github.com/andrekvist/burgersim/internal/domain/level"
	"github.com/andrekvist/burgersim/internal/infrastructure/config"
	"github.com/andrekvist/burgersim/internal/infrastructure/database"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return err
			}

			repo := persistence.NewGormGameRepository(db)
			catalog := level.NewCatalog()

			var opts []httpapi.Option
			var gameMetrics session.Metrics
			if cfg.Metrics.Enabled {
				registry := metrics.NewRegistry()
				gameMetrics = metrics.NewGameMetricsCollector(registry)
				opts = append(opts, httpapi.WithMetricsHandler(registry.Handler()))
			}

			if cfg.Logging.Level == "debug" {
				opts = append(opts, httpapi.WithRequestLogging())
			}

			limiter := httpapi.NewRateLimiter(
				cfg.Server.RateLimit.RequestsPerSecond,
				cfg.Server.RateLimit.Burst,
			)
			opts = append(opts, httpapi.WithRateLimiter(limiter.Middleware))

			service := session.NewService(repo, catalog, gameMetrics)
			server := httpapi.NewServer(service, opts...)

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			log.Printf("burgersim listening on %s", addr)
			return http.ListenAndServe(addr, server)
		},
	}
}
