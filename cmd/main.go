package main

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/simd-age/internal/config"
	"github.com/maxaizer/simd-age/internal/datasets"
	"github.com/maxaizer/simd-age/internal/logger"
	"github.com/maxaizer/simd-age/internal/metrics"
	"github.com/maxaizer/simd-age/internal/repositories"
	"github.com/maxaizer/simd-age/internal/services"
	log "github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"syscall"
)

func runHistory(cfg *config.Config, bus EventBus.Bus) (cleanup func()) {

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	if _, err = services.NewReportHistory(bus, repositories.NewReportsRepository(dbContext.DB)); err != nil {
		log.Fatalf("can't create report history: %v", err)
	}

	return func() {
		if err := dbContext.Close(); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("can't close db: %v", err)
		}
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Metrics.Address)

	bus := EventBus.New()

	if _, err := services.NewReportPrinter(bus, os.Stdout); err != nil {
		log.Fatalf("can't create report printer: %v", err)
	}

	if cfg.DB.Enabled() {
		closeHistory := runHistory(cfg, bus)
		defer closeHistory()
	}

	builder, err := services.NewReportBuilder(bus,
		datasets.NewDeprivationTable(cfg.Data.RegionColumn, cfg.Data.RankColumn),
		repositories.NewCachedPopulation(datasets.NewCensusTable(cfg.Data.CensusSkipRows)),
		services.Sources{
			CensusFile:      cfg.Data.CensusFile,
			DeprivationFile: cfg.Data.DeprivationFile,
		},
		services.ReportOptions{
			AgeThreshold:         cfg.Report.AgeThreshold,
			NormalizeRegionNames: cfg.Report.NormalizeRegionNames,
		})
	if err != nil {
		log.Fatalf("can't create report builder: %v", err)
	}

	if _, err = builder.Build(); err != nil {
		log.Fatalf("can't build report: %v", err)
	}

	if cfg.Report.Schedule == "" {
		return
	}

	scheduler, err := services.NewReportScheduler(builder, cfg.Report.Schedule)
	if err != nil {
		log.Fatalf("can't create report scheduler: %v", err)
	}

	<-ctx.Done()

	log.Info("Shutting down scheduler...")
	scheduler.Stop()
	log.Info("Scheduler stopped.")
}
