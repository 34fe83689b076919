// Command backfill populates the rate store over a range of past dates,
// pacing provider requests to stay under the published rate limit.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v3"

	"github.com/gfranzini/expense-rate-service/internal/application/service"
	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/api"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/config"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/db"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/logger"
)

func main() {
	startFlag := flag.String("start", "", "start date YYYY-MM-DD, walking backward (default: yesterday)")
	daysFlag := flag.Int("days", 30, "number of days to backfill")
	pauseFlag := flag.Duration("pause", 0, "pause between provider requests (default: BACKFILL_PAUSE or 6s)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel))

	start := entity.DateOnly(time.Now()).AddDate(0, 0, -1)
	if *startFlag != "" {
		start, err = time.Parse(entity.DateLayout, *startFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -start %q: use YYYY-MM-DD\n", *startFlag)
			os.Exit(1)
		}
	}

	pause := cfg.BackfillPause
	if *pauseFlag > 0 {
		pause = *pauseFlag
	}

	badgerOpts := badger.DefaultOptions(filepath.Join(cfg.DataDir, "badger"))
	badgerOpts.Logger = nil

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer badgerDB.Close()

	rateRepo := db.NewBadgerRateRepository(badgerDB)
	provider := api.NewCurrencyAPIClient(api.Config{
		BaseURL: cfg.ProviderBaseURL,
		APIKey:  cfg.ProviderAPIKey,
		Timeout: cfg.ProviderTimeout,
	}, nil, log)

	job := service.NewBackfillService(rateRepo, provider, pause, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := job.Run(ctx, start, *daysFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backfill aborted: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("backfill complete: fetched=%d skipped=%d failed=%d\n",
		summary.Fetched, summary.Skipped, summary.Failed)
}
