// internal/app/system/workers/feedsync.go
package workers

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	countrystore "github.com/dalemusser/fieldhub/internal/app/store/countries"
	extmanagedstore "github.com/dalemusser/fieldhub/internal/app/store/extmanaged"
	localunitstore "github.com/dalemusser/fieldhub/internal/app/store/localunits"
	"github.com/dalemusser/fieldhub/internal/app/system/feedclient"
	"github.com/dalemusser/fieldhub/internal/app/system/poll"
	"github.com/dalemusser/fieldhub/internal/app/system/xlsxutil"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// FeedSync pulls externally-managed unit data from the upstream feed. For
// every enabled (country, type) flag it requests an export job, polls the
// job until it is ready, downloads the workbook, and upserts the rows as
// EXTERNALLY_MANAGED units.
type FeedSync struct {
	flags     *extmanagedstore.Store
	countries *countrystore.Store
	units     *localunitstore.Store
	client    *feedclient.Client
	log       *zap.Logger

	interval     time.Duration
	pollInterval time.Duration
	pollAttempts int

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewFeedSync creates a feed sync worker. interval is the full-sweep
// cadence; export jobs are polled every pollInterval up to pollAttempts
// times before a (country, type) pair is skipped for this sweep.
func NewFeedSync(db *mongo.Database, client *feedclient.Client, logger *zap.Logger, interval, pollInterval time.Duration, pollAttempts int) *FeedSync {
	return &FeedSync{
		flags:        extmanagedstore.New(db),
		countries:    countrystore.New(db),
		units:        localunitstore.New(db),
		client:       client,
		log:          logger,
		interval:     interval,
		pollInterval: pollInterval,
		pollAttempts: pollAttempts,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the background sync loop.
func (w *FeedSync) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("feed sync worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("poll_interval", w.pollInterval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *FeedSync) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("feed sync worker stopped")
}

func (w *FeedSync) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

// sweep syncs every enabled flag once. A failing pair is logged and
// skipped; it will be retried on the next sweep.
func (w *FeedSync) sweep() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-w.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	flags, err := w.flags.ListEnabled(ctx)
	if err != nil {
		w.log.Error("feed sync: list enabled flags failed", zap.Error(err))
		return
	}

	for _, flag := range flags {
		if err := w.SyncPair(ctx, flag); err != nil {
			w.log.Warn("feed sync: pair failed",
				zap.String("country_id", flag.CountryID.Hex()),
				zap.Int("local_unit_type", flag.LocalUnitType),
				zap.Error(err))
		}
	}
}

// SyncPair runs the full export-poll-download-upsert cycle for one enabled
// (country, type) flag.
func (w *FeedSync) SyncPair(ctx context.Context, flag models.ExternallyManagedFlag) error {
	country, err := w.countries.GetByID(ctx, flag.CountryID)
	if err != nil {
		return fmt.Errorf("load country: %w", err)
	}

	job, err := w.client.RequestExport(ctx, country.ISO3, flag.LocalUnitType)
	if err != nil {
		return err
	}

	task := poll.Task{
		Interval:    w.pollInterval,
		MaxAttempts: w.pollAttempts,
		Fn: func(ctx context.Context) (bool, error) {
			job, err = w.client.JobStatus(ctx, job.ID)
			if err != nil {
				return false, err
			}
			return job.Terminal(), nil
		},
	}
	if !job.Terminal() {
		if err := task.Run(ctx); err != nil {
			return fmt.Errorf("poll export job: %w", err)
		}
	}
	if job.Status == feedclient.JobFailed {
		return fmt.Errorf("feed export failed: %s", job.Error)
	}

	data, err := w.client.Download(ctx, job.FileURL)
	if err != nil {
		return err
	}

	units, rowErrs, err := xlsxutil.ParseLocalUnitRows(bytes.NewReader(data), flag.LocalUnitType)
	if err != nil {
		return fmt.Errorf("parse feed workbook: %w", err)
	}

	imported := 0
	for i := range units {
		u := units[i]
		u.CountryID = country.ID
		u.RegionID = country.Region
		if err := upsertImportedUnit(ctx, w.units, &u); err != nil {
			w.log.Warn("feed sync: upsert failed",
				zap.String("branch", u.BranchName()),
				zap.Error(err))
			continue
		}
		imported++
	}

	w.log.Info("feed sync: pair imported",
		zap.String("country", country.ISO3),
		zap.Int("local_unit_type", flag.LocalUnitType),
		zap.Int("imported", imported),
		zap.Int("bad_rows", len(rowErrs)))
	return nil
}
