// internal/app/system/workers/bulkimport.go
package workers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bulkuploadstore "github.com/dalemusser/fieldhub/internal/app/store/bulkuploads"
	countrystore "github.com/dalemusser/fieldhub/internal/app/store/countries"
	localunitstore "github.com/dalemusser/fieldhub/internal/app/store/localunits"
	"github.com/dalemusser/fieldhub/internal/app/system/timeouts"
	"github.com/dalemusser/fieldhub/internal/app/system/xlsxutil"
	"github.com/dalemusser/fieldhub/internal/domain/models"
)

// BulkImport is a background worker that drains the pending bulk-upload
// queue. Each job's workbook is parsed row by row; good rows upsert units
// as EXTERNALLY_MANAGED, bad rows are collected into an error-detail file
// attached to the finished job.
type BulkImport struct {
	jobs      *bulkuploadstore.Store
	units     *localunitstore.Store
	countries *countrystore.Store
	log       *zap.Logger
	interval  time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// NewBulkImport creates a new import worker.
func NewBulkImport(db *mongo.Database, logger *zap.Logger, interval time.Duration) *BulkImport {
	return &BulkImport{
		jobs:      bulkuploadstore.New(db),
		units:     localunitstore.New(db),
		countries: countrystore.New(db),
		log:       logger,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background import loop.
func (w *BulkImport) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("bulk import worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *BulkImport) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("bulk import worker stopped")
}

func (w *BulkImport) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.drain()
		}
	}
}

// drain processes pending jobs until the queue is empty.
func (w *BulkImport) drain() {
	for {
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.Batch())
		job, err := w.jobs.NextPending(ctx)
		if errors.Is(err, mongo.ErrNoDocuments) {
			cancel()
			return
		}
		if err != nil {
			w.log.Error("claim pending bulk upload failed", zap.Error(err))
			cancel()
			return
		}
		w.process(ctx, job)
		cancel()

		select {
		case <-w.stopCh:
			return
		default:
		}
	}
}

// ProcessOne claims and processes a single pending job. It exists so tests
// and manual triggers can run the pipeline without the ticker loop.
func (w *BulkImport) ProcessOne(ctx context.Context) error {
	job, err := w.jobs.NextPending(ctx)
	if err != nil {
		return err
	}
	w.process(ctx, job)
	return nil
}

func (w *BulkImport) process(ctx context.Context, job models.BulkUpload) {
	log := w.log.With(zap.String("job_id", job.ID.Hex()))

	country, err := w.countries.GetByID(ctx, job.CountryID)
	if err != nil {
		w.fail(ctx, job, "country not found")
		log.Error("bulk import: load country failed", zap.Error(err))
		return
	}

	parsed, rowErrs, err := xlsxutil.ParseLocalUnitRows(bytes.NewReader(job.FileData), job.LocalUnitType)
	if err != nil {
		w.fail(ctx, job, "the uploaded file could not be read")
		log.Warn("bulk import: unreadable workbook", zap.Error(err))
		return
	}

	succeeded := 0
	for i := range parsed {
		u := parsed[i]
		u.CountryID = job.CountryID
		u.RegionID = country.Region
		u.CreatedBy = job.TriggeredBy
		u.ModifiedBy = job.TriggeredBy

		if err := w.importUnit(ctx, &u); err != nil {
			rowErrs = append(rowErrs, xlsxutil.RowError{
				Row:     0,
				Message: fmt.Sprintf("%s: %v", u.BranchName(), err),
			})
			continue
		}
		succeeded++
	}

	status := models.BulkSuccess
	errMsg := ""
	var errFile []byte
	if len(rowErrs) > 0 {
		if succeeded == 0 {
			status = models.BulkFailed
			errMsg = "no rows could be imported"
		}
		errFile, err = xlsxutil.BuildErrorFile(rowErrs)
		if err != nil {
			log.Error("bulk import: build error file failed", zap.Error(err))
		}
	}

	if err := w.jobs.Complete(ctx, job.ID, status, succeeded, len(rowErrs), errMsg, errFile); err != nil {
		log.Error("bulk import: complete job failed", zap.Error(err))
		return
	}
	log.Info("bulk import finished",
		zap.Int("succeeded", succeeded),
		zap.Int("failed", len(rowErrs)))
}

func (w *BulkImport) importUnit(ctx context.Context, u *models.LocalUnit) error {
	return upsertImportedUnit(ctx, w.units, u)
}

func (w *BulkImport) fail(ctx context.Context, job models.BulkUpload, msg string) {
	if err := w.jobs.Complete(ctx, job.ID, models.BulkFailed, 0, 0, msg, nil); err != nil {
		w.log.Error("bulk import: mark job failed", zap.Error(err))
	}
}
