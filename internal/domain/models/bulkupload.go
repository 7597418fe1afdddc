// internal/domain/models/bulkupload.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BulkUploadStatus is the state of a batch import job.
// The numeric keys match the public enum catalog so pollers can
// compare against the same values the options endpoint reports.
type BulkUploadStatus int

const (
	BulkSuccess BulkUploadStatus = 1
	BulkFailed  BulkUploadStatus = 2
	BulkPending BulkUploadStatus = 3
)

// Terminal reports whether the job has finished, successfully or not.
func (s BulkUploadStatus) Terminal() bool {
	return s == BulkSuccess || s == BulkFailed
}

// BulkUpload is a spreadsheet import job for local units of a single type
// within a single country. Created on file submission, processed by the
// import worker, and polled by clients while pending.
type BulkUpload struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	CountryID     primitive.ObjectID `bson:"country_id" json:"country_id"`
	LocalUnitType int                `bson:"local_unit_type" json:"local_unit_type"`

	FileName string `bson:"file_name" json:"file_name"`
	// FileData holds the raw workbook; imports are bounded by
	// xlsxutil.MaxUploadSize so documents stay well under Mongo's limit.
	FileData []byte `bson:"file_data" json:"-"`

	Status       BulkUploadStatus `bson:"status" json:"status"`
	SuccessCount int              `bson:"success_count" json:"success_count"`
	FailedCount  int              `bson:"failed_count" json:"failed_count"`
	ErrorMessage string           `bson:"error_message,omitempty" json:"error_message,omitempty"`
	// ErrorFile is a generated workbook describing failed rows.
	ErrorFile []byte `bson:"error_file,omitempty" json:"-"`
	HasErrorFile bool `bson:"has_error_file" json:"has_error_file"`

	TriggeredBy primitive.ObjectID `bson:"triggered_by,omitempty" json:"triggered_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// ExternallyManagedFlag enables external management of one local-unit type
// in one country. While enabled, units of that type are fed by the upstream
// sync (or bulk upload) and the manual review workflow is locked out.
type ExternallyManagedFlag struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	CountryID     primitive.ObjectID `bson:"country_id" json:"country_id"`
	LocalUnitType int                `bson:"local_unit_type" json:"local_unit_type"`
	Enabled       bool               `bson:"enabled" json:"enabled"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
