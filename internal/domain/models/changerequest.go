// internal/domain/models/changerequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChangeRequestStatus is the state of a pending edit.
type ChangeRequestStatus string

const (
	ChangePending  ChangeRequestStatus = "pending"
	ChangeApproved ChangeRequestStatus = "approved"
	ChangeRejected ChangeRequestStatus = "rejected"
)

// ChangeRequest holds the previous snapshot of a LocalUnit so a reviewer
// can diff the proposed value against the last accepted one. Exactly one
// pending change request exists per unit at a time; it is closed by a
// validate (approved) or revert (rejected) action.
type ChangeRequest struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	LocalUnitID primitive.ObjectID  `bson:"local_unit_id" json:"local_unit_id"`
	PreviousData LocalUnit          `bson:"previous_data" json:"previous_data"`
	// PreviousStatus is restored on revert.
	PreviousStatus ValidationStatus    `bson:"previous_status" json:"previous_status"`
	Status         ChangeRequestStatus `bson:"status" json:"status"`

	RejectionReason string `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`

	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	CreatedBy  primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	ResolvedAt *time.Time         `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
	ResolvedBy primitive.ObjectID `bson:"resolved_by,omitempty" json:"resolved_by,omitempty"`
}
