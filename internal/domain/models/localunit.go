// internal/domain/models/localunit.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidationStatus is the lifecycle state of a local unit.
type ValidationStatus int

const (
	StatusValidated         ValidationStatus = 1
	StatusUnvalidated       ValidationStatus = 2
	StatusPendingValidation ValidationStatus = 3
	StatusExternallyManaged ValidationStatus = 4
)

// String returns the display name used by the options endpoint and exports.
func (s ValidationStatus) String() string {
	switch s {
	case StatusValidated:
		return "Validated"
	case StatusUnvalidated:
		return "Unvalidated"
	case StatusPendingValidation:
		return "Pending validation"
	case StatusExternallyManaged:
		return "Externally managed"
	default:
		return "Unknown"
	}
}

// Local unit type codes. HealthCare units carry a Health sub-record and
// drop the generic contact fields; all other types require FocalPersonLoc.
const (
	TypeAdministrative = 1
	TypeHealthCare     = 2
	TypeEmergency      = 3
	TypeHumanitarian   = 4
	TypeTraining       = 5
	TypeOther          = 6
)

// TypeName returns the display name used by the options endpoint,
// exports, and export filenames.
func TypeName(t int) string {
	switch t {
	case TypeAdministrative:
		return "Administrative"
	case TypeHealthCare:
		return "Health Care"
	case TypeEmergency:
		return "Emergency Response"
	case TypeHumanitarian:
		return "Humanitarian Assistance Centres"
	case TypeTraining:
		return "Training and Education"
	case TypeOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Visibility choices for a local unit record.
const (
	VisibilityMembership = 1
	VisibilityIFRC       = 2
	VisibilityPublic     = 3
)

// Location is a WGS84 point.
type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// OtherProfile is a free-form staffing profile on a health facility.
// ClientID is assigned locally before the record is first persisted and is
// the stable key used for diffing and server-error mapping.
type OtherProfile struct {
	ClientID string `bson:"client_id" json:"client_id"`
	Position string `bson:"position" json:"position"`
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
	Phone    string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// HealthProfile is the health-facility sub-record of a local unit.
// Present iff the unit's type is TypeHealthCare.
type HealthProfile struct {
	Affiliation        int    `bson:"affiliation" json:"affiliation"`
	OtherAffiliation   string `bson:"other_affiliation,omitempty" json:"other_affiliation,omitempty"`
	Functionality      int    `bson:"functionality" json:"functionality"`
	HealthFacilityType int    `bson:"health_facility_type" json:"health_facility_type"`
	OtherFacilityType  string `bson:"other_facility_type,omitempty" json:"other_facility_type,omitempty"`

	FocalPointEmail    string `bson:"focal_point_email" json:"focal_point_email"`
	FocalPointPosition string `bson:"focal_point_position" json:"focal_point_position"`
	FocalPointPhone    string `bson:"focal_point_phone_number,omitempty" json:"focal_point_phone_number,omitempty"`

	GeneralMedicalServices []int `bson:"general_medical_services,omitempty" json:"general_medical_services,omitempty"`
	SpecializedServices    []int `bson:"specialized_medical_beyond_primary_level,omitempty" json:"specialized_medical_beyond_primary_level,omitempty"`
	BloodServices          []int `bson:"blood_services,omitempty" json:"blood_services,omitempty"`

	MaximumCapacity      *int `bson:"maximum_capacity,omitempty" json:"maximum_capacity,omitempty"`
	NumberOfIsolationRooms *int `bson:"number_of_isolation_rooms,omitempty" json:"number_of_isolation_rooms,omitempty"`
	IsTeachingHospital   bool `bson:"is_teaching_hospital" json:"is_teaching_hospital"`
	IsInPatientCapacity  bool `bson:"is_in_patient_capacity" json:"is_in_patient_capacity"`
	IsIsolationRoomsWards bool `bson:"is_isolation_rooms_wards" json:"is_isolation_rooms_wards"`
	IsWarehousing        bool `bson:"is_warehousing" json:"is_warehousing"`
	IsColdChain          bool `bson:"is_cold_chain" json:"is_cold_chain"`

	TotalHumanResources *int `bson:"total_number_of_human_resource,omitempty" json:"total_number_of_human_resource,omitempty"`
	GeneralPractitioner *int `bson:"general_practitioner,omitempty" json:"general_practitioner,omitempty"`
	Specialist          *int `bson:"specialist,omitempty" json:"specialist,omitempty"`
	Nurse               *int `bson:"nurse,omitempty" json:"nurse,omitempty"`
	Midwife             *int `bson:"midwife,omitempty" json:"midwife,omitempty"`

	OtherProfiles []OtherProfile `bson:"other_profiles,omitempty" json:"other_profiles,omitempty"`
	Feedback      string         `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

// LocalUnit is a National Society branch, office, or health facility.
//
// Edits to a VALIDATED unit do not overwrite the record directly: the
// previous state is snapshotted into a ChangeRequest and the unit moves to
// PENDING_VALIDATION until a validator accepts or reverts the change.
// EXTERNALLY_MANAGED units are owned by the feed sync and are not editable
// or validatable through the workflow.
type LocalUnit struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	CountryID primitive.ObjectID `bson:"country_id" json:"country_id"`
	RegionID  int                `bson:"region_id" json:"region_id"`

	Type       int    `bson:"type" json:"type"`
	Subtype    string `bson:"subtype,omitempty" json:"subtype,omitempty"`
	Visibility int    `bson:"visibility" json:"visibility"`
	Level      *int   `bson:"level,omitempty" json:"level,omitempty"`

	LocalBranchName     string `bson:"local_branch_name" json:"local_branch_name"`
	LocalBranchNameCI   string `bson:"local_branch_name_ci" json:"-"`
	EnglishBranchName   string `bson:"english_branch_name,omitempty" json:"english_branch_name,omitempty"`
	EnglishBranchNameCI string `bson:"english_branch_name_ci,omitempty" json:"-"`

	FocalPersonEN  string `bson:"focal_person_en,omitempty" json:"focal_person_en,omitempty"`
	FocalPersonLoc string `bson:"focal_person_loc,omitempty" json:"focal_person_loc,omitempty"`

	DateOfData time.Time `bson:"date_of_data" json:"date_of_data"`
	SourceEN   string    `bson:"source_en,omitempty" json:"source_en,omitempty"`
	SourceLoc  string    `bson:"source_loc,omitempty" json:"source_loc,omitempty"`

	AddressEN  string `bson:"address_en,omitempty" json:"address_en,omitempty"`
	AddressLoc string `bson:"address_loc,omitempty" json:"address_loc,omitempty"`
	CityEN     string `bson:"city_en,omitempty" json:"city_en,omitempty"`
	CityLoc    string `bson:"city_loc,omitempty" json:"city_loc,omitempty"`
	Postcode   string `bson:"postcode,omitempty" json:"postcode,omitempty"`

	// Generic contact fields; forced absent on health-care units.
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Link  string `bson:"link,omitempty" json:"link,omitempty"`

	Location Location       `bson:"location" json:"location"`
	Health   *HealthProfile `bson:"health,omitempty" json:"health,omitempty"`

	Status       ValidationStatus `bson:"status" json:"status"`
	UpdateReason string           `bson:"update_reason,omitempty" json:"update_reason,omitempty"`

	// Deprecation (soft delete).
	IsDeprecated         bool   `bson:"is_deprecated" json:"is_deprecated"`
	DeprecateReason      int    `bson:"deprecate_reason,omitempty" json:"deprecate_reason,omitempty"`
	DeprecateExplanation string `bson:"deprecate_explanation,omitempty" json:"deprecate_explanation,omitempty"`

	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	CreatedBy  primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	ModifiedAt time.Time          `bson:"modified_at" json:"modified_at"`
	ModifiedBy primitive.ObjectID `bson:"modified_by,omitempty" json:"modified_by,omitempty"`
}

// Deprecation reason codes.
const (
	DeprecateNonExistent   = 1
	DeprecateIncorrectData = 2
	DeprecateTemporary     = 3
	DeprecateOther         = 4
)

// BranchName returns the local branch name, falling back to the
// English name when the local one is empty.
func (u *LocalUnit) BranchName() string {
	if u.LocalBranchName != "" {
		return u.LocalBranchName
	}
	return u.EnglishBranchName
}
