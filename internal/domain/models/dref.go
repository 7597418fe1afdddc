// internal/domain/models/dref.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DREF application types. The type decides which tabs of the form apply:
// loan applications skip actions and operation entirely, imminent
// applications skip actions.
const (
	DrefTypeImminent   = 0
	DrefTypeAssessment = 1
	DrefTypeResponse   = 2
	DrefTypeLoan       = 3
)

// Onset types.
const (
	OnsetSlow   = 1
	OnsetSudden = 2
)

// NationalSocietyAction is one action already taken by the National Society.
type NationalSocietyAction struct {
	ClientID    string `bson:"client_id" json:"client_id"`
	Title       int    `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// NeedIdentified is one identified humanitarian need.
type NeedIdentified struct {
	ClientID    string `bson:"client_id" json:"client_id"`
	Title       int    `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// InterventionIndicator is a measurable target inside a planned intervention.
type InterventionIndicator struct {
	ClientID string `bson:"client_id" json:"client_id"`
	Title    string `bson:"title" json:"title"`
	Target   *int   `bson:"target,omitempty" json:"target,omitempty"`
}

// PlannedIntervention is one budgeted sector of the operation.
type PlannedIntervention struct {
	ClientID       string                  `bson:"client_id" json:"client_id"`
	Title          int                     `bson:"title" json:"title"`
	Budget         *int                    `bson:"budget,omitempty" json:"budget,omitempty"`
	PersonTargeted *int                    `bson:"person_targeted,omitempty" json:"person_targeted,omitempty"`
	Description    string                  `bson:"description,omitempty" json:"description,omitempty"`
	Indicators     []InterventionIndicator `bson:"indicators,omitempty" json:"indicators,omitempty"`
}

// ProposedActivity is a concrete activity under a proposed action.
type ProposedActivity struct {
	ClientID string `bson:"client_id" json:"client_id"`
	Activity string `bson:"activity" json:"activity"`
}

// ProposedAction is an early action or early response block with its own
// budget; the sum of these budgets drives the derived cost fields.
type ProposedAction struct {
	ClientID     string             `bson:"client_id" json:"client_id"`
	ProposedType int                `bson:"proposed_type" json:"proposed_type"`
	TotalBudget  *int               `bson:"total_budget,omitempty" json:"total_budget,omitempty"`
	Activities   []ProposedActivity `bson:"activities,omitempty" json:"activities,omitempty"`
}

// Proposed action types.
const (
	ProposedEarlyAction   = 1
	ProposedEarlyResponse = 2
)

// RiskSecurityItem is one entry of the risk and security analysis.
type RiskSecurityItem struct {
	ClientID   string `bson:"client_id" json:"client_id"`
	Risk       string `bson:"risk" json:"risk"`
	Mitigation string `bson:"mitigation,omitempty" json:"mitigation,omitempty"`
}

// DrefApplication is a Disaster Relief Emergency Fund funding request.
//
// The cost fields SubTotalCost, IndirectCost, SurgeDeploymentCost and
// TotalCost, and TotalTargetedPopulation, are derived: they are recomputed
// from their inputs inside every write and are never accepted from a client
// payload. ModifiedAt participates in the write-conflict protocol: a PATCH
// carrying a stale value is rejected with an OBSOLETE_PAYLOAD field error.
type DrefApplication struct {
	ID primitive.ObjectID `bson:"_id" json:"id"`

	TypeOfDref  int `bson:"type_of_dref" json:"type_of_dref"`
	TypeOfOnset int `bson:"type_of_onset,omitempty" json:"type_of_onset,omitempty"`

	NationalSociety  primitive.ObjectID `bson:"national_society,omitempty" json:"national_society,omitempty"`
	CountryID        primitive.ObjectID `bson:"country_id,omitempty" json:"country_id,omitempty"`
	District         []int              `bson:"district,omitempty" json:"district,omitempty"`
	DisasterType     *int               `bson:"disaster_type,omitempty" json:"disaster_type,omitempty"`
	DisasterCategory *int               `bson:"disaster_category,omitempty" json:"disaster_category,omitempty"`
	Title            string             `bson:"title" json:"title"`

	// Event detail.
	EventDate        *time.Time `bson:"event_date,omitempty" json:"event_date,omitempty"`
	EventText        string     `bson:"event_text,omitempty" json:"event_text,omitempty"`
	EventDescription string     `bson:"event_description,omitempty" json:"event_description,omitempty"`
	EventScope       string     `bson:"event_scope,omitempty" json:"event_scope,omitempty"`
	NumAffected      *int       `bson:"num_affected,omitempty" json:"num_affected,omitempty"`
	PeopleInNeed     *int       `bson:"people_in_need,omitempty" json:"people_in_need,omitempty"`

	// Actions.
	DidNationalSociety     bool                    `bson:"did_national_society" json:"did_national_society"`
	NSRespondDate          *time.Time              `bson:"ns_respond_date,omitempty" json:"ns_respond_date,omitempty"`
	NationalSocietyActions []NationalSocietyAction `bson:"national_society_actions,omitempty" json:"national_society_actions,omitempty"`
	NeedsIdentified        []NeedIdentified        `bson:"needs_identified,omitempty" json:"needs_identified,omitempty"`
	MajorCoordination      string                  `bson:"major_coordination_mechanism,omitempty" json:"major_coordination_mechanism,omitempty"`

	// Operation.
	OperationObjective string                `bson:"operation_objective,omitempty" json:"operation_objective,omitempty"`
	ResponseStrategy   string                `bson:"response_strategy,omitempty" json:"response_strategy,omitempty"`
	Women              *int                  `bson:"women,omitempty" json:"women,omitempty"`
	Men                *int                  `bson:"men,omitempty" json:"men,omitempty"`
	Girls              *int                  `bson:"girls,omitempty" json:"girls,omitempty"`
	Boys               *int                  `bson:"boys,omitempty" json:"boys,omitempty"`
	TotalTargetedPopulation int              `bson:"total_targeted_population" json:"total_targeted_population"`
	PlannedInterventions []PlannedIntervention `bson:"planned_interventions,omitempty" json:"planned_interventions,omitempty"`
	ProposedAction       []ProposedAction      `bson:"proposed_action,omitempty" json:"proposed_action,omitempty"`
	RiskSecurity         []RiskSecurityItem    `bson:"risk_security,omitempty" json:"risk_security,omitempty"`
	RiskSecurityConcern  string                `bson:"risk_security_concern,omitempty" json:"risk_security_concern,omitempty"`

	IsSurgePersonnelDeployed bool   `bson:"is_surge_personnel_deployed" json:"is_surge_personnel_deployed"`
	SurgePersonnelDeployed   string `bson:"surge_personnel_deployed,omitempty" json:"surge_personnel_deployed,omitempty"`

	// Derived cost fields.
	SubTotalCost        int  `bson:"sub_total_cost" json:"sub_total_cost"`
	IndirectCost        int  `bson:"indirect_cost" json:"indirect_cost"`
	SurgeDeploymentCost *int `bson:"surge_deployment_cost,omitempty" json:"surge_deployment_cost,omitempty"`
	TotalCost           int  `bson:"total_cost" json:"total_cost"`

	AmountRequested *int `bson:"amount_requested,omitempty" json:"amount_requested,omitempty"`

	// Submission.
	NSRequestDate      *time.Time `bson:"ns_request_date,omitempty" json:"ns_request_date,omitempty"`
	OperationTimeframe *int       `bson:"operation_timeframe,omitempty" json:"operation_timeframe,omitempty"`
	EndDate            *time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`
	AppealCode         string     `bson:"appeal_code,omitempty" json:"appeal_code,omitempty"`
	GlideCode          string     `bson:"glide_code,omitempty" json:"glide_code,omitempty"`

	AppealManagerName  string `bson:"ifrc_appeal_manager_name,omitempty" json:"ifrc_appeal_manager_name,omitempty"`
	AppealManagerEmail string `bson:"ifrc_appeal_manager_email,omitempty" json:"ifrc_appeal_manager_email,omitempty"`
	NSContactName      string `bson:"national_society_contact_name,omitempty" json:"national_society_contact_name,omitempty"`
	NSContactEmail     string `bson:"national_society_contact_email,omitempty" json:"national_society_contact_email,omitempty"`

	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	CreatedBy  primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	ModifiedAt time.Time          `bson:"modified_at" json:"modified_at"`
	ModifiedBy primitive.ObjectID `bson:"modified_by,omitempty" json:"modified_by,omitempty"`
}
