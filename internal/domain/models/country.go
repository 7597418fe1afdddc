// internal/domain/models/country.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Country is a lightweight reference document. Region codes follow the
// five-region numbering used across the platform.
type Country struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	NameCI  string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	ISO     string             `bson:"iso,omitempty" json:"iso,omitempty"`
	ISO3    string             `bson:"iso3,omitempty" json:"iso3,omitempty"`
	Region  int                `bson:"region" json:"region"`
	Society string             `bson:"society_name,omitempty" json:"society_name,omitempty"`
}

// Region codes.
const (
	RegionAfrica      = 0
	RegionAmericas    = 1
	RegionAsiaPacific = 2
	RegionEurope      = 3
	RegionMENA        = 4
)

// RegionSlug returns the URL-safe code for a region, or "" for an unknown
// region number.
func RegionSlug(region int) string {
	switch region {
	case RegionAfrica:
		return "africa"
	case RegionAmericas:
		return "americas"
	case RegionAsiaPacific:
		return "asia-pacific"
	case RegionEurope:
		return "europe"
	case RegionMENA:
		return "middle-east-north-africa"
	}
	return ""
}
