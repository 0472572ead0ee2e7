package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GigType string

const (
	GigTypePartTime   GigType = "part-time"
	GigTypeInternship GigType = "internship"
	GigTypeFreelance  GigType = "freelance"
)

type Gig struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	Title   string `bson:"title" json:"title"`
	Company string `bson:"company" json:"company"`

	LocationType string `bson:"location_type" json:"location_type"` // remote|onsite|hybrid
	Location     string `bson:"location,omitempty" json:"location,omitempty"`
	Country      string `bson:"country" json:"country"`
	State        string `bson:"state" json:"state"`
	City         string `bson:"city" json:"city"`

	Type     GigType `bson:"type" json:"type"`
	Category string  `bson:"category" json:"category"`

	// Free text; requirements/responsibilities/benefits are newline-delimited lists.
	Description      string `bson:"description" json:"description"`
	Requirements     string `bson:"requirements" json:"requirements"`
	Responsibilities string `bson:"responsibilities" json:"responsibilities"`
	Benefits         string `bson:"benefits" json:"benefits"`

	Salary   string `bson:"salary" json:"salary"`
	Hours    string `bson:"hours" json:"hours"`
	Deadline string `bson:"deadline" json:"deadline"`

	Accommodations string `bson:"accommodations" json:"accommodations"`
	FlexibleHours  bool   `bson:"flexible_hours" json:"flexible_hours"`
	AssistiveTech  bool   `bson:"assistive_tech" json:"assistive_tech"`

	UserID string `bson:"user_id" json:"user_id"` // owning hirer, external auth id

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// GigWithCounts is the owner-listing view: a gig annotated with how many
// applications reference it and how many are still in "applied" status.
type GigWithCounts struct {
	Gig               `bson:",inline"`
	ApplicationsCount int64 `json:"applications_count"`
	NewApplications   int64 `json:"new_applications"`
}
