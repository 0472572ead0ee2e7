package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusReviewed  ApplicationStatus = "reviewed"
	StatusInterview ApplicationStatus = "interview"
	StatusRejected  ApplicationStatus = "rejected"
	StatusHired     ApplicationStatus = "hired"
)

// ValidStatus reports whether s belongs to the closed status set. Writes
// outside this set are rejected at the repository layer.
func ValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusApplied, StatusReviewed, StatusInterview, StatusRejected, StatusHired:
		return true
	}
	return false
}

const (
	DefaultCoverLetter         = "No cover letter provided."
	DefaultAccommodationNeeded = "No accommodation needed."
)

type Application struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Seeker string             `bson:"seeker" json:"seeker"` // external auth id, opaque
	Gig    primitive.ObjectID `bson:"gig" json:"gig"`

	Name           string `bson:"name" json:"name"`
	Age            int    `bson:"age,omitempty" json:"age,omitempty"`
	Gender         string `bson:"gender,omitempty" json:"gender,omitempty"`
	DisabilityType string `bson:"disability_type,omitempty" json:"disability_type,omitempty"`

	CoverLetter         string `bson:"cover_letter" json:"cover_letter"`
	AccommodationNeeded string `bson:"accommodation_needed" json:"accommodation_needed"`

	// Set once at creation, points into the media store. Never re-uploaded.
	ResumeURL string `bson:"resume_url" json:"resume_url"`

	Status    ApplicationStatus `bson:"status" json:"status"`
	Interview *Interview        `bson:"interview,omitempty" json:"interview,omitempty"`
	StartDate *time.Time        `bson:"start_date,omitempty" json:"start_date,omitempty"`

	AppliedAt time.Time `bson:"applied_at" json:"applied_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Interview struct {
	Date    time.Time `bson:"date" json:"date"`
	Message string    `bson:"message" json:"message"`
}

// ApplicationWithGig is the seeker-listing view: each application expanded
// with the full gig it references.
type ApplicationWithGig struct {
	Application
	GigDetails *Gig `json:"gig_details,omitempty"`
}

// ApplicationWithSeeker is the hirer-listing view: each application expanded
// best-effort with the seeker's user record. Seeker ids are opaque external
// ids, so the join target may be missing; the field is then null.
type ApplicationWithSeeker struct {
	Application
	SeekerDetails *User `json:"seeker_details,omitempty"`
}

// ApplicationCounts holds the per-gig aggregation result backing the
// owner-listing annotations.
type ApplicationCounts struct {
	Total int64 `bson:"total"`
	New   int64 `bson:"new"` // still in "applied" status
}
