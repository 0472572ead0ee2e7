package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleHirer  UserRole = "hirer"
	RoleSeeker UserRole = "seeker"
)

// User is the profile record keyed by the external auth provider's user id.
// Identity itself is never minted here; this row only carries profile data.
type User struct {
	UserID string   `gorm:"column:user_id;type:text;primaryKey" json:"user_id"`
	Name   string   `gorm:"column:name;type:text" json:"name"`
	Email  string   `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	Role   UserRole `gorm:"column:role;type:text" json:"role"`

	Phone          string `gorm:"column:phone;type:text" json:"phone,omitempty"`
	DisabledStatus string `gorm:"column:disabled_status;type:text" json:"disabled_status,omitempty"`
	Bio            string `gorm:"column:bio;type:text" json:"bio,omitempty"`

	// Hirer-specific; JSONB ({"name": ..., "website": ...})
	Company datatypes.JSON `gorm:"column:company;type:jsonb" json:"company,omitempty"`

	// Seeker-specific
	Skills       pq.StringArray `gorm:"column:skills;type:text[]" json:"skills,omitempty"`
	ResumeURL    string         `gorm:"column:resume_url;type:text" json:"resume_url,omitempty"`
	PortfolioURL string         `gorm:"column:portfolio_url;type:text" json:"portfolio_url,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (User) TableName() string { return "users" }
