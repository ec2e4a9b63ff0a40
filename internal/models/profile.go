package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roles assigned to a profile. Defaults are inferred once at profile
// creation and never recomputed afterwards.
const (
	RoleCustomer = "customer"
	RolePainter  = "painter"
	RoleAdmin    = "admin"
	RoleNone     = "none"
)

// Profile is the side-store record backing a canonical user. The ID comes
// from the identity provider and is the sole join key; at most one profile
// exists per ID. The jsonb columns are loosely typed: the web client has
// historically written both plain objects and double-encoded strings into
// them, so they are only ever read through DecodeJSON.
type Profile struct {
	ID           string         `gorm:"primaryKey;size:64" json:"id"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password     string         `gorm:"size:100" json:"-"`
	Name         string         `gorm:"size:255" json:"name"`
	Role         string         `gorm:"size:20;default:'customer'" json:"role"`
	Avatar       *string        `gorm:"size:512" json:"avatar,omitempty"`
	AuthProvider string         `gorm:"size:50;default:'email'" json:"-"`
	Location     datatypes.JSON `gorm:"type:jsonb" json:"location,omitempty"`
	Subscription datatypes.JSON `gorm:"type:jsonb" json:"subscription,omitempty"`
	CompanyInfo  datatypes.JSON `gorm:"type:jsonb" json:"company_info,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
