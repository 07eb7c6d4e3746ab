package models

import (
	"fmt"
	"strings"
	"time"
)

// Address is a shipping address owned by a user. ID is assigned by the
// server and stays zero for unsaved drafts.
type Address struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id,omitempty"`
	UserID        string    `gorm:"size:36;not null;index" json:"-"`
	FullName      string    `gorm:"size:255;not null" json:"fullName" validate:"required"`
	PhoneNumber   string    `gorm:"size:20;not null" json:"phoneNumber" validate:"required"`
	StreetAddress string    `gorm:"type:text;not null" json:"streetAddress" validate:"required"`
	City          string    `gorm:"size:100;not null" json:"city" validate:"required"`
	State         string    `gorm:"size:100;not null" json:"state" validate:"required"`
	ZipCode       string    `gorm:"size:20;not null" json:"zipCode" validate:"required"`
	IsDefault     bool      `gorm:"default:false" json:"isDefault"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

func (a Address) IsDraft() bool {
	return a.ID == 0
}

// Lines returns the address formatted for display on a card.
func (a Address) Lines() []string {
	lines := []string{}
	if a.StreetAddress != "" {
		lines = append(lines, a.StreetAddress)
	}

	locality := strings.TrimSpace(fmt.Sprintf("%s, %s %s", a.City, a.State, a.ZipCode))
	locality = strings.Trim(locality, ", ")
	if locality != "" {
		lines = append(lines, locality)
	}
	return lines
}
