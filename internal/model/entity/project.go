package entity

import (
	"time"
)

// Project is one client engagement. Client contact fields and the
// questionnaire answers are captured once at intake and patched rarely.
type Project struct {
	ID            string     `json:"id" gorm:"primaryKey;size:32"`
	Name          string     `json:"name" gorm:"size:128;not null"`
	ClientName    string     `json:"client_name" gorm:"size:128"`
	ClientEmail   string     `json:"client_email" gorm:"size:128"`
	ClientPhone   string     `json:"client_phone" gorm:"size:32"`
	ClientAddress string     `json:"client_address" gorm:"size:256"`
	ProjectType   string     `json:"project_type" gorm:"size:64"`
	BudgetRange   string     `json:"budget_range" gorm:"size:64"`
	Timeline      string     `json:"timeline" gorm:"size:64"`
	StylePrefs    StringList `json:"style_prefs" gorm:"type:jsonb;serializer:json"`
	Notes         string     `json:"notes" gorm:"type:text"`
	CreatedBy     string     `json:"created_by" gorm:"size:32"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at" gorm:"index"`

	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:ProjectID"`
	Items []Item `json:"items,omitempty" gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string {
	return "projects"
}

// StringList is a jsonb-backed string slice.
type StringList []string
