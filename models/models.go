package models

import (
	"time"

	"gorm.io/datatypes"
)

// Run represents one recorded analysis of a project tree.
type Run struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	// Scan details
	Root          string `gorm:"type:varchar(512);not null"`
	EngineName    string `gorm:"type:varchar(50)"`
	EngineVersion string `gorm:"type:varchar(20)"`

	// Statistics
	FilesScanned  int `gorm:"default:0"`
	FilesFailed   int `gorm:"default:0"`
	TotalFindings int `gorm:"default:0"`

	// Baseline marker; at most one run per root is the active baseline
	Baseline bool `gorm:"index"`

	// Host and invocation metadata
	Metadata datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Findings []FindingRecord `gorm:"foreignKey:RunID"`
}

// FindingRecord is one persisted finding belonging to a run.
type FindingRecord struct {
	ID    uint `gorm:"primaryKey"`
	RunID uint `gorm:"index;not null"`

	File   string `gorm:"type:varchar(512);not null;index"`
	Line   int    `gorm:"not null"`
	Column int    `gorm:"default:0"`

	RuleID  string `gorm:"type:varchar(16);index"`
	Message string `gorm:"type:text"`
}

// TableName customizations for cleaner names
func (Run) TableName() string           { return "runs" }
func (FindingRecord) TableName() string { return "findings" }
