package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/oxhq/patternlint/core"
	"github.com/oxhq/patternlint/models"
)

// ErrNoBaseline is returned when no baseline run has been saved for a root.
var ErrNoBaseline = errors.New("no baseline recorded")

// Store wraps the database handle with run and baseline operations.
type Store struct {
	db *gorm.DB
}

// Open connects to the database at dsn and returns a ready store.
func Open(dsn string, debug bool) (*Store, error) {
	conn, err := Connect(dsn, debug)
	if err != nil {
		return nil, err
	}
	return &Store{db: conn}, nil
}

// NewStore wraps an already-connected handle. The caller is responsible
// for having run migrations.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SaveRun persists a run and its findings.
func (s *Store) SaveRun(run *models.Run) error {
	if err := s.db.Create(run).Error; err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// SaveBaseline persists a run and promotes it to the active baseline for
// its root, demoting any previous baseline in the same transaction.
func (s *Store) SaveBaseline(run *models.Run) error {
	run.Baseline = true
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Run{}).
			Where("root = ? AND baseline = ?", run.Root, true).
			Update("baseline", false).Error
		if err != nil {
			return fmt.Errorf("failed to demote previous baseline: %w", err)
		}
		if err := tx.Create(run).Error; err != nil {
			return fmt.Errorf("failed to save baseline: %w", err)
		}
		return nil
	})
}

// Baseline loads the active baseline run for a root with its findings in
// stable file/position order.
func (s *Store) Baseline(root string) (*models.Run, error) {
	var run models.Run
	err := s.db.
		Preload("Findings", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("file, line, \"column\", rule_id")
		}).
		Where("root = ? AND baseline = ?", root, true).
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoBaseline
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load baseline: %w", err)
	}
	return &run, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Records converts findings to persistable rows.
func Records(findings []core.Finding) []models.FindingRecord {
	records := make([]models.FindingRecord, 0, len(findings))
	for _, f := range findings {
		records = append(records, models.FindingRecord{
			File:    f.File,
			Line:    f.Line,
			Column:  f.Column,
			RuleID:  f.RuleID,
			Message: f.Message,
		})
	}
	return records
}
