package db

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oxhq/patternlint/core"
	"github.com/oxhq/patternlint/models"
)

// openTestStore uses the pure-Go sqlite dialector so tests run without cgo.
func openTestStore(t *testing.T) *Store {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))

	store := NewStore(conn)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveRunRoundTrip(t *testing.T) {
	store := openTestStore(t)

	run := &models.Run{
		Root:          "/src/project",
		EngineName:    "patternlint",
		EngineVersion: "0.2.0",
		FilesScanned:  3,
		TotalFindings: 2,
		Findings: []models.FindingRecord{
			{File: "a.py", Line: 4, Column: 0, RuleID: "EFP105", Message: "msg"},
			{File: "b.py", Line: 9, Column: 2, RuleID: "EFP213", Message: "msg"},
		},
	}
	require.NoError(t, store.SaveRun(run))
	assert.NotZero(t, run.ID)

	var loaded models.Run
	err := store.db.Preload("Findings").First(&loaded, run.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "/src/project", loaded.Root)
	assert.Len(t, loaded.Findings, 2)
	assert.Equal(t, run.ID, loaded.Findings[0].RunID)
}

func TestSaveBaselineDemotesPrevious(t *testing.T) {
	store := openTestStore(t)

	first := &models.Run{Root: "/src/project", TotalFindings: 1}
	require.NoError(t, store.SaveBaseline(first))

	second := &models.Run{Root: "/src/project", TotalFindings: 5}
	require.NoError(t, store.SaveBaseline(second))

	// Baselines for other roots are untouched.
	other := &models.Run{Root: "/src/other"}
	require.NoError(t, store.SaveBaseline(other))

	loaded, err := store.Baseline("/src/project")
	require.NoError(t, err)
	assert.Equal(t, second.ID, loaded.ID)
	assert.Equal(t, 5, loaded.TotalFindings)

	var count int64
	err = store.db.Model(&models.Run{}).
		Where("root = ? AND baseline = ?", "/src/project", true).
		Count(&count).Error
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	otherLoaded, err := store.Baseline("/src/other")
	require.NoError(t, err)
	assert.Equal(t, other.ID, otherLoaded.ID)
}

func TestBaselineMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Baseline("/nowhere")
	assert.ErrorIs(t, err, ErrNoBaseline)
}

func TestBaselineFindingOrder(t *testing.T) {
	store := openTestStore(t)

	run := &models.Run{
		Root: "/src/project",
		Findings: []models.FindingRecord{
			{File: "b.py", Line: 3, RuleID: "EFP318"},
			{File: "a.py", Line: 9, RuleID: "EFP105"},
			{File: "a.py", Line: 2, RuleID: "EFP426"},
		},
	}
	require.NoError(t, store.SaveBaseline(run))

	loaded, err := store.Baseline("/src/project")
	require.NoError(t, err)
	require.Len(t, loaded.Findings, 3)
	assert.Equal(t, "a.py", loaded.Findings[0].File)
	assert.Equal(t, 2, loaded.Findings[0].Line)
	assert.Equal(t, "a.py", loaded.Findings[1].File)
	assert.Equal(t, "b.py", loaded.Findings[2].File)
}

func TestRecords(t *testing.T) {
	findings := []core.Finding{
		{File: "x.py", Line: 1, Column: 4, RuleID: "EFP320", Message: "m1"},
		{File: "y.py", Line: 7, Column: 0, RuleID: "EFP321", Message: "m2"},
	}

	records := Records(findings)
	require.Len(t, records, 2)
	assert.Equal(t, "x.py", records[0].File)
	assert.Equal(t, 1, records[0].Line)
	assert.Equal(t, "EFP320", records[0].RuleID)
	assert.Equal(t, "m2", records[1].Message)

	assert.Empty(t, Records(nil))
}

func TestIsURL(t *testing.T) {
	assert.True(t, isURL("libsql://db.example.turso.io"))
	assert.True(t, isURL("https://db.example.turso.io"))
	assert.True(t, isURL("http://127.0.0.1:8080/db"))
	assert.False(t, isURL(":memory:"))
	assert.False(t, isURL(filepath.Join("/tmp", "patternlint.db")))
	assert.False(t, isURL("short"))
}
