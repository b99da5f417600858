package calendar

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStageBoundaries(t *testing.T) {
	r := Default()
	planting := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		day   int
		stage string
	}{
		{0, "planted"},
		{9, "planted"},
		{10, "germination"},
		{24, "germination"},
		{25, "vegetative"},
		{64, "vegetative"},
		{65, "flowering"},
		{89, "flowering"},
		{90, "maturity"},
		{119, "maturity"},
		{120, "harvested"},
		{500, "harvested"},
	}
	for _, tc := range cases {
		stage, _ := r.StageFor(planting, planting.AddDate(0, 0, tc.day))
		assert.Equal(t, tc.stage, stage, "day %d", tc.day)
	}

	// a future planting date is still "planted"
	stage, note := r.StageFor(planting, planting.AddDate(0, 0, -3))
	assert.Equal(t, "planted", stage)
	assert.Empty(t, note)
}

func TestDefaultTimeline(t *testing.T) {
	spans := Default().Timeline(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, spans, 5)
	assert.Equal(t, "planted", spans[0].Stage)
	assert.Equal(t, 0, spans[0].StartDay)
	assert.Equal(t, "germination", spans[1].Stage)
	assert.Equal(t, 10, spans[1].StartDay)
	assert.Equal(t, "maturity", spans[4].Stage)
	assert.Equal(t, 90, spans[4].StartDay)
}

func TestLoadFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"Stage,Days,Notes\n"+
			"Planted,7,water daily\n"+
			"Vegetative,30,apply npk\n"+
			"bad-row,,\n"+
			"Maturity,20,\n"), 0o644))

	r, err := LoadFromFiles(path, "")
	require.NoError(t, err)

	planting := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	stage, note := r.StageFor(planting, planting.AddDate(0, 0, 3))
	assert.Equal(t, "planted", stage)
	assert.Equal(t, "water daily", note)

	stage, _ = r.StageFor(planting, planting.AddDate(0, 0, 20))
	assert.Equal(t, "vegetative", stage)

	stage, _ = r.StageFor(planting, planting.AddDate(0, 0, 60))
	assert.Equal(t, "harvested", stage)

	// the invalid row was skipped
	assert.Len(t, r.Timeline(planting), 3)
}

func TestLoadFromCSVHeaderAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"Phase,Duration,Tips\nplanted,10,keep moist\n"), 0o644))

	r, err := LoadFromFiles(path, "")
	require.NoError(t, err)
	spans := r.Timeline(time.Now())
	require.Len(t, spans, 1)
	assert.Equal(t, "keep moist", spans[0].Note)
}

func TestLoadFromCSVMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.csv")
	require.NoError(t, os.WriteFile(path, []byte("Foo,Bar\n1,2\n"), 0o644))

	_, err := LoadFromFiles(path, "")
	assert.ErrorContains(t, err, "missing required columns")
}

func TestLoadFromFilesEmptyFallsBackToDefault(t *testing.T) {
	r, err := LoadFromFiles("", "")
	require.NoError(t, err)
	assert.Len(t, r.Timeline(time.Now()), 5)
}
