package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse-pricing/internal/model"
)

func sampleSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Records: []model.CatalogRecord{
			{SampleID: 1, Name: "Chai Tea", Price: 9.49, Category: "Coffee & Tea"},
		},
		CategoryCounts:   []model.CategoryCount{{Category: "Coffee & Tea", Count: 1}},
		CategoryAvgPrice: map[string]float64{"Coffee & Tea": 9.49},
		CategoryMinPrice: map[string]float64{"Coffee & Tea": 9.49},
		CategoryMaxPrice: map[string]float64{"Coffee & Tea": 9.49},
		TotalSampled:     1,
		TotalSeen:        5,
		PricedCount:      1,
		AvgPrice:         9.49,
		MedianPrice:      9.49,
		MinPrice:         9.49,
		MaxPrice:         9.49,
	}
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSnapshotCache_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "catalog.csv", "sample_id,price\n1,9.49\n")
	c := NewSnapshotCache(dir, nil)

	fp, err := c.Fingerprint(src, 100)
	require.NoError(t, err)
	require.Len(t, fp, 12)

	require.Nil(t, c.Load(fp))

	c.Store(fp, sampleSnapshot())
	got := c.Load(fp)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.TotalSampled)
	assert.Equal(t, 5, got.TotalSeen)
	assert.Equal(t, 9.49, got.AvgPrice)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "Chai Tea", got.Records[0].Name)
}

func TestSnapshotCache_FingerprintVariesWithInputs(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "catalog.csv", "sample_id,price\n1,9.49\n")
	c := NewSnapshotCache(dir, nil)

	fp1, err := c.Fingerprint(src, 100)
	require.NoError(t, err)
	fp2, err := c.Fingerprint(src, 100)
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2, "same file and capacity must fingerprint identically")

	fp3, err := c.Fingerprint(src, 200)
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp3, "capacity is part of the cache key")

	other := writeSource(t, dir, "catalog.csv.bak.csv", "sample_id,price\n1,9.49\nmore\n")
	fp4, err := c.Fingerprint(other, 100)
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp4)
}

func TestSnapshotCache_FingerprintMissingFile(t *testing.T) {
	c := NewSnapshotCache(t.TempDir(), nil)
	_, err := c.Fingerprint("/nonexistent/catalog.csv", 100)
	assert.Error(t, err)
}

func TestSnapshotCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := NewSnapshotCache(dir, nil)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cache_deadbeef0001.json"), []byte("{not json"), 0o644))
	assert.Nil(t, c.Load("deadbeef0001"))
}

func TestSnapshotCache_VersionDriftIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := NewSnapshotCache(dir, nil)

	entry := `{"version": 99, "snapshot": {"total_sampled": 1}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cache_deadbeef0002.json"), []byte(entry), 0o644))
	assert.Nil(t, c.Load("deadbeef0002"))
}

func TestSnapshotCache_EmptySnapshotIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := NewSnapshotCache(dir, nil)

	c.Store("deadbeef0003", &model.Snapshot{})
	assert.Nil(t, c.Load("deadbeef0003"))
}

func TestSnapshotCache_Clear(t *testing.T) {
	dir := t.TempDir()
	c := NewSnapshotCache(dir, nil)

	c.Store("deadbeef0004", sampleSnapshot())
	c.Store("deadbeef0005", sampleSnapshot())
	require.NotNil(t, c.Load("deadbeef0004"))

	require.NoError(t, c.Clear())
	assert.Nil(t, c.Load("deadbeef0004"))
	assert.Nil(t, c.Load("deadbeef0005"))
}
