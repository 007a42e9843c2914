package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loaderCSV = "sample_id,catalog_content,price,unit,value,image_link\n" +
	"0,\"item_name: Colombian Coffee Beans\",18.99,,,\n" +
	"1,\"item_name: Whole Milk Gallon\",4.29,,,\n" +
	"2,\"item_name: Garden Hose\",0,,,\n"

func newTestLoader(t *testing.T, dir string, capacity int) *Loader {
	t.Helper()
	pipeline := NewPipeline(capacity, 42, nil)
	cache := NewSnapshotCache(dir, nil)
	return NewLoader(pipeline, cache, nil)
}

func TestLoader_LoadComputesSnapshot(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "catalog.csv", loaderCSV)
	l := newTestLoader(t, dir, 100)

	snap, err := l.Load(src)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.TotalSeen)
	assert.Equal(t, 3, snap.TotalSampled)
	assert.Equal(t, 2, snap.PricedCount)
	assert.Equal(t, 1, snap.ZeroPriceCount)
}

func TestLoader_LoadServesCachedEntry(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "catalog.csv", loaderCSV)
	cache := NewSnapshotCache(dir, nil)
	l := NewLoader(NewPipeline(100, 42, nil), cache, nil)

	_, err := l.Load(src)
	require.NoError(t, err)

	// Plant a marker snapshot under the source's fingerprint; a second Load
	// must serve it instead of re-ingesting.
	fp, err := cache.Fingerprint(src, 100)
	require.NoError(t, err)
	marker := sampleSnapshot()
	marker.TotalSeen = 9999
	cache.Store(fp, marker)

	snap, err := l.Load(src)
	require.NoError(t, err)
	assert.Equal(t, 9999, snap.TotalSeen)
}

func TestLoader_ReloadBypassesCache(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "catalog.csv", loaderCSV)
	cache := NewSnapshotCache(dir, nil)
	l := NewLoader(NewPipeline(100, 42, nil), cache, nil)

	fp, err := cache.Fingerprint(src, 100)
	require.NoError(t, err)
	marker := sampleSnapshot()
	marker.TotalSeen = 9999
	cache.Store(fp, marker)

	snap, err := l.Reload(src)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.TotalSeen, "reload must recompute, not serve the cache")

	// Reload refreshes the entry, so a plain Load now sees the recomputed one.
	snap, err = l.Load(src)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.TotalSeen)
}

func TestLoader_EndToEnd(t *testing.T) {
	csv := "sample_id,catalog_content,price,unit,value,image_link\n" +
		"0,\"item_name: Green Tea\",10,,,\n" +
		"1,\"item_name: Mystery Box\",0,,,\n" +
		"2,\"item_name: Milk\",25,,,\n"
	dir := t.TempDir()
	src := writeSource(t, dir, "catalog.csv", csv)
	l := newTestLoader(t, dir, 100)

	snap, err := l.Load(src)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.TotalSampled)
	assert.Equal(t, 2, snap.PricedCount)
	assert.Equal(t, 17.5, snap.AvgPrice)

	// All counts tie at 1; order follows first appearance in the sample.
	require.Len(t, snap.CategoryCounts, 3)
	assert.Equal(t, "Coffee & Tea", snap.CategoryCounts[0].Category)
	assert.Equal(t, "Other", snap.CategoryCounts[1].Category)
	assert.Equal(t, "Dairy & Refrigerated", snap.CategoryCounts[2].Category)

	sum := 0
	for _, cc := range snap.CategoryCounts {
		sum += cc.Count
	}
	assert.Equal(t, snap.TotalSampled, sum)
	assert.LessOrEqual(t, snap.MinPrice, snap.MedianPrice)
	assert.LessOrEqual(t, snap.MedianPrice, snap.MaxPrice)
}

func TestLoader_MissingSource(t *testing.T) {
	l := newTestLoader(t, t.TempDir(), 100)
	_, err := l.Load("/nonexistent/catalog.csv")
	assert.Error(t, err)
}

func TestLoader_ClearCache(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "catalog.csv", loaderCSV)
	cache := NewSnapshotCache(dir, nil)
	l := NewLoader(NewPipeline(100, 42, nil), cache, nil)

	_, err := l.Load(src)
	require.NoError(t, err)
	fp, err := cache.Fingerprint(src, 100)
	require.NoError(t, err)
	require.NotNil(t, cache.Load(fp))

	require.NoError(t, l.ClearCache())
	assert.Nil(t, cache.Load(fp))
}
