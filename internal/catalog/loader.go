package catalog

import (
	"go.uber.org/zap"

	"warehouse-pricing/internal/analysis"
	"warehouse-pricing/internal/model"
)

// Loader ties the ingestion pipeline, the statistics aggregator and the
// snapshot cache together: probe the cache, ingest on a miss, aggregate, and
// store best-effort. This is the single entry point collaborators use to get
// a snapshot for a source.
type Loader struct {
	pipeline *Pipeline
	cache    *SnapshotCache
	log      *zap.Logger
}

func NewLoader(pipeline *Pipeline, cache *SnapshotCache, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{pipeline: pipeline, cache: cache, log: log}
}

// Load returns the snapshot for a source, served from the cache when the
// source fingerprint matches a stored entry and recomputed otherwise.
func (l *Loader) Load(path string) (*model.Snapshot, error) {
	fp, err := l.cache.Fingerprint(path, l.pipeline.Capacity())
	if err == nil {
		if snap := l.cache.Load(fp); snap != nil {
			l.log.Debug("snapshot cache hit",
				zap.String("source", path), zap.String("fingerprint", fp))
			return snap, nil
		}
	}
	return l.reload(path, fp)
}

// Reload recomputes the snapshot unconditionally and refreshes the cache.
func (l *Loader) Reload(path string) (*model.Snapshot, error) {
	fp, _ := l.cache.Fingerprint(path, l.pipeline.Capacity())
	return l.reload(path, fp)
}

func (l *Loader) reload(path, fingerprint string) (*model.Snapshot, error) {
	records, totalSeen, err := l.pipeline.Ingest(path)
	if err != nil {
		return nil, err
	}
	snap := analysis.BuildSnapshot(records, totalSeen)
	l.log.Info("ingested catalog source",
		zap.String("source", path),
		zap.Int("total_seen", totalSeen),
		zap.Int("total_sampled", snap.TotalSampled))
	if fingerprint != "" {
		l.cache.Store(fingerprint, snap)
	}
	return snap, nil
}

// ClearCache drops every cached snapshot.
func (l *Loader) ClearCache() error {
	return l.cache.Clear()
}
