package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"warehouse-pricing/internal/model"
)

// cacheVersion tags the serialized envelope; entries written by a different
// schema are ignored rather than deserialized.
const cacheVersion = 1

type cacheEnvelope struct {
	Version  int             `json:"version"`
	Snapshot *model.Snapshot `json:"snapshot"`
}

// SnapshotCache persists snapshots keyed by source identity so repeated runs
// skip the full ingest. It is purely a performance layer: every failure,
// corrupt entry or version mismatch degrades to a miss or a no-op.
type SnapshotCache struct {
	dir string
	log *zap.Logger
}

func NewSnapshotCache(dir string, log *zap.Logger) *SnapshotCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &SnapshotCache{dir: dir, log: log}
}

// Fingerprint derives the cache key from the source's name, byte size and
// modification time (second resolution) plus the sampling capacity, hashed to
// a short digest.
func (c *SnapshotCache) Fingerprint(path string, capacity int) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s_%d_%d_%d", filepath.Base(path), info.Size(), info.ModTime().Unix(), capacity)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:12], nil
}

// Load returns the cached snapshot for a fingerprint, or nil on any miss:
// absent file, unreadable JSON, version drift, or an empty snapshot.
func (c *SnapshotCache) Load(fingerprint string) *model.Snapshot {
	raw, err := os.ReadFile(c.entryPath(fingerprint))
	if err != nil {
		return nil
	}
	var env cacheEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.log.Warn("discarding unreadable cache entry",
			zap.String("fingerprint", fingerprint), zap.Error(err))
		return nil
	}
	if env.Version != cacheVersion || env.Snapshot == nil || env.Snapshot.TotalSampled == 0 {
		return nil
	}
	return env.Snapshot
}

// Store persists a snapshot under a fingerprint via an atomic whole-file
// replace. Write failures are logged and swallowed; caching never gates
// correctness.
func (c *SnapshotCache) Store(fingerprint string, snap *model.Snapshot) {
	if err := c.store(fingerprint, snap); err != nil {
		c.log.Warn("failed to store snapshot cache entry",
			zap.String("fingerprint", fingerprint), zap.Error(err))
	}
}

func (c *SnapshotCache) store(fingerprint string, snap *model.Snapshot) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	raw, err := json.Marshal(cacheEnvelope{Version: cacheVersion, Snapshot: snap})
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.dir, "cache_*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.entryPath(fingerprint))
}

// Clear deletes every cached snapshot.
func (c *SnapshotCache) Clear() error {
	matches, err := filepath.Glob(filepath.Join(c.dir, "cache_*.json"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return err
		}
	}
	return nil
}

func (c *SnapshotCache) entryPath(fingerprint string) string {
	return filepath.Join(c.dir, "cache_"+fingerprint+".json")
}
