package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rotisserie/eris"
)

// SourceInfo describes one catalog source available for ingestion.
type SourceInfo struct {
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	ModTime   time.Time `json:"mod_time"`
}

// ListSources returns the delimited catalog sources in a directory, sorted by
// name. A missing directory yields an empty list, not an error.
func ListSources(dir string) ([]SourceInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "catalog: read source dir %s", dir)
	}

	var sources []SourceInfo
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".csv" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		sources = append(sources, SourceInfo{
			Path:      filepath.Join(dir, e.Name()),
			Name:      e.Name(),
			SizeBytes: info.Size(),
			ModTime:   info.ModTime(),
		})
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })
	return sources, nil
}
