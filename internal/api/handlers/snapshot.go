package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"

	"warehouse-pricing/internal/api/models"
	"warehouse-pricing/internal/catalog"
	"warehouse-pricing/internal/config"
	"warehouse-pricing/internal/model"
)

// SnapshotHandler serves precomputed snapshots and source discovery.
type SnapshotHandler struct {
	loader       *catalog.Loader
	dataDir      string
	settingsPath string
}

func NewSnapshotHandler(loader *catalog.Loader, dataDir, settingsPath string) *SnapshotHandler {
	return &SnapshotHandler{loader: loader, dataDir: dataDir, settingsPath: settingsPath}
}

// GetSnapshot handles GET /api/v1/snapshot.
// Query params: source (name or path, default: first source in the data dir),
// refresh=true to bypass the cache, records=true to include sampled records
// (capped by the configured display limit).
func (h *SnapshotHandler) GetSnapshot(c *gin.Context) {
	source, err := h.resolveSource(c.Query("source"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "SOURCE_NOT_FOUND", Message: err.Error()},
		})
		return
	}

	snap, err := h.load(source, c.Query("refresh") == "true")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INGEST_ERROR", Message: err.Error()},
		})
		return
	}

	resp := models.SnapshotResponse{
		Source:  filepath.Base(source),
		Summary: models.SummaryFromSnapshot(snap),
	}
	if c.Query("records") == "true" {
		resp.Records = capRecords(snap, config.LoadSettings(h.settingsPath).MaxCatalogRows)
	}
	c.JSON(http.StatusOK, resp)
}

// ListSources handles GET /api/v1/sources.
func (h *SnapshotHandler) ListSources(c *gin.Context) {
	sources, err := catalog.ListSources(h.dataDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "SOURCE_LIST_ERROR", Message: err.Error()},
		})
		return
	}
	out := make([]models.SourceInfo, len(sources))
	for i, s := range sources {
		out[i] = models.SourceInfo{
			Name:      s.Name,
			Path:      s.Path,
			SizeBytes: s.SizeBytes,
			ModTime:   s.ModTime,
		}
	}
	c.JSON(http.StatusOK, models.SourcesResponse{Sources: out, Count: len(out)})
}

func (h *SnapshotHandler) load(source string, refresh bool) (*model.Snapshot, error) {
	if refresh {
		return h.loader.Reload(source)
	}
	return h.loader.Load(source)
}

// resolveSource maps a source query value to a path: empty picks the first
// source in the data dir, a bare name is looked up there, and anything with a
// separator is used as given.
func (h *SnapshotHandler) resolveSource(source string) (string, error) {
	if source == "" {
		sources, err := catalog.ListSources(h.dataDir)
		if err != nil {
			return "", err
		}
		if len(sources) == 0 {
			return "", eris.Errorf("no catalog sources in %s", h.dataDir)
		}
		return sources[0].Path, nil
	}
	if !strings.ContainsRune(source, filepath.Separator) {
		return filepath.Join(h.dataDir, source), nil
	}
	return source, nil
}

func capRecords(snap *model.Snapshot, max int) []model.CatalogRecord {
	if max > 0 && len(snap.Records) > max {
		return snap.Records[:max]
	}
	return snap.Records
}
