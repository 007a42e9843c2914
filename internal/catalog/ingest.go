package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"warehouse-pricing/internal/model"
)

// DefaultCapacity bounds the working set: ingestion keeps a uniform sample of
// at most this many records no matter how large the source is.
const DefaultCapacity = 10_000

// Pipeline streams a delimited catalog source into a fixed-capacity reservoir
// (algorithm R), counting the true row total as it goes. Memory use is O(K)
// in the capacity, never in the source size.
type Pipeline struct {
	capacity int
	rng      *rand.Rand
	log      *zap.Logger
}

// NewPipeline builds a pipeline with the given reservoir capacity. The seed
// drives reservoir replacement only; any seed yields a uniform sample.
func NewPipeline(capacity int, seed int64, log *zap.Logger) *Pipeline {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		capacity: capacity,
		rng:      rand.New(rand.NewSource(seed)),
		log:      log,
	}
}

// Capacity returns the reservoir size the pipeline samples down to.
func (p *Pipeline) Capacity() int { return p.capacity }

// Ingest streams the source file and returns the sampled subset plus the true
// row count. An unreadable file is the only error; malformed rows degrade to
// defaults and a zero-row source returns an empty sample.
func (p *Pipeline) Ingest(path string) ([]model.CatalogRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, eris.Wrapf(err, "catalog: open %s", path)
	}
	defer f.Close()
	return p.IngestReader(f)
}

// IngestReader is Ingest for an already-open stream.
func (p *Pipeline) IngestReader(r io.Reader) ([]model.CatalogRecord, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, eris.Wrap(err, "catalog: read header")
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}

	reservoir := make([]model.CatalogRecord, 0, p.capacity)
	total := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, 0, eris.Wrap(err, "catalog: read row")
			}
			// One bad row must never abort the stream, but it still counts
			// toward the true row total.
			p.log.Warn("skipping malformed row", zap.Int("row", total), zap.Error(err))
			total++
			continue
		}
		rec := buildRecord(cols, row, total)
		total++
		if len(reservoir) < p.capacity {
			reservoir = append(reservoir, rec)
		} else if j := p.rng.Intn(total); j < p.capacity {
			// Row i (0-indexed) replaces slot j ∈ [0, i] only if j lands in
			// the reservoir; this keeps every row's inclusion odds at K/N.
			reservoir[j] = rec
		}
	}

	return reservoir, total, nil
}

// buildRecord assembles one record from a raw row, degrading every missing or
// malformed field to a default.
func buildRecord(cols map[string]int, row []string, idx int) model.CatalogRecord {
	field := func(name string) string {
		if j, ok := cols[name]; ok && j < len(row) {
			return row[j]
		}
		return ""
	}

	name, bullets, desc := ExtractFields(field("catalog_content"))
	if name == "" {
		name = fmt.Sprintf("Product %d", idx)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(field("price")), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		price = 0
	}

	sampleID := idx
	if v := strings.TrimSpace(field("sample_id")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			sampleID = n
		}
	}

	return model.CatalogRecord{
		SampleID:     sampleID,
		Name:         name,
		Price:        price,
		Category:     Classify(name),
		Unit:         field("unit"),
		Value:        field("value"),
		ImageLink:    field("image_link"),
		BulletPoints: bullets,
		Description:  desc,
	}
}
