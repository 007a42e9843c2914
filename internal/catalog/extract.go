package catalog

import (
	"strings"
	"unicode/utf8"
)

// Field caps keep sampled records bounded no matter how bloated the source
// blob is.
const (
	maxNameLen        = 120
	maxBulletsLen     = 200
	maxDescriptionLen = 300
	fallbackNameLen   = 80
)

const (
	markerName        = "item_name"
	markerBullets     = "bullet_point"
	markerDescription = "product_description"
)

// ExtractFields pulls name, bullet points and description out of a raw
// catalog-content blob. Markers may appear in any order or be missing. Each
// captured span starts after the first colon at or past its marker and runs
// to the start of the next located marker, or to the end of the blob.
func ExtractFields(raw string) (name, bullets, desc string) {
	if raw == "" {
		return "", "", ""
	}

	low := strings.ToLower(raw)
	ni := strings.Index(low, markerName)
	bi := strings.Index(low, markerBullets)
	di := strings.Index(low, markerDescription)

	if ni >= 0 {
		start := segmentStart(raw, ni)
		end := len(raw)
		if bi > start {
			end = bi
		} else if di > start {
			end = di
		}
		name = truncate(strings.TrimSpace(raw[start:end]), maxNameLen)
	}

	if bi >= 0 {
		start := segmentStart(raw, bi)
		end := len(raw)
		if di > start {
			end = di
		}
		bullets = truncate(strings.TrimSpace(raw[start:end]), maxBulletsLen)
	}

	if di >= 0 {
		start := segmentStart(raw, di)
		desc = truncate(strings.TrimSpace(raw[start:]), maxDescriptionLen)
	}

	if name == "" {
		head := truncate(raw, fallbackNameLen)
		name = strings.ReplaceAll(strings.TrimSpace(head), "\n", " ")
	}

	return name, bullets, desc
}

// segmentStart finds the first colon at or past the marker offset. When the
// marker has no colon after it the segment starts at the beginning of the
// blob.
func segmentStart(raw string, markerIdx int) int {
	if i := strings.Index(raw[markerIdx:], ":"); i >= 0 {
		return markerIdx + i + 1
	}
	return 0
}

// truncate caps s at n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
