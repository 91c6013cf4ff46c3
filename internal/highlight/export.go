package highlight

import (
	"encoding/json"
	"time"
)

// ExportVersion tags the export file format.
const ExportVersion = "1.0"

// Export is the downloadable snapshot of the whole collection.
type Export struct {
	Highlights []Record `json:"highlights"`
	ExportDate string   `json:"exportDate"`
	Version    string   `json:"version"`
}

// NewExport builds an export document stamped at now.
func NewExport(records []Record, now time.Time) Export {
	if records == nil {
		records = []Record{}
	}
	return Export{
		Highlights: records,
		ExportDate: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Version:    ExportVersion,
	}
}

// FileName is the suggested download name for an export taken at now.
func FileName(now time.Time) string {
	return "pagemark-highlights-" + now.UTC().Format("2006-01-02") + ".json"
}

// MarshalIndent renders the export with two-space indentation.
func (e Export) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}
