package store

import (
	"encoding/json"
	"io"
	"time"

	"kanbo/internal/model"
)

type exportEnvelope struct {
	KanboVersion string          `json:"kanboVersion"`
	ExportDate   string          `json:"exportDate"`
	State        *model.AppState `json:"state"`
}

// ExportJSON writes a human-readable snapshot, useful for moving data out of
// the binary save format.
func ExportJSON(w io.Writer, st *model.AppState, appVersion string, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportEnvelope{
		KanboVersion: appVersion,
		ExportDate:   now.Format("2006-01-02"),
		State:        st,
	})
}
