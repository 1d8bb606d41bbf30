package handlers

import (
	"net/http"

	"github.com/rkeulen/autokosten/internal/export"
	"github.com/rkeulen/autokosten/internal/session"
)

// ExportHandler serves the most recently computed batch as CSV.
type ExportHandler struct {
	sessions *session.Manager
}

func NewExportHandler(sessions *session.Manager) *ExportHandler {
	return &ExportHandler{sessions: sessions}
}

func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, _, err := sessionFor(r, h.sessions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	results := sess.LastResults()
	if len(results) == 0 {
		http.Error(w, "Nothing computed yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="autokosten.csv"`)
	if err := export.WriteCSV(w, results); err != nil {
		http.Error(w, "Failed to write export", http.StatusInternalServerError)
	}
}
