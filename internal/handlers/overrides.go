package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/rkeulen/autokosten/internal/models"
	"github.com/rkeulen/autokosten/internal/session"
)

// OverridesHandler manages per-vehicle parameter overrides under
// /api/overrides/{plate}.
type OverridesHandler struct {
	sessions *session.Manager
}

func NewOverridesHandler(sessions *session.Manager) *OverridesHandler {
	return &OverridesHandler{sessions: sessions}
}

func (h *OverridesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	plate := models.NormalizePlate(strings.TrimPrefix(r.URL.Path, "/api/overrides/"))
	if plate == "" {
		http.Error(w, "Plate required", http.StatusBadRequest)
		return
	}

	sess, owner, err := sessionFor(r, h.sessions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var values map[string]float64
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		for name, value := range values {
			sess.SetOverride(plate, name, value)
		}

	case http.MethodDelete:
		if name := r.URL.Query().Get("name"); name != "" {
			sess.RemoveOverride(plate, name)
		} else {
			sess.RemovePlateOverrides(plate)
		}

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.sessions.Persist(r.Context(), owner); err != nil {
		log.WithField("owner", owner).WithError(err).Warn("failed to persist session")
	}
	w.WriteHeader(http.StatusNoContent)
}
