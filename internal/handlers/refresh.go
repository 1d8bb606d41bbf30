package handlers

import (
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/rkeulen/autokosten/internal/models"
	"github.com/rkeulen/autokosten/internal/session"
)

// RefreshHandler forces fresh registry and tax data for one plate,
// bypassing and overwriting the session cache.
type RefreshHandler struct {
	sessions *session.Manager
}

func NewRefreshHandler(sessions *session.Manager) *RefreshHandler {
	return &RefreshHandler{sessions: sessions}
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	plate := models.NormalizePlate(strings.TrimPrefix(r.URL.Path, "/api/refresh/"))
	if plate == "" {
		http.Error(w, "Plate required", http.StatusBadRequest)
		return
	}

	sess, owner, err := sessionFor(r, h.sessions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	if err := sess.Refresh(r.Context(), plate); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if err := h.sessions.Persist(r.Context(), owner); err != nil {
		log.WithField("owner", owner).WithError(err).Warn("failed to persist session")
	}
	w.WriteHeader(http.StatusNoContent)
}
