package handlers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/rkeulen/autokosten/internal/models"
	"github.com/rkeulen/autokosten/internal/session"
)

// ParamsHandler reads and replaces the session's global parameters.
type ParamsHandler struct {
	sessions *session.Manager
}

func NewParamsHandler(sessions *session.Manager) *ParamsHandler {
	return &ParamsHandler{sessions: sessions}
}

func (h *ParamsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, owner, err := sessionFor(r, h.sessions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sess.Params())

	case http.MethodPut:
		var params models.Params
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if params.AnnualKM < 0 || params.FuelPricePerLiter < 0 || params.ElectricityPricePerKWH < 0 ||
			params.InterestRatePct < 0 || params.InterestRatePct > 100 {
			http.Error(w, "Parameter out of range", http.StatusBadRequest)
			return
		}
		sess.SetParams(params)
		if err := h.sessions.Persist(r.Context(), owner); err != nil {
			log.WithField("owner", owner).WithError(err).Warn("failed to persist session")
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
