package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/rkeulen/autokosten/internal/middleware"
	"github.com/rkeulen/autokosten/internal/models"
	"github.com/rkeulen/autokosten/internal/notify"
	"github.com/rkeulen/autokosten/internal/registry"
	"github.com/rkeulen/autokosten/internal/session"
)

// ComputeRequest carries a newline-separated list of plates, the way the
// input form submits them.
type ComputeRequest struct {
	Plates string `json:"plates"`
}

// ComputeResponse returns the breakdowns in input order plus an inline
// message per failed plate.
type ComputeResponse struct {
	Results []models.CostBreakdown `json:"results"`
	Errors  map[string]string      `json:"errors,omitempty"`
}

// ComputeHandler runs the fetch-and-compute pipeline for a batch of
// plates in the caller's session.
type ComputeHandler struct {
	sessions  *session.Manager
	publisher *notify.Publisher
}

func NewComputeHandler(sessions *session.Manager, publisher *notify.Publisher) *ComputeHandler {
	return &ComputeHandler{sessions: sessions, publisher: publisher}
}

// sessionFor resolves the caller's session from the auth claims.
func sessionFor(r *http.Request, sessions *session.Manager) (*session.Session, string, error) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		return nil, "", errors.New("user context not found")
	}
	s, err := sessions.Get(r.Context(), claims.Username)
	return s, claims.Username, err
}

func (h *ComputeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req ComputeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	plates := splitPlates(req.Plates)
	if len(plates) == 0 {
		http.Error(w, "No plates given", http.StatusBadRequest)
		return
	}

	sess, owner, err := sessionFor(r, h.sessions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	results, failures, err := sess.ComputeAll(r.Context(), plates)
	if err != nil {
		if errors.Is(err, session.ErrAllPlatesFailed) {
			http.Error(w, "None of the submitted plates could be resolved", http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for _, b := range results {
		h.publisher.Publish(b)
	}

	if err := h.sessions.Persist(r.Context(), owner); err != nil {
		log.WithField("owner", owner).WithError(err).Warn("failed to persist session")
	}

	resp := ComputeResponse{Results: results, Errors: failureMessages(failures)}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// splitPlates keeps the lines that hold an actual plate: lines that are
// blank or all separators (normalize to empty) are dropped, so they
// count as "no plates given" rather than as a failed batch.
func splitPlates(input string) []string {
	var plates []string
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if models.NormalizePlate(line) != "" {
			plates = append(plates, line)
		}
	}
	return plates
}

func failureMessages(failures map[string]error) map[string]string {
	if len(failures) == 0 {
		return nil
	}
	msgs := make(map[string]string, len(failures))
	for plate, err := range failures {
		switch {
		case errors.Is(err, registry.ErrNotFound):
			msgs[plate] = "no registry record for this plate"
		case errors.Is(err, session.ErrSourceUnavailable):
			msgs[plate] = "external source unavailable, retry with refresh"
		default:
			msgs[plate] = err.Error()
		}
	}
	return msgs
}
