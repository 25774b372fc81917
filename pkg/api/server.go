package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/psantana5/chronograph/pkg/chronograph"
	"github.com/psantana5/chronograph/pkg/logging"
)

// Handler serves the contents of a chronograph registry over HTTP.
type Handler struct {
	registry *chronograph.Registry
	logger   *logging.Logger
}

// NewHandler creates a new API handler over reg.
func NewHandler(reg *chronograph.Registry, logger *logging.Logger) *Handler {
	return &Handler{
		registry: reg,
		logger:   logger,
	}
}

// RegisterRoutes registers all API routes on the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/v1/chronographs", h.ListChronographs).Methods("GET")
	r.HandleFunc("/api/v1/chronographs/{name}", h.GetChronograph).Methods("GET")
	r.HandleFunc("/api/v1/chronographs/{name}/report", h.GetReport).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")
}

// Summary is the list-view representation of one Chronograph.
type Summary struct {
	Name         string  `json:"name" yaml:"name"`
	ID           string  `json:"id" yaml:"id"`
	Splits       int     `json:"splits" yaml:"splits"`
	Running      bool    `json:"running" yaml:"running"`
	TotalSeconds float64 `json:"total_seconds" yaml:"total_seconds"`
}

// Detail is the full representation including split records.
type Detail struct {
	Name         string              `json:"name" yaml:"name"`
	ID           string              `json:"id" yaml:"id"`
	Running      bool                `json:"running" yaml:"running"`
	TotalSeconds float64             `json:"total_seconds" yaml:"total_seconds"`
	Splits       []chronograph.Split `json:"splits" yaml:"splits"`
}

// ListChronographs returns a summary of every registered Chronograph.
func (h *Handler) ListChronographs(w http.ResponseWriter, r *http.Request) {
	summaries := make([]Summary, 0)
	h.registry.Each(func(c *chronograph.Chronograph) {
		summaries = append(summaries, Summary{
			Name:         c.Name(),
			ID:           c.ID(),
			Splits:       c.SplitCount(),
			Running:      c.Running(),
			TotalSeconds: c.Seconds(),
		})
	})

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"chronographs": summaries,
		"count":        len(summaries),
	})
}

// GetChronograph returns the full split records for one Chronograph.
func (h *Handler) GetChronograph(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	c, ok := h.registry.Get(name)
	if !ok {
		http.Error(w, "Chronograph not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, Detail{
		Name:         c.Name(),
		ID:           c.ID(),
		Running:      c.Running(),
		TotalSeconds: c.Seconds(),
		Splits:       c.Splits(),
	})
}

// GetReport returns the human-readable report for one Chronograph.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	c, ok := h.registry.Get(name)
	if !ok {
		http.Error(w, "Chronograph not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(c.Report()))
}

// Health is a liveness endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
