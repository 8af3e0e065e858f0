package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/simplechat/simplechat/shared/logger"
	"github.com/simplechat/simplechat/shared/utils"
)

const readyTimeout = 2 * time.Second

type healthResponse struct {
	Status string `json:"status"`
}

// Health is the liveness probe, 200 while the process serves requests.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Ready is the readiness probe, 503 while the database can't be reached.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		logger.Log.Warn("readiness check failed", "error", err)
		utils.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "database unavailable"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
