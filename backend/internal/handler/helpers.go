package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/simplechat/simplechat/shared/api"
	"github.com/simplechat/simplechat/shared/domain"
	mw "github.com/simplechat/simplechat/shared/middleware"
)

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return val, nil
}

// idParam reads a numeric chi url parameter, writing 400 when it is malformed.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := parseIntParam(chi.URLParam(r, name), name+" id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// requireUser returns the authenticated user, writing 401 when there is none.
func requireUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return user, true
}

func (h *Handler) messageResponses(messages []domain.Message) []api.MessageResponse {
	resp := make([]api.MessageResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, api.NewMessageResponse(m, h.renderer.Render(m.Text)))
	}
	return resp
}
