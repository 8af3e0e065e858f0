package handler

import (
	"net/http"

	"github.com/simplechat/simplechat/shared/api"
	"github.com/simplechat/simplechat/shared/utils"
)

// CreateThread answers 201 for a new thread and 200 when the pair already had one.
func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, created, err := h.thread.Create(r.Context(), user.Id, body.Participants)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.WriteJSON(w, status, api.NewThreadResponse(thread))
}

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	threads, err := h.thread.List(r.Context(), user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	resp := make([]api.ThreadResponse, 0, len(threads))
	for _, t := range threads {
		resp = append(resp, api.NewThreadResponse(t))
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	threadId, ok := idParam(w, r, "thread")
	if !ok {
		return
	}

	if err := h.thread.Destroy(r.Context(), threadId, user.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
