package handler

import (
	"net/http"

	"github.com/simplechat/simplechat/shared/api"
	"github.com/simplechat/simplechat/shared/utils"
)

func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	threadId, ok := idParam(w, r, "thread")
	if !ok {
		return
	}

	var body api.CreateMessageRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	msg, err := h.message.Post(r.Context(), threadId, user.Id, body.Text)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, api.NewMessageResponse(msg, h.renderer.Render(msg.Text)))
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	threadId, ok := idParam(w, r, "thread")
	if !ok {
		return
	}

	messages, err := h.message.List(r.Context(), threadId, user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.messageResponses(messages))
}

func (h *Handler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	messageId, ok := idParam(w, r, "message")
	if !ok {
		return
	}

	if err := h.message.MarkRead(r.Context(), messageId, user.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) CountUnread(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	count, err := h.message.CountUnread(r.Context(), user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.UnreadCountResponse(count))
}

func (h *Handler) ListUnread(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	messages, err := h.message.ListUnread(r.Context(), user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.messageResponses(messages))
}
