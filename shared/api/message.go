package api

import (
	"time"

	"github.com/simplechat/simplechat/shared/domain"
)

// Request DTOs

// Text is checked by the service after the sender's access to the thread.
type CreateMessageRequest struct {
	Text string `json:"text"`
}

// Response DTOs

type MessageResponse struct {
	Id       domain.MsgId        `json:"id"`
	Sender   ParticipantResponse `json:"sender"`
	ThreadId domain.ThreadId     `json:"thread"`
	Text     domain.MsgText      `json:"text"`
	TextHTML string              `json:"text_html"`
	Created  time.Time           `json:"created"`
	IsRead   bool                `json:"is_read"`
}

// NewMessageResponse builds the response, textHTML is the rendered form of message.Text.
func NewMessageResponse(message domain.Message, textHTML string) MessageResponse {
	return MessageResponse{
		Id:       message.Id,
		Sender:   ParticipantResponse{Id: message.Sender.Id, Username: message.Sender.Username},
		ThreadId: message.ThreadId,
		Text:     message.Text,
		TextHTML: textHTML,
		Created:  message.Created,
		IsRead:   message.IsRead,
	}
}

type UnreadCountResponse = int
