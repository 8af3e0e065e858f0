package api

import (
	"time"

	"github.com/simplechat/simplechat/shared/domain"
)

// Request DTOs

type CreateThreadRequest struct {
	Participants []domain.UserId `json:"participants" validate:"required"`
}

// Response DTOs

type ParticipantResponse struct {
	Id       domain.UserId   `json:"id"`
	Username domain.Username `json:"username"`
}

type ThreadResponse struct {
	Id           domain.ThreadId       `json:"id"`
	Participants []ParticipantResponse `json:"participants"`
	Created      time.Time             `json:"created"`
	Updated      time.Time             `json:"updated"`
}

func NewThreadResponse(thread domain.Thread) ThreadResponse {
	participants := make([]ParticipantResponse, 0, len(thread.Participants))
	for _, p := range thread.Participants {
		participants = append(participants, ParticipantResponse{Id: p.Id, Username: p.Username})
	}
	return ThreadResponse{
		Id:           thread.Id,
		Participants: participants,
		Created:      thread.Created,
		Updated:      thread.Updated,
	}
}
