package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/simplechat/simplechat/shared/domain"
	"github.com/simplechat/simplechat/shared/errors"
)

type MessageValidator struct{}

func (e *MessageValidator) Text(text domain.MsgText) error {
	if strings.TrimSpace(text) == "" {
		return &errors.ValidationError{Message: "Text is too short"}
	}
	if utf8.RuneCountInString(text) > domain.MaxMessageLength {
		return &errors.ValidationError{Message: fmt.Sprintf("Text is too long, max %d characters", domain.MaxMessageLength)}
	}
	return nil
}

type ThreadValidator struct{}

func (e *ThreadValidator) Participants(participants []domain.UserId) error {
	if len(participants) != domain.ThreadParticipantsCount {
		return &errors.ValidationError{Message: fmt.Sprintf("Thread needs exactly %d participants", domain.ThreadParticipantsCount)}
	}
	return nil
}
