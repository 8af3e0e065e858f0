// Package access holds the authorization predicates of the chat: who may
// read, post to or mark messages of a thread.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/simplechat/simplechat/shared/domain"
	internal_errors "github.com/simplechat/simplechat/shared/errors"
)

type Storage interface {
	IsThreadParticipant(ctx context.Context, id domain.ThreadId, user domain.UserId) (bool, error)
	GetMessage(ctx context.Context, id domain.MsgId) (domain.Message, error)
}

// Guard answers yes/no questions about a user and a resource.
// Storage failures are returned as errors, never as a false answer.
type Guard struct {
	storage Storage
}

func New(storage Storage) *Guard {
	return &Guard{storage: storage}
}

func (g *Guard) IsThreadParticipant(ctx context.Context, threadId domain.ThreadId, user domain.UserId) (bool, error) {
	ok, err := g.storage.IsThreadParticipant(ctx, threadId, user)
	if err != nil {
		return false, fmt.Errorf("check participant of thread %d: %w", threadId, err)
	}
	return ok, nil
}

// IsThreadOfMessageParticipant is false for a missing message.
func (g *Guard) IsThreadOfMessageParticipant(ctx context.Context, messageId domain.MsgId, user domain.UserId) (bool, error) {
	msg, found, err := g.message(ctx, messageId)
	if err != nil || !found {
		return false, err
	}
	return g.IsThreadParticipant(ctx, msg.ThreadId, user)
}

// IsSender is false for a missing message.
func (g *Guard) IsSender(ctx context.Context, messageId domain.MsgId, user domain.UserId) (bool, error) {
	msg, found, err := g.message(ctx, messageId)
	if err != nil || !found {
		return false, err
	}
	return msg.Sender.Id == user, nil
}

func (g *Guard) message(ctx context.Context, id domain.MsgId) (domain.Message, bool, error) {
	msg, err := g.storage.GetMessage(ctx, id)
	if err != nil {
		if errors.Is(err, internal_errors.ErrNotFound) {
			return domain.Message{}, false, nil
		}
		return domain.Message{}, false, fmt.Errorf("fetch message %d: %w", id, err)
	}
	return msg, true, nil
}
