package service

import (
	"context"

	"github.com/simplechat/simplechat/backend/internal/access"
	"github.com/simplechat/simplechat/backend/internal/storage"
	"github.com/simplechat/simplechat/shared/domain"
	"github.com/simplechat/simplechat/shared/logger"
	"github.com/simplechat/simplechat/shared/middleware/metrics"
)

type MessageService interface {
	Post(ctx context.Context, threadId domain.ThreadId, sender domain.UserId, text domain.MsgText) (domain.Message, error)
	List(ctx context.Context, threadId domain.ThreadId, requester domain.UserId) ([]domain.Message, error)
	MarkRead(ctx context.Context, id domain.MsgId, requester domain.UserId) error
	CountUnread(ctx context.Context, user domain.UserId) (int, error)
	ListUnread(ctx context.Context, user domain.UserId) ([]domain.Message, error)
}

type MessageValidator interface {
	Text(text domain.MsgText) error
}

type Message struct {
	storage   storage.Store
	validator MessageValidator
}

func NewMessage(storage storage.Store, validator MessageValidator) MessageService {
	return &Message{storage, validator}
}

// Post stores the message and moves the thread's updated time to the message's
// creation time in one transaction. Outsiders are rejected before the text is looked at.
func (s *Message) Post(ctx context.Context, threadId domain.ThreadId, sender domain.UserId, text domain.MsgText) (domain.Message, error) {
	var msg domain.Message
	err := s.storage.WithinTx(ctx, func(tx storage.Store) error {
		ok, err := access.New(tx).IsThreadParticipant(ctx, threadId, sender)
		if err != nil {
			return err
		}
		if !ok {
			return forbidden("not a participant of the thread")
		}
		if _, err := tx.GetThread(ctx, threadId); err != nil {
			return notFound(err, "thread")
		}
		if err := s.validator.Text(text); err != nil {
			return err
		}

		msg, err = tx.CreateMessage(ctx, domain.MessageCreationData{Sender: sender, ThreadId: threadId, Text: text})
		if err != nil {
			return notFound(err, "thread")
		}
		return tx.TouchThreadUpdated(ctx, threadId, msg.Created)
	})
	if err != nil {
		return domain.Message{}, err
	}

	metrics.MessagesPosted.Inc()
	logger.Log.Debug("message posted", "message_id", msg.Id, "thread_id", threadId, "sender", sender)
	return msg, nil
}

func (s *Message) List(ctx context.Context, threadId domain.ThreadId, requester domain.UserId) ([]domain.Message, error) {
	ok, err := access.New(s.storage).IsThreadParticipant(ctx, threadId, requester)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, forbidden("not a participant of the thread")
	}
	return s.storage.MessagesForThread(ctx, threadId)
}

// MarkRead is allowed to thread participants other than the sender.
func (s *Message) MarkRead(ctx context.Context, id domain.MsgId, requester domain.UserId) error {
	return s.storage.WithinTx(ctx, func(tx storage.Store) error {
		guard := access.New(tx)

		participant, err := guard.IsThreadOfMessageParticipant(ctx, id, requester)
		if err != nil {
			return err
		}
		if !participant {
			return forbidden("not a participant of the message thread")
		}
		sender, err := guard.IsSender(ctx, id, requester)
		if err != nil {
			return err
		}
		if sender {
			return forbidden("senders can't mark their own messages read")
		}

		return tx.MarkMessageRead(ctx, id)
	})
}

func (s *Message) CountUnread(ctx context.Context, user domain.UserId) (int, error) {
	return s.storage.CountUnread(ctx, user)
}

func (s *Message) ListUnread(ctx context.Context, user domain.UserId) ([]domain.Message, error) {
	return s.storage.UnreadMessages(ctx, user)
}
