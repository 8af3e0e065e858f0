// Package storage declares the persistence contract of the chat core.
// backend/internal/storage/pg is the postgres implementation.
package storage

import (
	"context"
	"time"

	"github.com/simplechat/simplechat/shared/domain"
)

type ThreadStore interface {
	// ThreadByParticipants returns the thread whose participant pair is {a, b} in any order.
	ThreadByParticipants(ctx context.Context, a, b domain.UserId) (domain.Thread, error)
	CreateThread(ctx context.Context, participants []domain.UserId) (domain.Thread, error)
	// GetOrCreateThread never creates a second thread for the same pair,
	// the bool reports whether the thread was created by this call.
	GetOrCreateThread(ctx context.Context, participants []domain.UserId) (domain.Thread, bool, error)
	GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
	ThreadsForUser(ctx context.Context, user domain.UserId) ([]domain.Thread, error)
	TouchThreadUpdated(ctx context.Context, id domain.ThreadId, ts time.Time) error
	DeleteThread(ctx context.Context, id domain.ThreadId) error
	IsThreadParticipant(ctx context.Context, id domain.ThreadId, user domain.UserId) (bool, error)
}

type MessageStore interface {
	CreateMessage(ctx context.Context, data domain.MessageCreationData) (domain.Message, error)
	GetMessage(ctx context.Context, id domain.MsgId) (domain.Message, error)
	MessagesForThread(ctx context.Context, threadId domain.ThreadId) ([]domain.Message, error)
	MarkMessageRead(ctx context.Context, id domain.MsgId) error
	CountUnread(ctx context.Context, user domain.UserId) (int, error)
	UnreadMessages(ctx context.Context, user domain.UserId) ([]domain.Message, error)
}

// Store is the full chat storage. WithinTx runs fn against a Store bound to a
// single transaction, nested calls reuse the outer transaction.
type Store interface {
	ThreadStore
	MessageStore
	WithinTx(ctx context.Context, fn func(Store) error) error
}
