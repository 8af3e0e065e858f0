package service

import (
	"context"
	"sync"
	"time"

	"github.com/simplechat/simplechat/backend/internal/storage"
	"github.com/simplechat/simplechat/shared/domain"
)

// MockStore mocks storage.Store. Unset funcs return zero values and no error.
type MockStore struct {
	threadByParticipantsFunc func(ctx context.Context, a, b domain.UserId) (domain.Thread, error)
	createThreadFunc         func(ctx context.Context, participants []domain.UserId) (domain.Thread, error)
	getOrCreateThreadFunc    func(ctx context.Context, participants []domain.UserId) (domain.Thread, bool, error)
	getThreadFunc            func(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
	threadsForUserFunc       func(ctx context.Context, user domain.UserId) ([]domain.Thread, error)
	touchThreadUpdatedFunc   func(ctx context.Context, id domain.ThreadId, ts time.Time) error
	deleteThreadFunc         func(ctx context.Context, id domain.ThreadId) error
	isThreadParticipantFunc  func(ctx context.Context, id domain.ThreadId, user domain.UserId) (bool, error)

	createMessageFunc     func(ctx context.Context, data domain.MessageCreationData) (domain.Message, error)
	getMessageFunc        func(ctx context.Context, id domain.MsgId) (domain.Message, error)
	messagesForThreadFunc func(ctx context.Context, threadId domain.ThreadId) ([]domain.Message, error)
	markMessageReadFunc   func(ctx context.Context, id domain.MsgId) error
	countUnreadFunc       func(ctx context.Context, user domain.UserId) (int, error)
	unreadMessagesFunc    func(ctx context.Context, user domain.UserId) ([]domain.Message, error)

	mu                  sync.Mutex
	txCalls             int
	deleteThreadCalled  bool
	createMessageCalled bool
	markReadCalled      bool
	touchedThread       domain.ThreadId
	touchedAt           time.Time
}

var _ storage.Store = (*MockStore)(nil)

func (m *MockStore) WithinTx(ctx context.Context, fn func(storage.Store) error) error {
	m.mu.Lock()
	m.txCalls++
	m.mu.Unlock()
	return fn(m)
}

func (m *MockStore) ThreadByParticipants(ctx context.Context, a, b domain.UserId) (domain.Thread, error) {
	if m.threadByParticipantsFunc != nil {
		return m.threadByParticipantsFunc(ctx, a, b)
	}
	return domain.Thread{}, nil
}

func (m *MockStore) CreateThread(ctx context.Context, participants []domain.UserId) (domain.Thread, error) {
	if m.createThreadFunc != nil {
		return m.createThreadFunc(ctx, participants)
	}
	return domain.Thread{Id: 1}, nil
}

func (m *MockStore) GetOrCreateThread(ctx context.Context, participants []domain.UserId) (domain.Thread, bool, error) {
	if m.getOrCreateThreadFunc != nil {
		return m.getOrCreateThreadFunc(ctx, participants)
	}
	return domain.Thread{Id: 1}, true, nil
}

func (m *MockStore) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	if m.getThreadFunc != nil {
		return m.getThreadFunc(ctx, id)
	}
	return domain.Thread{Id: id}, nil
}

func (m *MockStore) ThreadsForUser(ctx context.Context, user domain.UserId) ([]domain.Thread, error) {
	if m.threadsForUserFunc != nil {
		return m.threadsForUserFunc(ctx, user)
	}
	return []domain.Thread{}, nil
}

func (m *MockStore) TouchThreadUpdated(ctx context.Context, id domain.ThreadId, ts time.Time) error {
	m.mu.Lock()
	m.touchedThread, m.touchedAt = id, ts
	m.mu.Unlock()
	if m.touchThreadUpdatedFunc != nil {
		return m.touchThreadUpdatedFunc(ctx, id, ts)
	}
	return nil
}

func (m *MockStore) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	m.mu.Lock()
	m.deleteThreadCalled = true
	m.mu.Unlock()
	if m.deleteThreadFunc != nil {
		return m.deleteThreadFunc(ctx, id)
	}
	return nil
}

func (m *MockStore) IsThreadParticipant(ctx context.Context, id domain.ThreadId, user domain.UserId) (bool, error) {
	if m.isThreadParticipantFunc != nil {
		return m.isThreadParticipantFunc(ctx, id, user)
	}
	return true, nil
}

func (m *MockStore) CreateMessage(ctx context.Context, data domain.MessageCreationData) (domain.Message, error) {
	m.mu.Lock()
	m.createMessageCalled = true
	m.mu.Unlock()
	if m.createMessageFunc != nil {
		return m.createMessageFunc(ctx, data)
	}
	return domain.Message{Id: 1, Sender: domain.User{Id: data.Sender}, ThreadId: data.ThreadId, Text: data.Text, Created: time.Now().UTC()}, nil
}

func (m *MockStore) GetMessage(ctx context.Context, id domain.MsgId) (domain.Message, error) {
	if m.getMessageFunc != nil {
		return m.getMessageFunc(ctx, id)
	}
	return domain.Message{Id: id}, nil
}

func (m *MockStore) MessagesForThread(ctx context.Context, threadId domain.ThreadId) ([]domain.Message, error) {
	if m.messagesForThreadFunc != nil {
		return m.messagesForThreadFunc(ctx, threadId)
	}
	return []domain.Message{}, nil
}

func (m *MockStore) MarkMessageRead(ctx context.Context, id domain.MsgId) error {
	m.mu.Lock()
	m.markReadCalled = true
	m.mu.Unlock()
	if m.markMessageReadFunc != nil {
		return m.markMessageReadFunc(ctx, id)
	}
	return nil
}

func (m *MockStore) CountUnread(ctx context.Context, user domain.UserId) (int, error) {
	if m.countUnreadFunc != nil {
		return m.countUnreadFunc(ctx, user)
	}
	return 0, nil
}

func (m *MockStore) UnreadMessages(ctx context.Context, user domain.UserId) ([]domain.Message, error) {
	if m.unreadMessagesFunc != nil {
		return m.unreadMessagesFunc(ctx, user)
	}
	return []domain.Message{}, nil
}

type MockThreadValidator struct {
	participantsFunc func(participants []domain.UserId) error
}

func (m *MockThreadValidator) Participants(participants []domain.UserId) error {
	if m.participantsFunc != nil {
		return m.participantsFunc(participants)
	}
	return nil
}

type MockMessageValidator struct {
	textFunc func(text domain.MsgText) error
}

func (m *MockMessageValidator) Text(text domain.MsgText) error {
	if m.textFunc != nil {
		return m.textFunc(text)
	}
	return nil
}
