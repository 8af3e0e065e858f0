package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/simplechat/simplechat/shared/config"
	"github.com/simplechat/simplechat/shared/domain"
	"github.com/simplechat/simplechat/shared/markdown"
	mw "github.com/simplechat/simplechat/shared/middleware"
)

// --- Mocks ---

type MockThreadService struct {
	CreateFunc  func(ctx context.Context, initiator domain.UserId, participants []domain.UserId) (domain.Thread, bool, error)
	ListFunc    func(ctx context.Context, user domain.UserId) ([]domain.Thread, error)
	DestroyFunc func(ctx context.Context, id domain.ThreadId, requester domain.UserId) error
}

func (m *MockThreadService) Create(ctx context.Context, initiator domain.UserId, participants []domain.UserId) (domain.Thread, bool, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, initiator, participants)
	}
	return domain.Thread{Id: 1}, true, nil
}

func (m *MockThreadService) List(ctx context.Context, user domain.UserId) ([]domain.Thread, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, user)
	}
	return []domain.Thread{}, nil
}

func (m *MockThreadService) Destroy(ctx context.Context, id domain.ThreadId, requester domain.UserId) error {
	if m.DestroyFunc != nil {
		return m.DestroyFunc(ctx, id, requester)
	}
	return nil
}

type MockMessageService struct {
	PostFunc        func(ctx context.Context, threadId domain.ThreadId, sender domain.UserId, text domain.MsgText) (domain.Message, error)
	ListFunc        func(ctx context.Context, threadId domain.ThreadId, requester domain.UserId) ([]domain.Message, error)
	MarkReadFunc    func(ctx context.Context, id domain.MsgId, requester domain.UserId) error
	CountUnreadFunc func(ctx context.Context, user domain.UserId) (int, error)
	ListUnreadFunc  func(ctx context.Context, user domain.UserId) ([]domain.Message, error)
}

func (m *MockMessageService) Post(ctx context.Context, threadId domain.ThreadId, sender domain.UserId, text domain.MsgText) (domain.Message, error) {
	if m.PostFunc != nil {
		return m.PostFunc(ctx, threadId, sender, text)
	}
	return domain.Message{Id: 1, ThreadId: threadId, Sender: domain.User{Id: sender}, Text: text}, nil
}

func (m *MockMessageService) List(ctx context.Context, threadId domain.ThreadId, requester domain.UserId) ([]domain.Message, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, threadId, requester)
	}
	return []domain.Message{}, nil
}

func (m *MockMessageService) MarkRead(ctx context.Context, id domain.MsgId, requester domain.UserId) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, id, requester)
	}
	return nil
}

func (m *MockMessageService) CountUnread(ctx context.Context, user domain.UserId) (int, error) {
	if m.CountUnreadFunc != nil {
		return m.CountUnreadFunc(ctx, user)
	}
	return 0, nil
}

func (m *MockMessageService) ListUnread(ctx context.Context, user domain.UserId) ([]domain.Message, error) {
	if m.ListUnreadFunc != nil {
		return m.ListUnreadFunc(ctx, user)
	}
	return []domain.Message{}, nil
}

// --- Helpers ---

func newTestHandler(thread *MockThreadService, message *MockMessageService) *Handler {
	return New(thread, message, markdown.New(), &MockHealthChecker{}, &config.Config{})
}

// newRequest builds a request as the router would pass it: with url params and,
// when user is not nil, an authenticated user.
func newRequest(method, target, body string, user *domain.User, params map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	ctx := req.Context()
	if user != nil {
		ctx = context.WithValue(ctx, mw.UserClaimsKey, user)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

var (
	alice = &domain.User{Id: 1, Username: "alice"}
	bob   = &domain.User{Id: 2, Username: "bob"}
)
