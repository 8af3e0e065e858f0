package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/simplechat/simplechat/shared/api"
	"github.com/simplechat/simplechat/shared/domain"
	internal_errors "github.com/simplechat/simplechat/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateThread(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	thread := domain.Thread{Id: 7, Participants: []domain.User{*alice, *bob}, Created: created, Updated: created}

	t.Run("new thread", func(t *testing.T) {
		threads := &MockThreadService{
			CreateFunc: func(ctx context.Context, initiator domain.UserId, participants []domain.UserId) (domain.Thread, bool, error) {
				assert.Equal(t, alice.Id, initiator)
				assert.Equal(t, []domain.UserId{1, 2}, participants)
				return thread, true, nil
			},
		}
		h := newTestHandler(threads, &MockMessageService{})

		rr := httptest.NewRecorder()
		h.CreateThread(rr, newRequest(http.MethodPost, "/v1/threads", `{"participants":[1,2]}`, alice, nil))

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp api.ThreadResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, domain.ThreadId(7), resp.Id)
		assert.Equal(t, []api.ParticipantResponse{{Id: 1, Username: "alice"}, {Id: 2, Username: "bob"}}, resp.Participants)
		assert.True(t, created.Equal(resp.Updated))
	})

	t.Run("existing thread", func(t *testing.T) {
		threads := &MockThreadService{
			CreateFunc: func(ctx context.Context, initiator domain.UserId, participants []domain.UserId) (domain.Thread, bool, error) {
				return thread, false, nil
			},
		}
		h := newTestHandler(threads, &MockMessageService{})

		rr := httptest.NewRecorder()
		h.CreateThread(rr, newRequest(http.MethodPost, "/v1/threads", `{"participants":[2,1]}`, alice, nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("bad body", func(t *testing.T) {
		h := newTestHandler(&MockThreadService{}, &MockMessageService{})

		for _, body := range []string{`{`, `{}`} {
			rr := httptest.NewRecorder()
			h.CreateThread(rr, newRequest(http.MethodPost, "/v1/threads", body, alice, nil))
			assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		}
	})

	t.Run("service errors", func(t *testing.T) {
		for _, tc := range []struct {
			err    error
			status int
		}{
			{&internal_errors.ValidationError{Message: "count"}, http.StatusBadRequest},
			{&internal_errors.ForbiddenError{Message: "no"}, http.StatusForbidden},
			{&internal_errors.NotFoundError{Message: "participant"}, http.StatusNotFound},
		} {
			threads := &MockThreadService{
				CreateFunc: func(ctx context.Context, initiator domain.UserId, participants []domain.UserId) (domain.Thread, bool, error) {
					return domain.Thread{}, false, tc.err
				},
			}
			h := newTestHandler(threads, &MockMessageService{})

			rr := httptest.NewRecorder()
			h.CreateThread(rr, newRequest(http.MethodPost, "/v1/threads", `{"participants":[1]}`, alice, nil))
			assert.Equal(t, tc.status, rr.Code)
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h := newTestHandler(&MockThreadService{}, &MockMessageService{})

		rr := httptest.NewRecorder()
		h.CreateThread(rr, newRequest(http.MethodPost, "/v1/threads", `{"participants":[1,2]}`, nil, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestListThreads(t *testing.T) {
	threads := &MockThreadService{
		ListFunc: func(ctx context.Context, user domain.UserId) ([]domain.Thread, error) {
			assert.Equal(t, bob.Id, user)
			return []domain.Thread{{Id: 1}, {Id: 2}}, nil
		},
	}
	h := newTestHandler(threads, &MockMessageService{})

	rr := httptest.NewRecorder()
	h.ListThreads(rr, newRequest(http.MethodGet, "/v1/threads", "", bob, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp []api.ThreadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, domain.ThreadId(2), resp[1].Id)
	assert.NotNil(t, resp[0].Participants)
}

func TestDeleteThread(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		called := false
		threads := &MockThreadService{
			DestroyFunc: func(ctx context.Context, id domain.ThreadId, requester domain.UserId) error {
				called = true
				assert.Equal(t, domain.ThreadId(7), id)
				assert.Equal(t, alice.Id, requester)
				return nil
			},
		}
		h := newTestHandler(threads, &MockMessageService{})

		rr := httptest.NewRecorder()
		h.DeleteThread(rr, newRequest(http.MethodDelete, "/v1/threads/7", "", alice, map[string]string{"thread": "7"}))
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.True(t, called)
	})

	t.Run("forbidden", func(t *testing.T) {
		threads := &MockThreadService{
			DestroyFunc: func(ctx context.Context, id domain.ThreadId, requester domain.UserId) error {
				return &internal_errors.ForbiddenError{Message: "not a participant"}
			},
		}
		h := newTestHandler(threads, &MockMessageService{})

		rr := httptest.NewRecorder()
		h.DeleteThread(rr, newRequest(http.MethodDelete, "/v1/threads/7", "", bob, map[string]string{"thread": "7"}))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		h := newTestHandler(&MockThreadService{}, &MockMessageService{})

		rr := httptest.NewRecorder()
		h.DeleteThread(rr, newRequest(http.MethodDelete, "/v1/threads/abc", "", alice, map[string]string{"thread": "abc"}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
