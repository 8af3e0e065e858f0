package service

import (
	"context"
	"slices"

	"github.com/simplechat/simplechat/backend/internal/access"
	"github.com/simplechat/simplechat/backend/internal/storage"
	"github.com/simplechat/simplechat/shared/domain"
	"github.com/simplechat/simplechat/shared/logger"
	"github.com/simplechat/simplechat/shared/middleware/metrics"
)

type ThreadService interface {
	// Create returns the thread of the pair, creating it if needed. The bool is
	// true when this call created it.
	Create(ctx context.Context, initiator domain.UserId, participants []domain.UserId) (domain.Thread, bool, error)
	List(ctx context.Context, user domain.UserId) ([]domain.Thread, error)
	Destroy(ctx context.Context, id domain.ThreadId, requester domain.UserId) error
}

type ThreadValidator interface {
	Participants(participants []domain.UserId) error
}

type Thread struct {
	storage   storage.Store
	validator ThreadValidator
}

func NewThread(storage storage.Store, validator ThreadValidator) ThreadService {
	return &Thread{storage, validator}
}

func (s *Thread) Create(ctx context.Context, initiator domain.UserId, participants []domain.UserId) (domain.Thread, bool, error) {
	if err := s.validator.Participants(participants); err != nil {
		return domain.Thread{}, false, err
	}
	if !slices.Contains(participants, initiator) {
		return domain.Thread{}, false, forbidden("you can only start threads you take part in")
	}

	thread, created, err := s.storage.GetOrCreateThread(ctx, participants)
	if err != nil {
		return domain.Thread{}, false, notFound(err, "participant")
	}
	if created {
		metrics.ThreadsCreated.Inc()
		logger.Log.Info("thread created", "thread_id", thread.Id, "initiator", initiator)
	}
	return thread, created, nil
}

func (s *Thread) List(ctx context.Context, user domain.UserId) ([]domain.Thread, error) {
	return s.storage.ThreadsForUser(ctx, user)
}

func (s *Thread) Destroy(ctx context.Context, id domain.ThreadId, requester domain.UserId) error {
	return s.storage.WithinTx(ctx, func(tx storage.Store) error {
		ok, err := access.New(tx).IsThreadParticipant(ctx, id, requester)
		if err != nil {
			return err
		}
		if !ok {
			return forbidden("not a participant of the thread")
		}
		if err := tx.DeleteThread(ctx, id); err != nil {
			return notFound(err, "thread")
		}
		logger.Log.Info("thread deleted", "thread_id", id, "requester", requester)
		return nil
	})
}
