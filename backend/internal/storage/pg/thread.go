package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/simplechat/simplechat/shared/domain"
	internal_errors "github.com/simplechat/simplechat/shared/errors"
	"github.com/simplechat/simplechat/shared/storage/pg"
)

func validateParticipants(participants []domain.UserId) error {
	if len(participants) != domain.ThreadParticipantsCount {
		return &internal_errors.ValidationError{Message: "Thread needs to have 2 participants"}
	}
	return nil
}

func (s *Storage) ThreadByParticipants(ctx context.Context, a, b domain.UserId) (domain.Thread, error) {
	low, high := domain.CanonicalPair(a, b)
	var thread domain.Thread
	err := s.q.QueryRowContext(ctx, `
		SELECT id, created, updated
		FROM threads
		WHERE participant_low = $1 AND participant_high = $2
	`, low, high).Scan(&thread.Id, &thread.Created, &thread.Updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, fmt.Errorf("thread of users %d and %d: %w", low, high, internal_errors.ErrNotFound)
		}
		return domain.Thread{}, fmt.Errorf("failed to fetch thread by participants: %w", err)
	}

	if err := s.loadParticipants(ctx, []*domain.Thread{&thread}); err != nil {
		return domain.Thread{}, err
	}
	return thread, nil
}

// insertThread inserts the thread and its participant rows. inserted is false
// when a thread for the pair already exists.
func (s *Storage) insertThread(ctx context.Context, a, b domain.UserId) (thread domain.Thread, inserted bool, err error) {
	low, high := domain.CanonicalPair(a, b)
	ts := now()
	err = s.q.QueryRowContext(ctx, `
		INSERT INTO threads (participant_low, participant_high, created, updated)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (participant_low, participant_high) DO NOTHING
		RETURNING id, created, updated
	`, low, high, ts).Scan(&thread.Id, &thread.Created, &thread.Updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, false, nil
		}
		return domain.Thread{}, false, fmt.Errorf("failed to insert thread: %w", err)
	}

	// a self-thread (low == high) gets a single participant row
	members := []domain.UserId{low}
	if high != low {
		members = append(members, high)
	}
	_, err = s.q.ExecContext(ctx, `
		INSERT INTO thread_participants (thread_id, user_id)
		SELECT $1, unnest($2::bigint[])
	`, thread.Id, pq.Array(members))
	if err != nil {
		if pg.HasCode(err, pg.ForeignKeyViolation) {
			return domain.Thread{}, false, fmt.Errorf("participant user: %w", internal_errors.ErrNotFound)
		}
		return domain.Thread{}, false, fmt.Errorf("failed to insert thread participants: %w", err)
	}

	if err := s.loadParticipants(ctx, []*domain.Thread{&thread}); err != nil {
		return domain.Thread{}, false, err
	}
	return thread, true, nil
}

// CreateThread creates a thread for the pair, ErrConflict if it already has one.
func (s *Storage) CreateThread(ctx context.Context, participants []domain.UserId) (domain.Thread, error) {
	if err := validateParticipants(participants); err != nil {
		return domain.Thread{}, err
	}

	var thread domain.Thread
	err := s.transact(ctx, func(tx *Storage) error {
		t, inserted, err := tx.insertThread(ctx, participants[0], participants[1])
		if err != nil {
			return err
		}
		if !inserted {
			return fmt.Errorf("thread of users %d and %d: %w", participants[0], participants[1], internal_errors.ErrConflict)
		}
		thread = t
		return nil
	})
	return thread, err
}

func (s *Storage) GetOrCreateThread(ctx context.Context, participants []domain.UserId) (domain.Thread, bool, error) {
	if err := validateParticipants(participants); err != nil {
		return domain.Thread{}, false, err
	}
	a, b := participants[0], participants[1]

	var (
		thread  domain.Thread
		created bool
	)
	err := s.transact(ctx, func(tx *Storage) error {
		existing, err := tx.ThreadByParticipants(ctx, a, b)
		if err == nil {
			thread = existing
			return nil
		}
		if !errors.Is(err, internal_errors.ErrNotFound) {
			return err
		}

		t, inserted, err := tx.insertThread(ctx, a, b)
		if err != nil {
			return err
		}
		if !inserted {
			// Lost a race with a concurrent insert. The conflicting row is
			// committed by now and visible to the next statement.
			existing, err = tx.ThreadByParticipants(ctx, a, b)
			if err != nil {
				return err
			}
			thread = existing
			return nil
		}
		thread, created = t, true
		return nil
	})
	if err != nil {
		return domain.Thread{}, false, err
	}
	return thread, created, nil
}

func (s *Storage) GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	var thread domain.Thread
	err := s.q.QueryRowContext(ctx, `
		SELECT id, created, updated
		FROM threads
		WHERE id = $1
	`, id).Scan(&thread.Id, &thread.Created, &thread.Updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, fmt.Errorf("thread %d: %w", id, internal_errors.ErrNotFound)
		}
		return domain.Thread{}, fmt.Errorf("failed to fetch thread: %w", err)
	}

	if err := s.loadParticipants(ctx, []*domain.Thread{&thread}); err != nil {
		return domain.Thread{}, err
	}
	return thread, nil
}

// ThreadsForUser returns the user's threads in creation (id) order.
func (s *Storage) ThreadsForUser(ctx context.Context, user domain.UserId) ([]domain.Thread, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT t.id, t.created, t.updated
		FROM threads t
		JOIN thread_participants tp ON tp.thread_id = t.id
		WHERE tp.user_id = $1
		ORDER BY t.id
	`, user)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch threads: %w", err)
	}
	defer rows.Close()

	threads := []domain.Thread{}
	for rows.Next() {
		var thread domain.Thread
		if err := rows.Scan(&thread.Id, &thread.Created, &thread.Updated); err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	ptrs := make([]*domain.Thread, len(threads))
	for i := range threads {
		ptrs[i] = &threads[i]
	}
	if err := s.loadParticipants(ctx, ptrs); err != nil {
		return nil, err
	}
	return threads, nil
}

// loadParticipants fills Participants of every thread with one query.
func (s *Storage) loadParticipants(ctx context.Context, threads []*domain.Thread) error {
	if len(threads) == 0 {
		return nil
	}
	ids := make([]domain.ThreadId, len(threads))
	byId := make(map[domain.ThreadId]*domain.Thread, len(threads))
	for i, t := range threads {
		ids[i] = t.Id
		t.Participants = []domain.User{}
		byId[t.Id] = t
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT tp.thread_id, u.id, u.username
		FROM thread_participants tp
		JOIN users u ON u.id = tp.user_id
		WHERE tp.thread_id = ANY($1)
		ORDER BY tp.thread_id, u.id
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch thread participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			threadId domain.ThreadId
			user     domain.User
		)
		if err := rows.Scan(&threadId, &user.Id, &user.Username); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		if t, ok := byId[threadId]; ok {
			t.Participants = append(t.Participants, user)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}
	return nil
}

// TouchThreadUpdated moves updated forward to ts. Older timestamps and
// missing threads are ignored.
func (s *Storage) TouchThreadUpdated(ctx context.Context, id domain.ThreadId, ts time.Time) error {
	_, err := s.q.ExecContext(ctx, `
		UPDATE threads
		SET updated = GREATEST(updated, $2)
		WHERE id = $1
	`, id, ts)
	if err != nil {
		return fmt.Errorf("failed to update thread timestamp: %w", err)
	}
	return nil
}

// DeleteThread removes the thread, messages and participant rows cascade.
func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	result, err := s.q.ExecContext(ctx, "DELETE FROM threads WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("thread %d: %w", id, internal_errors.ErrNotFound)
	}
	return nil
}

func (s *Storage) IsThreadParticipant(ctx context.Context, id domain.ThreadId, user domain.UserId) (bool, error) {
	var ok bool
	err := s.q.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM thread_participants WHERE thread_id = $1 AND user_id = $2
		)
	`, id, user).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("failed to check thread participant: %w", err)
	}
	return ok, nil
}
