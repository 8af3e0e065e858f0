package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/simplechat/simplechat/shared/domain"
	internal_errors "github.com/simplechat/simplechat/shared/errors"
	"github.com/simplechat/simplechat/shared/storage/pg"
)

// selected columns of messages joined with the sender
const messageColumns = "m.id, m.sender_id, u.username, m.thread_id, m.text, m.created, m.is_read"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (domain.Message, error) {
	var msg domain.Message
	err := row.Scan(&msg.Id, &msg.Sender.Id, &msg.Sender.Username, &msg.ThreadId, &msg.Text, &msg.Created, &msg.IsRead)
	return msg, err
}

func (s *Storage) CreateMessage(ctx context.Context, data domain.MessageCreationData) (domain.Message, error) {
	length := utf8.RuneCountInString(data.Text)
	if length == 0 || length > domain.MaxMessageLength {
		return domain.Message{}, &internal_errors.ValidationError{Message: fmt.Sprintf("Message text must be 1..%d characters", domain.MaxMessageLength)}
	}

	msg, err := scanMessage(s.q.QueryRowContext(ctx, `
		WITH m AS (
			INSERT INTO messages (sender_id, thread_id, text, created)
			VALUES ($1, $2, $3, $4)
			RETURNING id, sender_id, thread_id, text, created, is_read
		)
		SELECT `+messageColumns+`
		FROM m
		JOIN users u ON u.id = m.sender_id
	`, data.Sender, data.ThreadId, data.Text, now()))
	if err != nil {
		switch {
		case pg.HasCode(err, pg.ForeignKeyViolation):
			return domain.Message{}, fmt.Errorf("thread %d or sender %d: %w", data.ThreadId, data.Sender, internal_errors.ErrNotFound)
		case pg.HasCode(err, pg.CheckViolation):
			return domain.Message{}, &internal_errors.ValidationError{Message: "Message text is invalid"}
		}
		return domain.Message{}, fmt.Errorf("failed to create message: %w", err)
	}
	return msg, nil
}

func (s *Storage) GetMessage(ctx context.Context, id domain.MsgId) (domain.Message, error) {
	msg, err := scanMessage(s.q.QueryRowContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Message{}, fmt.Errorf("message %d: %w", id, internal_errors.ErrNotFound)
		}
		return domain.Message{}, fmt.Errorf("failed to fetch message: %w", err)
	}
	return msg, nil
}

func (s *Storage) queryMessages(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return messages, nil
}

// MessagesForThread returns messages newest first.
func (s *Storage) MessagesForThread(ctx context.Context, threadId domain.ThreadId) ([]domain.Message, error) {
	return s.queryMessages(ctx, `
		SELECT `+messageColumns+`
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.thread_id = $1
		ORDER BY m.created DESC, m.id DESC
	`, threadId)
}

// MarkMessageRead is idempotent and ignores missing messages.
func (s *Storage) MarkMessageRead(ctx context.Context, id domain.MsgId) error {
	_, err := s.q.ExecContext(ctx, "UPDATE messages SET is_read = TRUE WHERE id = $1 AND NOT is_read", id)
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}

// unread messages addressed to $1: in the user's threads, sent by someone else
const unreadFilter = `
	m.thread_id IN (SELECT thread_id FROM thread_participants WHERE user_id = $1)
	AND m.sender_id <> $1
	AND NOT m.is_read
`

func (s *Storage) CountUnread(ctx context.Context, user domain.UserId) (int, error) {
	var count int
	err := s.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages m WHERE "+unreadFilter, user).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func (s *Storage) UnreadMessages(ctx context.Context, user domain.UserId) ([]domain.Message, error) {
	return s.queryMessages(ctx, `
		SELECT `+messageColumns+`
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE `+unreadFilter+`
		ORDER BY m.created DESC, m.id DESC
	`, user)
}
