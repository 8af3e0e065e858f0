package pg

import (
	"context"
	"fmt"

	"github.com/simplechat/simplechat/shared/domain"
	internal_errors "github.com/simplechat/simplechat/shared/errors"
)

// EnsureUser returns the user with the given username, creating it if needed.
func (s *Storage) EnsureUser(ctx context.Context, username domain.Username) (domain.User, error) {
	if username == "" {
		return domain.User{}, &internal_errors.ValidationError{Message: "Username is empty"}
	}

	user := domain.User{Username: username}
	// no-op update so RETURNING yields the existing row too
	err := s.q.QueryRowContext(ctx, `
		INSERT INTO users (username)
		VALUES ($1)
		ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, username).Scan(&user.Id)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to ensure user: %w", err)
	}
	return user, nil
}

// DeleteUser removes the user together with sent messages and thread memberships.
func (s *Storage) DeleteUser(ctx context.Context, id domain.UserId) error {
	result, err := s.q.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("user %d: %w", id, internal_errors.ErrNotFound)
	}
	return nil
}
