package pg

import (
	"context"
	"database/sql"
	"time"

	"github.com/simplechat/simplechat/backend/internal/storage"
	"github.com/simplechat/simplechat/shared/config"
	"github.com/simplechat/simplechat/shared/logger"
	"github.com/simplechat/simplechat/shared/storage/pg"
)

type Storage struct {
	db    *sql.DB
	q     pg.Querier // db, or the transaction the storage is bound to
	bound bool
}

var _ storage.Store = (*Storage)(nil)

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := pg.Connect(ctx, cfg.Private.Pg, pg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return FromDB(db), nil
}

// FromDB wraps an already opened pool.
func FromDB(db *sql.DB) *Storage {
	return &Storage{db: db, q: db}
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithinTx implements storage.Store.
func (s *Storage) WithinTx(ctx context.Context, fn func(storage.Store) error) error {
	return s.transact(ctx, func(tx *Storage) error { return fn(tx) })
}

// transact runs fn with a storage bound to a transaction, reusing the current one if any.
func (s *Storage) transact(ctx context.Context, fn func(*Storage) error) error {
	if s.bound {
		return fn(s)
	}
	return pg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(&Storage{db: s.db, q: tx, bound: true})
	})
}

// database anyway rounds to microseconds
func now() time.Time {
	return time.Now().UTC().Round(time.Microsecond)
}
