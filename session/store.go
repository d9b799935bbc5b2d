// Package session persists the environments of interactive sessions, so that
// a client can run a program in several requests and keep its variables.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"simpl/engine/interpreter"
	"simpl/fbadger"
	"simpl/lib/timer"

	"github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"
)

var ErrEmptyID = errors.New("session id can not be empty")

// Store keeps one environment snapshot per session id in badger. Snapshots
// expire ttl after their last save; a zero ttl keeps them forever.
type Store struct {
	db     fbadger.DB
	ttl    time.Duration
	logger *zap.Logger
}

func NewStore(db fbadger.DB, ttl time.Duration, logger *zap.Logger) Store {
	return Store{db: db, ttl: ttl, logger: logger}
}

func (s Store) key(id string) []byte {
	return []byte(s.db.PrefixedName("session:" + id))
}

// Load returns the environment saved for id, or a fresh one if the session
// is unknown or expired.
func (s Store) Load(ctx context.Context, id string) (*interpreter.Env, error) {
	defer timer.Start("session.load").Stop()
	if id == "" {
		return nil, ErrEmptyID
	}
	var env *interpreter.Env
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(id))
		switch err {
		case badger.ErrKeyNotFound:
			env = interpreter.NewEnv()
			return nil
		case nil:
			return item.Value(func(v []byte) error {
				env, err = decode(item.UserMeta(), v)
				return err
			})
		default:
			return err
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load session '%s': %w", id, err)
	}
	timer.Mark(ctx, "session.loaded")
	return env, nil
}

// Save replaces the snapshot of id with env.
func (s Store) Save(ctx context.Context, id string, env *interpreter.Env) error {
	defer timer.Start("session.save").Stop()
	if id == "" {
		return ErrEmptyID
	}
	v, err := encode(env)
	if err != nil {
		return fmt.Errorf("failed to encode session '%s': %w", id, err)
	}
	entry := badger.NewEntry(s.key(id), v).WithMeta(codecSnappyJSON)
	if s.ttl > 0 {
		entry = entry.WithTTL(s.ttl)
	}
	if err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(entry)
	}); err != nil {
		return fmt.Errorf("failed to save session '%s': %w", id, err)
	}
	s.logger.Debug("saved session", zap.String("session", id), zap.Int("variables", env.Len()))
	timer.Mark(ctx, "session.saved")
	return nil
}

// Delete forgets id. Deleting an unknown session is not an error.
func (s Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(id))
	})
}

// Ping checks that the underlying database still accepts reads.
func (s Store) Ping() error {
	if s.db.IsClosed() {
		return errors.New("session store is closed")
	}
	return s.db.View(func(txn *badger.Txn) error {
		return nil
	})
}
