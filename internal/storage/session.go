package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lshigami/edugress/internal/domain"
	"github.com/shopspring/decimal"
)

const sessionKey = "session"

// ErrSessionMissing means no user is signed in on this device.
var ErrSessionMissing = errors.New("session missing: please sign in again")

// SessionRepository persists the signed-in session record.
type SessionRepository struct {
	kv KV
}

func NewSessionRepository(kv KV) *SessionRepository {
	return &SessionRepository{kv: kv}
}

func (r *SessionRepository) Load(ctx context.Context) (domain.Session, error) {
	raw, err := r.kv.Get(ctx, sessionKey)
	if errors.Is(err, ErrNotFound) {
		return domain.Session{}, ErrSessionMissing
	}
	if err != nil {
		return domain.Session{}, err
	}
	var s domain.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	if s.Token == "" {
		return domain.Session{}, ErrSessionMissing
	}
	return s, nil
}

func (r *SessionRepository) Save(ctx context.Context, s domain.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.kv.Set(ctx, sessionKey, string(raw))
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, sessionKey)
}

// UpdateCoins rewrites the stored coin balance. Concurrent writers are not
// coordinated; the last write wins.
func (r *SessionRepository) UpdateCoins(ctx context.Context, coins decimal.Decimal) error {
	s, err := r.Load(ctx)
	if err != nil {
		return err
	}
	s.User.Coins = coins
	return r.Save(ctx, s)
}
