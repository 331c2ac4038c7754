package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// ResumptionStore remembers the in-progress attempt per test under
// "userTestId_{testId}".
type ResumptionStore struct {
	kv KV
}

func NewResumptionStore(kv KV) *ResumptionStore {
	return &ResumptionStore{kv: kv}
}

func resumptionKey(testID int) string {
	return "userTestId_" + strconv.Itoa(testID)
}

// FindResumableAttempt returns the remembered attempt id for testID, if any.
func (s *ResumptionStore) FindResumableAttempt(ctx context.Context, testID int) (int, bool, error) {
	raw, err := s.kv.Get(ctx, resumptionKey(testID))
	if errors.Is(err, ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		// An unreadable entry is treated as absent so a fresh attempt starts.
		_ = s.kv.Delete(ctx, resumptionKey(testID))
		return 0, false, nil
	}
	return id, true, nil
}

func (s *ResumptionStore) Remember(ctx context.Context, testID, attemptID int) error {
	if attemptID <= 0 {
		return fmt.Errorf("remember attempt: invalid attempt id %d", attemptID)
	}
	return s.kv.Set(ctx, resumptionKey(testID), strconv.Itoa(attemptID))
}

func (s *ResumptionStore) Forget(ctx context.Context, testID int) error {
	return s.kv.Delete(ctx, resumptionKey(testID))
}
