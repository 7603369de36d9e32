package quota

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]Quota
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]Quota)}
}

func (s *memoryStore) Get(ctx context.Context, userID string) (Quota, error) {
	if err := ctx.Err(); err != nil {
		return Quota{}, err
	}
	s.mu.RLock()
	q, ok := s.data[userID]
	s.mu.RUnlock()
	if ok && time.Now().UTC().Before(q.ResetsAt) {
		return q, nil
	}
	return s.ensure(ctx, userID)
}

func (s *memoryStore) EnsurePeriod(ctx context.Context, userID string) (Quota, error) {
	return s.ensure(ctx, userID)
}

func (s *memoryStore) ensure(ctx context.Context, userID string) (Quota, error) {
	if err := ctx.Err(); err != nil {
		return Quota{}, err
	}
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.data[userID]
	if !ok {
		q = defaultQuota()
	}
	if now.After(q.ResetsAt) || now.Equal(q.ResetsAt) {
		q.Used = 0
		q.ResetsAt = now.Add(periodLength)
	}
	s.data[userID] = q
	return q, nil
}

func (s *memoryStore) Consume(ctx context.Context, userID string, n int) (Quota, error) {
	if n <= 0 {
		return s.ensure(ctx, userID)
	}
	if err := ctx.Err(); err != nil {
		return Quota{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	q, ok := s.data[userID]
	if !ok {
		q = defaultQuota()
	}
	if now.After(q.ResetsAt) || now.Equal(q.ResetsAt) {
		q.Used = 0
		q.ResetsAt = now.Add(periodLength)
	}
	if q.Used+n > q.Limit {
		return Quota{}, ErrLimitReached
	}
	q.Used += n
	s.data[userID] = q
	return q, nil
}

func (s *memoryStore) Reset(ctx context.Context, userID string) (Quota, error) {
	if err := ctx.Err(); err != nil {
		return Quota{}, err
	}
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.data[userID]
	if !ok {
		q = defaultQuota()
	}
	q.Used = 0
	q.ResetsAt = now.Add(periodLength)
	s.data[userID] = q
	return q, nil
}
