package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"kef/models"

	"github.com/go-redis/redis/v8"
)

// pendingTTL bounds how long a registration waits for its payment.
// PhonePe orders expire well before this.
const pendingTTL = time.Hour

// PendingStore holds registration form data between payment initiation
// and finalization, keyed by merchant order id. Load returns (nil, nil)
// for an unknown or expired key.
type PendingStore interface {
	Save(orderID string, reg *models.BootcampRequest) error
	Load(orderID string) (*models.BootcampRequest, error)
	Delete(orderID string) error
}

// RedisPendingStore - production PendingStore backed by Redis with TTL.
type RedisPendingStore struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisPendingStore(rdb *redis.Client) *RedisPendingStore {
	return &RedisPendingStore{rdb: rdb, ctx: context.Background()}
}

func pendingKey(orderID string) string {
	return "pending:" + orderID
}

func (s *RedisPendingStore) Save(orderID string, reg *models.BootcampRequest) error {
	data, err := json.Marshal(reg)
	if err != nil {
		return err
	}
	return s.rdb.Set(s.ctx, pendingKey(orderID), data, pendingTTL).Err()
}

func (s *RedisPendingStore) Load(orderID string) (*models.BootcampRequest, error) {
	data, err := s.rdb.Get(s.ctx, pendingKey(orderID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var reg models.BootcampRequest
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (s *RedisPendingStore) Delete(orderID string) error {
	return s.rdb.Del(s.ctx, pendingKey(orderID)).Err()
}

// MemoryPendingStore - in-process PendingStore, used by tests.
type MemoryPendingStore struct {
	mu   sync.Mutex
	regs map[string]*models.BootcampRequest
}

func NewMemoryPendingStore() *MemoryPendingStore {
	return &MemoryPendingStore{regs: make(map[string]*models.BootcampRequest)}
}

func (s *MemoryPendingStore) Save(orderID string, reg *models.BootcampRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs[orderID] = reg
	return nil
}

func (s *MemoryPendingStore) Load(orderID string) (*models.BootcampRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regs[orderID], nil
}

func (s *MemoryPendingStore) Delete(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.regs, orderID)
	return nil
}
