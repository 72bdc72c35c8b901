package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/garyburd/redigo/redis"
)

type State string

const (
	StateUnconfigured State = "Unconfigured"
	StateApplying     State = "Applying"
	StateConfigured   State = "Configured"
	StateRemoving     State = "Removing"
)

// Record is the last known remote state of one target.
type Record struct {
	TargetID   string    `json:"TargetID"`
	State      State     `json:"State"`
	Digest     string    `json:"Digest"`
	AttemptID  string    `json:"AttemptID"`
	FleetCount int       `json:"FleetCount"`
	UpdatedAt  time.Time `json:"UpdatedAt"`
}

type Storage interface {
	// GetRecord returns nil without error when the target is unknown.
	GetRecord(targetID string) (*Record, error)
	PutRecord(r *Record) error
	DeleteRecord(targetID string) error
	ListRecords() ([]*Record, error)
	// Persistent reports whether records outlive the process. A missing
	// record in a store that is not persistent says nothing about the target.
	Persistent() bool
}

type RedisStorage struct {
	mu     sync.Mutex
	redis  redis.Conn
	Prefix string
}

func NewRedisStorage(url, prefix string) (*RedisStorage, error) {
	r, err := redis.DialURL(url)
	if err != nil {
		return nil, err
	}

	return &RedisStorage{
		redis:  r,
		Prefix: prefix,
	}, nil
}

func (s *RedisStorage) do(cmd string, args ...interface{}) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redis.Do(cmd, args...)
}

func (s *RedisStorage) GetRecord(targetID string) (*Record, error) {
	j, err := redis.String(s.do("HGET", s.key("targets"), targetID))
	if err == redis.ErrNil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r := &Record{}
	if err := json.Unmarshal([]byte(j), r); err != nil {
		return nil, fmt.Errorf("record of %s: %s", targetID, err)
	}
	return r, nil
}

func (s *RedisStorage) PutRecord(r *Record) error {
	j, err := json.Marshal(r)
	if err != nil {
		return err
	}

	_, err = s.do("HSET", s.key("targets"), r.TargetID, string(j))
	return err
}

func (s *RedisStorage) DeleteRecord(targetID string) error {
	_, err := s.do("HDEL", s.key("targets"), targetID)
	return err
}

func (s *RedisStorage) ListRecords() ([]*Record, error) {
	reply, err := redis.StringMap(s.do("HGETALL", s.key("targets")))
	if err != nil {
		return nil, err
	}

	records := []*Record{}
	for id, j := range reply {
		r := &Record{}
		if err := json.Unmarshal([]byte(j), r); err != nil {
			return nil, fmt.Errorf("record of %s: %s", id, err)
		}
		records = append(records, r)
	}
	sortRecords(records)

	return records, nil
}

func (s *RedisStorage) Persistent() bool {
	return true
}

func (s *RedisStorage) Close() error {
	return s.redis.Close()
}

func (s *RedisStorage) key(k string) string {
	return fmt.Sprintf("%s%s", s.Prefix, k)
}

// MemoryStorage keeps records for the life of the process.
type MemoryStorage struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: map[string]Record{}}
}

func (s *MemoryStorage) GetRecord(targetID string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[targetID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *MemoryStorage) PutRecord(r *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.TargetID] = *r
	return nil
}

func (s *MemoryStorage) DeleteRecord(targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, targetID)
	return nil
}

func (s *MemoryStorage) ListRecords() ([]*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		r := r
		records = append(records, &r)
	}
	sortRecords(records)
	return records, nil
}

func (s *MemoryStorage) Persistent() bool {
	return false
}

func sortRecords(rs []*Record) {
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].TargetID < rs[j].TargetID
	})
}
