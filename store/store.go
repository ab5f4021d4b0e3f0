// Package store stands in for the enclosing nameserver: a minimal
// key/value table that a leader writes through and a follower's apply
// callback replays into, so the replication engine in sync/ has
// something real on both ends to carry.
package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"log"
	"sync"

	uuid "github.com/satori/go.uuid"
	"github.com/syndtr/goleveldb/leveldb"
)

// Op is the unit of work submitted through a Table: a single key/value
// write, gob-encoded into the opaque payload sync.Coordinator.Log and
// LogAsync carry. RequestID exists purely for correlation in logs; it
// plays no role in write ordering or dedup.
type Op struct {
	RequestID string
	Key       string
	Value     []byte
}

// EncodeOp gob-encodes op for handing to sync.Coordinator.Log/LogAsync.
func EncodeOp(key string, value []byte) ([]byte, error) {
	op := Op{RequestID: uuid.NewV4().String(), Key: key, Value: value}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(op); err != nil {
		return nil, fmt.Errorf("store: encode op: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeOp reverses EncodeOp.
func DecodeOp(payload []byte) (Op, error) {
	var op Op
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&op); err != nil {
		return Op{}, fmt.Errorf("store: decode op: %w", err)
	}
	return op, nil
}

// Table is a goleveldb-backed key/value store, guarded the same way
// namenode/service's leveldb wrapper types guard their DB handle.
type Table struct {
	mu sync.RWMutex
	db *leveldb.DB
}

// Open opens (creating if absent) the leveldb database rooted at dir.
func Open(dir string) (*Table, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dir, err)
	}
	return &Table{db: db}, nil
}

// Put writes key/value directly, outside of replication — used by
// callers that already hold a durability guarantee from elsewhere
// (tests, or a follower's own bootstrap).
func (t *Table) Put(key string, value []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.db.Put([]byte(key), value, nil)
}

// Get returns the current value for key, and whether it exists.
func (t *Table) Get(key string) ([]byte, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	value, err := t.db.Get([]byte(key), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("store: get %s: %w", key, err)
	}
	return value, true, nil
}

// Apply decodes a replicated payload and applies it to the table. It
// is the function a follower process registers via
// sync.Coordinator.RegisterApplyCallback — the host callback is
// assumed infallible by contract, so a decode or write failure here
// is fatal rather than returned.
func (t *Table) Apply(payload []byte) {
	op, err := DecodeOp(payload)
	if err != nil {
		log.Fatalf("[store] apply: %v", err)
	}
	if err := t.Put(op.Key, op.Value); err != nil {
		log.Fatalf("[store] apply %s (request %s): %v", op.Key, op.RequestID, err)
	}
}

// Close releases the underlying leveldb handle.
func (t *Table) Close() error {
	return t.db.Close()
}
