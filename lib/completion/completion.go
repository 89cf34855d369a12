// Package completion decides whether an item of work is already done,
// which is what makes re-running a batch cheap.
package completion

import (
	"os"
	"sync"
)

type Tracker interface {
	HasCompleted(key string) bool
}

// Filesystem treats a key as a path, the item is complete once the file exists.
type Filesystem struct{}

func (Filesystem) HasCompleted(key string) bool {
	_, err := os.Stat(key)
	return err == nil
}

// Memory is a set of completed keys.
type Memory struct {
	mutex sync.Mutex
	keys  map[string]struct{}
}

func NewMemory(completed ...string) *Memory {
	m := &Memory{keys: map[string]struct{}{}}
	for _, key := range completed {
		m.keys[key] = struct{}{}
	}
	return m
}

func (m *Memory) HasCompleted(key string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	_, ok := m.keys[key]
	return ok
}

func (m *Memory) MarkCompleted(key string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.keys == nil {
		m.keys = map[string]struct{}{}
	}
	m.keys[key] = struct{}{}
}
