package service

import (
	"context"
	"sync"
)

// Memory живёт в памяти процесса, для локального запуска и тестов.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]map[string]struct{}),
	}
}

// Members возвращает копию, наружу внутренняя мапа не уходит.
func (m *Memory) Members(_ context.Context, key string) (map[string]struct{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	set := m.data[key]
	out := make(map[string]struct{}, len(set))
	for id := range set {
		out[id] = struct{}{}
	}
	return out, nil
}

func (m *Memory) AddMembers(_ context.Context, key string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.data[key]
	if !ok {
		set = make(map[string]struct{}, len(ids))
		m.data[key] = set
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return nil
}
