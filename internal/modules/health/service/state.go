package service

import (
	"sync"
	"sync/atomic"
	"time"
)

// TaskStatus: последний запуск периодической задачи.
type TaskStatus struct {
	LastRun   time.Time `json:"lastRun"`
	LastError string    `json:"lastError,omitempty"`
}

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	lastUpdateUnix atomic.Int64 // unix seconds, последний апдейт Telegram

	mu    sync.RWMutex
	tasks map[string]TaskStatus
}

func NewState() *State {
	s := &State{
		startedAt: time.Now(),
		tasks:     make(map[string]TaskStatus),
	}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

func (s *State) TouchUpdate() {
	if s == nil {
		return
	}
	s.lastUpdateUnix.Store(time.Now().Unix())
}

func (s *State) LastUpdate() time.Time {
	u := s.lastUpdateUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

// TouchTask вызывается после каждого запуска задачи, nil-состояние допустимо.
func (s *State) TouchTask(name string, err error) {
	if s == nil {
		return
	}
	st := TaskStatus{LastRun: time.Now().UTC()}
	if err != nil {
		st.LastError = err.Error()
	}
	s.mu.Lock()
	s.tasks[name] = st
	s.mu.Unlock()
}

func (s *State) Tasks() map[string]TaskStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]TaskStatus, len(s.tasks))
	for k, v := range s.tasks {
		out[k] = v
	}
	return out
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
