package runner

import (
	"sort"
	"sync"

	"signal_bot/internal/metrics"
)

// Watchers: подписки чатов на сигналы вотчера. Только в памяти, после рестарта пусто.
// Общий объект для роутера команд и задачи вотчера.
type Watchers struct {
	mu      sync.RWMutex
	chats   map[int64]struct{}
	metrics *metrics.Metrics
}

func NewWatchers(m *metrics.Metrics) *Watchers {
	return &Watchers{
		chats:   make(map[int64]struct{}),
		metrics: m,
	}
}

// Enable возвращает false, если чат уже был подписан.
func (w *Watchers) Enable(chatID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.chats[chatID]; ok {
		return false
	}
	w.chats[chatID] = struct{}{}
	w.gauge()
	return true
}

// Disable возвращает false, если подписки не было.
func (w *Watchers) Disable(chatID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.chats[chatID]; !ok {
		return false
	}
	delete(w.chats, chatID)
	w.gauge()
	return true
}

func (w *Watchers) Enabled(chatID int64) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.chats[chatID]
	return ok
}

// Recipients возвращает снимок подписчиков по возрастанию ID.
func (w *Watchers) Recipients() []int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]int64, 0, len(w.chats))
	for id := range w.chats {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// вызывается под w.mu
func (w *Watchers) gauge() {
	if w.metrics != nil {
		w.metrics.Subscribers.Set(float64(len(w.chats)))
	}
}
