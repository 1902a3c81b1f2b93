// Package debounce откладывает вызовы по ключу и схлопывает их:
// для каждого ключа ожидает не больше одного вызова, новый Schedule
// отменяет и заменяет предыдущий.
package debounce

import (
	"sync"
	"time"
)

type task struct {
	timer *time.Timer
	fn    func()
}

// Scheduler - планировщик отложенных вызовов с отменой по ключу.
type Scheduler struct {
	mu      sync.Mutex
	pending map[string]*task
	stopped bool
}

func New() *Scheduler {
	return &Scheduler{pending: make(map[string]*task)}
}

// Schedule планирует fn через delay. Если для key уже есть ожидающий вызов,
// он отменяется. Возвращает false, если планировщик остановлен.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}

	if prev, ok := s.pending[key]; ok {
		prev.timer.Stop()
	}

	t := &task{fn: fn}
	// указатель на task служит токеном отмены: сработавший таймер
	// выполняет fn только если его task все еще актуален
	t.timer = time.AfterFunc(delay, func() { s.fire(key, t) })
	s.pending[key] = t
	return true
}

func (s *Scheduler) fire(key string, t *task) {
	s.mu.Lock()
	current, ok := s.pending[key]
	if !ok || current != t {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	s.mu.Unlock()

	t.fn()
}

// Cancel отменяет ожидающий вызов. Возвращает true, если он был.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.pending[key]
	if !ok {
		return false
	}
	t.timer.Stop()
	delete(s.pending, key)
	return true
}

// Pending возвращает количество ожидающих вызовов.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush немедленно выполняет все ожидающие вызовы в текущей горутине.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	tasks := make([]*task, 0, len(s.pending))
	for key, t := range s.pending {
		t.timer.Stop()
		tasks = append(tasks, t)
		delete(s.pending, key)
	}
	s.mu.Unlock()

	for _, t := range tasks {
		t.fn()
	}
}

// Stop отменяет все ожидающие вызовы и запрещает новые.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for key, t := range s.pending {
		t.timer.Stop()
		delete(s.pending, key)
	}
}
