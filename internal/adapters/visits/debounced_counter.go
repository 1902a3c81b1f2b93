package visits_adapter

import (
	"context"
	"errors"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
	"real-estate-marketplace/pkg/debounce"
	"sync"
	"time"

	"github.com/google/uuid"
)

// VisitsWriter - часть хранилища объявлений, нужная счетчику
type VisitsWriter interface {
	AddVisits(ctx context.Context, id uuid.UUID, delta int64) error
}

type Config struct {
	// Delay - пауза после последнего просмотра перед записью в хранилище
	Delay time.Duration
	// MaxPending - при таком накопленном приросте запись идет сразу, без ожидания
	MaxPending int64
	// WriteTimeout - таймаут одной записи
	WriteTimeout time.Duration
}

// DebouncedCounter копит просмотры в памяти и пишет прирост одним запросом на объявление.
type DebouncedCounter struct {
	storage   VisitsWriter
	scheduler *debounce.Scheduler
	cfg       Config
	logger    port.LoggerPort

	mu     sync.Mutex
	deltas map[uuid.UUID]int64
	closed bool
	// фоновые записи, которых дожидается Close
	inflight sync.WaitGroup
}

func NewDebouncedCounter(storage VisitsWriter, cfg Config, logger port.LoggerPort) *DebouncedCounter {
	if cfg.Delay <= 0 {
		cfg.Delay = 2 * time.Second
	}
	if cfg.MaxPending <= 0 {
		cfg.MaxPending = 100
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	return &DebouncedCounter{
		storage:   storage,
		scheduler: debounce.New(),
		cfg:       cfg,
		logger:    logger.WithFields(port.Fields{"component": "DebouncedCounter"}),
		deltas:    make(map[uuid.UUID]int64),
	}
}

// RecordVisit не блокирует запрос: запись в хранилище происходит позже в фоне
func (c *DebouncedCounter) RecordVisit(ctx context.Context, listingID uuid.UUID) {
	c.mu.Lock()
	c.deltas[listingID]++
	pending := c.deltas[listingID]
	closed := c.closed
	immediate := !closed && pending >= c.cfg.MaxPending
	if immediate {
		c.inflight.Add(1)
	}
	c.mu.Unlock()

	if closed {
		c.flush(listingID)
		return
	}

	if immediate {
		c.scheduler.Cancel(listingID.String())
		go func() {
			defer c.inflight.Done()
			c.flush(listingID)
		}()
		return
	}

	if !c.schedule(listingID) {
		// планировщик уже остановлен - пишем сразу
		c.flush(listingID)
	}
}

func (c *DebouncedCounter) schedule(listingID uuid.UUID) bool {
	return c.scheduler.Schedule(listingID.String(), c.cfg.Delay, func() {
		c.mu.Lock()
		if c.closed {
			// остаток запишет Close
			c.mu.Unlock()
			return
		}
		c.inflight.Add(1)
		c.mu.Unlock()

		defer c.inflight.Done()
		c.flush(listingID)
	})
}

func (c *DebouncedCounter) flush(listingID uuid.UUID) {
	c.mu.Lock()
	delta := c.deltas[listingID]
	delete(c.deltas, listingID)
	c.mu.Unlock()

	if delta == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.WriteTimeout)
	defer cancel()

	err := c.storage.AddVisits(ctx, listingID, delta)
	if err == nil {
		c.logger.Debug("Visits flushed", port.Fields{"listing_id": listingID.String(), "delta": delta})
		return
	}

	fields := port.Fields{
		"listing_id": listingID.String(),
		"delta":      delta,
		"error":      err.Error(),
	}

	// объявление удалено - прирост писать некуда
	if errors.Is(err, domain.ErrListingNotFound) {
		c.logger.Warn("Dropping visits of missing listing", fields)
		return
	}

	c.mu.Lock()
	c.deltas[listingID] += delta
	closed := c.closed
	c.mu.Unlock()

	if closed || !c.schedule(listingID) {
		c.logger.Error("Failed to flush visits on shutdown", err, fields)
		return
	}
	c.logger.Warn("Failed to flush visits, retry scheduled", fields)
}

// Close останавливает планировщик, дожидается фоновых записей
// и записывает все накопленное
func (c *DebouncedCounter) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.scheduler.Stop()
	c.inflight.Wait()

	c.mu.Lock()
	ids := make([]uuid.UUID, 0, len(c.deltas))
	for id := range c.deltas {
		ids = append(ids, id)
	}
	c.mu.Unlock()

	for _, id := range ids {
		c.flush(id)
	}
}
