package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/birds-api/internal/model"
	q "github.com/iliyamo/birds-api/internal/queue"
	"github.com/iliyamo/birds-api/pkg/logger"
)

// SeedStore is the slice of the bird repository the seeder needs.
type SeedStore interface {
	SeedIfEmpty(ctx context.Context, seeds []model.Bird) (int, error)
}

// SeedRecorder receives the number of rows written.
type SeedRecorder interface {
	AddSeededRows(n int)
}

// Seeder writes the default birds into an empty table at startup.
type Seeder struct {
	store     SeedStore
	log       logger.Logger
	publisher EventPublisher
	recorder  SeedRecorder
	storeName string
	now       func() time.Time
}

// SeederOption configures a Seeder.
type SeederOption func(*Seeder)

// WithPublisher announces successful seeds on the broker.
func WithPublisher(p EventPublisher) SeederOption {
	return func(s *Seeder) { s.publisher = p }
}

// WithRecorder counts seeded rows, typically into Prometheus.
func WithRecorder(r SeedRecorder) SeederOption {
	return func(s *Seeder) { s.recorder = r }
}

// WithStoreName labels events with the backing store (sqlite, mysql, pgx).
func WithStoreName(name string) SeederOption {
	return func(s *Seeder) { s.storeName = name }
}

func NewSeeder(store SeedStore, log logger.Logger, opts ...SeederOption) *Seeder {
	s := &Seeder{store: store, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run seeds model.DefaultBirds when the table is empty and returns the
// number of rows inserted.  A store error is returned as is and must stop
// startup; a publish error is only logged.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	seeds := model.DefaultBirds()
	n, err := s.store.SeedIfEmpty(ctx, seeds)
	if err != nil {
		return 0, fmt.Errorf("seed birds: %w", err)
	}
	if n == 0 {
		s.log.Info(ctx, "birds table not empty, seed skipped")
		return 0, nil
	}

	s.log.Info(ctx, "seeded birds table", logger.Int("rows", n))
	if s.recorder != nil {
		s.recorder.AddSeededRows(n)
	}
	if s.publisher != nil {
		if err := s.publisher.PublishBirdsSeeded(ctx, s.event(seeds[:n])); err != nil {
			s.log.Warn(ctx, "publish seed event failed", logger.Error(err))
		}
	}
	return n, nil
}

func (s *Seeder) event(seeded []model.Bird) q.BirdsSeededEvent {
	ev := q.BirdsSeededEvent{
		Rows:     len(seeded),
		Birds:    make([]q.SeededBird, 0, len(seeded)),
		Store:    s.storeName,
		SeededAt: s.now().UTC().Format(time.RFC3339),
	}
	for _, b := range seeded {
		sb := q.SeededBird{Name: b.Name}
		if b.Color.Valid {
			c := b.Color.String
			sb.Color = &c
		}
		ev.Birds = append(ev.Birds, sb)
	}
	return ev
}
