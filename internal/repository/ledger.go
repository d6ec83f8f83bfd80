package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gullak-ai/gullak/internal/model"
)

var ErrNoUser = errors.New("record without user id")

type Ledger interface {
	Insert(ctx context.Context, record *model.Record) error
	SetBudget(ctx context.Context, userID, month, category string, amount decimal.Decimal) error
	Query(ctx context.Context, userID string, predicate func(*model.Record) bool) ([]model.Record, error)
	SweepExpired(ctx context.Context, userID string) error
	SweepAll(ctx context.Context)
}

// IsLive reports whether a record is still inside the expiration window.
// Liveness is a pure function of CreatedAt and now; sweeping only reclaims
// memory and is never needed for correctness.
func IsLive(record *model.Record, now time.Time, window time.Duration) bool {
	return now.Sub(record.CreatedAt) < window
}

// LocalLedger keeps every user's records in its own partition. The outer map
// is guarded by an RWMutex, each partition by its own Mutex, so operations on
// different users never block one another while writes for one user
// serialize.
type LocalLedger struct {
	mu     sync.RWMutex
	window time.Duration
	users  map[string]*partition
}

type partition struct {
	mu      sync.Mutex
	records []model.Record
	dead    bool // set when SweepAll reclaims the partition; writers must retry
}

func NewLocalLedger(window time.Duration) *LocalLedger {
	return &LocalLedger{
		window: window,
		users:  make(map[string]*partition),
	}
}

func (l *LocalLedger) Insert(_ context.Context, record *model.Record) error {
	if record.UserID == "" {
		return ErrNoUser
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	p := l.lockPart(record.UserID)
	defer p.mu.Unlock()
	p.sweep(time.Now().UTC(), l.window)
	p.records = append(p.records, *record)
	return nil
}

// SetBudget upserts the budget for (user, month, category): the most recent
// amount wins, the superseded record is dropped.
func (l *LocalLedger) SetBudget(_ context.Context, userID, month, category string, amount decimal.Decimal) error {
	if userID == "" {
		return ErrNoUser
	}

	p := l.lockPart(userID)
	defer p.mu.Unlock()
	now := time.Now().UTC()
	p.sweep(now, l.window)

	kept := p.records[:0]
	for i := range p.records {
		r := p.records[i]
		if r.Kind == model.KindBudget && r.Month == month && r.Category == category {
			continue
		}
		kept = append(kept, r)
	}
	p.records = append(kept, model.Record{
		ID:        uuid.New(),
		Kind:      model.KindBudget,
		UserID:    userID,
		Month:     month,
		Category:  category,
		Amount:    amount,
		CreatedAt: now,
	})
	return nil
}

// Query returns the live records matching the predicate, ordered by
// CreatedAt ascending. The partition lock is held for the whole read so a
// caller observes either the pre- or post-state of any concurrent write,
// never a partial one.
func (l *LocalLedger) Query(_ context.Context, userID string, predicate func(*model.Record) bool) ([]model.Record, error) {
	if userID == "" {
		return nil, ErrNoUser
	}

	p := l.lockPart(userID)
	defer p.mu.Unlock()
	now := time.Now().UTC()
	p.sweep(now, l.window)

	var out []model.Record
	for i := range p.records {
		r := p.records[i]
		if !IsLive(&r, now, l.window) {
			continue
		}
		if predicate != nil && !predicate(&r) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (l *LocalLedger) SweepExpired(_ context.Context, userID string) error {
	if userID == "" {
		return ErrNoUser
	}
	p := l.lockPart(userID)
	defer p.mu.Unlock()
	p.sweep(time.Now().UTC(), l.window)
	return nil
}

// SweepAll walks every partition and drops expired records, removing
// partitions that end up empty so idle users do not pin memory. Safe to skip
// or delay arbitrarily.
func (l *LocalLedger) SweepAll(ctx context.Context) {
	l.mu.RLock()
	userIDs := make([]string, 0, len(l.users))
	for userID := range l.users {
		userIDs = append(userIDs, userID)
	}
	l.mu.RUnlock()

	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return
		}
		l.mu.Lock()
		p, ok := l.users[userID]
		if !ok {
			l.mu.Unlock()
			continue
		}
		p.mu.Lock()
		p.sweep(time.Now().UTC(), l.window)
		if len(p.records) == 0 {
			p.dead = true
			delete(l.users, userID)
		}
		p.mu.Unlock()
		l.mu.Unlock()
	}
}

// lockPart returns the user's partition with its lock held. If the partition
// was reclaimed between lookup and lock, look it up again so no record ever
// lands in an orphaned partition.
func (l *LocalLedger) lockPart(userID string) *partition {
	for {
		p := l.part(userID)
		p.mu.Lock()
		if !p.dead {
			return p
		}
		p.mu.Unlock()
	}
}

func (l *LocalLedger) part(userID string) *partition {
	l.mu.RLock()
	p, ok := l.users[userID]
	l.mu.RUnlock()
	if ok {
		return p
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok = l.users[userID]; ok {
		return p
	}
	p = &partition{}
	l.users[userID] = p
	return p
}

// sweep must be called with the partition lock held.
func (p *partition) sweep(now time.Time, window time.Duration) {
	kept := p.records[:0]
	for i := range p.records {
		if IsLive(&p.records[i], now, window) {
			kept = append(kept, p.records[i])
		}
	}
	p.records = kept
}
