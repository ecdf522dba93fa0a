package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Eursukkul/screening-service/internal/models"
	"github.com/Eursukkul/screening-service/internal/repository"
	"github.com/Eursukkul/screening-service/pkg/phone"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- In-memory Store ---
//
// Transactions work on a copy of the tables and swap it in on commit, so a
// failed transaction leaves nothing behind. The state mutex is held for the
// whole transaction, which serializes writers the way row locks would.

type memTables struct {
	bookings map[uuid.UUID]models.Booking
	entries  map[uuid.UUID]models.WhitelistEntry
}

func (t *memTables) clone() *memTables {
	c := &memTables{
		bookings: make(map[uuid.UUID]models.Booking, len(t.bookings)),
		entries:  make(map[uuid.UUID]models.WhitelistEntry, len(t.entries)),
	}
	for k, v := range t.bookings {
		c.bookings[k] = v
	}
	for k, v := range t.entries {
		c.entries[k] = v
	}
	return c
}

type memState struct {
	mu     sync.Mutex
	tables *memTables
	now    func() time.Time

	createBookingErr error
	findBookingErr   error
	markDeniedErr    error
	markApprovedErr  error
	createEntryErr   error
	countErr         error
	commitErr        error

	// afterFindBooking runs after a committed read, outside the lock.
	afterFindBooking func()

	transactions int
}

type memStore struct {
	state  *memState
	tables *memTables // nil outside a transaction
}

func newMemStore() *memStore {
	return &memStore{state: &memState{
		tables: &memTables{
			bookings: map[uuid.UUID]models.Booking{},
			entries:  map[uuid.UUID]models.WhitelistEntry{},
		},
		now: func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
	}}
}

func (s *memStore) inTx() bool { return s.tables != nil }

// with runs fn against the tables this store should see.
func (s *memStore) with(fn func(t *memTables)) {
	if s.inTx() {
		fn(s.tables)
		return
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	fn(s.state.tables)
}

func (s *memStore) Bookings() repository.BookingRepository     { return &memBookings{s} }
func (s *memStore) Whitelist() repository.WhitelistRepository { return &memWhitelist{s} }

func (s *memStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	s.state.transactions++

	tx := &memStore{state: s.state, tables: s.state.tables.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	if s.state.commitErr != nil {
		return s.state.commitErr
	}
	s.state.tables = tx.tables
	return nil
}

// seedBooking stores b as-is and returns its id.
func (s *memStore) seedBooking(b models.Booking) uuid.UUID {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	s.with(func(t *memTables) { t.bookings[b.ID] = b })
	return b.ID
}

func (s *memStore) booking(id uuid.UUID) (models.Booking, bool) {
	var b models.Booking
	var ok bool
	s.with(func(t *memTables) { b, ok = t.bookings[id] })
	return b, ok
}

func (s *memStore) entries() []models.WhitelistEntry {
	var out []models.WhitelistEntry
	s.with(func(t *memTables) {
		for _, e := range t.entries {
			out = append(out, e)
		}
	})
	return out
}

type memBookings struct{ s *memStore }

func (r *memBookings) Create(ctx context.Context, b *models.Booking) error {
	if err := r.s.state.createBookingErr; err != nil {
		return err
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = r.s.state.now()
	r.s.with(func(t *memTables) { t.bookings[b.ID] = *b })
	return nil
}

func (r *memBookings) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	if err := r.s.state.findBookingErr; err != nil {
		return nil, err
	}
	var (
		b  models.Booking
		ok bool
	)
	r.s.with(func(t *memTables) { b, ok = t.bookings[id] })
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if hook := r.s.state.afterFindBooking; hook != nil && !r.s.inTx() {
		hook()
	}
	return &b, nil
}

func (r *memBookings) FindAll(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error) {
	if err := r.s.state.findBookingErr; err != nil {
		return nil, err
	}
	var out []models.Booking
	r.s.with(func(t *memTables) {
		for _, b := range t.bookings {
			if status == nil || b.Status == *status {
				out = append(out, b)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memBookings) MarkDenied(ctx context.Context, id uuid.UUID, resolvedAt time.Time) (int64, error) {
	if err := r.s.state.markDeniedErr; err != nil {
		return 0, err
	}
	var n int64
	r.s.with(func(t *memTables) {
		b, ok := t.bookings[id]
		if !ok || b.Status != models.StatusPending {
			return
		}
		b.Status = models.StatusDenied
		b.ResolvedAt = &resolvedAt
		t.bookings[id] = b
		n = 1
	})
	return n, nil
}

func (r *memBookings) MarkApproved(ctx context.Context, id uuid.UUID, entryID uuid.UUID, resolvedAt time.Time) (int64, error) {
	if err := r.s.state.markApprovedErr; err != nil {
		return 0, err
	}
	var n int64
	r.s.with(func(t *memTables) {
		b, ok := t.bookings[id]
		if !ok || b.Status != models.StatusPending {
			return
		}
		b.Status = models.StatusApproved
		b.ResolvedAt = &resolvedAt
		b.WhitelistEntryID = &entryID
		t.bookings[id] = b
		n = 1
	})
	return n, nil
}

type memWhitelist struct{ s *memStore }

func (r *memWhitelist) Create(ctx context.Context, e *models.WhitelistEntry) error {
	if err := r.s.state.createEntryErr; err != nil {
		return err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = r.s.state.now()
	}
	r.s.with(func(t *memTables) { t.entries[e.ID] = *e })
	return nil
}

func (r *memWhitelist) FindByID(ctx context.Context, id uuid.UUID) (*models.WhitelistEntry, error) {
	var (
		e  models.WhitelistEntry
		ok bool
	)
	r.s.with(func(t *memTables) { e, ok = t.entries[id] })
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (r *memWhitelist) sorted() []models.WhitelistEntry {
	out := r.s.entries()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memWhitelist) FindPage(ctx context.Context, offset, limit int) ([]models.WhitelistEntry, error) {
	all := r.sorted()
	if offset >= len(all) {
		return []models.WhitelistEntry{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memWhitelist) Count(ctx context.Context) (int64, error) {
	if err := r.s.state.countErr; err != nil {
		return 0, err
	}
	return int64(len(r.s.entries())), nil
}

func (r *memWhitelist) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	r.s.with(func(t *memTables) {
		if _, ok := t.entries[id]; ok {
			delete(t.entries, id)
			n = 1
		}
	})
	return n, nil
}

func (r *memWhitelist) FindActiveByPhone(ctx context.Context, number phone.Number, at time.Time) (*models.WhitelistEntry, error) {
	for _, e := range r.sorted() {
		if e.PhoneNumber == number && e.ActiveAt(at) {
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// --- Capturing publisher ---

type publishedEvent struct {
	routingKey string
	payload    any
}

type mockPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *mockPublisher) Publish(routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{routingKey: routingKey, payload: payload})
	return nil
}

func (p *mockPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.routingKey
	}
	return out
}

var errDBDown = errors.New("db connection failed")
