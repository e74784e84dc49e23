//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/domain/user"
	"riviera-booking/internal/infra"
	"riviera-booking/internal/infra/db"
	"riviera-booking/internal/infra/repository"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the postgres layer. A single mutex
// plays the role of the per-resource advisory lock: WithinResource holds it
// for the whole callback, so concurrent check-then-write sequences are
// serialized exactly like they are against the real database.
type memStore struct {
	mu           sync.Mutex
	reservations map[uuid.UUID]*booking.Reservation
	rooms        map[uuid.UUID]*resource.Room
	tables       map[uuid.UUID]*resource.Table
	users        map[uuid.UUID]*user.User
	payments     map[uuid.UUID]*booking.Payment
	idem         map[string]*repository.IdempotencyRecord
	events       []memEvent
}

type memEvent struct {
	kind    string
	payload any
}

func newMemStore() *memStore {
	return &memStore{
		reservations: make(map[uuid.UUID]*booking.Reservation),
		rooms:        make(map[uuid.UUID]*resource.Room),
		tables:       make(map[uuid.UUID]*resource.Table),
		users:        make(map[uuid.UUID]*user.User),
		payments:     make(map[uuid.UUID]*booking.Payment),
		idem:         make(map[string]*repository.IdempotencyRecord),
	}
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

// memUoW serializes WithinResource callbacks on the store mutex.
type memUoW struct {
	store *memStore
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *memUoW) WithinResource(ctx context.Context, _ resource.Kind, _ uuid.UUID, fn func(ctx context.Context, tx db.DBTX) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(ctx, nil)
}

type memReservations struct {
	store *memStore
}

func (r *memReservations) Find(_ context.Context, _ db.DBTX, id uuid.UUID) (*booking.Reservation, error) {
	if res, ok := r.store.reservations[id]; ok {
		return res, nil
	}
	return nil, notFound("reservation")
}

func (r *memReservations) FindByReference(_ context.Context, _ db.DBTX, reference string) (*booking.Reservation, error) {
	for _, res := range r.store.reservations {
		if res.Reference() == reference {
			return res, nil
		}
	}
	return nil, notFound("reservation")
}

func (r *memReservations) ActiveWindows(_ context.Context, _ db.DBTX, kind resource.Kind, resourceID uuid.UUID, exclude *uuid.UUID) ([]booking.Window, error) {
	var windows []booking.Window
	for _, res := range r.store.reservations {
		if res.ResourceKind() != kind || res.ResourceID() != resourceID {
			continue
		}
		if !res.Status().IsActive() {
			continue
		}
		if exclude != nil && res.ID() == *exclude {
			continue
		}
		windows = append(windows, res.Window())
	}
	return windows, nil
}

func (r *memReservations) Create(_ context.Context, _ db.DBTX, res *booking.Reservation) error {
	r.store.reservations[res.ID()] = res
	return nil
}

func (r *memReservations) Update(_ context.Context, _ db.DBTX, res *booking.Reservation) error {
	if _, ok := r.store.reservations[res.ID()]; !ok {
		return notFound("reservation")
	}
	r.store.reservations[res.ID()] = res
	return nil
}

func (r *memReservations) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := r.store.reservations[id]; !ok {
		return notFound("reservation")
	}
	delete(r.store.reservations, id)
	return nil
}

type memResources struct {
	store *memStore
}

func (r *memResources) FindBookable(ctx context.Context, tx db.DBTX, kind resource.Kind, id uuid.UUID) (resource.Bookable, error) {
	switch kind {
	case resource.KindRoom:
		return r.FindRoom(ctx, tx, id)
	case resource.KindTable:
		return r.FindTable(ctx, tx, id)
	default:
		return nil, notFound("resource")
	}
}

func (r *memResources) FindRoom(_ context.Context, _ db.DBTX, id uuid.UUID) (*resource.Room, error) {
	if room, ok := r.store.rooms[id]; ok {
		return room, nil
	}
	return nil, notFound("room")
}

func (r *memResources) ListRooms(_ context.Context, _ db.DBTX) ([]*resource.Room, error) {
	var rooms []*resource.Room
	for _, room := range r.store.rooms {
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (r *memResources) CreateRoom(_ context.Context, _ db.DBTX, room *resource.Room) error {
	r.store.rooms[room.ID()] = room
	return nil
}

func (r *memResources) UpdateRoom(_ context.Context, _ db.DBTX, room *resource.Room) error {
	if _, ok := r.store.rooms[room.ID()]; !ok {
		return notFound("room")
	}
	r.store.rooms[room.ID()] = room
	return nil
}

func (r *memResources) DeleteRoom(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := r.store.rooms[id]; !ok {
		return notFound("room")
	}
	delete(r.store.rooms, id)
	return nil
}

func (r *memResources) FindTable(_ context.Context, _ db.DBTX, id uuid.UUID) (*resource.Table, error) {
	if table, ok := r.store.tables[id]; ok {
		return table, nil
	}
	return nil, notFound("table")
}

func (r *memResources) ListTables(_ context.Context, _ db.DBTX) ([]*resource.Table, error) {
	var tables []*resource.Table
	for _, table := range r.store.tables {
		tables = append(tables, table)
	}
	return tables, nil
}

func (r *memResources) CreateTable(_ context.Context, _ db.DBTX, table *resource.Table) error {
	r.store.tables[table.ID()] = table
	return nil
}

func (r *memResources) UpdateTable(_ context.Context, _ db.DBTX, table *resource.Table) error {
	if _, ok := r.store.tables[table.ID()]; !ok {
		return notFound("table")
	}
	r.store.tables[table.ID()] = table
	return nil
}

func (r *memResources) DeleteTable(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := r.store.tables[id]; !ok {
		return notFound("table")
	}
	delete(r.store.tables, id)
	return nil
}

type memIdempotency struct {
	store *memStore
}

func idemKey(key string, userID uuid.UUID) string {
	return key + "/" + userID.String()
}

func (r *memIdempotency) Reserve(_ context.Context, _ db.DBTX, key string, userID uuid.UUID, ttl time.Duration) (*repository.IdempotencyRecord, bool, error) {
	k := idemKey(key, userID)
	if record, ok := r.store.idem[k]; ok {
		return record, false, nil
	}
	r.store.idem[k] = &repository.IdempotencyRecord{
		Key:       key,
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	return nil, true, nil
}

func (r *memIdempotency) Complete(_ context.Context, _ db.DBTX, key string, userID, reservationID uuid.UUID) error {
	record, ok := r.store.idem[idemKey(key, userID)]
	if !ok {
		return notFound("idempotency key")
	}
	record.Completed = true
	record.ReservationID = &reservationID
	return nil
}

func (r *memIdempotency) PurgeExpired(_ context.Context, _ db.DBTX) (int64, error) {
	var purged int64
	for k, record := range r.store.idem {
		if record.ExpiresAt.Before(time.Now()) {
			delete(r.store.idem, k)
			purged++
		}
	}
	return purged, nil
}

type memNotifications struct {
	store *memStore
}

func (r *memNotifications) Enqueue(_ context.Context, _ db.DBTX, kind string, payload any) error {
	r.store.events = append(r.store.events, memEvent{kind: kind, payload: payload})
	return nil
}

func (r *memNotifications) DequeueDue(_ context.Context, _ db.DBTX, _ int) ([]repository.NotificationJob, error) {
	return nil, nil
}

func (r *memNotifications) MarkDone(_ context.Context, _ db.DBTX, _ uuid.UUID) error {
	return nil
}

func (r *memNotifications) MarkFailed(_ context.Context, _ db.DBTX, _ uuid.UUID, _ int) error {
	return nil
}

func (s *memStore) eventKinds() []string {
	var kinds []string
	for _, e := range s.events {
		kinds = append(kinds, e.kind)
	}
	return kinds
}

type memUsers struct {
	store *memStore
}

func (r *memUsers) Find(_ context.Context, _ db.DBTX, id uuid.UUID) (*user.User, error) {
	if u, ok := r.store.users[id]; ok {
		return u, nil
	}
	return nil, notFound("user")
}

func (r *memUsers) FindByEmail(_ context.Context, _ db.DBTX, email user.Email) (*user.User, error) {
	for _, u := range r.store.users {
		if u.Email().Value() == email.Value() {
			return u, nil
		}
	}
	return nil, notFound("user")
}

func (r *memUsers) Create(_ context.Context, _ db.DBTX, u *user.User) error {
	for _, existing := range r.store.users {
		if existing.Email().Value() == u.Email().Value() {
			return infra.WrapRepoErr("email already registered", nil, infra.KindDuplicateKey)
		}
	}
	r.store.users[u.ID()] = u
	return nil
}

type memPayments struct {
	store *memStore
}

func (r *memPayments) Find(_ context.Context, _ db.DBTX, id uuid.UUID) (*booking.Payment, error) {
	if p, ok := r.store.payments[id]; ok {
		return p, nil
	}
	return nil, notFound("payment")
}

func (r *memPayments) ListByReservation(_ context.Context, _ db.DBTX, reservationID uuid.UUID) ([]*booking.Payment, error) {
	var payments []*booking.Payment
	for _, p := range r.store.payments {
		if p.ReservationID() == reservationID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (r *memPayments) Create(_ context.Context, _ db.DBTX, p *booking.Payment) error {
	r.store.payments[p.ID()] = p
	return nil
}

func (r *memPayments) UpdateStatus(_ context.Context, _ db.DBTX, p *booking.Payment) error {
	if _, ok := r.store.payments[p.ID()]; !ok {
		return notFound("payment")
	}
	r.store.payments[p.ID()] = p
	return nil
}
