package service

import (
	"context"
	"errors"

	"parko/internal/db"
	"parko/internal/khalti"
	"parko/internal/repository"
)

// In-memory fakes for the store and gateway interfaces the services consume.

type fakeSlotStore struct {
	slots map[int]*db.ParkSlot
}

func (f *fakeSlotStore) GetByID(id int) (*db.ParkSlot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *slot
	return &copied, nil
}

type fakeBookingStore struct {
	nextID    int
	bookings  map[int]*db.Booking
	conflict  bool
	createErr error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{nextID: 1, bookings: map[int]*db.Booking{}}
}

func (f *fakeBookingStore) CreateIfAvailable(b *db.Booking) (bool, error) {
	if f.createErr != nil {
		return false, f.createErr
	}
	if f.conflict {
		return false, nil
	}
	b.ID = f.nextID
	f.nextID++
	copied := *b
	f.bookings[b.ID] = &copied
	return true, nil
}

func (f *fakeBookingStore) Delete(id int) error {
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingStore) ListByUser(userID int) ([]repository.UserBookingRow, error) {
	var rows []repository.UserBookingRow
	for _, b := range f.bookings {
		if b.UserID == userID && b.Booked {
			rows = append(rows, repository.UserBookingRow{Booking: *b})
		}
	}
	return rows, nil
}

func (f *fakeBookingStore) ListBySlot(slotID int) ([]repository.SlotBookingRow, error) {
	var rows []repository.SlotBookingRow
	for _, b := range f.bookings {
		if b.SlotID == slotID && b.Booked {
			rows = append(rows, repository.SlotBookingRow{Booking: *b})
		}
	}
	return rows, nil
}

func (f *fakeBookingStore) GetConfirmedForUser(bookingID, userID int) (*db.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok || !b.Booked || b.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingStore) Confirm(bookingID int) error {
	b, ok := f.bookings[bookingID]
	if !ok {
		return errors.New("booking missing")
	}
	b.Booked = true
	b.IsPaid = true
	return nil
}

type fakePaymentStore struct {
	payments  []*db.Payment
	updates   []paymentUpdate
	updateErr error
}

type paymentUpdate struct {
	id            int
	status        string
	gatewayStatus string
	transactionID string
}

func (f *fakePaymentStore) Create(p *db.Payment) error {
	p.ID = len(f.payments) + 1
	copied := *p
	f.payments = append(f.payments, &copied)
	return nil
}

func (f *fakePaymentStore) ListPending() ([]db.Payment, error) {
	var pending []db.Payment
	for _, p := range f.payments {
		if p.Status == db.PaymentPending {
			pending = append(pending, *p)
		}
	}
	return pending, nil
}

func (f *fakePaymentStore) UpdateGatewayState(id int, status, gatewayStatus, transactionID string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, paymentUpdate{id, status, gatewayStatus, transactionID})
	for _, p := range f.payments {
		if p.ID == id {
			p.Status = status
			p.GatewayStatus = gatewayStatus
		}
	}
	return nil
}

type fakeGateway struct {
	link      *khalti.PaymentLink
	linkErr   error
	statuses  map[string]*khalti.StatusResult
	statusErr map[string]error
	lookups   []string
}

func (f *fakeGateway) CreateLink(_ context.Context, amount float64, bookingID int, orderID string) (*khalti.PaymentLink, error) {
	if f.linkErr != nil {
		return nil, f.linkErr
	}
	return f.link, nil
}

func (f *fakeGateway) CheckStatus(_ context.Context, pidx string) (*khalti.StatusResult, error) {
	f.lookups = append(f.lookups, pidx)
	if err := f.statusErr[pidx]; err != nil {
		return nil, err
	}
	return f.statuses[pidx], nil
}

type fakeRatingStore struct {
	values    map[[2]int]int // (slotID, userID) -> rating
	createErr error
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{values: map[[2]int]int{}}
}

func (f *fakeRatingStore) Create(r *db.Rating) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := [2]int{r.SlotID, r.UserID}
	if _, exists := f.values[key]; exists {
		return repository.ErrDuplicate
	}
	f.values[key] = r.Value
	return nil
}

func (f *fakeRatingStore) GetValue(slotID, userID int) (int, bool, error) {
	value, ok := f.values[[2]int{slotID, userID}]
	return value, ok, nil
}

type fakeNotifier struct {
	confirmed []int
}

func (f *fakeNotifier) BookingConfirmed(bookingID int) {
	f.confirmed = append(f.confirmed, bookingID)
}
