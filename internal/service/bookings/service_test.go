package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	bookingstorage "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/infra/storage/booking"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/ptr"
)

// --- фейки ---

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingstorage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.To != nil && !b.StartAt.Before(*filter.To) {
			continue
		}
		if filter.From != nil && !b.EndAt.After(*filter.From) {
			continue
		}
		if filter.StaffID != nil && (b.StaffID == nil || *b.StaffID != *filter.StaffID) {
			continue
		}
		if filter.ServiceID != nil && b.ServiceID != *filter.ServiceID {
			continue
		}
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeInactive && !b.IsBlocking() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, cancelledBy string, reason *string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingstorage.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancelledBy = &cancelledBy
	b.CancelReason = reason
	b.CancelledAt = &now
	return nil
}

func (f *fakeBookingRepo) MarkNoShow(_ context.Context, id int64) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingstorage.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusNoShow
	b.NoShowMarkedAt = &now
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingstorage.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- фикстуры ---

var monday = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

func booking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:                      id,
		CustomerID:              42,
		ServiceID:               1,
		StaffID:                 ptr.Ptr(int64(7)),
		StartAt:                 monday.Add(10 * time.Hour),
		EndAt:                   monday.Add(10*time.Hour + 30*time.Minute),
		Status:                  status,
		DurationMinutesSnapshot: 30,
	}
}

type testEnv struct {
	svc  *Service
	repo *fakeBookingRepo
}

func newTestEnv(list ...*domain.Booking) *testEnv {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range list {
		repo.bookings[b.ID] = b
	}
	return &testEnv{
		svc:  NewService(repo, fakeTxManager{}, nopLogger{}),
		repo: repo,
	}
}

// --- тесты ---

func TestGetByID(t *testing.T) {
	env := newTestEnv(booking(1, domain.StatusConfirmed))

	got, err := env.svc.GetByID(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, err = env.svc.GetByID(context.Background(), 99, nil)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByIDOwnership(t *testing.T) {
	env := newTestEnv(booking(1, domain.StatusConfirmed))

	got, err := env.svc.GetByID(context.Background(), 1, ptr.Ptr(int64(42)))
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.CustomerID)

	_, err = env.svc.GetByID(context.Background(), 1, ptr.Ptr(int64(43)))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetCustomerBookings(t *testing.T) {
	confirmed := booking(1, domain.StatusConfirmed)
	cancelled := booking(2, domain.StatusCancelled)
	foreign := booking(3, domain.StatusConfirmed)
	foreign.CustomerID = 99

	env := newTestEnv(confirmed, cancelled, foreign)

	all, err := env.svc.GetCustomerBookings(context.Background(), 42, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2, "история включает отмененные, чужие - нет")

	status := domain.StatusCancelled
	filtered, err := env.svc.GetCustomerBookings(context.Background(), 42, &status)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(2), filtered[0].ID)
}

func TestCancel(t *testing.T) {
	env := newTestEnv(booking(1, domain.StatusConfirmed))
	reason := "клиент попросил"

	got, err := env.svc.Cancel(context.Background(), CancelRequest{
		BookingID:   1,
		CancelledBy: domain.CancelledByCustomer,
		Reason:      &reason,
		CustomerID:  ptr.Ptr(int64(42)),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, got.Status)
	assert.Equal(t, domain.CancelledByCustomer, *got.CancelledBy)
	assert.Equal(t, reason, *got.CancelReason)
	assert.Equal(t, domain.StatusCancelled, env.repo.bookings[1].Status)
}

func TestCancelForbidden(t *testing.T) {
	env := newTestEnv(booking(1, domain.StatusConfirmed))

	_, err := env.svc.Cancel(context.Background(), CancelRequest{
		BookingID:   1,
		CancelledBy: domain.CancelledByCustomer,
		CustomerID:  ptr.Ptr(int64(43)),
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, domain.StatusConfirmed, env.repo.bookings[1].Status)
}

func TestCancelTerminalStates(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow} {
		env := newTestEnv(booking(1, status))

		_, err := env.svc.Cancel(context.Background(), CancelRequest{
			BookingID:   1,
			CancelledBy: domain.CancelledByAdmin,
		})
		assert.ErrorIs(t, err, ErrInvalidState, "status %s", status)
		assert.Equal(t, status, env.repo.bookings[1].Status, "статус не изменился")
	}
}

func TestMarkNoShow(t *testing.T) {
	env := newTestEnv(booking(1, domain.StatusPending))

	got, err := env.svc.MarkNoShow(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoShow, got.Status)

	// Повторная неявка - недопустимый переход
	_, err = env.svc.MarkNoShow(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestMarkNoShowFromCompleted(t *testing.T) {
	env := newTestEnv(booking(1, domain.StatusCompleted))

	_, err := env.svc.MarkNoShow(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestComplete(t *testing.T) {
	env := newTestEnv(booking(1, domain.StatusConfirmed))

	got, err := env.svc.Complete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)

	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow} {
		env := newTestEnv(booking(2, status))
		_, err := env.svc.Complete(context.Background(), 2)
		assert.ErrorIs(t, err, ErrInvalidState, "status %s", status)
	}
}

func TestCalendar(t *testing.T) {
	first := booking(1, domain.StatusConfirmed)
	second := booking(2, domain.StatusConfirmed)
	second.StaffID = ptr.Ptr(int64(8))
	second.StartAt = monday.Add(11 * time.Hour)
	second.EndAt = monday.Add(11*time.Hour + 30*time.Minute)
	cancelled := booking(3, domain.StatusCancelled)
	unassigned := booking(4, domain.StatusConfirmed)
	unassigned.StaffID = nil
	unassigned.StartAt = monday.Add(12 * time.Hour)
	unassigned.EndAt = monday.Add(12*time.Hour + 30*time.Minute)

	env := newTestEnv(first, second, cancelled, unassigned)

	resp, err := env.svc.Calendar(context.Background(), CalendarRequest{
		From: monday,
		To:   monday.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Total, "отмененные не входят по умолчанию")
	require.Len(t, resp.ByStaff, 3)
	assert.Nil(t, resp.ByStaff[0].StaffID, "неназначенные идут первой группой")
	assert.Equal(t, int64(7), *resp.ByStaff[1].StaffID)
	assert.Equal(t, int64(8), *resp.ByStaff[2].StaffID)
}

func TestCalendarInvalidWindow(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Calendar(context.Background(), CalendarRequest{From: monday, To: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.svc.Calendar(context.Background(), CalendarRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
