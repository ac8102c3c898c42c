package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	bookingstorage "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/infra/storage/booking"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/integrations/catalogservice"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/ptr"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/timespan"
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

func (f *fakeBookingRepo) FindConflicts(_ context.Context, staffID *int64, span timespan.Span, excludeID *int64) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if !b.IsBlocking() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		sameStaff := (staffID == nil && b.StaffID == nil) ||
			(staffID != nil && b.StaffID != nil && *staffID == *b.StaffID)
		if !sameStaff {
			continue
		}
		if b.Span().Overlaps(span) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) Reschedule(_ context.Context, id int64, startAt, endAt time.Time, staffID *int64, previousStart time.Time) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingstorage.ErrBookingNotFound
	}
	b.StartAt = startAt
	b.EndAt = endAt
	b.StaffID = staffID
	b.RescheduledFrom = &previousStart
	b.RescheduleCount++
	return nil
}

type fakeScheduleRepo struct {
	rules   []*domain.AvailabilityRule
	timeOff map[int64][]*domain.TimeOff
}

func (f *fakeScheduleRepo) RulesFor(_ context.Context, staffID *int64, weekday time.Weekday) ([]*domain.AvailabilityRule, error) {
	result := make([]*domain.AvailabilityRule, 0)
	for _, rule := range f.rules {
		if rule.Weekday != weekday {
			continue
		}
		if staffID != nil && rule.StaffID != *staffID {
			continue
		}
		result = append(result, rule)
	}
	return result, nil
}

func (f *fakeScheduleRepo) TimeOffFor(_ context.Context, staffID int64, _ time.Time) ([]*domain.TimeOff, error) {
	return f.timeOff[staffID], nil
}

type fakeCatalog struct {
	staff map[int64]*catalogservice.Staff
}

func (f *fakeCatalog) GetStaff(_ context.Context, staffID int64) (*catalogservice.Staff, error) {
	staff, ok := f.staff[staffID]
	if !ok {
		return nil, catalogservice.ErrStaffNotFound
	}
	return staff, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- фикстуры ---

// Понедельник
var monday = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

func mondayAt(hour, min int) time.Time {
	return monday.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func rule(id, staffID int64) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		ID:        id,
		StaffID:   staffID,
		Weekday:   time.Monday,
		StartTime: "10:00",
		EndTime:   "18:00",
		Breaks: []domain.BreakWindow{
			{Start: "13:00", End: "14:00"},
		},
	}
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:                      5,
		CustomerID:              42,
		ServiceID:               1,
		StaffID:                 ptr.Ptr(int64(7)),
		StartAt:                 mondayAt(10, 0),
		EndAt:                   mondayAt(10, 30),
		Status:                  domain.StatusConfirmed,
		PriceSnapshot:           1500,
		DurationMinutesSnapshot: 30,
		ServiceNameSnapshot:     "Стрижка",
	}
}

type testEnv struct {
	uc          *Usecase
	bookingRepo *fakeBookingRepo
}

func newTestEnv(bookings ...*domain.Booking) *testEnv {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}

	uc := NewUsecase(
		repo,
		&fakeScheduleRepo{rules: []*domain.AvailabilityRule{rule(1, 7), rule(2, 8)}},
		&fakeCatalog{staff: map[int64]*catalogservice.Staff{
			7: {ID: 7, Name: "Иван", Active: true, ServiceIDs: []int64{1}},
			8: {ID: 8, Name: "Петр", Active: true, ServiceIDs: []int64{1}},
		}},
		fakeTxManager{},
		&fixedTime{now: mondayAt(0, 0).AddDate(0, 0, -2)},
		nopLogger{},
	)
	return &testEnv{uc: uc, bookingRepo: repo}
}

// --- тесты ---

func TestExecuteSuccess(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	resp, err := env.uc.Execute(context.Background(), Request{
		BookingID: 5,
		StartAt:   mondayAt(15, 0),
	})
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, mondayAt(15, 0), b.StartAt)
	assert.Equal(t, mondayAt(15, 30), b.EndAt, "конец пересчитан из снапшота длительности")
	assert.Equal(t, int64(7), *b.StaffID, "мастер остался прежним")

	// Аудит переноса
	require.NotNil(t, b.RescheduledFrom)
	assert.Equal(t, mondayAt(10, 0), *b.RescheduledFrom)
	assert.Equal(t, 1, b.RescheduleCount)

	stored := env.bookingRepo.bookings[5]
	assert.Equal(t, mondayAt(15, 0), stored.StartAt)
	assert.Equal(t, 1, stored.RescheduleCount)
}

func TestExecuteChangeStaff(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	resp, err := env.uc.Execute(context.Background(), Request{
		BookingID: 5,
		StartAt:   mondayAt(10, 0),
		StaffID:   ptr.Ptr(int64(8)),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(8), *resp.Booking.StaffID)
}

func TestExecuteSelfOverlapAllowed(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	// Сдвиг на 15 минут пересекает собственный прежний интервал -
	// собственное бронирование не считается конфликтом
	resp, err := env.uc.Execute(context.Background(), Request{
		BookingID: 5,
		StartAt:   mondayAt(10, 15),
	})
	require.NoError(t, err)
	assert.Equal(t, mondayAt(10, 15), resp.Booking.StartAt)
}

func TestExecuteSlotTaken(t *testing.T) {
	other := confirmedBooking()
	other.ID = 6
	other.CustomerID = 43
	other.StartAt = mondayAt(15, 0)
	other.EndAt = mondayAt(15, 30)

	env := newTestEnv(confirmedBooking(), other)

	_, err := env.uc.Execute(context.Background(), Request{
		BookingID: 5,
		StartAt:   mondayAt(15, 15),
	})
	assert.ErrorIs(t, err, ErrSlotTaken)

	stored := env.bookingRepo.bookings[5]
	assert.Equal(t, mondayAt(10, 0), stored.StartAt, "неудачный перенос не меняет бронирование")
	assert.Zero(t, stored.RescheduleCount)
	assert.Nil(t, stored.RescheduledFrom)
}

func TestExecuteSlotUnavailable(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	tests := []struct {
		name    string
		startAt time.Time
		reason  string
	}{
		{"до начала рабочего окна", mondayAt(9, 0), domain.DenialOutsideHours},
		{"пересекает перерыв", mondayAt(12, 45), domain.DenialBreak},
		{"мимо сетки", mondayAt(15, 5), domain.DenialOffGrid},
		{"день без правил", mondayAt(15, 0).AddDate(0, 0, 1), "no availability rules"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.uc.Execute(context.Background(), Request{BookingID: 5, StartAt: tt.startAt})
			assert.ErrorIs(t, err, ErrSlotUnavailable)
			assert.ErrorContains(t, err, tt.reason, "причина отказа попадает в сообщение")
		})
	}

	stored := env.bookingRepo.bookings[5]
	assert.Equal(t, mondayAt(10, 0), stored.StartAt)
	assert.Zero(t, stored.RescheduleCount)
}

func TestExecuteMalformedRule(t *testing.T) {
	env := newTestEnv(confirmedBooking())
	env.uc.scheduleRepo.(*fakeScheduleRepo).rules[0].EndTime = "garbage"

	_, err := env.uc.Execute(context.Background(), Request{BookingID: 5, StartAt: mondayAt(15, 0)})
	assert.ErrorIs(t, err, ErrInvalidRuleFormat)
	assert.NotErrorIs(t, err, ErrInternal, "битое правило - ошибка данных, не внутренняя")

	stored := env.bookingRepo.bookings[5]
	assert.Zero(t, stored.RescheduleCount, "неудачный перенос не меняет бронирование")
}

func TestExecuteInvalidState(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow} {
		b := confirmedBooking()
		b.Status = status
		env := newTestEnv(b)

		_, err := env.uc.Execute(context.Background(), Request{BookingID: 5, StartAt: mondayAt(15, 0)})
		assert.ErrorIs(t, err, ErrInvalidState, "status %s", status)
	}
}

func TestExecuteNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Execute(context.Background(), Request{BookingID: 99, StartAt: mondayAt(15, 0)})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecuteStaffErrors(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	_, err := env.uc.Execute(context.Background(), Request{
		BookingID: 5,
		StartAt:   mondayAt(15, 0),
		StaffID:   ptr.Ptr(int64(99)),
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecutePastSlot(t *testing.T) {
	env := newTestEnv(confirmedBooking())

	_, err := env.uc.Execute(context.Background(), Request{
		BookingID: 5,
		StartAt:   mondayAt(15, 0).AddDate(0, 0, -7),
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}
