package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/integrations/catalogservice"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/ptr"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/types"
)

// --- фейки ---

type fakeBookingRepo struct {
	bookings []*domain.Booking
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
		if !filter.IncludeInactive && !b.IsBlocking() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
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
	services map[int64]*catalogservice.Service
}

func (f *fakeCatalog) GetService(_ context.Context, serviceID int64) (*catalogservice.Service, error) {
	service, ok := f.services[serviceID]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	return service, nil
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

func haircut() *catalogservice.Service {
	return &catalogservice.Service{
		ID:              1,
		Name:            "Стрижка",
		DurationMinutes: 30,
		BasePrice:       1500,
		Active:          true,
		StaffIDs:        []int64{7},
	}
}

func mondayRule(staffID int64) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		ID:        1,
		StaffID:   staffID,
		Weekday:   time.Monday,
		StartTime: "10:00",
		EndTime:   "18:00",
		Breaks: []domain.BreakWindow{
			{Start: "13:00", End: "14:00"},
		},
	}
}

func newTestUsecase(bookingRepo *fakeBookingRepo, scheduleRepo *fakeScheduleRepo, catalog *fakeCatalog, now time.Time) *Usecase {
	return NewUsecase(bookingRepo, scheduleRepo, catalog, &fixedTime{now: now}, nopLogger{})
}

// --- тесты ---

func TestExecuteFullDay(t *testing.T) {
	uc := newTestUsecase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rules: []*domain.AvailabilityRule{mondayRule(7)}},
		&fakeCatalog{services: map[int64]*catalogservice.Service{1: haircut()}},
		mondayAt(0, 0).AddDate(0, 0, -2),
	)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: monday})
	require.NoError(t, err)

	// Окно 10:00-18:00 с перерывом 13:00-14:00, услуга 30 минут:
	// 10:00..12:30 (11 слотов) и 14:00..17:30 (15 слотов)
	require.Len(t, resp.Slots, 26)
	assert.Equal(t, mondayAt(10, 0), resp.Slots[0].StartAt)
	assert.Equal(t, mondayAt(10, 30), resp.Slots[0].EndAt)
	assert.Equal(t, mondayAt(12, 30), resp.Slots[10].StartAt)
	assert.Equal(t, mondayAt(14, 0), resp.Slots[11].StartAt, "первый слот после перерыва")
	assert.Equal(t, mondayAt(17, 30), resp.Slots[25].StartAt)
	assert.Equal(t, 30, resp.DurationMinutes)

	for _, slot := range resp.Slots {
		assert.Equal(t, int64(7), slot.StaffID)
	}
}

func TestExecuteExcludesPastSlots(t *testing.T) {
	uc := newTestUsecase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rules: []*domain.AvailabilityRule{mondayRule(7)}},
		&fakeCatalog{services: map[int64]*catalogservice.Service{1: haircut()}},
		mondayAt(12, 0),
	)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: monday})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, mondayAt(12, 0), resp.Slots[0].StartAt, "слоты раньше текущего момента отброшены")
}

func TestExecuteExcludesBookedSlots(t *testing.T) {
	booked := &domain.Booking{
		ID:      100,
		StaffID: ptr.Ptr(int64(7)),
		StartAt: mondayAt(10, 30),
		EndAt:   mondayAt(11, 0),
		Status:  domain.StatusConfirmed,
	}
	cancelled := &domain.Booking{
		ID:      101,
		StaffID: ptr.Ptr(int64(7)),
		StartAt: mondayAt(15, 0),
		EndAt:   mondayAt(15, 30),
		Status:  domain.StatusCancelled,
	}

	uc := newTestUsecase(
		&fakeBookingRepo{bookings: []*domain.Booking{booked, cancelled}},
		&fakeScheduleRepo{rules: []*domain.AvailabilityRule{mondayRule(7)}},
		&fakeCatalog{services: map[int64]*catalogservice.Service{1: haircut()}},
		mondayAt(0, 0).AddDate(0, 0, -2),
	)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: monday})
	require.NoError(t, err)

	starts := make(map[time.Time]bool)
	for _, slot := range resp.Slots {
		starts[slot.StartAt] = true
	}

	assert.False(t, starts[mondayAt(10, 15)], "кандидат пересекает занятый интервал")
	assert.False(t, starts[mondayAt(10, 30)])
	assert.False(t, starts[mondayAt(10, 45)])
	assert.True(t, starts[mondayAt(11, 0)], "слот сразу после бронирования доступен")
	assert.True(t, starts[mondayAt(15, 0)], "отмененное бронирование не блокирует слот")
}

func TestExecuteAllDayTimeOff(t *testing.T) {
	uc := newTestUsecase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{
			rules:   []*domain.AvailabilityRule{mondayRule(7)},
			timeOff: map[int64][]*domain.TimeOff{7: {{ID: 1, StaffID: 7, Date: monday, AllDay: true}}},
		},
		&fakeCatalog{services: map[int64]*catalogservice.Service{1: haircut()}},
		mondayAt(0, 0).AddDate(0, 0, -2),
	)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteWindowedTimeOff(t *testing.T) {
	start := types.TimeString("15:00")
	end := types.TimeString("16:00")

	uc := newTestUsecase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{
			rules: []*domain.AvailabilityRule{mondayRule(7)},
			timeOff: map[int64][]*domain.TimeOff{
				7: {{ID: 1, StaffID: 7, Date: monday, StartTime: &start, EndTime: &end}},
			},
		},
		&fakeCatalog{services: map[int64]*catalogservice.Service{1: haircut()}},
		mondayAt(0, 0).AddDate(0, 0, -2),
	)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: monday})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		overlaps := slot.StartAt.Before(mondayAt(16, 0)) && mondayAt(15, 0).Before(slot.EndAt)
		assert.False(t, overlaps, "слот %s пересекает time-off", slot.StartAt)
	}
}

func TestExecuteFanOutAcrossStaff(t *testing.T) {
	secondRule := mondayRule(8)
	secondRule.ID = 2

	service := haircut()
	service.StaffIDs = []int64{7, 8}

	uc := newTestUsecase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rules: []*domain.AvailabilityRule{mondayRule(7), secondRule}},
		&fakeCatalog{services: map[int64]*catalogservice.Service{1: service}},
		mondayAt(0, 0).AddDate(0, 0, -2),
	)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 52)
	// Сортировка: по времени, затем по мастеру
	assert.Equal(t, int64(7), resp.Slots[0].StaffID)
	assert.Equal(t, int64(8), resp.Slots[1].StaffID)
	assert.Equal(t, resp.Slots[0].StartAt, resp.Slots[1].StartAt)
}

func TestExecuteStaffFilter(t *testing.T) {
	secondRule := mondayRule(8)
	secondRule.ID = 2

	service := haircut()
	service.StaffIDs = []int64{7, 8}

	uc := newTestUsecase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rules: []*domain.AvailabilityRule{mondayRule(7), secondRule}},
		&fakeCatalog{services: map[int64]*catalogservice.Service{1: service}},
		mondayAt(0, 0).AddDate(0, 0, -2),
	)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, StaffID: ptr.Ptr(int64(8)), Date: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 26)
	for _, slot := range resp.Slots {
		assert.Equal(t, int64(8), slot.StaffID)
	}
}

func TestExecuteNoRules(t *testing.T) {
	uc := newTestUsecase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{},
		&fakeCatalog{services: map[int64]*catalogservice.Service{1: haircut()}},
		mondayAt(0, 0).AddDate(0, 0, -2),
	)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Date: monday})
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecuteServiceErrors(t *testing.T) {
	inactive := haircut()
	inactive.ID = 2
	inactive.Active = false

	uc := newTestUsecase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{rules: []*domain.AvailabilityRule{mondayRule(7)}},
		&fakeCatalog{services: map[int64]*catalogservice.Service{1: haircut(), 2: inactive}},
		mondayAt(0, 0).AddDate(0, 0, -2),
	)

	_, err := uc.Execute(context.Background(), Request{ServiceID: 99, Date: monday})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = uc.Execute(context.Background(), Request{ServiceID: 2, Date: monday})
	assert.ErrorIs(t, err, ErrServiceInactive)

	_, err = uc.Execute(context.Background(), Request{ServiceID: 1, StaffID: ptr.Ptr(int64(99)), Date: monday})
	assert.ErrorIs(t, err, ErrStaffNotQualified)
}

func TestExecuteInvalidInput(t *testing.T) {
	uc := newTestUsecase(&fakeBookingRepo{}, &fakeScheduleRepo{}, &fakeCatalog{}, mondayAt(0, 0))

	_, err := uc.Execute(context.Background(), Request{ServiceID: 0, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
