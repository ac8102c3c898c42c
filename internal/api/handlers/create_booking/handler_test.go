package create_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/api/middleware"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/internal/domain"
	createBooking "github.com/ANJANEYBINOJ/capstone-salon-booking/internal/usecase/create_booking"
	"github.com/ANJANEYBINOJ/capstone-salon-booking/pkg/ptr"
)

type fakeUseCase struct {
	got createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req createBooking.Request) (createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return createBooking.Response{}, f.err
	}
	return createBooking.Response{Booking: &domain.Booking{
		ID:         1,
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		StaffID:    req.StaffID,
		StartAt:    req.StartAt,
		EndAt:      req.StartAt.Add(30 * time.Minute),
		Status:     domain.StatusConfirmed,
	}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "42")
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

// Клиент присылает startAt в своем смещении, расписание салона
// трактуется в референсной таймзоне. Handler нормализует время до
// use case, иначе день недели и рабочее окно считались бы в кадре клиента
func TestHandleNormalizesClientOffset(t *testing.T) {
	salon := time.FixedZone("MSK", 3*60*60)
	uc := &fakeUseCase{}
	h := NewHandler(uc, salon, nopLogger{})

	// 22:00+05:00 = 17:00 UTC = 20:00 в салоне, понедельник
	rec := doRequest(h, `{"serviceId":1,"staffId":7,"startAt":"2025-11-03T22:00:00+05:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	want := time.Date(2025, 11, 3, 17, 0, 0, 0, time.UTC)
	assert.True(t, uc.got.StartAt.Equal(want), "момент времени сохранен")
	assert.Same(t, salon, uc.got.StartAt.Location(), "время приведено к таймзоне салона")
	assert.Equal(t, 20, uc.got.StartAt.Hour())
	assert.Equal(t, time.Monday, uc.got.StartAt.Weekday())
	assert.Equal(t, int64(42), uc.got.CustomerID)
	assert.Equal(t, ptr.Ptr(int64(7)), uc.got.StaffID)
}

func TestHandleInvalidStartAt(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, time.UTC, nopLogger{})

	rec := doRequest(h, `{"serviceId":1,"startAt":"03.11.2025 10:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleMalformedRule(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ErrInvalidRuleFormat}
	h := NewHandler(uc, time.UTC, nopLogger{})

	rec := doRequest(h, `{"serviceId":1,"staffId":7,"startAt":"2025-11-03T10:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "битое правило - ошибка данных, не 500")
	assert.Contains(t, rec.Body.String(), "INVALID_RULE")
}
