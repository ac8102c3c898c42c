package admin_reschedule_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startAt приходит в смещении клиента, но расписание салона трактуется
// в референсной таймзоне - конвертация сохраняет момент времени
func TestToUseCaseRequestNormalizesOffset(t *testing.T) {
	salon := time.FixedZone("MSK", 3*60*60)
	req := &RescheduleBookingRequest{StartAt: "2025-11-03T22:00:00+05:00"}

	got, err := req.ToUseCaseRequest(5, salon)
	require.NoError(t, err)

	assert.Equal(t, int64(5), got.BookingID)
	assert.True(t, got.StartAt.Equal(time.Date(2025, 11, 3, 17, 0, 0, 0, time.UTC)))
	assert.Same(t, salon, got.StartAt.Location())
	assert.Equal(t, 20, got.StartAt.Hour())
	assert.Equal(t, time.Monday, got.StartAt.Weekday())
}

func TestToUseCaseRequestInvalidStartAt(t *testing.T) {
	req := &RescheduleBookingRequest{StartAt: "03.11.2025 10:00"}

	_, err := req.ToUseCaseRequest(5, time.UTC)
	assert.Error(t, err)
}
