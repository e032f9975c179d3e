package get_slot_grid

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeCourtRepo struct {
	courts map[int64]*domain.Court
}

func (r *fakeCourtRepo) GetByID(_ context.Context, id int64) (*domain.Court, error) {
	c, ok := r.courts[id]
	if !ok {
		return nil, court.ErrCourtNotFound
	}
	return c, nil
}

type fakeScheduleRepo struct {
	windows   []*domain.WeeklySchedule
	overrides []*domain.DateOverride
}

func (r *fakeScheduleRepo) WeeklyWindows(_ context.Context, _ int64, _ time.Weekday) ([]*domain.WeeklySchedule, error) {
	return r.windows, nil
}

func (r *fakeScheduleRepo) OverridesByDate(_ context.Context, _ int64, _ time.Time) ([]*domain.DateOverride, error) {
	return r.overrides, nil
}

type fakeReservationRepo struct {
	details []*domain.ReservationDetail
}

func (r *fakeReservationRepo) GetConfirmedDetailsByCourtAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.ReservationDetail, error) {
	return r.details, nil
}

type fakeServiceRepo struct {
	surcharges map[int64]float64
}

func (r *fakeServiceRepo) MandatorySurchargeSum(_ context.Context, scheduleID int64) (float64, error) {
	return r.surcharges[scheduleID], nil
}

var gridDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) // понедельник

func activeCourtRepo() *fakeCourtRepo {
	return &fakeCourtRepo{courts: map[int64]*domain.Court{
		1: {ID: 1, FacilityID: 100, Name: "Корт 1", SportType: "tennis", Status: domain.CourtActive},
	}}
}

func mondayWindow(id int64, start, end types.TimeString, price float64) *domain.WeeklySchedule {
	return &domain.WeeklySchedule{
		ID:        id,
		CourtID:   1,
		Weekday:   time.Monday,
		StartTime: start,
		EndTime:   end,
		BasePrice: price,
	}
}

func TestExecute_ScheduleGrid(t *testing.T) {
	uc := NewUseCase(
		activeCourtRepo(),
		&fakeScheduleRepo{windows: []*domain.WeeklySchedule{mondayWindow(10, "08:00", "12:00", 30)}},
		&fakeReservationRepo{},
		&fakeServiceRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{CourtID: 1, Date: gridDate, Mode: ModeSchedule})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	for i, slot := range resp.Slots {
		assert.Equal(t, domain.SlotAvailable, slot.Status, "slot %d", i)
		assert.Equal(t, 30.0, slot.Price, "slot %d", i)
		assert.Equal(t, 60, slot.DurationMinutes(), "slot %d", i)
	}
	assert.Equal(t, types.TimeString("08:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[3].EndTime)
}

func TestExecute_ScheduleGrid_BookedSlot(t *testing.T) {
	uc := NewUseCase(
		activeCourtRepo(),
		&fakeScheduleRepo{windows: []*domain.WeeklySchedule{mondayWindow(10, "08:00", "12:00", 30)}},
		&fakeReservationRepo{details: []*domain.ReservationDetail{
			{CourtID: 1, Date: gridDate, StartTime: "09:00", EndTime: "10:00", Price: 30},
		}},
		&fakeServiceRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{CourtID: 1, Date: gridDate, Mode: ModeSchedule})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	assert.Equal(t, domain.SlotAvailable, resp.Slots[0].Status)
	assert.Equal(t, domain.SlotBooked, resp.Slots[1].Status)
	// Бронь не задевает соседние слоты
	assert.Equal(t, domain.SlotAvailable, resp.Slots[2].Status)
	assert.Equal(t, domain.SlotAvailable, resp.Slots[3].Status)
}

func TestExecute_ScheduleGrid_OverridePriceWins(t *testing.T) {
	price := 45.0
	uc := NewUseCase(
		activeCourtRepo(),
		&fakeScheduleRepo{
			windows: []*domain.WeeklySchedule{mondayWindow(10, "08:00", "12:00", 30)},
			overrides: []*domain.DateOverride{
				{ID: 1, CourtID: 1, StartTime: "10:00", EndTime: "11:00", Price: &price, Status: domain.OverrideAvailable},
			},
		},
		&fakeReservationRepo{},
		&fakeServiceRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{CourtID: 1, Date: gridDate, Mode: ModeSchedule})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	assert.Equal(t, 30.0, resp.Slots[1].Price)
	assert.Equal(t, 45.0, resp.Slots[2].Price) // 10:00-11:00 по спецрасписанию
	assert.Equal(t, 30.0, resp.Slots[3].Price)
}

func TestExecute_ScheduleGrid_BlockedOverride(t *testing.T) {
	uc := NewUseCase(
		activeCourtRepo(),
		&fakeScheduleRepo{
			windows: []*domain.WeeklySchedule{mondayWindow(10, "08:00", "12:00", 30)},
			overrides: []*domain.DateOverride{
				{ID: 1, CourtID: 1, StartTime: "08:00", EndTime: "10:00", Status: domain.OverrideBlocked},
			},
		},
		&fakeReservationRepo{},
		&fakeServiceRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{CourtID: 1, Date: gridDate, Mode: ModeSchedule})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	assert.Equal(t, domain.SlotBooked, resp.Slots[0].Status)
	assert.Equal(t, domain.SlotBooked, resp.Slots[1].Status)
	assert.Equal(t, domain.SlotAvailable, resp.Slots[2].Status)
}

func TestExecute_ScheduleGrid_MandatorySurcharge(t *testing.T) {
	uc := NewUseCase(
		activeCourtRepo(),
		&fakeScheduleRepo{windows: []*domain.WeeklySchedule{mondayWindow(10, "08:00", "10:00", 30)}},
		&fakeReservationRepo{},
		&fakeServiceRepo{surcharges: map[int64]float64{10: 5.5}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{CourtID: 1, Date: gridDate, Mode: ModeSchedule})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, 35.5, resp.Slots[0].Price)
	assert.Equal(t, 35.5, resp.Slots[1].Price)
}

func TestExecute_ScheduleGrid_LastSlotClamped(t *testing.T) {
	uc := NewUseCase(
		activeCourtRepo(),
		&fakeScheduleRepo{windows: []*domain.WeeklySchedule{mondayWindow(10, "08:00", "09:30", 30)}},
		&fakeReservationRepo{},
		&fakeServiceRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{CourtID: 1, Date: gridDate, Mode: ModeSchedule})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	assert.Equal(t, types.TimeString("09:00"), resp.Slots[1].StartTime)
	assert.Equal(t, types.TimeString("09:30"), resp.Slots[1].EndTime)
	assert.Equal(t, 30, resp.Slots[1].DurationMinutes())
}

func TestExecute_ScheduleGrid_EmptyScheduleDay(t *testing.T) {
	uc := NewUseCase(
		activeCourtRepo(),
		&fakeScheduleRepo{},
		&fakeReservationRepo{},
		&fakeServiceRepo{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{CourtID: 1, Date: gridDate, Mode: ModeSchedule})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_FullDayGrid(t *testing.T) {
	uc := NewUseCase(
		activeCourtRepo(),
		&fakeScheduleRepo{windows: []*domain.WeeklySchedule{mondayWindow(10, "08:00", "12:00", 30)}},
		&fakeReservationRepo{details: []*domain.ReservationDetail{
			{CourtID: 1, Date: gridDate, StartTime: "09:00", EndTime: "10:00", Price: 30},
		}},
		&fakeServiceRepo{surcharges: map[int64]float64{10: 5}},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{CourtID: 1, Date: gridDate, Mode: ModeFullDay})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 24)

	// Кадры вне расписания закрыты
	assert.Equal(t, domain.SlotClosed, resp.Slots[0].Status)
	assert.Equal(t, domain.SlotClosed, resp.Slots[7].Status)
	assert.Equal(t, domain.SlotClosed, resp.Slots[12].Status)
	assert.Equal(t, domain.SlotClosed, resp.Slots[23].Status)

	// Кадры расписания: базовая цена без наценок
	assert.Equal(t, domain.SlotAvailable, resp.Slots[8].Status)
	assert.Equal(t, 30.0, resp.Slots[8].Price)
	assert.Equal(t, domain.SlotBooked, resp.Slots[9].Status)
	assert.Equal(t, domain.SlotAvailable, resp.Slots[10].Status)
	assert.Equal(t, domain.SlotAvailable, resp.Slots[11].Status)

	assert.Equal(t, types.TimeString("00:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.EndOfDay, resp.Slots[23].EndTime)
}

func TestExecute_RepeatedBuildsAreIdentical(t *testing.T) {
	price := 45.0
	uc := NewUseCase(
		activeCourtRepo(),
		&fakeScheduleRepo{
			windows: []*domain.WeeklySchedule{mondayWindow(10, "08:00", "12:00", 30)},
			overrides: []*domain.DateOverride{
				{ID: 1, CourtID: 1, StartTime: "10:00", EndTime: "11:00", Price: &price, Status: domain.OverrideAvailable},
			},
		},
		&fakeReservationRepo{details: []*domain.ReservationDetail{
			{CourtID: 1, Date: gridDate, StartTime: "09:00", EndTime: "10:00", Price: 30},
		}},
		&fakeServiceRepo{surcharges: map[int64]float64{10: 5}},
		nopLogger{},
	)

	for _, mode := range []GridMode{ModeSchedule, ModeFullDay} {
		req := &Request{CourtID: 1, Date: gridDate, Mode: mode}

		first, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		second, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		// Повторное построение над неизменным состоянием даёт ту же сетку
		assert.Equal(t, first, second, "mode %s", mode)
	}
}

func TestExecute_CourtNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeCourtRepo{courts: map[int64]*domain.Court{}},
		&fakeScheduleRepo{},
		&fakeReservationRepo{},
		&fakeServiceRepo{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{CourtID: 42, Date: gridDate, Mode: ModeSchedule})
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestExecute_CourtInactive(t *testing.T) {
	uc := NewUseCase(
		&fakeCourtRepo{courts: map[int64]*domain.Court{
			1: {ID: 1, Status: domain.CourtInactive},
		}},
		&fakeScheduleRepo{},
		&fakeReservationRepo{},
		&fakeServiceRepo{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{CourtID: 1, Date: gridDate, Mode: ModeSchedule})
	assert.ErrorIs(t, err, ErrCourtInactive)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(activeCourtRepo(), &fakeScheduleRepo{}, &fakeReservationRepo{}, &fakeServiceRepo{}, nopLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "non-positive court id", req: &Request{CourtID: 0, Date: gridDate, Mode: ModeSchedule}},
		{name: "zero date", req: &Request{CourtID: 1, Mode: ModeSchedule}},
		{name: "unknown mode", req: &Request{CourtID: 1, Date: gridDate, Mode: "weekly"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
