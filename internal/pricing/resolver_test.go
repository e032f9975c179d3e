package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeOverrideStore struct {
	overrides []*domain.DateOverride
	err       error
}

func (s *fakeOverrideStore) OverridesByDate(_ context.Context, _ int64, _ time.Time) ([]*domain.DateOverride, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.overrides, nil
}

type fakeScheduleStore struct {
	windows []*domain.WeeklySchedule
	err     error
}

func (s *fakeScheduleStore) WeeklyWindows(_ context.Context, _ int64, _ time.Weekday) ([]*domain.WeeklySchedule, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.windows, nil
}

type fakeServiceStore struct {
	surcharges map[int64]float64
	err        error
}

func (s *fakeServiceStore) MandatorySurchargeSum(_ context.Context, scheduleID int64) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.surcharges[scheduleID], nil
}

func availableOverride(id int64, start, end types.TimeString, price float64) *domain.DateOverride {
	return &domain.DateOverride{
		ID:        id,
		CourtID:   1,
		StartTime: start,
		EndTime:   end,
		Price:     &price,
		Status:    domain.OverrideAvailable,
	}
}

var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) // понедельник

func TestSpecialDateRule_Price(t *testing.T) {
	t.Run("no overrides - not applicable", func(t *testing.T) {
		rule := NewSpecialDateRule(&fakeOverrideStore{}, nopLogger{})

		_, ok, err := rule.Price(context.Background(), 1, testDate, "10:00", "11:00")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("covering override applies", func(t *testing.T) {
		store := &fakeOverrideStore{overrides: []*domain.DateOverride{
			availableOverride(1, "08:00", "20:00", 45),
		}}
		rule := NewSpecialDateRule(store, nopLogger{})

		price, ok, err := rule.Price(context.Background(), 1, testDate, "10:00", "11:00")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 45.0, price)
	})

	t.Run("partial coverage is not applicable", func(t *testing.T) {
		store := &fakeOverrideStore{overrides: []*domain.DateOverride{
			availableOverride(1, "10:00", "10:30", 45),
		}}
		rule := NewSpecialDateRule(store, nopLogger{})

		_, ok, err := rule.Price(context.Background(), 1, testDate, "10:00", "11:00")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("narrowest covering override wins", func(t *testing.T) {
		store := &fakeOverrideStore{overrides: []*domain.DateOverride{
			availableOverride(1, "08:00", "22:00", 40),
			availableOverride(2, "09:00", "12:00", 60),
		}}
		rule := NewSpecialDateRule(store, nopLogger{})

		price, ok, err := rule.Price(context.Background(), 1, testDate, "10:00", "11:00")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 60.0, price)
	})

	t.Run("equal width - later override wins", func(t *testing.T) {
		store := &fakeOverrideStore{overrides: []*domain.DateOverride{
			availableOverride(7, "09:00", "12:00", 50),
			availableOverride(3, "09:00", "12:00", 70),
		}}
		rule := NewSpecialDateRule(store, nopLogger{})

		price, ok, err := rule.Price(context.Background(), 1, testDate, "10:00", "11:00")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 50.0, price)
	})

	t.Run("blocked and priceless overrides are skipped", func(t *testing.T) {
		price := 30.0
		store := &fakeOverrideStore{overrides: []*domain.DateOverride{
			{ID: 1, StartTime: "08:00", EndTime: "20:00", Price: &price, Status: domain.OverrideBlocked},
			{ID: 2, StartTime: "08:00", EndTime: "20:00", Price: nil, Status: domain.OverrideAvailable},
		}}
		rule := NewSpecialDateRule(store, nopLogger{})

		_, ok, err := rule.Price(context.Background(), 1, testDate, "10:00", "11:00")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store error wraps ErrInternal", func(t *testing.T) {
		rule := NewSpecialDateRule(&fakeOverrideStore{err: errors.New("db down")}, nopLogger{})

		_, _, err := rule.Price(context.Background(), 1, testDate, "10:00", "11:00")
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestBaseScheduleRule_Price(t *testing.T) {
	window := &domain.WeeklySchedule{
		ID:        10,
		CourtID:   1,
		Weekday:   time.Monday,
		StartTime: "08:00",
		EndTime:   "22:00",
		BasePrice: 30,
	}

	t.Run("covering window without surcharges", func(t *testing.T) {
		rule := NewBaseScheduleRule(
			&fakeScheduleStore{windows: []*domain.WeeklySchedule{window}},
			&fakeServiceStore{},
			nopLogger{},
		)

		price, ok, err := rule.Price(context.Background(), 1, testDate, "10:00", "11:00")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 30.0, price)
	})

	t.Run("mandatory surcharges are added", func(t *testing.T) {
		rule := NewBaseScheduleRule(
			&fakeScheduleStore{windows: []*domain.WeeklySchedule{window}},
			&fakeServiceStore{surcharges: map[int64]float64{10: 12.5}},
			nopLogger{},
		)

		price, ok, err := rule.Price(context.Background(), 1, testDate, "10:00", "11:00")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 42.5, price)
	})

	t.Run("no covering window is a configuration error", func(t *testing.T) {
		rule := NewBaseScheduleRule(
			&fakeScheduleStore{windows: []*domain.WeeklySchedule{window}},
			&fakeServiceStore{},
			nopLogger{},
		)

		_, _, err := rule.Price(context.Background(), 1, testDate, "21:00", "23:00")
		assert.ErrorIs(t, err, ErrNoBaseSchedule)
	})

	t.Run("surcharge store error wraps ErrInternal", func(t *testing.T) {
		rule := NewBaseScheduleRule(
			&fakeScheduleStore{windows: []*domain.WeeklySchedule{window}},
			&fakeServiceStore{err: errors.New("db down")},
			nopLogger{},
		)

		_, _, err := rule.Price(context.Background(), 1, testDate, "10:00", "11:00")
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestResolver_SpecialBeatsBase(t *testing.T) {
	overrides := &fakeOverrideStore{overrides: []*domain.DateOverride{
		availableOverride(1, "08:00", "20:00", 99),
	}}
	schedules := &fakeScheduleStore{windows: []*domain.WeeklySchedule{
		{ID: 10, CourtID: 1, Weekday: time.Monday, StartTime: "08:00", EndTime: "22:00", BasePrice: 30},
	}}

	resolver := NewDefaultResolver(overrides, schedules, &fakeServiceStore{}, nopLogger{})

	price, err := resolver.ResolvePrice(context.Background(), 1, testDate, "10:00", "11:00")
	require.NoError(t, err)
	assert.Equal(t, 99.0, price)
}

func TestResolver_FallsBackToBase(t *testing.T) {
	schedules := &fakeScheduleStore{windows: []*domain.WeeklySchedule{
		{ID: 10, CourtID: 1, Weekday: time.Monday, StartTime: "08:00", EndTime: "22:00", BasePrice: 30},
	}}

	resolver := NewDefaultResolver(&fakeOverrideStore{}, schedules, &fakeServiceStore{}, nopLogger{})

	price, err := resolver.ResolvePrice(context.Background(), 1, testDate, "10:00", "11:00")
	require.NoError(t, err)
	assert.Equal(t, 30.0, price)
}

func TestResolver_RuleErrorStopsResolution(t *testing.T) {
	resolver := NewDefaultResolver(
		&fakeOverrideStore{err: errors.New("db down")},
		&fakeScheduleStore{},
		&fakeServiceStore{},
		nopLogger{},
	)

	_, err := resolver.ResolvePrice(context.Background(), 1, testDate, "10:00", "11:00")
	assert.ErrorIs(t, err, ErrInternal)
}
