package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeReservationStore struct {
	details []*domain.ReservationDetail
	err     error
}

func (s *fakeReservationStore) FindConfirmedOverlaps(_ context.Context, _ int64, _ time.Time, start, end types.TimeString) ([]*domain.ReservationDetail, error) {
	if s.err != nil {
		return nil, s.err
	}
	var overlapping []*domain.ReservationDetail
	for _, d := range s.details {
		if d.Overlaps(start, end) {
			overlapping = append(overlapping, d)
		}
	}
	return overlapping, nil
}

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

func detail(start, end types.TimeString) *domain.ReservationDetail {
	return &domain.ReservationDetail{CourtID: 1, StartTime: start, EndTime: end}
}

var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) // понедельник

func TestConfirmedReservationRule(t *testing.T) {
	tests := []struct {
		name     string
		existing []*domain.ReservationDetail
		start    types.TimeString
		end      types.TimeString
		want     bool
	}{
		{
			name:     "free slot is available",
			existing: nil,
			start:    "10:00", end: "11:00",
			want: true,
		},
		{
			name:     "overlapping reservation blocks slot",
			existing: []*domain.ReservationDetail{detail("10:00", "12:00")},
			start:    "11:00", end: "12:00",
			want: false,
		},
		{
			name:     "touching end does not conflict",
			existing: []*domain.ReservationDetail{detail("09:00", "10:00")},
			start:    "10:00", end: "11:00",
			want: true,
		},
		{
			name:     "touching start does not conflict",
			existing: []*domain.ReservationDetail{detail("11:00", "12:00")},
			start:    "10:00", end: "11:00",
			want: true,
		},
		{
			name:     "containment conflicts",
			existing: []*domain.ReservationDetail{detail("09:00", "13:00")},
			start:    "10:00", end: "11:00",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewConfirmedReservationRule(&fakeReservationStore{details: tt.existing}, nopLogger{})
			got := rule.IsAvailable(context.Background(), 1, testDate, tt.start, tt.end)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirmedReservationRule_StoreErrorFailsClosed(t *testing.T) {
	rule := NewConfirmedReservationRule(&fakeReservationStore{err: errors.New("db down")}, nopLogger{})

	// При ошибке хранилища слот считается занятым
	got := rule.IsAvailable(context.Background(), 1, testDate, "10:00", "11:00")
	assert.False(t, got)
}

func TestSpecialBlockRule(t *testing.T) {
	price := 50.0
	tests := []struct {
		name      string
		overrides []*domain.DateOverride
		start     types.TimeString
		end       types.TimeString
		want      bool
	}{
		{
			name: "blocked override removes availability",
			overrides: []*domain.DateOverride{
				{StartTime: "10:00", EndTime: "12:00", Status: domain.OverrideBlocked},
			},
			start: "11:00", end: "12:00",
			want: false,
		},
		{
			name: "maintenance override removes availability",
			overrides: []*domain.DateOverride{
				{StartTime: "08:00", EndTime: "20:00", Status: domain.OverrideMaintenance},
			},
			start: "10:00", end: "11:00",
			want: false,
		},
		{
			name: "available override does not block",
			overrides: []*domain.DateOverride{
				{StartTime: "10:00", EndTime: "12:00", Price: &price, Status: domain.OverrideAvailable},
			},
			start: "10:00", end: "11:00",
			want: true,
		},
		{
			name: "touching blocked override does not conflict",
			overrides: []*domain.DateOverride{
				{StartTime: "12:00", EndTime: "14:00", Status: domain.OverrideBlocked},
			},
			start: "11:00", end: "12:00",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewSpecialBlockRule(&fakeOverrideStore{overrides: tt.overrides}, nopLogger{})
			got := rule.IsAvailable(context.Background(), 1, testDate, tt.start, tt.end)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpecialBlockRule_StoreErrorFailsClosed(t *testing.T) {
	rule := NewSpecialBlockRule(&fakeOverrideStore{err: errors.New("db down")}, nopLogger{})

	got := rule.IsAvailable(context.Background(), 1, testDate, "10:00", "11:00")
	assert.False(t, got)
}

func TestAggregator_AllRulesMustAgree(t *testing.T) {
	free := NewConfirmedReservationRule(&fakeReservationStore{}, nopLogger{})
	blocked := NewSpecialBlockRule(&fakeOverrideStore{
		overrides: []*domain.DateOverride{
			{StartTime: "00:00", EndTime: types.EndOfDay, Status: domain.OverrideBlocked},
		},
	}, nopLogger{})

	agg := NewAggregator(nopLogger{}, free, blocked)
	assert.False(t, agg.IsAvailable(context.Background(), 1, testDate, "10:00", "11:00"))

	aggFree := NewAggregator(nopLogger{}, free, NewSpecialBlockRule(&fakeOverrideStore{}, nopLogger{}))
	assert.True(t, aggFree.IsAvailable(context.Background(), 1, testDate, "10:00", "11:00"))
}
