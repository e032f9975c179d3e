package cancel_reservation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	policyRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/policy"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeReservationRepo struct {
	reservation *domain.Reservation
	details     []*domain.ReservationDetail

	cancelled       bool
	cancelledReason string
}

func (r *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if r.reservation == nil || r.reservation.ID != id {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r.reservation, nil
}

func (r *fakeReservationRepo) GetDetails(_ context.Context, _ int64) ([]*domain.ReservationDetail, error) {
	return r.details, nil
}

func (r *fakeReservationRepo) Cancel(_ context.Context, _ int64, reason string) error {
	r.cancelled = true
	r.cancelledReason = reason
	return nil
}

type fakeCourtRepo struct {
	court *domain.Court
}

func (r *fakeCourtRepo) GetByID(_ context.Context, _ int64) (*domain.Court, error) {
	return r.court, nil
}

type fakePolicyRepo struct {
	policy *domain.CancellationPolicy
	err    error

	gotHours float64
}

func (r *fakePolicyRepo) MostApplicable(_ context.Context, _ int64, hoursAvailable float64) (*domain.CancellationPolicy, error) {
	r.gotHours = hoursAvailable
	if r.err != nil {
		return nil, r.err
	}
	return r.policy, nil
}

type fakeCreditRepo struct {
	issued []*domain.UserCredit
	err    error
}

func (r *fakeCreditRepo) Issue(_ context.Context, c *domain.UserCredit) (*domain.UserCredit, error) {
	if r.err != nil {
		return nil, r.err
	}
	created := *c
	created.ID = int64(len(r.issued) + 100)
	r.issued = append(r.issued, &created)
	return &created, nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

var now = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *UseCase
	repo     *fakeReservationRepo
	policies *fakePolicyRepo
	credits  *fakeCreditRepo
}

// newFixture собирает usecase вокруг подтверждённого бронирования на 50.0
// со слотом 16 марта 12:00 (через 26 часов от фиксированного "сейчас")
func newFixture() *fixture {
	f := &fixture{
		repo: &fakeReservationRepo{
			reservation: &domain.Reservation{
				ID:          1,
				UserID:      7,
				TotalAmount: 50,
				Status:      domain.StatusConfirmed,
			},
			details: []*domain.ReservationDetail{
				{
					ID:            1,
					ReservationID: 1,
					CourtID:       3,
					Date:          time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
					StartTime:     "12:00",
					EndTime:       "13:00",
					Price:         50,
				},
			},
		},
		policies: &fakePolicyRepo{policy: &domain.CancellationPolicy{
			ID:         10,
			FacilityID: 100,
			HoursLimit: 24,
			Strategy:   domain.StrategyFullCredit,
		}},
		credits: &fakeCreditRepo{},
	}

	courtRepo := &fakeCourtRepo{court: &domain.Court{ID: 3, FacilityID: 100, Status: domain.CourtActive}}
	f.uc = NewUseCase(f.repo, courtRepo, f.policies, NewDefaultRegistry(f.credits, nopLogger{}), &fakeTxManager{}, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: now}
	return f
}

func TestExecute_FullCredit(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeFullCredit, resp.Outcome)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, 26.0, resp.HoursAvailable)

	require.NotNil(t, resp.CreditID)
	require.NotNil(t, resp.CreditAmount)
	assert.Equal(t, 50.0, *resp.CreditAmount)

	require.Len(t, f.credits.issued, 1)
	credit := f.credits.issued[0]
	assert.Equal(t, int64(7), credit.UserID)
	assert.Equal(t, 50.0, credit.Amount)
	assert.Equal(t, int64(1), credit.OriginReservationID)
	assert.Equal(t, domain.CreditIssued, credit.Status)

	assert.True(t, f.repo.cancelled)
	assert.Equal(t, defaultCancellationReason, f.repo.cancelledReason)
}

func TestExecute_PhysicalRefund(t *testing.T) {
	f := newFixture()
	f.policies.policy.Strategy = domain.StrategyPhysicalRefund

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomePhysicalRefund, resp.Outcome)
	assert.Nil(t, resp.CreditID)
	assert.Empty(t, f.credits.issued)
	assert.True(t, f.repo.cancelled)
}

func TestExecute_CustomReason(t *testing.T) {
	f := newFixture()

	reason := "передумал"
	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7, Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, "передумал", f.repo.cancelledReason)
}

func TestExecute_HoursAvailableMinutePrecision(t *testing.T) {
	f := newFixture()
	// 25 часов 45 минут до начала -> 25.75 часа
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 15, 10, 15, 0, 0, time.UTC)}

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, 25.75, resp.HoursAvailable)
	assert.Equal(t, 25.75, f.policies.gotHours)
}

func TestExecute_NoPolicy(t *testing.T) {
	f := newFixture()
	f.policies.err = policyRepo.ErrPolicyNotFound

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeNoPolicy, resp.Outcome)
	assert.Nil(t, resp.CreditID)
	assert.Empty(t, f.credits.issued)
	assert.True(t, f.repo.cancelled)
}

func TestExecute_UnknownStrategy(t *testing.T) {
	f := newFixture()
	f.policies.policy.Strategy = "partial_credit"

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeUnknownStrategy, resp.Outcome)
	assert.Empty(t, f.credits.issued)
	assert.True(t, f.repo.cancelled)
}

func TestExecute_NoDetails(t *testing.T) {
	f := newFixture()
	f.repo.details = nil

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeNoDetails, resp.Outcome)
	assert.Zero(t, resp.HoursAvailable)
	assert.True(t, f.repo.cancelled)
}

func TestExecute_AlreadyStarted(t *testing.T) {
	f := newFixture()
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7})
	assert.ErrorIs(t, err, ErrAlreadyStarted)
	assert.False(t, f.repo.cancelled)
}

func TestExecute_ReservationNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 99, UserID: 7})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_AccessDenied(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 8})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, f.repo.cancelled)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	f := newFixture()
	f.repo.reservation.Status = domain.StatusCancelled

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecute_StrategyFailureKeepsReservation(t *testing.T) {
	f := newFixture()
	f.credits.err = errors.New("db down")

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 7})
	assert.ErrorIs(t, err, ErrInternal)
	// Сбой стратегии откатывает транзакцию целиком, статус не меняется
	assert.False(t, f.repo.cancelled)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture()

	longReason := strings.Repeat("a", domain.MaxCancellationReasonLength+1)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "non-positive reservation id", req: &Request{ReservationID: 0, UserID: 7}},
		{name: "non-positive user id", req: &Request{ReservationID: 1, UserID: 0}},
		{name: "reason too long", req: &Request{ReservationID: 1, UserID: 7, Reason: &longReason}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
