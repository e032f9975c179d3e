package create_reservation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_reservation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *createReservation.Request
}

func (u *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	u.got = req
	return &createReservation.Response{
		ID:          1,
		UserID:      req.UserID,
		CourtID:     req.CourtID,
		Date:        req.Date,
		TotalAmount: 30,
		Status:      string(domain.StatusConfirmed),
		Slots: []*domain.RequestedSlot{
			{StartTime: "10:00", EndTime: "11:00", Price: 30},
		},
		CreatedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}, nil
}

func doRequest(t *testing.T, body string) (*httptest.ResponseRecorder, *fakeUseCase) {
	t.Helper()

	uc := &fakeUseCase{}
	handler := middleware.Auth(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	req.Header.Set("X-User-ID", "7")
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, uc
}

func bodyWithCredit(creditField string) string {
	base := `"paymentMethodId":3,"courtId":1,"date":"2026-03-16","slots":[{"startTime":"10:00","endTime":"11:00","price":30}]`
	if creditField == "" {
		return "{" + base + "}"
	}
	return fmt.Sprintf(`{%s,"creditId":%s}`, base, creditField)
}

func TestHandle_CreditIDForms(t *testing.T) {
	tests := []struct {
		name        string
		creditField string
		want        *int64
	}{
		{name: "field absent", creditField: "", want: nil},
		{name: "json null", creditField: "null", want: nil},
		{name: "string null", creditField: `"null"`, want: nil},
		{name: "zero", creditField: "0", want: nil},
		{name: "minus one", creditField: "-1", want: nil},
		{name: "real credit id", creditField: "42", want: ptrInt64(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, uc := doRequest(t, bodyWithCredit(tt.creditField))

			require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
			require.NotNil(t, uc.got)
			if tt.want == nil {
				assert.Nil(t, uc.got.CreditID)
			} else {
				require.NotNil(t, uc.got.CreditID)
				assert.Equal(t, *tt.want, *uc.got.CreditID)
			}
		})
	}
}

func TestHandle_CreditIDGarbageRejected(t *testing.T) {
	rec, uc := doRequest(t, bodyWithCredit(`"abc"`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_MissingUserID(t *testing.T) {
	uc := &fakeUseCase{}
	handler := middleware.Auth(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(bodyWithCredit("")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}

func ptrInt64(v int64) *int64 { return &v }
