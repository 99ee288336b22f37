package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/lokalbooking/facility-booking-backend/internal/booking"
)

type stubBookingService struct {
	booking.Service
	report *booking.ConflictReport
}

func (s *stubBookingService) CheckConflict(_ context.Context, _ booking.CreateRequest) (*booking.ConflictReport, error) {
	return s.report, nil
}

func postConflictCheck(t *testing.T, svc booking.Service, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h := NewHandler(svc, nil, nil)
	r.POST("/bookings/conflict-check", h.CheckConflict)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/bookings/conflict-check", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCheckConflictEndpoint(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{
			"facility_id": "0f8fad5b-d9cb-469f-a165-70867728950e",
			"zone_id":     "7c9e6679-7425-40de-944b-e07fc1f90ae7",
			"start_date":  "2030-06-10",
			"time_slot":   "18:00-20:00",
			"mode":        "recurring",
			"actor_type":  "privat-person",
		}
	}

	t.Run("proposal missing its rule answers 200 with the flag", func(t *testing.T) {
		svc := &stubBookingService{report: &booking.ConflictReport{InvalidProposal: true}}

		rec := postConflictCheck(t, svc, base())
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ConflictResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.True(t, resp.InvalidProposal)
		require.False(t, resp.HasConflict)
		require.Empty(t, resp.ConflictingDates)
		require.Empty(t, resp.Alternatives)
		require.NotNil(t, resp.Recommendations)
	})

	t.Run("clean proposal answers 200 without the flag", func(t *testing.T) {
		svc := &stubBookingService{report: &booking.ConflictReport{}}

		body := base()
		body["mode"] = "one-time"

		rec := postConflictCheck(t, svc, body)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ConflictResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.False(t, resp.InvalidProposal)
		require.False(t, resp.HasConflict)
	})
}
