package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bakehouse/models"
	"bakehouse/services/availability"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAvailabilityService struct {
	windowFn     func(start, end string) ([]models.DateAvailability, error)
	defaultStart string
	defaultEnd   string
	admissibleFn func(date string) (bool, error)
	blockFn      func(date, reason string) error
	unblockFn    func(date string) error
}

func (m *mockAvailabilityService) WindowAvailability(start, end string) ([]models.DateAvailability, error) {
	if m.windowFn != nil {
		return m.windowFn(start, end)
	}
	return nil, nil
}
func (m *mockAvailabilityService) DefaultWindow() (string, string) {
	return m.defaultStart, m.defaultEnd
}
func (m *mockAvailabilityService) IsDateAdmissible(date string) (bool, error) {
	if m.admissibleFn != nil {
		return m.admissibleFn(date)
	}
	return true, nil
}
func (m *mockAvailabilityService) BlockDate(date, reason string) error {
	if m.blockFn != nil {
		return m.blockFn(date, reason)
	}
	return nil
}
func (m *mockAvailabilityService) UnblockDate(date string) error {
	if m.unblockFn != nil {
		return m.unblockFn(date)
	}
	return nil
}

func availabilityRouter(svc availability.AvailabilityService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAvailabilityHandler(svc)
	r := gin.New()
	r.GET("/api/availability", h.GetWindowAvailability)
	r.GET("/api/availability/:date", h.CheckDate)
	return r
}

func TestGetWindowAvailability(t *testing.T) {
	t.Run("explicit window", func(t *testing.T) {
		svc := &mockAvailabilityService{
			defaultStart: "2025-06-01",
			defaultEnd:   "2025-07-31",
			windowFn: func(start, end string) ([]models.DateAvailability, error) {
				assert.Equal(t, "2025-06-10", start)
				assert.Equal(t, "2025-06-11", end)
				return []models.DateAvailability{
					{Date: "2025-06-10", Status: models.DateAvailable, OrderCount: 1},
					{Date: "2025-06-11", Status: models.DateFull, OrderCount: 3},
				}, nil
			},
		}
		r := availabilityRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/availability?start=2025-06-10&end=2025-06-11", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Start string                    `json:"start"`
			End   string                    `json:"end"`
			Dates []models.DateAvailability `json:"dates"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "2025-06-10", body.Start)
		require.Len(t, body.Dates, 2)
		assert.Equal(t, models.DateFull, body.Dates[1].Status)
	})

	t.Run("bounds default to the booking window", func(t *testing.T) {
		var gotStart, gotEnd string
		svc := &mockAvailabilityService{
			defaultStart: "2025-06-01",
			defaultEnd:   "2025-07-31",
			windowFn: func(start, end string) ([]models.DateAvailability, error) {
				gotStart, gotEnd = start, end
				return []models.DateAvailability{}, nil
			},
		}
		r := availabilityRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2025-06-01", gotStart)
		assert.Equal(t, "2025-07-31", gotEnd)
	})

	t.Run("invalid window is a 400", func(t *testing.T) {
		svc := &mockAvailabilityService{
			windowFn: func(start, end string) ([]models.DateAvailability, error) {
				return nil, availability.ErrInvalidWindow
			},
		}
		r := availabilityRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability?start=2025-06-10&end=2025-06-01", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure is a 503, never an empty calendar", func(t *testing.T) {
		svc := &mockAvailabilityService{
			windowFn: func(start, end string) ([]models.DateAvailability, error) {
				return nil, errors.New("mongo: connection refused")
			},
		}
		r := availabilityRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability?start=2025-06-01&end=2025-06-03", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), `"dates"`)
	})
}

func TestCheckDate(t *testing.T) {
	t.Run("admissible", func(t *testing.T) {
		r := availabilityRouter(&mockAvailabilityService{})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability/2025-06-10", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Date       string `json:"date"`
			Admissible bool   `json:"admissible"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "2025-06-10", body.Date)
		assert.True(t, body.Admissible)
	})

	t.Run("invalid date is a 400", func(t *testing.T) {
		svc := &mockAvailabilityService{admissibleFn: func(date string) (bool, error) {
			return false, availability.ErrInvalidDate
		}}
		r := availabilityRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability/junk", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure is a 503", func(t *testing.T) {
		svc := &mockAvailabilityService{admissibleFn: func(date string) (bool, error) {
			return false, errors.New("timeout")
		}}
		r := availabilityRouter(svc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability/2025-06-10", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
