package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/memodb-io/rentspot/internal/modules/model"
	"github.com/memodb-io/rentspot/internal/modules/serializer"
	"github.com/memodb-io/rentspot/internal/modules/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBookingHandler_CreateBooking(t *testing.T) {
	start := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           string
		setup          func(*MockBookingService)
		expectedStatus int
		expectedErrors map[string]string
	}{
		{
			name: "booked",
			body: `{"startDate":"2030-06-01","endDate":"2030-06-04"}`,
			setup: func(svc *MockBookingService) {
				svc.On("Create", mock.Anything, int64(1), service.CreateBookingInput{StartDate: start, EndDate: end}).
					Return(&model.Booking{ID: 1, SpotID: 1}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "bad date format",
			body:           `{"startDate":"06/01/2030","endDate":"2030-06-04"}`,
			setup:          func(svc *MockBookingService) {},
			expectedStatus: http.StatusBadRequest,
			expectedErrors: map[string]string{"startDate": "must be a date formatted as YYYY-MM-DD"},
		},
		{
			name: "end before start",
			body: `{"startDate":"2030-06-04","endDate":"2030-06-01"}`,
			setup: func(svc *MockBookingService) {
				svc.On("Create", mock.Anything, int64(1), mock.Anything).Return(nil, service.ErrInvalidDates)
			},
			expectedStatus: http.StatusBadRequest,
			expectedErrors: map[string]string{"endDate": "endDate cannot be on or before startDate"},
		},
		{
			name: "overlap",
			body: `{"startDate":"2030-06-01","endDate":"2030-06-04"}`,
			setup: func(svc *MockBookingService) {
				svc.On("Create", mock.Anything, int64(1), mock.Anything).Return(nil, service.ErrBookingConflict)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockBookingService{}
			tt.setup(svc)
			router := setupRouter()
			router.POST("/api/spots/:id/bookings", NewBookingHandler(svc).CreateBooking)

			req := httptest.NewRequest(http.MethodPost, "/api/spots/1/bookings", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedErrors != nil {
				var res serializer.Response
				require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &res))
				assert.Equal(t, tt.expectedErrors, res.Errors)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestBookingHandler_ListAndDelete(t *testing.T) {
	svc := &MockBookingService{}
	svc.On("ListBySpot", mock.Anything, int64(1)).Return([]model.Booking{{ID: 1}, {ID: 2}}, nil)
	svc.On("Delete", mock.Anything, int64(1)).Return(service.ErrBookingStarted)
	svc.On("Delete", mock.Anything, int64(2)).Return(nil)
	svc.On("Delete", mock.Anything, int64(3)).Return(service.ErrBookingNotFound)

	h := NewBookingHandler(svc)
	router := setupRouter()
	router.GET("/api/spots/:id/bookings", h.ListSpotBookings)
	router.DELETE("/api/bookings/:id", h.DeleteBooking)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/spots/1/bookings", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string][]map[string]any
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body["Bookings"], 2)

	for id, status := range map[string]int{"1": http.StatusForbidden, "2": http.StatusOK, "3": http.StatusNotFound} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/bookings/"+id, nil))
		assert.Equal(t, status, w.Code, id)
	}
	svc.AssertExpectations(t)
}
