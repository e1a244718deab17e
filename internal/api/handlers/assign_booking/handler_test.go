package assign_booking

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DCMS-ScheduleService/internal/api/middleware"
	"github.com/m04kA/DCMS-ScheduleService/internal/service/assignments"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	lastReq assignments.AssignRequest
	err     error
	called  bool
}

func (s *fakeService) Assign(_ context.Context, req assignments.AssignRequest) error {
	s.called = true
	s.lastReq = req
	return s.err
}

func newRouter(svc *fakeService) *mux.Router {
	handler := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	sub := r.PathPrefix("/api/v1").Subrouter()
	sub.Use(middleware.Auth)
	sub.HandleFunc("/locations/{locationId}/slots/{slotId}/assignments", handler.Handle).Methods(http.MethodPost)
	return r
}

func TestHandleAssign(t *testing.T) {
	svc := &fakeService{}
	router := newRouter(svc)

	body := bytes.NewBufferString(`{"bookingId":"b1"}`)
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/locations/loc1/slots/shore-2026-07-01-09-30/assignments", body)
	req.Header.Set("X-User-ID", "op1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, svc.called)
	assert.Equal(t, "loc1", svc.lastReq.LocationID)
	assert.Equal(t, "op1", svc.lastReq.OperatorID)
	assert.Equal(t, "b1", svc.lastReq.BookingID)
	assert.Equal(t, "shore-2026-07-01-09-30", svc.lastReq.SlotID.Encode())
}

func TestHandleAssignMissingOperator(t *testing.T) {
	svc := &fakeService{}
	router := newRouter(svc)

	body := bytes.NewBufferString(`{"bookingId":"b1"}`)
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/locations/loc1/slots/shore-2026-07-01-09-30/assignments", body)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, svc.called)
}

func TestHandleAssignInvalidSlot(t *testing.T) {
	svc := &fakeService{}
	router := newRouter(svc)

	body := bytes.NewBufferString(`{"bookingId":"b1"}`)
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/locations/loc1/slots/mole-2026-07-01-09-30/assignments", body)
	req.Header.Set("X-User-ID", "op1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, svc.called)
}

func TestHandleAssignLaneMismatch(t *testing.T) {
	svc := &fakeService{err: assignments.ErrLaneMismatch}
	router := newRouter(svc)

	body := bytes.NewBufferString(`{"bookingId":"b1"}`)
	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/locations/loc1/slots/boat-whitey-morning/assignments", body)
	req.Header.Set("X-User-ID", "op1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
