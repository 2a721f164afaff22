package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmssspace/na-predele--crm-sub000/internal/api"
	"github.com/dmssspace/na-predele--crm-sub000/internal/cache"
	"github.com/dmssspace/na-predele--crm-sub000/internal/schedule"
)

// fakeService подменяет бизнес-логику заранее заданными ответами.
type fakeService struct {
	booking *Booking
	session *schedule.Session
	visit   *Visit
	err     error
}

func (f *fakeService) BookSession(ctx context.Context, sessionID int, req BookSessionRequest) (*Booking, error) {
	return f.booking, f.err
}

func (f *fakeService) BookOnce(ctx context.Context, req OnceRequest) (*schedule.Session, *Booking, error) {
	return f.session, f.booking, f.err
}

func (f *fakeService) RecordVisit(ctx context.Context, bookingID int, req VisitRequest) (*Visit, error) {
	return f.visit, f.err
}

func (f *fakeService) Cancel(ctx context.Context, bookingID int, canceledBy string) error {
	return f.err
}

func (f *fakeService) ListBySession(ctx context.Context, sessionID int) ([]BookingWithDetails, error) {
	return nil, f.err
}

func (f *fakeService) ListVisits(ctx context.Context, page, limit int) ([]VisitWithDetails, int, error) {
	return nil, 0, f.err
}

func setupRouter(svc Service, c *cache.Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, c)

	r := gin.New()
	r.POST("/schedule/sessions/:id/book", h.BookSession)
	r.POST("/schedule/events/once", h.BookOnce)
	r.POST("/schedule/bookings/:id/visit", h.RecordVisit)
	r.POST("/schedule/bookings/:id/cancel", h.Cancel)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, api.Response) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp api.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

// Невидимая для клиента причина конфликта всегда одна и та же:
// тренер занят в это время.
func TestBookOnceTrainerBusyMessage(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	c := cache.New(rdb, time.Minute)

	r := setupRouter(&fakeService{err: ErrTrainerBusy}, c)

	w, resp := doJSON(t, r, http.MethodPost, "/schedule/events/once", OnceRequest{
		TrainerID:  3,
		CustomerID: 2,
		StartTime:  "2027-01-10T10:00:00Z",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, api.CodeBusy, resp.Error.Code)
	assert.Equal(t, "Trainer is busy at this time", resp.Error.Message)
}

func TestBookOnceBadTimeMessage(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	c := cache.New(rdb, time.Minute)

	r := setupRouter(&fakeService{err: ErrBadTime}, c)

	w, resp := doJSON(t, r, http.MethodPost, "/schedule/events/once", OnceRequest{
		TrainerID:  3,
		CustomerID: 2,
		StartTime:  "10 января",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, api.CodeBadTime, resp.Error.Code)
	assert.Equal(t, "Invalid time format", resp.Error.Message)
}

// Успешная запись сбрасывает кэши сеансов, броней и визитов —
// по одному проходу на группу.
func TestBookSessionInvalidatesCachesOnce(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.New(rdb, time.Minute)

	mock.ExpectKeys("cache:sessions:*").SetVal([]string{"cache:sessions:a", "cache:sessions:b"})
	mock.ExpectDel("cache:sessions:a", "cache:sessions:b").SetVal(2)
	mock.ExpectKeys("cache:bookings:*").SetVal([]string{"cache:bookings:a"})
	mock.ExpectDel("cache:bookings:a").SetVal(1)
	mock.ExpectKeys("cache:visits:*").SetVal([]string{})

	svc := &fakeService{booking: &Booking{ID: 1, SessionID: 5, CustomerID: 2, Status: StatusBooked}}
	r := setupRouter(svc, c)

	w, resp := doJSON(t, r, http.MethodPost, "/schedule/sessions/5/book", BookSessionRequest{CustomerID: 2})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, resp.Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookSessionFailureKeepsCaches(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.New(rdb, time.Minute)

	r := setupRouter(&fakeService{err: ErrSessionFull}, c)

	w, resp := doJSON(t, r, http.MethodPost, "/schedule/sessions/5/book", BookSessionRequest{CustomerID: 2})

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, api.CodeConflict, resp.Error.Code)
	// Ни одной операции с кэшем
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordVisitWithoutBody(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.New(rdb, time.Minute)

	mock.ExpectKeys("cache:bookings:*").SetVal([]string{})
	mock.ExpectKeys("cache:visits:*").SetVal([]string{})

	svc := &fakeService{visit: &Visit{ID: 1, BookingID: 1, IsCharged: false, VisitedAt: time.Now()}}
	r := setupRouter(svc, c)

	req := httptest.NewRequest(http.MethodPost, "/schedule/bookings/1/visit", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelNotFound(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	c := cache.New(rdb, time.Minute)

	r := setupRouter(&fakeService{err: ErrBookingNotFound}, c)

	w, resp := doJSON(t, r, http.MethodPost, "/schedule/bookings/99/cancel", CancelRequest{CanceledBy: CanceledByStaff})

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, api.CodeNotFound, resp.Error.Code)
}
