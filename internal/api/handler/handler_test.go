package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/faizm10/DressToImpress-sub000/internal/api/middleware"
	"github.com/faizm10/DressToImpress-sub000/internal/dto"
	"github.com/faizm10/DressToImpress-sub000/internal/model"
	"github.com/faizm10/DressToImpress-sub000/internal/service"
	pkgerrors "github.com/faizm10/DressToImpress-sub000/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.RegisterValidators(); err != nil {
		panic(err)
	}
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── AuthService ──

type mockAuthService struct {
	loginResult *dto.TokenResponse
	loginErr    error
	meResult    *dto.StaffUserResponse
	meErr       error
	logoutErr   error
	loggedOut   string
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.StaffUserResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) Logout(_ context.Context, jti string, _ time.Time) error {
	m.loggedOut = jti
	return m.logoutErr
}
func (m *mockAuthService) CreateStaffUser(_ context.Context, _ *dto.CreateStaffUserRequest) (*dto.StaffUserResponse, error) {
	return nil, nil
}

// ── StudentService ──

type mockStudentService struct {
	result    *dto.StudentResponse
	detail    *dto.StudentDetailResponse
	list      []dto.StudentResponse
	total     int64
	err       error
	gotCaller string
}

func (m *mockStudentService) Create(_ context.Context, _ *dto.CreateStudentRequest, callerID string) (*dto.StudentResponse, error) {
	m.gotCaller = callerID
	return m.result, m.err
}
func (m *mockStudentService) GetByID(_ context.Context, _ string) (*dto.StudentDetailResponse, error) {
	return m.detail, m.err
}
func (m *mockStudentService) List(_ context.Context, _ *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	return m.list, m.total, m.err
}
func (m *mockStudentService) Update(_ context.Context, _ string, _ *dto.UpdateStudentRequest, _ string) (*dto.StudentResponse, error) {
	return m.result, m.err
}
func (m *mockStudentService) Delete(_ context.Context, _ string, _ string) error {
	return m.err
}

// ── AttireService ──

type mockAttireService struct {
	result    *dto.AttireResponse
	list      []dto.AttireResponse
	total     int64
	err       error
	gotImage  []byte
	publicHit bool
	files     map[string]string
}

func (m *mockAttireService) Create(_ context.Context, _ *dto.CreateAttireRequest, image []byte, _ string) (*dto.AttireResponse, error) {
	m.gotImage = image
	if len(image) == 0 {
		return nil, service.ErrImageRequired
	}
	return m.result, m.err
}
func (m *mockAttireService) GetByID(_ context.Context, _ string) (*dto.AttireResponse, error) {
	return m.result, m.err
}
func (m *mockAttireService) List(_ context.Context, _ *dto.AttireListRequest) ([]dto.AttireResponse, int64, error) {
	return m.list, m.total, m.err
}
func (m *mockAttireService) ListPublic(_ context.Context, _ *dto.AttireListRequest) ([]dto.AttireResponse, int64, error) {
	m.publicHit = true
	return m.list, m.total, m.err
}
func (m *mockAttireService) Update(_ context.Context, _ string, _ *dto.UpdateAttireRequest, image []byte, _ string) (*dto.AttireResponse, error) {
	m.gotImage = image
	return m.result, m.err
}
func (m *mockAttireService) Delete(_ context.Context, _ string, _ string) error {
	return m.err
}
func (m *mockAttireService) Categories() dto.CategoriesResponse {
	return dto.CategoriesResponse{Sizes: []string{"S", "M"}, Categories: map[string][]string{"Women": {"Blazers"}}}
}
func (m *mockAttireService) OpenImage(_ context.Context, path string) (io.ReadCloser, error) {
	body, ok := m.files[path]
	if !ok {
		return nil, service.ErrFileNotFound
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

// ── AttireRequestService ──

type mockRequestService struct {
	result       *dto.AttireRequestResponse
	buffer       *dto.BufferUpdateResponse
	availability *dto.AvailabilityResponse
	list         []dto.AttireRequestResponse
	total        int64
	err          error

	created  *dto.CreateAttireRequestRequest
	callerID string
}

func (m *mockRequestService) Create(_ context.Context, req *dto.CreateAttireRequestRequest, callerID string) (*dto.AttireRequestResponse, error) {
	m.created, m.callerID = req, callerID
	return m.result, m.err
}
func (m *mockRequestService) GetByID(_ context.Context, _ string) (*dto.AttireRequestResponse, error) {
	return m.result, m.err
}
func (m *mockRequestService) List(_ context.Context, _ *dto.AttireRequestListRequest) ([]dto.AttireRequestResponse, int64, error) {
	return m.list, m.total, m.err
}
func (m *mockRequestService) UpdateStatus(_ context.Context, _ string, _ *dto.UpdateStatusRequest, _ string) (*dto.AttireRequestResponse, error) {
	return m.result, m.err
}
func (m *mockRequestService) UpdateBuffer(_ context.Context, _ string, _ *dto.UpdateBufferRequest, _ string) (*dto.BufferUpdateResponse, error) {
	return m.buffer, m.err
}
func (m *mockRequestService) SwitchAttire(_ context.Context, _ string, _ *dto.SwitchAttireRequest, _ string) (*dto.AttireRequestResponse, error) {
	return m.result, m.err
}
func (m *mockRequestService) Delete(_ context.Context, _ string, _ string) error {
	return m.err
}
func (m *mockRequestService) Availability(_ context.Context, _ string, _ *dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	return m.availability, m.err
}

// ── CalendarService ──

type mockCalendarService struct {
	month *dto.CalendarMonthResponse
	ics   []byte
	err   error
}

func (m *mockCalendarService) Month(_ context.Context, _ *dto.CalendarMonthRequest) (*dto.CalendarMonthResponse, error) {
	return m.month, m.err
}
func (m *mockCalendarService) ICS(_ context.Context, _ *dto.CalendarFilterRequest) ([]byte, error) {
	return m.ics, m.err
}

// ── ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportRequests(_ context.Context, _ *dto.CalendarFilterRequest) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── ContentService ──

type mockContentService struct {
	content *dto.HomePageContent
	version *dto.ContentVersionResponse
	history []dto.ContentVersionResponse
	err     error
}

func (m *mockContentService) Get(_ context.Context) (*dto.HomePageContent, error) {
	return m.content, m.err
}
func (m *mockContentService) Save(_ context.Context, _ *dto.HomePageContent, _ string) (*dto.ContentVersionResponse, error) {
	return m.version, m.err
}
func (m *mockContentService) Reset(_ context.Context, _ string) (*dto.ContentVersionResponse, error) {
	return m.version, m.err
}
func (m *mockContentService) History(_ context.Context) ([]dto.ContentVersionResponse, error) {
	return m.history, m.err
}

// ── NotificationService ──

type mockNotificationService struct {
	err error
}

func (m *mockNotificationService) SendEmail(_ context.Context, _ *dto.SendEmailRequest) error {
	return m.err
}
func (m *mockNotificationService) NotifyReadyForPickup(_ context.Context, _ *model.AttireRequest) error {
	return m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set(middleware.CtxStaffUserID, "staff-1")
	c.Set(middleware.CtxEmail, "staff@uoguelph.ca")
	c.Set(middleware.CtxTokenID, "test-jti")
	c.Set(middleware.CtxTokenExpiry, time.Now().Add(time.Hour))
}

// withAuth wraps a handler as if JWTAuth had run
func withAuth(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		setAuth(c)
		h(c)
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func serve(method, route, target string, body io.Reader, contentType string, h gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, route, h)
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func serveJSON(method, route, target string, v interface{}, h gin.HandlerFunc) *httptest.ResponseRecorder {
	return serve(method, route, target, jsonBody(v), "application/json", h)
}

func code(w *httptest.ResponseRecorder) int64 {
	return gjson.GetBytes(w.Body.Bytes(), "code").Int()
}

func multipartForm(t *testing.T, fields map[string]string, image []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// ═══════════════════════════════════════════════════════════
// AuthHandler
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginResult: &dto.TokenResponse{AccessToken: "tok", ExpiresIn: 3600}})

	w := serveJSON("POST", "/auth/login", "/auth/login", dto.LoginRequest{Email: "staff@uoguelph.ca", Password: "secret123"}, h.Login)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, code(w))
	assert.Equal(t, "tok", gjson.GetBytes(w.Body.Bytes(), "data.access_token").String())
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("POST", "/auth/login", "/auth/login", strings.NewReader("not json"), "application/json", h.Login)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 10001, code(w))
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := serveJSON("POST", "/auth/login", "/auth/login", dto.LoginRequest{Email: "staff@uoguelph.ca", Password: "wrong"}, h.Login)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.EqualValues(t, 10002, code(w))
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := serve("GET", "/auth/me", "/auth/me", nil, "", h.Me)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout_RevokesCurrentToken(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock)

	w := serve("POST", "/auth/logout", "/auth/logout", nil, "", withAuth(h.Logout))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-jti", mock.loggedOut)
}

// ═══════════════════════════════════════════════════════════
// StudentHandler
// ═══════════════════════════════════════════════════════════

func TestStudentHandler_Create(t *testing.T) {
	mock := &mockStudentService{result: &dto.StudentResponse{ID: "s1", FullName: "Ada Lovelace"}}
	h := NewStudentHandler(mock)

	w := serveJSON("POST", "/students", "/students", dto.CreateStudentRequest{
		FirstName: "Ada", LastName: "Lovelace", StudentNumber: "1234567", Email: "ada@uoguelph.ca",
	}, withAuth(h.Create))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "staff-1", mock.gotCaller)
}

func TestStudentHandler_Create_RejectsUnknownStatus(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{})

	w := serveJSON("POST", "/students", "/students", dto.CreateStudentRequest{
		FirstName: "Ada", LastName: "Lovelace", StudentNumber: "1234567", Email: "ada@uoguelph.ca", Status: "Graduated",
	}, withAuth(h.Create))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 10001, code(w))
}

func TestStudentHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int64
	}{
		{"not found", service.ErrStudentNotFound, http.StatusNotFound, 20001},
		{"stale version", pkgerrors.ErrOptimisticLock, http.StatusConflict, 10006},
		{"unexpected", io.ErrUnexpectedEOF, http.StatusInternalServerError, 50000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewStudentHandler(&mockStudentService{err: tc.err})

			w := serve("GET", "/students/:id", "/students/s1", nil, "", withAuth(h.Get))

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantCode, code(w))
		})
	}
}

func TestStudentHandler_List_Paginates(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{list: []dto.StudentResponse{{ID: "s1"}, {ID: "s2"}}, total: 45})

	w := serve("GET", "/students", "/students?page=2&page_size=20", nil, "", withAuth(h.List))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.Bytes()
	assert.EqualValues(t, 2, gjson.GetBytes(body, "data.list.#").Int())
	assert.EqualValues(t, 3, gjson.GetBytes(body, "data.pagination.total_pages").Int())
	assert.EqualValues(t, 2, gjson.GetBytes(body, "data.pagination.page").Int())
}

// ═══════════════════════════════════════════════════════════
// AttireHandler / CatalogHandler / FileHandler
// ═══════════════════════════════════════════════════════════

var attireFields = map[string]string{"name": "Navy Blazer", "size": "M", "gender": "Women", "category": "Blazers"}

func TestAttireHandler_Create_Multipart(t *testing.T) {
	mock := &mockAttireService{result: &dto.AttireResponse{ID: "a1", Name: "Navy Blazer"}}
	h := NewAttireHandler(mock, 1<<20)

	body, ct := multipartForm(t, attireFields, []byte("png-bytes"))
	w := serve("POST", "/attires", "/attires", body, ct, withAuth(h.Create))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []byte("png-bytes"), mock.gotImage)
}

func TestAttireHandler_Create_MissingImage(t *testing.T) {
	h := NewAttireHandler(&mockAttireService{}, 1<<20)

	body, ct := multipartForm(t, attireFields, nil)
	w := serve("POST", "/attires", "/attires", body, ct, withAuth(h.Create))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 30002, code(w))
}

func TestAttireHandler_Create_ImageTooLarge(t *testing.T) {
	h := NewAttireHandler(&mockAttireService{}, 8)

	body, ct := multipartForm(t, attireFields, bytes.Repeat([]byte{1}, 64))
	w := serve("POST", "/attires", "/attires", body, ct, withAuth(h.Create))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.EqualValues(t, 10007, code(w))
}

func TestAttireHandler_Create_RejectsUnknownSize(t *testing.T) {
	h := NewAttireHandler(&mockAttireService{}, 1<<20)

	fields := map[string]string{"name": "Navy Blazer", "size": "XXXL", "gender": "Women", "category": "Blazers"}
	body, ct := multipartForm(t, fields, []byte("png"))
	w := serve("POST", "/attires", "/attires", body, ct, withAuth(h.Create))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttireHandler_Update_WithoutImage(t *testing.T) {
	mock := &mockAttireService{result: &dto.AttireResponse{ID: "a1"}}
	h := NewAttireHandler(mock, 1<<20)

	body, ct := multipartForm(t, map[string]string{"name": "Black Blazer", "version": "1"}, nil)
	w := serve("PATCH", "/attires/:id", "/attires/a1", body, ct, withAuth(h.Update))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, mock.gotImage)
}

func TestCatalogHandler_ListUsesPublicCatalog(t *testing.T) {
	mock := &mockAttireService{list: []dto.AttireResponse{{ID: "a1"}}, total: 1}
	h := NewCatalogHandler(mock, &mockRequestService{})

	w := serve("GET", "/catalog/attires", "/catalog/attires", nil, "", h.List)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mock.publicHit)
}

func TestCatalogHandler_Request(t *testing.T) {
	mock := &mockRequestService{result: &dto.AttireRequestResponse{ID: "r1", Status: "Requested"}}
	h := NewCatalogHandler(&mockAttireService{}, mock)

	req := validRequest
	req.Status = "Out for Rent"
	req.BufferDays = new(int)
	w := serveJSON("POST", "/catalog/requests", "/catalog/requests", req, h.Request)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "r1", gjson.GetBytes(w.Body.Bytes(), "data.id").String())
	require.NotNil(t, mock.created)
	assert.Equal(t, "Requested", mock.created.Status, "students cannot choose the status")
	assert.Nil(t, mock.created.BufferDays, "students cannot choose the buffer")
	assert.Empty(t, mock.callerID)
}

func TestCatalogHandler_Request_Overlap(t *testing.T) {
	h := NewCatalogHandler(&mockAttireService{}, &mockRequestService{err: service.ErrRequestOverlap})

	w := serveJSON("POST", "/catalog/requests", "/catalog/requests", validRequest, h.Request)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.EqualValues(t, 40002, code(w))
}

func TestCatalogHandler_Request_MissingStudent(t *testing.T) {
	h := NewCatalogHandler(&mockAttireService{}, &mockRequestService{})

	req := validRequest
	req.StudentID = ""
	w := serveJSON("POST", "/catalog/requests", "/catalog/requests", req, h.Request)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandler_Availability(t *testing.T) {
	h := NewCatalogHandler(&mockAttireService{}, &mockRequestService{availability: &dto.AvailabilityResponse{
		AttireID: "a1", UnavailableDates: []string{"2026-03-05"}, BufferDates: []string{"2026-03-06"},
	}})

	w := serve("GET", "/catalog/attires/:id/availability", "/catalog/attires/a1/availability?from=2026-03-01&to=2026-03-31", nil, "", h.Availability)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026-03-05", gjson.GetBytes(w.Body.Bytes(), "data.unavailable_dates.0").String())
}

func TestCatalogHandler_Availability_BadDate(t *testing.T) {
	h := NewCatalogHandler(&mockAttireService{}, &mockRequestService{})

	w := serve("GET", "/catalog/attires/:id/availability", "/catalog/attires/a1/availability?from=03/01/2026&to=2026-03-31", nil, "", h.Availability)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFileHandler_Image(t *testing.T) {
	h := NewFileHandler(&mockAttireService{files: map[string]string{"attires/navy.jpg": "jpeg-bytes"}})

	w := serve("GET", "/files/*path", "/files/attires/navy.jpg", nil, "", h.Image)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "immutable")
	assert.Equal(t, "jpeg-bytes", w.Body.String())
}

func TestFileHandler_NotFound(t *testing.T) {
	h := NewFileHandler(&mockAttireService{})

	w := serve("GET", "/files/*path", "/files/attires/missing.jpg", nil, "", h.Image)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.EqualValues(t, 50002, code(w))
}

// ═══════════════════════════════════════════════════════════
// AttireRequestHandler
// ═══════════════════════════════════════════════════════════

var validRequest = dto.CreateAttireRequestRequest{
	StudentID: "6f1c1a52-3d5e-4c39-9c1f-0d2a1b3c4d5e",
	AttireID:  "7a2d2b63-4e6f-4d4a-8d20-1e3b2c4d5e6f",
	StartDate: "2026-03-02",
	EndDate:   "2026-03-06",
}

func TestAttireRequestHandler_Create(t *testing.T) {
	h := NewAttireRequestHandler(&mockRequestService{result: &dto.AttireRequestResponse{ID: "r1", Status: "Requested"}})

	w := serveJSON("POST", "/requests", "/requests", validRequest, withAuth(h.Create))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Requested", gjson.GetBytes(w.Body.Bytes(), "data.status").String())
}

func TestAttireRequestHandler_Create_Overlap(t *testing.T) {
	h := NewAttireRequestHandler(&mockRequestService{err: service.ErrRequestOverlap})

	w := serveJSON("POST", "/requests", "/requests", validRequest, withAuth(h.Create))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.EqualValues(t, 40002, code(w))
}

func TestAttireRequestHandler_Create_BadDateFormat(t *testing.T) {
	h := NewAttireRequestHandler(&mockRequestService{})

	req := validRequest
	req.StartDate = "March 2"
	w := serveJSON("POST", "/requests", "/requests", req, withAuth(h.Create))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 10001, code(w))
}

func TestAttireRequestHandler_UpdateStatus_AcceptsLegacySpelling(t *testing.T) {
	h := NewAttireRequestHandler(&mockRequestService{result: &dto.AttireRequestResponse{ID: "r1", Status: "Waiting for Pick-up"}})

	w := serveJSON("PATCH", "/requests/:id/status", "/requests/r1/status",
		dto.UpdateStatusRequest{Status: "waiting for pickup", Version: 1}, withAuth(h.UpdateStatus))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAttireRequestHandler_UpdateStatus_UnknownStatus(t *testing.T) {
	h := NewAttireRequestHandler(&mockRequestService{})

	w := serveJSON("PATCH", "/requests/:id/status", "/requests/r1/status",
		dto.UpdateStatusRequest{Status: "Lost", Version: 1}, withAuth(h.UpdateStatus))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttireRequestHandler_UpdateBuffer(t *testing.T) {
	days := 3
	cases := []struct {
		name       string
		queued     bool
		wantStatus int
	}{
		{"written now", false, http.StatusOK},
		{"debounced", true, http.StatusAccepted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAttireRequestHandler(&mockRequestService{buffer: &dto.BufferUpdateResponse{ID: "r1", BufferDays: 3, Queued: tc.queued}})

			w := serveJSON("PATCH", "/requests/:id/buffer", "/requests/r1/buffer",
				dto.UpdateBufferRequest{BufferDays: &days, Version: 1}, withAuth(h.UpdateBuffer))

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.queued, gjson.GetBytes(w.Body.Bytes(), "data.queued").Bool())
		})
	}
}

func TestAttireRequestHandler_Delete_Locked(t *testing.T) {
	h := NewAttireRequestHandler(&mockRequestService{err: service.ErrRequestLocked})

	w := serve("DELETE", "/requests/:id", "/requests/r1", nil, "", withAuth(h.Delete))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.EqualValues(t, 40003, code(w))
}

// ═══════════════════════════════════════════════════════════
// Calendar / Export / Content / Notification
// ═══════════════════════════════════════════════════════════

func TestCalendarHandler_Month(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{month: &dto.CalendarMonthResponse{Year: 2026, Month: 3, Title: "March 2026"}})

	w := serve("GET", "/calendar", "/calendar?year=2026&month=3", nil, "", withAuth(h.Month))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "March 2026", gjson.GetBytes(w.Body.Bytes(), "data.title").String())
}

func TestCalendarHandler_Month_InvalidMonth(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{})

	w := serve("GET", "/calendar", "/calendar?year=2026&month=13", nil, "", withAuth(h.Month))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarHandler_ICS(t *testing.T) {
	h := NewCalendarHandler(&mockCalendarService{ics: []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")})

	w := serve("GET", "/calendar.ics", "/calendar.ics", nil, "", withAuth(h.ICS))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".ics")
}

func TestExportHandler_ExportRequests(t *testing.T) {
	h := NewExportHandler(&mockExportService{buf: bytes.NewBufferString("xlsx"), filename: "attire-requests_2026-03-01.xlsx"})

	w := serve("GET", "/export/requests", "/export/requests", nil, "", withAuth(h.ExportRequests))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename*=UTF-8''attire-requests_2026-03-01.xlsx", w.Header().Get("Content-Disposition"))
}

func TestExportHandler_Failure(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportGenerateFail})

	w := serve("GET", "/export/requests", "/export/requests", nil, "", withAuth(h.ExportRequests))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestContentHandler_GetIsPublic(t *testing.T) {
	content := service.DefaultHomePageContent()
	h := NewContentHandler(&mockContentService{content: &content})

	w := serve("GET", "/content/home", "/content/home", nil, "", h.Get)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, gjson.GetBytes(w.Body.Bytes(), "data.hero.title").String())
}

func TestContentHandler_Save_Invalid(t *testing.T) {
	h := NewContentHandler(&mockContentService{err: service.ErrInvalidContent})

	w := serveJSON("POST", "/content/home", "/content/home", service.DefaultHomePageContent(), withAuth(h.Save))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 50001, code(w))
}

func TestContentHandler_Save(t *testing.T) {
	h := NewContentHandler(&mockContentService{version: &dto.ContentVersionResponse{ID: "content-2"}})

	for _, method := range []string{"POST", "PUT"} {
		w := serveJSON(method, "/content/home", "/content/home", service.DefaultHomePageContent(), withAuth(h.Save))

		assert.Equal(t, http.StatusOK, w.Code, method)
		assert.Equal(t, "content-2", gjson.GetBytes(w.Body.Bytes(), "data.id").String(), method)
	}
}

func TestContentHandler_Save_BindFailsOnMissingSection(t *testing.T) {
	h := NewContentHandler(&mockContentService{})

	w := serveJSON("POST", "/content/home", "/content/home", map[string]interface{}{"hero": map[string]string{"title": "x"}}, withAuth(h.Save))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationHandler_SendEmail(t *testing.T) {
	req := dto.SendEmailRequest{
		To: "ada@uoguelph.ca", Template: "ready_for_pickup", StudentName: "Ada",
		AttireName: "Navy Blazer", StartDate: "2026-03-02", EndDate: "2026-03-06",
	}

	t.Run("sent", func(t *testing.T) {
		h := NewNotificationHandler(&mockNotificationService{})
		w := serveJSON("POST", "/notifications/email", "/notifications/email", req, withAuth(h.SendEmail))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, gjson.GetBytes(w.Body.Bytes(), "data.success").Bool())
	})

	t.Run("delivery failed", func(t *testing.T) {
		h := NewNotificationHandler(&mockNotificationService{err: service.ErrEmailFailed})
		w := serveJSON("POST", "/notifications/email", "/notifications/email", req, withAuth(h.SendEmail))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.False(t, gjson.GetBytes(w.Body.Bytes(), "data.success").Bool())
		assert.NotEmpty(t, gjson.GetBytes(w.Body.Bytes(), "data.error").String())
	})

	t.Run("unknown template", func(t *testing.T) {
		bad := req
		bad.Template = "welcome"
		h := NewNotificationHandler(&mockNotificationService{})
		w := serveJSON("POST", "/notifications/email", "/notifications/email", bad, withAuth(h.SendEmail))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
