package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/faizm10/DressToImpress-sub000/config"
	"github.com/faizm10/DressToImpress-sub000/internal/model"
	"github.com/faizm10/DressToImpress-sub000/internal/repository"
	pkgerrors "github.com/faizm10/DressToImpress-sub000/pkg/errors"
	"github.com/faizm10/DressToImpress-sub000/pkg/mailer"
	"github.com/faizm10/DressToImpress-sub000/pkg/storage"
)

// ── Mock StaffUserRepository ──

type mockStaffUserRepo struct {
	users map[string]*model.StaffUser
}

func newMockStaffUserRepo() *mockStaffUserRepo {
	return &mockStaffUserRepo{users: make(map[string]*model.StaffUser)}
}

func (m *mockStaffUserRepo) Create(_ context.Context, user *model.StaffUser) error {
	if user.StaffUserID == "" {
		user.StaffUserID = fmt.Sprintf("staff-%d", len(m.users)+1)
	}
	user.CreatedAt = time.Now()
	m.users[user.StaffUserID] = user
	return nil
}

func (m *mockStaffUserRepo) GetByID(_ context.Context, id string) (*model.StaffUser, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffUserRepo) GetByEmail(_ context.Context, email string) (*model.StaffUser, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffUserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLoginAt = &at
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	requests *mockAttireRequestRepo // optional, for GetWithRequests
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		student.StudentID = fmt.Sprintf("student-%d", len(m.students)+1)
	}
	student.Version = 1
	student.CreatedAt = time.Now()
	student.UpdatedAt = student.CreatedAt
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetWithRequests(ctx context.Context, id string) (*model.Student, error) {
	s, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.requests != nil {
		rows, _ := m.requests.ListAll(ctx, repository.AttireRequestFilter{StudentID: id})
		s.Requests = rows
	}
	return s, nil
}

func (m *mockStudentRepo) List(_ context.Context, filter repository.StudentFilter, offset, limit int) ([]model.Student, int64, error) {
	var all []model.Student
	for _, s := range m.students {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(s.FirstName+" "+s.LastName+" "+s.Email), strings.ToLower(filter.Query)) {
			continue
		}
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StudentID < all[j].StudentID })
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	cur, ok := m.students[student.StudentID]
	if !ok || cur.Version != student.Version {
		return pkgerrors.ErrOptimisticLock
	}
	student.Version++
	c := *student
	m.students[student.StudentID] = &c
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.students, id)
	return nil
}

// ── Mock AttireRepository ──

type mockAttireRepo struct {
	attires map[string]*model.Attire
	locked  []string
	failOn  string // "create" | "update" makes that write fail
}

func newMockAttireRepo() *mockAttireRepo {
	return &mockAttireRepo{attires: make(map[string]*model.Attire)}
}

func (m *mockAttireRepo) Create(_ context.Context, attire *model.Attire) error {
	if m.failOn == "create" {
		return errors.New("insert failed")
	}
	if attire.AttireID == "" {
		attire.AttireID = fmt.Sprintf("attire-%d", len(m.attires)+1)
	}
	attire.Version = 1
	attire.CreatedAt = time.Now()
	attire.UpdatedAt = attire.CreatedAt
	c := *attire
	m.attires[attire.AttireID] = &c
	return nil
}

func (m *mockAttireRepo) GetByID(_ context.Context, id string) (*model.Attire, error) {
	if a, ok := m.attires[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttireRepo) LockByID(ctx context.Context, id string) (*model.Attire, error) {
	m.locked = append(m.locked, id)
	return m.GetByID(ctx, id)
}

func (m *mockAttireRepo) List(_ context.Context, filter repository.AttireFilter, offset, limit int) ([]model.Attire, int64, error) {
	var all []model.Attire
	for _, a := range m.attires {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.ExcludeStatus != "" && a.Status == filter.ExcludeStatus {
			continue
		}
		if filter.Gender != "" && a.Gender != filter.Gender {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		if filter.Size != "" && a.Size != filter.Size {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(filter.Query)) {
			continue
		}
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].AttireID < all[j].AttireID })
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockAttireRepo) ListImagePaths(_ context.Context) ([]string, error) {
	var paths []string
	for _, a := range m.attires {
		if a.ImagePath != "" {
			paths = append(paths, a.ImagePath)
		}
	}
	return paths, nil
}

func (m *mockAttireRepo) Update(_ context.Context, attire *model.Attire) error {
	if m.failOn == "update" {
		return errors.New("update failed")
	}
	cur, ok := m.attires[attire.AttireID]
	if !ok || cur.Version != attire.Version {
		return pkgerrors.ErrOptimisticLock
	}
	attire.Version++
	c := *attire
	m.attires[attire.AttireID] = &c
	return nil
}

func (m *mockAttireRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.attires, id)
	return nil
}

// ── Mock AttireRequestRepository ──

type mockAttireRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*model.AttireRequest
	seq      int
	students *mockStudentRepo
	attires  *mockAttireRepo
	updates  int
}

func newMockAttireRequestRepo(students *mockStudentRepo, attires *mockAttireRepo) *mockAttireRequestRepo {
	return &mockAttireRequestRepo{
		requests: make(map[string]*model.AttireRequest),
		students: students,
		attires:  attires,
	}
}

// joined returns a detached copy with Student and Attire filled in
func (m *mockAttireRequestRepo) joined(r *model.AttireRequest) model.AttireRequest {
	c := *r
	c.Student, c.Attire = nil, nil
	if m.students != nil {
		if s, ok := m.students.students[c.StudentID]; ok {
			sc := *s
			c.Student = &sc
		}
	}
	if m.attires != nil {
		if a, ok := m.attires.attires[c.AttireID]; ok {
			ac := *a
			c.Attire = &ac
		}
	}
	return c
}

func (m *mockAttireRequestRepo) Create(_ context.Context, req *model.AttireRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if req.AttireRequestID == "" {
		m.seq++
		req.AttireRequestID = fmt.Sprintf("request-%d", m.seq)
	}
	req.Version = 1
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	c := *req
	c.Student, c.Attire = nil, nil
	m.requests[req.AttireRequestID] = &c
	return nil
}

func (m *mockAttireRequestRepo) GetByID(_ context.Context, id string) (*model.AttireRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.requests[id]; ok {
		c := m.joined(r)
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttireRequestRepo) match(r *model.AttireRequest, filter repository.AttireRequestFilter) bool {
	if filter.Status != "" && r.Status != filter.Status {
		return false
	}
	if filter.StudentID != "" && r.StudentID != filter.StudentID {
		return false
	}
	if filter.AttireID != "" && r.AttireID != filter.AttireID {
		return false
	}
	if filter.To != nil && r.StartDate.After(*filter.To) {
		return false
	}
	if filter.From != nil && toBooking(r).BufferUntil().Before(*filter.From) {
		return false
	}
	return true
}

func (m *mockAttireRequestRepo) ListAll(_ context.Context, filter repository.AttireRequestFilter) ([]model.AttireRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AttireRequest
	for _, r := range m.requests {
		if m.match(r, filter) {
			out = append(out, m.joined(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].AttireRequestID < out[j].AttireRequestID
	})
	return out, nil
}

func (m *mockAttireRequestRepo) List(ctx context.Context, filter repository.AttireRequestFilter, offset, limit int) ([]model.AttireRequest, int64, error) {
	all, _ := m.ListAll(ctx, filter)
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockAttireRequestRepo) ListByAttire(ctx context.Context, attireID string) ([]model.AttireRequest, error) {
	return m.ListAll(ctx, repository.AttireRequestFilter{AttireID: attireID})
}

func (m *mockAttireRequestRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int64)
	for _, r := range m.requests {
		counts[r.Status]++
	}
	return counts, nil
}

func (m *mockAttireRequestRepo) Update(_ context.Context, req *model.AttireRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.requests[req.AttireRequestID]
	if !ok || cur.Version != req.Version {
		return pkgerrors.ErrOptimisticLock
	}
	req.Version++
	c := *req
	c.Student, c.Attire = nil, nil
	m.requests[req.AttireRequestID] = &c
	m.updates++
	return nil
}

func (m *mockAttireRequestRepo) Delete(_ context.Context, id string, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.requests, id)
	return nil
}

func (m *mockAttireRequestRepo) get(id string) *model.AttireRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[id]
}

// ── Mock ContentRepository ──

type mockContentRepo struct {
	rows []model.HomePageContent
}

func (m *mockContentRepo) Create(_ context.Context, content *model.HomePageContent) error {
	content.ContentID = fmt.Sprintf("content-%d", len(m.rows)+1)
	content.UpdatedAt = time.Now().Add(time.Duration(len(m.rows)) * time.Second)
	m.rows = append(m.rows, *content)
	return nil
}

func (m *mockContentRepo) GetLatest(_ context.Context) (*model.HomePageContent, error) {
	if len(m.rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	c := m.rows[len(m.rows)-1]
	return &c, nil
}

func (m *mockContentRepo) ListRecent(_ context.Context, limit int) ([]model.HomePageContent, error) {
	var out []model.HomePageContent
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.rows[i])
	}
	return out, nil
}

// ── Mock BlobStore ──

type mockBlobStore struct {
	mu         sync.Mutex
	objects    map[string]storage.Object
	data       map[string][]byte
	removed    []string
	failUpload bool
	failRemove bool
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{objects: make(map[string]storage.Object), data: make(map[string][]byte)}
}

func (m *mockBlobStore) put(path string, modified time.Time) {
	m.objects[path] = storage.Object{Path: path, Size: 1, LastModified: modified}
	m.data[path] = []byte{0}
}

func (m *mockBlobStore) Upload(_ context.Context, path string, body []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpload {
		return errors.New("bucket unavailable")
	}
	m.objects[path] = storage.Object{Path: path, Size: int64(len(body)), LastModified: time.Now()}
	m.data[path] = body
	return nil
}

func (m *mockBlobStore) Download(_ context.Context, path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[path]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *mockBlobStore) List(_ context.Context, prefix string) ([]storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.Object
	for p, o := range m.objects {
		if strings.HasPrefix(p, prefix) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockBlobStore) Remove(_ context.Context, paths ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRemove {
		return errors.New("remove failed")
	}
	for _, p := range paths {
		delete(m.objects, p)
		delete(m.data, p)
		m.removed = append(m.removed, p)
	}
	return nil
}

func (m *mockBlobStore) PublicURL(path string) string {
	if path == "" {
		return ""
	}
	return "/api/v1/files/" + path
}

func (m *mockBlobStore) has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[path]
	return ok
}

// ── Mock Mailer ──

type mockMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *mockMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// ── Mock Cache / TokenBlacklist ──

var errCacheMiss = errors.New("cache miss")

type mockCache struct {
	values map[string][]byte
	gets   int
}

func newMockCache() *mockCache {
	return &mockCache{values: make(map[string][]byte)}
}

func (m *mockCache) GetBytes(_ context.Context, key string) ([]byte, error) {
	m.gets++
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return nil, errCacheMiss
}

func (m *mockCache) SetBytes(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *mockCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type mockBlacklist struct {
	tokens map[string]time.Duration
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if m.tokens == nil {
		m.tokens = make(map[string]time.Duration)
	}
	m.tokens[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.tokens[jti]
	return ok, nil
}

// ── fixtures ──

func page[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL: 15 * time.Minute,
			Issuer:         "dress-for-success",
		},
		Storage: config.StorageConfig{ImageWidth: 64},
		Mail:    config.MailConfig{Provider: "none", FromName: "Dress for Success"},
		Redis:   config.RedisConfig{ContentTTL: time.Minute},
		Rental: config.RentalConfig{
			DefaultBufferDays: 7,
			PickupLocation:    "Career Centre, Room 110",
		},
		Jobs: config.JobsConfig{OrphanGracePeriod: time.Hour},
	}
}

type testRepos struct {
	staff    *mockStaffUserRepo
	students *mockStudentRepo
	attires  *mockAttireRepo
	requests *mockAttireRequestRepo
	content  *mockContentRepo
}

func newTestRepository() (*repository.Repository, *testRepos) {
	m := &testRepos{
		staff:    newMockStaffUserRepo(),
		students: newMockStudentRepo(),
		attires:  newMockAttireRepo(),
		content:  &mockContentRepo{},
	}
	m.requests = newMockAttireRequestRepo(m.students, m.attires)
	m.students.requests = m.requests
	repo := &repository.Repository{
		StaffUser:     m.staff,
		Student:       m.students,
		Attire:        m.attires,
		AttireRequest: m.requests,
		Content:       m.content,
	}
	return repo, m
}

func seedStudent(m *testRepos, status string) *model.Student {
	s := &model.Student{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		StudentNumber: "1100123",
		Email:         "ada@uoguelph.ca",
		Status:        status,
	}
	_ = m.students.Create(context.Background(), s)
	return s
}

func seedAttire(m *testRepos, name string) *model.Attire {
	a := &model.Attire{
		Name:      name,
		Size:      "M",
		Gender:    "Women",
		Category:  "Blazers",
		ImagePath: "attires/" + strings.ToLower(name) + ".jpg",
		Status:    "Ready for Rent",
	}
	_ = m.attires.Create(context.Background(), a)
	return a
}

func seedRequest(m *testRepos, studentID, attireID, start, end, status string, buffer *int) *model.AttireRequest {
	r := &model.AttireRequest{
		StudentID:  studentID,
		AttireID:   attireID,
		StartDate:  mustDate(start),
		EndDate:    mustDate(end),
		Status:     status,
		BufferDays: buffer,
	}
	_ = m.requests.Create(context.Background(), r)
	return r
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func intPtr(n int) *int { return &n }

func nopLogger() *zap.Logger { return zap.NewNop() }
