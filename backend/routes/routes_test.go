package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vamsidulam/aiprofessor-hub/backend/config"
	"github.com/vamsidulam/aiprofessor-hub/backend/generator"
	"github.com/vamsidulam/aiprofessor-hub/backend/models"
	"github.com/vamsidulam/aiprofessor-hub/backend/professor"
	"github.com/vamsidulam/aiprofessor-hub/backend/repository"
	"github.com/vamsidulam/aiprofessor-hub/backend/store"
	"github.com/vamsidulam/aiprofessor-hub/backend/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type recordingMirror struct {
	mu    sync.Mutex
	saved []models.Course
	err   error
}

func (m *recordingMirror) SaveCourse(_ context.Context, c models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, c)
	return m.err
}

// heldMirror writes through to a repository but parks the first save after
// hold() until release is closed.
type heldMirror struct {
	repo    *repository.CourseRepository
	mu      sync.Mutex
	armed   bool
	held    chan struct{}
	release chan struct{}
}

func (m *heldMirror) hold() {
	m.mu.Lock()
	m.armed = true
	m.mu.Unlock()
}

func (m *heldMirror) SaveCourse(ctx context.Context, c models.Course) error {
	m.mu.Lock()
	wait := m.armed
	m.armed = false
	m.mu.Unlock()
	if wait {
		m.held <- struct{}{}
		<-m.release
	}
	return m.repo.SaveCourse(ctx, c)
}

type testServer struct {
	app    *fiber.App
	store  *store.CourseStore
	mirror *recordingMirror
	cfg    *config.Config
}

func newTestServer(t *testing.T, secret string) *testServer {
	t.Helper()
	cfg := &config.Config{JWTSecret: secret, DBDriver: "none"}
	s := &testServer{
		app:    fiber.New(),
		store:  store.NewCourseStore(),
		mirror: &recordingMirror{},
		cfg:    cfg,
	}
	SetupRoutes(s.app, cfg, Deps{
		Store:     s.store,
		Generator: generator.NewMockGenerator(0),
		Responder: professor.NewMockResponder(0),
		Mirror:    s.mirror,
		Logger:    utils.NopLogger(),
	})
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func (s *testServer) generate(t *testing.T, topic, token string) models.Course {
	t.Helper()
	status, res := s.do(t, "POST", "/api/courses/generate", fiber.Map{"topic": topic}, token)
	require.Equal(t, fiber.StatusCreated, status, res.Message)

	var course models.Course
	require.NoError(t, json.Unmarshal(res.Data, &course))
	return course
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "")
	resp, err := s.app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGenerateAndListCourses(t *testing.T) {
	s := newTestServer(t, "")
	course := s.generate(t, "Machine Learning", "")

	assert.Equal(t, "Master Machine Learning", course.Title)
	assert.Equal(t, 6, course.TotalLessons)

	status, res := s.do(t, "GET", "/api/courses", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	var courses []models.Course
	require.NoError(t, json.Unmarshal(res.Data, &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, course, courses[0])

	require.Len(t, s.mirror.saved, 1)
	assert.Equal(t, course.ID, s.mirror.saved[0].ID)
}

func TestGenerateEmptyTopic(t *testing.T) {
	s := newTestServer(t, "")
	status, res := s.do(t, "POST", "/api/courses/generate", fiber.Map{"topic": " "}, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, res.Success)
	assert.Empty(t, s.store.GetCourses())
}

func TestCompleteLessonEndpoint(t *testing.T) {
	s := newTestServer(t, "")
	course := s.generate(t, "Go", "")

	status, res := s.do(t, "POST", "/api/courses/"+course.ID+"/lessons/1-1/complete", nil, "")
	require.Equal(t, fiber.StatusOK, status, res.Message)

	var updated models.Course
	require.NoError(t, json.Unmarshal(res.Data, &updated))
	assert.Equal(t, 50.0, updated.Modules[0].Progress)
	assert.Equal(t, 1, updated.CompletedLessons)
	assert.InDelta(t, 100.0/6.0, updated.Progress, 1e-9)

	// idempotent
	status, res = s.do(t, "POST", "/api/courses/"+course.ID+"/lessons/1-1/complete", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	var again models.Course
	require.NoError(t, json.Unmarshal(res.Data, &again))
	assert.Equal(t, updated, again)

	assert.Len(t, s.mirror.saved, 3)
}

func TestCompleteLessonNotFound(t *testing.T) {
	s := newTestServer(t, "")
	course := s.generate(t, "Go", "")

	status, res := s.do(t, "POST", "/api/courses/"+course.ID+"/lessons/9-9/complete", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, res.Success)
	assert.Equal(t, "Not Found", res.Error)
	assert.Contains(t, res.Message, "9-9")

	status, _ = s.do(t, "POST", "/api/courses/nope/lessons/1-1/complete", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)

	stored, err := s.store.GetCourse(course.ID)
	require.NoError(t, err)
	assert.Equal(t, course, stored)
}

func TestGetCourse(t *testing.T) {
	s := newTestServer(t, "")
	course := s.generate(t, "Go", "")

	status, res := s.do(t, "GET", "/api/courses/"+course.ID, nil, "")
	require.Equal(t, fiber.StatusOK, status)
	var got models.Course
	require.NoError(t, json.Unmarshal(res.Data, &got))
	assert.Equal(t, course, got)

	status, _ = s.do(t, "GET", "/api/courses/missing", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCreateCourse(t *testing.T) {
	s := newTestServer(t, "")
	c, err := generator.NewMockGenerator(0).ProduceCourse(context.Background(), "Rust")
	require.NoError(t, err)

	status, _ := s.do(t, "POST", "/api/courses", c, "")
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = s.do(t, "POST", "/api/courses", c, "")
	assert.Equal(t, fiber.StatusConflict, status)

	bad := c.Clone()
	bad.ID = "other"
	bad.TotalLessons = 15
	status, res := s.do(t, "POST", "/api/courses", bad, "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, res.Message, "totalLessons")

	assert.Len(t, s.store.GetCourses(), 1)
}

func TestMirrorFailureDoesNotFailRequest(t *testing.T) {
	s := newTestServer(t, "")
	s.mirror.err = errors.New("database down")

	course := s.generate(t, "Go", "")
	status, _ := s.do(t, "POST", "/api/courses/"+course.ID+"/lessons/1-2/complete", nil, "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestCompleteLessonMirrorKeepsLatestSnapshot(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "courses.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	repo := repository.NewCourseRepository(db)
	require.NoError(t, repo.AutoMigrate())

	mirror := &heldMirror{repo: repo, held: make(chan struct{}), release: make(chan struct{})}
	st := store.NewCourseStore()
	s := &testServer{app: fiber.New(), store: st, cfg: &config.Config{DBDriver: "sqlite"}}
	SetupRoutes(s.app, s.cfg, Deps{
		Store:     st,
		Generator: generator.NewMockGenerator(0),
		Responder: professor.NewMockResponder(0),
		Mirror:    mirror,
		Logger:    utils.NopLogger(),
	})
	course := s.generate(t, "Go", "")

	mirror.hold()
	done := make(chan int)
	go func() {
		resp, err := s.app.Test(httptest.NewRequest("POST", "/api/courses/"+course.ID+"/lessons/1-1/complete", nil), -1)
		if !assert.NoError(t, err) {
			done <- 0
			return
		}
		resp.Body.Close()
		done <- resp.StatusCode
	}()
	<-mirror.held

	status, _ := s.do(t, "POST", "/api/courses/"+course.ID+"/lessons/1-2/complete", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	close(mirror.release)
	require.Equal(t, fiber.StatusOK, <-done)

	want, err := st.GetCourse(course.ID)
	require.NoError(t, err)
	require.Equal(t, 2, want.CompletedLessons)

	loaded, err := repo.LoadCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, want, loaded[0])
}

func TestProgressOverview(t *testing.T) {
	s := newTestServer(t, "")
	a := s.generate(t, "Go", "")
	s.generate(t, "SQL", "")
	for _, id := range []string{"1-1", "1-2", "2-1"} {
		status, _ := s.do(t, "POST", "/api/courses/"+a.ID+"/lessons/"+id+"/complete", nil, "")
		require.Equal(t, fiber.StatusOK, status)
	}

	status, res := s.do(t, "GET", "/api/progress/overview", nil, "")
	require.Equal(t, fiber.StatusOK, status)

	var overview models.ProgressOverview
	require.NoError(t, json.Unmarshal(res.Data, &overview))
	assert.Equal(t, 2, overview.TotalCourses)
	assert.Equal(t, 1, overview.InProgressCourses)
	assert.Equal(t, 0, overview.CompletedCourses)
	assert.Equal(t, 12, overview.TotalLessons)
	assert.Equal(t, 3, overview.CompletedLessons)
	assert.Equal(t, 24, overview.TotalHours)
	assert.Equal(t, 25.0, overview.OverallProgress)
	require.Len(t, overview.Courses, 2)
	assert.Equal(t, "Intermediate", overview.Courses[0].SkillLevel)
	assert.Equal(t, 115, overview.Courses[0].RemainingMinutes)
}

func TestChat(t *testing.T) {
	s := newTestServer(t, "")

	status, res := s.do(t, "GET", "/api/chat/greeting", nil, "")
	require.Equal(t, fiber.StatusOK, status)
	var greeting models.ChatMessage
	require.NoError(t, json.Unmarshal(res.Data, &greeting))
	assert.Equal(t, models.SenderProfessor, greeting.Type)

	status, res = s.do(t, "POST", "/api/chat", fiber.Map{"message": "How do channels work?"}, "")
	require.Equal(t, fiber.StatusOK, status)
	var reply models.ChatMessage
	require.NoError(t, json.Unmarshal(res.Data, &reply))
	assert.NotEmpty(t, reply.Message)

	status, _ = s.do(t, "POST", "/api/chat", fiber.Map{"message": ""}, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSessionAuth(t *testing.T) {
	s := newTestServer(t, "testsecret")

	status, _ := s.do(t, "POST", "/api/courses/generate", fiber.Map{"topic": "Go"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = s.do(t, "POST", "/api/courses/generate", fiber.Map{"topic": "Go"}, "not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, res := s.do(t, "POST", "/api/auth/session", nil, "")
	require.Equal(t, fiber.StatusCreated, status)
	var session struct {
		Token    string `json:"token"`
		ViewerID string `json:"viewerId"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &session))
	require.NotEmpty(t, session.Token)
	assert.NotEmpty(t, session.ViewerID)

	course := s.generate(t, "Go", session.Token)
	status, _ = s.do(t, "POST", "/api/courses/"+course.ID+"/lessons/1-1/complete", nil, session.Token)
	assert.Equal(t, fiber.StatusOK, status)

	// reads stay open
	status, _ = s.do(t, "GET", "/api/courses", nil, "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestSessionRouteDisabledWithoutSecret(t *testing.T) {
	s := newTestServer(t, "")
	resp, err := s.app.Test(httptest.NewRequest("POST", "/api/auth/session", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
