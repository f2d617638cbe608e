package http

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ds9759045455-stack/smart-scheduler/internal/models"
	"github.com/ds9759045455-stack/smart-scheduler/internal/repository"
	"github.com/ds9759045455-stack/smart-scheduler/internal/service"
	"github.com/ds9759045455-stack/smart-scheduler/internal/session"
	"go.uber.org/zap"
)

// memAccountRepo is an in-memory stand-in for the postgres account
// repository, honoring the same error contract.
type memAccountRepo struct {
	mu      sync.Mutex
	nextID  int64
	byEmail map[string]models.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{byEmail: make(map[string]models.Account)}
}

func (m *memAccountRepo) CreateAccount(ctx context.Context, email, passwordHash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[email]; ok {
		return 0, repository.ErrDuplicateEmail
	}
	m.nextID++
	m.byEmail[email] = models.Account{ID: m.nextID, Email: email, PasswordHash: passwordHash}
	return m.nextID, nil
}

func (m *memAccountRepo) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return &acc, nil
}

// memTaskRepo is an in-memory stand-in for the postgres task repository,
// including the fail-silent ownership filter.
type memTaskRepo struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]models.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[int64]models.Task)}
}

func (m *memTaskRepo) ListByAccount(ctx context.Context, accountID int64) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tasks []models.Task
	for id := int64(1); id <= m.nextID; id++ {
		if task, ok := m.tasks[id]; ok && task.AccountID == accountID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (m *memTaskRepo) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	task.ID = m.nextID
	m.tasks[task.ID] = task
	return task, nil
}

func (m *memTaskRepo) ToggleStatus(ctx context.Context, accountID, taskID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok || task.AccountID != accountID {
		return nil
	}
	task.Status = task.Status.Toggled()
	m.tasks[taskID] = task
	return nil
}

func (m *memTaskRepo) DeleteTask(ctx context.Context, accountID, taskID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task, ok := m.tasks[taskID]; ok && task.AccountID == accountID {
		delete(m.tasks, taskID)
	}
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	sessions := session.NewManager(time.Hour)
	accountService := service.NewAccountService(newMemAccountRepo())
	taskService := service.NewTaskService(newMemTaskRepo())

	authHandler := &AuthHandler{AccountService: accountService, Sessions: sessions, Log: zap.NewNop()}
	taskHandler := &TaskHandler{TaskService: taskService, Sessions: sessions, Log: zap.NewNop()}

	srv := httptest.NewServer(NewRouter(authHandler, taskHandler, sessions, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func get(t *testing.T, client *http.Client, target string) (string, *url.URL) {
	t.Helper()
	res, err := client.Get(target)
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body), res.Request.URL
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) (string, *url.URL) {
	t.Helper()
	res, err := client.PostForm(target, form)
	if err != nil {
		t.Fatalf("POST %s: %v", target, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body), res.Request.URL
}

var toggleLinkRe = regexp.MustCompile(`/toggle_status/(\d+)`)

func TestEndToEnd_RegisterLoginManageTasks(t *testing.T) {
	srv := newTestServer(t)
	alice := newBrowser(t)

	// Unauthenticated dashboard access lands on the login page.
	_, landed := get(t, alice, srv.URL+"/dashboard")
	if landed.Path != "/login" {
		t.Fatalf("unauthenticated /dashboard landed on %q; want /login", landed.Path)
	}

	// Register and land back on the login form with a notice.
	body, landed := postForm(t, alice, srv.URL+"/register",
		url.Values{"email": {"a@x.com"}, "password": {"pw1"}})
	if landed.Path != "/login" {
		t.Fatalf("register landed on %q; want /login", landed.Path)
	}
	if !strings.Contains(body, "Registration successful!") {
		t.Errorf("expected registration notice, got:\n%s", body)
	}

	// Re-registering the same email fails with the duplicate notice.
	body, landed = postForm(t, alice, srv.URL+"/register",
		url.Values{"email": {"a@x.com"}, "password": {"pw2"}})
	if landed.Path != "/register" || !strings.Contains(body, "Email already exists!") {
		t.Errorf("duplicate register landed on %q without notice", landed.Path)
	}

	// Wrong password is rejected with the uniform notice.
	body, landed = postForm(t, alice, srv.URL+"/login",
		url.Values{"email": {"a@x.com"}, "password": {"wrong"}})
	if landed.Path != "/login" || !strings.Contains(body, "Invalid credentials") {
		t.Errorf("bad login landed on %q without notice", landed.Path)
	}

	// The original password still works: the duplicate attempt did not
	// touch the stored hash.
	body, landed = postForm(t, alice, srv.URL+"/login",
		url.Values{"email": {"a@x.com"}, "password": {"pw1"}})
	if landed.Path != "/dashboard" {
		t.Fatalf("login landed on %q; want /dashboard", landed.Path)
	}

	// Add a task; it shows up Pending.
	body, _ = postForm(t, alice, srv.URL+"/add_task",
		url.Values{"title": {"Buy milk"}, "priority": {"High"}, "due_date": {"2024-01-01"}})
	if !strings.Contains(body, "Buy milk") || !strings.Contains(body, "Pending") {
		t.Fatalf("expected new Pending task on dashboard, got:\n%s", body)
	}

	match := toggleLinkRe.FindStringSubmatch(body)
	if match == nil {
		t.Fatal("no toggle link found on dashboard")
	}
	taskID := match[1]

	// Toggle to Completed, then back to Pending.
	body, _ = get(t, alice, srv.URL+"/toggle_status/"+taskID)
	if !strings.Contains(body, "Completed") {
		t.Errorf("expected Completed after toggle, got:\n%s", body)
	}
	body, _ = get(t, alice, srv.URL+"/toggle_status/"+taskID)
	if strings.Contains(body, "Completed") {
		t.Errorf("expected Pending after second toggle, got:\n%s", body)
	}

	// A second account never sees or mutates Alice's task.
	bob := newBrowser(t)
	postForm(t, bob, srv.URL+"/register", url.Values{"email": {"b@x.com"}, "password": {"pw2"}})
	body, landed = postForm(t, bob, srv.URL+"/login",
		url.Values{"email": {"b@x.com"}, "password": {"pw2"}})
	if landed.Path != "/dashboard" {
		t.Fatalf("bob login landed on %q; want /dashboard", landed.Path)
	}
	if strings.Contains(body, "Buy milk") {
		t.Error("bob's dashboard lists alice's task")
	}

	get(t, bob, srv.URL+"/toggle_status/"+taskID)
	get(t, bob, srv.URL+"/delete_task/"+taskID)

	body, _ = get(t, alice, srv.URL+"/dashboard")
	if !strings.Contains(body, "Buy milk") {
		t.Error("alice's task vanished after bob's no-op delete")
	}
	if strings.Contains(body, "Completed") {
		t.Error("alice's task status changed after bob's no-op toggle")
	}

	// The owner can delete it.
	body, _ = get(t, alice, srv.URL+"/delete_task/"+taskID)
	if strings.Contains(body, "Buy milk") {
		t.Errorf("task still listed after delete:\n%s", body)
	}

	// Logout ends access to the dashboard.
	get(t, alice, srv.URL+"/logout")
	_, landed = get(t, alice, srv.URL+"/dashboard")
	if landed.Path != "/login" {
		t.Errorf("post-logout /dashboard landed on %q; want /login", landed.Path)
	}
}

func TestEndToEnd_RootServesLoginForm(t *testing.T) {
	srv := newTestServer(t)
	client := newBrowser(t)

	body, _ := get(t, client, srv.URL+"/")
	if !strings.Contains(body, `action="/login"`) {
		t.Errorf("expected login form at /, got:\n%s", body)
	}
}
