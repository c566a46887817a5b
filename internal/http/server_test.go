package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/LorenzoOliveira534/youpagev1/internal/auth"
	"github.com/LorenzoOliveira534/youpagev1/internal/insight"
	"github.com/LorenzoOliveira534/youpagev1/internal/services"
	"github.com/LorenzoOliveira534/youpagev1/internal/store/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := memory.New()
	snapshots := services.NewSnapshotService(st, nil)
	authSvc := auth.NewService(st, st, "1234", 10*time.Minute)
	advisor := insight.NewOpenAIAdvisor("", "", 5*time.Second)
	srv := NewServer(":0", snapshots, authSvc, advisor)
	t.Cleanup(func() {
		if srv.rateLimiter != nil {
			srv.rateLimiter.stop()
		}
	})
	return srv
}

func postForm(srv *Server, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func get(srv *Server, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

// startSession goes through the social login shortcut and returns the cookie.
func startSession(t *testing.T, srv *Server) *http.Cookie {
	t.Helper()
	rr := postForm(srv, "/auth/social", url.Values{}, nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("social login status=%d", rr.Code)
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatalf("social login did not set session cookie")
	return nil
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(t)

	rr := get(srv, "/", nil)
	if rr.Code != 200 {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "YouPage") {
		t.Fatalf("index body missing heading")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := get(srv, path, nil)
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}

	rr = get(srv, "/nope", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown path status=%d, want 404", rr.Code)
	}
}

func TestDashboardRequiresSession(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/dashboard", "/ui/tasks", "/ui/summary"} {
		rr := get(srv, path, nil)
		if rr.Code != http.StatusSeeOther {
			t.Fatalf("%s without session status=%d, want 303", path, rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/auth" {
			t.Fatalf("%s redirect location=%q, want /auth", path, loc)
		}
	}
}

var flowTokenRe = regexp.MustCompile(`name="flow" value="([^"]+)"`)

func TestRegisterVerifyFlow(t *testing.T) {
	srv := newTestServer(t)

	// Missing fields are rejected inline.
	rr := postForm(srv, "/auth/register", url.Values{"name": {"Ana"}}, nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("register with missing fields status=%d", rr.Code)
	}

	rr = postForm(srv, "/auth/register", url.Values{
		"name":     {"Ana"},
		"email":    {"ana@example.com"},
		"password": {"secret"},
	}, nil)
	if rr.Code != 200 {
		t.Fatalf("register status=%d body=%s", rr.Code, rr.Body.String())
	}
	m := flowTokenRe.FindStringSubmatch(rr.Body.String())
	if m == nil {
		t.Fatalf("register response missing flow token: %s", rr.Body.String())
	}
	flow := m[1]

	// Wrong code keeps the verify form with an error and the same flow token.
	rr = postForm(srv, "/auth/verify", url.Values{
		"flow": {flow}, "d1": {"9"}, "d2": {"9"}, "d3": {"9"}, "d4": {"9"},
	}, nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("wrong code status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Código incorreto") {
		t.Fatalf("wrong code body missing retry message: %s", rr.Body.String())
	}

	// Retrying with the right code succeeds.
	rr = postForm(srv, "/auth/verify", url.Values{
		"flow": {flow}, "d1": {"1"}, "d2": {"2"}, "d3": {"3"}, "d4": {"4"},
	}, nil)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("verify status=%d body=%s", rr.Code, rr.Body.String())
	}
	var cookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookie && c.Value != "" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatalf("verify did not set session cookie")
	}

	rr = get(srv, "/dashboard", cookie)
	if rr.Code != 200 {
		t.Fatalf("dashboard status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Ana") {
		t.Fatalf("dashboard missing registered name")
	}
}

func TestVerifyUnknownFlow(t *testing.T) {
	srv := newTestServer(t)

	rr := postForm(srv, "/auth/verify", url.Values{
		"flow": {"never-issued"}, "d1": {"1"}, "d2": {"2"}, "d3": {"3"}, "d4": {"4"},
	}, nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown flow status=%d", rr.Code)
	}
}

var taskIDRe = regexp.MustCompile(`name="id" value="([^"]+)"`)

func TestTaskLifecycle(t *testing.T) {
	srv := newTestServer(t)
	cookie := startSession(t, srv)

	rr := postForm(srv, "/tasks", url.Values{"text": {"Estudar Go"}}, cookie)
	if rr.Code != 200 {
		t.Fatalf("create task status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Estudar Go") {
		t.Fatalf("task list missing new task: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "task:created") {
		t.Fatalf("create task missing HX-Trigger header")
	}
	m := taskIDRe.FindStringSubmatch(rr.Body.String())
	if m == nil {
		t.Fatalf("task list missing task id")
	}
	id := m[1]

	rr = postForm(srv, "/tasks/toggle", url.Values{"id": {id}}, cookie)
	if rr.Code != 200 {
		t.Fatalf("toggle status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "done") {
		t.Fatalf("toggled task not marked done: %s", rr.Body.String())
	}

	rr = postForm(srv, "/tasks/delete", url.Values{"id": {id}}, cookie)
	if rr.Code != 200 {
		t.Fatalf("delete status=%d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "Estudar Go") {
		t.Fatalf("deleted task still listed: %s", rr.Body.String())
	}
}

func TestCreateTaskEmptyTextIsNoOp(t *testing.T) {
	srv := newTestServer(t)
	cookie := startSession(t, srv)

	rr := postForm(srv, "/tasks", url.Values{"text": {"   "}}, cookie)
	if rr.Code != 200 {
		t.Fatalf("empty task status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Nenhuma tarefa") {
		t.Fatalf("empty text created a task: %s", rr.Body.String())
	}
}

func TestTransactionsAndSummary(t *testing.T) {
	srv := newTestServer(t)
	cookie := startSession(t, srv)

	rr := postForm(srv, "/transactions", url.Values{
		"description": {"Salário"}, "amount": {"1000"}, "type": {"income"},
	}, cookie)
	if rr.Code != 200 {
		t.Fatalf("create income status=%d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "transaction:created") {
		t.Fatalf("create transaction missing HX-Trigger header")
	}

	rr = postForm(srv, "/transactions", url.Values{
		"description": {"Aluguel"}, "amount": {"400,00"}, "type": {"expense"},
	}, cookie)
	if rr.Code != 200 {
		t.Fatalf("create expense status=%d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Aluguel") || !strings.Contains(rr.Body.String(), "Salário") {
		t.Fatalf("transaction list incomplete: %s", rr.Body.String())
	}

	rr = get(srv, "/ui/summary", cookie)
	if rr.Code != 200 {
		t.Fatalf("summary status=%d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"R$ 1000,00", "R$ 400,00", "R$ 600,00"} {
		if !strings.Contains(body, want) {
			t.Fatalf("summary missing %q: %s", want, body)
		}
	}
}

func TestTransactionInvalidAmount(t *testing.T) {
	srv := newTestServer(t)
	cookie := startSession(t, srv)

	for _, amount := range []string{"abc", "", "12,3,4"} {
		rr := postForm(srv, "/transactions", url.Values{
			"description": {"Teste"}, "amount": {amount}, "type": {"income"},
		}, cookie)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("amount %q status=%d, want 422", amount, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Valor inválido") {
			t.Fatalf("amount %q missing validation message", amount)
		}
	}
}

func TestInsightFallbackWithoutAPIKey(t *testing.T) {
	srv := newTestServer(t)
	cookie := startSession(t, srv)

	rr := postForm(srv, "/ui/insight", url.Values{}, cookie)
	if rr.Code != 200 {
		t.Fatalf("insight status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Continue firme") {
		t.Fatalf("insight body missing fallback message: %s", rr.Body.String())
	}
}

func TestLogoutEndsSession(t *testing.T) {
	srv := newTestServer(t)
	cookie := startSession(t, srv)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	req.Header.Set("HX-Request", "true")
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("logout status=%d", rr.Code)
	}
	if loc := rr.Header().Get("HX-Redirect"); loc != "/auth" {
		t.Fatalf("logout HX-Redirect=%q, want /auth", loc)
	}

	rr2 := get(srv, "/dashboard", cookie)
	if rr2.Code != http.StatusSeeOther {
		t.Fatalf("dashboard after logout status=%d, want 303", rr2.Code)
	}
}
