package console

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labshare-dev/labshare/internal/api"
	"github.com/labshare-dev/labshare/internal/config"
	"github.com/labshare-dev/labshare/internal/router"
	"github.com/labshare-dev/labshare/internal/session"
)

const testSecret = "console-secret"

type fakeBackend struct {
	*httptest.Server

	mu     sync.Mutex
	seen   map[string]*http.Request
	routes map[string]any
}

func newFakeBackend(t *testing.T, routes map[string]any) *fakeBackend {
	t.Helper()

	b := &fakeBackend{seen: map[string]*http.Request{}, routes: routes}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.seen[r.URL.Path] = r.Clone(r.Context())
		b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		data, ok := b.routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{"code": 404, "msg": "资源不存在"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"code": 200, "msg": "success", "data": data})
	}))
	t.Cleanup(b.Close)
	return b
}

func (b *fakeBackend) request(path string) (*http.Request, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.seen[path]
	return r, ok
}

func newTestServer(t *testing.T, backendURL string) *Server {
	t.Helper()

	cfg := &config.Config{
		API: config.APIConfig{URL: backendURL + "/api/v1", Timeout: 5 * time.Second},
		Console: config.ConsoleConfig{
			Addr:           ":0",
			AllowedOrigins: []string{"http://localhost:5173"},
			JWTSecret:      testSecret,
		},
	}
	s, err := New(cfg, zerolog.Nop(), "test")
	require.NoError(t, err)
	return s
}

func tokenFor(t *testing.T, secret string, profile api.Profile) string {
	t.Helper()
	token, err := session.SignToken([]byte(secret), profile, time.Hour)
	require.NoError(t, err)
	return token
}

// get serves one request in-process. The context is cancellable so the reverse
// proxy watches it instead of asking the recorder for CloseNotify.
func get(s *Server, path, token string) *httptest.ResponseRecorder {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, path, nil).WithContext(ctx)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: tokenCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func title(route string) string {
	return "<title>" + route + " - " + router.AppName + "</title>"
}

var (
	studentProfile = api.Profile{ID: "S2021001", UserType: api.UserTypeStudent}
	adminProfile   = api.Profile{ID: "A001", UserType: api.UserTypeAdmin}
)

func TestNew_RejectsBadAPIURL(t *testing.T) {
	_, err := New(&config.Config{API: config.APIConfig{URL: "not a url"}}, zerolog.Nop(), "test")
	assert.Error(t, err)
}

func TestGuard_RedirectsHome(t *testing.T) {
	backend := newFakeBackend(t, nil)
	s := newTestServer(t, backend.URL)

	tests := []struct {
		name  string
		path  string
		token string
	}{
		{"anonymous equipment", "/equipment", ""},
		{"anonymous equipment detail", "/equipment/3", ""},
		{"student audit logs", "/audit-logs", tokenFor(t, testSecret, studentProfile)},
		{"forged admin cookie", "/audit-logs", tokenFor(t, "other-secret", adminProfile)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(s, tt.path, tt.token)
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/", rec.Header().Get("Location"))
		})
	}

	_, hit := backend.request("/api/v1/auditlogs/")
	assert.False(t, hit, "denied views must not load data")
}

func TestPages_Allowed(t *testing.T) {
	backend := newFakeBackend(t, map[string]any{
		"GET /api/v1/laboratories/": []map[string]any{{"id": 1, "name": "计算机实验室", "location": "A301"}},
		"GET /api/v1/equipments/":   []map[string]any{{"id": 7, "name": "电子显微镜", "lab_name": "材料实验室", "category": 2, "status": 1}},
		"GET /api/v1/auditlogs/": map[string]any{
			"items": []map[string]any{{"id": 1, "operator_id": "S2021001", "action_type": "LOGIN", "action_time": "2024-03-01T09:00:00"}},
			"total": 1,
		},
		"GET /api/v1/equipments/top": []map[string]any{{"id": 7, "name": "电子显微镜", "count": 12}},
	})
	s := newTestServer(t, backend.URL)
	admin := tokenFor(t, testSecret, adminProfile)

	tests := []struct {
		name     string
		path     string
		token    string
		title    string
		contains string
	}{
		{"home anonymous", "/", "", "首页", "/login"},
		{"home ranking", "/", admin, "首页", "电子显微镜"},
		{"laboratories anonymous", "/laboratories", "", "实验室管理", "计算机实验室"},
		{"equipment", "/equipment?keyword=" + url.QueryEscape("显微镜"), admin, "设备列表", "材料实验室"},
		{"equipment available", "/equipment", admin, "设备列表", "<td>可预约</td>"},
		{"audit logs admin", "/audit-logs", admin, "审计日志", "S2021001"},
		{"reservations anonymous", "/reservations", "", "预约管理", "登录后可查看"},
		{"help", "/help", "", "帮助中心", "如何预约设备"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(s, tt.path, tt.token)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), title(tt.title))
			assert.Contains(t, rec.Body.String(), tt.contains)
		})
	}

	r, ok := backend.request("/api/v1/equipments/")
	require.True(t, ok)
	assert.Equal(t, "显微镜", r.URL.Query().Get("keyword"))
	assert.Equal(t, "Bearer "+admin, r.Header.Get("Authorization"))

	r, ok = backend.request("/api/v1/laboratories/")
	require.True(t, ok)
	assert.Empty(t, r.Header.Get("Authorization"))
}

func TestEquipmentDetail(t *testing.T) {
	backend := newFakeBackend(t, map[string]any{
		"GET /api/v1/equipments/7":                          map[string]any{"id": 7, "name": "质谱仪", "lab_name": "化学实验室"},
		"GET /api/v1/timeslots/equipment/7":                 []map[string]any{{"slot_id": 1, "equip_id": 7, "start_time": "09:00:00", "end_time": "11:00:00", "is_active": 1}},
		"GET /api/v1/timeslots/equipment/7/available-dates": []string{"2024-03-02", "2024-03-03"},
	})
	s := newTestServer(t, backend.URL)

	rec := get(s, "/equipment/7", tokenFor(t, testSecret, studentProfile))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := rec.Body.String()
	assert.Contains(t, body, title("设备详情"))
	assert.Contains(t, body, "质谱仪")
	assert.Contains(t, body, "09:00:00")
	assert.Contains(t, body, "2024-03-03")

	r, ok := backend.request("/api/v1/timeslots/equipment/7")
	require.True(t, ok)
	assert.Equal(t, "true", r.URL.Query().Get("only_active"))

	r, ok = backend.request("/api/v1/timeslots/equipment/7/available-dates")
	require.True(t, ok)
	assert.Equal(t, "30", r.URL.Query().Get("days"))
}

func TestEquipmentDetail_Errors(t *testing.T) {
	backend := newFakeBackend(t, nil)
	s := newTestServer(t, backend.URL)
	token := tokenFor(t, testSecret, studentProfile)

	rec := get(s, "/equipment/abc", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), title("设备详情"))

	rec = get(s, "/equipment/99", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "资源不存在")
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, newFakeBackend(t, nil).URL)

	rec := get(s, "/no/such/page", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>404 - 页面未找到 - "+router.AppName+"</title>")
}

func TestLoginAndLogout(t *testing.T) {
	token := tokenFor(t, testSecret, api.Profile{ID: "T1001", UserType: api.UserTypeTeacher})
	backend := newFakeBackend(t, map[string]any{
		"POST /api/v1/auth/login": map[string]any{
			"token": token,
			"user":  map[string]any{"id": "T1001", "name": "王老师", "user_type": "teacher"},
		},
	})
	s := newTestServer(t, backend.URL)

	form := url.Values{"username": {"T1001"}, "password": {"pw"}, "user_type": {"teacher"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	require.Contains(t, cookies, tokenCookie)
	assert.Equal(t, token, cookies[tokenCookie].Value)
	assert.True(t, cookies[tokenCookie].HttpOnly)
	assert.Positive(t, cookies[tokenCookie].MaxAge)

	// The cached name shows up on the next page
	home := httptest.NewRequest(http.MethodGet, "/", nil)
	home.AddCookie(cookies[tokenCookie])
	home.AddCookie(cookies[nameCookie])
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, home)
	assert.Contains(t, rec.Body.String(), "王老师 (teacher)")

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	for _, c := range rec.Result().Cookies() {
		assert.Negative(t, c.MaxAge, c.Name)
	}
}

func TestLogin_Failures(t *testing.T) {
	backend := newFakeBackend(t, nil)
	s := newTestServer(t, backend.URL)

	post := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		return rec
	}

	rec := post(url.Values{"username": {"x"}, "password": {"y"}, "user_type": {"guest"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), title("首页"))

	// the fake backend has no login route and answers 404 with a message
	rec = post(url.Values{"username": {"x"}, "password": {"y"}, "user_type": {"student"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "资源不存在")
	assert.Empty(t, rec.Result().Cookies())
}

func TestProxy(t *testing.T) {
	backend := newFakeBackend(t, map[string]any{
		"GET /api/v1/reservations/": []map[string]any{{"id": 5, "equip_id": 7, "status": 1}},
	})
	s := newTestServer(t, backend.URL)
	token := tokenFor(t, testSecret, studentProfile)

	rec := get(s, "/api/v1/reservations/?page=2", token)

	require.Equal(t, http.StatusOK, rec.Code)
	var env api.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 200, env.Code)

	r, ok := backend.request("/api/v1/reservations/")
	require.True(t, ok)
	assert.Equal(t, "2", r.URL.Query().Get("page"))
	assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
}

func TestProxy_BackendDown(t *testing.T) {
	backend := newFakeBackend(t, nil)
	s := newTestServer(t, backend.URL)
	backend.Close()

	rec := get(s, "/api/v1/health", "")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "backend unavailable")
}

func TestHealthzAndMetrics(t *testing.T) {
	s := newTestServer(t, newFakeBackend(t, nil).URL)

	rec := get(s, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "labshare-console")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	get(s, "/equipment", "")

	rec = get(s, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `labshare_navigations_total{decision="redirect",route="Equipment"}`)
}
