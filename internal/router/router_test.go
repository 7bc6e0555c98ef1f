package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"tsehay_admin/internal/handlers"
	"tsehay_admin/internal/middleware"
	"tsehay_admin/internal/models"
	"tsehay_admin/internal/repositories"
	"tsehay_admin/internal/router"
	"tsehay_admin/internal/services"
	"tsehay_admin/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// countingData counts the fetches that reach the data service.
type countingData struct {
	repositories.DataService
	fetches atomic.Int32
}

func (c *countingData) GetMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	c.fetches.Add(1)
	return c.DataService.GetMenuItems(ctx)
}

func (c *countingData) GetAvailableTables(ctx context.Context, iso string) ([]models.TableAvailability, error) {
	c.fetches.Add(1)
	return c.DataService.GetAvailableTables(ctx, iso)
}

type testServer struct {
	engine *gin.Engine
	data   *countingData
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repositories.NewMemoryStore(
		repositories.WithTables([]models.TableAvailability{{ID: "t1", TableNumber: 3, Capacity: 4, IsAvailable: true}}),
		repositories.WithMenu([]models.MenuItem{{ID: "m41", Name: "Kurt", Description: "Raw beef cubes", Price: 19, Image: "/img/kurt.jpg", Category: "Main"}}),
	)
	t.Cleanup(store.Close)
	data := &countingData{DataService: store}

	authRepo := repositories.NewAuthRepository(bcrypt.MinCost)
	_, err := authRepo.CreateUser("admin", "secret")
	require.NoError(t, err)
	tokens, err := utils.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	authService := services.NewAuthService(authRepo, tokens, services.NewSessionRegistry(data))

	engine := gin.New()
	require.NoError(t, router.Setup(engine, router.Options{AuthService: authService, SiteURL: "/"}))
	return &testServer{engine: engine, data: data}
}

func (s *testServer) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req
}

func (s *testServer) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := s.do(formRequest("/admin/login", url.Values{"username": {"admin"}, "password": {"secret"}}), nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func (s *testServer) page(t *testing.T, cookie *http.Cookie, tab string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard?tab="+tab, nil)
	req.Header.Set("Accept", "text/html")
	rec := s.do(req, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func decodeDashboard(t *testing.T, rec *httptest.ResponseRecorder) handlers.DashboardResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp handlers.DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestUnauthenticatedDashboardRedirectsWithoutFetching(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := s.do(req, nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, middleware.LoginPath, rec.Header().Get("Location"))

	rec = s.do(formRequest("/admin/dashboard/tables/t1/toggle", nil), &http.Cookie{Name: middleware.SessionCookieName, Value: "forged"})
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = s.do(jsonRequest(http.MethodGet, "/api/v1/dashboard", ""), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Zero(t, s.data.fetches.Load())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(formRequest("/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}}), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username or password.")
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginJSONBodyGetsJSONResponse(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"username":"admin","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := s.do(req, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp handlers.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.Username)
}

func TestLoginPageSkippedForLiveSession(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/admin", nil), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/admin/login"`)

	cookie := s.login(t)
	rec = s.do(httptest.NewRequest(http.MethodGet, "/admin", nil), cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))
}

func TestDashboardMountsOnce(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)

	body := s.page(t, cookie, "tables")
	assert.Contains(t, body, "Tsehay Kitfo Admin Dashboard")
	assert.Contains(t, body, "Table 3")
	assert.Contains(t, body, "Capacity: 4 people")
	assert.Contains(t, body, "Available")

	s.page(t, cookie, "menu")
	assert.Equal(t, int32(2), s.data.fetches.Load())
}

func TestToggleTableThroughForm(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)

	rec := s.do(formRequest("/admin/dashboard/tables/t1/toggle", nil), cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard?tab=tables", rec.Header().Get("Location"))

	body := s.page(t, cookie, "tables")
	assert.Contains(t, body, "Table 3 is now unavailable")
	assert.Contains(t, body, "Not Available")

	body = s.page(t, cookie, "tables")
	assert.NotContains(t, body, "Table 3 is now unavailable", "notifications are shown once")
}

func TestEditMenuItemThroughForm(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)

	rec := s.do(formRequest("/admin/dashboard/menu/items/m41/edit", nil), cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard?tab=menu", rec.Header().Get("Location"))
	body := s.page(t, cookie, "menu")
	assert.Contains(t, body, `action="/admin/dashboard/menu/edit/save"`)
	assert.Contains(t, body, `value="Kurt"`)

	rec = s.do(formRequest("/admin/dashboard/menu/edit/save", url.Values{"name": {"Kurt Special"}, "price": {"abc"}}), cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	body = s.page(t, cookie, "menu")
	assert.Contains(t, body, "Price must be a non-negative number")
	assert.Contains(t, body, `value="Kurt Special"`, "still editing with the scratch copy")

	rec = s.do(formRequest("/admin/dashboard/menu/edit/save", url.Values{"price": {"21.5"}}), cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	body = s.page(t, cookie, "menu")
	assert.Contains(t, body, "Kurt Special has been successfully updated")
	assert.Contains(t, body, "$21.50")
	assert.NotContains(t, body, `action="/admin/dashboard/menu/edit/save"`)
}

func TestAddMenuItemThroughJSON(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)

	resp := decodeDashboard(t, s.do(jsonRequest(http.MethodPost, "/admin/dashboard/menu/add", ""), cookie))
	assert.True(t, resp.IsAddingMenuItem)

	body := `{"name":"Kitfo","category":"Main","description":"Spiced beef","price":12.5,"image":"http://x/img.jpg"}`
	resp = decodeDashboard(t, s.do(jsonRequest(http.MethodPost, "/admin/dashboard/menu/add/submit", body), cookie))

	require.Len(t, resp.MenuItems, 2)
	assert.Equal(t, models.MenuItem{ID: "m42", Name: "Kitfo", Category: "Main", Description: "Spiced beef", Price: 12.5, Image: "http://x/img.jpg"}, resp.MenuItems[1])
	assert.Equal(t, models.MenuItemDraft{}, resp.NewMenuItem)
	assert.False(t, resp.IsAddingMenuItem)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "Menu Item Added", resp.Notifications[0].Title)

	resp = decodeDashboard(t, s.do(jsonRequest(http.MethodGet, "/api/v1/dashboard", ""), cookie))
	assert.Len(t, resp.MenuItems, 2)
	assert.Empty(t, resp.Notifications)
}

func TestCancelAddKeepsTypedDraft(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)

	rec := s.do(formRequest("/admin/dashboard/menu/add", nil), cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = s.do(formRequest("/admin/dashboard/menu/add/cancel", url.Values{"name": {"Tibs"}, "category": {"Main"}}), cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard?tab=menu", rec.Header().Get("Location"))

	resp := decodeDashboard(t, s.do(jsonRequest(http.MethodGet, "/api/v1/dashboard", ""), cookie))
	assert.False(t, resp.IsAddingMenuItem)
	assert.Equal(t, "Tibs", resp.NewMenuItem.Name)
	assert.Equal(t, "Main", resp.NewMenuItem.Category)

	rec = s.do(formRequest("/admin/dashboard/menu/add", nil), cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, s.page(t, cookie, "menu"), `value="Tibs"`)
}

func TestSubmitAddRejectsUnknownJSONField(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)

	rec := s.do(jsonRequest(http.MethodPost, "/admin/dashboard/menu/add/submit", `{"colour":"red"}`), cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBeginEditUnknownItemJSON(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)

	rec := s.do(jsonRequest(http.MethodPost, "/admin/dashboard/menu/items/nope/edit", ""), cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogoutDropsSession(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)
	s.page(t, cookie, "tables")

	rec := s.do(formRequest("/admin/logout", nil), cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, middleware.LoginPath, rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec = s.do(req, cookie)
	assert.Equal(t, http.StatusFound, rec.Code, "the old token no longer maps to a session")
}

func TestPing(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/ping", nil), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rec.Body.String())
}
