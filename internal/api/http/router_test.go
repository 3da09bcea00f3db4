package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/leave-portal/internal/api/http/handlers"
	"github.com/spec-kit/leave-portal/internal/backend"
	"github.com/spec-kit/leave-portal/internal/config"
	"github.com/spec-kit/leave-portal/internal/domain"
	"github.com/spec-kit/leave-portal/internal/events"
	"github.com/spec-kit/leave-portal/internal/observability"
	"github.com/spec-kit/leave-portal/internal/service"
	"github.com/spec-kit/leave-portal/internal/session"
)

// fakeUpstream simulates the leave backend closely enough for routing tests:
// token-per-user auth, leave storage, and an expireAll switch that turns
// every authenticated call into a 401.
type fakeUpstream struct {
	mu        sync.Mutex
	nextID    int64
	leaves    map[int64]domain.LeaveRequest
	balances  []domain.LeaveBalance
	tokens    map[string]domain.User
	expireAll bool
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		nextID: 1,
		leaves: make(map[int64]domain.LeaveRequest),
		balances: []domain.LeaveBalance{
			{ID: 1, UserID: 7, LeaveType: "Sick", TotalDays: 10, UsedDays: 2, RemainingDays: 8},
			{ID: 2, UserID: 7, LeaveType: "Vacation", TotalDays: 20, UsedDays: 5, RemainingDays: 15},
			{ID: 3, UserID: 2, LeaveType: "Vacation", TotalDays: 20, UsedDays: 0, RemainingDays: 20},
		},
		tokens: map[string]domain.User{
			"tok-amy": {ID: 7, Name: "amy", Email: "amy@example.com", Role: domain.RoleEmployee},
			"tok-mia": {ID: 2, Name: "mia", Email: "mia@example.com", Role: domain.RoleManager},
			"tok-ada": {ID: 1, Name: "ada", Email: "ada@example.com", Role: domain.RoleAdmin},
		},
	}
}

func (f *fakeUpstream) handler() nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if r.URL.Path == "/auth/login" {
			var req backend.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			token := "tok-" + req.Username
			user, ok := f.tokens[token]
			if !ok || req.Password != "secret" {
				w.WriteHeader(nethttp.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "bad credentials"})
				return
			}
			_ = json.NewEncoder(w).Encode(backend.LoginResponse{
				ID: user.ID, Username: user.Name, Email: user.Email, Role: user.Role, Token: token,
			})
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		user, ok := f.tokens[token]
		if !ok || f.expireAll {
			w.WriteHeader(nethttp.StatusUnauthorized)
			return
		}

		switch {
		case r.Method == nethttp.MethodGet && r.URL.Path == "/leave-balances":
			_ = json.NewEncoder(w).Encode(f.balances)
		case r.Method == nethttp.MethodGet && strings.HasPrefix(r.URL.Path, "/leave-balances/user/"):
			id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/leave-balances/user/"), 10, 64)
			out := []domain.LeaveBalance{}
			for _, b := range f.balances {
				if b.UserID == id {
					out = append(out, b)
				}
			}
			_ = json.NewEncoder(w).Encode(out)
		case r.Method == nethttp.MethodGet && r.URL.Path == "/leaves":
			out := make([]domain.LeaveRequest, 0, len(f.leaves))
			for _, l := range f.leaves {
				out = append(out, l)
			}
			_ = json.NewEncoder(w).Encode(out)
		case r.Method == nethttp.MethodGet && strings.HasPrefix(r.URL.Path, "/leaves/employee/"):
			id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/leaves/employee/"), 10, 64)
			out := []domain.LeaveRequest{}
			for _, l := range f.leaves {
				if l.EmployeeID == id {
					out = append(out, l)
				}
			}
			_ = json.NewEncoder(w).Encode(out)
		case r.Method == nethttp.MethodPost && r.URL.Path == "/leaves":
			var req backend.CreateLeaveRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			l := domain.LeaveRequest{
				ID: f.nextID, EmployeeID: user.ID, LeaveType: req.LeaveType,
				StartDate: req.StartDate, EndDate: req.EndDate, Reason: req.Reason, Status: req.Status,
			}
			f.leaves[l.ID] = l
			f.nextID++
			w.WriteHeader(nethttp.StatusCreated)
			_ = json.NewEncoder(w).Encode(l)
		case r.Method == nethttp.MethodPut && strings.HasSuffix(r.URL.Path, "/status"):
			raw := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/leaves/"), "/status")
			id, _ := strconv.ParseInt(raw, 10, 64)
			l, ok := f.leaves[id]
			if !ok {
				w.WriteHeader(nethttp.StatusNotFound)
				return
			}
			l.Status = domain.LeaveStatus(r.URL.Query().Get("status"))
			f.leaves[id] = l
			_ = json.NewEncoder(w).Encode(l)
		case r.Method == nethttp.MethodGet && strings.HasPrefix(r.URL.Path, "/leaves/"):
			id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/leaves/"), 10, 64)
			l, ok := f.leaves[id]
			if !ok {
				w.WriteHeader(nethttp.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(l)
		case r.Method == nethttp.MethodDelete && strings.HasPrefix(r.URL.Path, "/leaves/"):
			id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/leaves/"), 10, 64)
			delete(f.leaves, id)
			w.WriteHeader(nethttp.StatusNoContent)
		default:
			w.WriteHeader(nethttp.StatusNotFound)
		}
	})
}

type portalFixture struct {
	app      *fiber.App
	store    *session.MemoryStore
	upstream *fakeUpstream
}

func newPortal(t *testing.T) *portalFixture {
	t.Helper()
	upstream := newFakeUpstream()
	srv := httptest.NewServer(upstream.handler())
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := session.NewMemoryStore()

	client := backend.NewClient(config.BackendConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, logger, metrics, func(ctx context.Context) {
		if id, ok := session.IDFromContext(ctx); ok {
			_ = store.Clear(ctx, id)
		}
	})

	dispatcher := events.NewInMemoryDispatcher(logger)
	leaveService := service.NewLeaveService(client, dispatcher)
	sessionCfg := config.SessionConfig{CookieName: "lp_session", DefaultTTLMins: 10}

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:        handlers.NewHealthHandler("leave-portal", "test", nil),
		Auth:          handlers.NewAuthHandler(service.NewAuthService(client, store)),
		Leaves:        handlers.NewLeavesHandler(leaveService),
		Users:         handlers.NewUsersHandler(service.NewUserService(client, store)),
		Notifications: handlers.NewNotificationsHandler(service.NewNotificationService(client, dispatcher, logger)),
		Balances:      handlers.NewBalancesHandler(client),
		Dashboard:     handlers.NewDashboardHandler(leaveService, client, logger),
		SessionStore:  store,
		SessionCfg:    sessionCfg,
	})
	return &portalFixture{app: app, store: store, upstream: upstream}
}

func (p *portalFixture) request(t *testing.T, method, target, cookie string, body any) *nethttp.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&nethttp.Cookie{Name: "lp_session", Value: cookie})
	}
	resp, err := p.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (p *portalFixture) login(t *testing.T, username string) string {
	t.Helper()
	resp := p.request(t, nethttp.MethodPost, "/login", "", fiber.Map{"username": username, "password": "secret"})
	defer resp.Body.Close()
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == "lp_session" {
			return c.Value
		}
	}
	t.Fatal("login response carried no session cookie")
	return ""
}

func decodeData(t *testing.T, resp *nethttp.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	envelope := map[string]json.RawMessage{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Contains(t, envelope, "data")
	require.NoError(t, json.Unmarshal(envelope["data"], out))
}

func TestLoginReturnsRoleNavigation(t *testing.T) {
	p := newPortal(t)

	resp := p.request(t, nethttp.MethodPost, "/login", "", fiber.Map{"username": "amy", "password": "secret"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var data struct {
		User struct {
			Role      domain.Role
			RoleLabel string
		}
		Links []struct{ Route string }
	}
	decodeData(t, resp, &data)
	assert.Equal(t, domain.RoleEmployee, data.User.Role)
	assert.Equal(t, "Employee", data.User.RoleLabel)

	routes := make([]string, 0, len(data.Links))
	for _, l := range data.Links {
		routes = append(routes, l.Route)
	}
	assert.Equal(t, []string{"/dashboard", "/profile", "/apply-leave", "/leave-requests"}, routes)
}

func TestLoginRejectedReturnsUpstreamMessage(t *testing.T) {
	p := newPortal(t)

	resp := p.request(t, nethttp.MethodPost, "/login", "", fiber.Map{"username": "amy", "password": "wrong"})
	defer resp.Body.Close()
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "UPSTREAM_REJECTED", envelope.Error.Code)
	assert.Equal(t, "bad credentials", envelope.Error.Message)
}

func TestApplyAndListLifecycle(t *testing.T) {
	p := newPortal(t)
	amy := p.login(t, "amy")

	resp := p.request(t, nethttp.MethodPost, "/apply-leave", amy, fiber.Map{
		"leaveType": "Sick",
		"startDate": "2024-05-01",
		"endDate":   "2024-05-03",
		"reason":    "flu",
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	var created struct {
		ID           int64
		Status       domain.LeaveStatus
		DurationDays int
	}
	decodeData(t, resp, &created)
	assert.Equal(t, domain.LeaveStatusPending, created.Status)
	assert.Equal(t, 3, created.DurationDays)

	resp = p.request(t, nethttp.MethodGet, "/leave-requests", amy, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var listing struct {
		Items []struct{ ID int64 }
		Total int
	}
	decodeData(t, resp, &listing)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, created.ID, listing.Items[0].ID)
}

func TestEmployeeCannotReachApprovals(t *testing.T) {
	p := newPortal(t)
	amy := p.login(t, "amy")

	resp := p.request(t, nethttp.MethodGet, "/leave-approvals", amy, nil)
	defer resp.Body.Close()
	assert.Equal(t, nethttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestManagerDecisionFlow(t *testing.T) {
	p := newPortal(t)
	amy := p.login(t, "amy")
	mia := p.login(t, "mia")

	resp := p.request(t, nethttp.MethodPost, "/apply-leave", amy, fiber.Map{
		"leaveType": "Vacation",
		"startDate": "2024-07-01",
		"endDate":   "2024-07-05",
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	var created struct{ ID int64 }
	decodeData(t, resp, &created)

	// The approvals queue defaults to pending requests.
	resp = p.request(t, nethttp.MethodGet, "/leave-approvals", mia, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var queue struct{ Items []struct{ ID int64 } }
	decodeData(t, resp, &queue)
	require.Len(t, queue.Items, 1)

	target := fmt.Sprintf("/leaves/%d/decision", created.ID)
	resp = p.request(t, nethttp.MethodPut, target, mia, fiber.Map{"decision": "APPROVED"})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var decided struct{ Status domain.LeaveStatus }
	decodeData(t, resp, &decided)
	assert.Equal(t, domain.LeaveStatusApproved, decided.Status)

	// Deciding again conflicts; the stored status does not move.
	resp = p.request(t, nethttp.MethodPut, target, mia, fiber.Map{"decision": "REJECTED"})
	resp.Body.Close()
	assert.Equal(t, nethttp.StatusConflict, resp.StatusCode)

	// The decided request leaves the default approvals queue.
	resp = p.request(t, nethttp.MethodGet, "/leave-approvals", mia, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	decodeData(t, resp, &queue)
	assert.Empty(t, queue.Items)
}

func TestExpiredBackendSessionRedirectsToLogin(t *testing.T) {
	p := newPortal(t)
	amy := p.login(t, "amy")

	p.upstream.mu.Lock()
	p.upstream.expireAll = true
	p.upstream.mu.Unlock()

	// The failing call turns into a login redirect.
	resp := p.request(t, nethttp.MethodGet, "/leave-requests", amy, nil)
	resp.Body.Close()
	assert.Equal(t, nethttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// The session was cleared, so even gate checks now fail.
	resp = p.request(t, nethttp.MethodGet, "/dashboard", amy, nil)
	resp.Body.Close()
	assert.Equal(t, nethttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLogoutRedirectsAndClears(t *testing.T) {
	p := newPortal(t)
	amy := p.login(t, "amy")

	resp := p.request(t, nethttp.MethodPost, "/logout", amy, nil)
	resp.Body.Close()
	assert.Equal(t, nethttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = p.request(t, nethttp.MethodGet, "/dashboard", amy, nil)
	resp.Body.Close()
	assert.Equal(t, nethttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestBalancesListPerRole(t *testing.T) {
	p := newPortal(t)
	amy := p.login(t, "amy")
	ada := p.login(t, "ada")

	// Employees see only their own balances.
	resp := p.request(t, nethttp.MethodGet, "/balances", amy, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var own []struct{ UserID int64 }
	decodeData(t, resp, &own)
	require.Len(t, own, 2)
	for _, b := range own {
		assert.Equal(t, int64(7), b.UserID)
	}

	// Admins see every record.
	resp = p.request(t, nethttp.MethodGet, "/balances", ada, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var all []struct{ UserID int64 }
	decodeData(t, resp, &all)
	assert.Len(t, all, 3)
}

func TestBalanceDetailAdminOnly(t *testing.T) {
	p := newPortal(t)
	amy := p.login(t, "amy")

	resp := p.request(t, nethttp.MethodGet, "/balances/1", amy, nil)
	resp.Body.Close()
	assert.Equal(t, nethttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestRootRedirectsToLogin(t *testing.T) {
	p := newPortal(t)

	resp := p.request(t, nethttp.MethodGet, "/", "", nil)
	resp.Body.Close()
	assert.Equal(t, nethttp.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
