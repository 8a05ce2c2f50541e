package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/store-scheduler/internal/audit"
	"github.com/BruksfildServices01/store-scheduler/internal/config"
	"github.com/BruksfildServices01/store-scheduler/internal/httperr"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
	"github.com/BruksfildServices01/store-scheduler/internal/notify"
	"github.com/BruksfildServices01/store-scheduler/internal/testutil"
)

type client struct {
	t *testing.T
	h http.Handler
}

func (c client) do(method, path, token string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:4000"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)
	return w
}

func (c client) login(email string) string {
	c.t.Helper()
	w := c.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": testutil.Password})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Token
}

func newServer(t *testing.T, strict bool) (client, testutil.Fixture) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db)

	auditDispatcher := audit.NewDispatcher(audit.New(db), 10)
	notifier := notify.NewDispatcher(notify.LogMailer{}, 10)
	t.Cleanup(func() {
		notifier.Close()
		auditDispatcher.Close()
	})

	cfg := &config.Config{
		JWTSecret:       "routes-secret",
		JWTTTL:          time.Hour,
		DefaultTimezone: "UTC",
		StrictAdmission: strict,
		RateRPS:         100,
		RateBurst:       100,
	}

	r := gin.New()
	RegisterRoutes(r, db, cfg, Infra{Audit: auditDispatcher, Notifier: notifier})
	return client{t: t, h: r}, f
}

// nextMonday is a Monday at least a week ahead, as YYYY-MM-DD.
func nextMonday() string {
	d := time.Now().UTC().AddDate(0, 0, 7)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(time.DateOnly)
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) httperr.HTTPError {
	t.Helper()
	var e httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e), w.Body.String())
	return e
}

func storePath(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestBookingFlow(t *testing.T) {
	c, f := newServer(t, false)
	owner := c.login(f.Owner.Email)
	customer := c.login(f.Customer.Email)
	day := nextMonday()
	sid := storePath(f.Store.ID)

	// owner publishes Monday hours
	w := c.do(http.MethodPost, "/api/availability", owner, gin.H{
		"store_id": f.Store.ID,
		"availabilities": []gin.H{
			{"weekday": "Monday", "start_time": "09:00", "end_time": "17:00"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(http.MethodGet, "/api/availability/store/"+sid, customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var windows []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &windows))
	require.Len(t, windows, 1)
	assert.Equal(t, "09:00:00", windows[0]["start_time"])

	// customer books 10:00
	w = c.do(http.MethodPost, "/api/appointments", customer, gin.H{
		"store_id": f.Store.ID, "appointment_time": day + "T10:00", "duration_minutes": 30,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, day+"T10:00:00", created["appointment_time"])
	apID := strconv.Itoa(int(created["id"].(float64)))

	// pending does not block under the default policy
	w = c.do(http.MethodPost, "/api/appointments", customer, gin.H{
		"store_id": f.Store.ID, "appointment_time": day + "T10:00", "duration_minutes": 30,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// outside hours
	w = c.do(http.MethodPost, "/api/appointments", customer, gin.H{
		"store_id": f.Store.ID, "appointment_time": day + "T18:00", "duration_minutes": 30,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// customers cannot decide
	w = c.do(http.MethodPatch, "/api/appointments/"+apID+"/status", customer, gin.H{"status": "approved"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = c.do(http.MethodPatch, "/api/appointments/"+apID+"/status", owner, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	e := errCode(t, w)
	assert.Equal(t, "invalid_status", e.Code)
	assert.ElementsMatch(t, []string{"approved", "rejected"}, e.ValidValues)

	w = c.do(http.MethodPatch, "/api/appointments/"+apID+"/status", owner, gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// approved now blocks 10:15
	w = c.do(http.MethodPost, "/api/appointments", customer, gin.H{
		"store_id": f.Store.ID, "appointment_time": day + "T10:15", "duration_minutes": 15,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodGet, "/api/appointments/store/"+sid+"/booked", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var booked []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booked))
	assert.Len(t, booked, 2)

	w = c.do(http.MethodGet, "/api/appointments/my-appointments", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	assert.Len(t, mine, 2)

	w = c.do(http.MethodGet, "/api/appointments/store/"+sid, owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var storeApps []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &storeApps))
	assert.Len(t, storeApps, 2)
	assert.Equal(t, "Carl Customer", storeApps[0]["user_name"])
}

func TestStrictPolicyBlocksPending(t *testing.T) {
	c, f := newServer(t, true)
	owner := c.login(f.Owner.Email)
	customer := c.login(f.Customer.Email)
	day := nextMonday()

	w := c.do(http.MethodPost, "/api/availability", owner, gin.H{
		"store_id":       f.Store.ID,
		"availabilities": []gin.H{{"weekday": "Monday", "start_time": "09:00", "end_time": "12:00"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/api/appointments", customer, gin.H{
		"store_id": f.Store.ID, "appointment_time": day + "T10:00", "duration_minutes": 60,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/api/appointments", customer, gin.H{
		"store_id": f.Store.ID, "appointment_time": day + "T10:30", "duration_minutes": 30,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// span past closing
	w = c.do(http.MethodPost, "/api/appointments", customer, gin.H{
		"store_id": f.Store.ID, "appointment_time": day + "T11:30", "duration_minutes": 60,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouteGuards(t *testing.T) {
	c, f := newServer(t, false)
	customer := c.login(f.Customer.Email)

	w := c.do(http.MethodGet, "/api/appointments/my-appointments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.do(http.MethodPost, "/api/availability", customer, gin.H{"store_id": f.Store.ID, "availabilities": []gin.H{}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "store_owner_required", errCode(t, w).Code)

	w = c.do(http.MethodGet, "/api/appointments/store/999/booked", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = c.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestAuditTrailIsWritten(t *testing.T) {
	c, f := newServer(t, false)
	owner := c.login(f.Owner.Email)

	w := c.do(http.MethodPost, "/api/availability", owner, gin.H{
		"store_id":       f.Store.ID,
		"availabilities": []gin.H{{"weekday": "Tuesday", "start_time": "08:00", "end_time": "12:00"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	path := "/api/stores/" + storePath(f.Store.ID) + "/audit-logs?action=availability_replaced"
	require.Eventually(t, func() bool {
		w := c.do(http.MethodGet, path, owner, nil)
		if w.Code != http.StatusOK {
			return false
		}
		var page struct {
			Data []models.AuditLog `json:"data"`
		}
		return json.Unmarshal(w.Body.Bytes(), &page) == nil && len(page.Data) == 1
	}, 2*time.Second, 20*time.Millisecond)
}
