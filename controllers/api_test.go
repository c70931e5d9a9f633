package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"kef/config"
	"kef/database"
	"kef/models"
	"kef/routes"
	"kef/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router  *gin.Engine
	db      *gorm.DB
	cfg     *config.Config
	pending *services.MemoryPendingStore
}

// newTestApp wires the router against an isolated in-memory database,
// an in-memory pending store and, unless overridden, an unconfigured
// gateway.
func newTestApp(t *testing.T, mutate func(cfg *config.Config)) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		AppEnv:        "development",
		FrontendURL:   "http://localhost:3000",
		BaseURL:       "http://localhost:8080",
		AdminEmail:    "admin@kef.org",
		AdminPassword: "letmein",
		PhonePeEnv:    "sandbox",
	}
	if mutate != nil {
		mutate(cfg)
	}

	pending := services.NewMemoryPendingStore()
	gateway := services.NewPhonePe(cfg)
	router := routes.SetupRouter(db, cfg, gateway, pending, nil)

	return &testApp{router: router, db: db, cfg: cfg, pending: pending}
}

func (app *testApp) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func (app *testApp) adminToken(t *testing.T) string {
	t.Helper()
	w := app.do("POST", "/api/admin/login", map[string]string{
		"email":    "admin@kef.org",
		"password": "letmein",
	}, "")
	if w.Code != 200 {
		t.Fatalf("admin login failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Token
}

func ashaPayload() map[string]string {
	return map[string]string{
		"fullName":     "Asha K",
		"email":        "asha@example.com",
		"phone":        "9876543210",
		"age":          "22",
		"organization": "XYZ College",
		"district":     "Kozhikode",
		"experience":   "beginner",
	}
}

func TestBootcampRegisterApproveVerify(t *testing.T) {
	app := newTestApp(t, nil)

	payload := ashaPayload()
	payload["expectations"] = "Want to meet mentors"
	payload["photo"] = "data:image/png;base64,PHOTOBLOB"
	payload["paymentProof"] = "data:image/png;base64,PROOFBLOB"

	w := app.do("POST", "/api/bootcamp", payload, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Success bool `json:"success"`
		Data    struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)
	assert.True(t, created.Success)
	assert.NotEmpty(t, created.Data.ID)
	assert.Equal(t, "pending", created.Data.Status)

	// The confirmation response must not echo the blobs back.
	assert.NotContains(t, w.Body.String(), "PHOTOBLOB")
	assert.NotContains(t, w.Body.String(), "PROOFBLOB")

	token := app.adminToken(t)
	w = app.do("PATCH", "/api/admin/bootcamp/"+created.Data.ID, map[string]string{"status": "approved"}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.BootcampRegistration
	assert.NoError(t, app.db.First(&stored, "id = ?", created.Data.ID).Error)
	assert.Equal(t, "approved", stored.Status)

	// Public verification shows identity and status but keeps contact
	// details and answers private.
	w = app.do("GET", "/api/verify/"+created.Data.ID, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Asha K")
	assert.Contains(t, body, "XYZ College")
	assert.Contains(t, body, "approved")
	assert.NotContains(t, body, "asha@example.com")
	assert.NotContains(t, body, "9876543210")
	assert.NotContains(t, body, "Want to meet mentors")
}

func TestBootcampValidation(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do("POST", "/api/bootcamp", map[string]string{"fullName": "No Contact"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyNotFound(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do("GET", "/api/verify/00000000-0000-0000-0000-000000000000", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRejectsUnknownStatus(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.adminToken(t)

	w := app.do("POST", "/api/bootcamp", ashaPayload(), "")
	assert.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)

	for _, bad := range []string{"archived", "APPROVED", "done", ""} {
		w = app.do("PATCH", "/api/admin/bootcamp/"+created.Data.ID, map[string]string{"status": bad}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code, "status %q must be rejected", bad)
	}

	// Terminal states are freely reversible by the admin.
	for _, status := range []string{"approved", "rejected", "pending", "approved"} {
		w = app.do("PATCH", "/api/admin/bootcamp/"+created.Data.ID, map[string]string{"status": status}, token)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestAdminDeleteMissingIsNotFound(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.adminToken(t)

	for _, path := range []string{
		"/api/admin/bootcamp/9d2e8c4a-0000-0000-0000-000000000000",
		"/api/admin/membership/9d2e8c4a-0000-0000-0000-000000000000",
		"/api/admin/contact/9d2e8c4a-0000-0000-0000-000000000000",
	} {
		w := app.do("DELETE", path, nil, token)
		assert.Equal(t, http.StatusNotFound, w.Code, "delete on %s", path)
	}
}

func TestAdminRequiresAuth(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do("GET", "/api/admin/bootcamp", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do("GET", "/api/admin/bootcamp", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do("POST", "/api/admin/login", map[string]string{
		"email":    "admin@kef.org",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMembershipCreateAndReview(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do("POST", "/api/membership", map[string]string{
		"fullName":     "Ravi Menon",
		"email":        "ravi@example.com",
		"phone":        "9876501234",
		"organization": "Menon Foods",
		"district":     "Thrissur",
		"category":     "founder",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.MembershipApplication `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)
	assert.Equal(t, "pending", created.Data.Status)

	token := app.adminToken(t)
	w = app.do("PATCH", "/api/admin/membership/"+created.Data.ID, map[string]string{"status": "rejected"}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do("GET", "/api/admin/membership", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rejected")
}

func TestContactCreateListDelete(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do("POST", "/api/contact", map[string]string{
		"name":    "Priya",
		"email":   "priya@example.com",
		"phone":   "9000012345",
		"subject": "Sponsorship",
		"message": "How do we sponsor the bootcamp?",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.ContactSubmission `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)
	assert.NotEmpty(t, created.Data.ID)

	token := app.adminToken(t)
	w = app.do("GET", "/api/admin/contact", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sponsorship")

	w = app.do("DELETE", "/api/admin/contact/"+created.Data.ID, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do("DELETE", "/api/admin/contact/"+created.Data.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardCounts(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.adminToken(t)

	for i := 0; i < 3; i++ {
		payload := ashaPayload()
		payload["email"] = fmt.Sprintf("user%d@example.com", i)
		w := app.do("POST", "/api/bootcamp", payload, "")
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w := app.do("GET", "/api/admin/dashboard", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Bootcamp struct {
				Total    int64            `json:"total"`
				ByStatus map[string]int64 `json:"byStatus"`
			} `json:"bootcamp"`
			Contact struct {
				Total int64 `json:"total"`
			} `json:"contact"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, int64(3), resp.Data.Bootcamp.Total)
	assert.Equal(t, int64(3), resp.Data.Bootcamp.ByStatus["pending"])
	assert.Equal(t, int64(0), resp.Data.Contact.Total)
}
