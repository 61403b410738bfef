package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentnest-server/internal/config"
	"rentnest-server/internal/models"
	"rentnest-server/internal/notify"
	"rentnest-server/internal/routes"
	"rentnest-server/internal/utils"
	"rentnest-server/internal/views"
)

// fakeNotifier records the events handlers publish so tests can assert on
// the fire-and-forget path.
type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) Notify(room, event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeNotifier) has(event string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e == event {
			return true
		}
	}
	return false
}

type testApp struct {
	router   *gin.Engine
	db       *gorm.DB
	cfg      *config.Config
	notifier *fakeNotifier
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	cfg := &config.Config{
		Port:                      "0",
		Environment:               "development",
		JWTSecret:                 "test-secret",
		JWTRefreshSecret:          "test-refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 1,
		RateLimitPerSecond:        1000,
		RateLimitBurst:            1000,
	}

	notifier := &fakeNotifier{}
	log := zerolog.Nop()
	recorder := views.NewRecorder(db, views.NewMemoryStore(), log)

	router := gin.New()
	routes.SetupRoutes(router, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Log:      log,
		Notifier: notifier,
		Email:    &notify.LogEmailSender{Log: log},
		WhatsApp: &notify.LogWhatsAppSender{Log: log},
		Views:    recorder,
	})

	return &testApp{router: router, db: db, cfg: cfg, notifier: notifier}
}

func (a *testApp) createUser(t *testing.T, email string, role models.Role) (*models.User, string) {
	t.Helper()
	user := &models.User{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		Status:    models.AccountActive,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, a.db.Create(user).Error)

	token, _, err := utils.GenerateTokens(user, a.cfg)
	require.NoError(t, err)
	return user, token
}

func (a *testApp) createProperty(t *testing.T, ownerID string) *models.Property {
	t.Helper()
	prop := &models.Property{
		OwnerID:     ownerID,
		Title:       "Two bed flat",
		City:        "Pune",
		MonthlyRent: 20000,
		TokenAmount: 5000,
		Lifecycle:   models.PropertyActive,
		IsVisible:   true,
	}
	require.NoError(t, a.db.Create(prop).Error)
	return prop
}

// do issues a JSON request against the router. token and body may be empty.
func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.0.0.1:12345"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the "data" field of the standard response envelope.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}
