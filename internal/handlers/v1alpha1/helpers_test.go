package v1alpha1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/peeringlatam/network-planner/internal/auth"
	"github.com/peeringlatam/network-planner/internal/config"
	handlers "github.com/peeringlatam/network-planner/internal/handlers/v1alpha1"
	"github.com/peeringlatam/network-planner/internal/mail"
	"github.com/peeringlatam/network-planner/internal/narrative"
	"github.com/peeringlatam/network-planner/internal/service"
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/pkg/migrations"
	"github.com/peeringlatam/network-planner/pkg/middleware"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const testSecret = "handlers-test-secret"

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	return f.reply, f.err
}

type testEnv struct {
	store     store.Store
	db        *gorm.DB
	mailer    *fakeMailer
	completer *fakeCompleter
	weather   *httptest.Server
	server    *httptest.Server
	issuer    *auth.LocalAuthenticator
}

func newTestEnv() *testEnv {
	cfg := config.NewDefault()
	cfg.Database.Type = "sqlite"
	cfg.Database.Name = ":memory:"

	db, err := store.InitDB(cfg)
	Expect(err).To(BeNil())
	Expect(migrations.MigrateStore(db, "")).To(Succeed())
	s := store.NewStore(db)
	Expect(s.Seed(context.TODO())).To(Succeed())

	env := &testEnv{
		store:     s,
		db:        db,
		mailer:    &fakeMailer{},
		completer: &fakeCompleter{reply: "Hola, ¿en qué puedo ayudarte?"},
	}

	env.weather = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current_condition":[{"temp_C":"18","humidity":"72","weatherDesc":[{"value":"Partly cloudy"}]}]}`))
	}))

	catalog, err := service.NewCatalogService(s, "http://planner.example", 6)
	Expect(err).To(BeNil())

	now := func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }

	h := handlers.NewServiceHandler(handlers.Services{
		Simulation:  service.NewSimulationService(s, narrative.NewGenerator()),
		Catalog:     catalog,
		Cart:        service.NewCartService(s),
		Appointment: service.NewAppointmentService(s, env.mailer, "no-reply@planner.example", "sales@planner.example", service.WithClock(now)),
		Chat:        service.NewChatService(env.completer, time.Second),
		Weather:     service.NewWeatherService(env.weather.URL, "Bogota", time.Second),
		Report:      service.NewReportService(s, nil),
	})

	env.issuer, err = auth.NewLocalAuthenticator(testSecret)
	Expect(err).To(BeNil())

	router := chi.NewRouter()
	router.Use(middleware.RequestID, env.issuer.Authenticator)
	handlers.HandlerFromMux(h, router)
	env.server = httptest.NewServer(router)

	return env
}

func (e *testEnv) Close() {
	e.server.Close()
	e.weather.Close()
	e.store.Close()
}

func (e *testEnv) token(username string) string {
	token, err := e.issuer.IssueToken(username, username+"@example.com", time.Hour)
	Expect(err).To(BeNil())
	return token
}

// do sends the request as username, anonymously when username is empty.
func (e *testEnv) do(method, path, username string, body any) (*http.Response, []byte) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		Expect(err).To(BeNil())
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	Expect(err).To(BeNil())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if username != "" {
		req.Header.Set("Authorization", "Bearer "+e.token(username))
	}

	resp, err := http.DefaultClient.Do(req)
	Expect(err).To(BeNil())
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	Expect(err).To(BeNil())
	return resp, data
}

func decode[T any](data []byte) T {
	var v T
	Expect(json.Unmarshal(data, &v)).To(Succeed())
	return v
}
