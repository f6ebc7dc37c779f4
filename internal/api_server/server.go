package apiserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	api "github.com/peeringlatam/network-planner/api/v1alpha1"
	"github.com/peeringlatam/network-planner/internal/auth"
	"github.com/peeringlatam/network-planner/internal/config"
	handlers "github.com/peeringlatam/network-planner/internal/handlers/v1alpha1"
	"github.com/peeringlatam/network-planner/internal/llm"
	"github.com/peeringlatam/network-planner/internal/mail"
	"github.com/peeringlatam/network-planner/internal/narrative"
	"github.com/peeringlatam/network-planner/internal/service"
	"github.com/peeringlatam/network-planner/internal/service/report"
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/internal/util"
	"github.com/peeringlatam/network-planner/pkg/metrics"
	"github.com/peeringlatam/network-planner/pkg/middleware"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	listener net.Listener
}

// New returns a new instance of a network-planner server.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		listener: listener,
	}
}

func oapiErrorHandler(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.Error{Message: fmt.Sprintf("API Error: %s", message)})
}

// NewRouter mounts the health probe, the OpenAPI document and every /api/v1 operation. The
// /api/v1 routes are validated against the OpenAPI document before reaching h.
func NewRouter(cfg *config.Config, h *handlers.ServiceHandler, authenticator auth.Authenticator, extra ...func(http.Handler) http.Handler) (chi.Router, error) {
	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load swagger spec: %w", err)
	}
	// Skip server name validation
	swagger.Servers = nil

	oapiOpts := oapimiddleware.Options{
		ErrorHandler: oapiErrorHandler,
	}

	router := chi.NewRouter()
	router.Use(extra...)
	router.Use(
		util.GatewayApiRewrite,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Service.CorsOrigins,
			AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
		authenticator.Authenticator,
	)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/api/v1/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.RawSpec())
	})

	router.Group(func(r chi.Router) {
		r.Use(oapimiddleware.OapiRequestValidatorWithOptions(swagger, &oapiOpts))
		handlers.HandlerFromMux(h, r)
	})

	return router, nil
}

// NewServices builds the service layer from the configuration. The language model, the SMTP
// relay and the object store are optional: without them the narrative falls back to templates,
// mails are logged and reports are not archived.
func NewServices(ctx context.Context, cfg *config.Config, s store.Store) (handlers.Services, error) {
	logger := zap.S().Named("api_server")

	completer, err := llm.New(ctx, llm.Config{
		Provider: cfg.Narrative.Provider,
		APIKey:   cfg.Narrative.APIKey,
		Model:    cfg.Narrative.Model,
		BaseURL:  cfg.Narrative.BaseURL,
		Timeout:  cfg.Narrative.Timeout,
	})
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Info("no language model configured, narratives use templates")
	case err != nil:
		return handlers.Services{}, fmt.Errorf("failed to create language model client: %w", err)
	}

	genOpts := []narrative.GeneratorOption{narrative.WithTimeout(cfg.Narrative.Timeout)}
	if completer != nil {
		genOpts = append(genOpts, narrative.WithLiveNarrator(narrative.NewLLMNarrator(completer)))
	}

	catalogSrv, err := service.NewCatalogService(s, cfg.Service.BaseUrl, cfg.Service.CatalogPageSize)
	if err != nil {
		return handlers.Services{}, err
	}

	var archiver report.Archiver
	if cfg.ObjectStore.Enabled() {
		minioArchiver, err := report.NewMinioArchiver(
			report.WithEndpoint(cfg.ObjectStore.Endpoint),
			report.WithBucket(cfg.ObjectStore.Bucket),
			report.WithCredentials(cfg.ObjectStore.AccessKey, cfg.ObjectStore.SecretKey),
			report.WithSSL(cfg.ObjectStore.UseSSL),
		)
		if err != nil {
			return handlers.Services{}, fmt.Errorf("failed to create report archiver: %w", err)
		}
		archiver = minioArchiver
	}

	return handlers.Services{
		Simulation:  service.NewSimulationService(s, narrative.NewGenerator(genOpts...)),
		Catalog:     catalogSrv,
		Cart:        service.NewCartService(s),
		Appointment: service.NewAppointmentService(s, mail.New(cfg), cfg.Mail.From, cfg.Mail.CompanyInbox),
		Chat:        service.NewChatService(completer, cfg.Narrative.Timeout),
		Weather:     service.NewWeatherService(cfg.Weather.URL, cfg.Weather.City, cfg.Weather.Timeout),
		Report:      service.NewReportService(s, archiver),
	}, nil
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	authenticator, err := auth.NewAuthenticator(s.cfg.Service.Auth)
	if err != nil {
		return fmt.Errorf("failed to create authenticator: %w", err)
	}

	services, err := NewServices(ctx, s.cfg, s.store)
	if err != nil {
		return err
	}

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router, err := NewRouter(s.cfg, handlers.NewServiceHandler(services), authenticator, metricMiddleware.Handler)
	if err != nil {
		return err
	}

	go services.Weather.Run(ctx, s.cfg.Weather.RefreshInterval)

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
