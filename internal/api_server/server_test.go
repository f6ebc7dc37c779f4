package apiserver_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	apiserver "github.com/peeringlatam/network-planner/internal/api_server"
	"github.com/peeringlatam/network-planner/internal/auth"
	"github.com/peeringlatam/network-planner/internal/config"
	handlers "github.com/peeringlatam/network-planner/internal/handlers/v1alpha1"
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("api server router", Ordered, func() {
	var (
		s  store.Store
		ts *httptest.Server
	)

	get := func(path string) (*http.Response, string) {
		resp, err := http.Get(ts.URL + path)
		Expect(err).To(BeNil())
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		Expect(err).To(BeNil())
		return resp, string(body)
	}

	BeforeAll(func() {
		cfg := config.NewDefault()
		cfg.Database.Type = "sqlite"
		cfg.Database.Name = ":memory:"
		// no network access from the weather service in tests
		cfg.Weather.URL = "http://127.0.0.1:1"

		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())
		Expect(migrations.MigrateStore(db, "")).To(Succeed())
		s = store.NewStore(db)
		Expect(s.Seed(context.TODO())).To(Succeed())

		services, err := apiserver.NewServices(context.TODO(), cfg, s)
		Expect(err).To(BeNil())

		authenticator, err := auth.NewNoneAuthenticator()
		Expect(err).To(BeNil())

		router, err := apiserver.NewRouter(cfg, handlers.NewServiceHandler(services), authenticator)
		Expect(err).To(BeNil())
		ts = httptest.NewServer(router)
	})

	AfterAll(func() {
		ts.Close()
		s.Close()
	})

	It("answers the health probe", func() {
		resp, _ := get("/health")
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
	})

	It("serves the OpenAPI document", func() {
		resp, body := get("/api/v1/openapi.yaml")
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(body).To(ContainSubstring("openapi: 3.0.1"))
	})

	It("routes validated requests to the handlers", func() {
		resp, body := get("/api/v1/services")
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(body).To(ContainSubstring(`"pmaas"`))
		Expect(resp.Header.Get("X-Request-Id")).NotTo(BeEmpty())
	})

	It("rejects requests that do not match the OpenAPI document", func() {
		resp, body := get("/api/v1/simulations?limit=0")
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		Expect(body).To(ContainSubstring("API Error"))

		post, err := http.Post(ts.URL+"/api/v1/simulations", "application/json", strings.NewReader(`{"latency_ms":"fast"}`))
		Expect(err).To(BeNil())
		post.Body.Close()
		Expect(post.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("runs a simulation end to end as the local user", func() {
		resp, err := http.Post(ts.URL+"/api/v1/simulations", "application/json", strings.NewReader(
			`{"latency_ms":45,"packet_loss_pct":2.5,"bandwidth_mbps":100,"peak_traffic_gbps":1,"concurrent_users":10,"services":["pmaas","cdn"]}`))
		Expect(err).To(BeNil())
		defer resp.Body.Close()
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))

		list, body := get("/api/v1/simulations")
		Expect(list.StatusCode).To(Equal(http.StatusOK))
		Expect(body).To(ContainSubstring(`"estimated_monthly_cost":"1300.00"`))
	})

	It("strips the gateway prefix", func() {
		resp, _ := get("/api/network-planner/health")
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
	})
})
