package v1alpha1_test

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/peeringlatam/network-planner/api/v1alpha1"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func simulationForm(services ...string) v1alpha1.SimulationCreate {
	return v1alpha1.SimulationCreate{
		LatencyMs:       45,
		PacketLossPct:   2.5,
		BandwidthMbps:   100,
		PeakTrafficGbps: 10,
		ConcurrentUsers: 500,
		Services:        services,
	}
}

var _ = Describe("simulation handler", Ordered, func() {
	var env *testEnv

	BeforeAll(func() {
		env = newTestEnv()
	})

	AfterAll(func() {
		env.Close()
	})

	AfterEach(func() {
		env.db.Exec("DELETE FROM simulations;")
	})

	It("creates a simulation with the computed result", func() {
		resp, body := env.do(http.MethodPost, "/api/v1/simulations", "", simulationForm("pmaas", "cdn"))
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))

		sim := decode[v1alpha1.Simulation](body)
		Expect(sim.Id).NotTo(Equal(uuid.Nil))
		Expect(sim.Result.ImprovedLatencyMs).To(BeNumerically("~", 15.75, 1e-9))
		Expect(sim.Result.ImprovedPacketLossPct).To(BeNumerically("~", 1.125, 1e-9))
		Expect(sim.Result.ImprovedBandwidthMbps).To(BeNumerically("~", 155, 1e-9))
		Expect(sim.Result.EstimatedMonthlyCost).To(Equal("1300.00"))
		Expect(sim.Result.EstimatedRoiMonths).To(Equal(6))
		Expect(sim.Narrative.AnalysisText).NotTo(BeEmpty())
		Expect(sim.Narrative.AnalysisSource).To(Equal(v1alpha1.NarrativeSourceTemplate))
		Expect(*sim.Input.Locale).To(Equal("es"))
	})

	It("rejects an empty service selection with the violations", func() {
		resp, body := env.do(http.MethodPost, "/api/v1/simulations", "", simulationForm())
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

		apiErr := decode[v1alpha1.Error](body)
		Expect(apiErr.Violations).NotTo(BeEmpty())
		Expect(apiErr.RequestId).NotTo(BeNil())
	})

	It("rejects unknown services and locales", func() {
		form := simulationForm("pmaas", "satellite")
		locale := "fr"
		form.Locale = &locale

		resp, body := env.do(http.MethodPost, "/api/v1/simulations", "", form)
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		Expect(decode[v1alpha1.Error](body).Violations).To(HaveLen(2))
	})

	It("rejects a bandwidth that overflows once improved without storing it", func() {
		form := simulationForm("cdn", "pmaas")
		form.BandwidthMbps = 1.7e308

		resp, body := env.do(http.MethodPost, "/api/v1/simulations", "", form)
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		Expect(decode[v1alpha1.Error](body).Violations).To(ContainElement(ContainSubstring("bandwidth_mbps")))

		var stored int64
		Expect(env.db.Table("simulations").Count(&stored).Error).To(Succeed())
		Expect(stored).To(BeZero())
	})

	It("rejects a malformed body", func() {
		resp, _ := env.do(http.MethodPost, "/api/v1/simulations", "", "not an object")
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("gets an anonymous simulation", func() {
		_, body := env.do(http.MethodPost, "/api/v1/simulations", "", simulationForm("ddos"))
		created := decode[v1alpha1.Simulation](body)

		resp, body := env.do(http.MethodGet, fmt.Sprintf("/api/v1/simulations/%s", created.Id), "bob", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(decode[v1alpha1.Simulation](body).Id).To(Equal(created.Id))
	})

	It("forbids reading a simulation of another user", func() {
		_, body := env.do(http.MethodPost, "/api/v1/simulations", "alice", simulationForm("cdn"))
		created := decode[v1alpha1.Simulation](body)

		resp, _ := env.do(http.MethodGet, fmt.Sprintf("/api/v1/simulations/%s", created.Id), "bob", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusForbidden))

		resp, _ = env.do(http.MethodGet, fmt.Sprintf("/api/v1/simulations/%s", created.Id), "alice", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
	})

	It("returns 404 for a missing simulation and 400 for a bad id", func() {
		resp, _ := env.do(http.MethodGet, fmt.Sprintf("/api/v1/simulations/%s", uuid.New()), "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))

		resp, _ = env.do(http.MethodGet, "/api/v1/simulations/not-a-uuid", "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("lists the simulations of the user", func() {
		env.do(http.MethodPost, "/api/v1/simulations", "alice", simulationForm("cdn"))
		env.do(http.MethodPost, "/api/v1/simulations", "alice", simulationForm("pmaas"))
		env.do(http.MethodPost, "/api/v1/simulations", "bob", simulationForm("pmaas"))

		resp, body := env.do(http.MethodGet, "/api/v1/simulations", "alice", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(decode[v1alpha1.SimulationList](body)).To(HaveLen(2))

		resp, body = env.do(http.MethodGet, "/api/v1/simulations?limit=1", "alice", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(decode[v1alpha1.SimulationList](body)).To(HaveLen(1))
	})

	It("requires a user to list simulations", func() {
		resp, _ := env.do(http.MethodGet, "/api/v1/simulations", "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
	})

	It("regenerates the narrative", func() {
		_, body := env.do(http.MethodPost, "/api/v1/simulations", "alice", simulationForm("analytics"))
		created := decode[v1alpha1.Simulation](body)

		resp, body := env.do(http.MethodPost, fmt.Sprintf("/api/v1/simulations/%s/narrative?persist=true", created.Id), "alice", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(decode[v1alpha1.Simulation](body).Narrative.RecommendationsText).NotTo(BeEmpty())

		resp, _ = env.do(http.MethodPost, fmt.Sprintf("/api/v1/simulations/%s/narrative?persist=maybe", created.Id), "alice", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("only previews the narrative of an anonymous simulation", func() {
		_, body := env.do(http.MethodPost, "/api/v1/simulations", "", simulationForm("analytics"))
		created := decode[v1alpha1.Simulation](body)

		resp, _ := env.do(http.MethodPost, fmt.Sprintf("/api/v1/simulations/%s/narrative?persist=true", created.Id), "bob", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusForbidden))

		resp, _ = env.do(http.MethodPost, fmt.Sprintf("/api/v1/simulations/%s/narrative", created.Id), "bob", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
	})

	It("lists the service table", func() {
		resp, body := env.do(http.MethodGet, "/api/v1/services", "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		services := decode[[]v1alpha1.ServiceInfo](body)
		Expect(services).To(HaveLen(4))
		Expect(services[0].Id).To(Equal("pmaas"))
		Expect(services[0].MonthlyCost).To(Equal("500.00"))
	})
})

var _ = Describe("catalog handler", Ordered, func() {
	var env *testEnv

	BeforeAll(func() {
		env = newTestEnv()
	})

	AfterAll(func() {
		env.Close()
	})

	It("returns the first page", func() {
		resp, body := env.do(http.MethodGet, "/api/v1/catalog", "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		page := decode[v1alpha1.CatalogPage](body)
		Expect(page.Page).To(Equal(1))
		Expect(page.Products).To(HaveLen(6))
		Expect(page.TotalProducts).To(BeNumerically("==", 7))
		Expect(page.HasNext).To(BeTrue())
		Expect(page.HasPrevious).To(BeFalse())
	})

	It("clamps pages out of range to the last page", func() {
		_, body := env.do(http.MethodGet, "/api/v1/catalog?page=99", "", nil)
		page := decode[v1alpha1.CatalogPage](body)
		Expect(page.Page).To(Equal(2))
		Expect(page.Products).To(HaveLen(1))
	})

	It("falls back to the first page on garbage", func() {
		_, body := env.do(http.MethodGet, "/api/v1/catalog?page=abc", "", nil)
		Expect(decode[v1alpha1.CatalogPage](body).Page).To(Equal(1))
	})

	It("serves the product feed with absolute urls", func() {
		resp, body := env.do(http.MethodGet, "/api/v1/products", "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		feed := decode[v1alpha1.ProductFeed](body)
		Expect(feed.Status).To(Equal("success"))
		Expect(feed.TotalProducts).To(Equal(7))
		Expect(feed.Provider).To(Equal("Peering Latam"))
		Expect(feed.Products[0].Url).To(HavePrefix("http://planner.example/"))
	})

	It("gets a product or 404", func() {
		resp, body := env.do(http.MethodGet, "/api/v1/products/1", "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(decode[v1alpha1.Product](body).Id).To(BeNumerically("==", 1))

		resp, _ = env.do(http.MethodGet, "/api/v1/products/999", "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))

		resp, _ = env.do(http.MethodGet, "/api/v1/products/zero", "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
	})
})

var _ = Describe("cart handler", Ordered, func() {
	var env *testEnv

	BeforeAll(func() {
		env = newTestEnv()
	})

	AfterAll(func() {
		env.Close()
	})

	It("adds, increments and removes lines", func() {
		resp, body := env.do(http.MethodPost, "/api/v1/carts", "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))
		cart := decode[v1alpha1.Cart](body)
		Expect(cart.Items).To(BeEmpty())
		Expect(cart.Total).To(Equal("0.00"))

		env.do(http.MethodPost, fmt.Sprintf("/api/v1/carts/%s/items/1", cart.Id), "", nil)
		resp, body = env.do(http.MethodPost, fmt.Sprintf("/api/v1/carts/%s/items/1", cart.Id), "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		cart = decode[v1alpha1.Cart](body)
		Expect(cart.Items).To(HaveLen(1))
		Expect(cart.Items[0].Quantity).To(Equal(2))

		resp, body = env.do(http.MethodDelete, fmt.Sprintf("/api/v1/carts/%s/items/1", cart.Id), "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(decode[v1alpha1.Cart](body).Items).To(BeEmpty())
	})

	It("returns 404 for unknown carts and products", func() {
		resp, _ := env.do(http.MethodGet, fmt.Sprintf("/api/v1/carts/%s", uuid.New()), "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))

		_, body := env.do(http.MethodPost, "/api/v1/carts", "", nil)
		cart := decode[v1alpha1.Cart](body)
		resp, _ = env.do(http.MethodPost, fmt.Sprintf("/api/v1/carts/%s/items/999", cart.Id), "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
	})
})

var _ = Describe("appointment handler", Ordered, func() {
	var env *testEnv

	BeforeAll(func() {
		env = newTestEnv()
	})

	AfterAll(func() {
		env.Close()
	})

	AfterEach(func() {
		env.mailer.err = nil
		env.db.Exec("DELETE FROM appointments;")
	})

	It("lists the slots", func() {
		resp, body := env.do(http.MethodGet, "/api/v1/appointments/slots", "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		slots := decode[v1alpha1.AppointmentSlots](body)
		Expect(slots.Today).To(Equal("2026-10-14"))
		Expect(slots.Slots).To(HaveLen(12))
	})

	It("books an appointment and mails the confirmation", func() {
		form := v1alpha1.AppointmentCreate{Date: "2026-10-20", Hour: "10:00", Subject: "CDN demo"}
		resp, body := env.do(http.MethodPost, "/api/v1/appointments", "alice", form)
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))

		appointment := decode[v1alpha1.Appointment](body)
		Expect(appointment.Username).To(Equal("alice"))
		Expect(appointment.Status).To(Equal(v1alpha1.AppointmentStatusConfirmed))
		Expect(env.mailer.sent).NotTo(BeEmpty())

		resp, body = env.do(http.MethodGet, "/api/v1/appointments", "alice", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(decode[v1alpha1.AppointmentList](body)).To(HaveLen(1))
	})

	It("rejects invalid forms", func() {
		resp, body := env.do(http.MethodPost, "/api/v1/appointments", "alice", v1alpha1.AppointmentCreate{Date: "tomorrow", Hour: "10:00"})
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
		Expect(decode[v1alpha1.Error](body).Violations).To(HaveLen(2))

		resp, _ = env.do(http.MethodPost, "/api/v1/appointments", "alice", v1alpha1.AppointmentCreate{Date: "2026-10-01", Hour: "10:00", Subject: "late"})
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

		resp, _ = env.do(http.MethodPost, "/api/v1/appointments", "alice", v1alpha1.AppointmentCreate{Date: "2026-10-20", Hour: "21:00", Subject: "late"})
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("returns 502 when the confirmation cannot be sent", func() {
		env.mailer.err = errors.New("relay down")

		form := v1alpha1.AppointmentCreate{Date: "2026-10-20", Hour: "11:00", Subject: "PMaaS"}
		resp, body := env.do(http.MethodPost, "/api/v1/appointments", "alice", form)
		Expect(resp.StatusCode).To(Equal(http.StatusBadGateway))
		Expect(string(body)).To(ContainSubstring(`"status":"mail_failed"`))
	})

	It("requires a user", func() {
		form := v1alpha1.AppointmentCreate{Date: "2026-10-20", Hour: "10:00", Subject: "CDN demo"}
		resp, _ := env.do(http.MethodPost, "/api/v1/appointments", "", form)
		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
	})
})

var _ = Describe("chat handler", Ordered, func() {
	var env *testEnv

	BeforeAll(func() {
		env = newTestEnv()
	})

	AfterAll(func() {
		env.Close()
	})

	AfterEach(func() {
		env.completer.err = nil
	})

	It("replies through the completer", func() {
		resp, body := env.do(http.MethodPost, "/api/v1/chat", "alice", v1alpha1.ChatRequest{Message: "hola"})
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(decode[v1alpha1.ChatReply](body).Reply).To(Equal("Hola, ¿en qué puedo ayudarte?"))
	})

	It("rejects an empty message", func() {
		resp, _ := env.do(http.MethodPost, "/api/v1/chat", "alice", v1alpha1.ChatRequest{Message: "   "})
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("answers 503 with a localized reply when the completer fails", func() {
		env.completer.err = errors.New("quota exceeded")
		locale := "en"

		resp, body := env.do(http.MethodPost, "/api/v1/chat", "alice", v1alpha1.ChatRequest{Message: "hello", Locale: &locale})
		Expect(resp.StatusCode).To(Equal(http.StatusServiceUnavailable))
		Expect(decode[v1alpha1.ChatReply](body).Reply).NotTo(BeEmpty())
	})

	It("requires a user", func() {
		resp, _ := env.do(http.MethodPost, "/api/v1/chat", "", v1alpha1.ChatRequest{Message: "hola"})
		Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
	})
})

var _ = Describe("report and weather handlers", Ordered, func() {
	var env *testEnv

	BeforeAll(func() {
		env = newTestEnv()
	})

	AfterAll(func() {
		env.Close()
	})

	It("serves the product report as an attachment", func() {
		resp, body := env.do(http.MethodGet, "/api/v1/reports/products?format=csv", "alice", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("Content-Disposition")).To(ContainSubstring("reporte_productos.csv"))
		Expect(string(body)).To(ContainSubstring("PMaaS Starter"))
	})

	It("rejects unsupported formats", func() {
		resp, _ := env.do(http.MethodGet, "/api/v1/reports/products?format=pdf", "alice", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("serves the current weather", func() {
		resp, body := env.do(http.MethodGet, "/api/v1/weather", "", nil)
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		weather := decode[v1alpha1.Weather](body)
		Expect(weather.Temperature).To(Equal("18"))
		Expect(weather.City).To(Equal("Bogota"))
	})
})
