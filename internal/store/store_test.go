package store_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/peeringlatam/network-planner/internal/config"
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/internal/store/model"
	"github.com/peeringlatam/network-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestStore() (store.Store, *gorm.DB) {
	cfg := config.NewDefault()
	cfg.Database.Type = "sqlite"
	cfg.Database.Name = ":memory:"

	db, err := store.InitDB(cfg)
	Expect(err).To(BeNil())
	Expect(migrations.MigrateStore(db, "")).To(Succeed())

	return store.NewStore(db), db
}

func newSimulation(username string, services ...string) model.Simulation {
	user := username
	return model.Simulation{
		Username:             &user,
		LatencyMs:            45,
		PacketLossPct:        2.5,
		BandwidthMbps:        100,
		PeakTrafficGbps:      10,
		ConcurrentUsers:      5000,
		Services:             model.JoinServices(services),
		Locale:               "es",
		EstimatedMonthlyCost: decimal.NewFromInt(1300),
		EstimatedROIMonths:   6,
	}
}

var _ = Describe("store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		ctx    context.Context
	)

	BeforeAll(func() {
		s, gormdb = newTestStore()
		ctx = context.TODO()
	})

	AfterAll(func() {
		s.Close()
	})

	Context("simulation", func() {
		AfterEach(func() {
			gormdb.Exec("DELETE FROM simulations;")
		})

		It("creates and reads back a simulation", func() {
			created, err := s.Simulation().Create(ctx, newSimulation("alice", "pmaas", "cdn"))
			Expect(err).To(BeNil())
			Expect(created.ID).NotTo(Equal(uuid.Nil))

			got, err := s.Simulation().Get(ctx, created.ID)
			Expect(err).To(BeNil())
			Expect(got.ServiceList()).To(Equal([]string{"pmaas", "cdn"}))
			Expect(got.EstimatedMonthlyCost.Equal(decimal.NewFromInt(1300))).To(BeTrue())
			Expect(*got.Username).To(Equal("alice"))
		})

		It("returns ErrRecordNotFound for an unknown id", func() {
			_, err := s.Simulation().Get(ctx, uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		It("lists by username and service", func() {
			_, err := s.Simulation().Create(ctx, newSimulation("alice", "pmaas"))
			Expect(err).To(BeNil())
			_, err = s.Simulation().Create(ctx, newSimulation("alice", "cdn", "ddos"))
			Expect(err).To(BeNil())
			_, err = s.Simulation().Create(ctx, newSimulation("bob", "ddos"))
			Expect(err).To(BeNil())

			alice, err := s.Simulation().List(ctx, store.NewSimulationQueryFilter().ByUsername("alice"), nil)
			Expect(err).To(BeNil())
			Expect(alice).To(HaveLen(2))

			ddos, err := s.Simulation().Count(ctx, store.NewSimulationQueryFilter().ByService("ddos"))
			Expect(err).To(BeNil())
			Expect(ddos).To(BeNumerically("==", 2))

			limited, err := s.Simulation().List(ctx, nil, store.NewQueryOptions().WithLimit(1))
			Expect(err).To(BeNil())
			Expect(limited).To(HaveLen(1))
		})

		It("updates the narrative", func() {
			created, err := s.Simulation().Create(ctx, newSimulation("alice", "pmaas"))
			Expect(err).To(BeNil())

			updated, err := s.Simulation().UpdateNarrative(ctx, created.ID, store.NarrativeUpdate{
				Analysis:              "analysis",
				Recommendations:       "recommendations",
				AnalysisSource:        "template",
				RecommendationsSource: "llm",
			})
			Expect(err).To(BeNil())
			Expect(updated.AnalysisText).To(Equal("analysis"))
			Expect(updated.RecommendationsSource).To(Equal("llm"))

			_, err = s.Simulation().UpdateNarrative(ctx, uuid.New(), store.NarrativeUpdate{})
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("product", func() {
		AfterEach(func() {
			gormdb.Exec("DELETE FROM product_images;")
			gormdb.Exec("DELETE FROM products;")
		})

		It("upserts products by name and replaces images", func() {
			p, err := s.Product().Upsert(ctx, model.Product{
				Name:        "Anti-DDoS",
				Description: "first",
				Price:       decimal.RequireFromString("600.00"),
				Images:      []model.ProductImage{{URL: "/a.png"}, {URL: "/b.png"}},
			})
			Expect(err).To(BeNil())
			Expect(p.Images).To(HaveLen(2))
			Expect(p.Images[0].URL).To(Equal("/a.png"))

			again, err := s.Product().Upsert(ctx, model.Product{
				Name:        "Anti-DDoS",
				Description: "second",
				Price:       decimal.RequireFromString("650.00"),
				Images:      []model.ProductImage{{URL: "/c.png"}},
			})
			Expect(err).To(BeNil())
			Expect(again.ID).To(Equal(p.ID))
			Expect(again.Description).To(Equal("second"))
			Expect(again.Images).To(HaveLen(1))

			count, err := s.Product().Count(ctx)
			Expect(err).To(BeNil())
			Expect(count).To(BeNumerically("==", 1))
		})

		It("seeds the catalog idempotently", func() {
			catalog, err := store.LoadCatalog()
			Expect(err).To(BeNil())
			Expect(len(catalog)).To(BeNumerically(">=", 6))

			Expect(s.Seed(ctx)).To(Succeed())
			Expect(s.Seed(ctx)).To(Succeed())

			count, err := s.Product().Count(ctx)
			Expect(err).To(BeNil())
			Expect(count).To(BeNumerically("==", len(catalog)))

			page, err := s.Product().List(ctx, store.NewQueryOptions().WithSortOrder(store.SortByID).WithLimit(2).WithOffset(2))
			Expect(err).To(BeNil())
			Expect(page).To(HaveLen(2))
			Expect(page[0].Name).To(Equal(catalog[2].Name))
		})

		It("returns ErrRecordNotFound for an unknown product", func() {
			_, err := s.Product().Get(ctx, 4242)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("cart", func() {
		var product *model.Product

		BeforeEach(func() {
			var err error
			product, err = s.Product().Upsert(ctx, model.Product{Name: "CDN", Description: "edge", Price: decimal.RequireFromString("800.00")})
			Expect(err).To(BeNil())
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM cart_items;")
			gormdb.Exec("DELETE FROM carts;")
			gormdb.Exec("DELETE FROM products;")
		})

		It("increments the quantity when the same product is added twice", func() {
			cart, err := s.Cart().Create(ctx)
			Expect(err).To(BeNil())

			_, err = s.Cart().AddItem(ctx, cart.ID, product.ID)
			Expect(err).To(BeNil())
			cart, err = s.Cart().AddItem(ctx, cart.ID, product.ID)
			Expect(err).To(BeNil())

			Expect(cart.Items).To(HaveLen(1))
			Expect(cart.Items[0].Quantity).To(Equal(2))
			Expect(cart.Items[0].Product.Name).To(Equal("CDN"))
			Expect(cart.Total().Equal(decimal.NewFromInt(1600))).To(BeTrue())
		})

		It("removes a line and ignores missing lines", func() {
			cart, err := s.Cart().Create(ctx)
			Expect(err).To(BeNil())
			_, err = s.Cart().AddItem(ctx, cart.ID, product.ID)
			Expect(err).To(BeNil())

			cart, err = s.Cart().RemoveItem(ctx, cart.ID, product.ID)
			Expect(err).To(BeNil())
			Expect(cart.Items).To(BeEmpty())

			_, err = s.Cart().RemoveItem(ctx, cart.ID, product.ID)
			Expect(err).To(BeNil())
		})

		It("rejects unknown carts and products", func() {
			_, err := s.Cart().AddItem(ctx, uuid.New(), product.ID)
			Expect(err).To(MatchError(store.ErrRecordNotFound))

			cart, err := s.Cart().Create(ctx)
			Expect(err).To(BeNil())
			_, err = s.Cart().AddItem(ctx, cart.ID, product.ID+100)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("appointment", func() {
		AfterEach(func() {
			gormdb.Exec("DELETE FROM appointments;")
		})

		It("creates an appointment and updates its status", func() {
			a, err := s.Appointment().Create(ctx, model.Appointment{
				Username: "alice",
				Email:    "alice@example.com",
				Date:     "2026-11-02",
				Hour:     "10:00",
				Subject:  "peering review",
			})
			Expect(err).To(BeNil())
			Expect(a.Status).To(Equal(model.AppointmentPending))

			Expect(s.Appointment().UpdateStatus(ctx, a.ID, model.AppointmentConfirmed)).To(Succeed())
			got, err := s.Appointment().Get(ctx, a.ID)
			Expect(err).To(BeNil())
			Expect(got.Status).To(Equal(model.AppointmentConfirmed))

			list, err := s.Appointment().List(ctx, store.NewAppointmentQueryFilter().ByUsername("alice"))
			Expect(err).To(BeNil())
			Expect(list).To(HaveLen(1))

			list, err = s.Appointment().List(ctx, store.NewAppointmentQueryFilter().BySlot("2026-11-02", "11:00"))
			Expect(err).To(BeNil())
			Expect(list).To(BeEmpty())

			Expect(s.Appointment().UpdateStatus(ctx, uuid.New(), model.AppointmentConfirmed)).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("statistics", func() {
		AfterEach(func() {
			gormdb.Exec("DELETE FROM simulations;")
		})

		It("counts simulations per service", func() {
			_, err := s.Simulation().Create(ctx, newSimulation("alice", "pmaas", "cdn"))
			Expect(err).To(BeNil())
			_, err = s.Simulation().Create(ctx, newSimulation("bob", "cdn"))
			Expect(err).To(BeNil())

			stats, err := s.Statistics(ctx)
			Expect(err).To(BeNil())
			Expect(stats.TotalSimulations).To(BeNumerically("==", 2))
			Expect(stats.SimulationsByService["cdn"]).To(BeNumerically("==", 2))
			Expect(stats.SimulationsByService["pmaas"]).To(BeNumerically("==", 1))
			Expect(stats.SimulationsByService["ddos"]).To(BeNumerically("==", 0))
		})
	})

	Context("transaction", func() {
		AfterEach(func() {
			gormdb.Exec("DELETE FROM simulations;")
		})

		It("rolls back writes", func() {
			txCtx, err := s.NewTransactionContext(ctx)
			Expect(err).To(BeNil())

			_, err = s.Simulation().Create(txCtx, newSimulation("alice", "pmaas"))
			Expect(err).To(BeNil())

			_, err = store.Rollback(txCtx)
			Expect(err).To(BeNil())

			count, err := s.Simulation().Count(ctx, nil)
			Expect(err).To(BeNil())
			Expect(count).To(BeNumerically("==", 0))
		})

		It("commits writes", func() {
			txCtx, err := s.NewTransactionContext(ctx)
			Expect(err).To(BeNil())

			_, err = s.Simulation().Create(txCtx, newSimulation("alice", "pmaas"))
			Expect(err).To(BeNil())

			_, err = store.Commit(txCtx)
			Expect(err).To(BeNil())

			count, err := s.Simulation().Count(ctx, nil)
			Expect(err).To(BeNil())
			Expect(count).To(BeNumerically("==", 1))
		})
	})
})
