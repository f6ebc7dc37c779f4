package service_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/peeringlatam/network-planner/internal/service"
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var _ = Describe("cart service", Ordered, func() {
	var (
		s       store.Store
		gormdb  *gorm.DB
		svc     *service.CartService
		ctx     context.Context
		pmaas   *model.Product
		antiDoS *model.Product
	)

	BeforeAll(func() {
		s, gormdb = newTestStore()
		svc = service.NewCartService(s)
		ctx = context.TODO()

		var err error
		pmaas, err = s.Product().Upsert(ctx, model.Product{Name: "PMaaS", Description: "d", Price: decimal.RequireFromString("500.00")})
		Expect(err).To(BeNil())
		antiDoS, err = s.Product().Upsert(ctx, model.Product{Name: "Anti-DDoS", Description: "d", Price: decimal.RequireFromString("600.00")})
		Expect(err).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM cart_items;")
		gormdb.Exec("DELETE FROM carts;")
	})

	It("computes subtotals and total", func() {
		cart, err := svc.CreateCart(ctx)
		Expect(err).To(BeNil())

		_, err = svc.AddItem(ctx, cart.ID, pmaas.ID)
		Expect(err).To(BeNil())
		_, err = svc.AddItem(ctx, cart.ID, pmaas.ID)
		Expect(err).To(BeNil())
		cart, err = svc.AddItem(ctx, cart.ID, antiDoS.ID)
		Expect(err).To(BeNil())

		Expect(cart.Items).To(HaveLen(2))
		Expect(cart.Total().Equal(decimal.NewFromInt(1600))).To(BeTrue())
	})

	It("returns not found for an unknown product", func() {
		cart, err := svc.CreateCart(ctx)
		Expect(err).To(BeNil())

		_, err = svc.AddItem(ctx, cart.ID, 4242)
		var notFound *service.ErrResourceNotFound
		Expect(errors.As(err, &notFound)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("product 4242"))
	})

	It("returns not found for an unknown cart", func() {
		_, err := svc.AddItem(ctx, uuid.New(), pmaas.ID)
		var notFound *service.ErrResourceNotFound
		Expect(errors.As(err, &notFound)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("cart"))

		_, err = svc.GetCart(ctx, uuid.New())
		Expect(errors.As(err, &notFound)).To(BeTrue())
	})

	It("removes lines and ignores absent ones", func() {
		cart, err := svc.CreateCart(ctx)
		Expect(err).To(BeNil())
		_, err = svc.AddItem(ctx, cart.ID, pmaas.ID)
		Expect(err).To(BeNil())

		cart, err = svc.RemoveItem(ctx, cart.ID, antiDoS.ID)
		Expect(err).To(BeNil())
		Expect(cart.Items).To(HaveLen(1))

		cart, err = svc.RemoveItem(ctx, cart.ID, pmaas.ID)
		Expect(err).To(BeNil())
		Expect(cart.Items).To(BeEmpty())
		Expect(cart.Total().IsZero()).To(BeTrue())
	})
})
