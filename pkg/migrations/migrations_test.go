package migrations_test

import (
	"os"
	"path"

	"github.com/peeringlatam/network-planner/internal/config"
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("migrations", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		cfg := config.NewDefault()
		cfg.Database.Type = "sqlite"
		cfg.Database.Name = ":memory:"
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
	})

	AfterAll(func() {
		s.Close()
	})

	tableExists := func(name string) bool {
		var count int64
		tx := gormdb.Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count)
		Expect(tx.Error).To(BeNil())
		return count == 1
	}

	AfterEach(func() {
		for _, table := range []string{"appointments", "cart_items", "carts", "product_images", "products", "simulations", "goose_db_version"} {
			gormdb.Exec("DROP TABLE IF EXISTS " + table)
		}
	})

	Context("store migrations", func() {
		It("fails to migrate the db -- migration folder does not exist", func() {
			err := migrations.MigrateStore(gormdb, "some folder")
			Expect(err).NotTo(BeNil())
		})

		It("fails to migrate the db -- migration folder is a file", func() {
			currentFolder, err := os.Getwd()
			Expect(err).To(BeNil())

			err = migrations.MigrateStore(gormdb, path.Join(currentFolder, "migrations.go"))
			Expect(err).NotTo(BeNil())
		})

		It("successfully migrates the db from the bundled migrations", func() {
			Expect(migrations.MigrateStore(gormdb, "")).To(Succeed())

			for _, table := range []string{"simulations", "products", "product_images", "carts", "cart_items", "appointments"} {
				Expect(tableExists(table)).To(BeTrue(), table)
			}

			version, err := migrations.Version(gormdb)
			Expect(err).To(BeNil())
			Expect(version).To(BeNumerically(">", 0))
		})

		It("successfully migrates the db from a folder", func() {
			currentFolder, err := os.Getwd()
			Expect(err).To(BeNil())

			Expect(migrations.MigrateStore(gormdb, path.Join(currentFolder, "sql", "sqlite"))).To(Succeed())
			Expect(tableExists("simulations")).To(BeTrue())
		})

		It("is idempotent", func() {
			Expect(migrations.MigrateStore(gormdb, "")).To(Succeed())
			Expect(migrations.MigrateStore(gormdb, "")).To(Succeed())
		})
	})
})
