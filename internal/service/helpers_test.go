package service_test

import (
	"context"
	"sync"

	"github.com/peeringlatam/network-planner/internal/config"
	"github.com/peeringlatam/network-planner/internal/mail"
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/pkg/migrations"
	. "github.com/onsi/gomega"
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
	reply  string
	err    error
	system string
	user   string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.system, f.user = system, user
	return f.reply, f.err
}

type fakeArchiver struct {
	names []string
	err   error
}

func (f *fakeArchiver) Archive(_ context.Context, name, _ string, _ []byte) error {
	f.names = append(f.names, name)
	return f.err
}
