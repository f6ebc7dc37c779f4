package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/peeringlatam/network-planner/internal/estimation"
	"github.com/peeringlatam/network-planner/internal/service"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("chat service", func() {
	ctx := context.TODO()

	It("answers through the completer", func() {
		completer := &fakeCompleter{reply: "  We offer PMaaS.  "}
		svc := service.NewChatService(completer, time.Second)

		reply, err := svc.Reply(ctx, "what do you sell?", estimation.LocaleEN)
		Expect(err).To(BeNil())
		Expect(reply).To(Equal("We offer PMaaS."))
		Expect(completer.user).To(Equal("what do you sell?"))
		Expect(completer.system).To(ContainSubstring("Answer in English."))
	})

	It("rejects empty messages", func() {
		svc := service.NewChatService(&fakeCompleter{reply: "x"}, time.Second)

		_, err := svc.Reply(ctx, "   ", estimation.LocaleES)
		var invalid *service.ErrInvalidChatMessage
		Expect(errors.As(err, &invalid)).To(BeTrue())
	})

	It("returns the localized unavailable reply without provider", func() {
		svc := service.NewChatService(nil, time.Second)

		_, err := svc.Reply(ctx, "hola", estimation.LocalePT)
		var unavailable *service.ErrChatUnavailable
		Expect(errors.As(err, &unavailable)).To(BeTrue())
		Expect(unavailable.Reply).To(ContainSubstring("assistente"))
	})

	It("returns the unavailable reply when the provider fails", func() {
		svc := service.NewChatService(&fakeCompleter{err: errors.New("boom")}, time.Second)

		_, err := svc.Reply(ctx, "hola", "")
		var unavailable *service.ErrChatUnavailable
		Expect(errors.As(err, &unavailable)).To(BeTrue())
		Expect(unavailable.Reply).To(ContainSubstring("asistente"))
	})

	It("treats an empty completion as a failure", func() {
		svc := service.NewChatService(&fakeCompleter{reply: " "}, time.Second)

		_, err := svc.Reply(ctx, "hola", estimation.LocaleES)
		var unavailable *service.ErrChatUnavailable
		Expect(errors.As(err, &unavailable)).To(BeTrue())
	})
})
