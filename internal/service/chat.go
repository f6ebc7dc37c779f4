package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/peeringlatam/network-planner/internal/estimation"
	"github.com/peeringlatam/network-planner/internal/llm"
	"github.com/peeringlatam/network-planner/pkg/log"
	"github.com/peeringlatam/network-planner/pkg/metrics"
)

const (
	defaultChatTimeout = 20 * time.Second

	chatSystemPrompt = "You are the virtual assistant of the Peering Latam website. " +
		"Answer technical questions and frequent questions about our services, products and processes, " +
		"and give general support. Do not book appointments and do not ask for personal data. " +
		"Keep a professional, clear and friendly tone and invite visitors to try our services."
)

var unavailableReplies = map[estimation.Locale]string{
	estimation.LocaleES: "El asistente no está disponible en este momento. Por favor intenta más tarde.",
	estimation.LocaleEN: "The assistant is not available right now. Please try again later.",
	estimation.LocalePT: "O assistente não está disponível no momento. Por favor, tente mais tarde.",
}

type ChatService struct {
	completer llm.Completer
	timeout   time.Duration
	logger    *log.StructuredLogger
}

// NewChatService returns a chat service. A nil completer makes every message answer with the
// unavailable reply.
func NewChatService(completer llm.Completer, timeout time.Duration) *ChatService {
	if timeout <= 0 {
		timeout = defaultChatTimeout
	}
	return &ChatService{
		completer: completer,
		timeout:   timeout,
		logger:    log.NewDebugLogger("chat_service"),
	}
}

func (c *ChatService) Reply(ctx context.Context, message string, locale estimation.Locale) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		metrics.IncreaseChatRequestsMetric("invalid")
		return "", NewErrInvalidChatMessage()
	}
	if !locale.Valid() {
		locale = estimation.LocaleES
	}

	tracer := c.logger.WithContext(ctx).Operation("chat_reply").
		WithInt("message_length", len(message)).
		WithString("locale", string(locale)).
		Build()

	if c.completer == nil {
		metrics.IncreaseChatRequestsMetric("unavailable")
		tracer.Error(llm.ErrNotConfigured).Log()
		return "", NewErrChatUnavailable(unavailableReplies[locale], llm.ErrNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply, err := c.completer.Complete(ctx, chatSystemPrompt+" "+directiveFor(locale), message)
	if err == nil && strings.TrimSpace(reply) == "" {
		err = llm.ErrEmptyCompletion
	}
	if err != nil {
		outcome := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = "timeout"
		}
		metrics.IncreaseChatRequestsMetric(outcome)
		tracer.Error(err).Log()
		return "", NewErrChatUnavailable(unavailableReplies[locale], err)
	}

	metrics.IncreaseChatRequestsMetric("ok")
	tracer.Success().WithInt("reply_length", len(reply)).Log()
	return strings.TrimSpace(reply), nil
}

func directiveFor(locale estimation.Locale) string {
	switch locale {
	case estimation.LocaleEN:
		return "Answer in English."
	case estimation.LocalePT:
		return "Responda em português."
	default:
		return "Responde en español."
	}
}
