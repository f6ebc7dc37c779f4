package narrative

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/peeringlatam/network-planner/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultTimeout = 20 * time.Second

const (
	reasonNotConfigured = "not_configured"
	reasonTimeout       = "timeout"
	reasonError         = "error"
	reasonEmpty         = "empty"
)

// Generator produces both texts of a simulation, falling back to the templates whenever
// the live narrator is absent or fails.
type Generator struct {
	live     Narrator
	fallback *TemplateNarrator
	timeout  time.Duration
}

type GeneratorOption func(*Generator)

// WithLiveNarrator sets the narrator tried first. A nil narrator disables it.
func WithLiveNarrator(n Narrator) GeneratorOption {
	return func(g *Generator) {
		g.live = n
	}
}

// WithTimeout bounds each live attempt. Non-positive values are ignored.
func WithTimeout(d time.Duration) GeneratorOption {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		fallback: NewTemplateNarrator(),
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate never fails: every text is either produced by the live narrator or rendered
// from the locale templates. Both texts are requested concurrently with one attempt each.
func (g *Generator) Generate(ctx context.Context, summary Summary) Narrative {
	var n Narrative

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		n.Analysis, n.AnalysisSource = g.text(gctx, KindAnalysis, summary)
		return nil
	})
	group.Go(func() error {
		n.Recommendations, n.RecommendationsSource = g.text(gctx, KindRecommendations, summary)
		return nil
	})
	_ = group.Wait()

	return n
}

func (g *Generator) text(ctx context.Context, kind Kind, summary Summary) (string, Source) {
	if g.live == nil {
		return g.render(kind, summary, reasonNotConfigured, nil), SourceTemplate
	}

	attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.live.Narrate(attemptCtx, kind, summary)
	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(attemptCtx.Err(), context.DeadlineExceeded)):
		return g.render(kind, summary, reasonTimeout, err), SourceTemplate
	case err != nil:
		return g.render(kind, summary, reasonError, err), SourceTemplate
	case strings.TrimSpace(text) == "":
		return g.render(kind, summary, reasonEmpty, nil), SourceTemplate
	}
	return strings.TrimSpace(text), SourceLLM
}

func (g *Generator) render(kind Kind, summary Summary, reason string, cause error) string {
	metrics.IncreaseNarrativeFallbackMetric(string(kind), reason)

	logger := zap.S().Named("narrative")
	if cause != nil {
		logger.Warnw("narrative unavailable, using template", "kind", kind, "reason", reason, "error", cause)
	} else {
		logger.Debugw("using template narrative", "kind", kind, "reason", reason)
	}

	text, err := g.fallback.Narrate(context.Background(), kind, summary)
	if err != nil || text == "" {
		logger.Errorw("failed to render narrative template", "kind", kind, "error", err)
		return lastResort(kind, summary)
	}
	return text
}

func lastResort(kind Kind, s Summary) string {
	r := s.Result
	if kind == KindRecommendations {
		return fmt.Sprintf("%s ms -> %s ms", num(r.Input.LatencyMs), strconv.FormatFloat(r.ImprovedLatencyMs, 'f', 2, 64))
	}
	return fmt.Sprintf("%s%% / %s USD", strconv.FormatFloat(r.OverallImprovementPct, 'f', 1, 64), r.EstimatedMonthlyCost.StringFixed(2))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
