// Package narrative turns a simulation result into analysis and recommendations text.
//
// A live Narrator asks a language model for the text. The TemplateNarrator renders static
// per-locale text and never fails. The Generator composes both so callers always receive text.
package narrative

import (
	"context"

	"github.com/peeringlatam/network-planner/internal/estimation"
)

type Kind string

const (
	KindAnalysis        Kind = "analysis"
	KindRecommendations Kind = "recommendations"
)

// Summary is what a Narrator is allowed to see: the normalized input, the numeric result
// and the locale to answer in.
type Summary struct {
	Result estimation.Result
}

func NewSummary(res *estimation.Result) Summary {
	return Summary{Result: *res}
}

func (s Summary) Locale() estimation.Locale {
	if s.Result.Input.Locale.Valid() {
		return s.Result.Input.Locale
	}
	return estimation.DefaultLocale
}

// Narrator produces one narrative text for a summary.
type Narrator interface {
	Narrate(ctx context.Context, kind Kind, summary Summary) (string, error)
}

// Source tells where a text came from.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceTemplate Source = "template"
)

type Narrative struct {
	Analysis              string
	Recommendations       string
	AnalysisSource        Source
	RecommendationsSource Source
}
