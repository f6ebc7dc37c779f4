package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/peeringlatam/network-planner/internal/estimation"
	"github.com/peeringlatam/network-planner/internal/llm"
)

var localeDirectives = map[estimation.Locale]string{
	estimation.LocaleES: "Responde en español",
	estimation.LocaleEN: "Respond in English",
	estimation.LocalePT: "Responda em português",
}

const (
	analysisRole = "You are a senior network and telecommunications consultant. " +
		"Write precise, technical and persuasive analyses for prospective customers."
	recommendationsRole = "You are a network consultant who gives practical, actionable advice."
)

// LLMNarrator asks a language model for the text.
type LLMNarrator struct {
	completer llm.Completer
}

func NewLLMNarrator(completer llm.Completer) *LLMNarrator {
	return &LLMNarrator{completer: completer}
}

func (n *LLMNarrator) Narrate(ctx context.Context, kind Kind, summary Summary) (string, error) {
	directive := localeDirectives[summary.Locale()]

	var system, user string
	switch kind {
	case KindAnalysis:
		system = fmt.Sprintf("%s. %s", directive, analysisRole)
		user = analysisPrompt(directive, summary)
	case KindRecommendations:
		system = fmt.Sprintf("%s. %s", directive, recommendationsRole)
		user = recommendationsPrompt(directive, summary)
	default:
		return "", fmt.Errorf("unknown narrative kind %q", kind)
	}

	text, err := n.completer.Complete(ctx, system, user)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", llm.ErrEmptyCompletion
	}
	return text, nil
}

func analysisPrompt(directive string, s Summary) string {
	r := s.Result
	in := r.Input

	var b strings.Builder
	fmt.Fprintf(&b, "%s.\n\n", directive)
	b.WriteString("Analyze the following customer network and the projected effect of the selected services.\n\n")
	b.WriteString("CURRENT NETWORK\n")
	fmt.Fprintf(&b, "- Latency: %g ms\n", in.LatencyMs)
	fmt.Fprintf(&b, "- Packet loss: %g%%\n", in.PacketLossPct)
	fmt.Fprintf(&b, "- Bandwidth: %g Mbps\n", in.BandwidthMbps)
	fmt.Fprintf(&b, "- Peak traffic: %g Gbps\n", in.PeakTrafficGbps)
	fmt.Fprintf(&b, "- Concurrent users: %d\n\n", in.ConcurrentUsers)
	fmt.Fprintf(&b, "SELECTED SERVICES\n%s\n\n", ServiceNames(in.Services, s.Locale()))
	b.WriteString("PROJECTED RESULTS\n")
	fmt.Fprintf(&b, "- Improved latency: %.2f ms (%.1f%% better)\n", r.ImprovedLatencyMs, r.LatencyImprovementPct)
	fmt.Fprintf(&b, "- Improved packet loss: %.2f%% (%.1f%% better)\n", r.ImprovedPacketLossPct, r.PacketLossImprovementPct)
	fmt.Fprintf(&b, "- Improved bandwidth: %.2f Mbps (%.1f%% more)\n", r.ImprovedBandwidthMbps, r.BandwidthImprovementPct)
	fmt.Fprintf(&b, "- Overall improvement: %.1f%%\n", r.OverallImprovementPct)
	fmt.Fprintf(&b, "- Monthly investment: $%s USD\n", r.EstimatedMonthlyCost.StringFixed(2))
	fmt.Fprintf(&b, "- Estimated payback: %d months\n\n", r.EstimatedROIMonths)
	b.WriteString("Cover the current situation, how each selected service helps, the concrete benefits and the key metrics to watch. ")
	b.WriteString("Keep a professional tone.")
	return b.String()
}

func recommendationsPrompt(directive string, s Summary) string {
	in := s.Result.Input

	var b strings.Builder
	fmt.Fprintf(&b, "%s.\n\n", directive)
	fmt.Fprintf(&b, "Network: latency %g ms, packet loss %g%%, %d concurrent users, services: %s.\n\n",
		in.LatencyMs, in.PacketLossPct, in.ConcurrentUsers, ServiceNames(in.Services, s.Locale()))
	b.WriteString("Give 4 to 5 specific, actionable recommendations to optimize this network. ")
	b.WriteString("One or two sentences each, as a numbered list.")
	return b.String()
}
