package estimation

import (
	"fmt"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

const MaxConcurrentUsers = 1_000_000

// Engine orchestrates Calculator objects and aggregates their results.
type Engine struct {
	calculators []Calculator
}

// NewEngine creates a new Engine with no calculators registered.
func NewEngine() *Engine {
	return &Engine{
		calculators: make([]Calculator, 0),
	}
}

// Register adds a Calculator to participate in the estimation.
// Calculators are executed in the order they are registered.
// Register panics if a calculator with the same Name() is already registered.
func (e *Engine) Register(c Calculator) {
	for _, existing := range e.calculators {
		if existing.Name() == c.Name() {
			panic(fmt.Sprintf("estimation: calculator %q already registered", c.Name()))
		}
	}
	e.calculators = append(e.calculators, c)
}

// Run validates the input and executes all registered calculators against it.
// A dimension without calculator keeps its baseline value and a zero ratio.
func (e *Engine) Run(in Input) (*Result, error) {
	normalized, err := Normalize(in)
	if err != nil {
		return nil, err
	}

	breakdown := make(map[Dimension]Estimation, len(e.calculators))
	for _, calc := range e.calculators {
		est, err := calc.Calculate(normalized)
		if err != nil {
			return nil, fmt.Errorf("calculator %q failed: %w", calc.Name(), err)
		}
		breakdown[est.Dimension] = est
	}

	ratio := func(d Dimension) decimal.Decimal {
		if est, ok := breakdown[d]; ok {
			return est.Ratio
		}
		return decimal.Zero
	}
	improved := func(d Dimension, baseline float64) float64 {
		if est, ok := breakdown[d]; ok {
			return est.Improved
		}
		return baseline
	}

	hundred := decimal.NewFromInt(100)
	sum := decimal.Zero
	for _, d := range Dimensions {
		sum = sum.Add(ratio(d))
	}
	overall := sum.Div(decimal.NewFromInt(int64(len(Dimensions)))).Mul(hundred)

	latency := improved(DimensionLatency, normalized.LatencyMs)
	packetLoss := improved(DimensionPacketLoss, normalized.PacketLossPct)
	bandwidth := improved(DimensionBandwidth, normalized.BandwidthMbps)

	// a finite baseline near the float64 limit can still overflow once improved
	var violations []string
	for _, v := range []struct {
		field string
		value float64
	}{
		{"latency_ms", latency},
		{"packet_loss_pct", packetLoss},
		{"bandwidth_mbps", bandwidth},
	} {
		if !isFinite(v.value) {
			violations = append(violations, fmt.Sprintf("%s is too large to estimate", v.field))
		}
	}
	if len(violations) > 0 {
		return nil, NewErrInvalidInput(violations...)
	}

	cost := MonthlyCost(normalized.Services)

	return &Result{
		Input:                    normalized,
		ImprovedLatencyMs:        latency,
		ImprovedPacketLossPct:    packetLoss,
		ImprovedBandwidthMbps:    bandwidth,
		LatencyImprovementPct:    ratio(DimensionLatency).Mul(hundred).InexactFloat64(),
		PacketLossImprovementPct: ratio(DimensionPacketLoss).Mul(hundred).InexactFloat64(),
		BandwidthImprovementPct:  ratio(DimensionBandwidth).Mul(hundred).InexactFloat64(),
		OverallImprovementPct:    overall.InexactFloat64(),
		EstimatedMonthlyCost:     cost,
		EstimatedROIMonths:       ROIMonths(cost),
		Breakdown:                breakdown,
	}, nil
}

// Normalize checks every constraint of the input and returns it with duplicate services
// collapsed, services in table order and the default locale applied.
func Normalize(in Input) (Input, error) {
	var violations []string
	check := func(ok bool, msg string) {
		if !ok {
			violations = append(violations, msg)
		}
	}
	finite := isFinite

	check(finite(in.LatencyMs) && in.LatencyMs >= 0, "latency_ms must be a finite number >= 0")
	check(finite(in.PacketLossPct) && in.PacketLossPct >= 0 && in.PacketLossPct <= 100, "packet_loss_pct must be within [0, 100]")
	check(finite(in.BandwidthMbps) && in.BandwidthMbps > 0, "bandwidth_mbps must be a finite number > 0")
	check(finite(in.PeakTrafficGbps) && in.PeakTrafficGbps >= 0, "peak_traffic_gbps must be a finite number >= 0")
	check(in.ConcurrentUsers >= 1 && in.ConcurrentUsers <= MaxConcurrentUsers, fmt.Sprintf("concurrent_users must be within [1, %d]", MaxConcurrentUsers))

	locale := in.Locale
	if locale == "" {
		locale = DefaultLocale
	}
	check(locale.Valid(), fmt.Sprintf("locale %q is not supported", in.Locale))

	check(len(in.Services) > 0, "at least one service must be selected")
	for _, id := range in.Services {
		_, ok := LookupService(id)
		check(ok, fmt.Sprintf("service %q is unknown", id))
	}

	if len(violations) > 0 {
		return Input{}, NewErrInvalidInput(violations...)
	}

	services := make([]ServiceID, 0, len(in.Services))
	for _, s := range serviceTable {
		if slices.Contains(in.Services, s.ID) {
			services = append(services, s.ID)
		}
	}

	out := in
	out.Services = services
	out.Locale = locale
	return out, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
