package calculators

import (
	"fmt"
	"strings"

	"github.com/peeringlatam/network-planner/internal/estimation"
	"github.com/shopspring/decimal"
)

var (
	DefaultLatencyCap    = decimal.RequireFromString("0.90")
	DefaultPacketLossCap = decimal.RequireFromString("0.95")
	DefaultBandwidthCap  = decimal.RequireFromString("0.80")
)

// Compile-time assertion that Dimension implements the Calculator interface.
var _ estimation.Calculator = (*Dimension)(nil)

type direction int

const (
	reduce direction = iota
	increase
)

// Dimension improves one network metric.
type Dimension struct {
	name         string
	dimension    estimation.Dimension
	direction    direction
	baseline     func(estimation.Input) float64
	cap          decimal.Decimal
	coefficients map[estimation.ServiceID]decimal.Decimal
}

// DimensionOption configuration option for the calculator
type DimensionOption func(*Dimension)

// WithCap sets the maximum improvement ratio. Values outside (0, 1] are ignored.
func WithCap(ratio float64) DimensionOption {
	return func(d *Dimension) {
		if ratio > 0 && ratio <= 1 {
			d.cap = decimal.NewFromFloat(ratio)
		}
	}
}

// WithCoefficients replaces the per-service coefficients. Services missing from the map
// contribute nothing.
func WithCoefficients(coefficients map[estimation.ServiceID]float64) DimensionOption {
	return func(d *Dimension) {
		d.coefficients = make(map[estimation.ServiceID]decimal.Decimal, len(coefficients))
		for id, c := range coefficients {
			d.coefficients[id] = decimal.NewFromFloat(c)
		}
	}
}

func newDimension(name string, dim estimation.Dimension, dir direction, limit decimal.Decimal, baseline func(estimation.Input) float64, opts ...DimensionOption) *Dimension {
	res := Dimension{
		name:         name,
		dimension:    dim,
		direction:    dir,
		baseline:     baseline,
		cap:          limit,
		coefficients: tableCoefficients(dim),
	}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

func NewLatency(opts ...DimensionOption) *Dimension {
	return newDimension("Latency", estimation.DimensionLatency, reduce, DefaultLatencyCap,
		func(in estimation.Input) float64 { return in.LatencyMs }, opts...)
}

func NewPacketLoss(opts ...DimensionOption) *Dimension {
	return newDimension("Packet Loss", estimation.DimensionPacketLoss, reduce, DefaultPacketLossCap,
		func(in estimation.Input) float64 { return in.PacketLossPct }, opts...)
}

func NewBandwidth(opts ...DimensionOption) *Dimension {
	return newDimension("Bandwidth", estimation.DimensionBandwidth, increase, DefaultBandwidthCap,
		func(in estimation.Input) float64 { return in.BandwidthMbps }, opts...)
}

func (d *Dimension) Name() string { return d.name }

// Ratio returns the summed coefficients of the services, clamped to the cap.
func (d *Dimension) Ratio(services []estimation.ServiceID) decimal.Decimal {
	sum := decimal.Zero
	for _, id := range services {
		sum = sum.Add(d.coefficients[id])
	}
	return decimal.Min(sum, d.cap)
}

func (d *Dimension) Calculate(in estimation.Input) (estimation.Estimation, error) {
	if len(in.Services) == 0 {
		return estimation.Estimation{}, fmt.Errorf("no service selected")
	}

	baseline := d.baseline(in)
	ratio := d.Ratio(in.Services)

	factor := decimal.NewFromInt(1).Sub(ratio)
	if d.direction == increase {
		factor = decimal.NewFromInt(1).Add(ratio)
	}
	improved := decimal.NewFromFloat(baseline).Mul(factor).InexactFloat64()

	ids := make([]string, 0, len(in.Services))
	for _, id := range in.Services {
		ids = append(ids, string(id))
	}

	return estimation.Estimation{
		Dimension: d.dimension,
		Ratio:     ratio,
		Baseline:  baseline,
		Improved:  improved,
		Reason:    fmt.Sprintf("%s: ratio %s (cap %s)", strings.Join(ids, "+"), ratio.StringFixed(2), d.cap.StringFixed(2)),
	}, nil
}

func tableCoefficients(dim estimation.Dimension) map[estimation.ServiceID]decimal.Decimal {
	coefficients := make(map[estimation.ServiceID]decimal.Decimal)
	for _, s := range estimation.Services() {
		coefficients[s.ID] = s.Coefficient(dim)
	}
	return coefficients
}

// NewDefaultEngine returns an engine with the latency, packet loss and bandwidth calculators.
func NewDefaultEngine() *estimation.Engine {
	engine := estimation.NewEngine()
	engine.Register(NewLatency())
	engine.Register(NewPacketLoss())
	engine.Register(NewBandwidth())
	return engine
}
