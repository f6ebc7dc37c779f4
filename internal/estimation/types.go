package estimation

import (
	"github.com/shopspring/decimal"
)

// ServiceID identifies one of the fixed optimization offerings.
type ServiceID string

const (
	ServicePMaaS     ServiceID = "pmaas"
	ServiceCDN       ServiceID = "cdn"
	ServiceDDoS      ServiceID = "ddos"
	ServiceAnalytics ServiceID = "analytics"
)

type Locale string

const (
	LocaleES Locale = "es"
	LocaleEN Locale = "en"
	LocalePT Locale = "pt"

	DefaultLocale = LocaleES
)

// Locales lists the supported locales in display order.
var Locales = []Locale{LocaleES, LocaleEN, LocalePT}

func (l Locale) Valid() bool {
	switch l {
	case LocaleES, LocaleEN, LocalePT:
		return true
	}
	return false
}

// Dimension is a network metric a Calculator improves.
type Dimension string

const (
	DimensionLatency    Dimension = "latency"
	DimensionPacketLoss Dimension = "packet_loss"
	DimensionBandwidth  Dimension = "bandwidth"
)

// Dimensions lists every dimension taken into account by the overall improvement.
var Dimensions = []Dimension{DimensionLatency, DimensionPacketLoss, DimensionBandwidth}

// Input is the customer network as submitted to the simulator.
type Input struct {
	LatencyMs       float64
	PacketLossPct   float64
	BandwidthMbps   float64
	PeakTrafficGbps float64
	ConcurrentUsers int
	Services        []ServiceID
	Locale          Locale
}

// Calculator encapsulates the improvement of one network dimension.
type Calculator interface {
	// Name returns the human-readable name of this calculator. Names are unique within an Engine.
	Name() string
	// Calculate applies the improvement to the input. The input has already been validated.
	Calculate(in Input) (Estimation, error)
}

// Estimation is the result of one Calculator.
type Estimation struct {
	Dimension Dimension
	// Ratio is the clamped improvement ratio in [0, 1].
	Ratio    decimal.Decimal
	Baseline float64
	Improved float64
	Reason   string
}

// Result aggregates the estimations of one input.
type Result struct {
	// Input is the normalized input: services deduplicated and ordered, locale defaulted.
	Input Input

	ImprovedLatencyMs     float64
	ImprovedPacketLossPct float64
	ImprovedBandwidthMbps float64

	LatencyImprovementPct    float64
	PacketLossImprovementPct float64
	BandwidthImprovementPct  float64
	OverallImprovementPct    float64

	EstimatedMonthlyCost decimal.Decimal
	EstimatedROIMonths   int

	Breakdown map[Dimension]Estimation
}
