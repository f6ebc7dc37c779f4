package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Simulation is a stored simulator run: the submitted network, the computed result and the
// narrative texts.
type Simulation struct {
	ID        uuid.UUID `gorm:"primaryKey;"`
	Username  *string   `gorm:"index"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	LatencyMs       float64
	PacketLossPct   float64
	BandwidthMbps   float64
	PeakTrafficGbps float64
	ConcurrentUsers int
	// Services is the comma separated list of service ids.
	Services string
	Locale   string

	ImprovedLatencyMs        float64
	ImprovedPacketLossPct    float64
	ImprovedBandwidthMbps    float64
	LatencyImprovementPct    float64
	PacketLossImprovementPct float64
	BandwidthImprovementPct  float64
	OverallImprovementPct    float64
	EstimatedMonthlyCost     decimal.Decimal `gorm:"type:numeric(12,2)"`
	EstimatedROIMonths       int

	AnalysisText          string
	RecommendationsText   string
	AnalysisSource        string
	RecommendationsSource string
}

type SimulationList []Simulation

func (s Simulation) ServiceList() []string {
	if s.Services == "" {
		return nil
	}
	return strings.Split(s.Services, ",")
}

func JoinServices(services []string) string {
	return strings.Join(services, ",")
}

func (s Simulation) String() string {
	val, _ := json.Marshal(s)
	return string(val)
}
