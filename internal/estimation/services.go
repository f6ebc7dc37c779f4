package estimation

import (
	"github.com/shopspring/decimal"
)

// Service is one row of the fixed coefficient table.
type Service struct {
	ID          ServiceID
	Names       map[Locale]string
	Latency     decimal.Decimal
	PacketLoss  decimal.Decimal
	Bandwidth   decimal.Decimal
	MonthlyCost decimal.Decimal
}

func (s Service) Name(locale Locale) string {
	if name, ok := s.Names[locale]; ok {
		return name
	}
	return s.Names[DefaultLocale]
}

// Coefficient returns the improvement the service brings to the dimension.
func (s Service) Coefficient(d Dimension) decimal.Decimal {
	switch d {
	case DimensionLatency:
		return s.Latency
	case DimensionPacketLoss:
		return s.PacketLoss
	case DimensionBandwidth:
		return s.Bandwidth
	}
	return decimal.Zero
}

var serviceTable = []Service{
	{
		ID: ServicePMaaS,
		Names: map[Locale]string{
			LocaleES: "PMaaS (Optimización de Tráfico)",
			LocaleEN: "PMaaS (Traffic Optimization)",
			LocalePT: "PMaaS (Otimização de Tráfego)",
		},
		Latency:     decimal.RequireFromString("0.25"),
		PacketLoss:  decimal.RequireFromString("0.30"),
		Bandwidth:   decimal.RequireFromString("0.20"),
		MonthlyCost: decimal.NewFromInt(500),
	},
	{
		ID: ServiceCDN,
		Names: map[Locale]string{
			LocaleES: "CDN IPTV y Streaming",
			LocaleEN: "CDN IPTV & Streaming",
			LocalePT: "CDN IPTV e Streaming",
		},
		Latency:     decimal.RequireFromString("0.40"),
		PacketLoss:  decimal.RequireFromString("0.25"),
		Bandwidth:   decimal.RequireFromString("0.35"),
		MonthlyCost: decimal.NewFromInt(800),
	},
	{
		ID: ServiceDDoS,
		Names: map[Locale]string{
			LocaleES: "Protección Anti-DDoS",
			LocaleEN: "Anti-DDoS Protection",
			LocalePT: "Proteção Anti-DDoS",
		},
		Latency:     decimal.RequireFromString("0.10"),
		PacketLoss:  decimal.RequireFromString("0.45"),
		Bandwidth:   decimal.RequireFromString("0.05"),
		MonthlyCost: decimal.NewFromInt(600),
	},
	{
		ID: ServiceAnalytics,
		Names: map[Locale]string{
			LocaleES: "Análisis Avanzado de Tráfico",
			LocaleEN: "Advanced Traffic Analytics",
			LocalePT: "Análise Avançada de Tráfego",
		},
		Latency:     decimal.RequireFromString("0.15"),
		PacketLoss:  decimal.RequireFromString("0.20"),
		Bandwidth:   decimal.RequireFromString("0.10"),
		MonthlyCost: decimal.NewFromInt(400),
	},
}

// Services returns a copy of the coefficient table in canonical order.
func Services() []Service {
	out := make([]Service, len(serviceTable))
	copy(out, serviceTable)
	return out
}

func LookupService(id ServiceID) (Service, bool) {
	for _, s := range serviceTable {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
