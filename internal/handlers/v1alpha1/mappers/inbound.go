package mappers

import (
	"strings"

	"github.com/peeringlatam/network-planner/api/v1alpha1"
	"github.com/peeringlatam/network-planner/internal/estimation"
	"github.com/peeringlatam/network-planner/internal/service"
)

func SimulationFormToInput(form v1alpha1.SimulationCreate) estimation.Input {
	in := estimation.Input{
		LatencyMs:       form.LatencyMs,
		PacketLossPct:   form.PacketLossPct,
		BandwidthMbps:   form.BandwidthMbps,
		PeakTrafficGbps: form.PeakTrafficGbps,
		ConcurrentUsers: form.ConcurrentUsers,
		Services:        make([]estimation.ServiceID, 0, len(form.Services)),
	}
	for _, id := range form.Services {
		in.Services = append(in.Services, estimation.ServiceID(strings.ToLower(strings.TrimSpace(id))))
	}
	if form.Locale != nil {
		in.Locale = estimation.Locale(strings.ToLower(*form.Locale))
	}
	return in
}

func AppointmentFormApi(form v1alpha1.AppointmentCreate, username, email string) service.AppointmentForm {
	return service.AppointmentForm{
		Username: username,
		Email:    email,
		Date:     form.Date,
		Hour:     form.Hour,
		Subject:  form.Subject,
	}
}

// ChatLocale returns the requested locale, or the default one when none was sent.
func ChatLocale(req v1alpha1.ChatRequest) estimation.Locale {
	if req.Locale == nil || *req.Locale == "" {
		return estimation.DefaultLocale
	}
	return estimation.Locale(*req.Locale)
}
