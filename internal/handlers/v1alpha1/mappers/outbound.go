package mappers

import (
	"github.com/peeringlatam/network-planner/api/v1alpha1"
	"github.com/peeringlatam/network-planner/internal/estimation"
	"github.com/peeringlatam/network-planner/internal/service"
	"github.com/peeringlatam/network-planner/internal/store/model"
)

func SimulationToApi(sim model.Simulation) v1alpha1.Simulation {
	locale := sim.Locale
	return v1alpha1.Simulation{
		Id:        sim.ID,
		CreatedAt: sim.CreatedAt,
		Input: v1alpha1.SimulationCreate{
			LatencyMs:       sim.LatencyMs,
			PacketLossPct:   sim.PacketLossPct,
			BandwidthMbps:   sim.BandwidthMbps,
			PeakTrafficGbps: sim.PeakTrafficGbps,
			ConcurrentUsers: sim.ConcurrentUsers,
			Services:        nonNil(sim.ServiceList()),
			Locale:          &locale,
		},
		Result: v1alpha1.SimulationResult{
			ImprovedLatencyMs:        sim.ImprovedLatencyMs,
			ImprovedPacketLossPct:    sim.ImprovedPacketLossPct,
			ImprovedBandwidthMbps:    sim.ImprovedBandwidthMbps,
			LatencyImprovementPct:    sim.LatencyImprovementPct,
			PacketLossImprovementPct: sim.PacketLossImprovementPct,
			BandwidthImprovementPct:  sim.BandwidthImprovementPct,
			OverallImprovementPct:    sim.OverallImprovementPct,
			EstimatedMonthlyCost:     sim.EstimatedMonthlyCost.StringFixed(2),
			EstimatedRoiMonths:       sim.EstimatedROIMonths,
		},
		Narrative: v1alpha1.Narrative{
			AnalysisText:          sim.AnalysisText,
			RecommendationsText:   sim.RecommendationsText,
			AnalysisSource:        v1alpha1.StringToNarrativeSource(sim.AnalysisSource),
			RecommendationsSource: v1alpha1.StringToNarrativeSource(sim.RecommendationsSource),
		},
	}
}

func SimulationListToApi(sims model.SimulationList) v1alpha1.SimulationList {
	list := make(v1alpha1.SimulationList, 0, len(sims))
	for _, sim := range sims {
		list = append(list, SimulationToApi(sim))
	}
	return list
}

func ServicesToApi(services []estimation.Service) []v1alpha1.ServiceInfo {
	infos := make([]v1alpha1.ServiceInfo, 0, len(services))
	for _, s := range services {
		names := make(map[string]string, len(s.Names))
		for locale, name := range s.Names {
			names[string(locale)] = name
		}
		infos = append(infos, v1alpha1.ServiceInfo{
			Id:          string(s.ID),
			Names:       names,
			Latency:     s.Latency.InexactFloat64(),
			PacketLoss:  s.PacketLoss.InexactFloat64(),
			Bandwidth:   s.Bandwidth.InexactFloat64(),
			MonthlyCost: s.MonthlyCost.StringFixed(2),
		})
	}
	return infos
}

func ProductToApi(p model.Product) v1alpha1.Product {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.URL)
	}
	return v1alpha1.Product{
		Id:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Images:      images,
	}
}

func CatalogPageToApi(page service.CatalogPage) v1alpha1.CatalogPage {
	products := make([]v1alpha1.Product, 0, len(page.Products))
	for _, p := range page.Products {
		products = append(products, ProductToApi(p))
	}
	return v1alpha1.CatalogPage{
		Products:      products,
		Page:          page.Page,
		PageSize:      page.PageSize,
		TotalPages:    page.TotalPages,
		TotalProducts: page.TotalProducts,
		HasNext:       page.HasNext(),
		HasPrevious:   page.HasPrevious(),
	}
}

func ProductFeedToApi(feed service.ProductFeed) v1alpha1.ProductFeed {
	products := make([]v1alpha1.FeedProduct, 0, len(feed.Products))
	for _, p := range feed.Products {
		fp := v1alpha1.FeedProduct{
			Id:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Url:         p.URL,
			DetailUrl:   p.DetailURL,
		}
		if p.Images != nil {
			images := p.Images
			fp.Images = &images
		}
		products = append(products, fp)
	}
	return v1alpha1.ProductFeed{
		Status:        feed.Status,
		TotalProducts: feed.TotalProducts,
		Products:      products,
		Provider:      feed.Provider,
		Timestamp:     feed.Timestamp,
	}
}

func CartToApi(cart model.Cart) v1alpha1.Cart {
	lines := make([]v1alpha1.CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, v1alpha1.CartLine{
			Product:  ProductToApi(item.Product),
			Quantity: item.Quantity,
			Subtotal: item.Subtotal().StringFixed(2),
		})
	}
	return v1alpha1.Cart{
		Id:    cart.ID,
		Items: lines,
		Total: cart.Total().StringFixed(2),
	}
}

func AppointmentToApi(a model.Appointment) v1alpha1.Appointment {
	return v1alpha1.Appointment{
		Id:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Date:      a.Date,
		Hour:      a.Hour,
		Subject:   a.Subject,
		Status:    v1alpha1.StringToAppointmentStatus(string(a.Status)),
		CreatedAt: a.CreatedAt,
	}
}

func AppointmentListToApi(list model.AppointmentList) v1alpha1.AppointmentList {
	out := make(v1alpha1.AppointmentList, 0, len(list))
	for _, a := range list {
		out = append(out, AppointmentToApi(a))
	}
	return out
}

func WeatherToApi(w service.Weather) v1alpha1.Weather {
	return v1alpha1.Weather{
		Temperature: w.Temperature,
		Description: w.Description,
		Humidity:    w.Humidity,
		City:        w.City,
		FetchedAt:   w.FetchedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
