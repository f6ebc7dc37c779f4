package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

// Defines values for NarrativeSource.
const (
	NarrativeSourceLlm      NarrativeSource = "llm"
	NarrativeSourceTemplate NarrativeSource = "template"
)

// Defines values for AppointmentStatus.
const (
	AppointmentStatusPending    AppointmentStatus = "pending"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusMailFailed AppointmentStatus = "mail_failed"
)

// Error defines model for Error.
type Error struct {
	Message    string   `json:"message"`
	RequestId  *string  `json:"requestId,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

// SimulationCreate defines model for SimulationCreate.
type SimulationCreate struct {
	LatencyMs       float64  `json:"latency_ms"`
	PacketLossPct   float64  `json:"packet_loss_pct"`
	BandwidthMbps   float64  `json:"bandwidth_mbps"`
	PeakTrafficGbps float64  `json:"peak_traffic_gbps"`
	ConcurrentUsers int      `json:"concurrent_users"`
	Services        []string `json:"services"`
	Locale          *string  `json:"locale,omitempty"`
}

// Simulation defines model for Simulation.
type Simulation struct {
	Id        uuid.UUID        `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Input     SimulationCreate `json:"input"`
	Result    SimulationResult `json:"result"`
	Narrative Narrative        `json:"narrative"`
}

// SimulationList defines model for SimulationList.
type SimulationList = []Simulation

// SimulationResult defines model for SimulationResult.
type SimulationResult struct {
	ImprovedLatencyMs        float64 `json:"improved_latency_ms"`
	ImprovedPacketLossPct    float64 `json:"improved_packet_loss_pct"`
	ImprovedBandwidthMbps    float64 `json:"improved_bandwidth_mbps"`
	LatencyImprovementPct    float64 `json:"latency_improvement_pct"`
	PacketLossImprovementPct float64 `json:"packet_loss_improvement_pct"`
	BandwidthImprovementPct  float64 `json:"bandwidth_improvement_pct"`
	OverallImprovementPct    float64 `json:"overall_improvement_pct"`
	EstimatedMonthlyCost     string  `json:"estimated_monthly_cost"`
	EstimatedRoiMonths       int     `json:"estimated_roi_months"`
}

// NarrativeSource defines model for Narrative.AnalysisSource.
type NarrativeSource string

// Narrative defines model for Narrative.
type Narrative struct {
	AnalysisText          string          `json:"analysis_text"`
	RecommendationsText   string          `json:"recommendations_text"`
	AnalysisSource        NarrativeSource `json:"analysis_source"`
	RecommendationsSource NarrativeSource `json:"recommendations_source"`
}

// ServiceInfo defines model for ServiceInfo.
type ServiceInfo struct {
	Id          string            `json:"id"`
	Names       map[string]string `json:"names"`
	Latency     float64           `json:"latency"`
	PacketLoss  float64           `json:"packet_loss"`
	Bandwidth   float64           `json:"bandwidth"`
	MonthlyCost string            `json:"monthly_cost"`
}

// Product defines model for Product.
type Product struct {
	Id          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Images      []string `json:"images"`
}

// CatalogPage defines model for CatalogPage.
type CatalogPage struct {
	Products      []Product `json:"products"`
	Page          int       `json:"page"`
	PageSize      int       `json:"page_size"`
	TotalPages    int       `json:"total_pages"`
	TotalProducts int64     `json:"total_products"`
	HasNext       bool      `json:"has_next"`
	HasPrevious   bool      `json:"has_previous"`
}

// ProductFeed defines model for ProductFeed.
type ProductFeed struct {
	Status        string        `json:"status"`
	TotalProducts int           `json:"total_products"`
	Products      []FeedProduct `json:"products"`
	Provider      string        `json:"provider"`
	Timestamp     time.Time     `json:"timestamp"`
}

// FeedProduct defines model for FeedProduct.
type FeedProduct struct {
	Id          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Url         string    `json:"url"`
	DetailUrl   string    `json:"detail_url"`
	Images      *[]string `json:"images,omitempty"`
}

// Cart defines model for Cart.
type Cart struct {
	Id    uuid.UUID  `json:"id"`
	Items []CartLine `json:"items"`
	Total string     `json:"total"`
}

// CartLine defines model for CartLine.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal string  `json:"subtotal"`
}

// AppointmentSlots defines model for AppointmentSlots.
type AppointmentSlots struct {
	Today string   `json:"today"`
	Slots []string `json:"slots"`
}

// AppointmentCreate defines model for AppointmentCreate.
type AppointmentCreate struct {
	Date    string `json:"date" validate:"required,appointment_date"`
	Hour    string `json:"hour" validate:"required,appointment_hour"`
	Subject string `json:"subject" validate:"required,max=200"`
}

// AppointmentStatus defines model for Appointment.Status.
type AppointmentStatus string

// Appointment defines model for Appointment.
type Appointment struct {
	Id        uuid.UUID         `json:"id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Date      string            `json:"date"`
	Hour      string            `json:"hour"`
	Subject   string            `json:"subject"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// AppointmentList defines model for AppointmentList.
type AppointmentList = []Appointment

// ChatRequest defines model for ChatRequest.
type ChatRequest struct {
	Message string  `json:"message" validate:"max=2000"`
	Locale  *string `json:"locale,omitempty" validate:"omitempty,locale"`
}

// ChatReply defines model for ChatReply.
type ChatReply struct {
	Reply string `json:"reply"`
}

// Weather defines model for Weather.
type Weather struct {
	Temperature string    `json:"temperature"`
	Description string    `json:"description"`
	Humidity    string    `json:"humidity"`
	City        string    `json:"city"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Info defines model for Info.
type Info struct {
	GitCommit   string `json:"gitCommit"`
	VersionName string `json:"versionName"`
}
