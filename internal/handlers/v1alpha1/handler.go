package v1alpha1

import (
	"github.com/peeringlatam/network-planner/internal/handlers/validator"
	"github.com/peeringlatam/network-planner/internal/service"
	"github.com/peeringlatam/network-planner/pkg/log"
)

type ServiceHandler struct {
	simulationSrv  *service.SimulationService
	catalogSrv     *service.CatalogService
	cartSrv        *service.CartService
	appointmentSrv *service.AppointmentService
	chatSrv        *service.ChatService
	weatherSrv     *service.WeatherService
	reportSrv      *service.ReportService

	appointmentValidator *validator.Validator
	chatValidator        *validator.Validator
	logger               *log.StructuredLogger
}

type Services struct {
	Simulation  *service.SimulationService
	Catalog     *service.CatalogService
	Cart        *service.CartService
	Appointment *service.AppointmentService
	Chat        *service.ChatService
	Weather     *service.WeatherService
	Report      *service.ReportService
}

func NewServiceHandler(s Services) *ServiceHandler {
	appointmentValidator := validator.NewValidator()
	appointmentValidator.Register(validator.NewAppointmentValidationRules()...)

	chatValidator := validator.NewValidator()
	chatValidator.Register(validator.NewChatValidationRules()...)

	return &ServiceHandler{
		simulationSrv:        s.Simulation,
		catalogSrv:           s.Catalog,
		cartSrv:              s.Cart,
		appointmentSrv:       s.Appointment,
		chatSrv:              s.Chat,
		weatherSrv:           s.Weather,
		reportSrv:            s.Report,
		appointmentValidator: appointmentValidator,
		chatValidator:        chatValidator,
		logger:               log.NewDebugLogger("handlers"),
	}
}
