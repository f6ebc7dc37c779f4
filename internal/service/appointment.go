package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"slices"
	"strings"
	"time"

	"github.com/peeringlatam/network-planner/internal/mail"
	"github.com/peeringlatam/network-planner/internal/store"
	"github.com/peeringlatam/network-planner/internal/store/model"
	"github.com/peeringlatam/network-planner/pkg/log"
	"github.com/peeringlatam/network-planner/pkg/metrics"
)

const (
	firstSlotHour = 8
	lastSlotHour  = 19
	dateLayout    = "2006-01-02"

	appointmentMailSubject = "Nueva cita agendada"
)

var confirmationTemplate = template.Must(template.New("appointment").Parse(`<html>
  <body>
    <h2>Cita confirmada</h2>
    <p>Hola {{.Username}}, tu cita quedó agendada.</p>
    <ul>
      <li><strong>Fecha:</strong> {{.Date}}</li>
      <li><strong>Hora:</strong> {{.Hour}}</li>
      <li><strong>Asunto:</strong> {{.Subject}}</li>
    </ul>
    <p>Peering Latam</p>
  </body>
</html>`))

// AppointmentForm is the booking request of an authenticated user.
type AppointmentForm struct {
	Username string
	Email    string
	Date     string
	Hour     string
	Subject  string
}

type AppointmentService struct {
	store        store.Store
	mailer       mail.Mailer
	from         string
	companyInbox string
	now          func() time.Time
	logger       *log.StructuredLogger
}

type AppointmentOption func(*AppointmentService)

// WithClock replaces time.Now, used to decide which dates are in the past.
func WithClock(now func() time.Time) AppointmentOption {
	return func(s *AppointmentService) {
		s.now = now
	}
}

func NewAppointmentService(store store.Store, mailer mail.Mailer, from, companyInbox string, opts ...AppointmentOption) *AppointmentService {
	s := &AppointmentService{
		store:        store,
		mailer:       mailer,
		from:         from,
		companyInbox: companyInbox,
		now:          time.Now,
		logger:       log.NewDebugLogger("appointment_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Slots returns the bookable hours, 08:00 to 19:00.
func Slots() []string {
	slots := make([]string, 0, lastSlotHour-firstSlotHour+1)
	for h := firstSlotHour; h <= lastSlotHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}

// Today is the earliest bookable date.
func (s *AppointmentService) Today() string {
	return s.now().Format(dateLayout)
}

func (s *AppointmentService) validate(form AppointmentForm) error {
	var missing []string
	if strings.TrimSpace(form.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(form.Hour) == "" {
		missing = append(missing, "hour")
	}
	if strings.TrimSpace(form.Subject) == "" {
		missing = append(missing, "subject")
	}
	if len(missing) > 0 {
		return NewErrInvalidAppointment(fmt.Sprintf("missing %s", strings.Join(missing, ", ")))
	}

	date, err := time.Parse(dateLayout, form.Date)
	if err != nil {
		return NewErrInvalidAppointment(fmt.Sprintf("date %q is not YYYY-MM-DD", form.Date))
	}
	if form.Date < s.Today() {
		return NewErrInvalidAppointment(fmt.Sprintf("date %s is in the past", date.Format(dateLayout)))
	}
	if !slices.Contains(Slots(), form.Hour) {
		return NewErrInvalidAppointment(fmt.Sprintf("hour %q is not an available slot", form.Hour))
	}
	return nil
}

// Book stores the appointment and mails the confirmation to the user and the company inbox.
// When the mail cannot be delivered the appointment stays recorded as mail_failed.
func (s *AppointmentService) Book(ctx context.Context, form AppointmentForm) (*model.Appointment, error) {
	tracer := s.logger.WithContext(ctx).Operation("book_appointment").
		WithString("username", form.Username).
		WithString("date", form.Date).
		WithString("hour", form.Hour).
		Build()

	if err := s.validate(form); err != nil {
		tracer.Error(err).Log()
		metrics.IncreaseAppointmentsMetric("invalid")
		return nil, err
	}

	appointment, err := s.store.Appointment().Create(ctx, model.Appointment{
		Username: form.Username,
		Email:    form.Email,
		Date:     form.Date,
		Hour:     form.Hour,
		Subject:  strings.TrimSpace(form.Subject),
		Status:   model.AppointmentPending,
	})
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}
	tracer.Step("stored").WithUUID("appointment_id", appointment.ID).Log()

	msg, err := s.confirmation(*appointment)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	status := model.AppointmentConfirmed
	var sendErr error
	if len(msg.To) > 0 {
		sendErr = s.mailer.Send(ctx, msg)
	} else {
		tracer.Step("no_recipient").Log()
	}
	if sendErr != nil {
		status = model.AppointmentFailed
	}

	if err := s.store.Appointment().UpdateStatus(ctx, appointment.ID, status); err != nil {
		tracer.Error(err).Log()
		return nil, err
	}
	appointment.Status = status
	metrics.IncreaseAppointmentsMetric(string(status))

	if sendErr != nil {
		tracer.Error(sendErr).Log()
		return appointment, NewErrMailDelivery(sendErr)
	}

	tracer.Success().WithUUID("appointment_id", appointment.ID).Log()
	return appointment, nil
}

func (s *AppointmentService) confirmation(a model.Appointment) (mail.Message, error) {
	var to []string
	for _, addr := range []string{a.Email, s.companyInbox} {
		if addr != "" && !slices.Contains(to, addr) {
			to = append(to, addr)
		}
	}

	var html bytes.Buffer
	if err := confirmationTemplate.Execute(&html, a); err != nil {
		return mail.Message{}, err
	}

	return mail.Message{
		From:    s.from,
		To:      to,
		Subject: appointmentMailSubject,
		Text:    fmt.Sprintf("Cita para el %s a las %s.\nAsunto: %s", a.Date, a.Hour, a.Subject),
		HTML:    html.String(),
	}, nil
}

func (s *AppointmentService) ListAppointments(ctx context.Context, username string) (model.AppointmentList, error) {
	return s.store.Appointment().List(ctx, store.NewAppointmentQueryFilter().ByUsername(username))
}
