package service

import (
	"fmt"

	"family-care-api/config"
	"family-care-api/internal/domain/entity"

	"gopkg.in/gomail.v2"
)

// Mailer dispatches appointment-related notification emails.
type Mailer interface {
	SendAppointmentConfirmation(to string, appointment *entity.Appointment) error
	SendAppointmentReminder(to string, appointment *entity.Appointment) error
}

type mailService struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewMailService(cfg config.SMTPConfig) Mailer {
	return &mailService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *mailService) SendAppointmentConfirmation(to string, appointment *entity.Appointment) error {
	subject := "Family Care: Appointment Confirmation"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment has been booked:\nDoctor: %s\nDepartment: %s\nDate: %s\nTime: %s\n\nPlease arrive 15 minutes early.\n\n- Family Care Hospital",
		appointment.Patient.FullName,
		appointment.Doctor.User.FullName,
		appointment.Department.Name,
		appointment.Date.Format("Mon Jan 2 2006"),
		appointment.TimeSlot,
	)
	return s.send(to, subject, body)
}

func (s *mailService) SendAppointmentReminder(to string, appointment *entity.Appointment) error {
	subject := fmt.Sprintf("Family Care: Appointment Reminder for %s", appointment.Date.Format("Mon Jan 2 2006"))
	body := fmt.Sprintf(
		"Dear %s,\n\nThis is a reminder for your appointment:\nDoctor: %s\nDepartment: %s\nDate: %s\nTime: %s\n\nPlease arrive on time.\n\n- Family Care Hospital",
		appointment.Patient.FullName,
		appointment.Doctor.User.FullName,
		appointment.Department.Name,
		appointment.Date.Format("Mon Jan 2 2006"),
		appointment.TimeSlot,
	)
	return s.send(to, subject, body)
}

func (s *mailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
