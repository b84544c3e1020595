package service

import (
	"context"
	"time"

	"family-care-api/internal/domain/repository"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// reminderWindow is how far ahead of the appointment date a reminder goes out.
const reminderWindow = 24 * time.Hour

// ReminderService is the periodic sweep that notifies patients of soon-due
// appointments. One sweep finds booked, unreminded appointments dated within
// the next 24 hours, claims each one, and dispatches a reminder email.
//
// The claim is an atomic conditional flip of reminder_sent, so overlapping
// sweeps (or a second scheduler instance) cannot double-notify: only one
// claimer wins. A failed dispatch releases the claim and the next sweep
// retries; there is no backoff and no retry cap.
type ReminderService struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	mailer          Mailer
	cron            *cron.Cron
}

func NewReminderService(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	mailer Mailer,
) *ReminderService {
	return &ReminderService{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		mailer:          mailer,
	}
}

// Start schedules the sweep on the given cron spec (hourly in production
// config) and runs one sweep immediately so a restart does not delay
// reminders by up to an hour.
func (s *ReminderService) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		s.runSweep()
	}); err != nil {
		return err
	}
	s.cron = c
	c.Start()

	go s.runSweep()

	s.log.Infof("Reminder scheduler started with spec %q", spec)
	return nil
}

// Stop halts the cron scheduler and waits for a running sweep to finish.
func (s *ReminderService) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Reminder scheduler stopped")
}

func (s *ReminderService) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sent, err := s.Sweep(ctx)
	if err != nil {
		s.log.Errorf("Reminder sweep failed: %+v", err)
		return
	}
	if sent > 0 {
		s.log.Infof("Reminder sweep dispatched %d reminder(s)", sent)
	}
}

// Sweep executes one reminder cycle and returns how many reminders were
// dispatched. Per-appointment failures are logged and skipped; they do not
// abort the sweep.
func (s *ReminderService) Sweep(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	due, err := s.appointmentRepo.FindDueReminders(s.db.WithContext(ctx), now, now.Add(reminderWindow))
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		appointment := &due[i]
		if appointment.Patient.Email == "" {
			continue
		}

		// Claim before dispatching so the operation is idempotent under
		// concurrent sweeps.
		claimed, err := s.appointmentRepo.ClaimReminder(s.db.WithContext(ctx), appointment.ID)
		if err != nil {
			s.log.Warnf("Failed to claim reminder for appointment %s: %+v", appointment.ID, err)
			continue
		}
		if claimed == 0 {
			continue
		}

		if err := s.mailer.SendAppointmentReminder(appointment.Patient.Email, appointment); err != nil {
			s.log.Warnf("Failed to send reminder for appointment %s: %+v", appointment.ID, err)
			if relErr := s.appointmentRepo.ReleaseReminder(s.db.WithContext(ctx), appointment.ID); relErr != nil {
				s.log.Errorf("Failed to release reminder claim for appointment %s: %+v", appointment.ID, relErr)
			}
			continue
		}

		s.log.Infof("Reminder sent to %s for appointment %s", appointment.Patient.Email, appointment.ID)
		sent++
	}

	return sent, nil
}
