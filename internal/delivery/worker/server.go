// Package worker runs the scheduled background jobs of the studio, currently
// the daily appointment reminder sweep.
package worker

import (
	"context"
	"log/slog"
	"time"

	"atelier/config"
	"atelier/internal/delivery"
	"atelier/internal/domain/lifecycle"
	"atelier/internal/usecase"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

const (
	defaultSchedule = "0 9 * * *"
	defaultHorizon  = 24 * time.Hour
)

type reminderWorker struct {
	logger   *slog.Logger
	clients  usecase.ClientUsecase
	cron     *cron.Cron
	enabled  bool
	schedule string
	horizon  time.Duration
}

// ServerParams holds dependencies for the reminder worker
type ServerParams struct {
	fx.In

	Lc      fx.Lifecycle
	Cfg     *config.Config
	Logger  *slog.Logger
	Clients usecase.ClientUsecase
}

// NewServer creates the cron-driven reminder worker
func NewServer(params ServerParams) (delivery.Delivery, error) {
	w := &reminderWorker{
		logger:   params.Logger,
		clients:  params.Clients,
		cron:     cron.New(),
		schedule: defaultSchedule,
		horizon:  defaultHorizon,
	}

	if reminder := params.Cfg.Reminder; reminder != nil {
		w.enabled = reminder.Enabled
		if reminder.Schedule != "" {
			w.schedule = reminder.Schedule
		}
		if reminder.Horizon > 0 {
			w.horizon = reminder.Horizon
		}
	}

	params.Lc.Append(fx.Hook{
		OnStop: w.stop,
	})

	return w, nil
}

// Serve schedules the sweep and blocks until the context ends.
func (w *reminderWorker) Serve(ctx context.Context) error {
	if !w.enabled {
		w.logger.Info("Reminder worker disabled")

		return nil
	}

	if _, err := w.cron.AddFunc(w.schedule, w.sweep); err != nil {
		return errors.Wrapf(err, "invalid reminder schedule %q", w.schedule)
	}

	w.logger.Info("Starting reminder worker", slog.String("schedule", w.schedule))
	w.cron.Start()

	<-ctx.Done()

	return nil
}

// stop waits for a running sweep to finish before shutdown.
func (w *reminderWorker) stop(ctx context.Context) error {
	w.logger.Info("Shutting down reminder worker")

	stopCtx := w.cron.Stop()
	select {
	case <-stopCtx.Done():
		return nil
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}

// sweep drafts a reminder for every client with an appointment inside the
// horizon and logs it for the operator to send.
func (w *reminderWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	clients, err := w.clients.ListClients(ctx)
	if err != nil {
		w.logger.Error("Reminder sweep failed to list clients", slog.Any("error", err))

		return
	}

	now := time.Now().UTC()
	cutoff := now.Add(w.horizon)
	for _, client := range clients {
		appt := client.NextAppointment
		if appt == nil || appt.Before(now) || appt.After(cutoff) {
			continue
		}

		draft, err := w.clients.DraftReminderMessage(ctx, client.ID)
		if err != nil {
			w.logger.Error("Reminder draft failed",
				slog.String("client", client.Name),
				slog.Any("error", err))

			continue
		}

		w.logger.Info("Appointment reminder",
			slog.String("client", client.Name),
			slog.Time("appointment", *appt),
			slog.String("draft", draft))
	}
}
