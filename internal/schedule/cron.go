package schedule

import (
	"context"
	"time"

	"github.com/dmssspace/na-predele--crm-sub000/internal/logger"

	"github.com/robfig/cron"
)

// Materializer runs the recurring-event materialization on boot and then
// nightly, keeping the rolling session window filled.
type Materializer struct {
	service     Service
	horizonDays int
	cron        *cron.Cron
}

func NewMaterializer(service Service, horizonDays int) *Materializer {
	return &Materializer{
		service:     service,
		horizonDays: horizonDays,
		cron:        cron.New(),
	}
}

func (m *Materializer) Start() error {
	m.run()

	if err := m.cron.AddFunc("@daily", m.run); err != nil {
		return err
	}
	m.cron.Start()

	return nil
}

func (m *Materializer) Stop() {
	m.cron.Stop()
}

func (m *Materializer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	created, err := m.service.Materialize(ctx, time.Now(), m.horizonDays)
	if err != nil {
		logger.Error("materialization failed", "error", err)
		return
	}

	if created > 0 {
		logger.Info("materialized sessions", "count", created, "horizon_days", m.horizonDays)
	}
}
