package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/simd-age/internal/entities"
	"github.com/maxaizer/simd-age/internal/events"
	"github.com/maxaizer/simd-age/internal/logger"
	log "github.com/sirupsen/logrus"
)

type reportRepository interface {
	Add(ctx context.Context, report entities.Report) error
}

// ReportHistory stores every published report.
type ReportHistory struct {
	reports reportRepository
}

func NewReportHistory(bus EventBus.Bus, reports reportRepository) (*ReportHistory, error) {
	h := &ReportHistory{reports: reports}
	if err := bus.Subscribe(events.ReportReadyTopic, h.onReportReady); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *ReportHistory) onReportReady(event events.ReportReady) {
	if err := h.reports.Add(context.Background(), event.Report); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to save report: %v", err)
		return
	}
	log.Debugf("report for region %q saved", event.Report.Region)
}
