package services

import (
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/simd-age/internal/events"
	"github.com/maxaizer/simd-age/internal/logger"
	log "github.com/sirupsen/logrus"
	"io"
)

// ReportPrinter writes every published report as plain text lines.
type ReportPrinter struct {
	out io.Writer
}

func NewReportPrinter(bus EventBus.Bus, out io.Writer) (*ReportPrinter, error) {
	p := &ReportPrinter{out: out}
	if err := bus.Subscribe(events.ReportReadyTopic, p.onReportReady); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *ReportPrinter) onReportReady(event events.ReportReady) {
	for _, line := range event.Report.Lines() {
		if _, err := fmt.Fprintln(p.out, line); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeIO).Errorf("failed to print report: %v", err)
			return
		}
	}
}
