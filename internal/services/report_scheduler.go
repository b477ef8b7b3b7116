package services

import (
	"github.com/maxaizer/simd-age/internal/entities"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type reportSource interface {
	Build() (*entities.Report, error)
}

// ReportScheduler rebuilds the report on a cron schedule.
type ReportScheduler struct {
	builder reportSource
	cron    *cron.Cron
}

func NewReportScheduler(builder reportSource, schedule string) (*ReportScheduler, error) {

	if schedule == "" {
		return nil, errors.New("schedule must not be empty")
	}

	rs := &ReportScheduler{
		builder: builder,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}

	_, err := rs.cron.AddFunc(schedule, rs.buildReport)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid schedule %q", schedule)
	}

	rs.cron.Start()
	log.Infof("report scheduler started, schedule: %s", schedule)
	return rs, nil
}

func (rs *ReportScheduler) Stop() {
	<-rs.cron.Stop().Done()
}

func (rs *ReportScheduler) buildReport() {
	report, err := rs.builder.Build()
	if err != nil {
		log.Errorf("scheduled report failed: %v", err)
		return
	}
	if report == nil {
		log.Warn("scheduled report produced no result")
		return
	}
	log.Infof("scheduled report built for region %q", report.Region)
}
