package services

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/simd-age/internal/entities"
	"github.com/maxaizer/simd-age/internal/events"
	"github.com/maxaizer/simd-age/internal/logger"
	"github.com/maxaizer/simd-age/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"time"
)

type deprivationTable interface {
	Load(path string) (bool, error)
	LowestRanked() (string, bool)
	AverageRank(region string) (float64, bool)
}

type populationTable interface {
	Load(path string) (bool, error)
	PopulationUnder(region string, age int) int
	MatchRegion(region string) (string, bool)
}

type Sources struct {
	CensusFile      string
	DeprivationFile string
}

type ReportOptions struct {
	AgeThreshold         int
	NormalizeRegionNames bool
}

// ReportBuilder finds the most deprived region and its population under the age threshold.
type ReportBuilder struct {
	bus         EventBus.Bus
	deprivation deprivationTable
	census      populationTable
	sources     Sources
	options     ReportOptions
}

func NewReportBuilder(bus EventBus.Bus, deprivation deprivationTable, census populationTable,
	sources Sources, options ReportOptions) (*ReportBuilder, error) {

	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	if deprivation == nil || census == nil {
		return nil, errors.New("tables must not be nil")
	}

	if options.AgeThreshold < 0 {
		return nil, errors.Errorf("age threshold must be non-negative, got %d", options.AgeThreshold)
	}

	return &ReportBuilder{
		bus:         bus,
		deprivation: deprivation,
		census:      census,
		sources:     sources,
		options:     options,
	}, nil
}

// Build reloads both tables and publishes the resulting report. A nil report with
// a nil error means the deprivation table had no region to report on.
func (b *ReportBuilder) Build() (*entities.Report, error) {

	loaded, err := b.deprivation.Load(b.sources.DeprivationFile)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeParse).
			Errorf("failed to load deprivation table: %v", err)
		return nil, errors.Wrap(err, "load deprivation table")
	}
	if !loaded {
		log.Warnf("deprivation source %s not found", b.sources.DeprivationFile)
		return nil, nil
	}

	region, ok := b.deprivation.LowestRanked()
	if !ok {
		log.Warnf("deprivation source %s has no regions", b.sources.DeprivationFile)
		return nil, nil
	}
	rank, _ := b.deprivation.AverageRank(region)

	report := entities.Report{
		Region:       region,
		AverageRank:  rank,
		AgeThreshold: b.options.AgeThreshold,
		CreatedAt:    time.Now(),
	}

	loaded, err = b.census.Load(b.sources.CensusFile)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeParse).
			Errorf("failed to load census table: %v", err)
		return nil, errors.Wrap(err, "load census table")
	}

	if loaded {
		report.MatchedRegion = b.censusRegion(region)
		report.PopulationUnder = b.census.PopulationUnder(report.MatchedRegion, b.options.AgeThreshold)
		report.PopulationKnown = true
	} else {
		log.Warnf("census source %s not found", b.sources.CensusFile)
	}

	metrics.ReportsBuiltCounter.Inc()
	b.bus.Publish(events.ReportReadyTopic, events.ReportReady{Report: report})
	return &report, nil
}

// censusRegion returns the census spelling of region. Without normalization a
// name missing from the census is kept as is and yields a zero population.
func (b *ReportBuilder) censusRegion(region string) string {

	if !b.options.NormalizeRegionNames {
		return region
	}

	match, ok := b.census.MatchRegion(region)
	if !ok {
		log.Warnf("region %q has no census match, even after normalization", region)
		return region
	}
	if match != region {
		log.Warnf("region %q not found in census, using normalized match %q", region, match)
	}
	return match
}
