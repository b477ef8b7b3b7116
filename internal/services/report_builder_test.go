package services

import (
	"bytes"
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/simd-age/internal/datasets"
	"github.com/maxaizer/simd-age/internal/entities"
	"github.com/maxaizer/simd-age/internal/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"path/filepath"
	"testing"
)

type mockDeprivation struct {
	mock.Mock
}

func (m *mockDeprivation) Load(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

func (m *mockDeprivation) LowestRanked() (string, bool) {
	args := m.Called()
	return args.String(0), args.Bool(1)
}

func (m *mockDeprivation) AverageRank(region string) (float64, bool) {
	args := m.Called(region)
	return args.Get(0).(float64), args.Bool(1)
}

type mockPopulation struct {
	mock.Mock
}

func (m *mockPopulation) Load(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

func (m *mockPopulation) PopulationUnder(region string, age int) int {
	return m.Called(region, age).Int(0)
}

func (m *mockPopulation) MatchRegion(region string) (string, bool) {
	args := m.Called(region)
	return args.String(0), args.Bool(1)
}

type mockReports struct {
	mock.Mock
}

func (m *mockReports) Add(ctx context.Context, report entities.Report) error {
	return m.Called(ctx, report).Error(0)
}

var testSources = Sources{CensusFile: "DC1117SC.csv", DeprivationFile: "SIMD_2020v2csv.csv"}

func Test_ReportBuilder_Build_ShouldReportLowestRegionPopulation(t *testing.T) {

	assert := assert.New(t)

	deprivation := &mockDeprivation{}
	deprivation.On("Load", "SIMD_2020v2csv.csv").Return(true, nil)
	deprivation.On("LowestRanked").Return("Canal", true)
	deprivation.On("AverageRank", "Canal").Return(4.0, true)

	census := &mockPopulation{}
	census.On("Load", "DC1117SC.csv").Return(true, nil)
	census.On("PopulationUnder", "Canal", 15).Return(725)

	bus := EventBus.New()
	var published []events.ReportReady
	assert.NoError(bus.Subscribe(events.ReportReadyTopic, func(event events.ReportReady) {
		published = append(published, event)
	}))

	builder, err := NewReportBuilder(bus, deprivation, census, testSources, ReportOptions{AgeThreshold: 15})
	assert.NoError(err)

	report, err := builder.Build()
	assert.NoError(err)
	if assert.NotNil(report) {
		assert.Equal("Canal", report.Region)
		assert.Equal(4.0, report.AverageRank)
		assert.Equal(725, report.PopulationUnder)
		assert.True(report.PopulationKnown)
		assert.Equal("Canal", report.MatchedRegion)
	}
	assert.Len(published, 1)
	census.AssertNotCalled(t, "MatchRegion", mock.Anything)
	deprivation.AssertExpectations(t)
	census.AssertExpectations(t)
}

func Test_ReportBuilder_Build_WhenDeprivationAbsent_ShouldSkipCensus(t *testing.T) {

	deprivation := &mockDeprivation{}
	deprivation.On("Load", mock.Anything).Return(false, nil)
	census := &mockPopulation{}

	bus := EventBus.New()
	published := 0
	_ = bus.Subscribe(events.ReportReadyTopic, func(events.ReportReady) { published++ })

	builder, err := NewReportBuilder(bus, deprivation, census, testSources, ReportOptions{AgeThreshold: 15})
	assert.NoError(t, err)

	report, err := builder.Build()
	assert.NoError(t, err)
	assert.Nil(t, report)
	assert.Zero(t, published)
	census.AssertNotCalled(t, "Load", mock.Anything)
}

func Test_ReportBuilder_Build_WhenCensusAbsent_ShouldReportRankOnly(t *testing.T) {

	assert := assert.New(t)

	deprivation := &mockDeprivation{}
	deprivation.On("Load", mock.Anything).Return(true, nil)
	deprivation.On("LowestRanked").Return("Canal", true)
	deprivation.On("AverageRank", "Canal").Return(4.0, true)

	census := &mockPopulation{}
	census.On("Load", mock.Anything).Return(false, nil)

	builder, err := NewReportBuilder(EventBus.New(), deprivation, census, testSources, ReportOptions{AgeThreshold: 15})
	assert.NoError(err)

	report, err := builder.Build()
	assert.NoError(err)
	if assert.NotNil(report) {
		assert.False(report.PopulationKnown)
		assert.Equal([]string{"Canal", "4"}, report.Lines())
	}
	census.AssertNotCalled(t, "PopulationUnder", mock.Anything, mock.Anything)
}

func Test_ReportBuilder_Build_WhenLoadFails_ShouldReturnError(t *testing.T) {

	deprivation := &mockDeprivation{}
	deprivation.On("Load", mock.Anything).Return(false, errors.New("row 2: invalid rank"))

	builder, err := NewReportBuilder(EventBus.New(), deprivation, &mockPopulation{}, testSources, ReportOptions{})
	assert.NoError(t, err)

	report, err := builder.Build()
	assert.Error(t, err)
	assert.Nil(t, report)
}

func Test_ReportBuilder_Build_WhenNamesDiffer_ShouldYieldZeroUnlessNormalizing(t *testing.T) {

	assert := assert.New(t)

	deprivation := &mockDeprivation{}
	deprivation.On("Load", mock.Anything).Return(true, nil)
	deprivation.On("LowestRanked").Return("Paisley  South", true)
	deprivation.On("AverageRank", mock.Anything).Return(16.0, true)

	census := &mockPopulation{}
	census.On("Load", mock.Anything).Return(true, nil)
	census.On("PopulationUnder", "Paisley  South", 15).Return(0)
	census.On("MatchRegion", "Paisley  South").Return("Paisley South", true)
	census.On("PopulationUnder", "Paisley South", 15).Return(1744)

	exact, err := NewReportBuilder(EventBus.New(), deprivation, census, testSources, ReportOptions{AgeThreshold: 15})
	assert.NoError(err)
	report, err := exact.Build()
	assert.NoError(err)
	assert.Equal(0, report.PopulationUnder)

	normalizing, err := NewReportBuilder(EventBus.New(), deprivation, census, testSources,
		ReportOptions{AgeThreshold: 15, NormalizeRegionNames: true})
	assert.NoError(err)
	report, err = normalizing.Build()
	assert.NoError(err)
	assert.Equal(1744, report.PopulationUnder)
	assert.Equal("Paisley South", report.MatchedRegion)
	assert.Equal("Paisley  South", report.Region)
}

func Test_NewReportBuilder_WhenInvalidArguments_ShouldFail(t *testing.T) {

	_, err := NewReportBuilder(nil, &mockDeprivation{}, &mockPopulation{}, testSources, ReportOptions{})
	assert.Error(t, err)

	_, err = NewReportBuilder(EventBus.New(), &mockDeprivation{}, &mockPopulation{}, testSources, ReportOptions{AgeThreshold: -1})
	assert.Error(t, err)
}

func Test_ReportBuilder_WithFixtures_ShouldPrintAndStoreReport(t *testing.T) {

	assert := assert.New(t)
	bus := EventBus.New()

	var out bytes.Buffer
	_, err := NewReportPrinter(bus, &out)
	assert.NoError(err)

	reports := &mockReports{}
	reports.On("Add", mock.Anything, mock.MatchedBy(func(r entities.Report) bool {
		return r.Region == "Canal" && r.PopulationUnder == 725
	})).Return(nil).Once()
	_, err = NewReportHistory(bus, reports)
	assert.NoError(err)

	testdata := filepath.Join("..", "datasets", "testdata")
	builder, err := NewReportBuilder(bus,
		datasets.NewDeprivationTable("MMWname", "SIMD2020v2_Rank"),
		datasets.NewCensusTable(datasets.DefaultCensusSkipRows),
		Sources{
			CensusFile:      filepath.Join(testdata, "DC1117SC.csv"),
			DeprivationFile: filepath.Join(testdata, "SIMD_2020v2csv.csv"),
		},
		ReportOptions{AgeThreshold: 15})
	assert.NoError(err)

	_, err = builder.Build()
	assert.NoError(err)

	assert.Equal("Canal\n4\n725\n", out.String())
	reports.AssertExpectations(t)
}

func Test_ReportHistory_WhenSaveFails_ShouldNotPanic(t *testing.T) {

	bus := EventBus.New()
	reports := &mockReports{}
	reports.On("Add", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := NewReportHistory(bus, reports)
	assert.NoError(t, err)

	assert.NotPanics(t, func() {
		bus.Publish(events.ReportReadyTopic, events.ReportReady{Report: entities.Report{Region: "Canal"}})
	})
	reports.AssertExpectations(t)
}
