package datasets

import (
	"github.com/maxaizer/simd-age/internal/entities"
	"github.com/maxaizer/simd-age/internal/logger"
	"github.com/maxaizer/simd-age/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultCensusSkipRows covers the four metadata lines and the column header of DC1117SC.
const DefaultCensusSkipRows = 5

type PopulationRecord struct {
	Region string
	Band   string
	Count  string
}

type bandKey struct {
	region string
	band   string
}

// CensusTable maps region -> age band -> population text as read from the census file.
type CensusTable struct {
	skipRows    int
	populations map[string]map[string]string
	regions     []string
	normalized  map[string]string
}

func NewCensusTable(skipRows int) *CensusTable {
	return &CensusTable{
		skipRows:    skipRows,
		populations: map[string]map[string]string{},
		normalized:  map[string]string{},
	}
}

// Load replaces the table contents with the CSV at path.
// It returns false with a nil error when the file does not exist.
func (t *CensusTable) Load(path string) (bool, error) {

	start := time.Now()

	rows, found, err := readLatin1CSV(path)
	if !found {
		metrics.MissingSourcesCounter.WithLabelValues(tableCensus).Inc()
		return false, err
	}
	if err != nil {
		return false, err
	}

	if len(rows) < t.skipRows {
		return false, errors.Errorf("parse %s: expected at least %d header rows, got %d", path, t.skipRows, len(rows))
	}

	records := make([]PopulationRecord, 0, len(rows)-t.skipRows)
	for _, row := range rows[t.skipRows:] {
		records = append(records, PopulationRecord{Region: field(row, 0), Band: field(row, 1), Count: field(row, 2)})
	}

	t.build(records)

	metrics.RowsLoadedCounter.WithLabelValues(tableCensus).Add(float64(len(records)))
	metrics.LoadDuration.WithLabelValues(tableCensus).Observe(time.Since(start).Seconds())
	log.Infof("loaded %d population records for %d regions from %s", len(records), len(t.regions), path)

	return true, nil
}

// build keeps a (region, band) entry only when it occurs exactly once; a repeated
// pair is ambiguous and left out, though its region is still listed.
func (t *CensusTable) build(records []PopulationRecord) {

	occurrences := map[bandKey]int{}
	for _, r := range records {
		occurrences[bandKey{r.Region, r.Band}]++
	}

	t.populations = map[string]map[string]string{}
	t.normalized = map[string]string{}
	t.regions = nil

	for _, r := range records {
		bands, seen := t.populations[r.Region]
		if !seen {
			bands = map[string]string{}
			t.populations[r.Region] = bands
			t.regions = append(t.regions, r.Region)

			key := entities.NormalizeRegionName(r.Region)
			if _, taken := t.normalized[key]; !taken {
				t.normalized[key] = r.Region
			}
		}

		if r.Band == "" {
			continue
		}
		if n := occurrences[bandKey{r.Region, r.Band}]; n != 1 {
			log.Debugf("skipping %d duplicate rows for region %q band %q", n, r.Region, r.Band)
			continue
		}
		bands[r.Band] = r.Count
	}
}

// Regions returns every loaded region in order of first appearance.
func (t *CensusTable) Regions() []string {
	return slices.Clone(t.regions)
}

// PopulationUnder sums the population of every age band of region whose
// representative age is at most age. Unknown regions yield 0.
func (t *CensusTable) PopulationUnder(region string, age int) int {

	bands, ok := t.populations[region]
	if !ok {
		return 0
	}

	total := 0
	for band, text := range bands {
		bandAge, included := RepresentativeAge(band)
		if !included || bandAge > age {
			continue
		}

		count, err := parseCount(text)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeParse).
				Warnf("region %q band %q: %v", region, band, err)
			continue
		}
		total += count
	}
	return total
}

// MatchRegion resolves region against the loaded names: an exact match first,
// then a match on entities.NormalizeRegionName.
func (t *CensusTable) MatchRegion(region string) (string, bool) {
	if _, ok := t.populations[region]; ok {
		return region, true
	}
	match, ok := t.normalized[entities.NormalizeRegionName(region)]
	return match, ok
}

// parseCount converts census text such as "13,544" to an int. "-" is the census
// notation for zero.
func parseCount(text string) (int, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if text == "-" {
		return 0, nil
	}
	count, err := strconv.Atoi(text)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid population count %q", text)
	}
	return count, nil
}
