package datasets

import (
	"github.com/maxaizer/simd-age/internal/metrics"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"slices"
	"strconv"
	"strings"
	"time"
)

type RankRecord struct {
	Region string
	Rank   int
}

// DeprivationTable holds the average deprivation rank of every region.
// Lower ranks mean greater deprivation.
type DeprivationTable struct {
	regionColumn string
	rankColumn   string
	averages     map[string]float64
	regions      []string
}

func NewDeprivationTable(regionColumn, rankColumn string) *DeprivationTable {
	return &DeprivationTable{
		regionColumn: regionColumn,
		rankColumn:   rankColumn,
		averages:     map[string]float64{},
	}
}

// Load replaces the table contents with the averages computed from the CSV at path.
// It returns false with a nil error when the file does not exist.
func (t *DeprivationTable) Load(path string) (bool, error) {

	start := time.Now()

	rows, found, err := readLatin1CSV(path)
	if !found {
		metrics.MissingSourcesCounter.WithLabelValues(tableDeprivation).Inc()
		return false, err
	}
	if err != nil {
		return false, err
	}

	records, err := t.parseRecords(rows)
	if err != nil {
		return false, errors.Wrapf(err, "parse %s", path)
	}

	t.aggregate(records)

	metrics.RowsLoadedCounter.WithLabelValues(tableDeprivation).Add(float64(len(records)))
	metrics.LoadDuration.WithLabelValues(tableDeprivation).Observe(time.Since(start).Seconds())
	log.Infof("loaded %d rank records for %d regions from %s", len(records), len(t.regions), path)

	return true, nil
}

func (t *DeprivationTable) parseRecords(rows [][]string) ([]RankRecord, error) {

	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	regionIdx := slices.Index(header, t.regionColumn)
	if regionIdx < 0 {
		return nil, errors.Errorf("column %q not found in header", t.regionColumn)
	}
	rankIdx := slices.Index(header, t.rankColumn)
	if rankIdx < 0 {
		return nil, errors.Errorf("column %q not found in header", t.rankColumn)
	}

	records := make([]RankRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rank, err := strconv.Atoi(strings.TrimSpace(field(row, rankIdx)))
		if err != nil {
			return nil, errors.Wrapf(err, "row %d: invalid rank", i+2)
		}
		records = append(records, RankRecord{Region: field(row, regionIdx), Rank: rank})
	}
	return records, nil
}

func (t *DeprivationTable) aggregate(records []RankRecord) {

	byRegion := lo.GroupBy(records, func(r RankRecord) string { return r.Region })

	t.regions = lo.Uniq(lo.Map(records, func(r RankRecord, _ int) string { return r.Region }))
	t.averages = make(map[string]float64, len(byRegion))
	for region, group := range byRegion {
		ranks := lo.Map(group, func(r RankRecord, _ int) int { return r.Rank })
		t.averages[region] = float64(lo.Sum(ranks)) / float64(len(ranks))
	}
}

// Regions returns every loaded region in order of first appearance.
func (t *DeprivationTable) Regions() []string {
	return slices.Clone(t.regions)
}

func (t *DeprivationTable) AverageRank(region string) (float64, bool) {
	rank, ok := t.averages[region]
	return rank, ok
}

// LowestRanked returns the most deprived region. Ties go to the region that
// appears first in the source; ok is false when nothing is loaded.
func (t *DeprivationTable) LowestRanked() (region string, ok bool) {
	if len(t.regions) == 0 {
		return "", false
	}
	return lo.MinBy(t.regions, func(a, b string) bool {
		return t.averages[a] < t.averages[b]
	}), true
}
