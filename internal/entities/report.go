package entities

import (
	"fmt"
	"time"
)

// Report is the result of one run: the most deprived region and how many people
// under AgeThreshold live there.
type Report struct {
	ID              int
	Region          string
	AverageRank     float64
	AgeThreshold    int
	PopulationUnder int
	PopulationKnown bool
	MatchedRegion   string
	CreatedAt       time.Time
}

// Lines renders the report in the plain output format: region, rank, population.
// The population line is omitted when the census table was not loaded.
func (r Report) Lines() []string {
	lines := []string{r.Region, fmt.Sprint(r.AverageRank)}
	if r.PopulationKnown {
		lines = append(lines, fmt.Sprint(r.PopulationUnder))
	}
	return lines
}
