package datasets

import (
	"regexp"
	"strconv"
	"strings"
)

// AllPeopleBand is the aggregate row of every region; it is never summed.
const AllPeopleBand = "All people"

// fixedBandAges lists the labels whose representative age cannot be read off the label.
var fixedBandAges = map[string]int{
	"Under 1":     0,
	"85 to 89":    89,
	"90 to 94":    94,
	"95 and over": 100,
}

var rangeBand = regexp.MustCompile(`^\s*\d+\s+to\s+(\d+)\s*$`)

// RepresentativeAge maps an age-band label to the upper age it stands for.
// "X to Y" maps to Y and a single year "N" to N. ok is false for the
// "All people" aggregate and for labels that are not age bands.
func RepresentativeAge(label string) (age int, ok bool) {

	if label == AllPeopleBand {
		return 0, false
	}

	if age, ok = fixedBandAges[label]; ok {
		return age, true
	}

	if m := rangeBand.FindStringSubmatch(label); m != nil {
		upper, err := strconv.Atoi(m[1])
		return upper, err == nil
	}

	year, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil {
		return 0, false
	}
	return year, true
}
