// Package datasets loads the census age table and the deprivation ranking table
// and answers the per-region queries the report needs.
package datasets

import (
	"encoding/csv"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"io"
	"io/fs"
	"os"
)

const (
	tableCensus      = "census"
	tableDeprivation = "deprivation"
)

// readLatin1CSV reads every record of an ISO-8859-1 encoded CSV file.
// found is false, with a nil error, when path does not name a regular file.
func readLatin1CSV(path string) (records [][]string, found bool, err error) {

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "stat %s", path)
	}
	if info.IsDir() {
		return nil, false, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, true, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	records, err = readAll(charmap.ISO8859_1.NewDecoder().Reader(file))
	if err != nil {
		return nil, true, errors.Wrapf(err, "read %s", path)
	}
	return records, true, nil
}

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.ReadAll()
}

// field returns row[i], or "" when the row is too short.
func field(row []string, i int) string {
	if i >= 0 && i < len(row) {
		return row[i]
	}
	return ""
}
