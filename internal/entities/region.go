package entities

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"regexp"
	"strings"
	"unicode"
)

// mojibake left behind when a UTF-8 replacement character is read as Latin-1
const latin1Replacement = "ï¿½"

var nonAlphanumeric = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// NormalizeRegionName folds case, strips accents and drops everything that is not
// a letter or a digit. "Steòrnabhagh a Deas " and "steornabhagh-a-deas" normalize
// to the same key.
func NormalizeRegionName(name string) string {
	str := strings.ReplaceAll(name, latin1Replacement, "")
	str = strings.ReplaceAll(str, string(unicode.ReplacementChar), "")

	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(stripAccents, str); err == nil {
		str = stripped
	}

	str = strings.ToLower(str)
	return nonAlphanumeric.ReplaceAllString(str, "")
}
