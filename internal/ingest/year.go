package ingest

import (
	"regexp"
	"strconv"
)

// YearProvenance records how a year was determined.
type YearProvenance string

const (
	// YearDetected means the year was embedded in the file name.
	YearDetected YearProvenance = "detected"
	// YearDefault means the caller-supplied default was used.
	YearDefault YearProvenance = "default"
)

// Years 2020-2039 embedded anywhere in a file name.
var yearPattern = regexp.MustCompile(`20[2-3][0-9]`)

// ResolveYear extracts the first plausible 4-digit year token from a file
// name, falling back to the supplied default.
func ResolveYear(fileName string, defaultYear int) (int, YearProvenance) {
	if token := yearPattern.FindString(fileName); token != "" {
		year, err := strconv.Atoi(token)
		if err == nil {
			return year, YearDetected
		}
	}
	return defaultYear, YearDefault
}
