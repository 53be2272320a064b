package domain

import (
	"strings"
	"time"
)

// FormatDate returns the date part of an ISO-8601 timestamp by cutting it at
// the 'T' separator. Values without a separator are returned unchanged.
func FormatDate(iso string) string {
	if i := strings.IndexByte(iso, 'T'); i >= 0 {
		return iso[:i]
	}
	return iso
}

// NormalizeLineEndings rewrites every line break in s to the given ending
// (LineEndingCRLF or LineEndingLF).
func NormalizeLineEndings(s, ending string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if ending == LineEndingLF {
		return s
	}
	return strings.ReplaceAll(s, "\n", "\r\n")
}

// SprintName formats a sprint period, e.g. "02 Jan - 16 Jan 2024".
// The start year is only printed when it differs from the end year.
func SprintName(start, end time.Time) string {
	name := start.Format("02 Jan") + " "
	if start.Year() != end.Year() {
		name += start.Format("2006") + " "
	}
	return name + "- " + end.Format("02 Jan 2006")
}
