package provider

import (
	"log"
	"time"
)

// DefaultPeriod is the provider-side relative range used when no valid
// explicit window is configured. Delegating to the provider keeps the
// trailing window aligned with its trading calendar.
const DefaultPeriod = "3mo"

const dateLayout = "2006-01-02"

// Window describes the historical query range for a fetch. Either Period is
// set (relative mode) or Start/End are set (explicit [Start, End) range).
type Window struct {
	Period string
	Start  time.Time
	End    time.Time
}

// IsPeriod reports whether the window is in relative period mode
func (w Window) IsPeriod() bool {
	return w.Period != ""
}

// String returns a stable human-readable form, also used as a cache key part
func (w Window) String() string {
	if w.IsPeriod() {
		return w.Period
	}
	return w.Start.Format(dateLayout) + ".." + w.End.Format(dateLayout)
}

// ResolveWindow decides the fetch window from optional start/end date strings
// (YYYY-MM-DD). Both valid with start before end yields an explicit range.
// Anything else degrades to the default trailing period with a logged reason;
// invalid input is never an error for this best-effort batch job.
func ResolveWindow(startStr, endStr string) Window {
	defaultWindow := Window{Period: DefaultPeriod}

	switch {
	case startStr == "" && endStr == "":
		return defaultWindow
	case startStr == "" || endStr == "":
		log.Printf("Both FETCH_START_DATE and FETCH_END_DATE must be set if one is; defaulting to %s period", DefaultPeriod)
		return defaultWindow
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		log.Printf("Invalid FETCH_START_DATE %q: %v; defaulting to %s period", startStr, err, DefaultPeriod)
		return defaultWindow
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		log.Printf("Invalid FETCH_END_DATE %q: %v; defaulting to %s period", endStr, err, DefaultPeriod)
		return defaultWindow
	}
	if !start.Before(end) {
		log.Printf("FETCH_START_DATE %s must be before FETCH_END_DATE %s; defaulting to %s period", startStr, endStr, DefaultPeriod)
		return defaultWindow
	}

	return Window{Start: start, End: end}
}
