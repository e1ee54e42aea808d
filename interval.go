package yahoofinance

import (
	"fmt"
	"strings"
)

// Interval is the bucket size of a historical series.
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval2m  Interval = "2m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval90m Interval = "90m"
	Interval1h  Interval = "1h"
	Interval6mo Interval = "6mo"

	Interval1d  Interval = "1d"
	Interval1wk Interval = "1wk"
	Interval1mo Interval = "1mo"
)

// intervalClass decides which upstream endpoint serves an interval.
type intervalClass int

const (
	intervalInvalid intervalClass = iota
	// intervalIntraday goes to the chart endpoint.
	intervalIntraday
	// intervalDaily goes to the legacy tabular download endpoint.
	intervalDaily
)

var chartIntervals = []Interval{
	Interval1m, Interval2m, Interval5m, Interval15m,
	Interval30m, Interval90m, Interval1h, Interval6mo,
}

var downloadIntervals = []Interval{Interval1d, Interval1wk, Interval1mo}

func classifyInterval(iv Interval) intervalClass {
	for _, c := range chartIntervals {
		if iv == c {
			return intervalIntraday
		}
	}
	for _, c := range downloadIntervals {
		if iv == c {
			return intervalDaily
		}
	}
	return intervalInvalid
}

func intervalList(ivs []Interval) string {
	ss := make([]string, len(ivs))
	for i, iv := range ivs {
		ss[i] = string(iv)
	}
	return strings.Join(ss, ", ")
}

func errUnsupportedInterval(iv Interval) error {
	return fmt.Errorf("interval %q not supported, allowed intervals: %s (chart) or %s (download): %w",
		iv, intervalList(chartIntervals), intervalList(downloadIntervals), ErrValidation)
}
