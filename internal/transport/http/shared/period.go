package shared

import (
	"net/http"
	"strconv"
	"time"
)

// ParsePeriod reads month and year query parameters, defaulting to the
// current period.
func ParsePeriod(r *http.Request) (month, year int) {
	now := time.Now()
	month = int(now.Month())
	year = now.Year()
	if raw := r.URL.Query().Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 && v <= 12 {
			month = v
		}
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			year = v
		}
	}
	return month, year
}
