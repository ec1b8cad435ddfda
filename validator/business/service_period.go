package business

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/transitdata/gtfsvalidate/parser"
)

// servicePeriod is the set of calendar dates a service_id is active on,
// derived from calendar.txt's weekday/date-range row plus calendar_dates.txt
// exceptions. Dates are kept as YYYYMMDD strings so they compare and sort
// lexically without a time package round trip.
type servicePeriod struct {
	hasCalendar bool
	days        [7]bool // index 0 = Monday, matching calendar.txt's column order
	startDate   string
	endDate     string
	added       map[string]bool
	removed     map[string]bool
}

// loadServicePeriods builds a service_id -> servicePeriod map from calendar.txt
// and calendar_dates.txt, whichever are present.
func loadServicePeriods(loader *parser.FeedLoader) map[string]*servicePeriod {
	services := make(map[string]*servicePeriod)

	if reader, err := loader.GetFile("calendar.txt"); err == nil {
		func() {
			defer reader.Close()
			csvFile, err := parser.NewCSVFile(reader, "calendar.txt")
			if err != nil {
				return
			}
			for {
				row, err := csvFile.ReadRow()
				if err == io.EOF {
					break
				}
				if err != nil {
					break
				}
				serviceID := strings.TrimSpace(row.Values["service_id"])
				if serviceID == "" {
					continue
				}
				period := &servicePeriod{
					hasCalendar: true,
					startDate:   strings.TrimSpace(row.Values["start_date"]),
					endDate:     strings.TrimSpace(row.Values["end_date"]),
					added:       make(map[string]bool),
					removed:     make(map[string]bool),
				}
				weekdayColumns := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
				for i, col := range weekdayColumns {
					period.days[i] = strings.TrimSpace(row.Values[col]) == "1"
				}
				services[serviceID] = period
			}
		}()
	}

	if reader, err := loader.GetFile("calendar_dates.txt"); err == nil {
		func() {
			defer reader.Close()
			csvFile, err := parser.NewCSVFile(reader, "calendar_dates.txt")
			if err != nil {
				return
			}
			for {
				row, err := csvFile.ReadRow()
				if err == io.EOF {
					break
				}
				if err != nil {
					break
				}
				serviceID := strings.TrimSpace(row.Values["service_id"])
				date := strings.TrimSpace(row.Values["date"])
				if serviceID == "" || date == "" {
					continue
				}
				period, exists := services[serviceID]
				if !exists {
					period = &servicePeriod{added: make(map[string]bool), removed: make(map[string]bool)}
					services[serviceID] = period
				}
				exceptionType, _ := strconv.Atoi(strings.TrimSpace(row.Values["exception_type"]))
				if exceptionType == 2 {
					period.removed[date] = true
				} else {
					period.added[date] = true
				}
			}
		}()
	}

	return services
}

// servicesShareADate reports whether two services can plausibly run on at
// least one common calendar date. It errs toward "true" when either service
// is unknown or has no parsed date information, so the overlap check behaves
// conservatively rather than silently dropping notices on malformed feeds.
func servicesShareADate(a, b *servicePeriod) bool {
	if a == nil || b == nil {
		return true
	}
	if a == b {
		return true
	}

	if !a.hasCalendar && len(a.added) == 0 {
		return true
	}
	if !b.hasCalendar && len(b.added) == 0 {
		return true
	}

	for date := range a.added {
		if serviceActiveOn(b, date) {
			return true
		}
	}
	for date := range b.added {
		if serviceActiveOn(a, date) {
			return true
		}
	}

	if !a.hasCalendar || !b.hasCalendar {
		return len(a.added) > 0 && len(b.added) > 0
	}

	if a.endDate < b.startDate || b.endDate < a.startDate {
		return false
	}

	for i := 0; i < 7; i++ {
		if a.days[i] && b.days[i] {
			return true
		}
	}

	return false
}

// serviceActiveOn reports whether a service's calendar.txt row (if any) marks
// it active on the given date's weekday within its date range, accounting for
// calendar_dates.txt removals.
func serviceActiveOn(s *servicePeriod, date string) bool {
	if s == nil {
		return false
	}
	if s.added[date] {
		return true
	}
	if s.removed[date] {
		return false
	}
	if !s.hasCalendar {
		return false
	}
	if date < s.startDate || date > s.endDate {
		return false
	}
	weekday, err := gtfsDateWeekday(date)
	if err != nil {
		return false
	}
	return s.days[weekday]
}

// gtfsDateWeekday parses a YYYYMMDD GTFS date into a Monday=0..Sunday=6 index.
func gtfsDateWeekday(date string) (int, error) {
	t, err := time.Parse("20060102", date)
	if err != nil {
		return 0, err
	}
	return (int(t.Weekday()) + 6) % 7, nil
}
