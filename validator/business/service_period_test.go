package business

import (
	"testing"

	"github.com/transitdata/gtfsvalidate/testutil"
)

func TestLoadServicePeriods(t *testing.T) {
	files := map[string]string{
		"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
			"WEEKDAY,1,1,1,1,1,0,0,20240101,20241231",
		"calendar_dates.txt": "service_id,date,exception_type\nWEEKDAY,20240106,1\nWEEKDAY,20240101,2",
	}
	loader := testutil.CreateTestFeedLoader(t, files)

	services := loadServicePeriods(loader)
	period, ok := services["WEEKDAY"]
	if !ok {
		t.Fatal("expected a WEEKDAY service period")
	}
	if !period.hasCalendar {
		t.Error("expected hasCalendar to be true")
	}
	if !period.added["20240106"] {
		t.Error("expected 20240106 to be an added exception")
	}
	if !period.removed["20240101"] {
		t.Error("expected 20240101 to be a removed exception")
	}
}

func TestServicesShareADate(t *testing.T) {
	monday := &servicePeriod{hasCalendar: true, startDate: "20240101", endDate: "20241231", added: map[string]bool{}, removed: map[string]bool{}}
	monday.days[0] = true

	tuesday := &servicePeriod{hasCalendar: true, startDate: "20240101", endDate: "20241231", added: map[string]bool{}, removed: map[string]bool{}}
	tuesday.days[1] = true

	if servicesShareADate(monday, tuesday) {
		t.Error("a Monday-only and a Tuesday-only service should never share a date")
	}

	tuesdayWithException := &servicePeriod{hasCalendar: true, startDate: "20240101", endDate: "20241231", added: map[string]bool{"20240101": true}, removed: map[string]bool{}}
	tuesdayWithException.days[1] = true

	// 2024-01-01 is a Monday, added as an exception to the Tuesday service.
	if !servicesShareADate(monday, tuesdayWithException) {
		t.Error("expected the exception date to create an overlap")
	}

	if !servicesShareADate(nil, monday) {
		t.Error("an unknown service should be treated conservatively as overlapping")
	}
}
