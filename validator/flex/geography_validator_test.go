package flex

import (
	"testing"

	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/testutil"
	gtfsvalidator "github.com/transitdata/gtfsvalidate/validator"
)

func TestGeographyValidator_OverlappingWindows(t *testing.T) {
	files := map[string]string{
		"stop_times.txt": "trip_id,location_group_id,start_pickup_drop_off_window,end_pickup_drop_off_window,stop_sequence\n" +
			"T1,G1,08:00:00,08:30:00,1\n" +
			"T1,G1,08:15:00,08:45:00,2",
	}

	loader := testutil.CreateTestFeedLoader(t, files)
	container := notice.NewNoticeContainer()

	v := NewGeographyValidator()
	v.Validate(loader, container, gtfsvalidator.Config{})

	found := false
	for _, n := range container.GetNotices() {
		if n.Code() == "overlapping_zone_and_pickup_drop_off_window" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected overlapping_zone_and_pickup_drop_off_window notice")
	}
}

func TestGeographyValidator_NonOverlappingWindowsAreClean(t *testing.T) {
	files := map[string]string{
		"stop_times.txt": "trip_id,location_group_id,start_pickup_drop_off_window,end_pickup_drop_off_window,stop_sequence\n" +
			"T1,G1,08:00:00,08:30:00,1\n" +
			"T1,G1,08:30:00,09:00:00,2",
	}

	loader := testutil.CreateTestFeedLoader(t, files)
	container := notice.NewNoticeContainer()

	v := NewGeographyValidator()
	v.Validate(loader, container, gtfsvalidator.Config{})

	for _, n := range container.GetNotices() {
		if n.Code() == "overlapping_zone_and_pickup_drop_off_window" {
			t.Errorf("did not expect an overlap notice for back-to-back windows")
		}
	}
}

func TestGeographyValidator_StopWithoutStopTime(t *testing.T) {
	files := map[string]string{
		"stops.txt":      "stop_id,stop_name,stop_lat,stop_lon,location_type\nSTOP1,A,0,0,0\nSTOP2,B,0,0,0",
		"stop_times.txt": "trip_id,stop_id,stop_sequence\nT1,STOP1,1",
	}

	loader := testutil.CreateTestFeedLoader(t, files)
	container := notice.NewNoticeContainer()

	v := NewGeographyValidator()
	v.Validate(loader, container, gtfsvalidator.Config{})

	found := false
	for _, n := range container.GetNotices() {
		if n.Code() == "stop_without_stop_time" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected stop_without_stop_time notice for STOP2")
	}
}

func TestGeographyValidator_StopReachedThroughLocationGroupIsUsed(t *testing.T) {
	files := map[string]string{
		"stops.txt":                "stop_id,stop_name,stop_lat,stop_lon,location_type\nSTOP1,A,0,0,0",
		"location_group_stops.txt": "location_group_id,stop_id\nG1,STOP1",
		"stop_times.txt":           "trip_id,location_group_id,stop_sequence,start_pickup_drop_off_window,end_pickup_drop_off_window\nT1,G1,1,08:00:00,08:10:00",
	}

	loader := testutil.CreateTestFeedLoader(t, files)
	container := notice.NewNoticeContainer()

	v := NewGeographyValidator()
	v.Validate(loader, container, gtfsvalidator.Config{})

	for _, n := range container.GetNotices() {
		if n.Code() == "stop_without_stop_time" {
			t.Errorf("did not expect stop_without_stop_time for a stop reached via its location group")
		}
	}
}
