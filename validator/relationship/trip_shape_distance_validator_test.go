package relationship

import (
	"testing"

	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/testutil"
	gtfsvalidator "github.com/transitdata/gtfsvalidate/validator"
)

func TestTripShapeDistanceValidator_Exceeds(t *testing.T) {
	files := map[string]string{
		"trips.txt": "route_id,service_id,trip_id,shape_id\nR1,S1,T1,SH1",
		"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence,shape_dist_traveled\n" +
			"SH1,0.0,0.0,1,0\n" +
			"SH1,0.0,0.01,2,1000",
		"stop_times.txt": "trip_id,stop_id,stop_sequence,arrival_time,departure_time,shape_dist_traveled\n" +
			"T1,STOP1,1,08:00:00,08:00:00,0\n" +
			"T1,STOP2,2,08:05:00,08:05:00,1050",
	}

	loader := testutil.CreateTestFeedLoader(t, files)
	container := notice.NewNoticeContainer()

	v := NewTripShapeDistanceValidator()
	v.Validate(loader, container, gtfsvalidator.Config{})

	found := false
	for _, n := range container.GetNotices() {
		if n.Code() == "trip_distance_exceeds_shape_distance" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected trip_distance_exceeds_shape_distance notice")
	}
}

func TestTripShapeDistanceValidator_BelowThreshold(t *testing.T) {
	files := map[string]string{
		"trips.txt": "route_id,service_id,trip_id,shape_id\nR1,S1,T1,SH1",
		"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence,shape_dist_traveled\n" +
			"SH1,0.0,0.0,1,0\n" +
			"SH1,0.0,0.01,2,1000",
		"stop_times.txt": "trip_id,stop_id,stop_sequence,arrival_time,departure_time,shape_dist_traveled\n" +
			"T1,STOP1,1,08:00:00,08:00:00,0\n" +
			"T1,STOP2,2,08:05:00,08:05:00,1005",
	}

	loader := testutil.CreateTestFeedLoader(t, files)
	container := notice.NewNoticeContainer()

	v := NewTripShapeDistanceValidator()
	v.Validate(loader, container, gtfsvalidator.Config{})

	foundBelow, foundExceeds := false, false
	for _, n := range container.GetNotices() {
		switch n.Code() {
		case "trip_distance_exceeds_shape_distance_below_threshold":
			foundBelow = true
		case "trip_distance_exceeds_shape_distance":
			foundExceeds = true
		}
	}
	if !foundBelow {
		t.Errorf("expected trip_distance_exceeds_shape_distance_below_threshold notice")
	}
	if foundExceeds {
		t.Errorf("did not expect trip_distance_exceeds_shape_distance notice")
	}
}

func TestTripShapeDistanceValidator_WithinShape(t *testing.T) {
	files := map[string]string{
		"trips.txt": "route_id,service_id,trip_id,shape_id\nR1,S1,T1,SH1",
		"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence,shape_dist_traveled\n" +
			"SH1,0.0,0.0,1,0\n" +
			"SH1,0.0,0.01,2,1000",
		"stop_times.txt": "trip_id,stop_id,stop_sequence,arrival_time,departure_time,shape_dist_traveled\n" +
			"T1,STOP1,1,08:00:00,08:00:00,0\n" +
			"T1,STOP2,2,08:05:00,08:05:00,900",
	}

	loader := testutil.CreateTestFeedLoader(t, files)
	container := notice.NewNoticeContainer()

	v := NewTripShapeDistanceValidator()
	v.Validate(loader, container, gtfsvalidator.Config{})

	for _, n := range container.GetNotices() {
		t.Errorf("unexpected notice for a trip within its shape's distance: %s", n.Code())
	}
}
