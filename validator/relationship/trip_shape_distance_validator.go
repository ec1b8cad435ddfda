package relationship

import (
	"io"
	"strconv"
	"strings"

	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/parser"
	"github.com/transitdata/gtfsvalidate/validator"
)

// tripShapeDistanceThresholdMeters is how far a trip's last stop_time may
// overrun its shape's own maximum shape_dist_traveled before it is an error
// rather than a warning (spec.md §4.10, trip_shape_distance).
const tripShapeDistanceThresholdMeters = 11.1

// TripShapeDistanceValidator checks that a trip's stop_times never claim to
// have traveled further along the shape than the shape itself extends.
type TripShapeDistanceValidator struct{}

// NewTripShapeDistanceValidator creates a new trip shape distance validator.
func NewTripShapeDistanceValidator() *TripShapeDistanceValidator {
	return &TripShapeDistanceValidator{}
}

func (v *TripShapeDistanceValidator) Validate(loader *parser.FeedLoader, container *notice.NoticeContainer, config validator.Config) {
	shapeMaxDistance := v.loadShapeMaxDistances(loader)
	if len(shapeMaxDistance) == 0 {
		return
	}
	tripShape := v.loadTripShapes(loader)
	if len(tripShape) == 0 {
		return
	}
	v.validateStopTimes(loader, container, tripShape, shapeMaxDistance)
}

func (v *TripShapeDistanceValidator) loadShapeMaxDistances(loader *parser.FeedLoader) map[string]float64 {
	reader, err := loader.GetFile("shapes.txt")
	if err != nil {
		return nil
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "shapes.txt")
	if err != nil {
		return nil
	}

	maxDistance := make(map[string]float64)
	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		shapeID := strings.TrimSpace(row.Values["shape_id"])
		raw := strings.TrimSpace(row.Values["shape_dist_traveled"])
		if shapeID == "" || raw == "" {
			continue
		}
		dist, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if dist > maxDistance[shapeID] {
			maxDistance[shapeID] = dist
		}
	}
	return maxDistance
}

func (v *TripShapeDistanceValidator) loadTripShapes(loader *parser.FeedLoader) map[string]string {
	reader, err := loader.GetFile("trips.txt")
	if err != nil {
		return nil
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "trips.txt")
	if err != nil {
		return nil
	}

	tripShape := make(map[string]string)
	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		tripID := strings.TrimSpace(row.Values["trip_id"])
		shapeID := strings.TrimSpace(row.Values["shape_id"])
		if tripID != "" && shapeID != "" {
			tripShape[tripID] = shapeID
		}
	}
	return tripShape
}

type tripLastDistance struct {
	sequence  int
	distance  float64
	rowNumber int
}

func (v *TripShapeDistanceValidator) validateStopTimes(loader *parser.FeedLoader, container *notice.NoticeContainer, tripShape map[string]string, shapeMaxDistance map[string]float64) {
	reader, err := loader.GetFile("stop_times.txt")
	if err != nil {
		return
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "stop_times.txt")
	if err != nil {
		return
	}

	last := make(map[string]tripLastDistance)

	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		tripID := strings.TrimSpace(row.Values["trip_id"])
		if tripID == "" {
			continue
		}
		if _, tracked := tripShape[tripID]; !tracked {
			continue
		}
		distRaw := strings.TrimSpace(row.Values["shape_dist_traveled"])
		if distRaw == "" {
			continue
		}
		dist, err := strconv.ParseFloat(distRaw, 64)
		if err != nil {
			continue
		}
		seq, _ := strconv.Atoi(strings.TrimSpace(row.Values["stop_sequence"]))

		if prev, ok := last[tripID]; !ok || seq > prev.sequence {
			last[tripID] = tripLastDistance{sequence: seq, distance: dist, rowNumber: row.RowNumber}
		}
	}

	for tripID, info := range last {
		shapeID := tripShape[tripID]
		maxDistance, ok := shapeMaxDistance[shapeID]
		if !ok {
			continue
		}
		overrun := info.distance - maxDistance
		if overrun <= 0 {
			continue
		}
		if overrun > tripShapeDistanceThresholdMeters {
			container.AddNotice(notice.NewTripDistanceExceedsShapeDistanceNotice(tripID, shapeID, info.distance, maxDistance, info.rowNumber))
		} else {
			container.AddNotice(notice.NewTripDistanceExceedsShapeDistanceBelowThresholdNotice(tripID, shapeID, info.distance, maxDistance, info.rowNumber))
		}
	}
}
