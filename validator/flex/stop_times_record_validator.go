package flex

import (
	"io"
	"strconv"
	"strings"

	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/parser"
	"github.com/transitdata/gtfsvalidate/validator"
)

// mustPhoneOrCoordinate covers the pickup/drop-off types under which a rider
// cannot simply show up at the scheduled time: 2 is "must phone agency", 3 is
// "must coordinate with driver".
func mustPhoneOrCoordinate(v int) bool { return v == 2 || v == 3 }

// StopTimesRecordValidator checks that every location referenced by
// stop_times is actually boardable, and that a trip entirely made of
// by-arrangement stops still has at least one usable stop_time.
type StopTimesRecordValidator struct{}

// NewStopTimesRecordValidator creates a new stop_times record validator.
func NewStopTimesRecordValidator() *StopTimesRecordValidator {
	return &StopTimesRecordValidator{}
}

type locationTypeInfo struct {
	locationType int
	rowNumber    int
}

func (v *StopTimesRecordValidator) Validate(loader *parser.FeedLoader, container *notice.NoticeContainer, config validator.Config) {
	stopLocationTypes := v.loadStopLocationTypes(loader)
	v.validateStopTimes(loader, container, stopLocationTypes)
}

func (v *StopTimesRecordValidator) loadStopLocationTypes(loader *parser.FeedLoader) map[string]locationTypeInfo {
	result := make(map[string]locationTypeInfo)
	reader, err := loader.GetFile("stops.txt")
	if err != nil {
		return result
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "stops.txt")
	if err != nil {
		return result
	}

	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		stopID := strings.TrimSpace(row.Values["stop_id"])
		if stopID == "" {
			continue
		}
		locationType := 0
		if raw := strings.TrimSpace(row.Values["location_type"]); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				locationType = n
			}
		}
		result[stopID] = locationTypeInfo{locationType: locationType, rowNumber: row.RowNumber}
	}
	return result
}

// nonBoardableLocationTypes are stop.txt location_types that describe
// infrastructure, not a place a rider can board or alight: station (1),
// entrance/exit (2), generic node (3), boarding area (4).
var nonBoardableLocationTypes = map[int]bool{1: true, 2: true, 3: true, 4: true}

func (v *StopTimesRecordValidator) validateStopTimes(loader *parser.FeedLoader, container *notice.NoticeContainer, stopLocationTypes map[string]locationTypeInfo) {
	reader, err := loader.GetFile("stop_times.txt")
	if err != nil {
		return
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "stop_times.txt")
	if err != nil {
		return
	}

	type tripState struct {
		firstRow     int
		hasUsableRow bool
	}
	trips := make(map[string]*tripState)

	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		tripID := strings.TrimSpace(row.Values["trip_id"])
		stopID := strings.TrimSpace(row.Values["stop_id"])

		if stopID != "" {
			if info, ok := stopLocationTypes[stopID]; ok && nonBoardableLocationTypes[info.locationType] {
				container.AddNotice(notice.NewLocationWithUnexpectedStopTimeNotice(stopID, info.locationType, row.RowNumber))
			}
		}

		if tripID == "" {
			continue
		}
		state, ok := trips[tripID]
		if !ok {
			state = &tripState{firstRow: row.RowNumber}
			trips[tripID] = state
		}

		pickupType := parseIntField(row.Values["pickup_type"])
		dropOffType := parseIntField(row.Values["drop_off_type"])
		if !mustPhoneOrCoordinate(pickupType) || !mustPhoneOrCoordinate(dropOffType) {
			state.hasUsableRow = true
		}
	}

	for tripID, state := range trips {
		if !state.hasUsableRow {
			container.AddNotice(notice.NewMissingStopTimesRecordNotice(tripID, state.firstRow))
		}
	}
}

func parseIntField(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
