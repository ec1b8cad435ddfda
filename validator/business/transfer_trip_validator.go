package business

import (
	"io"
	"strconv"
	"strings"

	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/parser"
	"github.com/transitdata/gtfsvalidate/validator"
)

// inSeatTransferType is transfer_type 4: riders stay in their seat, the
// vehicle itself continues as a different trip.
const inSeatTransferType = 4

// nonBoardableLocationTypes are stops.txt location_types that describe
// infrastructure, not a place a rider can board or alight: station (1),
// entrance/exit (2), generic node (3), boarding area (4).
var nonBoardableLocationTypes = map[int]bool{1: true, 2: true, 3: true, 4: true}

// TransferTripValidator checks transfers.txt's optional from_trip_id,
// to_trip_id, from_route_id and to_route_id columns against trips.txt and
// stop_times.txt, and the extra constraints an in-seat transfer (type 4)
// places on where in each trip the transfer point falls.
type TransferTripValidator struct{}

// NewTransferTripValidator creates a new transfer trip validator.
func NewTransferTripValidator() *TransferTripValidator {
	return &TransferTripValidator{}
}

type transferTripInfo struct {
	FromStopID   string
	ToStopID     string
	TransferType int
	FromTripID   string
	ToTripID     string
	FromRouteID  string
	ToRouteID    string
	RowNumber    int
}

type tripStopSequence struct {
	RouteID    string
	StopIDs    []string
	firstStop  string
	lastStop   string
}

func (v *TransferTripValidator) Validate(loader *parser.FeedLoader, container *notice.NoticeContainer, config validator.Config) {
	transfers := v.loadTransfers(loader)
	if len(transfers) == 0 {
		return
	}

	trips := v.loadTripStopSequences(loader)
	parentOf := v.loadParentStations(loader)
	locationTypes := v.loadStopLocationTypes(loader)

	for _, t := range transfers {
		v.validateTransfer(container, t, trips, parentOf)
		v.validateStopLocationType(container, t, locationTypes)
	}
}

func (v *TransferTripValidator) loadStopLocationTypes(loader *parser.FeedLoader) map[string]int {
	locationTypes := make(map[string]int)
	reader, err := loader.GetFile("stops.txt")
	if err != nil {
		return locationTypes
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "stops.txt")
	if err != nil {
		return locationTypes
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
		locationTypes[stopID] = locationType
	}
	return locationTypes
}

// validateStopLocationType rejects transfers whose endpoint is a station,
// entrance, generic node or boarding area rather than a boardable stop.
func (v *TransferTripValidator) validateStopLocationType(container *notice.NoticeContainer, t transferTripInfo, locationTypes map[string]int) {
	for _, stopID := range []string{t.FromStopID, t.ToStopID} {
		if stopID == "" {
			continue
		}
		if lt, ok := locationTypes[stopID]; ok && nonBoardableLocationTypes[lt] {
			container.AddNotice(notice.NewTransferWithInvalidStopLocationTypeNotice(stopID, lt, t.RowNumber))
		}
	}
}

func (v *TransferTripValidator) loadTransfers(loader *parser.FeedLoader) []transferTripInfo {
	var out []transferTripInfo
	reader, err := loader.GetFile("transfers.txt")
	if err != nil {
		return out
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "transfers.txt")
	if err != nil {
		return out
	}

	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		transferType, _ := strconv.Atoi(strings.TrimSpace(row.Values["transfer_type"]))
		t := transferTripInfo{
			FromStopID:   strings.TrimSpace(row.Values["from_stop_id"]),
			ToStopID:     strings.TrimSpace(row.Values["to_stop_id"]),
			TransferType: transferType,
			FromTripID:   strings.TrimSpace(row.Values["from_trip_id"]),
			ToTripID:     strings.TrimSpace(row.Values["to_trip_id"]),
			FromRouteID:  strings.TrimSpace(row.Values["from_route_id"]),
			ToRouteID:    strings.TrimSpace(row.Values["to_route_id"]),
			RowNumber:    row.RowNumber,
		}
		if t.FromTripID != "" || t.ToTripID != "" {
			out = append(out, t)
		}
	}
	return out
}

func (v *TransferTripValidator) loadTripStopSequences(loader *parser.FeedLoader) map[string]*tripStopSequence {
	trips := make(map[string]*tripStopSequence)

	tripsReader, err := loader.GetFile("trips.txt")
	if err == nil {
		defer tripsReader.Close()
		if csvFile, err := parser.NewCSVFile(tripsReader, "trips.txt"); err == nil {
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
				trips[tripID] = &tripStopSequence{RouteID: strings.TrimSpace(row.Values["route_id"])}
			}
		}
	}

	stReader, err := loader.GetFile("stop_times.txt")
	if err != nil {
		return trips
	}
	defer stReader.Close()

	csvFile, err := parser.NewCSVFile(stReader, "stop_times.txt")
	if err != nil {
		return trips
	}

	type seqStop struct {
		sequence int
		stopID   string
	}
	ordered := make(map[string][]seqStop)

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
		if tripID == "" || stopID == "" {
			continue
		}
		seq, _ := strconv.Atoi(strings.TrimSpace(row.Values["stop_sequence"]))
		ordered[tripID] = append(ordered[tripID], seqStop{sequence: seq, stopID: stopID})

		if _, ok := trips[tripID]; !ok {
			trips[tripID] = &tripStopSequence{}
		}
		trips[tripID].StopIDs = append(trips[tripID].StopIDs, stopID)
	}

	for tripID, stops := range ordered {
		minSeq, maxSeq := 0, 0
		var minStop, maxStop string
		for i, s := range stops {
			if i == 0 || s.sequence < minSeq {
				minSeq = s.sequence
				minStop = s.stopID
			}
			if i == 0 || s.sequence > maxSeq {
				maxSeq = s.sequence
				maxStop = s.stopID
			}
		}
		if t, ok := trips[tripID]; ok {
			t.firstStop = minStop
			t.lastStop = maxStop
		}
	}

	return trips
}

func (v *TransferTripValidator) loadParentStations(loader *parser.FeedLoader) map[string]string {
	parentOf := make(map[string]string)
	reader, err := loader.GetFile("stops.txt")
	if err != nil {
		return parentOf
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "stops.txt")
	if err != nil {
		return parentOf
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
		parent := strings.TrimSpace(row.Values["parent_station"])
		if stopID != "" && parent != "" {
			parentOf[stopID] = parent
		}
	}
	return parentOf
}

// stopBelongsToTrip reports whether stopID appears in trip's stop list,
// treating a station reference as matching any of its child stops.
func stopBelongsToTrip(stopID string, trip *tripStopSequence, parentOf map[string]string) bool {
	if trip == nil {
		return false
	}
	for _, s := range trip.StopIDs {
		if s == stopID || parentOf[s] == stopID {
			return true
		}
	}
	return false
}

func (v *TransferTripValidator) validateTransfer(container *notice.NoticeContainer, t transferTripInfo, trips map[string]*tripStopSequence, parentOf map[string]string) {
	var fromTrip, toTrip *tripStopSequence
	if t.FromTripID != "" {
		fromTrip = trips[t.FromTripID]
		if fromTrip == nil {
			container.AddNotice(notice.NewForeignKeyViolationNotice(
				"transfers.txt", "from_trip_id", t.FromTripID, t.RowNumber, "trips.txt", "trip_id",
			))
		} else {
			v.checkRouteMatch(container, t.FromTripID, t.FromRouteID, fromTrip.RouteID, t.RowNumber)
			v.checkStopOnTrip(container, t.FromTripID, t.FromStopID, fromTrip, parentOf, t.RowNumber)
		}
	}
	if t.ToTripID != "" {
		toTrip = trips[t.ToTripID]
		if toTrip == nil {
			container.AddNotice(notice.NewForeignKeyViolationNotice(
				"transfers.txt", "to_trip_id", t.ToTripID, t.RowNumber, "trips.txt", "trip_id",
			))
		} else {
			v.checkRouteMatch(container, t.ToTripID, t.ToRouteID, toTrip.RouteID, t.RowNumber)
			v.checkStopOnTrip(container, t.ToTripID, t.ToStopID, toTrip, parentOf, t.RowNumber)
		}
	}

	if t.TransferType != inSeatTransferType {
		return
	}

	if fromTrip != nil && t.FromStopID != "" && fromTrip.lastStop != "" &&
		t.FromStopID != fromTrip.lastStop && parentOf[fromTrip.lastStop] != t.FromStopID {
		container.AddNotice(notice.NewTransferWithSuspiciousMidTripInSeatNotice(t.FromTripID, t.FromStopID, t.RowNumber))
	}
	if toTrip != nil && t.ToStopID != "" && toTrip.firstStop != "" &&
		t.ToStopID != toTrip.firstStop && parentOf[toTrip.firstStop] != t.ToStopID {
		container.AddNotice(notice.NewTransferWithSuspiciousMidTripInSeatNotice(t.ToTripID, t.ToStopID, t.RowNumber))
	}
}

func (v *TransferTripValidator) checkRouteMatch(container *notice.NoticeContainer, tripID, declaredRouteID, actualRouteID string, rowNumber int) {
	if declaredRouteID == "" || actualRouteID == "" {
		return
	}
	if declaredRouteID != actualRouteID {
		container.AddNotice(notice.NewTransferWithInvalidTripAndRouteNotice(tripID, declaredRouteID, actualRouteID, rowNumber))
	}
}

func (v *TransferTripValidator) checkStopOnTrip(container *notice.NoticeContainer, tripID, stopID string, trip *tripStopSequence, parentOf map[string]string, rowNumber int) {
	if stopID == "" || trip == nil || len(trip.StopIDs) == 0 {
		return
	}
	if !stopBelongsToTrip(stopID, trip, parentOf) {
		container.AddNotice(notice.NewTransferWithInvalidTripAndStopNotice(tripID, stopID, rowNumber))
	}
}
