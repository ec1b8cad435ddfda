// Package flex validates the GTFS-Flex extensions: locations.geojson zones,
// location_groups, and the stop_time fields (start/end_pickup_drop_off_window)
// that let a trip serve a zone instead of a fixed stop.
package flex

import (
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/transitdata/gtfsvalidate/geojson"
	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/parser"
	"github.com/transitdata/gtfsvalidate/validator"
)

// GeographyValidator checks that stop_id, location_group_id and
// locations.geojson location_id draw from disjoint identifier spaces, and
// that each stop_times row names at most one of them.
type GeographyValidator struct{}

// NewGeographyValidator creates a new geography validator.
func NewGeographyValidator() *GeographyValidator {
	return &GeographyValidator{}
}

type idOrigin struct {
	kind      string
	rowNumber int
}

func (v *GeographyValidator) Validate(loader *parser.FeedLoader, container *notice.NoticeContainer, config validator.Config) {
	seen := make(map[string]idOrigin)

	v.collectIDs(loader, container, "stops.txt", "stop_id", "stop", seen)
	v.collectIDs(loader, container, "location_groups.txt", "location_group_id", "location group", seen)
	v.collectGeoJSONIDs(loader, container, seen)

	usage := v.validateStopTimes(loader, container)
	v.validateStopUsage(loader, container, usage)
}

// geographyUsage tracks which stop_ids and location_group_ids were actually
// referenced from stop_times.txt, so location_has_stop_times can tell a
// boardable stop nobody serves from one reached only through a group.
type geographyUsage struct {
	stopsUsedDirectly map[string]bool
	locationGroupsUsed map[string]bool
}

func (v *GeographyValidator) collectIDs(loader *parser.FeedLoader, container *notice.NoticeContainer, filename, field, kind string, seen map[string]idOrigin) {
	reader, err := loader.GetFile(filename)
	if err != nil {
		return
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, filename)
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
		id := strings.TrimSpace(row.Values[field])
		if id == "" {
			continue
		}
		v.checkDuplicate(container, id, kind, row.RowNumber, seen)
	}
}

func (v *GeographyValidator) collectGeoJSONIDs(loader *parser.FeedLoader, container *notice.NoticeContainer, seen map[string]idOrigin) {
	reader, err := loader.GetFile("locations.geojson")
	if err != nil {
		return
	}
	defer reader.Close()

	data, err := ioutil.ReadAll(reader)
	if err != nil {
		return
	}

	locations := geojson.Parse(data)
	if locations.HasFatalErrors() {
		container.AddNotice(locations.ParseNotice())
		return
	}

	for _, loc := range locations.All() {
		v.checkDuplicate(container, loc.ID, "GeoJSON location", loc.FeatureIndex, seen)
	}
}

func (v *GeographyValidator) checkDuplicate(container *notice.NoticeContainer, id, kind string, rowNumber int, seen map[string]idOrigin) {
	if prior, exists := seen[id]; exists {
		container.AddNotice(notice.NewDuplicateGeographyIDNotice(id, prior.kind, kind, rowNumber))
		return
	}
	seen[id] = idOrigin{kind: kind, rowNumber: rowNumber}
}

type stopTimeGeography struct {
	TripID          string
	StopID          string
	LocationGroupID string
	LocationID      string
	StartWindow     string
	EndWindow       string
	ArrivalTime     string
	DepartureTime   string
	RowNumber       int
}

func (v *GeographyValidator) validateStopTimes(loader *parser.FeedLoader, container *notice.NoticeContainer) geographyUsage {
	usage := geographyUsage{
		stopsUsedDirectly:  make(map[string]bool),
		locationGroupsUsed: make(map[string]bool),
	}

	reader, err := loader.GetFile("stop_times.txt")
	if err != nil {
		return usage
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "stop_times.txt")
	if err != nil {
		return usage
	}

	byTrip := make(map[string][]stopTimeGeography)

	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		st := stopTimeGeography{
			TripID:          strings.TrimSpace(row.Values["trip_id"]),
			StopID:          strings.TrimSpace(row.Values["stop_id"]),
			LocationGroupID: strings.TrimSpace(row.Values["location_group_id"]),
			LocationID:      strings.TrimSpace(row.Values["location_id"]),
			StartWindow:     strings.TrimSpace(row.Values["start_pickup_drop_off_window"]),
			EndWindow:       strings.TrimSpace(row.Values["end_pickup_drop_off_window"]),
			ArrivalTime:     strings.TrimSpace(row.Values["arrival_time"]),
			DepartureTime:   strings.TrimSpace(row.Values["departure_time"]),
			RowNumber:       row.RowNumber,
		}

		v.validateRow(container, st)

		if st.StopID != "" {
			usage.stopsUsedDirectly[st.StopID] = true
		}
		if st.LocationGroupID != "" {
			usage.locationGroupsUsed[st.LocationGroupID] = true
		}
		if st.TripID != "" {
			byTrip[st.TripID] = append(byTrip[st.TripID], st)
		}
	}

	for _, rows := range byTrip {
		v.checkOverlappingWindows(container, rows)
	}

	return usage
}

// checkOverlappingWindows flags pairs of stop_times rows in the same trip
// that name the same zone (location_group_id or location_id) and whose
// pickup/drop-off windows overlap in time: a rider could be claimed by two
// windows at once.
func (v *GeographyValidator) checkOverlappingWindows(container *notice.NoticeContainer, rows []stopTimeGeography) {
	for i := 0; i < len(rows); i++ {
		a := rows[i]
		aZone := a.LocationGroupID
		if aZone == "" {
			aZone = a.LocationID
		}
		if aZone == "" || a.StartWindow == "" || a.EndWindow == "" {
			continue
		}
		aStart, okAS := parseGTFSSeconds(a.StartWindow)
		aEnd, okAE := parseGTFSSeconds(a.EndWindow)
		if !okAS || !okAE {
			continue
		}

		for j := i + 1; j < len(rows); j++ {
			b := rows[j]
			bZone := b.LocationGroupID
			if bZone == "" {
				bZone = b.LocationID
			}
			if bZone != aZone || b.StartWindow == "" || b.EndWindow == "" {
				continue
			}
			bStart, okBS := parseGTFSSeconds(b.StartWindow)
			bEnd, okBE := parseGTFSSeconds(b.EndWindow)
			if !okBS || !okBE {
				continue
			}
			if aStart < bEnd && bStart < aEnd {
				container.AddNotice(notice.NewOverlappingZoneAndPickupDropOffWindowNotice(a.TripID, a.RowNumber, b.RowNumber))
			}
		}
	}
}

// validateStopUsage flags boardable stops (location_type 0) that stop_times
// never references, whether directly by stop_id or indirectly through a
// location_group_stops.txt membership.
func (v *GeographyValidator) validateStopUsage(loader *parser.FeedLoader, container *notice.NoticeContainer, usage geographyUsage) {
	groupMembers := v.loadLocationGroupMembers(loader)

	reader, err := loader.GetFile("stops.txt")
	if err != nil {
		return
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "stops.txt")
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
		if locationType != 0 {
			continue
		}
		if usage.stopsUsedDirectly[stopID] {
			continue
		}
		usedViaGroup := false
		for _, groupID := range groupMembers[stopID] {
			if usage.locationGroupsUsed[groupID] {
				usedViaGroup = true
				break
			}
		}
		if !usedViaGroup {
			container.AddNotice(notice.NewStopWithoutStopTimeNotice(stopID, row.RowNumber))
		}
	}
}

// loadLocationGroupMembers maps a stop_id to every location_group_id it
// belongs to per location_group_stops.txt.
func (v *GeographyValidator) loadLocationGroupMembers(loader *parser.FeedLoader) map[string][]string {
	members := make(map[string][]string)
	reader, err := loader.GetFile("location_group_stops.txt")
	if err != nil {
		return members
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "location_group_stops.txt")
	if err != nil {
		return members
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
		groupID := strings.TrimSpace(row.Values["location_group_id"])
		if stopID == "" || groupID == "" {
			continue
		}
		members[stopID] = append(members[stopID], groupID)
	}
	return members
}

func (v *GeographyValidator) validateRow(container *notice.NoticeContainer, st stopTimeGeography) {
	geographyCount := 0
	if st.StopID != "" {
		geographyCount++
	}
	if st.LocationGroupID != "" {
		geographyCount++
	}
	if st.LocationID != "" {
		geographyCount++
	}
	if geographyCount > 1 {
		container.AddNotice(notice.NewForbiddenGeographyIDNotice(st.TripID, st.RowNumber))
	}

	usesZone := st.LocationGroupID != "" || st.LocationID != ""
	if usesZone {
		if st.ArrivalTime != "" {
			container.AddNotice(notice.NewForbiddenArrivalOrDepartureTimeNotice(st.TripID, "arrival_time", st.RowNumber))
		}
		if st.DepartureTime != "" {
			container.AddNotice(notice.NewForbiddenArrivalOrDepartureTimeNotice(st.TripID, "departure_time", st.RowNumber))
		}

		switch {
		case st.StartWindow == "" && st.EndWindow != "":
			container.AddNotice(notice.NewMissingPickupOrDropOffWindowNotice(st.TripID, "start_pickup_drop_off_window", st.RowNumber))
		case st.StartWindow != "" && st.EndWindow == "":
			container.AddNotice(notice.NewMissingPickupOrDropOffWindowNotice(st.TripID, "end_pickup_drop_off_window", st.RowNumber))
		case st.StartWindow != "" && st.EndWindow != "":
			if !windowIsOrdered(st.StartWindow, st.EndWindow) {
				container.AddNotice(notice.NewInvalidPickupDropOffWindowNotice(st.TripID, st.StartWindow, st.EndWindow, st.RowNumber))
			}
		}
	}
}

// windowIsOrdered reports whether start < end, both given as GTFS time
// strings ("H:MM:SS", possibly past 24:00:00).
func windowIsOrdered(start, end string) bool {
	s, okS := parseGTFSSeconds(start)
	e, okE := parseGTFSSeconds(end)
	if !okS || !okE {
		return true // malformed times are reported by the time-format rule, not here
	}
	return s < e
}

func parseGTFSSeconds(t string) (int, bool) {
	parts := strings.Split(t, ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	s, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return h*3600 + m*60 + s, true
}
