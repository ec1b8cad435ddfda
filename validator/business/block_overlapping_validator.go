package business

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/parser"
	"github.com/transitdata/gtfsvalidate/validator"
)

// BlockOverlappingValidator flags two trips sharing a block_id whose stop_time
// windows overlap on a day their services could both run.
type BlockOverlappingValidator struct{}

func NewBlockOverlappingValidator() *BlockOverlappingValidator {
	return &BlockOverlappingValidator{}
}

// TripTimeRange is a trip's time window for block validation.
type TripTimeRange struct {
	TripID    string
	BlockID   string
	ServiceID string
	StartTime int // seconds since midnight
	EndTime   int // seconds since midnight
	RowNumber int
}

func (v *BlockOverlappingValidator) Validate(loader *parser.FeedLoader, container *notice.NoticeContainer, config validator.Config) {
	tripBlocks := v.loadTripBlocks(loader)
	if len(tripBlocks) == 0 {
		return
	}

	tripTimeRanges := v.loadTripTimeRanges(loader, tripBlocks)
	if len(tripTimeRanges) == 0 {
		return
	}

	services := loadServicePeriods(loader)

	v.validateBlockOverlaps(container, tripTimeRanges, services)
}

func (v *BlockOverlappingValidator) loadTripBlocks(loader *parser.FeedLoader) map[string]*TripBlock {
	tripBlocks := make(map[string]*TripBlock)

	reader, err := loader.GetFile("trips.txt")
	if err != nil {
		return tripBlocks
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			log.Printf("Warning: failed to close reader %v", closeErr)
		}
	}()

	csvFile, err := parser.NewCSVFile(reader, "trips.txt")
	if err != nil {
		return tripBlocks
	}

	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		tripID, hasTripID := row.Values["trip_id"]
		blockID, hasBlockID := row.Values["block_id"]
		serviceID, hasServiceID := row.Values["service_id"]

		if hasTripID && hasBlockID && hasServiceID {
			tripIDTrimmed := strings.TrimSpace(tripID)
			blockIDTrimmed := strings.TrimSpace(blockID)
			serviceIDTrimmed := strings.TrimSpace(serviceID)

			if blockIDTrimmed != "" {
				tripBlocks[tripIDTrimmed] = &TripBlock{
					BlockID:   blockIDTrimmed,
					ServiceID: serviceIDTrimmed,
					RowNumber: row.RowNumber,
				}
			}
		}
	}

	return tripBlocks
}

// TripBlock is a trip's block membership.
type TripBlock struct {
	BlockID   string
	ServiceID string
	RowNumber int
}

func (v *BlockOverlappingValidator) loadTripTimeRanges(loader *parser.FeedLoader, tripBlocks map[string]*TripBlock) []TripTimeRange {
	var tripTimeRanges []TripTimeRange

	reader, err := loader.GetFile("stop_times.txt")
	if err != nil {
		return tripTimeRanges
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			log.Printf("Warning: failed to close reader %v", closeErr)
		}
	}()

	csvFile, err := parser.NewCSVFile(reader, "stop_times.txt")
	if err != nil {
		return tripTimeRanges
	}

	tripStopTimes := make(map[string][]StopTimeForBlock)

	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		stopTime := v.parseStopTimeForBlock(row)
		if stopTime != nil {
			tripStopTimes[stopTime.TripID] = append(tripStopTimes[stopTime.TripID], *stopTime)
		}
	}

	for tripID, stopTimes := range tripStopTimes {
		tripBlock, hasBlock := tripBlocks[tripID]
		if !hasBlock {
			continue
		}

		timeRange := v.calculateTripTimeRange(tripID, stopTimes, tripBlock)
		if timeRange != nil {
			tripTimeRanges = append(tripTimeRanges, *timeRange)
		}
	}

	return tripTimeRanges
}

// StopTimeForBlock is a stop_time row reduced to what block overlap checking needs.
type StopTimeForBlock struct {
	TripID        string
	StopSequence  int
	ArrivalTime   *int
	DepartureTime *int
	RowNumber     int
}

func (v *BlockOverlappingValidator) parseStopTimeForBlock(row *parser.CSVRow) *StopTimeForBlock {
	tripID, hasTripID := row.Values["trip_id"]
	stopSeqStr, hasStopSeq := row.Values["stop_sequence"]
	arrivalTimeStr, hasArrivalTime := row.Values["arrival_time"]
	departureTimeStr, hasDepartureTime := row.Values["departure_time"]

	if !hasTripID || !hasStopSeq {
		return nil
	}

	stopSequence, err := strconv.Atoi(strings.TrimSpace(stopSeqStr))
	if err != nil {
		return nil
	}

	stopTime := &StopTimeForBlock{
		TripID:       strings.TrimSpace(tripID),
		StopSequence: stopSequence,
		RowNumber:    row.RowNumber,
	}

	if hasArrivalTime && strings.TrimSpace(arrivalTimeStr) != "" {
		if arrivalSeconds, err := parseGTFSTimeToSeconds(strings.TrimSpace(arrivalTimeStr)); err == nil {
			stopTime.ArrivalTime = &arrivalSeconds
		}
	}

	if hasDepartureTime && strings.TrimSpace(departureTimeStr) != "" {
		if departureSeconds, err := parseGTFSTimeToSeconds(strings.TrimSpace(departureTimeStr)); err == nil {
			stopTime.DepartureTime = &departureSeconds
		}
	}

	return stopTime
}

// parseGTFSTimeToSeconds parses an HH:MM:SS GTFS time (hours may exceed 23) into
// seconds since midnight of the service day.
func parseGTFSTimeToSeconds(timeStr string) (int, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid time format")
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}

	seconds, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, err
	}

	if minutes < 0 || minutes >= 60 || seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("invalid time values")
	}

	return hours*3600 + minutes*60 + seconds, nil
}

func (v *BlockOverlappingValidator) calculateTripTimeRange(tripID string, stopTimes []StopTimeForBlock, tripBlock *TripBlock) *TripTimeRange {
	if len(stopTimes) == 0 {
		return nil
	}

	sort.Slice(stopTimes, func(i, j int) bool {
		return stopTimes[i].StopSequence < stopTimes[j].StopSequence
	})

	var startTime *int
	for _, stopTime := range stopTimes {
		var timeToCheck *int
		if stopTime.ArrivalTime != nil {
			timeToCheck = stopTime.ArrivalTime
		} else if stopTime.DepartureTime != nil {
			timeToCheck = stopTime.DepartureTime
		}

		if timeToCheck != nil && (startTime == nil || *timeToCheck < *startTime) {
			startTime = timeToCheck
		}
	}

	var endTime *int
	for i := len(stopTimes) - 1; i >= 0; i-- {
		stopTime := stopTimes[i]
		var timeToCheck *int
		if stopTime.DepartureTime != nil {
			timeToCheck = stopTime.DepartureTime
		} else if stopTime.ArrivalTime != nil {
			timeToCheck = stopTime.ArrivalTime
		}

		if timeToCheck != nil && (endTime == nil || *timeToCheck > *endTime) {
			endTime = timeToCheck
		}
	}

	if startTime == nil || endTime == nil {
		return nil
	}

	return &TripTimeRange{
		TripID:    tripID,
		BlockID:   tripBlock.BlockID,
		ServiceID: tripBlock.ServiceID,
		StartTime: *startTime,
		EndTime:   *endTime,
		RowNumber: tripBlock.RowNumber,
	}
}

func (v *BlockOverlappingValidator) validateBlockOverlaps(container *notice.NoticeContainer, tripTimeRanges []TripTimeRange, services map[string]*servicePeriod) {
	blockTrips := make(map[string][]TripTimeRange)

	for _, tripRange := range tripTimeRanges {
		blockTrips[tripRange.BlockID] = append(blockTrips[tripRange.BlockID], tripRange)
	}

	blockIDs := make([]string, 0, len(blockTrips))
	for blockID := range blockTrips {
		blockIDs = append(blockIDs, blockID)
	}
	sort.Strings(blockIDs)

	for _, blockID := range blockIDs {
		trips := blockTrips[blockID]
		if len(trips) < 2 {
			continue
		}

		v.validateBlockTripOverlaps(container, blockID, trips, services)
	}
}

func (v *BlockOverlappingValidator) validateBlockTripOverlaps(container *notice.NoticeContainer, blockID string, trips []TripTimeRange, services map[string]*servicePeriod) {
	sort.Slice(trips, func(i, j int) bool {
		if trips[i].StartTime != trips[j].StartTime {
			return trips[i].StartTime < trips[j].StartTime
		}
		return trips[i].TripID < trips[j].TripID
	})

	for i := 0; i < len(trips); i++ {
		for j := i + 1; j < len(trips); j++ {
			trip1 := &trips[i]
			trip2 := &trips[j]

			if !v.tripsOverlap(trip1, trip2) {
				continue
			}
			if !servicesShareADate(services[trip1.ServiceID], services[trip2.ServiceID]) {
				continue
			}

			intersectionStart := trip2.StartTime
			if trip1.StartTime > intersectionStart {
				intersectionStart = trip1.StartTime
			}
			intersectionEnd := trip1.EndTime
			if trip2.EndTime < intersectionEnd {
				intersectionEnd = trip2.EndTime
			}
			intersection := fmt.Sprintf("%s-%s", formatSecondsAsGTFSTime(intersectionStart), formatSecondsAsGTFSTime(intersectionEnd))

			container.AddNotice(notice.NewBlockTripsOverlapNotice(
				blockID,
				trip1.TripID,
				trip2.TripID,
				trip1.ServiceID,
				trip2.ServiceID,
				formatSecondsAsGTFSTime(trip1.StartTime),
				formatSecondsAsGTFSTime(trip1.EndTime),
				formatSecondsAsGTFSTime(trip2.StartTime),
				formatSecondsAsGTFSTime(trip2.EndTime),
				intersection,
				trip1.RowNumber,
				trip2.RowNumber,
			))
		}
	}
}

func (v *BlockOverlappingValidator) tripsOverlap(trip1, trip2 *TripTimeRange) bool {
	return trip1.StartTime < trip2.EndTime && trip2.StartTime < trip1.EndTime
}

func formatSecondsAsGTFSTime(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
