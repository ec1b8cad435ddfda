package entity

import (
	"io"
	"strings"

	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/parser"
	"github.com/transitdata/gtfsvalidate/validator"
)

// TripBlockIdValidator validates block_id assignments in trips
type TripBlockIdValidator struct{}

// NewTripBlockIdValidator creates a new trip block ID validator
func NewTripBlockIdValidator() *TripBlockIdValidator {
	return &TripBlockIdValidator{}
}

// TripBlockInfo represents trip block information
type TripBlockInfo struct {
	TripID    string
	RouteID   string
	ServiceID string
	BlockID   string
	RowNumber int
}

// Validate checks block_id assignments for consistency
func (v *TripBlockIdValidator) Validate(loader *parser.FeedLoader, container *notice.NoticeContainer, config validator.Config) {
	trips := v.loadTrips(loader)
	if len(trips) == 0 {
		return
	}

	// Group trips by block_id
	blockTrips := make(map[string][]*TripBlockInfo)
	for _, trip := range trips {
		if trip.BlockID != "" {
			blockTrips[trip.BlockID] = append(blockTrips[trip.BlockID], trip)
		}
	}

	// Validate each block
	for blockID, blockTripList := range blockTrips {
		v.validateBlock(container, blockID, blockTripList, loader)
	}
}

// loadTrips loads trip information from trips.txt
func (v *TripBlockIdValidator) loadTrips(loader *parser.FeedLoader) []*TripBlockInfo {
	var trips []*TripBlockInfo

	reader, err := loader.GetFile("trips.txt")
	if err != nil {
		return trips
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "trips.txt")
	if err != nil {
		return trips
	}

	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		trip := v.parseTrip(row)
		if trip != nil {
			trips = append(trips, trip)
		}
	}

	return trips
}

// parseTrip parses trip information
func (v *TripBlockIdValidator) parseTrip(row *parser.CSVRow) *TripBlockInfo {
	tripID, hasTripID := row.Values["trip_id"]
	routeID, hasRouteID := row.Values["route_id"]
	serviceID, hasServiceID := row.Values["service_id"]

	if !hasTripID || !hasRouteID || !hasServiceID {
		return nil
	}

	trip := &TripBlockInfo{
		TripID:    strings.TrimSpace(tripID),
		RouteID:   strings.TrimSpace(routeID),
		ServiceID: strings.TrimSpace(serviceID),
		RowNumber: row.RowNumber,
	}

	// Parse optional block_id
	if blockID, hasBlockID := row.Values["block_id"]; hasBlockID {
		trip.BlockID = strings.TrimSpace(blockID)
	}

	return trip
}

// validateBlock validates a block of trips
func (v *TripBlockIdValidator) validateBlock(container *notice.NoticeContainer, blockID string, trips []*TripBlockInfo, loader *parser.FeedLoader) {
	if len(trips) < 2 {
		// Single trip in block - not necessarily a problem, but worth noting
		if len(trips) == 1 {
			container.AddNotice(notice.NewSingleTripBlockNotice(
				blockID,
				trips[0].TripID,
				trips[0].RowNumber,
			))
		}
		return
	}

	// Validate service consistency within block
	v.validateBlockServiceConsistency(container, blockID, trips)

	// Validate route consistency within block
	v.validateBlockRouteConsistency(container, blockID, trips)

	// Temporal overlap within the block is BlockOverlappingValidator's job
	// (it also accounts for service-date overlap); this validator only
	// checks structural block membership.
}

// validateBlockServiceConsistency checks if all trips in block have same service
func (v *TripBlockIdValidator) validateBlockServiceConsistency(container *notice.NoticeContainer, blockID string, trips []*TripBlockInfo) {
	if len(trips) < 2 {
		return
	}

	firstServiceID := trips[0].ServiceID
	for _, trip := range trips[1:] {
		if trip.ServiceID != firstServiceID {
			container.AddNotice(notice.NewBlockServiceMismatchNotice(
				blockID,
				trips[0].TripID,
				firstServiceID,
				trip.TripID,
				trip.ServiceID,
				trip.RowNumber,
			))
		}
	}
}

// validateBlockRouteConsistency checks route patterns within block
func (v *TripBlockIdValidator) validateBlockRouteConsistency(container *notice.NoticeContainer, blockID string, trips []*TripBlockInfo) {
	routeCount := make(map[string]int)
	for _, trip := range trips {
		routeCount[trip.RouteID]++
	}

	// Info notice if block spans multiple routes (common but worth noting)
	if len(routeCount) > 1 {
		var routeIDs []string
		for routeID := range routeCount {
			routeIDs = append(routeIDs, routeID)
		}

		container.AddNotice(notice.NewBlockMultipleRoutesNotice(
			blockID,
			routeIDs,
			len(trips),
		))
	}

	// Warning if too many trips in single block (potential performance issue)
	if len(trips) > 20 {
		container.AddNotice(notice.NewBlockTooManyTripsNotice(
			blockID,
			len(trips),
		))
	}
}

