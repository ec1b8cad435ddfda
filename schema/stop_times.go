package schema

import "github.com/transitdata/gtfsvalidate/types"

// StopTime represents a stop time from stop_times.txt
type StopTime struct {
	TripID                   string                   `csv:"trip_id"`
	ArrivalTime              string                   `csv:"arrival_time"`
	DepartureTime            string                   `csv:"departure_time"`
	StopID                   string                   `csv:"stop_id"`
	LocationGroupID          string                   `csv:"location_group_id"`
	LocationID               string                   `csv:"location_id"`
	StopSequence             int                      `csv:"stop_sequence"`
	StopHeadsign             string                   `csv:"stop_headsign"`
	StartPickupDropOffWindow string                   `csv:"start_pickup_drop_off_window"`
	EndPickupDropOffWindow   string                   `csv:"end_pickup_drop_off_window"`
	PickupType               types.PickupDropOffType  `csv:"pickup_type"`
	DropOffType              types.PickupDropOffType  `csv:"drop_off_type"`
	ShapeDistTraveled        *float64                 `csv:"shape_dist_traveled"`
	ContinuousPickup         string                   `csv:"continuous_pickup"`
	ContinuousDropOff        string                   `csv:"continuous_drop_off"`
	Timepoint                types.Timepoint          `csv:"timepoint"`
}
