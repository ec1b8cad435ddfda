package notice

// StopWithoutStopTimeNotice is generated when a boardable stop (location_type
// 0) is never referenced by stop_times.txt, directly or through a location
// group it belongs to.
type StopWithoutStopTimeNotice struct {
	*BaseNotice
}

func NewStopWithoutStopTimeNotice(stopID string, rowNumber int) *StopWithoutStopTimeNotice {
	context := map[string]interface{}{
		"filename":     "stops.txt",
		"stopId":       stopID,
		"csvRowNumber": rowNumber,
	}
	return &StopWithoutStopTimeNotice{
		BaseNotice: NewBaseNotice("stop_without_stop_time", WARNING, context),
	}
}

// StopTooFarFromShapeNotice is generated when a stop's closest point on the
// shape its trip follows is farther than the matching threshold.
type StopTooFarFromShapeNotice struct {
	*BaseNotice
}

func NewStopTooFarFromShapeNotice(tripID, stopID string, stopSequence int, shapeID string, geoDistanceToShape float64, rowNumber int) *StopTooFarFromShapeNotice {
	context := map[string]interface{}{
		"tripId":             tripID,
		"stopId":             stopID,
		"stopSequence":       stopSequence,
		"shapeId":            shapeID,
		"geoDistanceToShape": geoDistanceToShape,
		"csvRowNumber":       rowNumber,
	}
	return &StopTooFarFromShapeNotice{
		BaseNotice: NewBaseNotice("stop_too_far_from_shape", WARNING, context),
	}
}

// StopTooFarFromShapeUsingUserDistanceNotice is the shape_dist_traveled
// variant of StopTooFarFromShapeNotice: both the shape and the stop_time
// supply shape_dist_traveled, and the user-distance interpolated position
// disagrees with the geographic match by more than the threshold.
type StopTooFarFromShapeUsingUserDistanceNotice struct {
	*BaseNotice
}

func NewStopTooFarFromShapeUsingUserDistanceNotice(tripID, stopID string, stopSequence int, shapeID string, geoDistanceToShape float64, rowNumber int) *StopTooFarFromShapeUsingUserDistanceNotice {
	context := map[string]interface{}{
		"tripId":             tripID,
		"stopId":             stopID,
		"stopSequence":       stopSequence,
		"shapeId":            shapeID,
		"geoDistanceToShape": geoDistanceToShape,
		"csvRowNumber":       rowNumber,
	}
	return &StopTooFarFromShapeUsingUserDistanceNotice{
		BaseNotice: NewBaseNotice("stop_too_far_from_shape_using_user_distance", WARNING, context),
	}
}

// StopHasTooManyMatchesForShapeNotice is generated when a stop has more than
// one shape segment within the matching threshold, making its place along
// the shape ambiguous.
type StopHasTooManyMatchesForShapeNotice struct {
	*BaseNotice
}

func NewStopHasTooManyMatchesForShapeNotice(tripID, stopID string, stopSequence int, shapeID string, matchCount int, rowNumber int) *StopHasTooManyMatchesForShapeNotice {
	context := map[string]interface{}{
		"tripId":       tripID,
		"stopId":       stopID,
		"stopSequence": stopSequence,
		"shapeId":      shapeID,
		"matchCount":   matchCount,
		"csvRowNumber": rowNumber,
	}
	return &StopHasTooManyMatchesForShapeNotice{
		BaseNotice: NewBaseNotice("stop_has_too_many_matches_for_shape", WARNING, context),
	}
}

// StopsMatchShapeOutOfOrderNotice is generated when a stop cannot be matched
// to any shape segment that keeps the running cumulative distance
// non-decreasing relative to the stop before it.
type StopsMatchShapeOutOfOrderNotice struct {
	*BaseNotice
}

func NewStopsMatchShapeOutOfOrderNotice(tripID, stopID string, stopSequence int, shapeID string, prevStopID string, prevStopSequence int, rowNumber int) *StopsMatchShapeOutOfOrderNotice {
	context := map[string]interface{}{
		"tripId":           tripID,
		"stopId":           stopID,
		"stopSequence":     stopSequence,
		"shapeId":          shapeID,
		"prevStopId":       prevStopID,
		"prevStopSequence": prevStopSequence,
		"csvRowNumber":     rowNumber,
	}
	return &StopsMatchShapeOutOfOrderNotice{
		BaseNotice: NewBaseNotice("stops_match_shape_out_of_order", WARNING, context),
	}
}

// TripDistanceExceedsShapeDistanceNotice is generated when a trip's last
// stop_time shape_dist_traveled exceeds the shape's own maximum
// shape_dist_traveled by more than the matching threshold (11.1m).
type TripDistanceExceedsShapeDistanceNotice struct {
	*BaseNotice
}

func NewTripDistanceExceedsShapeDistanceNotice(tripID, shapeID string, stopTimeDistance, shapeDistance float64, rowNumber int) *TripDistanceExceedsShapeDistanceNotice {
	context := map[string]interface{}{
		"tripId":           tripID,
		"shapeId":          shapeID,
		"stopTimeDistance": stopTimeDistance,
		"shapeDistance":    shapeDistance,
		"csvRowNumber":     rowNumber,
	}
	return &TripDistanceExceedsShapeDistanceNotice{
		BaseNotice: NewBaseNotice("trip_distance_exceeds_shape_distance", ERROR, context),
	}
}

// TripDistanceExceedsShapeDistanceBelowThresholdNotice is the same
// comparison as TripDistanceExceedsShapeDistanceNotice but for an overrun
// small enough (under the 11.1m threshold) to warrant only a warning.
type TripDistanceExceedsShapeDistanceBelowThresholdNotice struct {
	*BaseNotice
}

func NewTripDistanceExceedsShapeDistanceBelowThresholdNotice(tripID, shapeID string, stopTimeDistance, shapeDistance float64, rowNumber int) *TripDistanceExceedsShapeDistanceBelowThresholdNotice {
	context := map[string]interface{}{
		"tripId":           tripID,
		"shapeId":          shapeID,
		"stopTimeDistance": stopTimeDistance,
		"shapeDistance":    shapeDistance,
		"csvRowNumber":     rowNumber,
	}
	return &TripDistanceExceedsShapeDistanceBelowThresholdNotice{
		BaseNotice: NewBaseNotice("trip_distance_exceeds_shape_distance_below_threshold", WARNING, context),
	}
}
