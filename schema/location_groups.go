package schema

// LocationGroup represents a named collection of stops/locations sharing a flex pickup/drop-off policy,
// from location_groups.txt
type LocationGroup struct {
	LocationGroupID   string `csv:"location_group_id"`
	LocationGroupName string `csv:"location_group_name"`
}

// LocationGroupStop maps a stop into a location group, from location_group_stops.txt
type LocationGroupStop struct {
	LocationGroupID string `csv:"location_group_id"`
	StopID          string `csv:"stop_id"`
}
