package schema

// Area represents a named group of stops from areas.txt
type Area struct {
	AreaID   string `csv:"area_id"`
	AreaName string `csv:"area_name"`
}

// StopArea maps a stop to an area from stop_areas.txt
type StopArea struct {
	AreaID string `csv:"area_id"`
	StopID string `csv:"stop_id"`
}
