package schema

// Timeframe represents a named time span used by fare leg rules, from timeframes.txt
type Timeframe struct {
	TimeframeGroupID string `csv:"timeframe_group_id"`
	StartTime        string `csv:"start_time"`
	EndTime          string `csv:"end_time"`
	ServiceID        string `csv:"service_id"`
}
