package schema

// FareLegRule represents a fare computation rule for a single leg from fare_leg_rules.txt
type FareLegRule struct {
	LegGroupID      string `csv:"leg_group_id"`
	NetworkID       string `csv:"network_id"`
	FromAreaID      string `csv:"from_area_id"`
	ToAreaID        string `csv:"to_area_id"`
	FromTimeframeID string `csv:"from_timeframe_id"`
	ToTimeframeID   string `csv:"to_timeframe_id"`
	FareProductID   string `csv:"fare_product_id"`
}
