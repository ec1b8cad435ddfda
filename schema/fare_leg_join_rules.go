package schema

// FareLegJoinRule joins two consecutive legs into one for fare purposes, from fare_leg_join_rules.txt
type FareLegJoinRule struct {
	FromNetworkID string `csv:"from_network_id"`
	ToNetworkID   string `csv:"to_network_id"`
	FromStopID    string `csv:"from_stop_id"`
	ToStopID      string `csv:"to_stop_id"`
}
