package schema

// Network represents a named grouping of routes used by fare leg rules, from networks.txt
type Network struct {
	NetworkID   string `csv:"network_id"`
	NetworkName string `csv:"network_name"`
}

// RouteNetwork maps a route into a network, from route_networks.txt
type RouteNetwork struct {
	NetworkID string `csv:"network_id"`
	RouteID   string `csv:"route_id"`
}
