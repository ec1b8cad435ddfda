package schema

// Attribution represents a data attribution record from attributions.txt
type Attribution struct {
	AttributionID    string `csv:"attribution_id"`
	AgencyID         string `csv:"agency_id"`
	RouteID          string `csv:"route_id"`
	TripID           string `csv:"trip_id"`
	OrganizationName string `csv:"organization_name"`
	IsProducer       int    `csv:"is_producer"`
	IsOperator       int    `csv:"is_operator"`
	IsAuthority      int    `csv:"is_authority"`
	AttributionURL   string `csv:"attribution_url"`
	AttributionEmail string `csv:"attribution_email"`
	AttributionPhone string `csv:"attribution_phone"`
}
