package notice

// FareProductWithMultipleDefaultRiderCategoriesNotice is generated when more
// than one rider category is flagged as the default, either globally or for
// one fare product.
type FareProductWithMultipleDefaultRiderCategoriesNotice struct {
	*BaseNotice
}

func NewFareProductWithMultipleDefaultRiderCategoriesNotice(fareProductID string, riderCategory1 string, riderCategory2 string, rowNumber1 int, rowNumber2 int) *FareProductWithMultipleDefaultRiderCategoriesNotice {
	context := map[string]interface{}{
		"fareProductId":   fareProductID,
		"riderCategoryId": riderCategory1,
		"prevRiderCategoryId": riderCategory2,
		"csvRowNumber":    rowNumber1,
		"prevCsvRowNumber": rowNumber2,
	}
	return &FareProductWithMultipleDefaultRiderCategoriesNotice{
		BaseNotice: NewBaseNotice("fare_product_with_multiple_default_rider_categories", ERROR, context),
	}
}

// DuplicateGeographyIDNotice is generated when the same identifier is reused
// as a stop_id, a location_group_id, and/or a GeoJSON location_id.
type DuplicateGeographyIDNotice struct {
	*BaseNotice
}

func NewDuplicateGeographyIDNotice(geographyID string, firstKind string, secondKind string, rowNumber int) *DuplicateGeographyIDNotice {
	context := map[string]interface{}{
		"geographyId": geographyID,
		"firstKind":   firstKind,
		"secondKind":  secondKind,
		"csvRowNumber": rowNumber,
	}
	return &DuplicateGeographyIDNotice{
		BaseNotice: NewBaseNotice("duplicate_geography_id", ERROR, context),
	}
}

// ForbiddenGeographyIDNotice is generated when a stop_time row specifies more
// than one of stop_id / location_group_id / location_id.
type ForbiddenGeographyIDNotice struct {
	*BaseNotice
}

func NewForbiddenGeographyIDNotice(tripID string, rowNumber int) *ForbiddenGeographyIDNotice {
	context := map[string]interface{}{
		"filename":     "stop_times.txt",
		"tripId":       tripID,
		"csvRowNumber": rowNumber,
	}
	return &ForbiddenGeographyIDNotice{
		BaseNotice: NewBaseNotice("forbidden_geography_id", ERROR, context),
	}
}

// ForbiddenArrivalOrDepartureTimeNotice is generated when a stop_time row
// sets a pickup/drop-off booking window alongside arrival_time/departure_time.
type ForbiddenArrivalOrDepartureTimeNotice struct {
	*BaseNotice
}

func NewForbiddenArrivalOrDepartureTimeNotice(tripID string, fieldName string, rowNumber int) *ForbiddenArrivalOrDepartureTimeNotice {
	context := map[string]interface{}{
		"filename":     "stop_times.txt",
		"tripId":       tripID,
		"fieldName":    fieldName,
		"csvRowNumber": rowNumber,
	}
	return &ForbiddenArrivalOrDepartureTimeNotice{
		BaseNotice: NewBaseNotice("forbidden_arrival_or_departure_time", ERROR, context),
	}
}

// MissingPickupOrDropOffWindowNotice is generated when only one of
// start_pickup_drop_off_window / end_pickup_drop_off_window is set.
type MissingPickupOrDropOffWindowNotice struct {
	*BaseNotice
}

func NewMissingPickupOrDropOffWindowNotice(tripID string, missingField string, rowNumber int) *MissingPickupOrDropOffWindowNotice {
	context := map[string]interface{}{
		"filename":     "stop_times.txt",
		"tripId":       tripID,
		"fieldName":    missingField,
		"csvRowNumber": rowNumber,
	}
	return &MissingPickupOrDropOffWindowNotice{
		BaseNotice: NewBaseNotice("missing_pickup_or_drop_off_window", ERROR, context),
	}
}

// InvalidPickupDropOffWindowNotice is generated when
// start_pickup_drop_off_window >= end_pickup_drop_off_window.
type InvalidPickupDropOffWindowNotice struct {
	*BaseNotice
}

func NewInvalidPickupDropOffWindowNotice(tripID string, startWindow string, endWindow string, rowNumber int) *InvalidPickupDropOffWindowNotice {
	context := map[string]interface{}{
		"filename":                     "stop_times.txt",
		"tripId":                       tripID,
		"startPickupDropOffWindow":     startWindow,
		"endPickupDropOffWindow":       endWindow,
		"csvRowNumber":                 rowNumber,
	}
	return &InvalidPickupDropOffWindowNotice{
		BaseNotice: NewBaseNotice("invalid_pickup_drop_off_window", ERROR, context),
	}
}

// OverlappingZoneAndPickupDropOffWindowNotice is generated when two stop_time
// rows in the same trip share a location/location group (or overlapping
// GeoJSON locations) and their pickup/drop-off windows overlap in time.
type OverlappingZoneAndPickupDropOffWindowNotice struct {
	*BaseNotice
}

func NewOverlappingZoneAndPickupDropOffWindowNotice(tripID string, rowNumber1 int, rowNumber2 int) *OverlappingZoneAndPickupDropOffWindowNotice {
	context := map[string]interface{}{
		"filename":      "stop_times.txt",
		"tripId":        tripID,
		"csvRowNumber":  rowNumber1,
		"prevCsvRowNumber": rowNumber2,
	}
	return &OverlappingZoneAndPickupDropOffWindowNotice{
		BaseNotice: NewBaseNotice("overlapping_zone_and_pickup_drop_off_window", ERROR, context),
	}
}

// MissingStopTimesRecordNotice is generated when a trip has a single
// stop_times row whose both windows are set and pickup/drop-off type is
// "must phone" (2) on both ends, meaning the trip can never be boarded.
type MissingStopTimesRecordNotice struct {
	*BaseNotice
}

func NewMissingStopTimesRecordNotice(tripID string, rowNumber int) *MissingStopTimesRecordNotice {
	context := map[string]interface{}{
		"filename":     "stop_times.txt",
		"tripId":       tripID,
		"csvRowNumber": rowNumber,
	}
	return &MissingStopTimesRecordNotice{
		BaseNotice: NewBaseNotice("missing_stop_times_record", ERROR, context),
	}
}

// LocationWithUnexpectedStopTimeNotice is generated when a stop_time
// references a stop whose location_type means it cannot carry riders
// directly (station, entrance, generic node, boarding area).
type LocationWithUnexpectedStopTimeNotice struct {
	*BaseNotice
}

func NewLocationWithUnexpectedStopTimeNotice(stopID string, locationType int, rowNumber int) *LocationWithUnexpectedStopTimeNotice {
	context := map[string]interface{}{
		"filename":     "stop_times.txt",
		"stopId":       stopID,
		"locationType": locationType,
		"csvRowNumber": rowNumber,
	}
	return &LocationWithUnexpectedStopTimeNotice{
		BaseNotice: NewBaseNotice("location_with_unexpected_stop_time", ERROR, context),
	}
}

// TransferWithInvalidTripAndRouteNotice is generated when a transfer's
// from_trip_id/to_trip_id references a trip operated by a route different
// from the transfer's own from_route_id/to_route_id.
type TransferWithInvalidTripAndRouteNotice struct {
	*BaseNotice
}

func NewTransferWithInvalidTripAndRouteNotice(tripID string, routeID string, actualRouteID string, rowNumber int) *TransferWithInvalidTripAndRouteNotice {
	context := map[string]interface{}{
		"filename":      "transfers.txt",
		"tripId":        tripID,
		"routeId":       routeID,
		"actualRouteId": actualRouteID,
		"csvRowNumber":  rowNumber,
	}
	return &TransferWithInvalidTripAndRouteNotice{
		BaseNotice: NewBaseNotice("transfer_with_invalid_trip_and_route", ERROR, context),
	}
}

// TransferWithInvalidTripAndStopNotice is generated when a transfer's stop is
// not part of the referenced trip's stop list (stations are expanded to
// their child stops first).
type TransferWithInvalidTripAndStopNotice struct {
	*BaseNotice
}

func NewTransferWithInvalidTripAndStopNotice(tripID string, stopID string, rowNumber int) *TransferWithInvalidTripAndStopNotice {
	context := map[string]interface{}{
		"filename":     "transfers.txt",
		"tripId":       tripID,
		"stopId":       stopID,
		"csvRowNumber": rowNumber,
	}
	return &TransferWithInvalidTripAndStopNotice{
		BaseNotice: NewBaseNotice("transfer_with_invalid_trip_and_stop", ERROR, context),
	}
}

// TransferWithInvalidStopLocationTypeNotice is generated when an in-seat
// transfer references a station instead of a boardable stop.
type TransferWithInvalidStopLocationTypeNotice struct {
	*BaseNotice
}

func NewTransferWithInvalidStopLocationTypeNotice(stopID string, locationType int, rowNumber int) *TransferWithInvalidStopLocationTypeNotice {
	context := map[string]interface{}{
		"filename":     "transfers.txt",
		"stopId":       stopID,
		"locationType": locationType,
		"csvRowNumber": rowNumber,
	}
	return &TransferWithInvalidStopLocationTypeNotice{
		BaseNotice: NewBaseNotice("transfer_with_invalid_stop_location_type", ERROR, context),
	}
}

// TransferWithSuspiciousMidTripInSeatNotice is generated when an in-seat
// transfer's stop is not at the expected edge of its trip (last stop of the
// from-trip, first stop of the to-trip).
type TransferWithSuspiciousMidTripInSeatNotice struct {
	*BaseNotice
}

func NewTransferWithSuspiciousMidTripInSeatNotice(tripID string, stopID string, rowNumber int) *TransferWithSuspiciousMidTripInSeatNotice {
	context := map[string]interface{}{
		"filename":     "transfers.txt",
		"tripId":       tripID,
		"stopId":       stopID,
		"csvRowNumber": rowNumber,
	}
	return &TransferWithSuspiciousMidTripInSeatNotice{
		BaseNotice: NewBaseNotice("transfer_with_suspicious_mid_trip_in_seat", WARNING, context),
	}
}

// SameRouteAndAgencyURLNotice, SameStopAndAgencyURLNotice and
// SameStopAndRouteURLNotice are generated when two entities that should have
// distinct URLs share the exact same one (case-insensitive, trimmed).
type SameRouteAndAgencyURLNotice struct{ *BaseNotice }

func NewSameRouteAndAgencyURLNotice(routeID string, agencyID string, url string, rowNumber int) *SameRouteAndAgencyURLNotice {
	context := map[string]interface{}{
		"routeId":  routeID,
		"agencyId": agencyID,
		"url":      url,
		"csvRowNumber": rowNumber,
	}
	return &SameRouteAndAgencyURLNotice{BaseNotice: NewBaseNotice("same_route_and_agency_url", WARNING, context)}
}

type SameStopAndAgencyURLNotice struct{ *BaseNotice }

func NewSameStopAndAgencyURLNotice(stopID string, agencyID string, url string, rowNumber int) *SameStopAndAgencyURLNotice {
	context := map[string]interface{}{
		"stopId":   stopID,
		"agencyId": agencyID,
		"url":      url,
		"csvRowNumber": rowNumber,
	}
	return &SameStopAndAgencyURLNotice{BaseNotice: NewBaseNotice("same_stop_and_agency_url", WARNING, context)}
}

type SameStopAndRouteURLNotice struct{ *BaseNotice }

func NewSameStopAndRouteURLNotice(stopID string, routeID string, url string, rowNumber int) *SameStopAndRouteURLNotice {
	context := map[string]interface{}{
		"stopId":  stopID,
		"routeId": routeID,
		"url":     url,
		"csvRowNumber": rowNumber,
	}
	return &SameStopAndRouteURLNotice{BaseNotice: NewBaseNotice("same_stop_and_route_url", WARNING, context)}
}

// URISyntaxErrorNotice is generated for a non-empty URL field that fails to
// parse as an absolute URL. When the value looks like "www.foo" or
// "foo.tld", a safe fix suggests prefixing it with "https://".
type URISyntaxErrorNotice struct{ *BaseNotice }

func NewURISyntaxErrorNotice(filename string, fieldName string, fieldValue string, rowNumber int, suggestedValue string) *URISyntaxErrorNotice {
	context := map[string]interface{}{
		"filename":     filename,
		"fieldName":    fieldName,
		"fieldValue":   fieldValue,
		"csvRowNumber": rowNumber,
	}
	n := &URISyntaxErrorNotice{BaseNotice: NewBaseNotice("u_r_i_syntax_error", ERROR, context)}
	if suggestedValue != "" {
		n.BaseNotice = n.BaseNotice.WithFix(&Fix{Field: fieldName, NewValue: suggestedValue, Safety: FixSafe})
	}
	return n
}

// FeedInfoLangAndAgencyLangMismatchNotice is generated when feed_info.txt's
// feed_lang disagrees with an agency's agency_lang (feed_lang="mul" is exempt).
type FeedInfoLangAndAgencyLangMismatchNotice struct{ *BaseNotice }

func NewFeedInfoLangAndAgencyLangMismatchNotice(agencyID string, feedLang string, agencyLang string, rowNumber int) *FeedInfoLangAndAgencyLangMismatchNotice {
	context := map[string]interface{}{
		"agencyId":   agencyID,
		"feedLang":   feedLang,
		"agencyLang": agencyLang,
		"csvRowNumber": rowNumber,
	}
	return &FeedInfoLangAndAgencyLangMismatchNotice{BaseNotice: NewBaseNotice("feed_info_lang_and_agency_lang_mismatch", WARNING, context)}
}

// UnusedAgencyNotice is generated when a multi-agency feed has an agency no
// route references.
type UnusedAgencyNotice struct{ *BaseNotice }

func NewUnusedAgencyNotice(agencyID string, rowNumber int) *UnusedAgencyNotice {
	context := map[string]interface{}{
		"filename":     "agency.txt",
		"agencyId":     agencyID,
		"csvRowNumber": rowNumber,
	}
	return &UnusedAgencyNotice{BaseNotice: NewBaseNotice("unused_agency", WARNING, context)}
}

// InvalidCurrencyAmountNotice is generated when a fare amount's number of
// decimal places doesn't match its currency's minor unit (e.g. "1.5" for JPY,
// which has no minor unit, or "3.1" for USD, which has two digits).
type InvalidCurrencyAmountNotice struct{ *BaseNotice }

func NewInvalidCurrencyAmountNotice(filename string, fieldName string, amount string, currencyCode string, rowNumber int) *InvalidCurrencyAmountNotice {
	context := map[string]interface{}{
		"filename":     filename,
		"fieldName":    fieldName,
		"amount":       amount,
		"currencyCode": currencyCode,
		"csvRowNumber": rowNumber,
	}
	return &InvalidCurrencyAmountNotice{BaseNotice: NewBaseNotice("invalid_currency_amount", ERROR, context)}
}

// UnusedStopNotice is generated (thorough mode only) when a stop is never
// referenced by any stop_time, even after propagating usage to parents.
type UnusedStopNotice struct{ *BaseNotice }

func NewUnusedStopNotice(stopID string, rowNumber int) *UnusedStopNotice {
	context := map[string]interface{}{
		"filename":     "stops.txt",
		"stopId":       stopID,
		"csvRowNumber": rowNumber,
	}
	return &UnusedStopNotice{BaseNotice: NewBaseNotice("unused_stop", WARNING, context)}
}
