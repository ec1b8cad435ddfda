package types

import "strconv"

// Enum fields in GTFS are small closed integer sets. Each type here maps
// every specification value 1:1 to its numeric code; a cell that is not an
// integer is a decode error. An integer outside the set does not fail the
// row, and how it decodes depends on the type: LocationType decodes it to
// LocationTypeOther, RouteType keeps the code and sets Unknown, and
// ExceptionType decodes it to ExceptionOther. The other types decode it to
// one of their specification values (see each UnmarshalCSVField), so after
// decoding it cannot be told apart from that value.

// LocationType classifies a row of stops.txt.
type LocationType int

const (
	LocationStop          LocationType = 0
	LocationStation       LocationType = 1
	LocationEntrance      LocationType = 2
	LocationGenericNode   LocationType = 3
	LocationBoardingArea  LocationType = 4
	LocationTypeOther     LocationType = -1
)

// UnmarshalCSVField decodes a raw CSV cell into a LocationType.
func (l *LocationType) UnmarshalCSVField(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	switch n {
	case 0, 1, 2, 3, 4:
		*l = LocationType(n)
	default:
		*l = LocationTypeOther
	}
	return nil
}

// RouteType is tiered: classic GTFS values, the extended hierarchy
// (100-1702), or an unrecognized code preserved verbatim.
type RouteType struct {
	Code    int
	Unknown bool
}

const (
	RouteTram       = 0
	RouteSubway     = 1
	RouteRail       = 2
	RouteBus        = 3
	RouteFerry      = 4
	RouteCableTram  = 5
	RouteAerialLift = 6
	RouteFunicular  = 7
	RouteTrolleybus = 11
	RouteMonorail   = 12
)

// UnmarshalCSVField decodes a raw CSV cell into a RouteType.
func (r *RouteType) UnmarshalCSVField(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	r.Code = n
	switch {
	case n == 0, n == 1, n == 2, n == 3, n == 4, n == 5, n == 6, n == 7, n == 11, n == 12:
		r.Unknown = false
	case n >= 100 && n <= 1702:
		r.Unknown = false
	default:
		r.Unknown = true
	}
	return nil
}

// IsClassic reports whether the code is one of the pre-extended GTFS values.
func (r RouteType) IsClassic() bool {
	switch r.Code {
	case RouteTram, RouteSubway, RouteRail, RouteBus, RouteFerry, RouteCableTram,
		RouteAerialLift, RouteFunicular, RouteTrolleybus, RouteMonorail:
		return true
	}
	return false
}

// WheelchairBoarding describes boarding accessibility (stops.txt, trips.txt).
type WheelchairBoarding int

const (
	WheelchairUnknown    WheelchairBoarding = 0
	WheelchairAccessible WheelchairBoarding = 1
	WheelchairNotAccessible WheelchairBoarding = 2
)

func (w *WheelchairBoarding) UnmarshalCSVField(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	switch n {
	case 0, 1, 2:
		*w = WheelchairBoarding(n)
	default:
		*w = WheelchairUnknown
	}
	return nil
}

// BikesAllowed describes bicycle accommodation on a trip.
type BikesAllowed int

const (
	BikesUnknown     BikesAllowed = 0
	BikesAllowedYes  BikesAllowed = 1
	BikesNotAllowed  BikesAllowed = 2
)

func (b *BikesAllowed) UnmarshalCSVField(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	switch n {
	case 0, 1, 2:
		*b = BikesAllowed(n)
	default:
		*b = BikesUnknown
	}
	return nil
}

// PickupDropOffType describes boarding/alighting rules for a stop_time.
type PickupDropOffType int

const (
	PickupRegular       PickupDropOffType = 0
	PickupNone          PickupDropOffType = 1
	PickupPhoneAgency   PickupDropOffType = 2
	PickupCoordinate    PickupDropOffType = 3
)

func (p *PickupDropOffType) UnmarshalCSVField(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	switch n {
	case 0, 1, 2, 3:
		*p = PickupDropOffType(n)
	default:
		*p = PickupRegular
	}
	return nil
}

// ExceptionType describes a calendar_dates.txt override. Default is Other,
// matching the teacher/original's decode behavior for out-of-range values.
type ExceptionType int

const (
	ExceptionAdded   ExceptionType = 1
	ExceptionRemoved ExceptionType = 2
	ExceptionOther   ExceptionType = 0
)

func (e *ExceptionType) UnmarshalCSVField(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	switch n {
	case 1, 2:
		*e = ExceptionType(n)
	default:
		*e = ExceptionOther
	}
	return nil
}

// TransferType describes a transfers.txt row.
type TransferType int

const (
	TransferRecommended  TransferType = 0
	TransferTimed        TransferType = 1
	TransferMinimumTime  TransferType = 2
	TransferNotPossible  TransferType = 3
	TransferInSeat       TransferType = 4
	TransferInSeatForbidden TransferType = 5
)

func (t *TransferType) UnmarshalCSVField(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	switch n {
	case 0, 1, 2, 3, 4, 5:
		*t = TransferType(n)
	default:
		*t = TransferRecommended
	}
	return nil
}

// PathwayMode describes a pathways.txt connection.
type PathwayMode int

const (
	PathwayWalkway      PathwayMode = 1
	PathwayStairs       PathwayMode = 2
	PathwayMovingWalkway PathwayMode = 3
	PathwayEscalator    PathwayMode = 4
	PathwayElevator     PathwayMode = 5
	PathwayFareGate     PathwayMode = 6
	PathwayExitGate     PathwayMode = 7
)

func (p *PathwayMode) UnmarshalCSVField(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	switch n {
	case 1, 2, 3, 4, 5, 6, 7:
		*p = PathwayMode(n)
	default:
		*p = PathwayWalkway
	}
	return nil
}

// IsBidirectional describes pathway direction.
type IsBidirectional int

const (
	PathwayUnidirectional IsBidirectional = 0
	PathwayBidirectional  IsBidirectional = 1
)

func (b *IsBidirectional) UnmarshalCSVField(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	if n == 1 {
		*b = PathwayBidirectional
	} else {
		*b = PathwayUnidirectional
	}
	return nil
}

// FareMediaType describes a fare_media.txt row.
type FareMediaType int

const (
	FareMediaNone       FareMediaType = 0
	FareMediaPaper      FareMediaType = 1
	FareMediaCard       FareMediaType = 2
	FareMediaContactless FareMediaType = 3
	FareMediaApp        FareMediaType = 4
)

func (f *FareMediaType) UnmarshalCSVField(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	switch n {
	case 0, 1, 2, 3, 4:
		*f = FareMediaType(n)
	default:
		*f = FareMediaNone
	}
	return nil
}

// FareTransferType describes a fare_transfer_rules.txt row.
type FareTransferType int

const (
	FareTransferAPlusLeg FareTransferType = 0
	FareTransferAPlusAB  FareTransferType = 1
	FareTransferAB       FareTransferType = 2
)

func (f *FareTransferType) UnmarshalCSVField(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	switch n {
	case 0, 1, 2:
		*f = FareTransferType(n)
	default:
		*f = FareTransferAPlusLeg
	}
	return nil
}

// Timepoint describes stop_times.txt timing precision. Default is Exact (1)
// per GTFS, unlike most other enums whose default is zero.
type Timepoint int

const (
	TimepointApproximate Timepoint = 0
	TimepointExact       Timepoint = 1
)

func (t *Timepoint) UnmarshalCSVField(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	if n == 0 {
		*t = TimepointApproximate
	} else {
		*t = TimepointExact
	}
	return nil
}

// DirectionID describes trips.txt travel direction, an unordered binary flag.
type DirectionID int

const (
	DirectionOutbound DirectionID = 0
	DirectionInbound  DirectionID = 1
)

func (d *DirectionID) UnmarshalCSVField(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	if n == 1 {
		*d = DirectionInbound
	} else {
		*d = DirectionOutbound
	}
	return nil
}
