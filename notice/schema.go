package notice

import (
	"sort"
	"sync"
)

// SchemaEntry describes one notice code's shape: the severity it is always
// constructed with, and the set of context field names a report consumer can
// expect to find in Context(). Unlike notice text, severity is fixed per
// code (codes don't change ERROR/WARNING/INFO based on the data that
// triggered them), so a single entry per code is exact, not a summary.
type SchemaEntry struct {
	Severity      SeverityLevel
	ContextFields []string
}

var (
	schemaMu      sync.Mutex
	schemaByCode  = make(map[string]SchemaEntry)
)

// registerSchema records a code's severity and context field names the
// first time that code is constructed. It is called from NewBaseNotice, so
// every notice type feeds the catalog through the same path the rules
// already use to build notices - there is no separate, hand-maintained
// description of the schema to fall out of sync with the rules.
func registerSchema(code string, severity SeverityLevel, context map[string]interface{}) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	if _, exists := schemaByCode[code]; exists {
		return
	}
	fields := make([]string, 0, len(context))
	for field := range context {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	schemaByCode[code] = SchemaEntry{Severity: severity, ContextFields: fields}
}

// Schema returns the severity and context fields for every notice code any
// rule in this module can emit. init constructs one instance of every
// notice type below (with placeholder field values, never surfaced to a
// caller) purely to seed this catalog, so Schema() is complete even before
// a single file has been validated.
func Schema() map[string]SchemaEntry {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	out := make(map[string]SchemaEntry, len(schemaByCode))
	for code, entry := range schemaByCode {
		fields := make([]string, len(entry.ContextFields))
		copy(fields, entry.ContextFields)
		out[code] = SchemaEntry{Severity: entry.Severity, ContextFields: fields}
	}
	return out
}

func init() {
		NewAgencyMixedRouteTypesNotice("", 0, nil)
		NewAllCapsHeadsignNotice("", 0, "", 0)
		NewAllStopsNoDropOffNotice("")
		NewAllStopsNoPickupNotice("")
		NewAttributionAllRolesNotice("", "", 0)
		NewAttributionRoleNameMismatchNotice("", "", "", 0)
		NewAttributionWithoutRoleNotice("", "", 0)
		NewBikeWheelchairAccessibilityMismatchNotice("", "", 0, 0, 0)
		NewBlockMultipleRoutesNotice("", nil, 0)
		NewBlockServiceMismatchNotice("", "", "", "", "", 0)
		NewBlockTooManyTripsNotice("", 0)
		NewBlockTripsOverlapNotice("", "", "", "", "", "", "", "", "", "", 0, 0)
		NewCalendarEndBeforeStartNotice("", "", "", 0)
		NewCalendarNoDaysSelectedNotice("", 0)
		NewChildStationTooFarFromParentNotice("", "", 0, 0)
		NewCircularStationReferenceNotice("", 0)
		NewCloseStopsNotPossibleTransferNotice("", "", 0, 0)
		NewConflictingAttributionScopeNotice("", 0)
		NewConflictingCalendarExceptionNotice("", "", 0, 0)
		NewConflictingFareRuleFieldsNotice("", 0)
		NewConsecutiveDuplicateStopsNotice("", "", 0, 0, 0)
		NewCrossTripFrequencyOverlapNotice("", "", "", "", "", "", "", "", 0)
		NewDarkTextOnDarkBackgroundNotice("", "", "", 0)
		NewDecreasingOrEqualShapeDistanceNotice("", 0, 0, 0, 0, 0, 0)
		NewDecreasingOrEqualStopTimeDistanceNotice("", "", 0, 0, 0, 0, 0, 0)
		NewDecreasingShapeDistanceNotice("", 0, 0, 0, 0)
		NewDeprecatedRouteTypeNotice("", 0, 0, 0)
		NewDuplicateAttributionScopeNotice("", "", "", 0, 0)
		NewDuplicateCalendarDateNotice("", "", 0, 0)
		NewDuplicateCalendarExceptionNotice("", "", 0, 0)
		NewDuplicateCompositeKeyNotice("", "", "", 0, 0)
		NewDuplicateGeographyIDNotice("", "", "", 0)
		NewDuplicateHeaderNotice("", "", nil)
		NewDuplicateKeyNotice("", "", nil, 0, 0)
		NewDuplicateLevelIndexNotice("", 0, 0, 0)
		NewDuplicatePathwayNotice("", "", "", 0, 0)
		NewDuplicateRouteLongNameNotice("", "", "", "", 0, 0)
		NewDuplicateRouteNameCombinationNotice("", "", "", "", "", 0, 0)
		NewDuplicateRouteShortNameNotice("", "", "", "", 0, 0)
		NewDuplicateShapePointNotice("", 0, 0, 0)
		NewDuplicateShapeSequenceNotice("", 0, 0, 0)
		NewDuplicateStopInTripNotice("", "", 0, 0)
		NewDuplicateStopSequenceNotice("", 0, "", 0, 0)
		NewDuplicateTransferNotice("", "", 0, 0)
		NewDuplicatedColumnNotice("", "", 0, 0)
		NewEmptyColumnNameNotice("", 0)
		NewEmptyFareRuleNotice("", 0)
		NewEmptyFileNotice("")
		NewEqualShapeDistanceNotice("", 0, 0, 0, 0)
		NewExcessivePricePrecisionNotice("", "", 0, 0)
		NewExcessivePunctuationHeadsignNotice("", 0, "", 0, 0)
		NewExcessiveRoutePatternVariationsNotice("", 0, 0, 0)
		NewExcessiveServiceVarietyNotice("", 0)
		NewExcessiveTravelSpeedNotice("", "", "", 0, 0, 0, 0, 0, 0, 0, 0, 0)
		NewExcessiveWhitespaceNotice("", "", "", 0)
		NewExpiredFeedNotice("", 0)
		NewExpiredServiceNotice("", "", 0)
		NewFareProductWithMultipleDefaultRiderCategoriesNotice("", "", "", 0, 0)
		NewFeedExpirationDate30DaysNotice(0, "", "", "")
		NewFeedExpirationDate7DaysNotice(0, "", "", "")
		NewFeedExpiredNotice("", "", 0)
		NewFeedExpiresWithin30DaysNotice("", "", 0)
		NewFeedExpiresWithin7DaysNotice("", "", 0)
		NewFeedInfoEndDateBeforeStartDateNotice("", "", 0)
		NewFeedInfoEndDateMissingNotice(0)
		NewFeedInfoLangAndAgencyLangMismatchNotice("", "", "", 0)
		NewFirstStopNoPickupNotice("", "", 0)
		NewForbiddenArrivalOrDepartureTimeNotice("", "", 0)
		NewForbiddenGeographyIDNotice("", 0)
		NewForeignKeyViolationNotice("", "", "", 0, "", "")
		NewFragmentedNetworkNotice(0, 0, 0)
		NewFrequencyDurationShorterThanHeadwayNotice("", 0, 0, 0)
		NewFrequentHeadsignChangesNotice("", 0)
		NewFutureFeedStartDateNotice("", 0)
		NewFutureServiceNotice("", "", 0)
		NewGenericStopNameNotice("", "", 0)
		NewGeospatialSummaryNotice(0, 0, 0)
		NewHeadsignChangeWithinTripNotice("", 0, 0, "", "", 0)
		NewHighRouteTypeDiversityNotice("", 0, 0)
		NewHighStopDensityAreaNotice(0, 0, 0, 0)
		NewInactiveServiceCurrentMonthNotice("")
		NewIncompleteShapeDistanceNotice("", 0, 0, 0)
		NewInconsistentAgencyLangNotice("", "", "", 0)
		NewInconsistentAgencyTimezoneNotice("", "", "", 0)
		NewInconsistentBidirectionalPathwayNotice("", "", 0, 0)
		NewInconsistentBidirectionalTransferNotice("", "", 0, 0, 0)
		NewInconsistentShapeDistanceNotice("", 0, 0)
		NewInconsistentStopTimeShapeDistanceNotice("", 0, 0)
		NewInsufficientCoordinatePrecisionNotice("", "", "", 0, 0)
		NewInsufficientServiceNext30DaysNotice(0, 0, 0, "", "")
		NewInsufficientServiceNext7DaysNotice(0, 0, "", "")
		NewInsufficientShapePointsNotice("", 0)
		NewInsufficientStopTimesNotice("", 0)
		NewInvalidAgencyReferenceNotice("", "", 0)
		NewInvalidBidirectionalNotice("", 0, 0)
		NewInvalidBikesAllowedNotice("", 0, 0)
		NewInvalidBikesAllowedValueNotice("", 0, 0)
		NewInvalidColorNotice("", "", "", 0)
		NewInvalidCoordinateNotice("", "", "", 0, "")
		NewInvalidCurrencyAmountNotice("", "", "", "", 0)
		NewInvalidCurrencyCodeNotice("", "", "", 0, "")
		NewInvalidDateFormatNotice("", "", "", 0)
		NewInvalidDayValueNotice("", "", "", 0)
		NewInvalidDirectionIdNotice("", 0, 0)
		NewInvalidEmailNotice("", "", "", 0)
		NewInvalidExactTimesNotice("", 0, 0)
		NewInvalidExceptionTypeNotice("", "", 0, 0)
		NewInvalidFarePriceNotice("", "", 0, "")
		NewInvalidFieldFormatNotice("", "", "", 0, "")
		NewInvalidFrequencyTimeRangeNotice("", "", "", 0)
		NewInvalidHeadwayNotice("", 0, 0)
		NewInvalidInputNotice("", "")
		NewInvalidLanguageCodeNotice("", "", "", 0)
		NewInvalidLatitudeNotice("", 0, 0)
		NewInvalidLocationTypeNotice("", 0, 0)
		NewInvalidLongitudeNotice("", 0, 0)
		NewInvalidMinWidthNotice("", 0, 0)
		NewInvalidParentStationReferenceNotice("", "", 0)
		NewInvalidParentStationTypeNotice("", "", 0, 0)
		NewInvalidPathwayLengthNotice("", 0, 0)
		NewInvalidPathwayModeNotice("", 0, 0)
		NewInvalidPaymentMethodNotice("", 0, 0)
		NewInvalidPickupDropOffWindowNotice("", "", "", 0)
		NewInvalidRouteTypeNotice("", "", 0, "")
		NewInvalidRowNotice("", 0, "")
		NewInvalidServiceDateRangeNotice("", "", "", 0)
		NewInvalidStairCountNotice("", 0, 0)
		NewInvalidTimeFormatNotice("", "", "", 0)
		NewInvalidTimepointNotice("", "", 0, 0)
		NewInvalidTimezoneNotice("", "", "", 0)
		NewInvalidTransferDurationNotice("", 0, 0)
		NewInvalidTransferTypeNotice("", "", 0, 0)
		NewInvalidTransfersNotice("", 0, 0)
		NewInvalidTraversalTimeNotice("", 0, 0)
		NewInvalidURLNotice("", "", "", 0)
		NewInvalidWheelchairAccessibleNotice("", 0, 0)
		NewInvalidWheelchairBoardingNotice("", 0, 0)
		NewIrregularHeadwayNotice("", "", 0, 0, 0)
		NewIsolatedStopNotice("", 0)
		NewLargeShapeDistanceJumpNotice("", 0, 0, 0, 0, 0)
		NewLastStopNoDropOffNotice("", "", 0)
		NewLeadingWhitespaceNotice("", "", "", 0)
		NewLightTextOnLightBackgroundNotice("", "", "", 0)
		NewLimitedServiceVarietyNotice("", 0, 0)
		NewLocationWithUnexpectedStopTimeNotice("", 0, 0)
		NewLongDistanceTransferNotice("", "", 0, "", 0)
		NewLongServiceSpanNotice("", "", 0, 0)
		NewLongTripPatternNotice("", 0, 0)
		NewLongZoneIDNotice("", 0, 0)
		NewLoopRouteNotice("", "", 0, 0)
		NewLowFrequencyServiceNotice("", 0)
		NewLowNetworkConnectivityNotice(0, 0, 0)
		NewLowRouteUsageNotice("", 0, 0)
		NewLowServiceUsageNotice("", 0, 0)
		NewLowStopClusteringNotice(0, 0)
		NewLowTimepointCoverageNotice("", 0, 0, 0)
		NewLowTransferOpportunityNotice(0, 0, 0)
		NewLowTripVolumeNext7DaysNotice(0, 0, 0, "", "")
		NewMajorTransferPointNotice("", 0, 0, 0)
		NewMalformedJSONNotice("", "")
		NewMissingAgencyIdNotice("", 0)
		NewMissingArrivalTimeNotice("", "", 0, 0)
		NewMissingAttributionContactNotice("", 0)
		NewMissingAttributionRoleNotice("", 0)
		NewMissingBikeAllowanceNotice("", "", 0)
		NewMissingCalendarAndCalendarDateFilesNotice()
		NewMissingCoordinatesNotice("", 0, 0)
		NewMissingDepartureTimeNotice("", "", 0, 0)
		NewMissingFareAttributesNotice()
		NewMissingFeedInfoNotice()
		NewMissingLevelsNotice()
		NewMissingMinTransferTimeNotice("", "", 0)
		NewMissingParentStationNotice("", 0, 0)
		NewMissingPickupOrDropOffWindowNotice("", "", 0)
		NewMissingRecommendedFieldNotice("", "", 0)
		NewMissingRequiredColumnNotice("", "")
		NewMissingRequiredFieldNotice("", "", 0)
		NewMissingRequiredFileNotice("")
		NewMissingRequiredStopNameNotice("", 0, 0)
		NewMissingRouteAgencyIdNotice("", 0)
		NewMissingRouteNameNotice("", 0)
		NewMissingStopTimesRecordNotice("", 0)
		NewMissingTripFirstTimeNotice("", "", 0)
		NewMissingTripLastTimeNotice("", "", 0)
		NewMostlyCalendarDatesServicesNotice(0, 0)
		NewMultipleAttributionScopesNotice("", 0)
		NewMultipleFeedInfoEntriesNotice(0)
		NewMultipleRecordsInSingleRecordFileNotice("", 0)
		NewNegativeMinTransferTimeNotice("", "", 0, 0)
		NewNegativeShapeDistanceNotice("", 0, 0)
		NewNegativeShapeSequenceNotice("", 0, 0)
		NewNegativeStopSequenceNotice("", 0, 0)
		NewNetworkHubIdentifiedNotice("", 0, 0, 0)
		NewNetworkTopologySummaryNotice(0, 0, 0, 0, 0, 0, 0, 0)
		NewNoServiceDateFoundNotice()
		NewNoServiceDefinedNotice()
		NewNoServiceNext7DaysNotice("", "")
		NewNoTripsNext7DaysNotice("", "", 0)
		NewNonIncreasingShapeSequenceNotice("", 0, 0, 0)
		NewNonIncreasingStopSequenceNotice("", 0, 0, 0)
		NewNoticeContainer()
		NewNoticeContainerWithLimit(0)
		NewOrphanedStationNotice("", 0)
		NewOverlappingFrequencyNotice("", "", "", 0, "", "", 0)
		NewOverlappingRoutesNotice(nil, 0)
		NewOverlappingZoneAndPickupDropOffWindowNotice("", 0, 0)
		NewPathwayToSameStopNotice("", "", 0)
		NewPoorColorContrastNotice("", "", "", 0)
		NewRedGreenColorCombinationNotice("", "", "", 0)
		NewRouteColorContrastNotice("", "", "", 0, 0, 0, WARNING)
		NewRouteLongNameTooLongNotice("", "", 0, 0, 0)
		NewRouteNetworkSummaryNotice(0, 0, 0, 0, 0)
		NewRouteShortNameTooLongNotice("", "", 0, 0, 0)
		NewRouteTypeNameMismatchNotice("", 0, "", "", "", 0)
		NewRouteWithoutTripsNotice("", 0)
		NewRuntimeExceptionInLoaderErrorNotice("")
		NewRuntimeExceptionInValidatorErrorNotice("", "")
		NewSameNameAndDescriptionNotice("", "", "", "", 0)
		NewSameOriginDestinationNotice("", "", 0)
		NewSameRouteAndAgencyURLNotice("", "", "", 0)
		NewSameStopAndAgencyURLNotice("", "", "", 0)
		NewSameStopAndRouteURLNotice("", "", "", 0)
		NewSchedulingSummaryNotice(0, 0, 0, 0, 0)
		NewServiceExpiredNotice("", "", 0)
		NewServiceExpiresWithin30DaysNotice("", "", 0)
		NewServiceExpiresWithin7DaysNotice("", "", 0)
		NewServiceNeverActiveNotice("", 0)
		NewServicePatternSummaryNotice(0, 0, 0, 0)
		NewServiceWithoutActiveDaysNotice("", 0)
		NewServiceWithoutDefinitionNotice("")
		NewShapeDistanceDecreasingNotice("", 0, 0, 0, 0, 0)
		NewShapeDistanceInconsistentWithGeographyNotice("", 0, 0, 0, 0, 0)
		NewShapeDistanceNotIncreasingNotice("", 0, 0, 0, 0)
		NewShapeDistanceNotStartingFromZeroNotice("", 0, 0, 0)
		NewShapePointOutsideFeedBoundsNotice("", 0, 0, 0, 0)
		NewShortServiceSpanNotice("", "", 0, 0)
		NewShortTripPatternNotice("", 0, 0)
		NewSimilarColorsNotice("", "", "", 0)
		NewSingleDayServiceNotice("", "", 0)
		NewSingleRouteTypeInFeedNotice(0, "", 0)
		NewSingleStopZoneNotice("", "", 0)
		NewSingleTripBlockNotice("", "", 0)
		NewSingleTripPatternNotice("", "", 0)
		NewSingleTripServiceNotice("", "", 0)
		NewSmallFrequencyGapNotice("", "", "", 0, 0)
		NewSmallNetworkComponentNotice(0, 0, 0)
		NewStationWithParentStationNotice("", "", 0)
		NewStopHasTooManyMatchesForShapeNotice("", "", 0, "", 0, 0)
		NewStopNameAllCapsNotice("", "", 0)
		NewStopNameContainsControlCharacterNotice("", "", 0, 0, 0)
		NewStopNameContainsHTMLNotice("", "", 0)
		NewStopNameContainsURLNotice("", "", 0)
		NewStopNameDescriptionDuplicateNotice("", "", 0)
		NewStopNameMissingButInheritedNotice("", "", "", 0, 0)
		NewStopNameRepeatedWordNotice("", "", "", 0)
		NewStopNameTooLongNotice("", "", 0, 0, 0, WARNING)
		NewStopSequenceGapNotice("", 0, 0, 0)
		NewStopTimeArrivalAfterDepartureNotice("", 0, "", "", 0)
		NewStopTimeDecreasingTimeNotice("", 0, "", 0, 0, "", 0)
		NewStopTooFarFromShapeNotice("", "", 0, "", 0, 0)
		NewStopTooFarFromShapeUsingUserDistanceNotice("", "", 0, "", 0, 0)
		NewStopTripHeadsignMismatchNotice("", 0, "", "", 0)
		NewStopWithoutServiceNotice("", "", 0, 0)
		NewStopWithoutStopTimeNotice("", 0)
		NewStopsMatchShapeOutOfOrderNotice("", "", 0, "", "", 0, 0)
		NewSuspiciousCoordinateNotice("", "", "", 0, "")
		NewSuspiciousHeadsignPatternNotice("", 0, "", "", 0)
		NewTimepointWithoutTimesNotice("", "", 0, 0)
		NewTooManyHeadsignsInTripNotice("", 0, nil)
		NewTrailingWhitespaceNotice("", "", "", 0)
		NewTransferToSameStopNotice("", 0)
		NewTransferWithInvalidStopLocationTypeNotice("", 0, 0)
		NewTransferWithInvalidTripAndRouteNotice("", "", "", 0)
		NewTransferWithInvalidTripAndStopNotice("", "", 0)
		NewTransferWithSuspiciousMidTripInSeatNotice("", "", 0)
		NewTripDistanceExceedsShapeDistanceBelowThresholdNotice("", "", 0, 0, 0)
		NewTripDistanceExceedsShapeDistanceNotice("", "", 0, 0, 0)
		NewTripPatternSummaryNotice(0, 0, 0)
		NewTripUsabilityNotice("", 0, 0)
		NewURISyntaxErrorNotice("", "", "", 0, "")
		NewUnbalancedDirectionTripsNotice("", 0, 0, 0, 0)
		NewUncommonRouteTypeNotice("", 0, "", 0)
		NewUndefinedServiceNotice("")
		NewUndefinedZoneNotice("")
		NewUnexpectedBidirectionalGateNotice("", 0, 0)
		NewUnknownColumnNotice("", "", 0)
		NewUnknownFileNotice("")
		NewUnnecessaryMinTransferTimeNotice("", "", 0, 0)
		NewUnnecessaryTransferDurationNotice("", 0, 0)
		NewUnrealisticShapeDistanceNotice("", 0, 0, 0, 0, 0, 0)
		NewUnrealisticTransferTimeNotice("", "", 0, 0, 0, 0)
		NewUnreasonableHeadwayNotice("", 0, 0)
		NewUnreasonableLevelIndexNotice("", 0, 0)
		NewUnreasonableMaxSlopeNotice("", 0, 0)
		NewUnreasonableMinTransferTimeNotice("", "", 0, 0)
		NewUnreasonablyLongShapeSegmentNotice("", 0, 0, 0, 0)
		NewUnusedAgencyNotice("", 0)
		NewUnusedFareAttributeNotice("", 0)
		NewUnusedLevelNotice("", 0)
		NewUnusedServiceNotice("", "", 0)
		NewUnusedShapeNotice("")
		NewUnusedStopNotice("", 0)
		NewUnusedZoneNotice("", 0)
		NewUnusualBikeAllowanceNotice("", "", 0, 0, 0)
		NewUnusualRouteTypeCombinationNotice(nil, nil)
		NewUnusualServicePatternNotice("", "", 0)
		NewUnusualTransferValueNotice("", 0, 0)
		NewValidationSummaryNotice(0, 0, 0)
		NewValidatorErrorNotice("", "")
		NewVeryCloseStopsNotice("", "", 0, 0, 0)
		NewVeryFutureCalendarDateNotice("", "", 0)
		NewVeryFutureServiceNotice("", "", 0)
		NewVeryLargeFeedCoverageNotice(0, 0, 0, 0, 0, 0)
		NewVeryLongFrequencyPeriodNotice("", "", "", 0, 0)
		NewVeryLongHeadsignNotice("", 0, 0, 0)
		NewVeryLongHeadwayNotice("", "", 0)
		NewVeryLongRouteNotice("", 0, 0)
		NewVeryLongServicePeriodNotice("", "", "", 0, 0)
		NewVeryLongTransferTimeNotice("", "", 0, 0)
		NewVeryLongTripNotice("", 0, 0)
		NewVeryOldCalendarDateNotice("", "", 0)
		NewVeryOldServiceNotice("", "", 0)
		NewVeryShortHeadsignNotice("", 0, "", 0)
		NewVeryShortHeadwayNotice("", "", 0)
		NewVeryShortRouteNotice("", 0, 0)
		NewVeryShortTransferTimeNotice("", "", 0, 0)
		NewVeryShortTripNotice("", 0, 0)
		NewVerySmallFeedCoverageNotice(0, 0, 0, 0, 0, 0)
		NewWeekendOnlyServiceNotice("", 0)
		NewWhitespaceOnlyFieldNotice("", "", 0)
		NewWrongNumberOfFieldsNotice("", 0, 0, 0)
		NewZoneIDSameAsStopIDNotice("", 0)
}
