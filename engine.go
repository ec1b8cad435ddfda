/*
Package gtfsvalidator validates GTFS-Schedule feeds: it loads a feed from a
ZIP file, a directory, or an in-memory buffer, runs the rule library against
it, and returns every notice the rules raised.

Basic usage:

	v := gtfsvalidator.New(gtfsvalidator.WithCountryCode("US"))
	report, err := v.ValidateFile("feed.zip")
	if err != nil {
		log.Fatal(err)
	}
	if report.HasErrors() {
		fmt.Printf("%d errors\n", report.ErrorCount())
	}

See SPEC_FULL.md for the module's full scope; this package is the public
entry point wiring the loader, the rule library and the runner together.
*/
package gtfsvalidator

import (
	"fmt"
	"time"

	"github.com/transitdata/gtfsvalidate/logging"
	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/parser"
	"github.com/transitdata/gtfsvalidate/runner"
	"github.com/transitdata/gtfsvalidate/validator"
	"github.com/transitdata/gtfsvalidate/validator/accessibility"
	"github.com/transitdata/gtfsvalidate/validator/business"
	"github.com/transitdata/gtfsvalidate/validator/core"
	"github.com/transitdata/gtfsvalidate/validator/entity"
	"github.com/transitdata/gtfsvalidate/validator/fare"
	"github.com/transitdata/gtfsvalidate/validator/flex"
	"github.com/transitdata/gtfsvalidate/validator/meta"
	"github.com/transitdata/gtfsvalidate/validator/relationship"
	"github.com/transitdata/gtfsvalidate/vcontext"
)

// Report is the result of validating one feed.
type Report struct {
	container *notice.NoticeContainer
}

// Notices returns every notice the rule library generated, in the order
// rules were registered.
func (r *Report) Notices() []notice.Notice {
	return r.container.GetNotices()
}

// NoticesByCode returns only the notices with the given code.
func (r *Report) NoticesByCode(code string) []notice.Notice {
	return r.container.GetNoticesByCode(code)
}

// HasErrors reports whether any ERROR-severity notice was generated.
func (r *Report) HasErrors() bool {
	return r.container.HasErrors()
}

// ErrorCount returns the number of ERROR-severity notices.
func (r *Report) ErrorCount() int {
	return r.container.CountBySeverity()[notice.ERROR]
}

// WarningCount returns the number of WARNING-severity notices.
func (r *Report) WarningCount() int {
	return r.container.CountBySeverity()[notice.WARNING]
}

// Validator validates GTFS feeds according to its configured options.
type Validator struct {
	countryCode        string
	validationDate     time.Time
	thoroughMode       bool
	googleRulesEnabled bool
	maxNoticesPerType  int
	parallelWorkers    int
	maxMemory          int64
}

// Option configures a Validator.
type Option func(*Validator)

// WithCountryCode sets the ISO 3166-1 alpha-2 country code phone-number
// checks validate against. Defaults to vcontext.UnknownCountryCode, which
// disables those checks.
func WithCountryCode(code string) Option {
	return func(v *Validator) { v.countryCode = code }
}

// WithValidationDate sets the date feed-expiration and date-range checks
// treat as "today". Defaults to time.Now() at Validate time.
func WithValidationDate(t time.Time) Option {
	return func(v *Validator) { v.validationDate = t }
}

// WithThoroughMode enables the rules that are too expensive to run by
// default on very large feeds (e.g. unused-stop detection).
func WithThoroughMode(enabled bool) Option {
	return func(v *Validator) { v.thoroughMode = enabled }
}

// WithGoogleRulesEnabled toggles the subset of rules that mirror Google's
// own GTFS validator rather than the open specification strictly.
func WithGoogleRulesEnabled(enabled bool) Option {
	return func(v *Validator) { v.googleRulesEnabled = enabled }
}

// WithMaxNoticesPerType caps how many notices of a given code the report
// retains; excess notices of that code are counted but dropped. 0 means
// unlimited.
func WithMaxNoticesPerType(max int) Option {
	return func(v *Validator) { v.maxNoticesPerType = max }
}

// WithParallelWorkers bounds how many rules run concurrently. <= 0 means
// runtime.GOMAXPROCS(0).
func WithParallelWorkers(workers int) Option {
	return func(v *Validator) { v.parallelWorkers = workers }
}

// WithMaxMemory is advisory input for the parser's buffer pools; it does not
// enforce a hard ceiling.
func WithMaxMemory(bytes int64) Option {
	return func(v *Validator) { v.maxMemory = bytes }
}

// New creates a Validator. Unset options default to: unknown country code,
// the current time as the validation date, thorough mode off, Google rules
// off, unlimited notices per type, and GOMAXPROCS workers.
func New(opts ...Option) *Validator {
	v := &Validator{
		countryCode: vcontext.UnknownCountryCode,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateFile validates a GTFS feed packaged as a ZIP file on disk. An
// unreadable input is not a Go error: per spec.md §4.11/§7, it becomes an
// invalid_input notice in the returned report, with no feed and no rules run.
func (v *Validator) ValidateFile(path string) (*Report, error) {
	loader, err := parser.LoadFromZip(path)
	if err != nil {
		return inputErrorReport("zip", path, err), nil
	}
	defer loader.Close()
	return v.validate(loader)
}

// ValidateDirectory validates a GTFS feed laid out as a directory of .txt
// and .geojson files.
func (v *Validator) ValidateDirectory(path string) (*Report, error) {
	loader, err := parser.LoadFromDirectory(path)
	if err != nil {
		return inputErrorReport("directory", path, err), nil
	}
	defer loader.Close()
	return v.validate(loader)
}

// ValidateBytes validates a GTFS feed held in memory as a ZIP archive.
func (v *Validator) ValidateBytes(data []byte) (*Report, error) {
	loader, err := parser.LoadFromBytes(data)
	if err != nil {
		return inputErrorReport("bytes", "", err), nil
	}
	defer loader.Close()
	return v.validate(loader)
}

// inputErrorReport wraps a failure to even open the input (missing path,
// invalid ZIP, unreadable directory) into a report carrying a single
// invalid_input notice instead of a Go error, so hosts get a uniform
// notice-bearing result for every validation outcome.
func inputErrorReport(source, path string, err error) *Report {
	container := notice.NewNoticeContainer()
	detail := err.Error()
	if path != "" {
		detail = fmt.Sprintf("%s: %s", path, detail)
	}
	container.AddNotice(notice.NewInvalidInputNotice(source, detail))
	return &Report{container: container}
}

// validate runs the required-file short circuit, then the full rule
// library, recovering any panic from the loading step itself into a
// runtime_exception_in_loader_error notice rather than propagating it.
func (v *Validator) validate(loader *parser.FeedLoader) (report *Report, err error) {
	container := notice.NewNoticeContainerWithLimit(v.maxNoticesPerType)

	defer func() {
		if rec := recover(); rec != nil {
			logging.Errorf("loader panicked: %v", rec)
			container.AddNotice(notice.NewRuntimeExceptionInLoaderErrorNotice(fmt.Sprintf("%v", rec)))
			report = &Report{container: container}
			err = nil
		}
	}()

	if missing := missingRequiredFiles(loader); len(missing) > 0 {
		for _, filename := range missing {
			container.AddNotice(notice.NewMissingRequiredFileNotice(filename))
		}
		return &Report{container: container}, nil
	}

	validationDate := v.validationDate
	if validationDate.IsZero() {
		validationDate = time.Now()
	}

	ctx := vcontext.Context{
		ValidationDate:     validationDate,
		CountryCode:        v.countryCode,
		ThoroughMode:       v.thoroughMode,
		GoogleRulesEnabled: v.googleRulesEnabled,
	}

	config := validator.Config{
		CountryCode:     v.countryCode,
		CurrentDate:     validationDate,
		MaxMemory:       v.maxMemory,
		ParallelWorkers: v.parallelWorkers,
	}

	r := runner.New(v.parallelWorkers)
	registerRules(r)

	var ran, failed int
	vcontext.With(ctx, func() {
		ran, failed = r.RunWith(loader, container, config)
	})
	container.AddNotice(notice.NewValidationSummaryNotice(r.Len(), ran, failed))

	return &Report{container: container}, nil
}

// missingRequiredFiles reports which of the five always-required files are
// absent, so validate can short-circuit before running any rule that would
// otherwise cascade failures from a file that was never there.
func missingRequiredFiles(loader *parser.FeedLoader) []string {
	var missing []string
	for _, filename := range parser.RequiredFiles {
		if !loader.HasFile(filename) {
			missing = append(missing, filename)
		}
	}
	return missing
}

// registerRules registers the full rule library. Registration order fixes
// the order notices from distinct rules are folded into the report.
func registerRules(r *runner.Runner) {
	r.Register("file_structure", validator.NewFileStructureValidator())

	r.Register("missing_files", core.NewMissingFilesValidator())
	r.Register("unknown_file", core.NewUnknownFileValidator())
	r.Register("empty_file", core.NewEmptyFileValidator())
	r.Register("duplicate_header", core.NewDuplicateHeaderValidator())
	r.Register("duplicate_key", core.NewDuplicateKeyValidator())
	r.Register("missing_column", core.NewMissingColumnValidator())
	r.Register("required_field", core.NewRequiredFieldValidator())
	r.Register("field_format", core.NewFieldFormatValidator())
	r.Register("invalid_row", core.NewInvalidRowValidator())
	r.Register("leading_trailing_whitespace", core.NewLeadingTrailingWhitespaceValidator())
	r.Register("coordinate", core.NewCoordinateValidator())
	r.Register("currency", core.NewCurrencyValidator())
	r.Register("date_format", core.NewDateFormatValidator())
	r.Register("time_format", core.NewTimeFormatValidator())

	r.Register("primary_key", entity.NewPrimaryKeyValidator())
	r.Register("agency_consistency", entity.NewAgencyConsistencyValidator())
	r.Register("attribution_without_role", entity.NewAttributionWithoutRoleValidator())
	r.Register("bikes_allowance", entity.NewBikesAllowanceValidator())
	r.Register("calendar", entity.NewCalendarValidator())
	r.Register("calendar_consistency", entity.NewCalendarConsistencyValidator())
	r.Register("duplicate_route_name", entity.NewDuplicateRouteNameValidator())
	r.Register("route_color_contrast", entity.NewRouteColorContrastValidator())
	r.Register("route_consistency", entity.NewRouteConsistencyValidator())
	r.Register("route_name", entity.NewRouteNameValidator())
	r.Register("route_type", entity.NewRouteTypeValidator())
	r.Register("service_validation", entity.NewServiceValidationValidator())
	r.Register("shape", entity.NewShapeValidator())
	r.Register("stop_location", entity.NewStopLocationValidator())
	r.Register("stop_name", entity.NewStopNameValidator())
	r.Register("stop_time_headsign", entity.NewStopTimeHeadsignValidator())
	r.Register("trip_block_id", entity.NewTripBlockIdValidator())
	r.Register("trip_pattern", entity.NewTripPatternValidator())
	r.Register("zone", entity.NewZoneValidator())

	r.Register("foreign_key", relationship.NewForeignKeyValidator())
	r.Register("attribution", relationship.NewAttributionValidator())
	r.Register("route_consistency_relationship", relationship.NewRouteConsistencyValidator())
	r.Register("shape_distance", relationship.NewShapeDistanceValidator())
	r.Register("shape_increasing_distance", relationship.NewShapeIncreasingDistanceValidator())
	r.Register("stop_time_consistency", relationship.NewStopTimeConsistencyValidator())
	r.Register("stop_time_sequence", relationship.NewStopTimeSequenceValidator())
	r.Register("stop_time_sequence_time", relationship.NewStopTimeSequenceTimeValidator())
	r.Register("shape_to_stop_matching", relationship.NewShapeToStopMatchingValidator())
	r.Register("trip_shape_distance", relationship.NewTripShapeDistanceValidator())

	r.Register("block_overlapping", business.NewBlockOverlappingValidator())
	r.Register("date_trips", business.NewDateTripsValidator())
	r.Register("feed_expiration_date", business.NewFeedExpirationDateValidator())
	r.Register("feed_expiration", business.NewFeedExpirationValidator())
	r.Register("frequency", business.NewFrequencyValidator())
	r.Register("overlapping_frequency", business.NewOverlappingFrequencyValidator())
	r.Register("geospatial", business.NewGeospatialValidator())
	r.Register("network_topology", business.NewNetworkTopologyValidator())
	r.Register("schedule_consistency", business.NewScheduleConsistencyValidator())
	r.Register("service_calendar", business.NewServiceCalendarValidator())
	r.Register("service_consistency", business.NewServiceConsistencyValidator())
	r.Register("transfer", business.NewTransferValidator())
	r.Register("transfer_trip", business.NewTransferTripValidator())
	r.Register("transfer_timing", business.NewTransferTimingValidator())
	r.Register("travel_speed", business.NewTravelSpeedValidator())
	r.Register("trip_usability", business.NewTripUsabilityValidator())
	r.Register("unused_entities", business.NewUnusedEntitiesValidator())

	r.Register("accessibility_level", accessibility.NewLevelValidator())
	r.Register("pathway", accessibility.NewPathwayValidator())

	r.Register("fare", fare.NewFareValidator())
	r.Register("fare_v2", fare.NewFareV2Validator())

	r.Register("flex_geography", flex.NewGeographyValidator())
	r.Register("flex_stop_times_record", flex.NewStopTimesRecordValidator())

	r.Register("feed_info", meta.NewFeedInfoValidator())
	r.Register("url_consistency", meta.NewURLConsistencyValidator())
}
