/*
Package gtfsvalidator provides a GTFS (General Transit Feed Specification)
validation library for Go.

This library validates GTFS feeds and reports what it finds as notices of
ERROR, WARNING or INFO severity. A feed can be read from a ZIP file, a
directory of GTFS files, or a ZIP archive held in memory.

Basic Usage:

	import gtfsvalidator "github.com/transitdata/gtfsvalidate"

	// Create a validator with default settings
	validator := gtfsvalidator.New()

	// Validate a GTFS ZIP file
	report, err := validator.ValidateFile("transit-feed.zip")
	if err != nil {
		log.Fatal(err)
	}

	if report.HasErrors() {
		fmt.Printf("Validation failed with %d errors\n", report.ErrorCount())
	}

Advanced Usage with Options:

	// Create a validator with custom configuration
	validator := gtfsvalidator.New(
		gtfsvalidator.WithCountryCode("GB"),
		gtfsvalidator.WithValidationDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		gtfsvalidator.WithThoroughMode(true),
		gtfsvalidator.WithMaxNoticesPerType(50),
		gtfsvalidator.WithParallelWorkers(4),
		gtfsvalidator.WithMaxMemory(512*1024*1024), // advisory, not a hard limit
	)

	// Validate a directory of GTFS text files
	report, err := validator.ValidateDirectory("feed/")

	// Validate a ZIP archive already held in memory
	report, err = validator.ValidateBytes(zipData)

Concurrency:

Rules run concurrently on at most WithParallelWorkers goroutines
(GOMAXPROCS by default). Notices of distinct rules appear in the report in
the order the rules are registered. A rule that panics is reported as a
runtime_exception_in_validator_error notice and the other rules still run.

Error Handling:

Problems with the input are reported as notices, not as Go errors. An input
that cannot be opened (a missing path, a file that is not a ZIP archive, an
unreadable directory) yields a report holding one invalid_input notice. A
feed missing any of the required files yields one missing_required_file
notice per missing file, and no rule runs:

	report, err := validator.ValidateFile("feed.zip")
	if err != nil {
		log.Fatal("Failed to validate:", err)
	}

	if report.HasErrors() {
		for _, n := range report.Notices() {
			if n.Severity() == notice.ERROR {
				fmt.Printf("Error: %s %v\n", n.Code(), n.Context())
			}
		}
	}

	for _, n := range report.NoticesByCode("invalid_input") {
		fmt.Println("could not read the feed:", n.Context()["detail"])
	}

Notice Types:

Notices are categorized by severity:
  - ERROR: Specification violations that prevent feed usage
  - WARNING: Issues that may cause problems but don't break compatibility
  - INFO: Informational notices about feed characteristics

For more information about GTFS, see: https://gtfs.org/
*/
package gtfsvalidator
