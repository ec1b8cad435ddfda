package core

import (
	"log"
	"strings"

	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/parser"
	"github.com/transitdata/gtfsvalidate/validator"
)

// DuplicateHeaderValidator validates that CSV headers don't contain duplicates
type DuplicateHeaderValidator struct{}

// NewDuplicateHeaderValidator creates a new duplicate header validator
func NewDuplicateHeaderValidator() *DuplicateHeaderValidator {
	return &DuplicateHeaderValidator{}
}

// Validate checks for duplicate column headers in GTFS files
func (v *DuplicateHeaderValidator) Validate(loader *parser.FeedLoader, container *notice.NoticeContainer, config validator.Config) {
	files := loader.ListFiles()

	for _, filename := range files {
		v.validateFileHeaders(loader, container, filename)
	}
}

// validateFileHeaders checks for duplicate headers in a single file
func (v *DuplicateHeaderValidator) validateFileHeaders(loader *parser.FeedLoader, container *notice.NoticeContainer, filename string) {
	reader, err := loader.GetFile(filename)
	if err != nil {
		return // File doesn't exist, other validators handle this
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			log.Printf("Warning: failed to close reader %v", closeErr)
		}
	}()

	csvFile, err := parser.NewCSVFile(reader, filename)
	if err != nil {
		return // File format issues, other validators handle this
	}

	// Column names are compared case-insensitively per the CSV decoder's
	// header validation (spec.md 4.4): a blank name is its own notice, and
	// every repeat of a case-insensitive name is reported against the column
	// where that name first appeared.
	headers := csvFile.Headers
	seen := make(map[string]int, len(headers))

	for i, header := range headers {
		headerName := strings.TrimSpace(header)
		if headerName == "" {
			container.AddNotice(notice.NewEmptyColumnNameNotice(filename, i))
			continue
		}

		key := strings.ToLower(headerName)
		if firstIndex, exists := seen[key]; exists {
			container.AddNotice(notice.NewDuplicatedColumnNotice(
				filename,
				headerName,
				firstIndex,
				i,
			))
			continue
		}
		seen[key] = i
	}
}
