package business

import (
	"io"
	"strings"

	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/parser"
	"github.com/transitdata/gtfsvalidate/validator"
	"github.com/transitdata/gtfsvalidate/vcontext"
)

// UnusedEntitiesValidator flags agencies no route references, and - in
// thorough mode only, since it's expensive on large feeds - stops no
// stop_time references even after following parent_station links.
type UnusedEntitiesValidator struct{}

// NewUnusedEntitiesValidator creates a new unused entities validator.
func NewUnusedEntitiesValidator() *UnusedEntitiesValidator {
	return &UnusedEntitiesValidator{}
}

func (v *UnusedEntitiesValidator) Validate(loader *parser.FeedLoader, container *notice.NoticeContainer, config validator.Config) {
	v.validateUnusedAgencies(loader, container)

	if vcontext.Current().ThoroughMode {
		v.validateUnusedStops(loader, container)
	}
}

func (v *UnusedEntitiesValidator) validateUnusedAgencies(loader *parser.FeedLoader, container *notice.NoticeContainer) {
	type agencyRow struct {
		id  string
		row int
	}
	var agencies []agencyRow

	reader, err := loader.GetFile("agency.txt")
	if err != nil {
		return
	}
	func() {
		defer reader.Close()
		csvFile, err := parser.NewCSVFile(reader, "agency.txt")
		if err != nil {
			return
		}
		for {
			row, err := csvFile.ReadRow()
			if err == io.EOF {
				break
			}
			if err != nil {
				break
			}
			agencies = append(agencies, agencyRow{id: strings.TrimSpace(row.Values["agency_id"]), row: row.RowNumber})
		}
	}()

	if len(agencies) <= 1 {
		// A single-agency feed may legally omit agency_id on routes.txt, so
		// there's no way to tell it's unused; only multi-agency feeds qualify.
		return
	}

	referenced := make(map[string]bool)
	rReader, err := loader.GetFile("routes.txt")
	if err != nil {
		return
	}
	defer rReader.Close()
	csvFile, err := parser.NewCSVFile(rReader, "routes.txt")
	if err != nil {
		return
	}
	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		if id := strings.TrimSpace(row.Values["agency_id"]); id != "" {
			referenced[id] = true
		}
	}

	for _, a := range agencies {
		if a.id != "" && !referenced[a.id] {
			container.AddNotice(notice.NewUnusedAgencyNotice(a.id, a.row))
		}
	}
}

func (v *UnusedEntitiesValidator) validateUnusedStops(loader *parser.FeedLoader, container *notice.NoticeContainer) {
	type stopRow struct {
		id     string
		parent string
		row    int
	}
	var stops []stopRow

	reader, err := loader.GetFile("stops.txt")
	if err != nil {
		return
	}
	func() {
		defer reader.Close()
		csvFile, err := parser.NewCSVFile(reader, "stops.txt")
		if err != nil {
			return
		}
		for {
			row, err := csvFile.ReadRow()
			if err == io.EOF {
				break
			}
			if err != nil {
				break
			}
			stops = append(stops, stopRow{
				id:     strings.TrimSpace(row.Values["stop_id"]),
				parent: strings.TrimSpace(row.Values["parent_station"]),
				row:    row.RowNumber,
			})
		}
	}()
	if len(stops) == 0 {
		return
	}

	used := make(map[string]bool)

	markUsed := func(stopID string) {
		used[stopID] = true
		for _, s := range stops {
			if s.id == stopID && s.parent != "" {
				used[s.parent] = true
			}
		}
	}

	stReader, err := loader.GetFile("stop_times.txt")
	if err == nil {
		func() {
			defer stReader.Close()
			csvFile, err := parser.NewCSVFile(stReader, "stop_times.txt")
			if err != nil {
				return
			}
			for {
				row, err := csvFile.ReadRow()
				if err == io.EOF {
					break
				}
				if err != nil {
					break
				}
				if stopID := strings.TrimSpace(row.Values["stop_id"]); stopID != "" {
					markUsed(stopID)
				}
			}
		}()
	}

	lgsReader, err := loader.GetFile("location_group_stops.txt")
	if err == nil {
		func() {
			defer lgsReader.Close()
			csvFile, err := parser.NewCSVFile(lgsReader, "location_group_stops.txt")
			if err != nil {
				return
			}
			for {
				row, err := csvFile.ReadRow()
				if err == io.EOF {
					break
				}
				if err != nil {
					break
				}
				if stopID := strings.TrimSpace(row.Values["stop_id"]); stopID != "" {
					markUsed(stopID)
				}
			}
		}()
	}

	for _, s := range stops {
		if s.id != "" && !used[s.id] {
			container.AddNotice(notice.NewUnusedStopNotice(s.id, s.row))
		}
	}
}
