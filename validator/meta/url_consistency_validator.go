package meta

import (
	"io"
	"net/url"
	"strings"

	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/parser"
	"github.com/transitdata/gtfsvalidate/validator"
)

// urlField names a (file, field) pair whose value must be an absolute URL.
type urlField struct {
	file  string
	field string
}

// URLConsistencyValidator checks that URL-typed fields parse as absolute
// URLs and that agency/route/stop URLs, which should each point somewhere
// distinct, aren't accidentally identical. It also cross-checks feed_info's
// feed_lang against every agency_lang.
type URLConsistencyValidator struct{}

// NewURLConsistencyValidator creates a new URL consistency validator.
func NewURLConsistencyValidator() *URLConsistencyValidator {
	return &URLConsistencyValidator{}
}

var urlFieldsToCheck = []urlField{
	{"agency.txt", "agency_url"},
	{"agency.txt", "agency_fare_url"},
	{"routes.txt", "route_url"},
	{"stops.txt", "stop_url"},
	{"feed_info.txt", "feed_publisher_url"},
	{"feed_info.txt", "feed_contact_url"},
	{"attributions.txt", "attribution_url"},
}

func (v *URLConsistencyValidator) Validate(loader *parser.FeedLoader, container *notice.NoticeContainer, config validator.Config) {
	for _, f := range urlFieldsToCheck {
		v.validateURLSyntax(loader, container, f.file, f.field)
	}

	v.validateCrossEntityURLs(loader, container)
	v.validateFeedAndAgencyLang(loader, container)
}

// validateURLSyntax checks a single file/field pair for syntactically valid
// absolute URLs, suggesting a safe https:// prefix fix for bare domains.
func (v *URLConsistencyValidator) validateURLSyntax(loader *parser.FeedLoader, container *notice.NoticeContainer, filename, field string) {
	reader, err := loader.GetFile(filename)
	if err != nil {
		return
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, filename)
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
		raw := strings.TrimSpace(row.Values[field])
		if raw == "" {
			continue
		}
		if isValidAbsoluteURL(raw) {
			continue
		}
		suggested := ""
		if looksLikeBareDomain(raw) {
			suggested = "https://" + raw
			if !isValidAbsoluteURL(suggested) {
				suggested = ""
			}
		}
		container.AddNotice(notice.NewURISyntaxErrorNotice(filename, field, raw, row.RowNumber, suggested))
	}
}

func isValidAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// looksLikeBareDomain is a conservative heuristic: no scheme, no spaces, and
// at least one dot, e.g. "www.example.com" or "example.org/feed".
func looksLikeBareDomain(raw string) bool {
	if strings.ContainsAny(raw, " \t") {
		return false
	}
	if strings.Contains(raw, "://") {
		return false
	}
	return strings.Contains(raw, ".")
}

type urlOwner struct {
	kind string
	id   string
	row  int
}

// validateCrossEntityURLs flags an agency_url reused verbatim as a
// route_url or stop_url, and a route_url reused as a stop_url - each pair
// should point to distinct pages.
func (v *URLConsistencyValidator) validateCrossEntityURLs(loader *parser.FeedLoader, container *notice.NoticeContainer) {
	agencyURLs := v.loadURLColumn(loader, "agency.txt", "agency_id", "agency_url")
	routeURLs := v.loadURLColumn(loader, "routes.txt", "route_id", "route_url")
	stopURLs := v.loadURLColumn(loader, "stops.txt", "stop_id", "stop_url")

	for url, route := range routeURLs {
		if agency, ok := agencyURLs[url]; ok {
			container.AddNotice(notice.NewSameRouteAndAgencyURLNotice(route.id, agency.id, url, route.row))
		}
	}
	for url, stop := range stopURLs {
		if agency, ok := agencyURLs[url]; ok {
			container.AddNotice(notice.NewSameStopAndAgencyURLNotice(stop.id, agency.id, url, stop.row))
		}
		if route, ok := routeURLs[url]; ok {
			container.AddNotice(notice.NewSameStopAndRouteURLNotice(stop.id, route.id, url, stop.row))
		}
	}
}

func (v *URLConsistencyValidator) loadURLColumn(loader *parser.FeedLoader, filename, idField, urlField string) map[string]urlOwner {
	result := make(map[string]urlOwner)
	reader, err := loader.GetFile(filename)
	if err != nil {
		return result
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, filename)
	if err != nil {
		return result
	}

	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		u := strings.TrimSpace(row.Values[urlField])
		if u == "" {
			continue
		}
		id := strings.TrimSpace(row.Values[idField])
		key := strings.ToLower(u)
		if _, exists := result[key]; !exists {
			result[key] = urlOwner{id: id, row: row.RowNumber}
		}
	}
	return result
}

type agencyLangRow struct {
	agencyID string
	lang     string
	row      int
}

// validateFeedAndAgencyLang checks feed_info's feed_lang against every
// agency's agency_lang, exempting the "mul" (multilingual) sentinel.
func (v *URLConsistencyValidator) validateFeedAndAgencyLang(loader *parser.FeedLoader, container *notice.NoticeContainer) {
	feedLang := v.loadFeedLang(loader)
	if feedLang == "" || strings.EqualFold(feedLang, "mul") {
		return
	}

	reader, err := loader.GetFile("agency.txt")
	if err != nil {
		return
	}
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
		lang := strings.TrimSpace(row.Values["agency_lang"])
		if lang == "" || strings.EqualFold(lang, feedLang) {
			continue
		}
		container.AddNotice(notice.NewFeedInfoLangAndAgencyLangMismatchNotice(
			strings.TrimSpace(row.Values["agency_id"]), feedLang, lang, row.RowNumber,
		))
	}
}

func (v *URLConsistencyValidator) loadFeedLang(loader *parser.FeedLoader) string {
	reader, err := loader.GetFile("feed_info.txt")
	if err != nil {
		return ""
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "feed_info.txt")
	if err != nil {
		return ""
	}

	row, err := csvFile.ReadRow()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(row.Values["feed_lang"])
}
