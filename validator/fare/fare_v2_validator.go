package fare

import (
	"io"
	"strconv"
	"strings"

	"github.com/transitdata/gtfsvalidate/notice"
	"github.com/transitdata/gtfsvalidate/parser"
	"github.com/transitdata/gtfsvalidate/types"
	"github.com/transitdata/gtfsvalidate/validator"
)

// FareV2Validator validates the GTFS-Fares v2 file family: fare_products,
// fare_leg_rules, fare_leg_join_rules, fare_transfer_rules, networks, areas,
// timeframes and rider_categories. It follows the same reopen-per-file,
// build-a-local-index pattern as FareValidator, generalized to the wider set
// of files Fares v2 introduces.
type FareV2Validator struct{}

// NewFareV2Validator creates a new GTFS-Fares v2 validator.
func NewFareV2Validator() *FareV2Validator {
	return &FareV2Validator{}
}

type fareLegRuleRow struct {
	NetworkID       string
	FromAreaID      string
	ToAreaID        string
	FromTimeframeID string
	ToTimeframeID   string
	FareProductID   string
	RowNumber       int
}

type fareProductRow struct {
	FareProductID string
	FareMediaID   string
	Amount        string
	Currency      string
	RowNumber     int
}

type riderCategoryRow struct {
	RiderCategoryID       string
	IsDefaultFareCategory int
	RowNumber             int
}

func (v *FareV2Validator) Validate(loader *parser.FeedLoader, container *notice.NoticeContainer, config validator.Config) {
	networkIDs := v.loadIDColumn(loader, "networks.txt", "network_id")
	areaIDs := v.loadIDColumn(loader, "areas.txt", "area_id")
	timeframeGroupIDs := v.loadIDColumn(loader, "timeframes.txt", "timeframe_group_id")

	fareProducts := v.loadFareProducts(loader)
	riderCategories := v.loadRiderCategories(loader)

	v.validateFareLegRules(loader, container, networkIDs, areaIDs, timeframeGroupIDs)
	v.validateFareLegJoinRules(loader, container, networkIDs)
	v.validateFareProductAmounts(container, fareProducts)
	v.validateDefaultRiderCategories(container, riderCategories)
	v.validateTimeframeServiceIDs(loader, container)
}

// validateTimeframeServiceIDs checks timeframes.txt's service_id against the
// union of calendar.txt and calendar_dates.txt service ids.
func (v *FareV2Validator) validateTimeframeServiceIDs(loader *parser.FeedLoader, container *notice.NoticeContainer) {
	serviceIDs := make(map[string]bool)
	for id := range v.loadIDColumn(loader, "calendar.txt", "service_id") {
		serviceIDs[id] = true
	}
	for id := range v.loadIDColumn(loader, "calendar_dates.txt", "service_id") {
		serviceIDs[id] = true
	}
	if len(serviceIDs) == 0 {
		return
	}

	reader, err := loader.GetFile("timeframes.txt")
	if err != nil {
		return
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "timeframes.txt")
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
		serviceID := strings.TrimSpace(row.Values["service_id"])
		if serviceID == "" || serviceIDs[serviceID] {
			continue
		}
		container.AddNotice(notice.NewForeignKeyViolationNotice(
			"timeframes.txt", "service_id", serviceID, row.RowNumber, "calendar.txt", "service_id",
		))
	}
}

func (v *FareV2Validator) loadIDColumn(loader *parser.FeedLoader, filename string, field string) map[string]bool {
	ids := make(map[string]bool)
	reader, err := loader.GetFile(filename)
	if err != nil {
		return ids
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, filename)
	if err != nil {
		return ids
	}

	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		if value, ok := row.Values[field]; ok && strings.TrimSpace(value) != "" {
			ids[strings.TrimSpace(value)] = true
		}
	}
	return ids
}

func (v *FareV2Validator) validateFareLegRules(loader *parser.FeedLoader, container *notice.NoticeContainer, networkIDs, areaIDs, timeframeGroupIDs map[string]bool) {
	reader, err := loader.GetFile("fare_leg_rules.txt")
	if err != nil {
		return
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "fare_leg_rules.txt")
	if err != nil {
		return
	}

	haveNetworks := len(networkIDs) > 0

	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		if networkID := strings.TrimSpace(row.Values["network_id"]); networkID != "" && haveNetworks && !networkIDs[networkID] {
			container.AddNotice(notice.NewForeignKeyViolationNotice(
				"fare_leg_rules.txt", "network_id", networkID, row.RowNumber, "networks.txt", "network_id",
			))
		}
		for _, field := range []string{"from_area_id", "to_area_id"} {
			if areaID := strings.TrimSpace(row.Values[field]); areaID != "" && len(areaIDs) > 0 && !areaIDs[areaID] {
				container.AddNotice(notice.NewForeignKeyViolationNotice(
					"fare_leg_rules.txt", field, areaID, row.RowNumber, "areas.txt", "area_id",
				))
			}
		}
		for _, field := range []string{"from_timeframe_id", "to_timeframe_id"} {
			if timeframeID := strings.TrimSpace(row.Values[field]); timeframeID != "" && len(timeframeGroupIDs) > 0 && !timeframeGroupIDs[timeframeID] {
				container.AddNotice(notice.NewForeignKeyViolationNotice(
					"fare_leg_rules.txt", field, timeframeID, row.RowNumber, "timeframes.txt", "timeframe_group_id",
				))
			}
		}
	}
}

func (v *FareV2Validator) validateFareLegJoinRules(loader *parser.FeedLoader, container *notice.NoticeContainer, networkIDs map[string]bool) {
	reader, err := loader.GetFile("fare_leg_join_rules.txt")
	if err != nil {
		return
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "fare_leg_join_rules.txt")
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

		for _, field := range []string{"from_network_id", "to_network_id"} {
			netID := strings.TrimSpace(row.Values[field])
			if netID != "" && !networkIDs[netID] {
				container.AddNotice(notice.NewForeignKeyViolationNotice(
					"fare_leg_join_rules.txt", field, netID, row.RowNumber, "networks.txt", "network_id",
				))
			}
		}
	}
}

func (v *FareV2Validator) loadFareProducts(loader *parser.FeedLoader) []fareProductRow {
	var out []fareProductRow
	reader, err := loader.GetFile("fare_products.txt")
	if err != nil {
		return out
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "fare_products.txt")
	if err != nil {
		return out
	}

	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		out = append(out, fareProductRow{
			FareProductID: strings.TrimSpace(row.Values["fare_product_id"]),
			FareMediaID:   strings.TrimSpace(row.Values["fare_media_id"]),
			Amount:        strings.TrimSpace(row.Values["amount"]),
			Currency:      strings.TrimSpace(row.Values["currency"]),
			RowNumber:     row.RowNumber,
		})
	}
	return out
}

// validateFareProductAmounts checks that each product's amount has the
// number of decimal places its currency's minor unit requires, grounding
// types.AmountMatchesCurrencyScale (shopspring/decimal) in a real rule.
func (v *FareV2Validator) validateFareProductAmounts(container *notice.NoticeContainer, products []fareProductRow) {
	for _, p := range products {
		if p.Amount == "" || p.Currency == "" {
			continue
		}
		ok, err := types.AmountMatchesCurrencyScale(p.Amount, p.Currency)
		if err != nil || !ok {
			container.AddNotice(notice.NewInvalidCurrencyAmountNotice(
				"fare_products.txt", "amount", p.Amount, p.Currency, p.RowNumber,
			))
		}
	}
}

func (v *FareV2Validator) loadRiderCategories(loader *parser.FeedLoader) []riderCategoryRow {
	var out []riderCategoryRow
	reader, err := loader.GetFile("rider_categories.txt")
	if err != nil {
		return out
	}
	defer reader.Close()

	csvFile, err := parser.NewCSVFile(reader, "rider_categories.txt")
	if err != nil {
		return out
	}

	for {
		row, err := csvFile.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		isDefault, _ := strconv.Atoi(strings.TrimSpace(row.Values["is_default_fare_category"]))
		out = append(out, riderCategoryRow{
			RiderCategoryID:       strings.TrimSpace(row.Values["rider_category_id"]),
			IsDefaultFareCategory: isDefault,
			RowNumber:             row.RowNumber,
		})
	}
	return out
}

// validateDefaultRiderCategories flags more than one rider category marked
// as default; GTFS-Fares v2 allows at most one default per feed.
func (v *FareV2Validator) validateDefaultRiderCategories(container *notice.NoticeContainer, categories []riderCategoryRow) {
	var first *riderCategoryRow
	for i := range categories {
		c := &categories[i]
		if c.IsDefaultFareCategory != 1 {
			continue
		}
		if first == nil {
			first = c
			continue
		}
		container.AddNotice(notice.NewFareProductWithMultipleDefaultRiderCategoriesNotice(
			"", c.RiderCategoryID, first.RiderCategoryID, c.RowNumber, first.RowNumber,
		))
	}
}
