package schema

import "github.com/transitdata/gtfsvalidate/types"

// FareTransferRule represents a fare transfer rule between two legs from fare_transfer_rules.txt
type FareTransferRule struct {
	FromLegGroupID  string                  `csv:"from_leg_group_id"`
	ToLegGroupID    string                  `csv:"to_leg_group_id"`
	TransferCount   int                     `csv:"transfer_count"`
	DurationLimit   int                     `csv:"duration_limit"`
	DurationLimitType int                   `csv:"duration_limit_type"`
	FareTransferType types.FareTransferType `csv:"fare_transfer_type"`
	FareProductID   string                  `csv:"fare_product_id"`
}
