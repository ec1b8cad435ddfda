package schema

// RiderCategory represents a rider classification eligible for fare products, from rider_categories.txt
type RiderCategory struct {
	RiderCategoryID     string `csv:"rider_category_id"`
	RiderCategoryName   string `csv:"rider_category_name"`
	IsDefaultFareCategory int  `csv:"is_default_fare_category"`
	EligibilityURL      string `csv:"eligibility_url"`
}
