package schema

// FareProduct represents a sellable fare product from fare_products.txt
type FareProduct struct {
	FareProductID   string  `csv:"fare_product_id"`
	FareProductName string  `csv:"fare_product_name"`
	FareMediaID     string  `csv:"fare_media_id"`
	Amount          string  `csv:"amount"`
	Currency        string  `csv:"currency"`
}
