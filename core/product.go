package core

// Product is a single catalog entry. The base fields are required for every
// product; Powertrain and Cargo are optional extensions present only for
// certain product families and are checked at parse time.
type Product struct {
	ID            string
	Name          string
	Category      string
	Brand         string
	PriceEUR      float64
	IntendedUse   []string
	FrameMaterial string
	Suspension    string
	Gears         int
	WeightKG      float64
	Powertrain    *Powertrain // e-bike family only
	Cargo         *Cargo      // cargo family only
}

// Powertrain describes the electric drive of an e-bike. All three fields
// are required whenever the extension is present.
type Powertrain struct {
	MotorPowerW       int
	BatteryCapacityWh int
	RangeKM           int
}

// Cargo describes the load capacity extension of a cargo bike.
type Cargo struct {
	MaxLoadKG int
}

// Catalog is an ordered sequence of products. The position of a product in
// the catalog is its row identity in the embedding matrix and the tie-break
// key for ranking; order must be preserved from the raw source.
type Catalog []Product

// SearchResult pairs a product with its cosine similarity score for a query.
type SearchResult struct {
	Product Product
	Score   float32
}
