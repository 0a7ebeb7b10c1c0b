package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pedalworks/velosearch/core"
)

// productRecord is the wire form of a catalog entry. Optional extension
// fields are pointers so presence can be distinguished from zero values.
type productRecord struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Brand         string   `json:"brand"`
	PriceEUR      float64  `json:"price_eur"`
	IntendedUse   []string `json:"intended_use"`
	FrameMaterial string   `json:"frame_material"`
	Suspension    string   `json:"suspension"`
	Gears         int      `json:"gears"`
	WeightKG      float64  `json:"weight_kg"`

	MotorPowerW       *int `json:"motor_power_w,omitempty"`
	BatteryCapacityWh *int `json:"battery_capacity_wh,omitempty"`
	RangeKM           *int `json:"range_km,omitempty"`
	MaxLoadKG         *int `json:"max_load_kg,omitempty"`
}

// Load parses raw catalog bytes into an ordered catalog and one derived
// search text per product. Catalog order defines the stable row identities
// of the embedding matrix. Any parse or validation failure returns ErrParse
// with no partial result.
func Load(raw []byte) (core.Catalog, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var records []productRecord
	if err := dec.Decode(&records); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if dec.More() {
		return nil, nil, fmt.Errorf("%w: trailing data after catalog array", ErrParse)
	}

	products := make(core.Catalog, 0, len(records))
	texts := make([]string, 0, len(records))
	for i := range records {
		product, err := assemble(&records[i])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: product %d: %w", ErrParse, i, err)
		}
		products = append(products, *product)
		texts = append(texts, core.ProductText(product))
	}

	return products, texts, nil
}

// assemble converts a wire record into a domain product, resolving the
// optional key-presence typing into explicit named extensions. Powertrain
// fields must appear all together or not at all.
func assemble(rec *productRecord) (*core.Product, error) {
	p := &core.Product{
		ID:            rec.ID,
		Name:          rec.Name,
		Category:      rec.Type,
		Brand:         rec.Brand,
		PriceEUR:      rec.PriceEUR,
		IntendedUse:   rec.IntendedUse,
		FrameMaterial: rec.FrameMaterial,
		Suspension:    rec.Suspension,
		Gears:         rec.Gears,
		WeightKG:      rec.WeightKG,
	}

	present := 0
	for _, f := range []*int{rec.MotorPowerW, rec.BatteryCapacityWh, rec.RangeKM} {
		if f != nil {
			present++
		}
	}
	switch present {
	case 0:
	case 3:
		p.Powertrain = &core.Powertrain{
			MotorPowerW:       *rec.MotorPowerW,
			BatteryCapacityWh: *rec.BatteryCapacityWh,
			RangeKM:           *rec.RangeKM,
		}
	default:
		return nil, fmt.Errorf("incomplete powertrain: %d of 3 fields present", present)
	}

	if rec.MaxLoadKG != nil {
		p.Cargo = &core.Cargo{MaxLoadKG: *rec.MaxLoadKG}
	}

	if err := core.ValidateProduct(p); err != nil {
		return nil, err
	}
	return p, nil
}
