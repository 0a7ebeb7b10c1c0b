package core

import (
	"strconv"
	"strings"
)

// ProductText builds the searchable text representation of a product.
// Tokens appear in a fixed order and the result is a pure function of the
// record, so identical products always yield byte-identical text. Optional
// extensions contribute tokens only when present; absence adds nothing, so
// no placeholder text pollutes the vector space.
func ProductText(p *Product) string {
	parts := []string{
		p.Name,
		p.Category,
		p.Brand,
		"€" + formatNumber(p.PriceEUR),
		strings.Join(p.IntendedUse, " "),
		p.FrameMaterial,
		p.Suspension,
		strconv.Itoa(p.Gears) + " gears",
		formatNumber(p.WeightKG) + " kg",
	}

	if p.Powertrain != nil {
		parts = append(parts,
			strconv.Itoa(p.Powertrain.MotorPowerW)+"W motor",
			strconv.Itoa(p.Powertrain.BatteryCapacityWh)+"Wh battery",
			strconv.Itoa(p.Powertrain.RangeKM)+"km range",
		)
	}

	if p.Cargo != nil {
		parts = append(parts, strconv.Itoa(p.Cargo.MaxLoadKG)+"kg max load")
	}

	return NormalizeSearchText(strings.Join(parts, " "))
}

// NormalizeSearchText canonicalizes text before it is embedded. It is the
// single normalization pipeline shared by index-time product texts and
// query-time search input; routing both through the same function keeps the
// vector space symmetric between the two.
func NormalizeSearchText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
