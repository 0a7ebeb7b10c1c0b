// Copyright 2025 Pedalworks Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateProduct validates a Product according to domain rules.
//
// Validation rules:
//   - ID, Name and Category must not be empty
//   - PriceEUR must be positive
//   - Powertrain, when present, must have all fields positive
//   - Cargo, when present, must have a positive max load
//
// NOT validated:
//   - Brand, FrameMaterial, Suspension (free-form, may be empty)
//   - Gears, WeightKG (zero is unusual but not rejected)
func ValidateProduct(p *Product) error {
	if p == nil {
		return fmt.Errorf("%w: product is nil", ErrInvalidProduct)
	}

	if p.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrEmptyProductID)
	}

	if p.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrEmptyProductName)
	}

	if p.Category == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrEmptyCategory)
	}

	if p.PriceEUR <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrInvalidPrice)
	}

	if p.Powertrain != nil {
		pt := p.Powertrain
		if pt.MotorPowerW <= 0 || pt.BatteryCapacityWh <= 0 || pt.RangeKM <= 0 {
			return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrInvalidPowertrain)
		}
	}

	if p.Cargo != nil && p.Cargo.MaxLoadKG <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProduct, ErrInvalidCargo)
	}

	return nil
}
