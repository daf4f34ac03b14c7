// Copyright 2026 Nexusworks
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

// ValidateEntity validates an Entity according to domain rules.
//
// Validation rules:
//   - Id must not be empty (assigned upstream or via IDFromContent)
//   - Type must be a valid EntityType
//   - Name must not be empty
//   - Duration bounds must be non-negative and ordered
//
// NOT validated (populated by the ingestion pipeline):
//   - Text (can be empty until the representation builder runs)
//   - Vector (can be empty until the embedding processor runs)
func ValidateEntity(entity *Entity) error {
	if entity == nil {
		return fmt.Errorf("%w: entity is nil", ErrInvalidEntity)
	}

	if entity.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, ErrEmptyEntityId)
	}

	if err := ValidateEntityType(entity.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	if entity.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, ErrEmptyEntityName)
	}

	if err := ValidateDurationRange(entity.Attributes.Duration); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}

	return nil
}

// ValidateEntityType validates that an EntityType has a valid value.
func ValidateEntityType(t EntityType) error {
	if t != EntityTypeIndividual && t != EntityTypeOrganization && t != EntityTypeProjectCall {
		return fmt.Errorf("%w: value %d", ErrInvalidEntityType, t)
	}
	return nil
}

// ValidateDurationRange validates that a DurationRange has non-negative,
// ordered bounds. The zero range is valid and means unspecified.
func ValidateDurationRange(d DurationRange) error {
	if d.IsZero() {
		return nil
	}
	if d.MinMonths < 0 || d.MaxMonths < 0 || d.MinMonths > d.MaxMonths {
		return fmt.Errorf("%w: [%d,%d]", ErrInvalidDurationRange, d.MinMonths, d.MaxMonths)
	}
	return nil
}
