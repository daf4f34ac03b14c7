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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEntity indicates an Entity failed validation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrEmptyEntityId indicates the Id field is empty.
	ErrEmptyEntityId = errors.New("entity id cannot be empty")

	// ErrInvalidEntityType indicates an invalid EntityType value.
	ErrInvalidEntityType = errors.New("invalid entity type")

	// ErrEmptyEntityName indicates the Name field is empty.
	ErrEmptyEntityName = errors.New("entity name cannot be empty")

	// ErrInvalidDurationRange indicates a DurationRange with negative or
	// inverted bounds.
	ErrInvalidDurationRange = errors.New("invalid duration range")
)
