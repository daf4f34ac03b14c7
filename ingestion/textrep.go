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


package ingestion

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nexusworks/matchpoint/core"
)

// Free text sections are truncated so a single verbose record cannot
// dominate its embedding.
const (
	individualSummaryLimit   = 200
	organizationSummaryLimit = 300
	projectSummaryLimit      = 400
)

// BuildText produces the deterministic embedding-ready representation
// of an entity. Sections are pipe-delimited; empty attributes are
// omitted so sparse records stay compact.
func BuildText(entity *core.Entity) string {
	switch entity.Type {
	case core.EntityTypeOrganization:
		return buildOrganizationText(entity)
	case core.EntityTypeProjectCall:
		return buildProjectText(entity)
	default:
		return buildIndividualText(entity)
	}
}

func buildIndividualText(entity *core.Entity) string {
	attrs := entity.Attributes
	parts := []string{"Profile: " + entity.Name}
	parts = appendSection(parts, "Role", attrs.Profile)
	parts = appendListSection(parts, "Skills", attrs.Skills)
	parts = appendListSection(parts, "Interests", attrs.Interests)
	parts = appendSection(parts, "Location", attrs.Location)
	parts = appendDeliverySection(parts, attrs.Delivery)
	parts = appendListSection(parts, "Seeking", attrs.Preferences)
	parts = appendSummarySection(parts, "Bio", attrs.Summary, individualSummaryLimit)
	return strings.Join(parts, " | ")
}

func buildOrganizationText(entity *core.Entity) string {
	attrs := entity.Attributes
	parts := []string{"Organization: " + entity.Name}
	parts = appendSection(parts, "Type", attrs.Profile)
	parts = appendSection(parts, "Location", attrs.Location)
	parts = appendListSection(parts, "Interests", attrs.Interests)
	parts = appendListSection(parts, "Expertise", attrs.Skills)
	parts = appendDeliverySection(parts, attrs.Delivery)
	parts = appendListSection(parts, "Seeking", attrs.Preferences)
	parts = appendSummarySection(parts, "Description", attrs.Summary, organizationSummaryLimit)
	return strings.Join(parts, " | ")
}

func buildProjectText(entity *core.Entity) string {
	attrs := entity.Attributes
	parts := []string{"Project: " + entity.Name}
	parts = appendListSection(parts, "Topics", attrs.Interests)
	parts = appendListSection(parts, "Required Skills", attrs.Skills)
	if !attrs.Duration.IsZero() {
		parts = append(parts, fmt.Sprintf("Duration: %d-%d months",
			attrs.Duration.MinMonths, attrs.Duration.MaxMonths))
	}
	parts = appendSection(parts, "Location", attrs.Location)
	parts = appendDeliverySection(parts, attrs.Delivery)
	parts = appendSummarySection(parts, "Summary", attrs.Summary, projectSummaryLimit)
	parts = appendListSection(parts, "Applicant Types", attrs.ApplicantTypes)
	return strings.Join(parts, " | ")
}

func appendSection(parts []string, label, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return parts
	}
	return append(parts, label+": "+value)
}

func appendListSection(parts []string, label string, values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) == 0 {
		return parts
	}
	return append(parts, label+": "+strings.Join(cleaned, ", "))
}

func appendDeliverySection(parts []string, mode core.DeliveryMode) []string {
	if mode == core.DeliveryUnknown {
		return parts
	}
	return append(parts, "Delivery: "+mode.String())
}

// appendSummarySection collapses newlines and truncates, skipping
// summaries too short to carry signal.
func appendSummarySection(parts []string, label, summary string, limit int) []string {
	summary = strings.TrimSpace(strings.ReplaceAll(summary, "\n", " "))
	if len(summary) <= 10 {
		return parts
	}
	if len(summary) > limit {
		// Back off to a rune boundary so the cut never splits a
		// multi-byte character.
		cut := limit
		for cut > 0 && !utf8.RuneStart(summary[cut]) {
			cut--
		}
		summary = summary[:cut]
	}
	return append(parts, label+": "+summary)
}
