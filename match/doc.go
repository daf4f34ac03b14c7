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


// Package match implements the recommendation engine that pairs
// individuals and organizations with project opportunities.
//
// A match query runs in three stages. Retrieval asks the similarity
// index for candidates of the configured target type, overfetching to
// leave headroom for filtering. Eligibility applies hard rules that no
// score can overcome: same-type pairings, inactive project calls and
// strictly opposed delivery modes are rejected outright, while missing
// attributes fail open unless configured as mandatory. Scoring then
// blends five weighted factors (semantic similarity, applicant type
// fit, preference overlap, delivery compatibility and duration overlap)
// into a composite in [0, 1], which also determines a coarse confidence
// band and a short list of human-readable reasons.
//
// Results are deterministic for a fixed store: candidates are ordered
// by descending composite score with ties broken by ascending target
// id.
package match
