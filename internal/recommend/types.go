// ParPass ML API - Collaborative-Filtering Course Recommendations
// Copyright 2026 ParPass
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parpass/caddie

package recommend

import "github.com/parpass/caddie/internal/model"

// Reason strings rendered in recommendation explanations.
const (
	// ReasonFallback marks courses served by the fallback policy. The
	// fallback is catalog order, not a real popularity ranking; the
	// label is kept for compatibility with the member-facing app.
	ReasonFallback = "Popular course"

	// ReasonGeneric is used when no sufficiently similar member played
	// the course.
	ReasonGeneric = "Recommended for you"
)

// Recommendation is a single scored course result.
type Recommendation struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	TierRequired model.Tier `json:"tier_required"`

	// Score is the collaborative-filtering score rounded to 2 decimal
	// places. Fallback results always score 0.
	Score float64 `json:"score"`

	// Reason is the member-facing explanation: "Played by: a, b",
	// ReasonGeneric, or ReasonFallback.
	Reason string `json:"reason"`
}
