// ParPass ML API - Collaborative-Filtering Course Recommendations
// Copyright 2026 ParPass
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parpass/caddie

package model

// Tier is a membership access level. Premium courses are visible only to
// premium members.
type Tier string

// Membership tiers.
const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// Valid reports whether the tier is a known value.
func (t Tier) Valid() bool {
	return t == TierStandard || t == TierPremium
}

// CanAccess reports whether a member of tier t may see a course requiring
// the given tier. Premium members see everything; standard members see
// only standard courses.
func (t Tier) CanAccess(required Tier) bool {
	if required == TierPremium {
		return t == TierPremium
	}
	return true
}

// Member is a loyalty program participant as known to the model.
type Member struct {
	ID   string `json:"id"`
	Tier Tier   `json:"tier"`
}

// Course is a recommendable golf course.
type Course struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	City         string `json:"city"`
	State        string `json:"state"`
	TierRequired Tier   `json:"tier_required"`
}
