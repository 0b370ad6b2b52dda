// ParPass ML API - Collaborative-Filtering Course Recommendations
// Copyright 2026 ParPass
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parpass/caddie

// Package recommend implements the collaborative-filtering scoring engine.
//
// For a known member, each unplayed eligible course is scored as the dot
// product of the member's similarity vector with the course's interaction
// column. Members without an interaction history get the fallback list
// instead. The engine performs no I/O and holds no mutable state, so a
// single Engine may serve concurrent requests without coordination.
package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/parpass/caddie/internal/logging"
	"github.com/parpass/caddie/internal/model"
)

// Engine scores courses for members against the loaded model store.
type Engine struct {
	cfg    Config
	store  *model.Store
	logger zerolog.Logger
}

// NewEngine creates a scoring engine backed by the given store.
func NewEngine(cfg Config, store *model.Store) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("store must not be nil")
	}

	return &Engine{
		cfg:    cfg,
		store:  store,
		logger: logging.WithComponent("recommend"),
	}, nil
}

// Recommend returns up to limit ranked course recommendations for the
// member. It never returns an error: unknown members degrade to the
// fallback list or an empty result.
func (e *Engine) Recommend(memberID string, limit int) []Recommendation {
	memberID = strings.TrimSpace(memberID)
	if limit < 0 {
		limit = 0
	}

	// A member without an interaction-matrix row is unknown to the
	// model; serve the fallback list.
	if !e.store.HasInteractions(memberID) {
		return e.Fallback(limit)
	}

	// In the matrix but not in the member table: nothing to recommend.
	// This indicates a stale artifact, not a request error.
	member, ok := e.store.MemberByID(memberID)
	if !ok {
		e.logger.Debug().
			Str("member_id", memberID).
			Msg("Member has interactions but no metadata; returning empty result")
		return []Recommendation{}
	}

	scored := e.scoreCandidates(member)

	// Ranking uses the raw sums; rounding happens only on the returned
	// records, so courses in the same rounding bucket still rank by true
	// score. Stable sort keeps course-column order for exactly equal
	// scores, so ties rank deterministically.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	for i := range scored {
		scored[i].Score = round2(scored[i].Score)
		scored[i].Reason = e.explain(memberID, scored[i].ID)
	}

	return scored
}

// scoreCandidates scores every eligible unplayed course for the member.
func (e *Engine) scoreCandidates(member model.Member) []Recommendation {
	var results []Recommendation

	for _, courseID := range e.store.CourseColumns() {
		// Already played courses never reappear as recommendations.
		if e.store.InteractionCount(member.ID, courseID) > 0 {
			continue
		}

		// Matrix columns without course metadata are skipped silently;
		// the debug log keeps artifact drift observable.
		course, ok := e.store.CourseByID(courseID)
		if !ok {
			e.logger.Debug().
				Str("course_id", courseID).
				Msg("Interaction column has no course metadata; skipping")
			continue
		}

		// Premium courses are invisible to standard members, not merely
		// ranked lower.
		if !member.Tier.CanAccess(course.TierRequired) {
			continue
		}

		results = append(results, Recommendation{
			ID:           course.ID,
			Name:         course.Name,
			City:         course.City,
			State:        course.State,
			TierRequired: course.TierRequired,
			Score:        e.score(member.ID, courseID),
		})
	}

	return results
}

// score computes the raw collaborative-filtering score for one course: the
// dot product of the member's similarity vector with the course's
// interaction column over all other members. Callers round for display.
func (e *Engine) score(memberID, courseID string) float64 {
	var sum float64
	for _, other := range e.store.MemberIDs() {
		if other == memberID {
			continue
		}
		sum += e.store.Similarity(memberID, other) * e.store.InteractionCount(other, courseID)
	}
	return sum
}

// explain builds the member-facing reason string for a recommended course:
// the first ExplanationNames sufficiently similar members who played it,
// in similarity-vector order, or ReasonGeneric when none qualify.
func (e *Engine) explain(memberID, courseID string) string {
	var names []string
	for _, other := range e.store.MemberIDs() {
		if other == memberID {
			continue
		}
		if e.store.Similarity(memberID, other) <= e.cfg.SimilarityThreshold {
			continue
		}
		if e.store.InteractionCount(other, courseID) <= 0 {
			continue
		}
		names = append(names, e.store.DisplayName(other))
		if len(names) == e.cfg.ExplanationNames {
			break
		}
	}

	if len(names) == 0 {
		return ReasonGeneric
	}
	return "Played by: " + strings.Join(names, ", ")
}

// Fallback returns up to limit courses in catalog order, each with score 0
// and ReasonFallback. This is a placeholder policy for members with no
// interaction history, not a true popularity ranking.
func (e *Engine) Fallback(limit int) []Recommendation {
	catalog := e.store.Courses()
	if limit < 0 {
		limit = 0
	}
	if limit > len(catalog) {
		limit = len(catalog)
	}

	results := make([]Recommendation, 0, limit)
	for _, course := range catalog[:limit] {
		results = append(results, Recommendation{
			ID:           course.ID,
			Name:         course.Name,
			City:         course.City,
			State:        course.State,
			TierRequired: course.TierRequired,
			Score:        0,
			Reason:       ReasonFallback,
		})
	}

	return results
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
