// ParPass ML API - Collaborative-Filtering Course Recommendations
// Copyright 2026 ParPass
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parpass/caddie

// Package model loads and holds the precomputed recommendation model: the
// member-course interaction matrix, the member-similarity matrix, member
// and course metadata, and the member display-name lookup.
//
// The model is produced by an offline training process and shipped to the
// service as a JSON artifact. The store is populated once at startup and
// is read-only afterwards, so request handlers may read it concurrently
// without locking.
package model

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"github.com/parpass/caddie/internal/logging"
)

// DefaultDisplayName is used when a member has no display-name entry.
const DefaultDisplayName = "Member"

// Artifact is the on-disk shape of the model file. The ordered member and
// course lists fix the iteration order of the matrices; the maps carry the
// actual values.
type Artifact struct {
	MatrixMembers []string                      `json:"matrix_members"`
	CourseColumns []string                      `json:"course_columns"`
	Interactions  map[string]map[string]float64 `json:"interactions"`
	Similarity    map[string]map[string]float64 `json:"similarity"`
	Members       []Member                      `json:"members"`
	Courses       []Course                      `json:"courses"`
	MemberNames   map[string]string             `json:"member_names"`
}

// Store holds the loaded model. The zero value is a valid unloaded store:
// Loaded() reports false and all lookups miss.
type Store struct {
	loaded bool

	// matrixMembers and courseColumns fix the deterministic iteration
	// order of the interaction and similarity matrices.
	matrixMembers []string
	courseColumns []string

	interactions map[string]map[string]float64
	similarity   map[string]map[string]float64

	members map[string]Member
	courses map[string]Course
	catalog []Course
	names   map[string]string
}

// NewUnloaded returns an empty, unloaded store.
func NewUnloaded() *Store {
	return &Store{}
}

// Load reads the model artifact at path and returns a populated store.
//
// A missing artifact is a recoverable startup condition, not a failure:
// Load returns an unloaded store and no error, and the service reports
// "model not loaded" until it is restarted with an artifact present. A
// present-but-malformed artifact is a real error.
func Load(path string) (*Store, error) {
	logger := logging.WithComponent("model")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn().
				Str("path", path).
				Msg("Model artifact not found; starting with unloaded store")
			return NewUnloaded(), nil
		}
		return nil, fmt.Errorf("failed to read model artifact %s: %w", path, err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact %s: %w", path, err)
	}

	s, err := New(&a)
	if err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}

	logger.Info().
		Str("path", path).
		Int("matrix_members", len(s.matrixMembers)).
		Int("courses", len(s.catalog)).
		Int("members", len(s.members)).
		Msg("Model loaded")

	return s, nil
}

// New builds a Store from a decoded artifact, filling in the ordered
// lists when the artifact omits them.
func New(a *Artifact) (*Store, error) {
	s := &Store{
		loaded:        true,
		matrixMembers: a.MatrixMembers,
		courseColumns: a.CourseColumns,
		interactions:  a.Interactions,
		similarity:    a.Similarity,
		members:       make(map[string]Member, len(a.Members)),
		courses:       make(map[string]Course, len(a.Courses)),
		catalog:       a.Courses,
		names:         a.MemberNames,
	}

	if s.interactions == nil {
		s.interactions = map[string]map[string]float64{}
	}
	if s.similarity == nil {
		s.similarity = map[string]map[string]float64{}
	}
	if s.names == nil {
		s.names = map[string]string{}
	}

	for _, m := range a.Members {
		if !m.Tier.Valid() {
			return nil, fmt.Errorf("member %q has unknown tier %q", m.ID, m.Tier)
		}
		s.members[m.ID] = m
	}
	for _, c := range a.Courses {
		if !c.TierRequired.Valid() {
			return nil, fmt.Errorf("course %q has unknown tier_required %q", c.ID, c.TierRequired)
		}
		s.courses[c.ID] = c
	}

	// Artifacts normally carry explicit row and column orders. When they
	// are absent, derive a sorted order from the matrix keys so iteration
	// stays deterministic.
	if len(s.matrixMembers) == 0 && len(s.interactions) > 0 {
		for id := range s.interactions {
			s.matrixMembers = append(s.matrixMembers, id)
		}
		sort.Strings(s.matrixMembers)
	}
	if len(s.courseColumns) == 0 {
		seen := map[string]struct{}{}
		for _, row := range s.interactions {
			for id := range row {
				seen[id] = struct{}{}
			}
		}
		for id := range seen {
			s.courseColumns = append(s.courseColumns, id)
		}
		sort.Strings(s.courseColumns)
	}

	return s, nil
}

// Loaded reports whether the model has been loaded. Request handlers check
// this at the request boundary and answer 503 while it is false.
func (s *Store) Loaded() bool {
	return s.loaded
}

// MemberByID returns member metadata from the member table.
func (s *Store) MemberByID(id string) (Member, bool) {
	m, ok := s.members[id]
	return m, ok
}

// CourseByID returns course metadata from the course table.
func (s *Store) CourseByID(id string) (Course, bool) {
	c, ok := s.courses[id]
	return c, ok
}

// HasInteractions reports whether the member has a row in the interaction
// matrix. Members without a row are unknown to the model and get the
// fallback recommendation list.
func (s *Store) HasInteractions(memberID string) bool {
	_, ok := s.interactions[memberID]
	return ok
}

// InteractionCount returns the play count for (member, course), or 0 when
// either is absent from the matrix.
func (s *Store) InteractionCount(memberID, courseID string) float64 {
	return s.interactions[memberID][courseID]
}

// Similarity returns the similarity score between two members, or 0 when
// the pair is absent from the similarity matrix.
func (s *Store) Similarity(a, b string) float64 {
	return s.similarity[a][b]
}

// DisplayName returns the member's display name, or DefaultDisplayName
// when the name lookup has no entry.
func (s *Store) DisplayName(memberID string) string {
	if name, ok := s.names[memberID]; ok && name != "" {
		return name
	}
	return DefaultDisplayName
}

// MemberIDs returns the interaction-matrix row order. Callers must not
// mutate the returned slice.
func (s *Store) MemberIDs() []string {
	return s.matrixMembers
}

// CourseColumns returns the interaction-matrix column order. Callers must
// not mutate the returned slice.
func (s *Store) CourseColumns() []string {
	return s.courseColumns
}

// Courses returns the course catalog in artifact order. Callers must not
// mutate the returned slice.
func (s *Store) Courses() []Course {
	return s.catalog
}

// MemberCount returns the number of members in the member table.
func (s *Store) MemberCount() int {
	return len(s.members)
}

// CourseCount returns the number of courses in the catalog.
func (s *Store) CourseCount() int {
	return len(s.catalog)
}
