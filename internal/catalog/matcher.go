// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package catalog

import "strings"

// Match resolves a free-text query to a catalog item.
//
// The query is trimmed and lowercased, then tested for substring
// containment against every normalized title in catalog order; the first
// containing title wins. Ties are deliberately broken by insertion
// order, not by match quality: a query like "man" matches whichever
// title containing "man" appears first. Blank queries return not-found
// without scanning the catalog.
func (s *Store) Match(query string) MatchResult {
	q := normalize(query)
	if q == "" {
		return MatchResult{}
	}

	for i, title := range s.normTitles {
		if strings.Contains(title, q) {
			return MatchResult{Found: true, Index: i}
		}
	}
	return MatchResult{}
}

// Suggest returns up to limit titles, in catalog order, whose normalized
// title contains the normalized prefix. Used for autocomplete; unlike
// Match it is not constrained to a single best hit. A blank prefix or a
// non-positive limit yields an empty result.
func (s *Store) Suggest(prefix string, limit int) []string {
	titles := []string{}

	p := normalize(prefix)
	if p == "" || limit <= 0 {
		return titles
	}

	for i, title := range s.normTitles {
		if strings.Contains(title, p) {
			titles = append(titles, s.items[i].Title)
			if len(titles) >= limit {
				break
			}
		}
	}
	return titles
}
