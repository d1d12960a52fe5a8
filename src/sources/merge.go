package sources

import "sort"

// DefaultMergeCap bounds the merged source list when no cap is configured.
const DefaultMergeCap = 10

// MergeDocs combines up to four candidate pools into a single deduplicated,
// ranked document list:
//
//   - exact:      exact-match document hits
//   - general:    semantic / general document hits
//   - listing:    bare file enumerations, used only when nothing richer exists
//   - normalized: a generic pool that may contain non-doc candidates; only
//     its doc-typed entries participate
//
// The result is deterministic for identical inputs and idempotent: merging
// the merger's own output again yields the same list.
func MergeDocs(exact, general, listing, normalized []Candidate, limit int) []Candidate {
	if limit <= 0 {
		limit = DefaultMergeCap
	}

	primary := make([]Candidate, 0, len(exact)+len(general))
	primary = append(primary, exact...)
	primary = append(primary, general...)

	// Richer evidence supersedes a bare listing.
	if len(primary) == 0 {
		primary = append(primary, listing...)
	}

	pool := primary
	for _, c := range normalized {
		if c.Type == TypeDoc {
			pool = append(pool, c)
		}
	}

	merged := dedupe(pool)

	sort.SliceStable(merged, func(i, j int) bool {
		ri, rj := merged[i].ranked(), merged[j].ranked()
		if ri != rj {
			return ri // ranked before unranked
		}
		return merged[i].scoreOrMin() > merged[j].scoreOrMin()
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// dedupe collapses candidates sharing an identity key, keeping first-seen
// order for the survivors. Candidates without an identity key are skipped.
func dedupe(pool []Candidate) []Candidate {
	out := make([]Candidate, 0, len(pool))
	index := make(map[string]int, len(pool))

	for _, c := range pool {
		key := c.Key()
		if key == "" {
			continue
		}
		at, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, c)
			continue
		}
		if prefer(c, out[at]) {
			out[at] = c
		}
	}
	return out
}

// prefer reports whether challenger should replace incumbent for the same
// identity key. A snippet-bearing candidate always beats one without,
// regardless of score; otherwise the higher score wins and ties keep the
// incumbent (first seen).
func prefer(challenger, incumbent Candidate) bool {
	cs, is := challenger.Snippet != "", incumbent.Snippet != ""
	if cs != is {
		return cs
	}
	return challenger.scoreOrMin() > incumbent.scoreOrMin()
}
