package moderation

import "strings"

// KeywordGroup is one weighted group of the scoring table. The weight is
// added once per occurrence of any of the group's keywords.
type KeywordGroup struct {
	Name     string
	Weight   float64
	Keywords []string
}

// DefaultKeywordGroups returns the scoring table used in the reference
// deployment. The scorer is an intentionally simple deterministic model;
// identical input always yields an identical score and keyword list.
func DefaultKeywordGroups() []KeywordGroup {
	return []KeywordGroup{
		{
			Name:   "threats",
			Weight: 0.4,
			Keywords: []string{
				"kill you", "hurt you", "beat you", "come after you", "make you pay",
			},
		},
		{
			Name:   "drug-solicitation",
			Weight: 0.5,
			Keywords: []string{
				"hook you up", "got pills", "sell you some", "scored some",
			},
		},
		{
			Name:   "substance-glorification",
			Weight: 0.2,
			Keywords: []string{
				"get high", "get wasted", "just one hit", "worth the relapse",
			},
		},
		{
			Name:   "harassment",
			Weight: 0.25,
			Keywords: []string{
				"worthless", "pathetic", "hate you", "nobody wants you", "waste of space",
			},
		},
	}
}

// Scorer maps free text to a toxicity score in [0, 1] plus the list of
// matched keywords. The table is fixed at construction time so tests can
// run against alternate tables.
type Scorer struct {
	groups []KeywordGroup
}

func NewScorer(groups []KeywordGroup) *Scorer {
	return &Scorer{groups: groups}
}

// Score lowercases the text and adds each group's weight once per
// occurrence of each of its keywords. The running total is clamped to
// [0, 1]. Empty or whitespace-only text scores exactly 0.
func (s *Scorer) Score(text string) float64 {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return 0
	}

	var score float64
	for _, g := range s.groups {
		for _, kw := range g.Keywords {
			if n := strings.Count(lowered, kw); n > 0 {
				score += float64(n) * g.Weight
			}
		}
	}

	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}

// MatchedKeywords returns the literal keywords present in the text,
// computed independently over the same table. Used for audit trails on
// queue entries and reports.
func (s *Scorer) MatchedKeywords(text string) []string {
	lowered := strings.ToLower(text)

	matched := make([]string, 0)
	for _, g := range s.groups {
		for _, kw := range g.Keywords {
			if strings.Contains(lowered, kw) {
				matched = append(matched, kw)
			}
		}
	}
	return matched
}
