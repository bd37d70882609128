// Package classify contains the deterministic keyword classifiers shared by
// the router, the safety screen and the agent hint builders. Every call site
// goes through the same ordered rule engine so tier and category semantics
// stay consistent.
package classify

import "strings"

// Rule is one labeled keyword set. Matching is case-insensitive substring
// matching over the raw text.
type Rule struct {
	Label    string
	Keywords []string
}

// RuleSet is an ordered list of rules. Order is significant: FirstMatch
// returns the first rule with any hit, and scoring iterates in registration
// order so ties resolve deterministically.
type RuleSet []Rule

// FirstMatch scans rules in order and returns the label of the first rule
// with at least one keyword hit.
func (rs RuleSet) FirstMatch(text string) (string, bool) {
	t := strings.ToLower(text)
	for _, r := range rs {
		if containsAny(t, r.Keywords) {
			return r.Label, true
		}
	}
	return "", false
}

// MatchedLabels returns the labels of every rule with at least one hit,
// in registration order.
func (rs RuleSet) MatchedLabels(text string) []string {
	t := strings.ToLower(text)
	var labels []string
	for _, r := range rs {
		if containsAny(t, r.Keywords) {
			labels = append(labels, r.Label)
		}
	}
	return labels
}

// Score counts keyword hits per rule. Labels with zero hits are omitted.
func (rs RuleSet) Score(text string) map[string]int {
	t := strings.ToLower(text)
	scores := make(map[string]int)
	for _, r := range rs {
		if n := countHits(t, r.Keywords); n > 0 {
			scores[r.Label] = n
		}
	}
	return scores
}

// Best returns the label with the highest hit count, resolving ties in favor
// of the earliest-registered rule.
func (rs RuleSet) Best(text string) (string, int) {
	t := strings.ToLower(text)
	bestLabel, bestCount := "", 0
	for _, r := range rs {
		if n := countHits(t, r.Keywords); n > bestCount {
			bestLabel, bestCount = r.Label, n
		}
	}
	return bestLabel, bestCount
}

func containsAny(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

func countHits(lowered string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			n++
		}
	}
	return n
}
