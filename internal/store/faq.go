package store

import "strings"

// FAQ is one frequently asked question. Entries are identified by
// their 1-based position in the list, there is no uniqueness
// constraint on questions
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// DefaultFAQ is the default content of the FAQ document
func DefaultFAQ() []FAQ {
	return []FAQ{}
}

// FAQMatch is a search hit, carrying the 1-based index the entry has
// in the full list so users can feed it back to the remove command
type FAQMatch struct {
	Index int
	Entry FAQ
}

// SearchFAQ returns the entries whose question or answer contains the
// keyword, case-insensitively
func SearchFAQ(entries []FAQ, keyword string) []FAQMatch {
	keyword = strings.ToLower(keyword)
	var matches []FAQMatch
	for i, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Question), keyword) ||
			strings.Contains(strings.ToLower(entry.Answer), keyword) {
			matches = append(matches, FAQMatch{Index: i + 1, Entry: entry})
		}
	}
	return matches
}
