package domain

import "strings"

// Search returns the links whose title, url, username or description
// contains term, ignoring case. An empty term returns links unchanged.
func Search(links []Link, term string) []Link {
	if term == "" {
		return links
	}
	needle := strings.ToLower(term)

	out := make([]Link, 0, len(links))
	for _, l := range links {
		if Matches(l, needle) {
			out = append(out, l)
		}
	}
	return out
}

// Matches reports whether l contains the lower-cased needle in one of its
// searchable fields. Unset optional fields never match.
func Matches(l Link, needle string) bool {
	if contains(l.Title, needle) || contains(l.URL, needle) {
		return true
	}
	if l.Username != "" && contains(l.Username, needle) {
		return true
	}
	return l.Description != "" && contains(l.Description, needle)
}

func contains(field, needle string) bool {
	return strings.Contains(strings.ToLower(field), needle)
}
