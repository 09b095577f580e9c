package domain

import (
	"testing"
)

func sampleLinks() []Link {
	return []Link{
		{ID: "1", Title: "GitHub", URL: "https://github.com/octocat", Username: "octocat", Category: CategoryCoding},
		{ID: "2", Title: "LeetCode", URL: "https://leetcode.com", Category: CategoryCoding, Description: "daily grind"},
		{ID: "3", Title: "ChatGPT", URL: "https://chat.openai.com", Category: CategoryAI},
	}
}

func ids(links []Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		expected []string
	}{
		{
			name:     "empty term is identity",
			term:     "",
			expected: []string{"1", "2", "3"},
		},
		{
			name:     "case-insensitive title match",
			term:     "github",
			expected: []string{"1"},
		},
		{
			name:     "upper-case term",
			term:     "LEET",
			expected: []string{"2"},
		},
		{
			name:     "url match",
			term:     "openai",
			expected: []string{"3"},
		},
		{
			name:     "username match",
			term:     "OctoCat",
			expected: []string{"1"},
		},
		{
			name:     "description match",
			term:     "grind",
			expected: []string{"2"},
		},
		{
			name:     "substring shared by several links",
			term:     "https://",
			expected: []string{"1", "2", "3"},
		},
		{
			name:     "no match",
			term:     "gitlab",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Search(sampleLinks(), tt.term))
			if !slicesEqual(got, tt.expected) {
				t.Errorf("Search(%q) = %v, want %v", tt.term, got, tt.expected)
			}
		})
	}
}

func TestSearchEmptyTermReturnsSameSlice(t *testing.T) {
	links := sampleLinks()
	got := Search(links, "")
	if len(got) != len(links) || &got[0] != &links[0] {
		t.Error("Search() with empty term should return the input unchanged")
	}
}

func TestSearchUnsetFieldsNeverMatch(t *testing.T) {
	links := []Link{{ID: "1", Title: "a", URL: "b"}}
	if got := Search(links, " "); len(got) != 0 {
		t.Errorf("Search() matched unset fields: %v", got)
	}
}

func TestSearchDoesNotTokenize(t *testing.T) {
	links := []Link{{ID: "1", Title: "Git Hub", URL: "https://example.com"}}
	if got := Search(links, "github"); len(got) != 0 {
		t.Errorf("Search() should be substring-only, got %v", ids(got))
	}
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
