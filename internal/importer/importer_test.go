package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/links"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/store/memory"
)

const sampleYAML = `---
- Coding Profiles:
    - GitHub:
        - abbr: GH
          href: https://github.com/ada
          icon: si-github
    - LeetCode:
        - href: https://leetcode.com/ada
- ai:
    - ChatGPT:
        - href: https://chat.openai.com
          description: assistant
- Media:
    - YouTube:
        - icon: youtube.svg
          href: https://youtube.com
    - Secret:
        - href: {{HOMEPAGE_VAR_SECRET_URL}}
`

func TestParse(t *testing.T) {
	config, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Len(t, config, 3)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("- Coding: [unclosed"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	config, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, config, 3)

	_, err = LoadFile("/nonexistent/bookmarks.yaml")
	assert.Error(t, err)
}

func TestReadTooLarge(t *testing.T) {
	_, err := Read(strings.NewReader(strings.Repeat("#", MaxDocumentSize+1)))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestStripTemplateVariables(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single", input: "href: {{HOMEPAGE_VAR_URL}}", want: `href: ""`},
		{name: "multiple", input: "{{A}} {{B}}", want: `"" ""`},
		{name: "none", input: "href: https://x.dev", want: "href: https://x.dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(stripTemplateVariables([]byte(tt.input))); got != tt.want {
				t.Errorf("stripTemplateVariables() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMap(t *testing.T) {
	config, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	inputs, skipped := NewMapper().Map(config, domain.CategoryOthers)

	require.Len(t, inputs, 4)
	assert.Equal(t, domain.LinkInput{
		Title: "GitHub", URL: "https://github.com/ada", Category: domain.CategoryCoding, Icon: domain.IconGitHub,
	}, inputs[0])
	assert.Equal(t, "LeetCode", inputs[1].Title)
	assert.Equal(t, domain.IconWebsite, inputs[1].Icon)
	assert.Equal(t, domain.CategoryAI, inputs[2].Category)
	assert.Equal(t, "assistant", inputs[2].Description)
	assert.Equal(t, domain.CategoryOthers, inputs[3].Category, "unknown group falls back")
	assert.Equal(t, domain.IconYouTube, inputs[3].Icon)

	require.Len(t, skipped, 1)
	assert.Equal(t, "Secret", skipped[0].Name)
	assert.Contains(t, skipped[0].Reason, "url")
}

func TestMapFallback(t *testing.T) {
	config, err := Parse([]byte("- Misc:\n    - Docs:\n        - href: https://docs.dev\n"))
	require.NoError(t, err)

	inputs, _ := NewMapper().Map(config, domain.CategoryCourses)
	require.Len(t, inputs, 1)
	assert.Equal(t, domain.CategoryCourses, inputs[0].Category)

	inputs, _ = NewMapper().Map(config, "bogus")
	require.Len(t, inputs, 1)
	assert.Equal(t, domain.CategoryOthers, inputs[0].Category)
}

func TestMapIcon(t *testing.T) {
	tests := map[string]domain.Icon{
		"github.svg":           domain.IconGitHub,
		"si-github":            domain.IconGitHub,
		"mdi-linkedin-#0077B5": domain.IconLinkedIn,
		"https://cdn/x.png":    domain.IconTwitter,
		"YouTube.PNG":          domain.IconYouTube,
		"adguard-home.svg":     domain.IconWebsite,
		"":                     domain.IconWebsite,
	}

	for ref, want := range tests {
		if got := mapIcon(ref); got != want {
			t.Errorf("mapIcon(%q) = %q, want %q", ref, got, want)
		}
	}
}

func TestImport(t *testing.T) {
	repo := links.NewRepository(memory.New(), logger.Nop())
	imp := New(repo, logger.Nop())
	s := &domain.Session{UserID: "ada"}
	ctx := context.Background()

	config, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	res, err := imp.Import(ctx, s, config, domain.CategoryOthers)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Imported)
	assert.Len(t, res.Links, 4)
	assert.Len(t, res.Skipped, 1)

	coding, err := repo.List(ctx, domain.FilterOf(domain.CategoryCoding), s)
	require.NoError(t, err)
	assert.Len(t, coding, 2)
}

func TestImportRequiresSession(t *testing.T) {
	imp := New(links.NewRepository(memory.New(), logger.Nop()), logger.Nop())

	_, err := imp.Import(context.Background(), nil, BookmarksConfig{}, domain.CategoryOthers)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

var fixedTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type flakyCreator struct {
	left int
}

func (f *flakyCreator) Create(_ context.Context, in domain.LinkInput, s *domain.Session) (domain.Link, error) {
	if f.left == 0 {
		return domain.Link{}, &domain.MutationError{Op: "create", Err: errors.New("quota exceeded")}
	}
	f.left--
	return domain.NewLink(in, s.UserID, fixedTime), nil
}

func TestImportStopsAtFirstFailure(t *testing.T) {
	imp := New(&flakyCreator{left: 2}, logger.Nop())

	config, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	res, err := imp.Import(context.Background(), &domain.Session{UserID: "ada"}, config, domain.CategoryOthers)

	var mutErr *domain.MutationError
	require.ErrorAs(t, err, &mutErr)
	assert.Equal(t, 2, res.Imported)
	assert.Len(t, res.Links, 2)
}
