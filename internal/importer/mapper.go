package importer

import (
	"errors"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

// Skipped describes an entry that could not become a link.
type Skipped struct {
	Group  string `json:"group"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Mapper converts a bookmarks document to link inputs.
type Mapper struct {
	validate *validator.Validate
}

// NewMapper creates a Mapper.
func NewMapper() *Mapper {
	return &Mapper{validate: domain.NewValidator()}
}

// Map converts config to link inputs in document order. Groups whose
// name matches a category id or title land in that category, the others
// in fallback. Entries without a usable URL are reported as skipped.
func (m *Mapper) Map(config BookmarksConfig, fallback domain.Category) ([]domain.LinkInput, []Skipped) {
	if !fallback.Valid() {
		fallback = domain.CategoryOthers
	}

	inputs := make([]domain.LinkInput, 0)
	skipped := make([]Skipped, 0)

	for _, group := range config {
		for groupName, bookmarks := range group {
			category, ok := domain.ParseCategory(groupName)
			if !ok {
				category = fallback
			}

			for _, bookmark := range bookmarks {
				for name, entries := range bookmark {
					// Each bookmark has a list with a single entry
					if len(entries) == 0 {
						skipped = append(skipped, Skipped{Group: groupName, Name: name, Reason: "no properties"})
						continue
					}
					entry := entries[0]

					in := domain.LinkInput{
						Title:       strings.TrimSpace(name),
						URL:         strings.TrimSpace(entry.Href),
						Category:    category,
						Description: strings.TrimSpace(entry.Description),
						Icon:        mapIcon(entry.Icon),
					}
					if in.Title == "" {
						in.Title = strings.TrimSpace(entry.Abbr)
					}

					if err := m.validate.Struct(in); err != nil {
						skipped = append(skipped, Skipped{Group: groupName, Name: name, Reason: reason(err)})
						continue
					}
					inputs = append(inputs, in)
				}
			}
		}
	}

	return inputs, skipped
}

// mapIcon recognizes platform icons in dashboard icon references such
// as "github.svg", "si-github" or "mdi-linkedin-#0077B5".
func mapIcon(ref string) domain.Icon {
	name := strings.ToLower(strings.TrimSpace(ref))
	name = path.Base(name)
	name = strings.TrimSuffix(name, path.Ext(name))
	for _, prefix := range []string{"si-", "mdi-", "sh-"} {
		name = strings.TrimPrefix(name, prefix)
	}
	if i := strings.IndexByte(name, '-'); i > 0 {
		name = name[:i]
	}

	icon := domain.Icon(name)
	if name == "x" {
		icon = domain.IconTwitter
	}
	if !icon.Valid() {
		return domain.IconWebsite
	}
	return icon
}

func reason(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return strings.ToLower(fe.Field()) + ": failed " + fe.Tag()
	}
	return err.Error()
}
