package importer

// BookmarkEntry is the property list of one bookmark.
type BookmarkEntry struct {
	Icon        string `yaml:"icon"`
	Abbr        string `yaml:"abbr"`
	Href        string `yaml:"href"`
	Description string `yaml:"description"`
}

// BookmarkGroup maps a group name to its bookmarks.
// The YAML structure is: - GroupName: [ - BookmarkName: [{ icon, abbr, href }] ]
// Each bookmark name maps to a list with a single entry holding the properties.
type BookmarkGroup map[string][]map[string][]BookmarkEntry

// BookmarksConfig is the root of a bookmarks.yaml document.
type BookmarksConfig []BookmarkGroup
