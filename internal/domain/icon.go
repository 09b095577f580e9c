package domain

// Icon tags a predefined platform icon.
type Icon string

const (
	IconGitHub    Icon = "github"
	IconLinkedIn  Icon = "linkedin"
	IconTwitter   Icon = "twitter"
	IconInstagram Icon = "instagram"
	IconFacebook  Icon = "facebook"
	IconYouTube   Icon = "youtube"
	IconWebsite   Icon = "website"
)

type iconOrdinal int

const (
	ordGitHub iconOrdinal = iota
	ordLinkedIn
	ordTwitter
	ordInstagram
	ordFacebook
	ordYouTube
	ordWebsite
	iconCount
)

// IconInfo is the display metadata for an icon.
type IconInfo struct {
	Name  Icon   `json:"name"`
	Label string `json:"label"`
}

var iconTable = [...]IconInfo{
	ordGitHub:    {Name: IconGitHub, Label: "GitHub"},
	ordLinkedIn:  {Name: IconLinkedIn, Label: "LinkedIn"},
	ordTwitter:   {Name: IconTwitter, Label: "Twitter"},
	ordInstagram: {Name: IconInstagram, Label: "Instagram"},
	ordFacebook:  {Name: IconFacebook, Label: "Facebook"},
	ordYouTube:   {Name: IconYouTube, Label: "YouTube"},
	ordWebsite:   {Name: IconWebsite, Label: "Website"},
}

var (
	_ [len(iconTable) - int(iconCount)]struct{}
	_ [int(iconCount) - len(iconTable)]struct{}
)

func (i Icon) ordinal() (iconOrdinal, bool) {
	switch i {
	case IconGitHub:
		return ordGitHub, true
	case IconLinkedIn:
		return ordLinkedIn, true
	case IconTwitter:
		return ordTwitter, true
	case IconInstagram:
		return ordInstagram, true
	case IconFacebook:
		return ordFacebook, true
	case IconYouTube:
		return ordYouTube, true
	case IconWebsite:
		return ordWebsite, true
	default:
		return 0, false
	}
}

// Valid reports whether i is a known icon.
func (i Icon) Valid() bool {
	_, ok := i.ordinal()
	return ok
}

// Info returns the metadata of i.
func (i Icon) Info() (IconInfo, bool) {
	ord, ok := i.ordinal()
	if !ok {
		return IconInfo{}, false
	}
	return iconTable[ord], true
}

// Icons returns the icon table in display order.
func Icons() []IconInfo {
	out := make([]IconInfo, len(iconTable))
	copy(out, iconTable[:])
	return out
}
