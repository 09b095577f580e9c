package domain

import "time"

// Link represents a bookmark owned by exactly one user.
//
// A Link is only ever visible to its owner. The owner check is the
// storage layer's access policy, not something callers enforce.
type Link struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is assigned by the store on insert.
	ID string `json:"id"`

	// Owner is the user id of the session that created the link.
	Owner string `json:"owner"`

	// ─────────────────────────────
	// Description (mutable via edit)
	// ─────────────────────────────

	// Title is the display name. Never empty.
	Title string `json:"title"`

	// URL is the bookmarked destination.
	// Example: https://leetcode.com
	URL string `json:"url"`

	// Username is the account handle on the destination, if any.
	Username string `json:"username,omitempty"`

	// Category is one of the five fixed categories.
	Category Category `json:"category"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// Icon names a predefined platform icon. Empty reads as IconWebsite.
	Icon Icon `json:"icon,omitempty"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is set once at creation and is the only sort key.
	CreatedAt time.Time `json:"createdAt"`
}

// EffectiveIcon returns the icon to display for the link.
func (l Link) EffectiveIcon() Icon {
	if l.Icon == "" {
		return IconWebsite
	}
	return l.Icon
}

// LinkInput is the user-supplied part of a Link, used on create.
type LinkInput struct {
	Title       string   `json:"title" validate:"required"`
	URL         string   `json:"url" validate:"required,url"`
	Username    string   `json:"username,omitempty"`
	Category    Category `json:"category" validate:"required,category"`
	Description string   `json:"description,omitempty"`
	Icon        Icon     `json:"icon,omitempty" validate:"omitempty,icon"`
}

// LinkPatch carries the mutable fields of a Link. Nil means "leave as is".
// ID, Owner and CreatedAt have no counterpart here on purpose.
type LinkPatch struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=1"`
	URL         *string   `json:"url,omitempty" validate:"omitempty,url"`
	Username    *string   `json:"username,omitempty"`
	Category    *Category `json:"category,omitempty" validate:"omitempty,category"`
	Description *string   `json:"description,omitempty"`
	Icon        *Icon     `json:"icon,omitempty" validate:"omitempty,icon"`
}

// IsEmpty reports whether the patch changes nothing.
func (p LinkPatch) IsEmpty() bool {
	return p.Title == nil && p.URL == nil && p.Username == nil &&
		p.Category == nil && p.Description == nil && p.Icon == nil
}

// Apply returns a copy of l with the patch applied.
func (p LinkPatch) Apply(l Link) Link {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.URL != nil {
		l.URL = *p.URL
	}
	if p.Username != nil {
		l.Username = *p.Username
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Icon != nil {
		l.Icon = *p.Icon
	}
	return l
}

// NewLink builds the record that gets inserted for in.
func NewLink(in LinkInput, owner string, now time.Time) Link {
	icon := in.Icon
	if icon == "" {
		icon = IconWebsite
	}
	return Link{
		Owner:       owner,
		Title:       in.Title,
		URL:         in.URL,
		Username:    in.Username,
		Category:    in.Category,
		Description: in.Description,
		Icon:        icon,
		CreatedAt:   now,
	}
}
