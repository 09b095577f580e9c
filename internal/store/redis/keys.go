package redis

import "github.com/MrSnakeDoc/linkvault/internal/domain"

const (
	// KeyPrefixLink is the prefix for link rows
	KeyPrefixLink = "linkvault:link:"
	// KeyPrefixOwner is the prefix for per-owner sorted sets
	KeyPrefixOwner = "linkvault:owner:"
	// KeyPrefixAccount is the prefix for accounts, keyed by lower-cased email
	KeyPrefixAccount = "linkvault:account:"
	// KeyPrefixRevoked is the prefix for signed-out token ids
	KeyPrefixRevoked = "linkvault:revoked:"
)

// LinkKey returns the Redis key for a link row
func LinkKey(id string) string {
	return KeyPrefixLink + id
}

// OwnerLinksKey returns the sorted set of all link ids of an owner,
// scored by creation time
func OwnerLinksKey(owner string) string {
	return KeyPrefixOwner + owner + ":links"
}

// OwnerCategoryKey returns the sorted set of an owner's link ids in one category
func OwnerCategoryKey(owner string, c domain.Category) string {
	return KeyPrefixOwner + owner + ":cat:" + string(c)
}

// AccountKey returns the Redis key for an account
func AccountKey(email string) string {
	return KeyPrefixAccount + email
}

// RevokedKey returns the Redis key marking a token id as signed out
func RevokedKey(tokenID string) string {
	return KeyPrefixRevoked + tokenID
}
