package redis

import "strconv"

const (
	// KeyBookmarks is the sorted set of bookmarked prompt ids (score = bookmark time, unix ms)
	KeyBookmarks = "promptdeck:bookmarks"
	// KeyPrefixCustom is the prefix for custom prompt keys
	KeyPrefixCustom = "promptdeck:custom:"
	// KeyAllCustom is the sorted set of custom prompt ids (score = creation time, unix ms)
	KeyAllCustom = "promptdeck:custom:all"
	// KeyCustomSeq is the counter used to allocate custom prompt ids
	KeyCustomSeq = "promptdeck:custom:seq"
	// KeyCatalogSnapshot holds the last catalog that loaded cleanly
	KeyCatalogSnapshot = "promptdeck:catalog:snapshot"
)

// BookmarksKey returns the Redis key for the bookmark set
func BookmarksKey() string {
	return KeyBookmarks
}

// CustomKey returns the Redis key for a custom prompt by ID
func CustomKey(id int) string {
	return KeyPrefixCustom + strconv.Itoa(id)
}

// AllCustomKey returns the key for the set of all custom prompt IDs
func AllCustomKey() string {
	return KeyAllCustom
}

// CustomSeqKey returns the key of the custom id counter
func CustomSeqKey() string {
	return KeyCustomSeq
}

// SnapshotKey returns the key of the catalog snapshot
func SnapshotKey() string {
	return KeyCatalogSnapshot
}
