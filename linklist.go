// Package linklist provides a personal link organizer: a small ordered
// collection of bookmarks that can be categorized, searched, sorted,
// imported and exported, persisted as a single JSON blob in a key-value
// store.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, badger/, goquery/).
package linklist
