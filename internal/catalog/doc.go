// Package catalog keeps the local course cache in sync with the remote
// collection.
//
// A Controller owns three persisted slots: the display order (courseIds),
// the course table (courseData) and the "only show favorites" flag
// (onlyShowFavorites). Load always re-fetches the whole collection and
// overwrites the order and the table, in that order. Favorite toggles are
// optimistic: the table is written immediately and the matching remote
// mutation runs fire-and-forget on a Dispatcher. A failed mutation is
// logged at debug level and never reconciled, so the cache keeps the user's
// intent until the next Load overwrites it with whatever the server returns.
//
// All reads go through the store, so a new process sees the previous
// session's cache before its own Load completes.
package catalog
