// Package course defines the catalog entities shared by the local cache,
// the remote client and the sync controller.
//
// A fetch of the remote collection produces two values that are always built
// and persisted together:
//
//   - [Order]: course ids in server response order, which is display order.
//   - [Table]: courses keyed by the decimal string of their id.
//
// The table is the only place the favorite flag lives. It is replaced as a
// whole on every fetch and patched one entry at a time by [Table.WithFavorite]
// when the user toggles a course. Tables are treated as immutable values:
// every update returns a new map so a reader holding the previous table never
// sees it change underneath.
//
// # Filtering
//
// [Visible] turns an order, a table and the "only show favorites" flag into
// the sequence a view renders. [Search] narrows that sequence with fuzzy
// matching on title and instructor.
package course
