// Package store provides the durable key-value store behind the course cache.
//
// Values are JSON documents stored under a string name. Three backends
// implement [Store]:
//
//   - [FileStore]: one <name>.json file per name under a data directory
//     (~/.courses by default). Writes go to a temp file that is renamed over
//     the target while holding an exclusive flock on .courses.lock, so
//     readers never see a torn file. Concurrent processes are last write wins.
//
//   - [SQLiteStore]: a single SQLite database with a kv table, upserted on
//     every write.
//
//   - [MemoryStore]: process-local, used by tests and --ephemeral runs.
//
// # Read contract
//
// A read never fails the caller for bad data: a missing name, a JSON null and
// a document that does not decode into the destination are all reported as
// absent. An error is returned only when the backend itself cannot be read,
// and it wraps [ErrPersistenceUnavailable].
//
// # Write contract
//
// Writes are synchronous and durable on return. A read of the same name after
// a successful write returns the written value. There is no transaction
// across names: writing two names is two independent operations.
//
// [Slot] gives a typed view of a single name.
package store
