// Package checkpoint saves and restores the progress of a collection run.
//
// Every checkpoint is a full snapshot of the records accumulated so far,
// written next to a companion file holding the processed app IDs. A
// manifest file indexes all snapshots of a run, so resuming never depends
// on directory listing order; resume picks the newest snapshot whose
// progress fits the current identifier list and falls back to older ones
// when a file turns out to be unreadable.
//
// All files are written atomically (temp file, sync, rename) to survive
// interruption mid-write.
package checkpoint
