// Package cache stores rendered parse output so unchanged scripts are not
// parsed and rendered again.
//
// Entries are keyed by the SHA-256 of the source text plus the output
// format. SQLiteStore persists them across runs; MemoryStore keeps them in
// the generic LRU Cache of this package, which the interactive explorer
// also uses to memoize renderings.
package cache
