// Package engine holds what every index engine shares with its callers: the engine kinds,
// the insert outcome, statistics and the error types.
package engine

// Kind - Identifies an index engine implementation
type Kind string

// BPTree - Ordered multi-way search tree with a linked leaf level
const BPTree Kind = "bptree"

// ExtendibleHash - Directory doubling hash table
const ExtendibleHash Kind = "exthash"

// LinearHash - Hash table growing one chain at a time behind a split pointer
const LinearHash Kind = "linhash"

// Valid - Returns true if K names a known engine
func (K Kind) Valid() bool {
	switch K {
	case BPTree, ExtendibleHash, LinearHash:
		return true
	}
	return false
}

// InsertOutcome - Result of a Put
type InsertOutcome uint8

// Inserted - The entry was stored
const Inserted InsertOutcome = 0

// DuplicateIgnored - The key was already present, nothing was changed
const DuplicateIgnored InsertOutcome = 1

// String - Returns a readable name of the outcome
func (I InsertOutcome) String() string {
	if I == DuplicateIgnored {
		return "duplicate-ignored"
	}
	return "inserted"
}

// Stat - Statistics on the overall usage and distribution of an index engine.
// Fields that do not apply to an engine are left at zero.
//   - Kind is the engine that produced the statistics
//   - Records is the total number of entries stored
//   - Buckets is the number of buckets (hash engines) or nodes (tree)
//   - Height is the number of levels in the tree, root level included
//   - GlobalDepth is the number of hash bits the extendible directory uses
//   - DirectorySize is the number of directory entries (2^GlobalDepth)
//   - Mod1 and Mod2 are the linear hash moduli of the current round
//   - SplitPointer is the next linear hash chain to split
//   - SplitSteps is the number of linear hash split steps performed so far
//   - InternalHash is true when a hash engine uses the internal default hash algorithm
//   - BucketDistribution is the number of records per bucket, chain or leaf in storage order
type Stat struct {
	Kind               Kind
	Records            int
	Buckets            int
	Height             int
	GlobalDepth        int
	DirectorySize      int
	Mod1               int
	Mod2               int
	SplitPointer       int
	SplitSteps         int
	InternalHash       bool
	BucketDistribution []int
}
