package conf

// DefaultOrder - Reference fanout of the ordered engine
const DefaultOrder int = 5

// MinOrder - Smallest fanout for which a split leaves both halves non-empty
const MinOrder int = 3

// DefaultSlots - Reference number of records per hash bucket
const DefaultSlots int = 4

// DefaultInitialSize - Reference initial number of buckets/chains for the hash engines
const DefaultInitialSize int = 4

// NoNode - Handle value meaning "no node" in the ordered engine's arena
const NoNode int = -1

// MaxDirectoryPerRecord - The extendible directory is only doubled while it has fewer entries than this many
// per stored record
const MaxDirectoryPerRecord int = 64

// DefaultHashBits - Number of significant bits produced by the internal default hash algorithm
const DefaultHashBits int = 32

// HashBits - Number of bits in a hash value
const HashBits int = 64
