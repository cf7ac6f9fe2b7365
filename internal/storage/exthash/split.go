package exthash

import (
	"github.com/gostonefire/mapindex/internal/conf"
	"github.com/gostonefire/mapindex/internal/model"
)

// split - Splits the overfull bucket with the given handle until neither half is overfull.
// When the bucket already uses every directory bit the directory is doubled first, unless the directory already
// holds conf.MaxDirectoryPerRecord entries per stored record. Keys sharing long runs of low order hash bits then
// leave their bucket overfull instead of growing the directory exponentially. Records move to the new
// bucket when the hash bit made significant by the increased local depth is set, and every directory entry
// addressing the old bucket with that bit set is repointed to the new bucket.
func (E *ExtHashMap[K, V]) split(handle int) {
	for {
		b := E.buckets[handle]
		if len(b.Records) <= E.slots {
			return
		}

		if !E.separable(b) {
			E.logger.Warn("bucket records share one hash value, leaving bucket overfull", "bucket", handle,
				"records", len(b.Records))
			return
		}

		if b.LocalDepth >= E.maxDepth {
			E.logger.Warn("bucket uses every hash bit, leaving bucket overfull", "bucket", handle,
				"records", len(b.Records))
			return
		}

		if b.LocalDepth == E.globalDepth {
			if len(E.directory) >= conf.MaxDirectoryPerRecord*E.count {
				E.logger.Warn("directory at its size limit, leaving bucket overfull", "bucket", handle,
					"records", len(b.Records), "directory_size", len(E.directory))
				return
			}
			E.doubleDirectory()
		}

		b.LocalDepth++
		bit := uint64(1) << (b.LocalDepth - 1)
		sibling := E.newBucket(b.LocalDepth)
		s := E.buckets[sibling]

		kept := b.Records[:0]
		for _, r := range b.Records {
			if E.hashAlgorithm.HashFunc1(r.Key)&bit != 0 {
				s.Records = append(s.Records, r)
			} else {
				kept = append(kept, r)
			}
		}
		clear(b.Records[len(kept):])
		b.Records = kept

		for i, h := range E.directory {
			if h == handle && uint64(i)&bit != 0 {
				E.directory[i] = sibling
			}
		}

		E.logger.Debug("bucket split", "bucket", handle, "sibling", sibling, "local_depth", b.LocalDepth,
			"records", len(b.Records), "sibling_records", len(s.Records))

		if len(s.Records) > E.slots {
			handle = sibling
		}
	}
}

// doubleDirectory - Doubles the directory, each entry in the upper half mirrors its counterpart in the lower half
func (E *ExtHashMap[K, V]) doubleDirectory() {
	E.directory = append(E.directory, E.directory...)
	E.globalDepth++

	E.logger.Debug("directory doubled", "global_depth", E.globalDepth, "directory_size", len(E.directory))
}

// bucketOf - Returns the bucket the directory currently addresses for a directory index
func (E *ExtHashMap[K, V]) bucketOf(i int) *model.Bucket[K, V] {
	return E.buckets[E.directory[i]]
}

// separable - Returns true if the records of b do not all share the same hash value, which is what it takes for
// some future split to divide them
func (E *ExtHashMap[K, V]) separable(b *model.Bucket[K, V]) bool {
	first := E.hashAlgorithm.HashFunc1(b.Records[0].Key)
	for _, r := range b.Records[1:] {
		if E.hashAlgorithm.HashFunc1(r.Key) != first {
			return true
		}
	}

	return false
}
