package overflow

import (
	"github.com/gostonefire/mapindex/internal/model"
)

// Records - Is used to iterate over the records of a bucket chain one by one, home bucket first and then
// every overflow bucket linked behind it.
type Records[K comparable, V any] struct {
	bucket *model.Bucket[K, V]
	index  int
}

// NewRecords - Returns a pointer to a new Records struct positioned at the first record of head
func NewRecords[K comparable, V any](head *model.Bucket[K, V]) *Records[K, V] {
	r := &Records[K, V]{bucket: head}
	r.skipEmpty()

	return r
}

// HasNext - Returns true if there are more records to be fetched from a call to Next.
func (O *Records[K, V]) HasNext() bool {
	return O.bucket != nil
}

// Next - Returns record.
// It returns:
//   - record is the next record in the chain.
//   - ok is false if there were no more records when calling this function.
func (O *Records[K, V]) Next() (record model.Record[K, V], ok bool) {
	if O.bucket == nil {
		return
	}

	record = O.bucket.Records[O.index]
	ok = true

	O.index++
	O.skipEmpty()

	return
}

// skipEmpty - Moves forward to the next bucket in the chain that still has records to deliver
func (O *Records[K, V]) skipEmpty() {
	for O.bucket != nil && O.index >= len(O.bucket.Records) {
		O.bucket = O.bucket.Next
		O.index = 0
	}
}
