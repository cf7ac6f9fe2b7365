package table

import (
	"fmt"
	"math"
	"strings"
)

// Encoded key layout, one field per key attribute in key order:
//   - Integer is the int64 value with its sign bit flipped, as 16 lower case hex digits
//   - Real is the float64 bits, sign bit flipped for positives and every bit flipped for negatives, as 16 hex digits
//   - Boolean is "0" or "1"
//   - String is the bytes with 0x00 escaped as 0x00 0xff, terminated by 0x00 0x01
//
// Every field has a fixed width or a terminator that sorts below any content byte, so comparing two encoded keys
// byte by byte compares their values attribute by attribute, and distinct key values never share an encoding.
const (
	stringEscape     = "\x00\xff"
	stringTerminator = "\x00\x01"
)

// indexKey - Returns the encoded index key for values, which are the key attribute values in key order or a
// leading subset of them.
//
// It returns:
//   - key is the encoded key
//   - err is of type InvalidTuple if there are too many values or a value is outside its attribute's domain
func (T *Table) indexKey(values []any) (key string, err error) {
	if len(values) == 0 || len(values) > len(T.keyColumns) {
		err = newInvalidTuple("table %s key has %d attributes, got %d values", T.name, len(T.keyColumns), len(values))
		return
	}

	var sb strings.Builder
	for i, v := range values {
		d := T.domains[T.keyColumns[i]]
		if !d.Accepts(v) {
			err = newInvalidTuple("key attribute %s expects %s, got %T", T.key[i], d, v)
			return
		}
		encodeValue(&sb, v)
	}
	key = sb.String()

	return
}

// encodeValue - Appends the order preserving encoding of a domain checked value
func encodeValue(sb *strings.Builder, value any) {
	switch v := value.(type) {
	case int:
		encodeInt(sb, int64(v))
	case int8:
		encodeInt(sb, int64(v))
	case int16:
		encodeInt(sb, int64(v))
	case int32:
		encodeInt(sb, int64(v))
	case int64:
		encodeInt(sb, v)
	case float32:
		encodeFloat(sb, float64(v))
	case float64:
		encodeFloat(sb, v)
	case bool:
		if v {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	case string:
		sb.WriteString(strings.ReplaceAll(v, "\x00", stringEscape))
		sb.WriteString(stringTerminator)
	}
}

func encodeInt(sb *strings.Builder, v int64) {
	fmt.Fprintf(sb, "%016x", uint64(v)^(1<<63))
}

func encodeFloat(sb *strings.Builder, v float64) {
	if v == 0 {
		// -0 and 0 are the same key
		v = 0
	}

	bits := math.Float64bits(v)
	if bits&(1<<63) != 0 {
		bits = ^bits
	} else {
		bits |= 1 << 63
	}

	fmt.Fprintf(sb, "%016x", bits)
}
