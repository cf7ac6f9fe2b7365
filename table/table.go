// Package table implements a minimal relation whose tuples are reachable through one of the mapindex engines,
// keyed by the concatenated values of the primary key attributes.
package table

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/gostonefire/mapindex"
	"github.com/gostonefire/mapindex/config"
	"github.com/gostonefire/mapindex/engine"
	"github.com/gostonefire/mapindex/internal/hash"
)

// Tuple - One row of a table, values in attribute order
type Tuple []any

// Table - A named relation with a primary key index
type Table struct {
	id         uuid.UUID
	name       string
	attributes []string
	domains    []Domain
	key        []string
	keyColumns []int
	tuples     []Tuple
	index      mapindex.Map[string, Tuple]
	logger     *slog.Logger
}

// New - Returns a pointer to a new empty Table.
//   - name is the table name
//   - attributes is the attribute names in column order
//   - domains is the domain of each attribute, same length as attributes
//   - key is the primary key attributes, each must be one of attributes
//   - indexConfig selects the index engine used for the primary key
//   - logger is where table events are logged, nil means slog.Default()
//
// It returns:
//   - table is a pointer to the created Table
//   - err is of type engine.ConfigError if the schema or the index configuration is invalid
func New(
	name string,
	attributes []string,
	domains []Domain,
	key []string,
	indexConfig config.IndexConfig,
	logger *slog.Logger,
) (table *Table, err error) {
	if name == "" {
		err = engine.NewConfigError("table name can not be empty")
		return
	}
	if len(attributes) == 0 || len(attributes) != len(domains) {
		err = engine.NewConfigError("table %s has %d attributes and %d domains", name, len(attributes), len(domains))
		return
	}
	for i, d := range domains {
		if !d.Valid() {
			err = engine.NewConfigError("attribute %s has an unknown domain", attributes[i])
			return
		}
	}
	if len(key) == 0 {
		err = engine.NewConfigError("table %s has no key", name)
		return
	}

	keyColumns := make([]int, len(key))
	for i, k := range key {
		if keyColumns[i] = slices.Index(attributes, k); keyColumns[i] < 0 {
			err = engine.NewConfigError("key attribute %s is not an attribute of table %s", k, name)
			return
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	index, err := mapindex.New[string, Tuple](indexConfig, hash.NewStringHashAlgorithm(), logger)
	if err != nil {
		err = fmt.Errorf("index for table %s: %w", name, err)
		return
	}

	table = &Table{
		id:         uuid.New(),
		name:       name,
		attributes: slices.Clone(attributes),
		domains:    slices.Clone(domains),
		key:        slices.Clone(key),
		keyColumns: keyColumns,
		index:      index,
	}
	table.logger = logger.With("table", name, "table_id", table.id)
	table.logger.Debug("table created", "attributes", len(attributes), "key", strings.Join(key, ","),
		"engine", indexConfig.Engine)

	return
}

// ID - Returns the unique identity assigned to the table at creation
func (T *Table) ID() uuid.UUID {
	return T.id
}

// Name - Returns the table name
func (T *Table) Name() string {
	return T.name
}

// Attributes - Returns a copy of the attribute names
func (T *Table) Attributes() []string {
	return slices.Clone(T.attributes)
}

// Insert - Type checks tuple and stores it.
//   - tuple is the attribute values in attribute order
//
// It returns:
//   - err is of type InvalidTuple if the tuple does not match the schema, or of type engine.DuplicateKeyIgnored
//     if a tuple with the same key is already stored. In both cases the tuple is not stored.
func (T *Table) Insert(tuple Tuple) (err error) {
	if err = T.typeCheck(tuple); err != nil {
		return
	}

	keyValues := Tuple(T.keyValues(tuple))
	key, err := T.indexKey(keyValues)
	if err != nil {
		return
	}

	stored := slices.Clone(tuple)
	if T.index.Put(key, stored) == engine.DuplicateIgnored {
		T.logger.Info("duplicate key ignored", "key", keyValues)
		err = engine.NewDuplicateKeyIgnored(keyValues)
		return
	}

	T.tuples = append(T.tuples, stored)

	return
}

// Select - Returns the tuple whose key attributes equal keyValues, given in key attribute order.
// Key values of the wrong number or type match no tuple.
func (T *Table) Select(keyValues ...any) (tuple Tuple, found bool) {
	if len(keyValues) != len(T.keyColumns) {
		return
	}

	key, err := T.indexKey(keyValues)
	if err != nil {
		return
	}

	return T.index.Get(key)
}

// SelectRange - Returns the tuples with from <= key < to, ordered by key.
// Keys compare attribute by attribute in key order, each attribute by the natural order of its domain.
// A bound may hold fewer values than there are key attributes, it then compares below every key it is a prefix of.
//   - from is the lower bound key values, inclusive
//   - to is the upper bound key values, exclusive
//
// It returns:
//   - tuples is the matching tuples
//   - err is of type engine.ConfigError if the table index does not keep its keys in order, or of type
//     InvalidTuple if a bound does not fit the key attributes
func (T *Table) SelectRange(from, to []any) (tuples []Tuple, err error) {
	sorted, ok := T.index.(mapindex.SortedMap[string, Tuple])
	if !ok {
		err = engine.NewConfigError("range select on table %s needs an ordered index, have %s", T.name,
			T.index.Stat().Kind)
		return
	}

	fromKey, err := T.indexKey(from)
	if err != nil {
		return
	}
	toKey, err := T.indexKey(to)
	if err != nil {
		return
	}

	for _, tuple := range sorted.RangeView(fromKey, toKey).Entries() {
		tuples = append(tuples, tuple)
	}

	return
}

// Size - Returns the number of stored tuples
func (T *Table) Size() int {
	return len(T.tuples)
}

// Tuples - Returns every stored tuple in insertion order
func (T *Table) Tuples() []Tuple {
	return slices.Clone(T.tuples)
}

// IndexEntries - Returns the index entries in the order the index engine yields them. Keys are in their encoded form.
func (T *Table) IndexEntries() iter.Seq2[string, Tuple] {
	return T.index.Entries()
}

// IndexStat - Returns the statistics of the index engine
func (T *Table) IndexStat() engine.Stat {
	return T.index.Stat()
}

// Print - Writes the table as a text grid to w. Nothing is written for an empty table.
func (T *Table) Print(w io.Writer) (err error) {
	if len(T.tuples) == 0 {
		return
	}

	border := "|-" + strings.Repeat("---------------", len(T.attributes)) + "-|\n"

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n Table %s\n", T.name)
	sb.WriteString(border)
	sb.WriteString("| ")
	for _, a := range T.attributes {
		fmt.Fprintf(&sb, "%15s", a)
	}
	sb.WriteString(" |\n")
	sb.WriteString(border)
	for _, tuple := range T.tuples {
		sb.WriteString("| ")
		for _, v := range tuple {
			fmt.Fprintf(&sb, "%15v", v)
		}
		sb.WriteString(" |\n")
	}
	sb.WriteString(border)

	_, err = io.WriteString(w, sb.String())

	return
}

// PrintIndex - Writes the index entries to w, one "[key values] -> [values]" line per entry
func (T *Table) PrintIndex(w io.Writer) (err error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n Index for %s\n", T.name)
	sb.WriteString("-------------------\n")
	for _, tuple := range T.index.Entries() {
		fmt.Fprintf(&sb, "%s -> %s\n", Tuple(T.keyValues(tuple)), tuple)
	}
	sb.WriteString("-------------------\n")

	_, err = io.WriteString(w, sb.String())

	return
}

// String - Returns the tuple values as "[v1, v2, ...]"
func (T Tuple) String() string {
	values := make([]string, len(T))
	for i, v := range T {
		values[i] = fmt.Sprint(v)
	}

	return "[" + strings.Join(values, ", ") + "]"
}

// typeCheck - Checks the tuple arity and the domain of each value
func (T *Table) typeCheck(tuple Tuple) error {
	if len(tuple) != len(T.attributes) {
		return newInvalidTuple("table %s expects %d values, got %d", T.name, len(T.attributes), len(tuple))
	}
	for i, v := range tuple {
		if !T.domains[i].Accepts(v) {
			return newInvalidTuple("attribute %s expects %s, got %T", T.attributes[i], T.domains[i], v)
		}
	}

	return nil
}

// keyValues - Returns the key attribute values of tuple in key order
func (T *Table) keyValues(tuple Tuple) []any {
	values := make([]any, len(T.keyColumns))
	for i, c := range T.keyColumns {
		values[i] = tuple[c]
	}

	return values
}
