package table

// Domain - The type of the values an attribute may hold
type Domain uint8

const (
	Integer Domain = iota
	Real
	String
	Boolean
)

// String - Returns the domain name
func (D Domain) String() string {
	switch D {
	case Integer:
		return "Integer"
	case Real:
		return "Real"
	case String:
		return "String"
	case Boolean:
		return "Boolean"
	}
	return "Unknown"
}

// Valid - Returns true if D is one of the defined domains
func (D Domain) Valid() bool {
	return D <= Boolean
}

// Accepts - Returns true if value belongs to the domain.
// Integer takes any Go signed integer type and Real any float type.
func (D Domain) Accepts(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64:
		return D == Integer
	case float32, float64:
		return D == Real
	case string:
		return D == String
	case bool:
		return D == Boolean
	}
	return false
}
