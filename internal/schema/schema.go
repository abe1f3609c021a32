package schema

// Kind identifies the declared type of a schema field.
type Kind string

const (
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindBool   Kind = "bool"
	KindEnum   Kind = "enum"
	KindArray  Kind = "array"
)

// FieldSpec declares one expected field of a decision response: its name,
// kind, and any constraints (enum value set, inclusive numeric range, array
// element spec). A nullable field may be absent or explicitly null; the
// validator fills absence with null (or an empty array for array fields).
type FieldSpec struct {
	Name     string     `json:"name"`
	Kind     Kind       `json:"kind"`
	Enum     []string   `json:"enum,omitempty"`
	Minimum  *float64   `json:"minimum,omitempty"`
	Maximum  *float64   `json:"maximum,omitempty"`
	Items    *FieldSpec `json:"items,omitempty"`
	Nullable bool       `json:"nullable,omitempty"`
}

// Schema is the ordered list of fields a decision response must satisfy.
// Order matters only for prompt rendering; validation is order-independent.
type Schema struct {
	Fields []FieldSpec `json:"fields"`
}

// NewSchema creates a schema from the given fields, preserving order.
func NewSchema(fields ...FieldSpec) Schema {
	return Schema{Fields: fields}
}

// Field returns the spec for the named field and whether it exists.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// NewStringField creates a new string field
func NewStringField(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindString}
}

// NewNumberField creates a new number field
func NewNumberField(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindNumber}
}

// NewBoolField creates a new boolean field
func NewBoolField(name string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindBool}
}

// NewEnumField creates a new enum field restricted to the given string values
func NewEnumField(name string, values ...string) FieldSpec {
	return FieldSpec{Name: name, Kind: KindEnum, Enum: values}
}

// NewArrayField creates a new array field whose elements must satisfy items
func NewArrayField(name string, items FieldSpec) FieldSpec {
	return FieldSpec{Name: name, Kind: KindArray, Items: &items}
}

// WithRange adds inclusive minimum and maximum constraints to numeric fields
func (f FieldSpec) WithRange(min, max float64) FieldSpec {
	f.Minimum = &min
	f.Maximum = &max
	return f
}

// WithMin adds an inclusive minimum constraint to numeric fields
func (f FieldSpec) WithMin(min float64) FieldSpec {
	f.Minimum = &min
	return f
}

// WithMax adds an inclusive maximum constraint to numeric fields
func (f FieldSpec) WithMax(max float64) FieldSpec {
	f.Maximum = &max
	return f
}

// AsNullable marks the field as optional; absence or explicit null is accepted
func (f FieldSpec) AsNullable() FieldSpec {
	f.Nullable = true
	return f
}
