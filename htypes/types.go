package htypes

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	MaxDecimalPrecision     = 38
	MaxDecimalScale         = 38
	DefaultDecimalPrecision = 10
	DefaultDecimalScale     = 0
	MaxCharLength           = 255
	MaxVarcharLength        = 65535
)

type TypeID int

const (
	TypeIDPrimitive TypeID = iota
	TypeIDDecimal
	TypeIDChar
	TypeIDVarchar
	TypeIDList
	TypeIDMap
	TypeIDStruct
	TypeIDUnion
)

func (id TypeID) String() string {
	switch id {
	case TypeIDPrimitive:
		return "primitive"
	case TypeIDDecimal:
		return "decimal"
	case TypeIDChar:
		return "char"
	case TypeIDVarchar:
		return "varchar"
	case TypeIDList:
		return "list"
	case TypeIDMap:
		return "map"
	case TypeIDStruct:
		return "struct"
	case TypeIDUnion:
		return "union"
	}
	panic("impossible, type id switch bug")
}

// Type is a Hive column type. Only the payload selected by TypeID is meaningful.
// Values are never mutated after construction, so they may be shared freely.
type Type struct {
	TypeID    TypeID
	Primitive PrimitiveCategory
	Decimal   struct {
		Precision int
		Scale     int
	}
	Char struct {
		Length int
	}
	Varchar struct {
		Length int
	}
	List struct {
		Element *Type
	}
	Map struct {
		Key   *Type
		Value *Type
	}
	Struct struct {
		Fields []StructField
	}
	Union struct {
		Alternatives []Type
	}
}

type StructField struct {
	Name string
	Type Type
}

var (
	Void              = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveVoid}
	Boolean           = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveBoolean}
	Byte              = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveByte}
	Short             = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveShort}
	Int               = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveInt}
	Long              = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveLong}
	Float             = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveFloat}
	Double            = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveDouble}
	String            = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveString}
	Date              = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveDate}
	Timestamp         = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveTimestamp}
	TimestampLocalTZ  = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveTimestampLocalTZ}
	Binary            = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveBinary}
	IntervalYearMonth = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveIntervalYearMonth}
	IntervalDayTime   = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveIntervalDayTime}
	Unknown           = Type{TypeID: TypeIDPrimitive, Primitive: PrimitiveUnknown}
)

// NewPrimitive returns the plain primitive type of the given category.
// Decimal, char and varchar carry parameters and have their own constructors.
func NewPrimitive(c PrimitiveCategory) Type {
	if c.IsParameterized() {
		panic(fmt.Sprintf("%s is a parameterized type, use its dedicated constructor", c))
	}
	return Type{TypeID: TypeIDPrimitive, Primitive: c}
}

func validateDecimal(precision, scale int) error {
	if precision > MaxDecimalPrecision {
		return newValidationError("Decimal precision cannot exceed %d", MaxDecimalPrecision)
	}
	if precision < 1 {
		return newValidationError("Decimal precision cannot be less than 1")
	}
	if scale > MaxDecimalScale {
		return newValidationError("Decimal scale cannot exceed %d", MaxDecimalScale)
	}
	if scale < 0 {
		return newValidationError("Decimal scale cannot be negative")
	}
	return nil
}

func validateCharLength(length int) error {
	if length > MaxCharLength {
		return newValidationError("Char length cannot exceed %d", MaxCharLength)
	}
	if length < 1 {
		return newValidationError("Char length cannot be less than 1")
	}
	return nil
}

func validateVarcharLength(length int) error {
	if length > MaxVarcharLength {
		return newValidationError("Varchar length cannot exceed %d", MaxVarcharLength)
	}
	if length < 1 {
		return newValidationError("Varchar length cannot be less than 1")
	}
	return nil
}

// NewDecimal returns a decimal type. Scale is not checked against precision.
func NewDecimal(precision, scale int) (Type, error) {
	if err := validateDecimal(precision, scale); err != nil {
		return Type{}, err
	}
	out := Type{TypeID: TypeIDDecimal}
	out.Decimal.Precision = precision
	out.Decimal.Scale = scale
	return out, nil
}

func NewChar(length int) (Type, error) {
	if err := validateCharLength(length); err != nil {
		return Type{}, err
	}
	out := Type{TypeID: TypeIDChar}
	out.Char.Length = length
	return out, nil
}

func NewVarchar(length int) (Type, error) {
	if err := validateVarcharLength(length); err != nil {
		return Type{}, err
	}
	out := Type{TypeID: TypeIDVarchar}
	out.Varchar.Length = length
	return out, nil
}

func NewList(element Type) Type {
	out := Type{TypeID: TypeIDList}
	out.List.Element = &element
	return out
}

func NewMap(key, value Type) Type {
	out := Type{TypeID: TypeIDMap}
	out.Map.Key = &key
	out.Map.Value = &value
	return out
}

func NewStruct(fields ...StructField) Type {
	out := Type{TypeID: TypeIDStruct}
	out.Struct.Fields = make([]StructField, len(fields))
	copy(out.Struct.Fields, fields)
	return out
}

// NewStructFromNames builds a struct type out of parallel name and type lists.
func NewStructFromNames(names []string, types []Type) (Type, error) {
	if len(names) != len(types) {
		return Type{}, errors.Errorf("struct has %d field names but %d field types", len(names), len(types))
	}
	fields := make([]StructField, len(names))
	for i := range names {
		fields[i] = StructField{Name: names[i], Type: types[i]}
	}
	return NewStruct(fields...), nil
}

func NewUnion(alternatives ...Type) Type {
	out := Type{TypeID: TypeIDUnion}
	out.Union.Alternatives = make([]Type, len(alternatives))
	copy(out.Union.Alternatives, alternatives)
	return out
}

func (t Type) Category() Category {
	switch t.TypeID {
	case TypeIDPrimitive, TypeIDDecimal, TypeIDChar, TypeIDVarchar:
		return CategoryPrimitive
	case TypeIDList:
		return CategoryList
	case TypeIDMap:
		return CategoryMap
	case TypeIDStruct:
		return CategoryStruct
	case TypeIDUnion:
		return CategoryUnion
	}
	panic("impossible, type switch bug")
}

// PrimitiveCategory returns the primitive category of the type.
// ok is false for list, map, struct and union types.
func (t Type) PrimitiveCategory() (c PrimitiveCategory, ok bool) {
	switch t.TypeID {
	case TypeIDPrimitive:
		return t.Primitive, true
	case TypeIDDecimal:
		return PrimitiveDecimal, true
	case TypeIDChar:
		return PrimitiveChar, true
	case TypeIDVarchar:
		return PrimitiveVarchar, true
	}
	return PrimitiveUnknown, false
}

// Name is the upper-case keyword of the type, without parameters.
func (t Type) Name() string {
	if c, ok := t.PrimitiveCategory(); ok {
		return c.String()
	}
	return t.Category().String()
}

// FieldNames returns the field names of a struct type, in order.
func (t Type) FieldNames() []string {
	names := make([]string, len(t.Struct.Fields))
	for i := range t.Struct.Fields {
		names[i] = t.Struct.Fields[i].Name
	}
	return names
}

func (t Type) Equal(other Type) bool {
	if t.TypeID != other.TypeID {
		return false
	}
	switch t.TypeID {
	case TypeIDPrimitive:
		return t.Primitive == other.Primitive
	case TypeIDDecimal:
		return t.Decimal == other.Decimal
	case TypeIDChar:
		return t.Char == other.Char
	case TypeIDVarchar:
		return t.Varchar == other.Varchar
	case TypeIDList:
		return equalPtr(t.List.Element, other.List.Element)
	case TypeIDMap:
		return equalPtr(t.Map.Key, other.Map.Key) && equalPtr(t.Map.Value, other.Map.Value)
	case TypeIDStruct:
		if len(t.Struct.Fields) != len(other.Struct.Fields) {
			return false
		}
		for i := range t.Struct.Fields {
			if t.Struct.Fields[i].Name != other.Struct.Fields[i].Name {
				return false
			}
			if !t.Struct.Fields[i].Type.Equal(other.Struct.Fields[i].Type) {
				return false
			}
		}
		return true
	case TypeIDUnion:
		if len(t.Union.Alternatives) != len(other.Union.Alternatives) {
			return false
		}
		for i := range t.Union.Alternatives {
			if !t.Union.Alternatives[i].Equal(other.Union.Alternatives[i]) {
				return false
			}
		}
		return true
	}
	panic("impossible, type switch bug")
}

func equalPtr(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// String renders the type the way the metastore spells it, e.g. map<string,array<int>>.
// The result parses back to an equal type.
func (t Type) String() string {
	switch t.TypeID {
	case TypeIDPrimitive:
		return string(SerdeName(t.Primitive))
	case TypeIDDecimal:
		return fmt.Sprintf("%s(%d,%d)", SerdeDecimal, t.Decimal.Precision, t.Decimal.Scale)
	case TypeIDChar:
		return fmt.Sprintf("%s(%d)", SerdeChar, t.Char.Length)
	case TypeIDVarchar:
		return fmt.Sprintf("%s(%d)", SerdeVarchar, t.Varchar.Length)
	case TypeIDList:
		return fmt.Sprintf("%s<%s>", SerdeList, *t.List.Element)
	case TypeIDMap:
		return fmt.Sprintf("%s<%s,%s>", SerdeMap, *t.Map.Key, *t.Map.Value)
	case TypeIDStruct:
		fieldStrings := make([]string, len(t.Struct.Fields))
		for i, field := range t.Struct.Fields {
			fieldStrings[i] = fmt.Sprintf("%s:%s", field.Name, field.Type)
		}
		return fmt.Sprintf("%s<%s>", SerdeStruct, strings.Join(fieldStrings, ","))
	case TypeIDUnion:
		typeStrings := make([]string, len(t.Union.Alternatives))
		for i, alternative := range t.Union.Alternatives {
			typeStrings[i] = alternative.String()
		}
		return fmt.Sprintf("%s<%s>", SerdeUnion, strings.Join(typeStrings, ","))
	}
	panic("impossible, type switch bug")
}
