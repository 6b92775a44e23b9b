package htypes

// Category is the structural category of a type.
type Category int

const (
	CategoryPrimitive Category = iota
	CategoryStruct
	CategoryMap
	CategoryList
	CategoryUnion
)

func Categories() []Category {
	return []Category{
		CategoryPrimitive,
		CategoryStruct,
		CategoryMap,
		CategoryList,
		CategoryUnion,
	}
}

func (c Category) String() string {
	switch c {
	case CategoryPrimitive:
		return "PRIMITIVE"
	case CategoryStruct:
		return "STRUCT"
	case CategoryMap:
		return "MAP"
	case CategoryList:
		return "LIST"
	case CategoryUnion:
		return "UNION"
	}
	panic("impossible, category switch bug")
}

// PrimitiveCategory identifies the kind of a primitive type.
// Decimal, char and varchar are primitive categories, but are represented by their own type variants.
type PrimitiveCategory int

const (
	PrimitiveVoid PrimitiveCategory = iota
	PrimitiveBoolean
	PrimitiveByte
	PrimitiveShort
	PrimitiveInt
	PrimitiveLong
	PrimitiveFloat
	PrimitiveDouble
	PrimitiveString
	PrimitiveDate
	PrimitiveTimestamp
	PrimitiveTimestampLocalTZ
	PrimitiveBinary
	PrimitiveDecimal
	PrimitiveVarchar
	PrimitiveChar
	PrimitiveIntervalYearMonth
	PrimitiveIntervalDayTime
	PrimitiveUnknown
)

func PrimitiveCategories() []PrimitiveCategory {
	out := make([]PrimitiveCategory, 0, PrimitiveUnknown+1)
	for c := PrimitiveVoid; c <= PrimitiveUnknown; c++ {
		out = append(out, c)
	}
	return out
}

func (c PrimitiveCategory) String() string {
	switch c {
	case PrimitiveVoid:
		return "VOID"
	case PrimitiveBoolean:
		return "BOOLEAN"
	case PrimitiveByte:
		return "BYTE"
	case PrimitiveShort:
		return "SHORT"
	case PrimitiveInt:
		return "INT"
	case PrimitiveLong:
		return "LONG"
	case PrimitiveFloat:
		return "FLOAT"
	case PrimitiveDouble:
		return "DOUBLE"
	case PrimitiveString:
		return "STRING"
	case PrimitiveDate:
		return "DATE"
	case PrimitiveTimestamp:
		return "TIMESTAMP"
	case PrimitiveTimestampLocalTZ:
		return "TIMESTAMPLOCALTZ"
	case PrimitiveBinary:
		return "BINARY"
	case PrimitiveDecimal:
		return "DECIMAL"
	case PrimitiveVarchar:
		return "VARCHAR"
	case PrimitiveChar:
		return "CHAR"
	case PrimitiveIntervalYearMonth:
		return "INTERVAL_YEAR_MONTH"
	case PrimitiveIntervalDayTime:
		return "INTERVAL_DAY_TIME"
	case PrimitiveUnknown:
		return "UNKNOWN"
	}
	panic("impossible, primitive category switch bug")
}

// IsParameterized reports whether the category is represented by a dedicated
// type variant carrying parameters (decimal, char, varchar).
func (c PrimitiveCategory) IsParameterized() bool {
	return c == PrimitiveDecimal || c == PrimitiveChar || c == PrimitiveVarchar
}
