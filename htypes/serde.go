package htypes

import "strings"

// SerdeTypeName is the name the metastore uses on the wire for a type category.
type SerdeTypeName string

const (
	SerdeVoid              SerdeTypeName = "void"
	SerdeBoolean           SerdeTypeName = "boolean"
	SerdeTinyint           SerdeTypeName = "tinyint"
	SerdeSmallint          SerdeTypeName = "smallint"
	SerdeInt               SerdeTypeName = "int"
	SerdeBigint            SerdeTypeName = "bigint"
	SerdeFloat             SerdeTypeName = "float"
	SerdeDouble            SerdeTypeName = "double"
	SerdeString            SerdeTypeName = "string"
	SerdeDate              SerdeTypeName = "date"
	SerdeChar              SerdeTypeName = "char"
	SerdeVarchar           SerdeTypeName = "varchar"
	SerdeTimestamp         SerdeTypeName = "timestamp"
	SerdeTimestampLocalTZ  SerdeTypeName = "timestamp with local time zone"
	SerdeDecimal           SerdeTypeName = "decimal"
	SerdeBinary            SerdeTypeName = "binary"
	SerdeIntervalYearMonth SerdeTypeName = "interval_year_month"
	SerdeIntervalDayTime   SerdeTypeName = "interval_day_time"
	SerdeList              SerdeTypeName = "array"
	SerdeMap               SerdeTypeName = "map"
	SerdeStruct            SerdeTypeName = "struct"
	SerdeUnion             SerdeTypeName = "uniontype"
	SerdeUnknown           SerdeTypeName = "unknown"
)

func SerdeTypeNames() []SerdeTypeName {
	return []SerdeTypeName{
		SerdeVoid,
		SerdeBoolean,
		SerdeTinyint,
		SerdeSmallint,
		SerdeInt,
		SerdeBigint,
		SerdeFloat,
		SerdeDouble,
		SerdeString,
		SerdeDate,
		SerdeChar,
		SerdeVarchar,
		SerdeTimestamp,
		SerdeTimestampLocalTZ,
		SerdeDecimal,
		SerdeBinary,
		SerdeIntervalYearMonth,
		SerdeIntervalDayTime,
		SerdeList,
		SerdeMap,
		SerdeStruct,
		SerdeUnion,
		SerdeUnknown,
	}
}

// SerdeName returns the wire name of the primitive category.
func SerdeName(c PrimitiveCategory) SerdeTypeName {
	switch c {
	case PrimitiveVoid:
		return SerdeVoid
	case PrimitiveBoolean:
		return SerdeBoolean
	case PrimitiveByte:
		return SerdeTinyint
	case PrimitiveShort:
		return SerdeSmallint
	case PrimitiveInt:
		return SerdeInt
	case PrimitiveLong:
		return SerdeBigint
	case PrimitiveFloat:
		return SerdeFloat
	case PrimitiveDouble:
		return SerdeDouble
	case PrimitiveString:
		return SerdeString
	case PrimitiveDate:
		return SerdeDate
	case PrimitiveTimestamp:
		return SerdeTimestamp
	case PrimitiveTimestampLocalTZ:
		return SerdeTimestampLocalTZ
	case PrimitiveBinary:
		return SerdeBinary
	case PrimitiveDecimal:
		return SerdeDecimal
	case PrimitiveVarchar:
		return SerdeVarchar
	case PrimitiveChar:
		return SerdeChar
	case PrimitiveIntervalYearMonth:
		return SerdeIntervalYearMonth
	case PrimitiveIntervalDayTime:
		return SerdeIntervalDayTime
	case PrimitiveUnknown:
		return SerdeUnknown
	}
	panic("impossible, primitive category switch bug")
}

// CategorySerdeName returns the wire name of a structural category.
// The primitive category has no single wire name, so ok is false for it.
func CategorySerdeName(c Category) (name SerdeTypeName, ok bool) {
	switch c {
	case CategoryList:
		return SerdeList, true
	case CategoryMap:
		return SerdeMap, true
	case CategoryStruct:
		return SerdeStruct, true
	case CategoryUnion:
		return SerdeUnion, true
	}
	return "", false
}

// PrimitiveFromSerdeName is the reverse of SerdeName. Matching is case-insensitive.
func PrimitiveFromSerdeName(name string) (PrimitiveCategory, bool) {
	name = strings.ToLower(name)
	for _, c := range PrimitiveCategories() {
		if string(SerdeName(c)) == name {
			return c, true
		}
	}
	return PrimitiveUnknown, false
}

// CategoryFromSerdeName resolves a wire name to its structural category.
// Every primitive wire name resolves to CategoryPrimitive.
func CategoryFromSerdeName(name string) (Category, bool) {
	for _, c := range Categories() {
		if serde, ok := CategorySerdeName(c); ok && string(serde) == strings.ToLower(name) {
			return c, true
		}
	}
	if _, ok := PrimitiveFromSerdeName(name); ok {
		return CategoryPrimitive, true
	}
	return CategoryPrimitive, false
}
