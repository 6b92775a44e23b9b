package htypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerdeName(t *testing.T) {
	tests := []struct {
		category PrimitiveCategory
		want     SerdeTypeName
	}{
		{PrimitiveVoid, "void"},
		{PrimitiveBoolean, "boolean"},
		{PrimitiveByte, "tinyint"},
		{PrimitiveShort, "smallint"},
		{PrimitiveInt, "int"},
		{PrimitiveLong, "bigint"},
		{PrimitiveFloat, "float"},
		{PrimitiveDouble, "double"},
		{PrimitiveString, "string"},
		{PrimitiveDate, "date"},
		{PrimitiveChar, "char"},
		{PrimitiveVarchar, "varchar"},
		{PrimitiveTimestamp, "timestamp"},
		{PrimitiveTimestampLocalTZ, "timestamp with local time zone"},
		{PrimitiveDecimal, "decimal"},
		{PrimitiveBinary, "binary"},
		{PrimitiveIntervalYearMonth, "interval_year_month"},
		{PrimitiveIntervalDayTime, "interval_day_time"},
		{PrimitiveUnknown, "unknown"},
	}
	assert.Len(t, tests, len(PrimitiveCategories()))
	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, SerdeName(tt.category))

			back, ok := PrimitiveFromSerdeName(string(tt.want))
			assert.True(t, ok)
			assert.Equal(t, tt.category, back)
		})
	}
}

func TestCategorySerdeName(t *testing.T) {
	tests := []struct {
		category Category
		want     SerdeTypeName
	}{
		{CategoryList, "array"},
		{CategoryMap, "map"},
		{CategoryStruct, "struct"},
		{CategoryUnion, "uniontype"},
	}
	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			got, ok := CategorySerdeName(tt.category)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)

			back, ok := CategoryFromSerdeName(string(tt.want))
			assert.True(t, ok)
			assert.Equal(t, tt.category, back)
		})
	}

	_, ok := CategorySerdeName(CategoryPrimitive)
	assert.False(t, ok)
}

func TestSerdeTypeNamesAreExhaustive(t *testing.T) {
	seen := make(map[SerdeTypeName]bool)
	for _, name := range SerdeTypeNames() {
		assert.False(t, seen[name], "duplicate %s", name)
		seen[name] = true

		_, ok := CategoryFromSerdeName(string(name))
		assert.True(t, ok, "%s has no category", name)
	}
	assert.Len(t, seen, len(PrimitiveCategories())+len(Categories())-1)
}

func TestFromSerdeNameIsCaseInsensitive(t *testing.T) {
	c, ok := PrimitiveFromSerdeName("BIGINT")
	assert.True(t, ok)
	assert.Equal(t, PrimitiveLong, c)

	category, ok := CategoryFromSerdeName("UnionType")
	assert.True(t, ok)
	assert.Equal(t, CategoryUnion, category)

	_, ok = PrimitiveFromSerdeName("long")
	assert.False(t, ok)
}
