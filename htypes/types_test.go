package htypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestType_Equal(t *testing.T) {
	person := func() Type {
		return NewStruct(
			StructField{Name: "name", Type: String},
			StructField{Name: "tags", Type: NewList(mustVarchar(10))},
		)
	}

	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{
			name: "independently built structs",
			a:    person(),
			b:    person(),
			want: true,
		},
		{
			name: "swapped struct fields",
			a:    person(),
			b: NewStruct(
				StructField{Name: "tags", Type: NewList(mustVarchar(10))},
				StructField{Name: "name", Type: String},
			),
			want: false,
		},
		{
			name: "nested child differs",
			a:    person(),
			b: NewStruct(
				StructField{Name: "name", Type: String},
				StructField{Name: "tags", Type: NewList(mustChar(10))},
			),
			want: false,
		},
		{
			name: "nested parameter differs",
			a:    person(),
			b: NewStruct(
				StructField{Name: "name", Type: String},
				StructField{Name: "tags", Type: NewList(mustVarchar(11))},
			),
			want: false,
		},
		{
			name: "char and varchar of the same length",
			a:    mustChar(5),
			b:    mustVarchar(5),
			want: false,
		},
		{
			name: "decimal scale differs",
			a:    mustDecimal(10, 2),
			b:    mustDecimal(10, 3),
			want: false,
		},
		{
			name: "union order matters",
			a:    NewUnion(Int, String),
			b:    NewUnion(String, Int),
			want: false,
		},
		{
			name: "map",
			a:    NewMap(String, NewMap(Int, Double)),
			b:    NewMap(String, NewMap(Int, Double)),
			want: true,
		},
		{
			name: "list and primitive",
			a:    NewList(Int),
			b:    Int,
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestType_String(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{typ: Int, want: "int"},
		{typ: Long, want: "bigint"},
		{typ: TimestampLocalTZ, want: "timestamp with local time zone"},
		{typ: mustDecimal(10, 0), want: "decimal(10,0)"},
		{typ: mustChar(3), want: "char(3)"},
		{typ: mustVarchar(300), want: "varchar(300)"},
		{typ: NewList(Short), want: "array<smallint>"},
		{typ: NewMap(String, NewList(Int)), want: "map<string,array<int>>"},
		{
			typ:  NewStruct(StructField{Name: "a", Type: Int}, StructField{Name: "b", Type: String}),
			want: "struct<a:int,b:string>",
		},
		{typ: NewUnion(Int, mustDecimal(5, 2)), want: "uniontype<int,decimal(5,2)>"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())

			reparsed, err := Parse(tt.typ.String())
			if assert.NoError(t, err) {
				assert.True(t, reparsed.Equal(tt.typ), "reparsed %s", reparsed)
			}
		})
	}
}

func TestType_Name(t *testing.T) {
	assert.Equal(t, "INT", Int.Name())
	assert.Equal(t, "DECIMAL", mustDecimal(10, 0).Name())
	assert.Equal(t, "VARCHAR", mustVarchar(1).Name())
	assert.Equal(t, "LIST", NewList(Int).Name())
	assert.Equal(t, "MAP", NewMap(Int, Int).Name())
	assert.Equal(t, "STRUCT", NewStruct(StructField{Name: "a", Type: Int}).Name())
	assert.Equal(t, "UNION", NewUnion(Int).Name())
}

func TestType_PrimitiveCategory(t *testing.T) {
	c, ok := mustChar(1).PrimitiveCategory()
	assert.True(t, ok)
	assert.Equal(t, PrimitiveChar, c)

	_, ok = NewList(Int).PrimitiveCategory()
	assert.False(t, ok)
}

func TestNewStructFromNames(t *testing.T) {
	got, err := NewStructFromNames([]string{"a", "b"}, []Type{Int, String})
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.FieldNames())

	_, err = NewStructFromNames([]string{"a"}, []Type{Int, String})
	assert.EqualError(t, err, "struct has 1 field names but 2 field types")
}

func TestConstructorsCopyArguments(t *testing.T) {
	fields := []StructField{{Name: "a", Type: Int}}
	structType := NewStruct(fields...)
	fields[0].Name = "changed"
	assert.Equal(t, "a", structType.Struct.Fields[0].Name)

	alternatives := []Type{Int}
	unionType := NewUnion(alternatives...)
	alternatives[0] = String
	assert.True(t, unionType.Union.Alternatives[0].Equal(Int))
}

func TestNewPrimitivePanicsForParameterizedCategories(t *testing.T) {
	assert.Panics(t, func() { NewPrimitive(PrimitiveDecimal) })
	assert.NotPanics(t, func() { NewPrimitive(PrimitiveDate) })
}
