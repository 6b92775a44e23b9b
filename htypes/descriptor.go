package htypes

import (
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// Descriptor is a plain data representation of a Type, suitable for storage and transport.
// Kind holds the wire name of the type; the other fields are used depending on it.
type Descriptor struct {
	Kind         SerdeTypeName
	Precision    int
	Scale        int
	Length       int
	Element      *Descriptor
	Key          *Descriptor
	Value        *Descriptor
	Fields       []FieldDescriptor
	Alternatives []Descriptor
}

type FieldDescriptor struct {
	Name string
	Type Descriptor
}

func ToDescriptor(t Type) Descriptor {
	switch t.TypeID {
	case TypeIDPrimitive:
		return Descriptor{Kind: SerdeName(t.Primitive)}
	case TypeIDDecimal:
		return Descriptor{Kind: SerdeDecimal, Precision: t.Decimal.Precision, Scale: t.Decimal.Scale}
	case TypeIDChar:
		return Descriptor{Kind: SerdeChar, Length: t.Char.Length}
	case TypeIDVarchar:
		return Descriptor{Kind: SerdeVarchar, Length: t.Varchar.Length}
	case TypeIDList:
		element := ToDescriptor(*t.List.Element)
		return Descriptor{Kind: SerdeList, Element: &element}
	case TypeIDMap:
		key := ToDescriptor(*t.Map.Key)
		value := ToDescriptor(*t.Map.Value)
		return Descriptor{Kind: SerdeMap, Key: &key, Value: &value}
	case TypeIDStruct:
		fields := make([]FieldDescriptor, len(t.Struct.Fields))
		for i, field := range t.Struct.Fields {
			fields[i] = FieldDescriptor{Name: field.Name, Type: ToDescriptor(field.Type)}
		}
		return Descriptor{Kind: SerdeStruct, Fields: fields}
	case TypeIDUnion:
		alternatives := make([]Descriptor, len(t.Union.Alternatives))
		for i, alternative := range t.Union.Alternatives {
			alternatives[i] = ToDescriptor(alternative)
		}
		return Descriptor{Kind: SerdeUnion, Alternatives: alternatives}
	}
	panic("impossible, type switch bug")
}

type builder func(d Descriptor) (Type, error)

// builders has exactly one entry per wire name.
var builders map[SerdeTypeName]builder

func init() {
	builders = map[SerdeTypeName]builder{
		SerdeDecimal: func(d Descriptor) (Type, error) {
			return NewDecimal(d.Precision, d.Scale)
		},
		SerdeChar: func(d Descriptor) (Type, error) {
			return NewChar(d.Length)
		},
		SerdeVarchar: func(d Descriptor) (Type, error) {
			return NewVarchar(d.Length)
		},
		SerdeList:   buildList,
		SerdeMap:    buildMap,
		SerdeStruct: buildStruct,
		SerdeUnion:  buildUnion,
	}
	for _, c := range PrimitiveCategories() {
		if c.IsParameterized() {
			continue
		}
		primitive := NewPrimitive(c)
		builders[SerdeName(c)] = func(d Descriptor) (Type, error) {
			return primitive, nil
		}
	}
}

// FromDescriptor builds the Type described by d, validating parameters as the parser does.
func FromDescriptor(d Descriptor) (Type, error) {
	build, ok := builders[d.Kind]
	if !ok {
		return Type{}, errors.Errorf("unknown type kind '%s'", d.Kind)
	}
	return build(d)
}

func buildList(d Descriptor) (Type, error) {
	if d.Element == nil {
		return Type{}, errors.New("array descriptor without element type")
	}
	element, err := FromDescriptor(*d.Element)
	if err != nil {
		return Type{}, errors.Wrap(err, "couldn't build array element type")
	}
	return NewList(element), nil
}

func buildMap(d Descriptor) (Type, error) {
	if d.Key == nil || d.Value == nil {
		return Type{}, errors.New("map descriptor without key or value type")
	}
	key, err := FromDescriptor(*d.Key)
	if err != nil {
		return Type{}, errors.Wrap(err, "couldn't build map key type")
	}
	value, err := FromDescriptor(*d.Value)
	if err != nil {
		return Type{}, errors.Wrap(err, "couldn't build map value type")
	}
	return NewMap(key, value), nil
}

func buildStruct(d Descriptor) (Type, error) {
	if len(d.Fields) == 0 {
		return Type{}, errors.New("struct descriptor without fields")
	}
	fields := make([]StructField, len(d.Fields))
	for i := range d.Fields {
		fieldType, err := FromDescriptor(d.Fields[i].Type)
		if err != nil {
			return Type{}, errors.Wrapf(err, "couldn't build type of struct field '%s'", d.Fields[i].Name)
		}
		fields[i] = StructField{Name: d.Fields[i].Name, Type: fieldType}
	}
	return NewStruct(fields...), nil
}

func buildUnion(d Descriptor) (Type, error) {
	if len(d.Alternatives) == 0 {
		return Type{}, errors.New("uniontype descriptor without alternatives")
	}
	alternatives := make([]Type, len(d.Alternatives))
	for i := range d.Alternatives {
		alternative, err := FromDescriptor(d.Alternatives[i])
		if err != nil {
			return Type{}, errors.Wrapf(err, "couldn't build uniontype alternative with index %d", i)
		}
		alternatives[i] = alternative
	}
	return NewUnion(alternatives...), nil
}

func (t Type) MarshalJSON() ([]byte, error) {
	var arena fastjson.Arena
	return DescriptorToJSON(&arena, ToDescriptor(t)).MarshalTo(nil), nil
}

func (t *Type) UnmarshalJSON(data []byte) error {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return errors.Wrap(err, "couldn't parse json")
	}
	d, err := DescriptorFromJSON(v)
	if err != nil {
		return err
	}
	out, err := FromDescriptor(d)
	if err != nil {
		return errors.Wrap(err, "couldn't build type from descriptor")
	}
	*t = out
	return nil
}

func DescriptorToJSON(arena *fastjson.Arena, d Descriptor) *fastjson.Value {
	obj := arena.NewObject()
	obj.Set("kind", arena.NewString(string(d.Kind)))
	switch d.Kind {
	case SerdeDecimal:
		obj.Set("precision", arena.NewNumberInt(d.Precision))
		obj.Set("scale", arena.NewNumberInt(d.Scale))
	case SerdeChar, SerdeVarchar:
		obj.Set("length", arena.NewNumberInt(d.Length))
	case SerdeList:
		obj.Set("element", DescriptorToJSON(arena, *d.Element))
	case SerdeMap:
		obj.Set("key", DescriptorToJSON(arena, *d.Key))
		obj.Set("value", DescriptorToJSON(arena, *d.Value))
	case SerdeStruct:
		fields := arena.NewArray()
		for i, field := range d.Fields {
			fieldObj := arena.NewObject()
			fieldObj.Set("name", arena.NewString(field.Name))
			fieldObj.Set("type", DescriptorToJSON(arena, field.Type))
			fields.SetArrayItem(i, fieldObj)
		}
		obj.Set("fields", fields)
	case SerdeUnion:
		alternatives := arena.NewArray()
		for i := range d.Alternatives {
			alternatives.SetArrayItem(i, DescriptorToJSON(arena, d.Alternatives[i]))
		}
		obj.Set("alternatives", alternatives)
	}
	return obj
}

func DescriptorFromJSON(v *fastjson.Value) (Descriptor, error) {
	if v.Type() != fastjson.TypeObject {
		return Descriptor{}, errors.Errorf("expected JSON object, got %s", v.Type())
	}
	kind := v.GetStringBytes("kind")
	if kind == nil {
		return Descriptor{}, errors.New("type descriptor is missing 'kind'")
	}
	out := Descriptor{
		Kind:      SerdeTypeName(kind),
		Precision: v.GetInt("precision"),
		Scale:     v.GetInt("scale"),
		Length:    v.GetInt("length"),
	}

	for _, child := range []struct {
		key string
		dst **Descriptor
	}{
		{"element", &out.Element},
		{"key", &out.Key},
		{"value", &out.Value},
	} {
		childValue := v.Get(child.key)
		if childValue == nil {
			continue
		}
		d, err := DescriptorFromJSON(childValue)
		if err != nil {
			return Descriptor{}, errors.Wrapf(err, "couldn't decode '%s'", child.key)
		}
		*child.dst = &d
	}

	for i, fieldValue := range v.GetArray("fields") {
		name := fieldValue.GetStringBytes("name")
		if name == nil {
			return Descriptor{}, errors.Errorf("struct field with index %d is missing 'name'", i)
		}
		typeValue := fieldValue.Get("type")
		if typeValue == nil {
			return Descriptor{}, errors.Errorf("struct field '%s' is missing 'type'", name)
		}
		fieldType, err := DescriptorFromJSON(typeValue)
		if err != nil {
			return Descriptor{}, errors.Wrapf(err, "couldn't decode struct field '%s'", name)
		}
		out.Fields = append(out.Fields, FieldDescriptor{Name: string(name), Type: fieldType})
	}

	for i, alternativeValue := range v.GetArray("alternatives") {
		alternative, err := DescriptorFromJSON(alternativeValue)
		if err != nil {
			return Descriptor{}, errors.Wrapf(err, "couldn't decode uniontype alternative with index %d", i)
		}
		out.Alternatives = append(out.Alternatives, alternative)
	}

	return out, nil
}
