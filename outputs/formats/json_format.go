package formats

import (
	"fmt"
	"io"

	"github.com/valyala/fastjson"

	"github.com/recap-build/gometastore/htypes"
)

// JSONFormatter writes one JSON object per row.
type JSONFormatter struct {
	buf    []byte
	arena  *fastjson.Arena
	w      io.Writer
	fields []string
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{
		buf:   make([]byte, 0, 1024),
		arena: new(fastjson.Arena),
		w:     w,
	}
}

func (t *JSONFormatter) SetSchema(fields []string) {
	t.fields = fields
}

func (t *JSONFormatter) Write(values []interface{}) error {
	obj := t.arena.NewObject()
	for i := range t.fields {
		obj.Set(t.fields[i], ValueToJson(t.arena, values[i]))
	}

	t.buf = obj.MarshalTo(t.buf)
	t.buf = append(t.buf, '\n')
	_, err := t.w.Write(t.buf)
	t.buf = t.buf[:0]
	t.arena.Reset()
	return err
}

// ValueToJson renders types as their structured descriptor.
func ValueToJson(arena *fastjson.Arena, value interface{}) *fastjson.Value {
	switch value := value.(type) {
	case nil:
		return arena.NewNull()
	case string:
		return arena.NewString(value)
	case *string:
		if value == nil {
			return arena.NewNull()
		}
		return arena.NewString(*value)
	case int:
		return arena.NewNumberInt(value)
	case int64:
		return arena.NewNumberString(fmt.Sprintf("%d", value))
	case bool:
		if value {
			return arena.NewTrue()
		}
		return arena.NewFalse()
	case []string:
		arr := arena.NewArray()
		for i := range value {
			arr.SetArrayItem(i, arena.NewString(value[i]))
		}
		return arr
	case map[string]string:
		obj := arena.NewObject()
		for _, k := range sortedKeys(value) {
			obj.Set(k, arena.NewString(value[k]))
		}
		return obj
	case htypes.Type:
		return htypes.DescriptorToJSON(arena, htypes.ToDescriptor(value))
	default:
		panic(fmt.Sprintf("invalid value type to print: %T", value))
	}
}

func (t *JSONFormatter) Close() error {
	return nil
}
