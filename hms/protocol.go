package hms

import (
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

type reader[T any] func(iprot thrift.TProtocol) (T, error)

type writer[T any] func(oprot thrift.TProtocol, v T) error

// fieldHandler reads the value of a single field.
// It returns false for fields it doesn't know, which are then skipped.
type fieldHandler func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error)

func readStruct(iprot thrift.TProtocol, p interface{}, handle fieldHandler) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return thrift.PrependError(fmt.Sprintf("%T read error: ", p), err)
	}

	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin()
		if err != nil {
			return thrift.PrependError(fmt.Sprintf("%T field %d read error: ", p, fieldID), err)
		}
		if fieldType == thrift.STOP {
			break
		}
		handled, err := handle(iprot, fieldID, fieldType)
		if err != nil {
			return thrift.PrependError(fmt.Sprintf("%T field %d read error: ", p, fieldID), err)
		}
		if !handled {
			if err := iprot.Skip(fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(); err != nil {
			return err
		}
	}

	if err := iprot.ReadStructEnd(); err != nil {
		return thrift.PrependError(fmt.Sprintf("%T read struct end error: ", p), err)
	}
	return nil
}

func readString(iprot thrift.TProtocol) (string, error) {
	return iprot.ReadString()
}

func readI32(iprot thrift.TProtocol) (int32, error) {
	return iprot.ReadI32()
}

func readI64(iprot thrift.TProtocol) (int64, error) {
	return iprot.ReadI64()
}

func readBool(iprot thrift.TProtocol) (bool, error) {
	return iprot.ReadBool()
}

// readInto reads a value and stores it in dst, handling the field.
func readInto[T any](iprot thrift.TProtocol, read reader[T], dst *T) (bool, error) {
	v, err := read(iprot)
	if err != nil {
		return true, err
	}
	*dst = v
	return true, nil
}

// readOptional reads a value and stores a pointer to it in dst, handling the field.
func readOptional[T any](iprot thrift.TProtocol, read reader[T], dst **T) (bool, error) {
	v, err := read(iprot)
	if err != nil {
		return true, err
	}
	*dst = &v
	return true, nil
}

func readStructValue[T any, PT interface {
	*T
	thrift.TStruct
}](iprot thrift.TProtocol) (PT, error) {
	out := PT(new(T))
	if err := out.Read(iprot); err != nil {
		return nil, err
	}
	return out, nil
}

func readList[T any](read reader[T]) reader[[]T] {
	return func(iprot thrift.TProtocol) ([]T, error) {
		_, size, err := iprot.ReadListBegin()
		if err != nil {
			return nil, thrift.PrependError("error reading list begin: ", err)
		}
		out := make([]T, 0, size)
		for i := 0; i < size; i++ {
			elem, err := read(iprot)
			if err != nil {
				return nil, thrift.PrependError(fmt.Sprintf("error reading list element %d: ", i), err)
			}
			out = append(out, elem)
		}
		if err := iprot.ReadListEnd(); err != nil {
			return nil, thrift.PrependError("error reading list end: ", err)
		}
		return out, nil
	}
}

func readMap[K comparable, V any](readKey reader[K], readValue reader[V]) reader[map[K]V] {
	return func(iprot thrift.TProtocol) (map[K]V, error) {
		_, _, size, err := iprot.ReadMapBegin()
		if err != nil {
			return nil, thrift.PrependError("error reading map begin: ", err)
		}
		out := make(map[K]V, size)
		for i := 0; i < size; i++ {
			key, err := readKey(iprot)
			if err != nil {
				return nil, thrift.PrependError("error reading map key: ", err)
			}
			value, err := readValue(iprot)
			if err != nil {
				return nil, thrift.PrependError("error reading map value: ", err)
			}
			out[key] = value
		}
		if err := iprot.ReadMapEnd(); err != nil {
			return nil, thrift.PrependError("error reading map end: ", err)
		}
		return out, nil
	}
}

var (
	readStringList = readList(readString)
	readStringMap  = readMap(readString, readString)
)

type fieldWriter func(oprot thrift.TProtocol) error

func writeStruct(oprot thrift.TProtocol, p interface{}, name string, fields ...fieldWriter) error {
	if err := oprot.WriteStructBegin(name); err != nil {
		return thrift.PrependError(fmt.Sprintf("%T write struct begin error: ", p), err)
	}
	for _, field := range fields {
		if field == nil {
			continue
		}
		if err := field(oprot); err != nil {
			return thrift.PrependError(fmt.Sprintf("%T ", p), err)
		}
	}
	if err := oprot.WriteFieldStop(); err != nil {
		return thrift.PrependError("write field stop error: ", err)
	}
	if err := oprot.WriteStructEnd(); err != nil {
		return thrift.PrependError("write struct stop error: ", err)
	}
	return nil
}

func field[T any](name string, fieldType thrift.TType, id int16, write writer[T], v T) fieldWriter {
	return func(oprot thrift.TProtocol) error {
		if err := oprot.WriteFieldBegin(name, fieldType, id); err != nil {
			return thrift.PrependError(fmt.Sprintf("write field begin error %d:%s: ", id, name), err)
		}
		if err := write(oprot, v); err != nil {
			return thrift.PrependError(fmt.Sprintf("%s (%d) field write error: ", name, id), err)
		}
		if err := oprot.WriteFieldEnd(); err != nil {
			return thrift.PrependError(fmt.Sprintf("write field end error %d:%s: ", id, name), err)
		}
		return nil
	}
}

// optionalField writes nothing when v is nil.
func optionalField[T any](name string, fieldType thrift.TType, id int16, write writer[T], v *T) fieldWriter {
	if v == nil {
		return nil
	}
	return field(name, fieldType, id, write, *v)
}

func structField[T any, PT interface {
	*T
	thrift.TStruct
}](name string, id int16, v PT) fieldWriter {
	if v == nil {
		return nil
	}
	return field(name, thrift.STRUCT, id, writeStructValue[PT], v)
}

// listField writes nothing for a nil slice, so absent lists stay absent.
func listField[T any](name string, id int16, elemType thrift.TType, write writer[T], v []T) fieldWriter {
	if v == nil {
		return nil
	}
	return field(name, thrift.LIST, id, writeList(elemType, write), v)
}

func mapField[K comparable, V any](name string, id int16, keyType, valueType thrift.TType, writeKey writer[K], writeValue writer[V], v map[K]V) fieldWriter {
	if v == nil {
		return nil
	}
	return field(name, thrift.MAP, id, writeMap(keyType, valueType, writeKey, writeValue), v)
}

func writeString(oprot thrift.TProtocol, v string) error {
	return oprot.WriteString(v)
}

func writeI16(oprot thrift.TProtocol, v int16) error {
	return oprot.WriteI16(v)
}

func writeI32(oprot thrift.TProtocol, v int32) error {
	return oprot.WriteI32(v)
}

func writeI64(oprot thrift.TProtocol, v int64) error {
	return oprot.WriteI64(v)
}

func writeBool(oprot thrift.TProtocol, v bool) error {
	return oprot.WriteBool(v)
}

func writeStructValue[T thrift.TStruct](oprot thrift.TProtocol, v T) error {
	return v.Write(oprot)
}

func writeList[T any](elemType thrift.TType, write writer[T]) writer[[]T] {
	return func(oprot thrift.TProtocol, v []T) error {
		if err := oprot.WriteListBegin(elemType, len(v)); err != nil {
			return thrift.PrependError("error writing list begin: ", err)
		}
		for _, elem := range v {
			if err := write(oprot, elem); err != nil {
				return err
			}
		}
		if err := oprot.WriteListEnd(); err != nil {
			return thrift.PrependError("error writing list end: ", err)
		}
		return nil
	}
}

func writeMap[K comparable, V any](keyType, valueType thrift.TType, writeKey writer[K], writeValue writer[V]) writer[map[K]V] {
	return func(oprot thrift.TProtocol, v map[K]V) error {
		if err := oprot.WriteMapBegin(keyType, valueType, len(v)); err != nil {
			return thrift.PrependError("error writing map begin: ", err)
		}
		for key, value := range v {
			if err := writeKey(oprot, key); err != nil {
				return err
			}
			if err := writeValue(oprot, value); err != nil {
				return err
			}
		}
		if err := oprot.WriteMapEnd(); err != nil {
			return thrift.PrependError("error writing map end: ", err)
		}
		return nil
	}
}

var (
	writeStringList = writeList(thrift.STRING, writeString)
	writeStringMap  = writeMap(thrift.STRING, thrift.STRING, writeString, writeString)
)
