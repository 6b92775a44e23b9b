package hms

import (
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// method describes a ThriftHiveMetastore call: its name, the type of its
// result and the exceptions it declares, in field id order starting at 1.
type method[T any] struct {
	name       string
	resultType thrift.TType
	read       reader[T]
	write      writer[T]
	exceptions []func() exception
}

var (
	getAllDatabasesMethod = method[[]string]{
		name:       "get_all_databases",
		resultType: thrift.LIST,
		read:       readStringList,
		write:      writeStringList,
		exceptions: []func() exception{newMetaException},
	}
	getDatabaseMethod = method[*Database]{
		name:       "get_database",
		resultType: thrift.STRUCT,
		read:       readStructValue[Database],
		write:      writeStructValue[*Database],
		exceptions: []func() exception{newNoSuchObjectException, newMetaException},
	}
	getAllTablesMethod = method[[]string]{
		name:       "get_all_tables",
		resultType: thrift.LIST,
		read:       readStringList,
		write:      writeStringList,
		exceptions: []func() exception{newMetaException},
	}
	getTableMethod = method[*Table]{
		name:       "get_table",
		resultType: thrift.STRUCT,
		read:       readStructValue[Table],
		write:      writeStructValue[*Table],
		exceptions: []func() exception{newMetaException, newNoSuchObjectException},
	}
	getSchemaMethod = method[[]*FieldSchema]{
		name:       "get_schema",
		resultType: thrift.LIST,
		read:       readList(readStructValue[FieldSchema]),
		write:      writeList(thrift.STRUCT, writeStructValue[*FieldSchema]),
		exceptions: []func() exception{newMetaException, newUnknownTableException, newUnknownDBException},
	}
	getPartitionNamesMethod = method[[]string]{
		name:       "get_partition_names",
		resultType: thrift.LIST,
		read:       readStringList,
		write:      writeStringList,
		exceptions: []func() exception{newNoSuchObjectException, newMetaException},
	}
	getPartitionsMethod = method[[]*Partition]{
		name:       "get_partitions",
		resultType: thrift.LIST,
		read:       readList(readStructValue[Partition]),
		write:      writeList(thrift.STRUCT, writeStructValue[*Partition]),
		exceptions: []func() exception{newNoSuchObjectException, newMetaException},
	}
	getPartitionByNameMethod = method[*Partition]{
		name:       "get_partition_by_name",
		resultType: thrift.STRUCT,
		read:       readStructValue[Partition],
		write:      writeStructValue[*Partition],
		exceptions: []func() exception{newMetaException, newNoSuchObjectException},
	}
)

// callResult is the <method>_result struct: field 0 holds the return value,
// the following fields hold at most one declared exception.
type callResult[T any] struct {
	method      *method[T]
	Success     T
	HasSuccess  bool
	Exception   exception
	ExceptionID int16
}

func newCallResult[T any](m *method[T]) *callResult[T] {
	return &callResult[T]{method: m}
}

func (p *callResult[T]) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, p, func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error) {
		if fieldID == 0 && fieldType == p.method.resultType {
			p.HasSuccess = true
			return readInto(iprot, p.method.read, &p.Success)
		}
		if fieldID >= 1 && int(fieldID) <= len(p.method.exceptions) && fieldType == thrift.STRUCT {
			exc := p.method.exceptions[fieldID-1]()
			if err := exc.Read(iprot); err != nil {
				return true, err
			}
			p.Exception, p.ExceptionID = exc, fieldID
			return true, nil
		}
		return false, nil
	})
}

func (p *callResult[T]) Write(oprot thrift.TProtocol) error {
	var fields []fieldWriter
	if p.HasSuccess {
		fields = append(fields, field("success", p.method.resultType, 0, p.method.write, p.Success))
	}
	if p.Exception != nil {
		fields = append(fields, field(fmt.Sprintf("o%d", p.ExceptionID), thrift.STRUCT, p.ExceptionID, writeStructValue[exception], p.Exception))
	}
	return writeStruct(oprot, p, p.method.name+"_result", fields...)
}

type getAllDatabasesArgs struct{}

func (p *getAllDatabasesArgs) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, p, func(thrift.TProtocol, int16, thrift.TType) (bool, error) {
		return false, nil
	})
}

func (p *getAllDatabasesArgs) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, p, "get_all_databases_args")
}

// nameArgs are the arguments of calls taking a single object name.
type nameArgs struct {
	method string
	field  string
	Name   string
}

func (p *nameArgs) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, p, func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error) {
		if fieldID == 1 && fieldType == thrift.STRING {
			return readInto(iprot, readString, &p.Name)
		}
		return false, nil
	})
}

func (p *nameArgs) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, p, p.method+"_args",
		field(p.field, thrift.STRING, 1, writeString, p.Name),
	)
}

// tableArgs are the arguments of calls addressing a table, optionally with a
// partition name (field 3, string) or a partition limit (field 3, i16).
type tableArgs struct {
	method     string
	dbField    string
	tableField string
	DbName     string
	TableName  string
	PartName   *string
	MaxParts   *int16
}

func (p *tableArgs) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, p, func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error) {
		switch {
		case fieldID == 1 && fieldType == thrift.STRING:
			return readInto(iprot, readString, &p.DbName)
		case fieldID == 2 && fieldType == thrift.STRING:
			return readInto(iprot, readString, &p.TableName)
		case fieldID == 3 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.PartName)
		case fieldID == 3 && fieldType == thrift.I16:
			return readOptional(iprot, func(iprot thrift.TProtocol) (int16, error) { return iprot.ReadI16() }, &p.MaxParts)
		}
		return false, nil
	})
}

func (p *tableArgs) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, p, p.method+"_args",
		field(p.dbField, thrift.STRING, 1, writeString, p.DbName),
		field(p.tableField, thrift.STRING, 2, writeString, p.TableName),
		optionalField("part_name", thrift.STRING, 3, writeString, p.PartName),
		optionalField("max_parts", thrift.I16, 3, writeI16, p.MaxParts),
	)
}
