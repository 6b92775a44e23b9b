package hms

import (
	"github.com/apache/thrift/lib/go/thrift"
	"github.com/pkg/errors"
)

// exception is a metastore exception declared in a method's throws clause.
// Thrift's own application exceptions don't implement it.
type exception interface {
	error
	thrift.TStruct
	metastoreException()
}

type MetaException struct {
	Message string `thrift:"message,1" db:"message" json:"message"`
}

func (p *MetaException) Error() string {
	return "MetaException: " + p.Message
}

func (p *MetaException) Read(iprot thrift.TProtocol) error {
	return readExceptionMessage(iprot, p, &p.Message)
}

func (p *MetaException) Write(oprot thrift.TProtocol) error {
	return writeExceptionMessage(oprot, p, "MetaException", p.Message)
}

type NoSuchObjectException struct {
	Message string `thrift:"message,1" db:"message" json:"message"`
}

func (p *NoSuchObjectException) Error() string {
	return "NoSuchObjectException: " + p.Message
}

func (p *NoSuchObjectException) Read(iprot thrift.TProtocol) error {
	return readExceptionMessage(iprot, p, &p.Message)
}

func (p *NoSuchObjectException) Write(oprot thrift.TProtocol) error {
	return writeExceptionMessage(oprot, p, "NoSuchObjectException", p.Message)
}

type UnknownTableException struct {
	Message string `thrift:"message,1" db:"message" json:"message"`
}

func (p *UnknownTableException) Error() string {
	return "UnknownTableException: " + p.Message
}

func (p *UnknownTableException) Read(iprot thrift.TProtocol) error {
	return readExceptionMessage(iprot, p, &p.Message)
}

func (p *UnknownTableException) Write(oprot thrift.TProtocol) error {
	return writeExceptionMessage(oprot, p, "UnknownTableException", p.Message)
}

type UnknownDBException struct {
	Message string `thrift:"message,1" db:"message" json:"message"`
}

func (p *UnknownDBException) Error() string {
	return "UnknownDBException: " + p.Message
}

func (p *UnknownDBException) Read(iprot thrift.TProtocol) error {
	return readExceptionMessage(iprot, p, &p.Message)
}

func (p *UnknownDBException) Write(oprot thrift.TProtocol) error {
	return writeExceptionMessage(oprot, p, "UnknownDBException", p.Message)
}

func readExceptionMessage(iprot thrift.TProtocol, p interface{}, message *string) error {
	return readStruct(iprot, p, func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error) {
		if fieldID == 1 && fieldType == thrift.STRING {
			return readInto(iprot, readString, message)
		}
		return false, nil
	})
}

func writeExceptionMessage(oprot thrift.TProtocol, p interface{}, name string, message string) error {
	return writeStruct(oprot, p, name, field("message", thrift.STRING, 1, writeString, message))
}

func (*MetaException) metastoreException()         {}
func (*NoSuchObjectException) metastoreException() {}
func (*UnknownTableException) metastoreException() {}
func (*UnknownDBException) metastoreException()    {}

func newMetaException() exception         { return &MetaException{} }
func newNoSuchObjectException() exception { return &NoSuchObjectException{} }
func newUnknownTableException() exception { return &UnknownTableException{} }
func newUnknownDBException() exception    { return &UnknownDBException{} }

// IsNotFound reports whether the cause of err says the requested object doesn't exist.
func IsNotFound(err error) bool {
	switch errors.Cause(err).(type) {
	case *NoSuchObjectException, *UnknownTableException, *UnknownDBException:
		return true
	}
	return false
}
