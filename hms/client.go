package hms

import (
	"context"
	"crypto/tls"
	"sync"
	"time"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/pkg/errors"
)

const (
	DefaultAddress    = "localhost:9083"
	DefaultTimeout    = 10 * time.Second
	defaultBufferSize = 8192
)

type Options struct {
	Address string
	// Protocol is binary, compact or json.
	Protocol string
	// Transport is buffered or framed.
	Transport          string
	Secure             bool
	InsecureSkipVerify bool
	Timeout            time.Duration
}

// Return protocol factory for a given human readable protocol string
func GetProtocolFactory(protocol string) (thrift.TProtocolFactory, error) {
	switch protocol {
	case "binary", "":
		return thrift.NewTBinaryProtocolFactoryDefault(), nil
	case "compact":
		return thrift.NewTCompactProtocolFactory(), nil
	case "json":
		return thrift.NewTJSONProtocolFactory(), nil
	default:
		return nil, errors.Errorf("unknown thrift protocol '%s', expected binary, compact or json", protocol)
	}
}

// Return transport factory for a given human readable transport string
func GetTransportFactory(transport string) (thrift.TTransportFactory, error) {
	switch transport {
	case "buffered", "":
		return thrift.NewTBufferedTransportFactory(defaultBufferSize), nil
	case "framed":
		return thrift.NewTFramedTransportFactory(thrift.NewTTransportFactory()), nil
	default:
		return nil, errors.Errorf("unknown thrift transport '%s', expected buffered or framed", transport)
	}
}

// Client is a ThriftHiveMetastore client over a single connection.
// Calls are serialized, so a Client may be shared between goroutines.
type Client struct {
	mu        sync.Mutex
	transport thrift.TTransport
	client    thrift.TClient
}

// NewClient creates a client over an already opened transport.
func NewClient(transport thrift.TTransport, iprot, oprot thrift.TProtocol) *Client {
	return &Client{
		transport: transport,
		client:    thrift.NewTStandardClient(iprot, oprot),
	}
}

// Dial connects to the metastore. There is no retry policy, a failed
// connection attempt is reported to the caller.
func Dial(ctx context.Context, opts Options) (*Client, error) {
	protocolFactory, err := GetProtocolFactory(opts.Protocol)
	if err != nil {
		return nil, err
	}
	transportFactory, err := GetTransportFactory(opts.Transport)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	addr := opts.Address
	if addr == "" {
		addr = DefaultAddress
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		timeout = time.Until(deadline)
	}

	var connectionTransport thrift.TTransport
	if opts.Secure {
		cfg := new(tls.Config)
		cfg.InsecureSkipVerify = opts.InsecureSkipVerify
		connectionTransport, err = thrift.NewTSSLSocketTimeout(addr, cfg, timeout)
	} else {
		connectionTransport, err = thrift.NewTSocketTimeout(addr, timeout)
	}
	if err != nil {
		return nil, WrapError(err)
	}
	if connectionTransport == nil {
		return nil, NewClientError("Error opening socket, got nil transport. Is server available?")
	}
	connectionTransport, err = transportFactory.GetTransport(connectionTransport)
	if err != nil {
		return nil, WrapError(err)
	}
	if connectionTransport == nil {
		return nil, NewClientError("Error from transportFactory.GetTransport(), got nil transport. Is server available?")
	}

	if err := connectionTransport.Open(); err != nil {
		return nil, WrapError(err)
	}

	return NewClient(
		connectionTransport,
		protocolFactory.GetProtocol(connectionTransport),
		protocolFactory.GetProtocol(connectionTransport),
	), nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transport == nil {
		return nil
	}
	err := c.transport.Close()
	c.transport = nil
	c.client = nil
	return err
}

func call[T any](ctx context.Context, c *Client, m *method[T], args thrift.TStruct) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if c.client == nil {
		return zero, NewClientError("client is closed")
	}

	result := newCallResult(m)
	if err := c.client.Call(ctx, m.name, args, result); err != nil {
		return zero, WrapError(err)
	}
	if result.Exception != nil {
		return zero, result.Exception
	}
	if !result.HasSuccess {
		return zero, WrapError(thrift.NewTApplicationException(thrift.MISSING_RESULT, m.name+" failed: unknown result"))
	}
	return result.Success, nil
}

func (c *Client) GetAllDatabases(ctx context.Context) ([]string, error) {
	return call(ctx, c, &getAllDatabasesMethod, &getAllDatabasesArgs{})
}

func (c *Client) GetDatabase(ctx context.Context, name string) (*Database, error) {
	return call(ctx, c, &getDatabaseMethod, &nameArgs{
		method: getDatabaseMethod.name,
		field:  "name",
		Name:   name,
	})
}

func (c *Client) GetAllTables(ctx context.Context, dbName string) ([]string, error) {
	return call(ctx, c, &getAllTablesMethod, &nameArgs{
		method: getAllTablesMethod.name,
		field:  "db_name",
		Name:   dbName,
	})
}

func (c *Client) GetTable(ctx context.Context, dbName, tableName string) (*Table, error) {
	return call(ctx, c, &getTableMethod, &tableArgs{
		method:     getTableMethod.name,
		dbField:    "dbname",
		tableField: "tbl_name",
		DbName:     dbName,
		TableName:  tableName,
	})
}

func (c *Client) GetSchema(ctx context.Context, dbName, tableName string) ([]*FieldSchema, error) {
	return call(ctx, c, &getSchemaMethod, &tableArgs{
		method:     getSchemaMethod.name,
		dbField:    "db_name",
		tableField: "table_name",
		DbName:     dbName,
		TableName:  tableName,
	})
}

// GetPartitionNames lists partition names; maxParts of -1 means no limit.
func (c *Client) GetPartitionNames(ctx context.Context, dbName, tableName string, maxParts int16) ([]string, error) {
	return call(ctx, c, &getPartitionNamesMethod, &tableArgs{
		method:     getPartitionNamesMethod.name,
		dbField:    "db_name",
		tableField: "tbl_name",
		DbName:     dbName,
		TableName:  tableName,
		MaxParts:   &maxParts,
	})
}

// GetPartitions lists partitions; maxParts of -1 means no limit.
func (c *Client) GetPartitions(ctx context.Context, dbName, tableName string, maxParts int16) ([]*Partition, error) {
	return call(ctx, c, &getPartitionsMethod, &tableArgs{
		method:     getPartitionsMethod.name,
		dbField:    "db_name",
		tableField: "tbl_name",
		DbName:     dbName,
		TableName:  tableName,
		MaxParts:   &maxParts,
	})
}

func (c *Client) GetPartitionByName(ctx context.Context, dbName, tableName, partName string) (*Partition, error) {
	return call(ctx, c, &getPartitionByNameMethod, &tableArgs{
		method:     getPartitionByNameMethod.name,
		dbField:    "db_name",
		tableField: "tbl_name",
		DbName:     dbName,
		TableName:  tableName,
		PartName:   &partName,
	})
}
