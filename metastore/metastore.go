package metastore

import (
	"context"
	"crypto/rand"
	"log"
	"math"

	"github.com/dgraph-io/ristretto"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"

	"github.com/recap-build/gometastore/hms"
	"github.com/recap-build/gometastore/htypes"
)

// Catalog is the set of metastore calls the translation layer needs.
// It's implemented by the Thrift client and by the direct Postgres backend.
type Catalog interface {
	GetAllDatabases(ctx context.Context) ([]string, error)
	GetDatabase(ctx context.Context, name string) (*hms.Database, error)
	GetAllTables(ctx context.Context, dbName string) ([]string, error)
	GetTable(ctx context.Context, dbName, tableName string) (*hms.Table, error)
	GetSchema(ctx context.Context, dbName, tableName string) ([]*hms.FieldSchema, error)
	GetPartitionNames(ctx context.Context, dbName, tableName string, maxParts int16) ([]string, error)
	GetPartitions(ctx context.Context, dbName, tableName string, maxParts int16) ([]*hms.Partition, error)
	GetPartitionByName(ctx context.Context, dbName, tableName, partName string) (*hms.Partition, error)
	Close() error
}

type Options struct {
	// TypeCacheSize is the number of parsed type strings kept in memory. Zero disables the cache.
	TypeCacheSize int64
	MaxTypeDepth  int
	MaxTypeLength int
}

// Metastore exposes catalog objects as domain records with parsed column types.
type Metastore struct {
	catalog    Catalog
	sessionID  string
	typeCache  *ristretto.Cache
	parserOpts []htypes.ParserOption
}

func New(catalog Catalog, opts Options) (*Metastore, error) {
	m := &Metastore{
		catalog:   catalog,
		sessionID: ulid.MustNew(ulid.Now(), rand.Reader).String(),
	}
	if opts.MaxTypeDepth > 0 {
		m.parserOpts = append(m.parserOpts, htypes.WithMaxDepth(opts.MaxTypeDepth))
	}
	if opts.MaxTypeLength > 0 {
		m.parserOpts = append(m.parserOpts, htypes.WithMaxLength(opts.MaxTypeLength))
	}
	if opts.TypeCacheSize > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: opts.TypeCacheSize * 10,
			MaxCost:     opts.TypeCacheSize,
			BufferItems: 64,
		})
		if err != nil {
			return nil, errors.Wrap(err, "couldn't initialize type cache")
		}
		m.typeCache = cache
	}
	log.Printf("metastore session %s started", m.sessionID)
	return m, nil
}

func (m *Metastore) SessionID() string {
	return m.sessionID
}

func (m *Metastore) Close() error {
	log.Printf("metastore session %s closing", m.sessionID)
	if m.typeCache != nil {
		m.typeCache.Close()
	}
	return m.catalog.Close()
}

// ParseType parses a column type string. Types are immutable, so parsed trees are shared through the cache.
func (m *Metastore) ParseType(typeString string) (htypes.Type, error) {
	if m.typeCache != nil {
		if cached, ok := m.typeCache.Get(typeString); ok {
			return cached.(htypes.Type), nil
		}
	}
	t, err := htypes.Parse(typeString, m.parserOpts...)
	if err != nil {
		return htypes.Type{}, err
	}
	if m.typeCache != nil {
		m.typeCache.Set(typeString, t, 1)
	}
	return t, nil
}

func maxPartitions(max int) (int16, error) {
	if max < -1 || max > math.MaxInt16 {
		return 0, errors.Errorf("max partitions must be between -1 and %d, got %d", math.MaxInt16, max)
	}
	return int16(max), nil
}

func (m *Metastore) ListDatabases(ctx context.Context) ([]string, error) {
	databases, err := m.catalog.GetAllDatabases(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't list databases")
	}
	return databases, nil
}

func (m *Metastore) GetDatabase(ctx context.Context, name string) (*Database, error) {
	db, err := m.catalog.GetDatabase(ctx, name)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't get database %s", name)
	}
	out, err := translateDatabase(db)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't translate database %s", name)
	}
	return out, nil
}

func (m *Metastore) ListTables(ctx context.Context, dbName string) ([]string, error) {
	tables, err := m.catalog.GetAllTables(ctx, dbName)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't list tables of %s", dbName)
	}
	return tables, nil
}

// ListColumns returns the names of the table's data columns, without partition keys.
func (m *Metastore) ListColumns(ctx context.Context, dbName, tableName string) ([]string, error) {
	table, err := m.catalog.GetTable(ctx, dbName, tableName)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't get table %s.%s", dbName, tableName)
	}
	if table == nil || table.Sd == nil {
		return nil, errors.Wrapf(missing("storage descriptor"), "couldn't list columns of %s.%s", dbName, tableName)
	}
	out := make([]string, 0, len(table.Sd.Cols))
	for _, col := range table.Sd.Cols {
		if col != nil {
			out = append(out, col.Name)
		}
	}
	return out, nil
}

// ListPartitions returns partition names, at most max of them. A max of -1 means all.
func (m *Metastore) ListPartitions(ctx context.Context, dbName, tableName string, max int) ([]string, error) {
	maxParts, err := maxPartitions(max)
	if err != nil {
		return nil, err
	}
	names, err := m.catalog.GetPartitionNames(ctx, dbName, tableName, maxParts)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't list partitions of %s.%s", dbName, tableName)
	}
	return names, nil
}

// GetPartitions skips partitions that have no storage descriptor or serde info.
func (m *Metastore) GetPartitions(ctx context.Context, dbName, tableName string, max int) ([]*Partition, error) {
	maxParts, err := maxPartitions(max)
	if err != nil {
		return nil, err
	}
	partitions, err := m.catalog.GetPartitions(ctx, dbName, tableName, maxParts)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't get partitions of %s.%s", dbName, tableName)
	}

	out := make([]*Partition, 0, len(partitions))
	for i, partition := range partitions {
		if partition == nil || partition.Sd == nil || partition.Sd.SerdeInfo == nil {
			log.Printf("metastore session %s: skipping partition %d of %s.%s without storage information", m.sessionID, i, dbName, tableName)
			continue
		}
		translated, err := translatePartitionLenient(partition)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't translate partition %d of %s.%s", i, dbName, tableName)
		}
		out = append(out, translated)
	}
	return out, nil
}

func (m *Metastore) GetPartition(ctx context.Context, dbName, tableName, partitionName string) (*Partition, error) {
	partition, err := m.catalog.GetPartitionByName(ctx, dbName, tableName, partitionName)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't get partition %s of %s.%s", partitionName, dbName, tableName)
	}
	out, err := translatePartitionStrict(partition)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't translate partition %s of %s.%s", partitionName, dbName, tableName)
	}
	return out, nil
}

func (m *Metastore) GetTable(ctx context.Context, dbName, tableName string) (*Table, error) {
	table, err := m.catalog.GetTable(ctx, dbName, tableName)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't get table %s.%s", dbName, tableName)
	}
	out, err := translateTable(table, m.ParseType)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't translate table %s.%s", dbName, tableName)
	}
	return out, nil
}

// GetSchema returns the table's columns followed by its partition keys, with parsed types.
func (m *Metastore) GetSchema(ctx context.Context, dbName, tableName string) ([]Column, error) {
	fields, err := m.catalog.GetSchema(ctx, dbName, tableName)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't get schema of %s.%s", dbName, tableName)
	}
	out, err := translateColumns(fields, m.ParseType)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't translate schema of %s.%s", dbName, tableName)
	}
	return out, nil
}
