package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recap-build/gometastore/hms"
	"github.com/recap-build/gometastore/metastore"
)

func strPtr(s string) *string {
	return &s
}

type fakeCatalog struct {
	maxParts int16
}

func (c *fakeCatalog) GetAllDatabases(ctx context.Context) ([]string, error) {
	return []string{"default", "sales"}, nil
}

func (c *fakeCatalog) GetDatabase(ctx context.Context, name string) (*hms.Database, error) {
	owner := hms.PrincipalTypeRole
	return &hms.Database{Name: name, OwnerName: strPtr("etl"), OwnerType: &owner}, nil
}

func (c *fakeCatalog) GetAllTables(ctx context.Context, dbName string) ([]string, error) {
	return []string{"orders"}, nil
}

func (c *fakeCatalog) GetTable(ctx context.Context, dbName, tableName string) (*hms.Table, error) {
	return &hms.Table{
		TableName: strPtr(tableName),
		DbName:    strPtr(dbName),
		Sd: &hms.StorageDescriptor{
			Cols: []*hms.FieldSchema{
				{Name: "id", Type: strPtr("bigint")},
				{Name: "tags", Type: strPtr("map<string,array<string>>"), Comment: strPtr("free form")},
			},
			InputFormat:  strPtr("in"),
			OutputFormat: strPtr("out"),
			SerdeInfo:    &hms.SerDeInfo{SerializationLib: strPtr("serde"), Parameters: map[string]string{}},
		},
		PartitionKeys: []*hms.FieldSchema{{Name: "ds", Type: strPtr("string")}},
		Parameters:    map[string]string{},
		TableType:     strPtr("EXTERNAL_TABLE"),
	}, nil
}

func (c *fakeCatalog) GetSchema(ctx context.Context, dbName, tableName string) ([]*hms.FieldSchema, error) {
	return nil, nil
}

func (c *fakeCatalog) GetPartitionNames(ctx context.Context, dbName, tableName string, maxParts int16) ([]string, error) {
	c.maxParts = maxParts
	return []string{"ds=2020-01-01", "ds=2020-01-02"}, nil
}

func (c *fakeCatalog) GetPartitions(ctx context.Context, dbName, tableName string, maxParts int16) ([]*hms.Partition, error) {
	c.maxParts = maxParts
	partition, err := c.GetPartitionByName(ctx, dbName, tableName, "ds=2020-01-01")
	return []*hms.Partition{partition}, err
}

func (c *fakeCatalog) GetPartitionByName(ctx context.Context, dbName, tableName, partName string) (*hms.Partition, error) {
	createTime := int32(1600000000)
	return &hms.Partition{
		Values:     []string{"2020-01-01"},
		DbName:     strPtr(dbName),
		TableName:  strPtr(tableName),
		CreateTime: &createTime,
		Sd: &hms.StorageDescriptor{
			Location:     strPtr("/warehouse/orders/ds=2020-01-01"),
			InputFormat:  strPtr("in"),
			OutputFormat: strPtr("out"),
			SerdeInfo:    &hms.SerDeInfo{SerializationLib: strPtr("serde")},
		},
	}, nil
}

func (c *fakeCatalog) Close() error {
	return nil
}

func run(t *testing.T, catalog *fakeCatalog, args ...string) string {
	previous := openCatalog
	openCatalog = func(ctx context.Context, s *settings) (metastore.Catalog, error) {
		return catalog, nil
	}
	t.Cleanup(func() {
		openCatalog = previous
	})

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(append(args, "--verbose", "--config", filepath.Join(t.TempDir(), "config.yml")))
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return buf.String()
}

func TestCommands(t *testing.T) {
	catalog := &fakeCatalog{}

	assert.Equal(t, "database\ndefault\nsales\n", run(t, catalog, "databases", "--output", "csv"))
	assert.Equal(t, "table\norders\n", run(t, catalog, "tables", "sales", "--output", "csv"))
	assert.Equal(t, "column\nid\ntags\n", run(t, catalog, "columns", "sales", "orders", "--output", "csv"))
	assert.Equal(t,
		"name,location,owner,owner_type,comment,parameters\nsales,,etl,ROLE,,\n",
		run(t, catalog, "database", "sales", "--output", "csv"),
	)
	assert.Equal(t,
		"name,type,category,comment,partition_key\n"+
			"id,bigint,PRIMITIVE,,false\n"+
			"tags,\"map<string,array<string>>\",MAP,free form,false\n"+
			"ds,string,PRIMITIVE,,true\n",
		run(t, catalog, "describe", "sales", "orders", "--output", "csv"),
	)
}

func TestPartitionCommands(t *testing.T) {
	catalog := &fakeCatalog{}

	out := run(t, catalog, "partitions", "sales", "orders", "--max", "5", "--details=false", "--output", "csv")
	assert.Equal(t, "partition\nds=2020-01-01\nds=2020-01-02\n", out)
	assert.Equal(t, int16(5), catalog.maxParts)

	out = run(t, catalog, "partitions", "sales", "orders", "--max", "-1", "--details", "--output", "csv")
	assert.Contains(t, out, "sales,orders,2020-01-01,/warehouse/orders/ds=2020-01-01,serde,in,out,1600000000,,-1,")
	assert.Equal(t, int16(-1), catalog.maxParts)

	out = run(t, catalog, "partition", "sales", "orders", "ds=2020-01-01", "--output", "json")
	assert.Contains(t, out, `"location":"/warehouse/orders/ds=2020-01-01"`)
	assert.Contains(t, out, `"write_id":-1`)
}

func TestTypeCommands(t *testing.T) {
	out := run(t, &fakeCatalog{}, "parse", "decimal(20,10)", "--max-depth", "0", "--output", "csv")
	assert.Equal(t, "canonical,name,category,descriptor\n"+
		"\"decimal(20,10)\",DECIMAL,PRIMITIVE,\"{\"\"kind\"\":\"\"decimal\"\",\"\"precision\"\":20,\"\"scale\"\":10}\"\n", out)

	out = run(t, &fakeCatalog{}, "tokenize", "map<a,b>", "--output", "csv")
	assert.Equal(t, "position,text,word\n0,map,true\n3,<,false\n4,a,true\n5,\",\",false\n6,b,true\n7,>,false\n", out)
}

func TestParseCommandError(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"parse", "array<int", "--verbose", "--max-depth", "0", "--config", filepath.Join(t.TempDir(), "config.yml")})
	err := rootCmd.ExecuteContext(context.Background())
	assert.EqualError(t, err, "Error: '>' expected at the end of 'array<int'")
}

func TestParseCommandConfigLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("parser:\n  maxDepth: 2\n  maxLength: 20\n"), 0644))

	parse := func(args ...string) error {
		maxDepthFlag := parseCmd.Flags().Lookup("max-depth")
		maxDepthFlag.Changed = false
		maxDepth = 0
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetArgs(append(append([]string{"parse"}, args...), "--verbose", "--output", "csv", "--config", path))
		return rootCmd.ExecuteContext(context.Background())
	}

	assert.EqualError(t, parse("array<array<int>>"), "Type nesting depth exceeds the limit of 2")
	assert.NoError(t, parse("array<int>"))
	assert.NoError(t, parse("array<array<int>>", "--max-depth", "0"))
	assert.EqualError(t, parse("struct<a:int,b:string,c:date>", "--max-depth", "0"), "Type string length 29 exceeds the limit of 20")
}

func TestLoadSettings(t *testing.T) {
	s, err := loadSettings(map[string]interface{}{}, "", "")
	require.NoError(t, err)
	assert.Equal(t, &settings{
		Backend: backendThrift,
		Thrift: hms.Options{
			Address:   hms.DefaultAddress,
			Protocol:  "binary",
			Transport: "buffered",
			Timeout:   hms.DefaultTimeout,
		},
		Postgres:  s.Postgres,
		Metastore: metastore.Options{TypeCacheSize: 10000},
	}, s)
	assert.Equal(t, 5432, s.Postgres.Port)
	assert.Equal(t, "metastore", s.Postgres.Database)
	assert.Equal(t, map[string]string{}, s.Postgres.RuntimeParams)

	s, err = loadSettings(map[string]interface{}{
		"metastore": map[string]interface{}{
			"address": "from-config:9083",
			"timeout": "1m",
		},
		"postgres": map[string]interface{}{
			"params": map[string]interface{}{"search_path": "hive", "statement_timeout": 5000},
		},
		"parser": map[string]interface{}{"maxDepth": 32},
	}, "from-flag:9083", "postgres")
	require.NoError(t, err)
	assert.Equal(t, "from-flag:9083", s.Thrift.Address)
	assert.Equal(t, backendPostgres, s.Backend)
	assert.Equal(t, time.Minute, s.Thrift.Timeout)
	assert.Equal(t, 32, s.Metastore.MaxTypeDepth)
	assert.Equal(t, map[string]string{"search_path": "hive", "statement_timeout": "5000"}, s.Postgres.RuntimeParams)

	_, err = loadSettings(map[string]interface{}{}, "", "mysql")
	assert.Error(t, err)

	_, err = loadSettings(map[string]interface{}{"postgres": map[string]interface{}{"port": "high"}}, "", "")
	assert.Error(t, err)

	_, err = loadSettings(map[string]interface{}{"postgres": map[string]interface{}{"params": "search_path=hive"}}, "", "")
	assert.Error(t, err)
}
