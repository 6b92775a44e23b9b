package metastore

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recap-build/gometastore/hms"
	"github.com/recap-build/gometastore/htypes"
)

func ordersTable() *hms.Table {
	numBuckets := int32(4)
	writeID := int64(17)
	return &hms.Table{
		TableName: strPtr("orders"),
		DbName:    strPtr("sales"),
		Owner:     strPtr("hive"),
		Sd: &hms.StorageDescriptor{
			Cols: []*hms.FieldSchema{
				{Name: "id", Type: strPtr("bigint")},
				{Name: "amount", Type: strPtr("decimal(10,2)"), Comment: strPtr("gross")},
				{Name: "items", Type: strPtr("array<struct<sku:string,qty:int>>")},
			},
			Location:     strPtr("hdfs:///warehouse/sales.db/orders"),
			InputFormat:  strPtr("org.apache.hadoop.mapred.TextInputFormat"),
			OutputFormat: strPtr("org.apache.hadoop.hive.ql.io.HiveIgnoreKeyTextOutputFormat"),
			NumBuckets:   &numBuckets,
			SerdeInfo: &hms.SerDeInfo{
				SerializationLib: strPtr("org.apache.hadoop.hive.serde2.lazy.LazySimpleSerDe"),
				Parameters:       map[string]string{"field.delim": ","},
			},
			BucketCols: []string{"id"},
			SortCols:   []*hms.Order{{Col: "id", Order: 1}, {Col: "amount", Order: 0}},
		},
		PartitionKeys: []*hms.FieldSchema{{Name: "ds", Type: strPtr("string")}},
		Parameters:    map[string]string{"TABLE_BUCKETING_VERSION": "2"},
		TableType:     strPtr("MANAGED_TABLE"),
		WriteID:       &writeID,
	}
}

func TestMetastore_GetTable(t *testing.T) {
	m := newTestMetastore(t, &fakeCatalog{table: ordersTable()})

	got, err := m.GetTable(context.Background(), "sales", "orders")
	require.NoError(t, err)

	amount, err := htypes.NewDecimal(10, 2)
	require.NoError(t, err)
	items := htypes.NewList(htypes.NewStruct(
		htypes.StructField{Name: "sku", Type: htypes.String},
		htypes.StructField{Name: "qty", Type: htypes.Int},
	))
	writeID := int64(17)
	assert.Equal(t, &Table{
		DatabaseName: "sales",
		Name:         "orders",
		TableType:    "MANAGED_TABLE",
		Columns: []Column{
			{Name: "id", Type: htypes.Long},
			{Name: "amount", Type: amount, Comment: "gross"},
			{Name: "items", Type: items},
		},
		PartitionColumns: []Column{{Name: "ds", Type: htypes.String}},
		Storage: &Storage{
			Format: &StorageFormat{
				Serde:        "org.apache.hadoop.hive.serde2.lazy.LazySimpleSerDe",
				InputFormat:  "org.apache.hadoop.mapred.TextInputFormat",
				OutputFormat: "org.apache.hadoop.hive.ql.io.HiveIgnoreKeyTextOutputFormat",
			},
			Location: strPtr("hdfs:///warehouse/sales.db/orders"),
			BucketProperty: &BucketProperty{
				BucketedBy:  []string{"id"},
				BucketCount: 4,
				Version:     BucketingVersionV2,
				SortingColumns: []SortingColumn{
					{Column: "id", Order: SortingOrderAscending},
					{Column: "amount", Order: SortingOrderDescending},
				},
			},
			SerdeParameters: map[string]string{"field.delim": ","},
		},
		Parameters: map[string]string{"TABLE_BUCKETING_VERSION": "2"},
		WriteID:    &writeID,
		Owner:      strPtr("hive"),
	}, got)
}

func TestMetastore_GetTableVariants(t *testing.T) {
	tests := []struct {
		name   string
		modify func(table *hms.Table)
		check  func(t *testing.T, table *Table)
	}{
		{
			name: "not bucketed",
			modify: func(table *hms.Table) {
				table.Sd.BucketCols = nil
				table.Sd.NumBuckets = nil
			},
			check: func(t *testing.T, table *Table) {
				assert.Nil(t, table.Storage.BucketProperty)
			},
		},
		{
			name: "bucketing version 1",
			modify: func(table *hms.Table) {
				table.Parameters = map[string]string{}
			},
			check: func(t *testing.T, table *Table) {
				assert.Equal(t, BucketingVersionV1, table.Storage.BucketProperty.Version)
			},
		},
		{
			name: "skewed",
			modify: func(table *hms.Table) {
				table.Sd.SkewedInfo = &hms.SkewedInfo{
					SkewedColNames:  []string{"id"},
					SkewedColValues: [][]string{{"1"}},
					SkewedColValueLocationMaps: []hms.SkewedValueLocation{
						{Values: []string{"1"}, Location: "hdfs:///skewed/1"},
					},
				}
			},
			check: func(t *testing.T, table *Table) {
				assert.True(t, table.Storage.Skewed)
				assert.Equal(t, &SkewedInfo{
					ColumnNames:    []string{"id"},
					ColumnValues:   [][]string{{"1"}},
					ValueLocations: []SkewedValueLocation{{Values: []string{"1"}, Location: "hdfs:///skewed/1"}},
				}, table.Storage.SkewedInfo)
			},
		},
		{
			name: "no location",
			modify: func(table *hms.Table) {
				table.Sd.Location = nil
			},
			check: func(t *testing.T, table *Table) {
				assert.Nil(t, table.Storage.Location)
			},
		},
		{
			name: "missing column comment",
			modify: func(table *hms.Table) {
				table.PartitionKeys[0].Comment = nil
			},
			check: func(t *testing.T, table *Table) {
				assert.Equal(t, "", table.PartitionColumns[0].Comment)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := ordersTable()
			tt.modify(table)
			m := newTestMetastore(t, &fakeCatalog{table: table})

			got, err := m.GetTable(context.Background(), "sales", "orders")
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestMetastore_GetTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(table *hms.Table)
		wantErr string
	}{
		{
			name:    "storage descriptor",
			modify:  func(table *hms.Table) { table.Sd = nil },
			wantErr: "storage descriptor is missing",
		},
		{
			name:    "serde info",
			modify:  func(table *hms.Table) { table.Sd.SerdeInfo = nil },
			wantErr: "couldn't translate storage descriptor: serde info is missing",
		},
		{
			name:    "serialization library",
			modify:  func(table *hms.Table) { table.Sd.SerdeInfo.SerializationLib = nil },
			wantErr: "couldn't translate storage descriptor: serialization library is missing",
		},
		{
			name:    "input format",
			modify:  func(table *hms.Table) { table.Sd.InputFormat = nil },
			wantErr: "couldn't translate storage descriptor: input format is missing",
		},
		{
			name:    "output format",
			modify:  func(table *hms.Table) { table.Sd.OutputFormat = nil },
			wantErr: "couldn't translate storage descriptor: output format is missing",
		},
		{
			name:    "number of buckets",
			modify:  func(table *hms.Table) { table.Sd.NumBuckets = nil },
			wantErr: "couldn't translate storage descriptor: number of buckets is missing",
		},
		{
			name:    "serde parameters",
			modify:  func(table *hms.Table) { table.Sd.SerdeInfo.Parameters = nil },
			wantErr: "couldn't translate storage descriptor: serde parameters is missing",
		},
		{
			name: "table parameters",
			modify: func(table *hms.Table) {
				table.Parameters = nil
				table.Sd.BucketCols = nil
			},
			wantErr: "table parameters is missing",
		},
		{
			name:    "table type",
			modify:  func(table *hms.Table) { table.TableType = nil },
			wantErr: "table type is missing",
		},
		{
			name:    "table name",
			modify:  func(table *hms.Table) { table.TableName = nil },
			wantErr: "table name is missing",
		},
		{
			name:    "database name",
			modify:  func(table *hms.Table) { table.DbName = nil },
			wantErr: "database name is missing",
		},
		{
			name:    "column type",
			modify:  func(table *hms.Table) { table.Sd.Cols[1].Type = nil },
			wantErr: "couldn't translate columns: type of column 1 (amount) is missing",
		},
		{
			name:    "partition key name",
			modify:  func(table *hms.Table) { table.PartitionKeys[0].Name = "" },
			wantErr: "couldn't translate partition keys: name of column 0 is missing",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := ordersTable()
			tt.modify(table)
			m := newTestMetastore(t, &fakeCatalog{table: table})

			_, err := m.GetTable(context.Background(), "sales", "orders")
			assert.EqualError(t, err, "couldn't translate table sales.orders: "+tt.wantErr)
		})
	}
}

func TestMetastore_GetTableInvalidColumnType(t *testing.T) {
	table := ordersTable()
	table.Sd.Cols[1].Type = strPtr("decimal(39,2)")
	m := newTestMetastore(t, &fakeCatalog{table: table})

	_, err := m.GetTable(context.Background(), "sales", "orders")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "couldn't parse type of column amount")

	var parseErr *htypes.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, htypes.ErrorKindValidation, parseErr.Kind)
	assert.Equal(t, "Decimal precision cannot exceed 38", parseErr.Message)
}

func partitionFixture() *hms.Partition {
	createTime := int32(1600000000)
	lastAccessTime := int32(1600000100)
	writeID := int64(3)
	numBuckets := int32(2)
	return &hms.Partition{
		Values:         []string{"2020-01-01"},
		DbName:         strPtr("sales"),
		TableName:      strPtr("orders"),
		CreateTime:     &createTime,
		LastAccessTime: &lastAccessTime,
		Sd: &hms.StorageDescriptor{
			Location:     strPtr("hdfs:///warehouse/sales.db/orders/ds=2020-01-01"),
			InputFormat:  strPtr("org.apache.hadoop.hive.ql.io.parquet.MapredParquetInputFormat"),
			OutputFormat: strPtr("org.apache.hadoop.hive.ql.io.parquet.MapredParquetOutputFormat"),
			NumBuckets:   &numBuckets,
			SerdeInfo: &hms.SerDeInfo{
				SerializationLib: strPtr("org.apache.hadoop.hive.ql.io.parquet.serde.ParquetHiveSerDe"),
				Parameters:       map[string]string{"serialization.format": "1"},
			},
			BucketCols: []string{"id"},
			SortCols:   []*hms.Order{{Col: "id", Order: 1}},
		},
		Parameters: map[string]string{"numRows": "10"},
		CatName:    strPtr("hive"),
		WriteID:    &writeID,
	}
}

func TestMetastore_GetPartition(t *testing.T) {
	m := newTestMetastore(t, &fakeCatalog{partition: partitionFixture()})

	got, err := m.GetPartition(context.Background(), "sales", "orders", "ds=2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, &Partition{
		DatabaseName:   "sales",
		TableName:      "orders",
		Values:         []string{"2020-01-01"},
		Parameters:     map[string]string{"numRows": "10"},
		CreateTime:     1600000000,
		LastAccessTime: 1600000100,
		Storage: &Storage{
			Format: &StorageFormat{
				Serde:        "org.apache.hadoop.hive.ql.io.parquet.serde.ParquetHiveSerDe",
				InputFormat:  "org.apache.hadoop.hive.ql.io.parquet.MapredParquetInputFormat",
				OutputFormat: "org.apache.hadoop.hive.ql.io.parquet.MapredParquetOutputFormat",
			},
			Location: strPtr("hdfs:///warehouse/sales.db/orders/ds=2020-01-01"),
			BucketProperty: &BucketProperty{
				BucketedBy:     []string{"id"},
				BucketCount:    2,
				Version:        BucketingVersionV1,
				SortingColumns: []SortingColumn{{Column: "id", Order: SortingOrderAscending}},
			},
			SerdeParameters: map[string]string{"serialization.format": "1"},
		},
		CatalogName: "hive",
		WriteID:     3,
	}, got)
}

func TestMetastore_GetPartitionDefaults(t *testing.T) {
	partition := partitionFixture()
	partition.Values = nil
	partition.Parameters = nil
	partition.CreateTime = nil
	partition.LastAccessTime = nil
	partition.CatName = nil
	partition.WriteID = nil
	partition.Sd.Location = nil
	partition.Sd.SerdeInfo.Parameters = nil
	partition.Sd.BucketCols = nil
	partition.Sd.SortCols = nil
	partition.Sd.NumBuckets = nil
	m := newTestMetastore(t, &fakeCatalog{partition: partition})

	got, err := m.GetPartition(context.Background(), "sales", "orders", "ds=2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Values)
	assert.Equal(t, map[string]string{}, got.Parameters)
	assert.Equal(t, int64(-1), got.CreateTime)
	assert.Equal(t, int64(-1), got.LastAccessTime)
	assert.Equal(t, "", got.CatalogName)
	assert.Equal(t, int64(-1), got.WriteID)
	assert.Equal(t, strPtr(""), got.Storage.Location)
	assert.Equal(t, map[string]string{}, got.Storage.SerdeParameters)
	assert.Equal(t, &BucketProperty{
		BucketedBy:     []string{},
		Version:        BucketingVersionV1,
		SortingColumns: []SortingColumn{},
	}, got.Storage.BucketProperty)
}

func TestMetastore_GetPartitionErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(partition *hms.Partition) *hms.Partition
		wantErr string
	}{
		{
			name:    "partition",
			modify:  func(partition *hms.Partition) *hms.Partition { return nil },
			wantErr: "partition is missing",
		},
		{
			name: "storage descriptor",
			modify: func(partition *hms.Partition) *hms.Partition {
				partition.Sd = nil
				return partition
			},
			wantErr: "storage descriptor is missing",
		},
		{
			name: "serde info",
			modify: func(partition *hms.Partition) *hms.Partition {
				partition.Sd.SerdeInfo = nil
				return partition
			},
			wantErr: "serde info is missing",
		},
		{
			name: "serialization library",
			modify: func(partition *hms.Partition) *hms.Partition {
				partition.Sd.SerdeInfo.SerializationLib = nil
				return partition
			},
			wantErr: "serialization library is missing",
		},
		{
			name: "input format",
			modify: func(partition *hms.Partition) *hms.Partition {
				partition.Sd.InputFormat = nil
				return partition
			},
			wantErr: "input format is missing",
		},
		{
			name: "output format",
			modify: func(partition *hms.Partition) *hms.Partition {
				partition.Sd.OutputFormat = nil
				return partition
			},
			wantErr: "output format is missing",
		},
		{
			name: "database name",
			modify: func(partition *hms.Partition) *hms.Partition {
				partition.DbName = nil
				return partition
			},
			wantErr: "database name is missing",
		},
		{
			name: "table name",
			modify: func(partition *hms.Partition) *hms.Partition {
				partition.TableName = nil
				return partition
			},
			wantErr: "table name is missing",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMetastore(t, &fakeCatalog{partition: tt.modify(partitionFixture())})

			_, err := m.GetPartition(context.Background(), "sales", "orders", "ds=2020-01-01")
			assert.EqualError(t, err, "couldn't translate partition ds=2020-01-01 of sales.orders: "+tt.wantErr)
		})
	}
}

func TestMetastore_GetPartitions(t *testing.T) {
	lenient := partitionFixture()
	lenient.Sd.SerdeInfo.SerializationLib = nil
	lenient.Sd.InputFormat = nil
	lenient.Sd.OutputFormat = nil
	lenient.Sd.Location = nil
	lenient.DbName = nil

	withoutStorage := partitionFixture()
	withoutStorage.Sd = nil

	catalog := &fakeCatalog{partitions: []*hms.Partition{partitionFixture(), lenient, withoutStorage}}
	m := newTestMetastore(t, catalog)

	got, err := m.GetPartitions(context.Background(), "sales", "orders", -1)
	require.NoError(t, err)
	assert.Equal(t, int16(-1), catalog.maxParts)
	require.Len(t, got, 2)

	assert.Equal(t, "org.apache.hadoop.hive.ql.io.parquet.serde.ParquetHiveSerDe", got[0].Storage.Format.Serde)
	assert.Equal(t, "sales", got[0].DatabaseName)

	assert.Equal(t, &StorageFormat{}, got[1].Storage.Format)
	assert.Nil(t, got[1].Storage.Location)
	assert.Equal(t, "", got[1].DatabaseName)
	assert.Equal(t, BucketingVersionV1, got[1].Storage.BucketProperty.Version)
}
