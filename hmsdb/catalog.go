package hmsdb

import (
	"context"
	"fmt"

	"github.com/recap-build/gometastore/hms"
)

// Catalog serves metastore reads straight from the metastore's Postgres database.
// It returns the same wire structures as the Thrift client. A connection is opened per call.
type Catalog struct {
	config  *Config
	connect func(ctx context.Context, config *Config) (session, error)
}

func NewCatalog(config *Config) (*Catalog, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid postgres config: %w", err)
	}
	return &Catalog{
		config:  config,
		connect: connect,
	}, nil
}

func (c *Catalog) withSession(ctx context.Context, fn func(s session) error) error {
	s, err := c.connect(ctx, c.config)
	if err != nil {
		return fmt.Errorf("couldn't connect to database: %w", err)
	}
	if err := fn(s); err != nil {
		s.Close()
		return err
	}
	if err := s.Close(); err != nil {
		return fmt.Errorf("couldn't close database: %w", err)
	}
	return nil
}

func (c *Catalog) Close() error {
	return nil
}

func principalType(name *string) *hms.PrincipalType {
	if name == nil {
		return nil
	}
	var out hms.PrincipalType
	switch *name {
	case "USER":
		out = hms.PrincipalTypeUser
	case "ROLE":
		out = hms.PrincipalTypeRole
	case "GROUP":
		out = hms.PrincipalTypeGroup
	default:
		return nil
	}
	return &out
}

func int32Ptr(v *int64) *int32 {
	if v == nil {
		return nil
	}
	out := int32(*v)
	return &out
}

func (c *Catalog) GetAllDatabases(ctx context.Context) ([]string, error) {
	var out []string
	err := c.withSession(ctx, func(s session) (err error) {
		out, err = queryStrings(ctx, s, `SELECT "NAME" FROM "DBS" ORDER BY "NAME"`)
		return err
	})
	return out, err
}

func (c *Catalog) GetDatabase(ctx context.Context, name string) (*hms.Database, error) {
	var out *hms.Database
	err := c.withSession(ctx, func(s session) error {
		var dbID int64
		var ownerType *string
		found := false
		db := &hms.Database{}
		err := queryRows(ctx, s, func(r rows) error {
			found = true
			return r.Scan(&dbID, &db.Name, &db.Description, &db.LocationURI, &db.OwnerName, &ownerType, &db.CatalogName)
		}, `SELECT "DB_ID", "NAME", "DESC", "DB_LOCATION_URI", "OWNER_NAME", "OWNER_TYPE", "CTLG_NAME" FROM "DBS" WHERE "NAME" = $1`, name)
		if err != nil {
			return fmt.Errorf("couldn't get database: %w", err)
		}
		if !found {
			return &hms.NoSuchObjectException{Message: fmt.Sprintf("database %s not found", name)}
		}
		db.OwnerType = principalType(ownerType)

		db.Parameters, err = queryParameters(ctx, s, `SELECT "PARAM_KEY", "PARAM_VALUE" FROM "DATABASE_PARAMS" WHERE "DB_ID" = $1`, dbID)
		if err != nil {
			return fmt.Errorf("couldn't get database parameters: %w", err)
		}
		out = db
		return nil
	})
	return out, err
}

func (c *Catalog) GetAllTables(ctx context.Context, dbName string) ([]string, error) {
	var out []string
	err := c.withSession(ctx, func(s session) (err error) {
		out, err = queryStrings(ctx, s, `SELECT t."TBL_NAME" FROM "TBLS" t JOIN "DBS" d ON t."DB_ID" = d."DB_ID" WHERE d."NAME" = $1 ORDER BY t."TBL_NAME"`, dbName)
		return err
	})
	return out, err
}

type tableRow struct {
	id   int64
	sdID *int64
	*hms.Table
}

func getTable(ctx context.Context, s session, dbName, tableName string) (*tableRow, error) {
	var row *tableRow
	err := queryRows(ctx, s, func(r rows) error {
		t := &tableRow{Table: &hms.Table{}}
		var createTime, lastAccessTime, retention *int64
		var ownerType *string
		if err := r.Scan(
			&t.id, &t.Table.TableName, &t.Table.DbName, &t.Table.Owner, &ownerType,
			&createTime, &lastAccessTime, &retention, &t.Table.TableType,
			&t.Table.ViewOriginalText, &t.Table.ViewExpandedText, &t.sdID, &t.Table.CatName, &t.Table.WriteID,
		); err != nil {
			return err
		}
		if createTime != nil {
			t.Table.CreateTime = int32(*createTime)
		}
		if lastAccessTime != nil {
			t.Table.LastAccessTime = int32(*lastAccessTime)
		}
		if retention != nil {
			t.Table.Retention = int32(*retention)
		}
		t.Table.OwnerType = principalType(ownerType)
		row = t
		return nil
	}, `SELECT t."TBL_ID", t."TBL_NAME", d."NAME", t."OWNER", t."OWNER_TYPE", t."CREATE_TIME", t."LAST_ACCESS_TIME", t."RETENTION", t."TBL_TYPE", t."VIEW_ORIGINAL_TEXT", t."VIEW_EXPANDED_TEXT", t."SD_ID", d."CTLG_NAME", t."WRITE_ID"
FROM "TBLS" t JOIN "DBS" d ON t."DB_ID" = d."DB_ID" WHERE d."NAME" = $1 AND t."TBL_NAME" = $2`, dbName, tableName)
	if err != nil {
		return nil, fmt.Errorf("couldn't get table: %w", err)
	}
	if row == nil {
		return nil, &hms.NoSuchObjectException{Message: fmt.Sprintf("%s.%s table not found", dbName, tableName)}
	}

	row.Table.Parameters, err = queryParameters(ctx, s, `SELECT "PARAM_KEY", "PARAM_VALUE" FROM "TABLE_PARAMS" WHERE "TBL_ID" = $1`, row.id)
	if err != nil {
		return nil, fmt.Errorf("couldn't get table parameters: %w", err)
	}

	row.Table.PartitionKeys = []*hms.FieldSchema{}
	err = queryRows(ctx, s, func(r rows) error {
		key := &hms.FieldSchema{}
		if err := r.Scan(&key.Name, &key.Type, &key.Comment); err != nil {
			return err
		}
		row.Table.PartitionKeys = append(row.Table.PartitionKeys, key)
		return nil
	}, `SELECT "PKEY_NAME", "PKEY_TYPE", "PKEY_COMMENT" FROM "PARTITION_KEYS" WHERE "TBL_ID" = $1 ORDER BY "INTEGER_IDX"`, row.id)
	if err != nil {
		return nil, fmt.Errorf("couldn't get partition keys: %w", err)
	}

	if row.sdID != nil {
		row.Table.Sd, err = getStorageDescriptor(ctx, s, *row.sdID)
		if err != nil {
			return nil, err
		}
	}
	return row, nil
}

func (c *Catalog) GetTable(ctx context.Context, dbName, tableName string) (*hms.Table, error) {
	var out *hms.Table
	err := c.withSession(ctx, func(s session) error {
		row, err := getTable(ctx, s, dbName, tableName)
		if err != nil {
			return err
		}
		out = row.Table
		return nil
	})
	return out, err
}

// GetSchema returns the table's columns followed by its partition keys.
func (c *Catalog) GetSchema(ctx context.Context, dbName, tableName string) ([]*hms.FieldSchema, error) {
	var out []*hms.FieldSchema
	err := c.withSession(ctx, func(s session) error {
		row, err := getTable(ctx, s, dbName, tableName)
		if err != nil {
			return err
		}
		if row.Table.Sd != nil {
			out = append(out, row.Table.Sd.Cols...)
		}
		out = append(out, row.Table.PartitionKeys...)
		return nil
	})
	return out, err
}

func getStorageDescriptor(ctx context.Context, s session, sdID int64) (*hms.StorageDescriptor, error) {
	var sd *hms.StorageDescriptor
	var cdID, serdeID, numBuckets *int64
	var serdeName, serdeLib *string
	err := queryRows(ctx, s, func(r rows) error {
		sd = &hms.StorageDescriptor{}
		var compressed, subDirectories *bool
		if err := r.Scan(
			&sd.Location, &sd.InputFormat, &sd.OutputFormat, &compressed, &numBuckets,
			&subDirectories, &cdID, &serdeID, &serdeName, &serdeLib,
		); err != nil {
			return err
		}
		sd.Compressed = compressed != nil && *compressed
		sd.StoredAsSubDirectories = subDirectories
		sd.NumBuckets = int32Ptr(numBuckets)
		return nil
	}, `SELECT s."LOCATION", s."INPUT_FORMAT", s."OUTPUT_FORMAT", s."IS_COMPRESSED", s."NUM_BUCKETS", s."IS_STOREDASSUBDIRECTORIES", s."CD_ID", se."SERDE_ID", se."NAME", se."SLIB"
FROM "SDS" s LEFT JOIN "SERDES" se ON s."SERDE_ID" = se."SERDE_ID" WHERE s."SD_ID" = $1`, sdID)
	if err != nil {
		return nil, fmt.Errorf("couldn't get storage descriptor: %w", err)
	}
	if sd == nil {
		return nil, nil
	}

	sd.Cols = []*hms.FieldSchema{}
	if cdID != nil {
		err = queryRows(ctx, s, func(r rows) error {
			col := &hms.FieldSchema{}
			if err := r.Scan(&col.Name, &col.Type, &col.Comment); err != nil {
				return err
			}
			sd.Cols = append(sd.Cols, col)
			return nil
		}, `SELECT "COLUMN_NAME", "TYPE_NAME", "COMMENT" FROM "COLUMNS_V2" WHERE "CD_ID" = $1 ORDER BY "INTEGER_IDX"`, *cdID)
		if err != nil {
			return nil, fmt.Errorf("couldn't get columns: %w", err)
		}
	}

	if serdeID != nil {
		sd.SerdeInfo = &hms.SerDeInfo{Name: serdeName, SerializationLib: serdeLib}
		sd.SerdeInfo.Parameters, err = queryParameters(ctx, s, `SELECT "PARAM_KEY", "PARAM_VALUE" FROM "SERDE_PARAMS" WHERE "SERDE_ID" = $1`, *serdeID)
		if err != nil {
			return nil, fmt.Errorf("couldn't get serde parameters: %w", err)
		}
	}

	sd.Parameters, err = queryParameters(ctx, s, `SELECT "PARAM_KEY", "PARAM_VALUE" FROM "SD_PARAMS" WHERE "SD_ID" = $1`, sdID)
	if err != nil {
		return nil, fmt.Errorf("couldn't get storage parameters: %w", err)
	}

	sd.BucketCols, err = queryStrings(ctx, s, `SELECT "BUCKET_COL_NAME" FROM "BUCKETING_COLS" WHERE "SD_ID" = $1 ORDER BY "INTEGER_IDX"`, sdID)
	if err != nil {
		return nil, fmt.Errorf("couldn't get bucketing columns: %w", err)
	}

	sd.SortCols = []*hms.Order{}
	err = queryRows(ctx, s, func(r rows) error {
		order := &hms.Order{}
		var direction int64
		if err := r.Scan(&order.Col, &direction); err != nil {
			return err
		}
		order.Order = int32(direction)
		sd.SortCols = append(sd.SortCols, order)
		return nil
	}, `SELECT "COLUMN_NAME", "ORDER" FROM "SORT_COLS" WHERE "SD_ID" = $1 ORDER BY "INTEGER_IDX"`, sdID)
	if err != nil {
		return nil, fmt.Errorf("couldn't get sorting columns: %w", err)
	}

	skewedColumns, err := queryStrings(ctx, s, `SELECT "SKEWED_COL_NAME" FROM "SKEWED_COL_NAMES" WHERE "SD_ID" = $1 ORDER BY "INTEGER_IDX"`, sdID)
	if err != nil {
		return nil, fmt.Errorf("couldn't get skewed columns: %w", err)
	}
	if len(skewedColumns) > 0 {
		sd.SkewedInfo = &hms.SkewedInfo{
			SkewedColNames:             skewedColumns,
			SkewedColValues:            [][]string{},
			SkewedColValueLocationMaps: []hms.SkewedValueLocation{},
		}
	}

	return sd, nil
}

type partitionRow struct {
	id   int64
	sdID *int64
	name string
	*hms.Partition
}

const partitionColumns = `SELECT p."PART_ID", p."PART_NAME", p."CREATE_TIME", p."LAST_ACCESS_TIME", p."SD_ID", p."WRITE_ID", d."NAME", t."TBL_NAME", d."CTLG_NAME"
FROM "PARTITIONS" p JOIN "TBLS" t ON p."TBL_ID" = t."TBL_ID" JOIN "DBS" d ON t."DB_ID" = d."DB_ID"
WHERE d."NAME" = $1 AND t."TBL_NAME" = $2`

func scanPartition(r rows) (*partitionRow, error) {
	p := &partitionRow{Partition: &hms.Partition{}}
	var createTime, lastAccessTime *int64
	if err := r.Scan(
		&p.id, &p.name, &createTime, &lastAccessTime, &p.sdID, &p.Partition.WriteID,
		&p.Partition.DbName, &p.Partition.TableName, &p.Partition.CatName,
	); err != nil {
		return nil, err
	}
	p.Partition.CreateTime = int32Ptr(createTime)
	p.Partition.LastAccessTime = int32Ptr(lastAccessTime)
	return p, nil
}

// listPartitions runs a partition query, limiting it to maxParts rows unless maxParts is negative.
func listPartitions(ctx context.Context, s session, maxParts int16, sql string, args ...interface{}) ([]*partitionRow, error) {
	if maxParts >= 0 {
		args = append(args, int64(maxParts))
		sql = fmt.Sprintf("%s LIMIT $%d", sql, len(args))
	}
	var out []*partitionRow
	err := queryRows(ctx, s, func(r rows) error {
		p, err := scanPartition(r)
		if err != nil {
			return err
		}
		out = append(out, p)
		return nil
	}, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("couldn't list partitions: %w", err)
	}
	return out, nil
}

func fillPartition(ctx context.Context, s session, p *partitionRow) error {
	var err error
	p.Partition.Values, err = queryStrings(ctx, s, `SELECT "PART_KEY_VAL" FROM "PARTITION_KEY_VALS" WHERE "PART_ID" = $1 ORDER BY "INTEGER_IDX"`, p.id)
	if err != nil {
		return fmt.Errorf("couldn't get partition values: %w", err)
	}
	p.Partition.Parameters, err = queryParameters(ctx, s, `SELECT "PARAM_KEY", "PARAM_VALUE" FROM "PARTITION_PARAMS" WHERE "PART_ID" = $1`, p.id)
	if err != nil {
		return fmt.Errorf("couldn't get partition parameters: %w", err)
	}
	if p.sdID != nil {
		p.Partition.Sd, err = getStorageDescriptor(ctx, s, *p.sdID)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetPartitionNames rebuilds partition names from the partition keys and values; maxParts of -1 means no limit.
func (c *Catalog) GetPartitionNames(ctx context.Context, dbName, tableName string, maxParts int16) ([]string, error) {
	out := []string{}
	err := c.withSession(ctx, func(s session) error {
		table, err := getTable(ctx, s, dbName, tableName)
		if err != nil {
			return err
		}
		keys := make([]string, len(table.Table.PartitionKeys))
		for i := range table.Table.PartitionKeys {
			keys[i] = table.Table.PartitionKeys[i].Name
		}

		partitions, err := listPartitions(ctx, s, maxParts, partitionColumns+` ORDER BY p."PART_NAME"`, dbName, tableName)
		if err != nil {
			return err
		}
		for _, p := range partitions {
			values, err := queryStrings(ctx, s, `SELECT "PART_KEY_VAL" FROM "PARTITION_KEY_VALS" WHERE "PART_ID" = $1 ORDER BY "INTEGER_IDX"`, p.id)
			if err != nil {
				return fmt.Errorf("couldn't get partition values: %w", err)
			}
			name, err := MakePartName(keys, values)
			if err != nil {
				return fmt.Errorf("couldn't build name of partition %s: %w", p.name, err)
			}
			out = append(out, name)
		}
		return nil
	})
	return out, err
}

func (c *Catalog) GetPartitions(ctx context.Context, dbName, tableName string, maxParts int16) ([]*hms.Partition, error) {
	out := []*hms.Partition{}
	err := c.withSession(ctx, func(s session) error {
		partitions, err := listPartitions(ctx, s, maxParts, partitionColumns+` ORDER BY p."PART_NAME"`, dbName, tableName)
		if err != nil {
			return err
		}
		for _, p := range partitions {
			if err := fillPartition(ctx, s, p); err != nil {
				return err
			}
			out = append(out, p.Partition)
		}
		return nil
	})
	return out, err
}

func (c *Catalog) GetPartitionByName(ctx context.Context, dbName, tableName, partName string) (*hms.Partition, error) {
	var out *hms.Partition
	err := c.withSession(ctx, func(s session) error {
		partitions, err := listPartitions(ctx, s, -1, partitionColumns+` AND p."PART_NAME" = $3`, dbName, tableName, partName)
		if err != nil {
			return err
		}
		if len(partitions) == 0 {
			return &hms.NoSuchObjectException{Message: fmt.Sprintf("partition %s of %s.%s not found", partName, dbName, tableName)}
		}
		if err := fillPartition(ctx, s, partitions[0]); err != nil {
			return err
		}
		out = partitions[0].Partition
		return nil
	})
	return out, err
}
