package metastore

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/recap-build/gometastore/hms"
	"github.com/recap-build/gometastore/htypes"
)

// typeParser turns a catalog column type string into a type tree.
type typeParser func(typeString string) (htypes.Type, error)

func missing(field string) error {
	return errors.Errorf("%s is missing", field)
}

func stringOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

func int32Or(v *int32, def int64) int64 {
	if v == nil {
		return def
	}
	return int64(*v)
}

func parametersOrEmpty(parameters map[string]string) map[string]string {
	if parameters == nil {
		return map[string]string{}
	}
	return parameters
}

func principalType(t *hms.PrincipalType) *PrincipalType {
	if t == nil {
		return nil
	}
	var out PrincipalType
	switch *t {
	case hms.PrincipalTypeUser:
		out = PrincipalTypeUser
	case hms.PrincipalTypeRole:
		out = PrincipalTypeRole
	case hms.PrincipalTypeGroup:
		out = PrincipalTypeGroup
	default:
		return nil
	}
	return &out
}

func grants(grants map[string][]*hms.PrivilegeGrantInfo) []PrivilegeGrantInfo {
	principals := make([]string, 0, len(grants))
	for principal := range grants {
		principals = append(principals, principal)
	}
	sort.Strings(principals)

	out := make([]PrivilegeGrantInfo, 0)
	for _, principal := range principals {
		for _, grant := range grants[principal] {
			if grant == nil {
				continue
			}
			info := PrivilegeGrantInfo{
				Principal:   principal,
				Privilege:   grant.Privilege,
				Grantor:     grant.Grantor,
				CreateTime:  int64(grant.CreateTime),
				GrantOption: grant.GrantOption,
			}
			if grantorType := principalType(&grant.GrantorType); grantorType != nil {
				info.GrantorType = *grantorType
			}
			out = append(out, info)
		}
	}
	return out
}

func privileges(set *hms.PrincipalPrivilegeSet) *PrincipalPrivilegeSet {
	if set == nil {
		return nil
	}
	return &PrincipalPrivilegeSet{
		UserPrivileges:  grants(set.UserPrivileges),
		GroupPrivileges: grants(set.GroupPrivileges),
		RolePrivileges:  grants(set.RolePrivileges),
	}
}

func translateDatabase(db *hms.Database) (*Database, error) {
	if db == nil {
		return nil, missing("database")
	}
	return &Database{
		Name:       db.Name,
		Location:   db.LocationURI,
		OwnerName:  db.OwnerName,
		OwnerType:  principalType(db.OwnerType),
		Comment:    db.Description,
		Parameters: db.Parameters,
		Privileges: privileges(db.Privileges),
	}, nil
}

// translateColumns parses every column type. A column whose type doesn't parse fails the whole list.
func translateColumns(fields []*hms.FieldSchema, parse typeParser) ([]Column, error) {
	out := make([]Column, 0, len(fields))
	for i, field := range fields {
		if field == nil {
			continue
		}
		if field.Type == nil {
			return nil, errors.Errorf("type of column %d (%s) is missing", i, field.Name)
		}
		if field.Name == "" {
			return nil, errors.Errorf("name of column %d is missing", i)
		}
		t, err := parse(*field.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't parse type of column %s", field.Name)
		}
		out = append(out, Column{
			Name:    field.Name,
			Type:    t,
			Comment: stringOr(field.Comment, ""),
		})
	}
	return out, nil
}

func translateSkewedInfo(info *hms.SkewedInfo) *SkewedInfo {
	if info == nil {
		return nil
	}
	out := &SkewedInfo{
		ColumnNames:    info.SkewedColNames,
		ColumnValues:   info.SkewedColValues,
		ValueLocations: make([]SkewedValueLocation, len(info.SkewedColValueLocationMaps)),
	}
	if out.ColumnNames == nil {
		out.ColumnNames = []string{}
	}
	if out.ColumnValues == nil {
		out.ColumnValues = [][]string{}
	}
	for i, location := range info.SkewedColValueLocationMaps {
		out.ValueLocations[i] = SkewedValueLocation{
			Values:   location.Values,
			Location: location.Location,
		}
	}
	return out
}

func sortingColumns(orders []*hms.Order) []SortingColumn {
	out := make([]SortingColumn, 0, len(orders))
	for _, order := range orders {
		if order == nil {
			continue
		}
		direction := SortingOrderDescending
		if order.Order == 1 {
			direction = SortingOrderAscending
		}
		out = append(out, SortingColumn{Column: order.Col, Order: direction})
	}
	return out
}

func bucketingVersion(parameters map[string]string) BucketingVersion {
	if parameters["TABLE_BUCKETING_VERSION"] == "2" {
		return BucketingVersionV2
	}
	return BucketingVersionV1
}

// partitionBucketProperty is always present for partitions. Missing pieces default to empty.
func partitionBucketProperty(sd *hms.StorageDescriptor) *BucketProperty {
	bucketCols := sd.BucketCols
	if bucketCols == nil {
		bucketCols = []string{}
	}
	numBuckets := 0
	if sd.NumBuckets != nil {
		numBuckets = int(*sd.NumBuckets)
	}
	return NewBucketProperty(bucketCols, numBuckets, BucketingVersionV1, sortingColumns(sd.SortCols))
}

// translateTableStorage requires the serde library and both formats.
// The bucket property is only set for bucketed tables.
func translateTableStorage(sd *hms.StorageDescriptor, tableParameters map[string]string) (*Storage, error) {
	if sd.SerdeInfo == nil {
		return nil, missing("serde info")
	}
	if sd.SerdeInfo.SerializationLib == nil {
		return nil, missing("serialization library")
	}
	if sd.InputFormat == nil {
		return nil, missing("input format")
	}
	if sd.OutputFormat == nil {
		return nil, missing("output format")
	}
	format := &StorageFormat{
		Serde:        *sd.SerdeInfo.SerializationLib,
		InputFormat:  *sd.InputFormat,
		OutputFormat: *sd.OutputFormat,
	}

	var bucketProperty *BucketProperty
	if sd.BucketCols != nil {
		if tableParameters == nil {
			return nil, missing("table parameters")
		}
		if sd.NumBuckets == nil {
			return nil, missing("number of buckets")
		}
		bucketProperty = NewBucketProperty(sd.BucketCols, int(*sd.NumBuckets), bucketingVersion(tableParameters), sortingColumns(sd.SortCols))
	}

	if sd.SerdeInfo.Parameters == nil {
		return nil, missing("serde parameters")
	}

	return NewStorage(format, translateSkewedInfo(sd.SkewedInfo), sd.Location, bucketProperty, sd.SerdeInfo.Parameters)
}

func translateTable(table *hms.Table, parse typeParser) (*Table, error) {
	if table == nil {
		return nil, missing("table")
	}

	partitionColumns, err := translateColumns(table.PartitionKeys, parse)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't translate partition keys")
	}

	if table.Sd == nil {
		return nil, missing("storage descriptor")
	}
	columns, err := translateColumns(table.Sd.Cols, parse)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't translate columns")
	}

	storage, err := translateTableStorage(table.Sd, table.Parameters)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't translate storage descriptor")
	}

	if table.Parameters == nil {
		return nil, missing("table parameters")
	}
	if table.TableType == nil {
		return nil, missing("table type")
	}
	if table.TableName == nil {
		return nil, missing("table name")
	}
	if table.DbName == nil {
		return nil, missing("database name")
	}

	return &Table{
		DatabaseName:     *table.DbName,
		Name:             *table.TableName,
		TableType:        *table.TableType,
		Columns:          columns,
		PartitionColumns: partitionColumns,
		Storage:          storage,
		Parameters:       table.Parameters,
		ViewOriginalText: table.ViewOriginalText,
		ViewExpandedText: table.ViewExpandedText,
		WriteID:          table.WriteID,
		Owner:            table.Owner,
		Privileges:       privileges(table.Privileges),
	}, nil
}

// translatePartitionLenient is used for partition listings, where missing storage details default to empty values.
func translatePartitionLenient(partition *hms.Partition) (*Partition, error) {
	if partition == nil {
		return nil, missing("partition")
	}
	if partition.Sd == nil {
		return nil, missing("storage descriptor")
	}
	sd := partition.Sd
	if sd.SerdeInfo == nil {
		return nil, missing("serde info")
	}

	format := &StorageFormat{
		Serde:        stringOr(sd.SerdeInfo.SerializationLib, ""),
		InputFormat:  stringOr(sd.InputFormat, ""),
		OutputFormat: stringOr(sd.OutputFormat, ""),
	}
	storage, err := NewStorage(format, translateSkewedInfo(sd.SkewedInfo), sd.Location, partitionBucketProperty(sd), parametersOrEmpty(sd.SerdeInfo.Parameters))
	if err != nil {
		return nil, err
	}

	values := partition.Values
	if values == nil {
		values = []string{}
	}
	writeID := int64(-1)
	if partition.WriteID != nil {
		writeID = *partition.WriteID
	}
	return &Partition{
		DatabaseName:   stringOr(partition.DbName, ""),
		TableName:      stringOr(partition.TableName, ""),
		Values:         values,
		Parameters:     parametersOrEmpty(partition.Parameters),
		CreateTime:     int32Or(partition.CreateTime, -1),
		LastAccessTime: int32Or(partition.LastAccessTime, -1),
		Storage:        storage,
		CatalogName:    stringOr(partition.CatName, ""),
		WriteID:        writeID,
	}, nil
}

// translatePartitionStrict is used when a single partition is requested by name.
func translatePartitionStrict(partition *hms.Partition) (*Partition, error) {
	if partition == nil {
		return nil, missing("partition")
	}
	sd := partition.Sd
	if sd == nil {
		return nil, missing("storage descriptor")
	}
	if sd.SerdeInfo == nil {
		return nil, missing("serde info")
	}
	if sd.SerdeInfo.SerializationLib == nil {
		return nil, missing("serialization library")
	}
	if sd.InputFormat == nil {
		return nil, missing("input format")
	}
	if sd.OutputFormat == nil {
		return nil, missing("output format")
	}
	if partition.DbName == nil {
		return nil, missing("database name")
	}
	if partition.TableName == nil {
		return nil, missing("table name")
	}

	out, err := translatePartitionLenient(partition)
	if err != nil {
		return nil, err
	}
	if out.Storage.Location == nil {
		location := ""
		out.Storage.Location = &location
	}
	return out, nil
}
