package metastore

import (
	"github.com/pkg/errors"

	"github.com/recap-build/gometastore/htypes"
)

type PrincipalType string

const (
	PrincipalTypeUser  PrincipalType = "USER"
	PrincipalTypeRole  PrincipalType = "ROLE"
	PrincipalTypeGroup PrincipalType = "GROUP"
)

type PrivilegeGrantInfo struct {
	// Principal is the user, group or role the privilege was granted to.
	Principal   string
	Privilege   string
	Grantor     string
	GrantorType PrincipalType
	CreateTime  int64
	GrantOption bool
}

type PrincipalPrivilegeSet struct {
	UserPrivileges  []PrivilegeGrantInfo
	GroupPrivileges []PrivilegeGrantInfo
	RolePrivileges  []PrivilegeGrantInfo
}

type Database struct {
	Name      string
	Location  *string
	OwnerName *string
	// OwnerType is nil when the catalog doesn't report one.
	OwnerType  *PrincipalType
	Comment    *string
	Parameters map[string]string
	Privileges *PrincipalPrivilegeSet
}

type Column struct {
	Name    string
	Type    htypes.Type
	Comment string
}

type SortingOrder int

const (
	SortingOrderDescending SortingOrder = 0
	SortingOrderAscending  SortingOrder = 1
)

func (o SortingOrder) String() string {
	if o == SortingOrderAscending {
		return "ASC"
	}
	return "DESC"
}

type SortingColumn struct {
	Column string
	Order  SortingOrder
}

type BucketingVersion int

const (
	BucketingVersionV1 BucketingVersion = 1
	BucketingVersionV2 BucketingVersion = 2
)

type BucketProperty struct {
	BucketedBy     []string
	BucketCount    int
	Version        BucketingVersion
	SortingColumns []SortingColumn
}

// NewBucketProperty never shares the sorting column slice between instances.
// A nil sortingColumns gets a fresh empty slice.
func NewBucketProperty(bucketedBy []string, bucketCount int, version BucketingVersion, sortingColumns []SortingColumn) *BucketProperty {
	if sortingColumns == nil {
		sortingColumns = make([]SortingColumn, 0)
	}
	return &BucketProperty{
		BucketedBy:     bucketedBy,
		BucketCount:    bucketCount,
		Version:        version,
		SortingColumns: sortingColumns,
	}
}

type StorageFormat struct {
	Serde        string
	InputFormat  string
	OutputFormat string
}

type SkewedValueLocation struct {
	Values   []string
	Location string
}

type SkewedInfo struct {
	ColumnNames    []string
	ColumnValues   [][]string
	ValueLocations []SkewedValueLocation
}

type Storage struct {
	Format          *StorageFormat
	Skewed          bool
	SkewedInfo      *SkewedInfo
	Location        *string
	BucketProperty  *BucketProperty
	SerdeParameters map[string]string
}

func NewStorage(format *StorageFormat, skewedInfo *SkewedInfo, location *string, bucketProperty *BucketProperty, serdeParameters map[string]string) (*Storage, error) {
	if format == nil {
		return nil, errors.New("storage format cannot be nil")
	}
	return &Storage{
		Format:          format,
		Skewed:          skewedInfo != nil,
		SkewedInfo:      skewedInfo,
		Location:        location,
		BucketProperty:  bucketProperty,
		SerdeParameters: serdeParameters,
	}, nil
}

type Table struct {
	DatabaseName     string
	Name             string
	TableType        string
	Columns          []Column
	PartitionColumns []Column
	Storage          *Storage
	Parameters       map[string]string
	ViewOriginalText *string
	ViewExpandedText *string
	WriteID          *int64
	Owner            *string
	Privileges       *PrincipalPrivilegeSet
}

type Partition struct {
	DatabaseName   string
	TableName      string
	Values         []string
	Parameters     map[string]string
	CreateTime     int64
	LastAccessTime int64
	Storage        *Storage
	CatalogName    string
	WriteID        int64
}
