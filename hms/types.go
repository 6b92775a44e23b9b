package hms

import (
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// The structures below mirror the hive_metastore.thrift definitions.
// Only the fields this client consumes are decoded, others are skipped.
// Fields the metastore may leave unset are pointers, absent lists and maps are nil.

type PrincipalType int32

const (
	PrincipalTypeUser  PrincipalType = 1
	PrincipalTypeRole  PrincipalType = 2
	PrincipalTypeGroup PrincipalType = 3
)

func (p PrincipalType) String() string {
	switch p {
	case PrincipalTypeUser:
		return "USER"
	case PrincipalTypeRole:
		return "ROLE"
	case PrincipalTypeGroup:
		return "GROUP"
	}
	return fmt.Sprintf("PrincipalType(%d)", int32(p))
}

func readPrincipalType(iprot thrift.TProtocol) (PrincipalType, error) {
	v, err := iprot.ReadI32()
	return PrincipalType(v), err
}

func writePrincipalType(oprot thrift.TProtocol, v PrincipalType) error {
	return oprot.WriteI32(int32(v))
}

type FieldSchema struct {
	Name    string  `thrift:"name,1" db:"name" json:"name"`
	Type    *string `thrift:"type,2" db:"type" json:"type"`
	Comment *string `thrift:"comment,3" db:"comment" json:"comment"`
}

func (p *FieldSchema) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, p, func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error) {
		switch {
		case fieldID == 1 && fieldType == thrift.STRING:
			return readInto(iprot, readString, &p.Name)
		case fieldID == 2 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.Type)
		case fieldID == 3 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.Comment)
		}
		return false, nil
	})
}

func (p *FieldSchema) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, p, "FieldSchema",
		field("name", thrift.STRING, 1, writeString, p.Name),
		optionalField("type", thrift.STRING, 2, writeString, p.Type),
		optionalField("comment", thrift.STRING, 3, writeString, p.Comment),
	)
}

type SerDeInfo struct {
	Name             *string           `thrift:"name,1" db:"name" json:"name"`
	SerializationLib *string           `thrift:"serializationLib,2" db:"serializationLib" json:"serializationLib"`
	Parameters       map[string]string `thrift:"parameters,3" db:"parameters" json:"parameters"`
}

func (p *SerDeInfo) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, p, func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error) {
		switch {
		case fieldID == 1 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.Name)
		case fieldID == 2 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.SerializationLib)
		case fieldID == 3 && fieldType == thrift.MAP:
			return readInto(iprot, readStringMap, &p.Parameters)
		}
		return false, nil
	})
}

func (p *SerDeInfo) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, p, "SerDeInfo",
		optionalField("name", thrift.STRING, 1, writeString, p.Name),
		optionalField("serializationLib", thrift.STRING, 2, writeString, p.SerializationLib),
		mapField("parameters", 3, thrift.STRING, thrift.STRING, writeString, writeString, p.Parameters),
	)
}

type Order struct {
	Col   string `thrift:"col,1" db:"col" json:"col"`
	Order int32  `thrift:"order,2" db:"order" json:"order"`
}

func (p *Order) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, p, func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error) {
		switch {
		case fieldID == 1 && fieldType == thrift.STRING:
			return readInto(iprot, readString, &p.Col)
		case fieldID == 2 && fieldType == thrift.I32:
			return readInto(iprot, readI32, &p.Order)
		}
		return false, nil
	})
}

func (p *Order) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, p, "Order",
		field("col", thrift.STRING, 1, writeString, p.Col),
		field("order", thrift.I32, 2, writeI32, p.Order),
	)
}

// SkewedValueLocation is one entry of the skewed value location map, which is keyed by a list of values.
type SkewedValueLocation struct {
	Values   []string
	Location string
}

type SkewedInfo struct {
	SkewedColNames             []string              `thrift:"skewedColNames,1" db:"skewedColNames" json:"skewedColNames"`
	SkewedColValues            [][]string            `thrift:"skewedColValues,2" db:"skewedColValues" json:"skewedColValues"`
	SkewedColValueLocationMaps []SkewedValueLocation `thrift:"skewedColValueLocationMaps,3" db:"skewedColValueLocationMaps" json:"skewedColValueLocationMaps"`
}

func (p *SkewedInfo) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, p, func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error) {
		switch {
		case fieldID == 1 && fieldType == thrift.LIST:
			return readInto(iprot, readStringList, &p.SkewedColNames)
		case fieldID == 2 && fieldType == thrift.LIST:
			return readInto(iprot, readList(readStringList), &p.SkewedColValues)
		case fieldID == 3 && fieldType == thrift.MAP:
			return readInto(iprot, readSkewedValueLocations, &p.SkewedColValueLocationMaps)
		}
		return false, nil
	})
}

func (p *SkewedInfo) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, p, "SkewedInfo",
		listField("skewedColNames", 1, thrift.STRING, writeString, p.SkewedColNames),
		listField("skewedColValues", 2, thrift.LIST, writeStringList, p.SkewedColValues),
		skewedValueLocationsField(p.SkewedColValueLocationMaps),
	)
}

func readSkewedValueLocations(iprot thrift.TProtocol) ([]SkewedValueLocation, error) {
	_, _, size, err := iprot.ReadMapBegin()
	if err != nil {
		return nil, thrift.PrependError("error reading map begin: ", err)
	}
	out := make([]SkewedValueLocation, 0, size)
	for i := 0; i < size; i++ {
		values, err := readStringList(iprot)
		if err != nil {
			return nil, thrift.PrependError("error reading map key: ", err)
		}
		location, err := iprot.ReadString()
		if err != nil {
			return nil, thrift.PrependError("error reading map value: ", err)
		}
		out = append(out, SkewedValueLocation{Values: values, Location: location})
	}
	if err := iprot.ReadMapEnd(); err != nil {
		return nil, thrift.PrependError("error reading map end: ", err)
	}
	return out, nil
}

func skewedValueLocationsField(v []SkewedValueLocation) fieldWriter {
	if v == nil {
		return nil
	}
	return field("skewedColValueLocationMaps", thrift.MAP, 3, func(oprot thrift.TProtocol, v []SkewedValueLocation) error {
		if err := oprot.WriteMapBegin(thrift.LIST, thrift.STRING, len(v)); err != nil {
			return thrift.PrependError("error writing map begin: ", err)
		}
		for _, entry := range v {
			if err := writeStringList(oprot, entry.Values); err != nil {
				return err
			}
			if err := oprot.WriteString(entry.Location); err != nil {
				return err
			}
		}
		if err := oprot.WriteMapEnd(); err != nil {
			return thrift.PrependError("error writing map end: ", err)
		}
		return nil
	}, v)
}

type StorageDescriptor struct {
	Cols                   []*FieldSchema    `thrift:"cols,1" db:"cols" json:"cols"`
	Location               *string           `thrift:"location,2" db:"location" json:"location"`
	InputFormat            *string           `thrift:"inputFormat,3" db:"inputFormat" json:"inputFormat"`
	OutputFormat           *string           `thrift:"outputFormat,4" db:"outputFormat" json:"outputFormat"`
	Compressed             bool              `thrift:"compressed,5" db:"compressed" json:"compressed"`
	NumBuckets             *int32            `thrift:"numBuckets,6" db:"numBuckets" json:"numBuckets"`
	SerdeInfo              *SerDeInfo        `thrift:"serdeInfo,7" db:"serdeInfo" json:"serdeInfo"`
	BucketCols             []string          `thrift:"bucketCols,8" db:"bucketCols" json:"bucketCols"`
	SortCols               []*Order          `thrift:"sortCols,9" db:"sortCols" json:"sortCols"`
	Parameters             map[string]string `thrift:"parameters,10" db:"parameters" json:"parameters"`
	SkewedInfo             *SkewedInfo       `thrift:"skewedInfo,11" db:"skewedInfo" json:"skewedInfo,omitempty"`
	StoredAsSubDirectories *bool             `thrift:"storedAsSubDirectories,12" db:"storedAsSubDirectories" json:"storedAsSubDirectories,omitempty"`
}

func (p *StorageDescriptor) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, p, func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error) {
		switch {
		case fieldID == 1 && fieldType == thrift.LIST:
			return readInto(iprot, readList(readStructValue[FieldSchema]), &p.Cols)
		case fieldID == 2 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.Location)
		case fieldID == 3 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.InputFormat)
		case fieldID == 4 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.OutputFormat)
		case fieldID == 5 && fieldType == thrift.BOOL:
			return readInto(iprot, readBool, &p.Compressed)
		case fieldID == 6 && fieldType == thrift.I32:
			return readOptional(iprot, readI32, &p.NumBuckets)
		case fieldID == 7 && fieldType == thrift.STRUCT:
			return readInto(iprot, readStructValue[SerDeInfo], &p.SerdeInfo)
		case fieldID == 8 && fieldType == thrift.LIST:
			return readInto(iprot, readStringList, &p.BucketCols)
		case fieldID == 9 && fieldType == thrift.LIST:
			return readInto(iprot, readList(readStructValue[Order]), &p.SortCols)
		case fieldID == 10 && fieldType == thrift.MAP:
			return readInto(iprot, readStringMap, &p.Parameters)
		case fieldID == 11 && fieldType == thrift.STRUCT:
			return readInto(iprot, readStructValue[SkewedInfo], &p.SkewedInfo)
		case fieldID == 12 && fieldType == thrift.BOOL:
			return readOptional(iprot, readBool, &p.StoredAsSubDirectories)
		}
		return false, nil
	})
}

func (p *StorageDescriptor) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, p, "StorageDescriptor",
		listField("cols", 1, thrift.STRUCT, writeStructValue[*FieldSchema], p.Cols),
		optionalField("location", thrift.STRING, 2, writeString, p.Location),
		optionalField("inputFormat", thrift.STRING, 3, writeString, p.InputFormat),
		optionalField("outputFormat", thrift.STRING, 4, writeString, p.OutputFormat),
		field("compressed", thrift.BOOL, 5, writeBool, p.Compressed),
		optionalField("numBuckets", thrift.I32, 6, writeI32, p.NumBuckets),
		structField("serdeInfo", 7, p.SerdeInfo),
		listField("bucketCols", 8, thrift.STRING, writeString, p.BucketCols),
		listField("sortCols", 9, thrift.STRUCT, writeStructValue[*Order], p.SortCols),
		mapField("parameters", 10, thrift.STRING, thrift.STRING, writeString, writeString, p.Parameters),
		structField("skewedInfo", 11, p.SkewedInfo),
		optionalField("storedAsSubDirectories", thrift.BOOL, 12, writeBool, p.StoredAsSubDirectories),
	)
}

type PrivilegeGrantInfo struct {
	Privilege   string        `thrift:"privilege,1" db:"privilege" json:"privilege"`
	CreateTime  int32         `thrift:"createTime,2" db:"createTime" json:"createTime"`
	Grantor     string        `thrift:"grantor,3" db:"grantor" json:"grantor"`
	GrantorType PrincipalType `thrift:"grantorType,4" db:"grantorType" json:"grantorType"`
	GrantOption bool          `thrift:"grantOption,5" db:"grantOption" json:"grantOption"`
}

func (p *PrivilegeGrantInfo) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, p, func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error) {
		switch {
		case fieldID == 1 && fieldType == thrift.STRING:
			return readInto(iprot, readString, &p.Privilege)
		case fieldID == 2 && fieldType == thrift.I32:
			return readInto(iprot, readI32, &p.CreateTime)
		case fieldID == 3 && fieldType == thrift.STRING:
			return readInto(iprot, readString, &p.Grantor)
		case fieldID == 4 && fieldType == thrift.I32:
			return readInto(iprot, readPrincipalType, &p.GrantorType)
		case fieldID == 5 && fieldType == thrift.BOOL:
			return readInto(iprot, readBool, &p.GrantOption)
		}
		return false, nil
	})
}

func (p *PrivilegeGrantInfo) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, p, "PrivilegeGrantInfo",
		field("privilege", thrift.STRING, 1, writeString, p.Privilege),
		field("createTime", thrift.I32, 2, writeI32, p.CreateTime),
		field("grantor", thrift.STRING, 3, writeString, p.Grantor),
		field("grantorType", thrift.I32, 4, writePrincipalType, p.GrantorType),
		field("grantOption", thrift.BOOL, 5, writeBool, p.GrantOption),
	)
}

type PrincipalPrivilegeSet struct {
	UserPrivileges  map[string][]*PrivilegeGrantInfo `thrift:"userPrivileges,1" db:"userPrivileges" json:"userPrivileges"`
	GroupPrivileges map[string][]*PrivilegeGrantInfo `thrift:"groupPrivileges,2" db:"groupPrivileges" json:"groupPrivileges"`
	RolePrivileges  map[string][]*PrivilegeGrantInfo `thrift:"rolePrivileges,3" db:"rolePrivileges" json:"rolePrivileges"`
}

var (
	readGrants  = readMap(readString, readList(readStructValue[PrivilegeGrantInfo]))
	writeGrants = writeList(thrift.STRUCT, writeStructValue[*PrivilegeGrantInfo])
)

func (p *PrincipalPrivilegeSet) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, p, func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error) {
		switch {
		case fieldID == 1 && fieldType == thrift.MAP:
			return readInto(iprot, readGrants, &p.UserPrivileges)
		case fieldID == 2 && fieldType == thrift.MAP:
			return readInto(iprot, readGrants, &p.GroupPrivileges)
		case fieldID == 3 && fieldType == thrift.MAP:
			return readInto(iprot, readGrants, &p.RolePrivileges)
		}
		return false, nil
	})
}

func (p *PrincipalPrivilegeSet) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, p, "PrincipalPrivilegeSet",
		mapField("userPrivileges", 1, thrift.STRING, thrift.LIST, writeString, writeGrants, p.UserPrivileges),
		mapField("groupPrivileges", 2, thrift.STRING, thrift.LIST, writeString, writeGrants, p.GroupPrivileges),
		mapField("rolePrivileges", 3, thrift.STRING, thrift.LIST, writeString, writeGrants, p.RolePrivileges),
	)
}

type Database struct {
	Name        string                 `thrift:"name,1" db:"name" json:"name"`
	Description *string                `thrift:"description,2" db:"description" json:"description"`
	LocationURI *string                `thrift:"locationUri,3" db:"locationUri" json:"locationUri"`
	Parameters  map[string]string      `thrift:"parameters,4" db:"parameters" json:"parameters"`
	Privileges  *PrincipalPrivilegeSet `thrift:"privileges,5" db:"privileges" json:"privileges,omitempty"`
	OwnerName   *string                `thrift:"ownerName,6" db:"ownerName" json:"ownerName,omitempty"`
	OwnerType   *PrincipalType         `thrift:"ownerType,7" db:"ownerType" json:"ownerType,omitempty"`
	CatalogName *string                `thrift:"catalogName,8" db:"catalogName" json:"catalogName,omitempty"`
}

func (p *Database) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, p, func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error) {
		switch {
		case fieldID == 1 && fieldType == thrift.STRING:
			return readInto(iprot, readString, &p.Name)
		case fieldID == 2 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.Description)
		case fieldID == 3 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.LocationURI)
		case fieldID == 4 && fieldType == thrift.MAP:
			return readInto(iprot, readStringMap, &p.Parameters)
		case fieldID == 5 && fieldType == thrift.STRUCT:
			return readInto(iprot, readStructValue[PrincipalPrivilegeSet], &p.Privileges)
		case fieldID == 6 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.OwnerName)
		case fieldID == 7 && fieldType == thrift.I32:
			return readOptional(iprot, readPrincipalType, &p.OwnerType)
		case fieldID == 8 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.CatalogName)
		}
		return false, nil
	})
}

func (p *Database) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, p, "Database",
		field("name", thrift.STRING, 1, writeString, p.Name),
		optionalField("description", thrift.STRING, 2, writeString, p.Description),
		optionalField("locationUri", thrift.STRING, 3, writeString, p.LocationURI),
		mapField("parameters", 4, thrift.STRING, thrift.STRING, writeString, writeString, p.Parameters),
		structField("privileges", 5, p.Privileges),
		optionalField("ownerName", thrift.STRING, 6, writeString, p.OwnerName),
		optionalField("ownerType", thrift.I32, 7, writePrincipalType, p.OwnerType),
		optionalField("catalogName", thrift.STRING, 8, writeString, p.CatalogName),
	)
}

type Table struct {
	TableName        *string                `thrift:"tableName,1" db:"tableName" json:"tableName"`
	DbName           *string                `thrift:"dbName,2" db:"dbName" json:"dbName"`
	Owner            *string                `thrift:"owner,3" db:"owner" json:"owner"`
	CreateTime       int32                  `thrift:"createTime,4" db:"createTime" json:"createTime"`
	LastAccessTime   int32                  `thrift:"lastAccessTime,5" db:"lastAccessTime" json:"lastAccessTime"`
	Retention        int32                  `thrift:"retention,6" db:"retention" json:"retention"`
	Sd               *StorageDescriptor     `thrift:"sd,7" db:"sd" json:"sd"`
	PartitionKeys    []*FieldSchema         `thrift:"partitionKeys,8" db:"partitionKeys" json:"partitionKeys"`
	Parameters       map[string]string      `thrift:"parameters,9" db:"parameters" json:"parameters"`
	ViewOriginalText *string                `thrift:"viewOriginalText,10" db:"viewOriginalText" json:"viewOriginalText"`
	ViewExpandedText *string                `thrift:"viewExpandedText,11" db:"viewExpandedText" json:"viewExpandedText"`
	TableType        *string                `thrift:"tableType,12" db:"tableType" json:"tableType"`
	Privileges       *PrincipalPrivilegeSet `thrift:"privileges,13" db:"privileges" json:"privileges,omitempty"`
	Temporary        bool                   `thrift:"temporary,14" db:"temporary" json:"temporary,omitempty"`
	RewriteEnabled   *bool                  `thrift:"rewriteEnabled,15" db:"rewriteEnabled" json:"rewriteEnabled,omitempty"`
	CatName          *string                `thrift:"catName,17" db:"catName" json:"catName,omitempty"`
	OwnerType        *PrincipalType         `thrift:"ownerType,18" db:"ownerType" json:"ownerType,omitempty"`
	WriteID          *int64                 `thrift:"writeId,19" db:"writeId" json:"writeId,omitempty"`
}

func (p *Table) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, p, func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error) {
		switch {
		case fieldID == 1 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.TableName)
		case fieldID == 2 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.DbName)
		case fieldID == 3 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.Owner)
		case fieldID == 4 && fieldType == thrift.I32:
			return readInto(iprot, readI32, &p.CreateTime)
		case fieldID == 5 && fieldType == thrift.I32:
			return readInto(iprot, readI32, &p.LastAccessTime)
		case fieldID == 6 && fieldType == thrift.I32:
			return readInto(iprot, readI32, &p.Retention)
		case fieldID == 7 && fieldType == thrift.STRUCT:
			return readInto(iprot, readStructValue[StorageDescriptor], &p.Sd)
		case fieldID == 8 && fieldType == thrift.LIST:
			return readInto(iprot, readList(readStructValue[FieldSchema]), &p.PartitionKeys)
		case fieldID == 9 && fieldType == thrift.MAP:
			return readInto(iprot, readStringMap, &p.Parameters)
		case fieldID == 10 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.ViewOriginalText)
		case fieldID == 11 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.ViewExpandedText)
		case fieldID == 12 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.TableType)
		case fieldID == 13 && fieldType == thrift.STRUCT:
			return readInto(iprot, readStructValue[PrincipalPrivilegeSet], &p.Privileges)
		case fieldID == 14 && fieldType == thrift.BOOL:
			return readInto(iprot, readBool, &p.Temporary)
		case fieldID == 15 && fieldType == thrift.BOOL:
			return readOptional(iprot, readBool, &p.RewriteEnabled)
		case fieldID == 17 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.CatName)
		case fieldID == 18 && fieldType == thrift.I32:
			return readOptional(iprot, readPrincipalType, &p.OwnerType)
		case fieldID == 19 && fieldType == thrift.I64:
			return readOptional(iprot, readI64, &p.WriteID)
		}
		return false, nil
	})
}

func (p *Table) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, p, "Table",
		optionalField("tableName", thrift.STRING, 1, writeString, p.TableName),
		optionalField("dbName", thrift.STRING, 2, writeString, p.DbName),
		optionalField("owner", thrift.STRING, 3, writeString, p.Owner),
		field("createTime", thrift.I32, 4, writeI32, p.CreateTime),
		field("lastAccessTime", thrift.I32, 5, writeI32, p.LastAccessTime),
		field("retention", thrift.I32, 6, writeI32, p.Retention),
		structField("sd", 7, p.Sd),
		listField("partitionKeys", 8, thrift.STRUCT, writeStructValue[*FieldSchema], p.PartitionKeys),
		mapField("parameters", 9, thrift.STRING, thrift.STRING, writeString, writeString, p.Parameters),
		optionalField("viewOriginalText", thrift.STRING, 10, writeString, p.ViewOriginalText),
		optionalField("viewExpandedText", thrift.STRING, 11, writeString, p.ViewExpandedText),
		optionalField("tableType", thrift.STRING, 12, writeString, p.TableType),
		structField("privileges", 13, p.Privileges),
		field("temporary", thrift.BOOL, 14, writeBool, p.Temporary),
		optionalField("rewriteEnabled", thrift.BOOL, 15, writeBool, p.RewriteEnabled),
		optionalField("catName", thrift.STRING, 17, writeString, p.CatName),
		optionalField("ownerType", thrift.I32, 18, writePrincipalType, p.OwnerType),
		optionalField("writeId", thrift.I64, 19, writeI64, p.WriteID),
	)
}

type Partition struct {
	Values         []string               `thrift:"values,1" db:"values" json:"values"`
	DbName         *string                `thrift:"dbName,2" db:"dbName" json:"dbName"`
	TableName      *string                `thrift:"tableName,3" db:"tableName" json:"tableName"`
	CreateTime     *int32                 `thrift:"createTime,4" db:"createTime" json:"createTime"`
	LastAccessTime *int32                 `thrift:"lastAccessTime,5" db:"lastAccessTime" json:"lastAccessTime"`
	Sd             *StorageDescriptor     `thrift:"sd,6" db:"sd" json:"sd"`
	Parameters     map[string]string      `thrift:"parameters,7" db:"parameters" json:"parameters"`
	Privileges     *PrincipalPrivilegeSet `thrift:"privileges,8" db:"privileges" json:"privileges,omitempty"`
	CatName        *string                `thrift:"catName,9" db:"catName" json:"catName,omitempty"`
	WriteID        *int64                 `thrift:"writeId,10" db:"writeId" json:"writeId,omitempty"`
}

func (p *Partition) Read(iprot thrift.TProtocol) error {
	return readStruct(iprot, p, func(iprot thrift.TProtocol, fieldID int16, fieldType thrift.TType) (bool, error) {
		switch {
		case fieldID == 1 && fieldType == thrift.LIST:
			return readInto(iprot, readStringList, &p.Values)
		case fieldID == 2 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.DbName)
		case fieldID == 3 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.TableName)
		case fieldID == 4 && fieldType == thrift.I32:
			return readOptional(iprot, readI32, &p.CreateTime)
		case fieldID == 5 && fieldType == thrift.I32:
			return readOptional(iprot, readI32, &p.LastAccessTime)
		case fieldID == 6 && fieldType == thrift.STRUCT:
			return readInto(iprot, readStructValue[StorageDescriptor], &p.Sd)
		case fieldID == 7 && fieldType == thrift.MAP:
			return readInto(iprot, readStringMap, &p.Parameters)
		case fieldID == 8 && fieldType == thrift.STRUCT:
			return readInto(iprot, readStructValue[PrincipalPrivilegeSet], &p.Privileges)
		case fieldID == 9 && fieldType == thrift.STRING:
			return readOptional(iprot, readString, &p.CatName)
		case fieldID == 10 && fieldType == thrift.I64:
			return readOptional(iprot, readI64, &p.WriteID)
		}
		return false, nil
	})
}

func (p *Partition) Write(oprot thrift.TProtocol) error {
	return writeStruct(oprot, p, "Partition",
		listField("values", 1, thrift.STRING, writeString, p.Values),
		optionalField("dbName", thrift.STRING, 2, writeString, p.DbName),
		optionalField("tableName", thrift.STRING, 3, writeString, p.TableName),
		optionalField("createTime", thrift.I32, 4, writeI32, p.CreateTime),
		optionalField("lastAccessTime", thrift.I32, 5, writeI32, p.LastAccessTime),
		structField("sd", 6, p.Sd),
		mapField("parameters", 7, thrift.STRING, thrift.STRING, writeString, writeString, p.Parameters),
		structField("privileges", 8, p.Privileges),
		optionalField("catName", thrift.STRING, 9, writeString, p.CatName),
		optionalField("writeId", thrift.I64, 10, writeI64, p.WriteID),
	)
}
