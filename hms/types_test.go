package hms

import (
	"context"
	"testing"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionAcrossProtocols(t *testing.T) {
	createTime := int32(1600000000)
	writeID := int64(3)
	ownerType := PrincipalTypeRole
	partition := &Partition{
		Values:     []string{"2020-01-01", "eu"},
		DbName:     strPtr("sales"),
		TableName:  strPtr("orders"),
		CreateTime: &createTime,
		Sd: &StorageDescriptor{
			Cols:      []*FieldSchema{{Name: "id", Type: strPtr("int")}},
			SerdeInfo: &SerDeInfo{Name: strPtr("orders"), SerializationLib: strPtr("parquet")},
		},
		Parameters: map[string]string{"numRows": "10"},
		Privileges: &PrincipalPrivilegeSet{
			RolePrivileges: map[string][]*PrivilegeGrantInfo{
				"analyst": {{Privilege: "SELECT", Grantor: "admin", GrantorType: ownerType, GrantOption: true}},
			},
		},
		CatName: strPtr("hive"),
		WriteID: &writeID,
	}

	for _, protocol := range []string{"binary", "compact", "json"} {
		t.Run(protocol, func(t *testing.T) {
			factory, err := GetProtocolFactory(protocol)
			require.NoError(t, err)

			buf := thrift.NewTMemoryBuffer()
			oprot := factory.GetProtocol(buf)
			require.NoError(t, partition.Write(oprot))
			require.NoError(t, oprot.Flush(context.Background()))

			var got Partition
			require.NoError(t, got.Read(factory.GetProtocol(buf)))
			assert.Equal(t, partition, &got)
		})
	}
}

func TestReadSkipsUnknownFields(t *testing.T) {
	buf := thrift.NewTMemoryBuffer()
	oprot := thrift.NewTBinaryProtocolTransport(buf)
	require.NoError(t, writeStruct(oprot, nil, "FieldSchema",
		field("name", thrift.STRING, 1, writeString, "id"),
		field("future", thrift.LIST, 42, writeStringList, []string{"a", "b"}),
		// A known field id with an unexpected type is skipped as well.
		field("type", thrift.I32, 2, writeI32, 7),
		field("comment", thrift.STRING, 3, writeString, "primary key"),
	))
	require.NoError(t, oprot.Flush(context.Background()))

	var got FieldSchema
	require.NoError(t, got.Read(thrift.NewTBinaryProtocolTransport(buf)))
	assert.Equal(t, FieldSchema{Name: "id", Comment: strPtr("primary key")}, got)
}

func TestPrincipalType_String(t *testing.T) {
	assert.Equal(t, "USER", PrincipalTypeUser.String())
	assert.Equal(t, "ROLE", PrincipalTypeRole.String())
	assert.Equal(t, "GROUP", PrincipalTypeGroup.String())
	assert.Equal(t, "PrincipalType(9)", PrincipalType(9).String())
}
