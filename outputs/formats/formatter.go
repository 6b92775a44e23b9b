package formats

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/recap-build/gometastore/htypes"
)

// Formatter prints rows of catalog values. SetSchema must be called before the first Write.
//
// Supported values are nil, string, int, int64, bool, *string, []string, map[string]string and htypes.Type.
type Formatter interface {
	SetSchema(fields []string)
	Write(values []interface{}) error
	Close() error
}

func NewFormatter(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "", "table":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	default:
		return nil, errors.Errorf("unknown output format '%s', expected table, json or csv", format)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValueToString is the plain text rendering used by the table and CSV formats.
func ValueToString(value interface{}) string {
	switch value := value.(type) {
	case nil:
		return ""
	case string:
		return value
	case *string:
		if value == nil {
			return ""
		}
		return *value
	case []string:
		return strings.Join(value, ",")
	case map[string]string:
		parts := make([]string, 0, len(value))
		for _, k := range sortedKeys(value) {
			parts = append(parts, k+"="+value[k])
		}
		return strings.Join(parts, ",")
	case htypes.Type:
		return value.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}
