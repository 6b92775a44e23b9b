package hmsdb

import (
	"fmt"
	"strings"
)

// DefaultPartitionName is the directory name Hive uses for null or empty partition values.
const DefaultPartitionName = "__HIVE_DEFAULT_PARTITION__"

func needsEscaping(c byte) bool {
	if c < 0x20 || c == 0x7F {
		return true
	}
	switch c {
	case '"', '#', '%', '\'', '*', '/', ':', '=', '?', '\\', '{', '[', ']', '^':
		return true
	}
	return false
}

// EscapePathName escapes a partition key or value the way Hive does when building directory names.
func EscapePathName(path string) string {
	if path == "" {
		return DefaultPartitionName
	}

	var sb strings.Builder
	for i := 0; i < len(path); i++ {
		c := path[i]
		if needsEscaping(c) {
			fmt.Fprintf(&sb, "%%%02X", c)
		} else {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// MakePartName builds a partition name like ds=2020-01-01/country=pl.
func MakePartName(keys []string, values []string) (string, error) {
	if len(keys) != len(values) {
		return "", fmt.Errorf("partition has %d keys but %d values", len(keys), len(values))
	}

	parts := make([]string, len(keys))
	for i := range keys {
		parts[i] = EscapePathName(strings.ToLower(keys[i])) + "=" + EscapePathName(values[i])
	}
	return strings.Join(parts, "/"), nil
}
