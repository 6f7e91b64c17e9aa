package sift

import (
	"fmt"
	"strings"
)

// VarStringColumnType is a column type which stores a variable-length string value
type VarStringColumnType struct{}

// Size in bytes of the fixed-length portion of a VarStringColumn
func (b *VarStringColumnType) Size() int {
	return 0
}

// ToString produces a string representation of a value of a VarStringColumnType value
func (b *VarStringColumnType) ToString(v interface{}) string {
	return v.(string)
}

// Name returns the name of this type
func (b *VarStringColumnType) Name() string {
	return "string"
}

// EstimateSize estimates the in-memory size of a string value (header + bytes)
func (b *VarStringColumnType) EstimateSize(v interface{}) int {
	return 16 + len(v.(string))
}

// VarBytesColumnType is a column type which stores variable-length byte arrays
type VarBytesColumnType struct{}

// Size in bytes of the fixed-length portion of a VarBytesColumn
func (b *VarBytesColumnType) Size() int {
	return 0
}

// ToString produces a string representation of a value of a VarBytesColumnType value
func (b *VarBytesColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%x", v.([]byte))
}

// Name returns the name of this type
func (b *VarBytesColumnType) Name() string {
	return "bytes"
}

// EstimateSize estimates the in-memory size of a byte slice value (header + bytes)
func (b *VarBytesColumnType) EstimateSize(v interface{}) int {
	return 24 + len(v.([]byte))
}

// previewBytes renders at most a handful of bytes, for logging
func previewBytes(bytes []byte) string {
	var res strings.Builder
	fmt.Fprint(&res, "[")
	for i, v := range bytes {
		// don't print more than 5 entries
		if i > 5 {
			fmt.Fprintf(&res, "... %d more", len(bytes)-5)
			break
		}
		fmt.Fprintf(&res, "%x", v)
	}
	fmt.Fprint(&res, "]")
	return res.String()
}

// PreviewValue produces a short, human-readable representation of a value, for logging and debugging
func PreviewValue(colType ColumnType, v interface{}) string {
	if v == nil {
		return "nil"
	}
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []byte:
		return previewBytes(v)
	default:
		return colType.ToString(v)
	}
}
