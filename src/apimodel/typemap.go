package apimodel

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm/schema"
)

// typeMap maps GORM field data types to the JSON type names used in
// response documents. Keys are either GORM's kind-derived data types or
// lowercased column types from `gorm:"type:..."` tags. Static and
// read-only after init, safe for concurrent use.
var typeMap = map[schema.DataType]string{
	schema.Bool:   "bool",
	schema.Int:    "integer",
	schema.Uint:   "integer",
	schema.Float:  "double",
	schema.String: "string",
	schema.Time:   "Datetime",

	"text":        "string",
	"varchar":     "string",
	"char":        "string",
	"integer":     "integer",
	"smallint":    "integer",
	"bigint":      "Bigint",
	"serial":      "integer",
	"bigserial":   "Bigint",
	"date":        "Date",
	"timestamp":   "Timestamp",
	"timestamptz": "Timestamp",
	"decimal":     "double",
	"numeric":     "double",
	"real":        "float",
	"double":      "double",
	"boolean":     "bool",
}

// fieldJSONType resolves a schema field's JSON type name through the type
// map, or "" when the data type is not mapped.
func fieldJSONType(field *schema.Field) string {
	if field.DataType == schema.Float && field.Size == 32 {
		return "float"
	}
	name, ok := typeMap[normalizeDataType(field.DataType)]
	if !ok {
		return ""
	}
	return name
}

// normalizeDataType lowercases a column type and strips any size or
// precision suffix, so "decimal(20,8)" and "VARCHAR(60)" hit the map.
func normalizeDataType(dt schema.DataType) schema.DataType {
	s := strings.ToLower(string(dt))
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	return schema.DataType(strings.TrimSpace(s))
}

// goJSONType resolves a plain Go value's JSON type name, mirroring the
// field type map. Used for computed attribute results that are not model
// types. Unresolvable types document as "object".
func goJSONType(sample any) string {
	switch sample.(type) {
	case bool:
		return "bool"
	case int, int8, int16, int32, uint, uint8, uint16, uint32:
		return "integer"
	case int64, uint64:
		return "Bigint"
	case float32:
		return "float"
	case float64:
		return "double"
	case string:
		return "string"
	case time.Time, *time.Time:
		return "Datetime"
	case decimal.Decimal:
		return "double"
	}
	return "object"
}
