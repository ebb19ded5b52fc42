package apimodel

import (
	"fmt"
	"reflect"
	"sync"

	"gorm.io/gorm/schema"
)

// schemaCache holds GORM's parsed schemas, built once per model type and
// reused by every serialization and documentation call afterwards.
var (
	schemaCache = &sync.Map{}
	schemaNamer = schema.NamingStrategy{}
)

// modelSchema parses (or fetches from cache) the GORM schema of model.
func modelSchema(model any) (*schema.Schema, error) {
	sch, err := schema.Parse(model, schemaCache, schemaNamer)
	if err != nil {
		return nil, fmt.Errorf("parsing schema of %s: %w", ModelName(model), err)
	}
	return sch, nil
}

// ModelName returns the model's type name, dereferencing pointers.
func ModelName(model any) string {
	t := reflect.TypeOf(model)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// modelValue dereferences model down to its struct value, so computed
// attribute functions always receive the value form.
func modelValue(model any) reflect.Value {
	return reflect.Indirect(reflect.ValueOf(model))
}

// dataFields returns the schema fields that carry a database data type, in
// declaration order. Relation fields (which have no data type of their
// own) are excluded.
func dataFields(sch *schema.Schema) []*schema.Field {
	fields := make([]*schema.Field, 0, len(sch.Fields))
	for _, field := range sch.Fields {
		if field.DataType == "" {
			continue
		}
		fields = append(fields, field)
	}
	return fields
}

// lookUpField resolves an attribute name (struct field name or column
// name) to a schema field carrying a data type, or nil.
func lookUpField(sch *schema.Schema, name string) *schema.Field {
	field := sch.LookUpField(name)
	if field == nil || field.DataType == "" {
		return nil
	}
	return field
}
