package apimodel

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"gorm.io/gorm/schema"
)

// ToJSONDict serializes a model instance into a JSON-encodable Dict.
//
// With a non-empty view on a model that declares views, the result holds
// exactly the view's attribute names in declared order, each value passed
// through the per-value serializer. With an empty view (or a model without
// view declarations) it returns the instance's raw field values as held by
// the ORM, unfiltered, in field declaration order.
func ToJSONDict(instance any, view string) (*Dict, error) {
	sch, err := modelSchema(instance)
	if err != nil {
		return nil, err
	}

	views, hasViews := viewsOf(instance)
	if view == "" || !hasViews {
		return rawDict(sch, instance)
	}

	names, ok := views[view]
	if !ok {
		return nil, fmt.Errorf("model %s declares no view %q", ModelName(instance), view)
	}

	computed := computedOf(instance)
	value := modelValue(instance)
	dict := NewDict()
	for _, name := range names {
		if field := lookUpField(sch, name); field != nil {
			v, _ := field.ValueOf(context.Background(), value)
			dict.Set(name, serializeValue(v, view))
			continue
		}
		if attr, ok := computed[name]; ok {
			nested := view
			if attr.Result.HasView {
				nested = attr.Result.View
			}
			dict.Set(name, serializeValue(attr.Fn(value.Interface()), nested))
			continue
		}
		return nil, fmt.Errorf("model %s has no attribute %q named in view %q",
			ModelName(instance), name, view)
	}
	return dict, nil
}

// rawDict returns every data field's value keyed by column name, without
// per-value serialization.
func rawDict(sch *schema.Schema, instance any) (*Dict, error) {
	value := modelValue(instance)
	dict := NewDict()
	for _, field := range dataFields(sch) {
		v, _ := field.ValueOf(context.Background(), value)
		dict.Set(field.DBName, v)
	}
	return dict, nil
}

// serializeValue converts one attribute value into its JSON-encodable
// form: times become RFC 3339 strings, nested view-declaring models
// serialize through their own ToJSONDict with the same view, slices
// serialize element-wise and pointers are dereferenced.
func serializeValue(v any, view string) any {
	if v == nil {
		return nil
	}

	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.Format(time.RFC3339)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil
	}

	if _, ok := v.(Serializable); ok {
		if dict, err := ToJSONDict(v, view); err == nil {
			return dict
		}
		// The nested model does not declare this view; fall back to its
		// raw field dict rather than leaking the struct.
		if dict, err := ToJSONDict(v, ""); err == nil {
			return dict
		}
		return v
	}

	switch rv.Kind() {
	case reflect.Ptr:
		return serializeValue(rv.Elem().Interface(), view)
	case reflect.Slice:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = serializeValue(rv.Index(i).Interface(), view)
		}
		return out
	}

	return v
}
