package apimodel

import (
	"fmt"
)

// DocumentResponse describes a model's JSON representation for a view: an
// ordered Dict from attribute name to JSON type descriptor. A descriptor
// is a primitive type name, the literal "object", a nested Dict for an
// embedded model, or a one-element []any wrapping any of those to denote
// a list.
//
// With an empty view, every field the ORM recognizes as a column is
// documented. The result is derived purely from model metadata; no
// database access happens here.
func DocumentResponse(model any, view string) (*Dict, error) {
	sch, err := modelSchema(model)
	if err != nil {
		return nil, err
	}

	var attrs []string
	if view != "" {
		views, _ := viewsOf(model)
		names, ok := views[view]
		if !ok {
			return nil, fmt.Errorf("model %s declares no view %q", ModelName(model), view)
		}
		attrs = names
	} else {
		for _, field := range dataFields(sch) {
			attrs = append(attrs, field.DBName)
		}
	}

	dict := NewDict()
	for _, name := range attrs {
		descriptor, err := AttrJSONType(model, name, view)
		if err != nil {
			return nil, err
		}
		dict.Set(name, descriptor)
	}
	return dict, nil
}

// AttrJSONType resolves one attribute's JSON type descriptor. Fields
// resolve through the type map; computed attributes resolve through their
// declared Result, recursing into nested models' own response documents.
// Anything unresolvable documents as the literal "object".
func AttrJSONType(model any, attr string, view string) (any, error) {
	sch, err := modelSchema(model)
	if err != nil {
		return nil, err
	}

	if field := lookUpField(sch, attr); field != nil {
		if name := fieldJSONType(field); name != "" {
			return name, nil
		}
		return "object", nil
	}

	if c, ok := computedOf(model)[attr]; ok {
		return resultDescriptor(c.Result, view)
	}

	return "object", nil
}

// resultDescriptor resolves a computed attribute's declared Result into a
// descriptor. A Result carrying its own view overrides the view in
// effect; list results wrap the resolved descriptor in a one-element
// slice; a zero Result yields "object".
func resultDescriptor(r Result, view string) (any, error) {
	if r.Type == nil {
		return "object", nil
	}
	if r.HasView {
		view = r.View
	}

	var descriptor any
	if _, ok := r.Type.(Serializable); ok {
		nested, err := DocumentResponse(r.Type, view)
		if err != nil {
			return nil, err
		}
		descriptor = nested
	} else {
		descriptor = goJSONType(r.Type)
	}

	if r.List {
		return []any{descriptor}, nil
	}
	return descriptor, nil
}
