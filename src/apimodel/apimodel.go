// Package apimodel extends GORM models with the helpers REST handlers
// need: database failures translated into the API error taxonomy, instance
// serialization into view-restricted JSON dictionaries, and response
// documentation derived from model metadata.
//
// Models opt in by declaring serialization views (Serializable) and,
// optionally, computed attributes (ComputedProvider). Field information
// comes from GORM's parsed schema, built once per model and cached for the
// process lifetime, so none of the helpers touch the database.
package apimodel

// Views maps a view name to the ordered attribute names serialized for
// that view. Names refer to column names from the GORM schema or to
// computed attributes declared by the model.
type Views map[string][]string

// Serializable is implemented by models that declare serialization views.
// Declare it on the value receiver so both values and pointers satisfy it.
type Serializable interface {
	SerializationViews() Views
}

// Computed describes a derived attribute available to serialization views.
// Fn receives the model value (never a pointer) and returns the attribute
// value. Result declares the attribute's JSON shape for response
// documentation; a zero Result documents it as "object".
type Computed struct {
	Fn     func(model any) any
	Result Result
}

// ComputedProvider is implemented by models exposing computed attributes.
type ComputedProvider interface {
	ComputedAttrs() map[string]Computed
}

// Result declares the JSON result type of a computed attribute. Type holds
// a sample value (int, string, time.Time, ...) or a model prototype; nested
// models are described by their own response document. Construct values
// with Of, ListOf, ViewOf or ListViewOf.
type Result struct {
	Type    any
	View    string
	HasView bool
	List    bool
}

// Of declares a bare result type.
func Of(t any) Result { return Result{Type: t} }

// ListOf declares a JSON array of t.
func ListOf(t any) Result { return Result{Type: t, List: true} }

// ViewOf pairs a nested model with the view describing it. An empty view
// selects the model's all-fields document.
func ViewOf(t any, view string) Result { return Result{Type: t, View: view, HasView: true} }

// ListViewOf declares a JSON array of t described through view.
func ListViewOf(t any, view string) Result {
	return Result{Type: t, View: view, HasView: true, List: true}
}

// viewsOf returns the model's declared views, if any.
func viewsOf(model any) (Views, bool) {
	if s, ok := model.(Serializable); ok {
		return s.SerializationViews(), true
	}
	return nil, false
}

// computedOf returns the model's computed attributes, or nil.
func computedOf(model any) map[string]Computed {
	if p, ok := model.(ComputedProvider); ok {
		return p.ComputedAttrs()
	}
	return nil
}
