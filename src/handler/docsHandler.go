package handler

import (
	"net/http"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/zjurelinac/East/src/apierror"
	"github.com/zjurelinac/East/src/apimodel"
	"github.com/zjurelinac/East/src/model"
)

// documentedModels lists every model that appears on the docs page.
var documentedModels = []any{
	model.User{},
	model.Article{},
	model.Comment{},
}

// BuildDocs assembles the API documentation: per model, the all-fields
// document plus one document per declared view. Derived purely from model
// metadata, so it never touches the database.
func BuildDocs() (*apimodel.Dict, error) {
	docs := apimodel.NewDict()
	for _, m := range documentedModels {
		entry := apimodel.NewDict()

		fields, err := apimodel.DocumentResponse(m, "")
		if err != nil {
			return nil, err
		}
		entry.Set("fields", fields)

		views := apimodel.NewDict()
		if s, ok := m.(apimodel.Serializable); ok {
			names := make([]string, 0, len(s.SerializationViews()))
			for name := range s.SerializationViews() {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				doc, err := apimodel.DocumentResponse(m, name)
				if err != nil {
					return nil, err
				}
				views.Set(name, doc)
			}
		}
		entry.Set("views", views)

		docs.Set(apimodel.ModelName(m), entry)
	}
	return docs, nil
}

// DocsHandler serves the auto-generated response documentation.
func DocsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := BuildDocs()
		if err != nil {
			logger.WithError(err).Error("failed to build docs")
			apierror.Write(w, err)
			return
		}

		writeJSON(w, http.StatusOK, docs)
	}
}
