package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDocsHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	rr := httptest.NewRecorder()

	DocsHandler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var docs map[string]struct {
		Fields map[string]any            `json:"fields"`
		Views  map[string]map[string]any `json:"views"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &docs); err != nil {
		t.Fatalf("docs are not valid JSON: %v", err)
	}

	for _, name := range []string{"User", "Article", "Comment"} {
		if _, ok := docs[name]; !ok {
			t.Fatalf("docs missing model %s", name)
		}
	}

	user := docs["User"]
	if user.Fields["username"] != "string" || user.Fields["active"] != "bool" {
		t.Fatalf("unexpected user field docs: %v", user.Fields)
	}

	profile, ok := user.Views["profile"]
	if !ok {
		t.Fatalf("user docs missing profile view: %v", user.Views)
	}
	if profile["member_for"] != "integer" {
		t.Fatalf("member_for documented as %v, want integer", profile["member_for"])
	}

	article := docs["Article"]
	full, ok := article.Views["full"]
	if !ok {
		t.Fatalf("article docs missing full view: %v", article.Views)
	}
	if full["reading_time"] != "object" {
		t.Fatalf("reading_time documented as %v, want object", full["reading_time"])
	}
	if _, ok := full["author"].(map[string]any); !ok {
		t.Fatalf("author should document as a nested object, got %v", full["author"])
	}

	comments, ok := full["comments"].([]any)
	if !ok || len(comments) != 1 {
		t.Fatalf("comments should document as a one-element list, got %v", full["comments"])
	}
}
