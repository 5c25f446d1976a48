package sheet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
)

func TestClientListItemsQuery(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    0,
			"message": "success",
			"data": []entity.Item{
				{ID: "i1", ProjectID: "p1", RoomID: "r1", Name: "Sofa", Status: entity.StatusPicked},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	items, err := c.ListItems(context.Background(), "p1", []string{entity.StatusPicked})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if gotPath != "/api/items" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "project_id=p1&status=PICKED" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(items) != 1 || items[0].Name != "Sofa" {
		t.Fatalf("items = %+v", items)
	}
}

func TestClientUpdateItemSendsPartialBody(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    0,
			"message": "success",
			"data":    entity.Item{ID: "i1", Status: entity.StatusOrdered},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	item, err := c.UpdateItem(context.Background(), "i1", map[string]interface{}{"status": entity.StatusOrdered})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if len(gotBody) != 1 || gotBody["status"] != entity.StatusOrdered {
		t.Errorf("body = %v, want only the edited field", gotBody)
	}
	if item.Status != entity.StatusOrdered {
		t.Errorf("status = %q", item.Status)
	}
}

func TestClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    40400,
			"message": "item not found",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.DeleteItem(context.Background(), "ghost")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("err = %T %v, want *APIError", err, err)
	}
	if apiErr.Status != 404 || apiErr.Code != 40400 {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestClientAPIErrorNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html><body>502 Bad Gateway</body></html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.DeleteItem(context.Background(), "i1")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("err = %T %v, want *APIError for an HTML error page", err, err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", apiErr.Status)
	}
}
