package bamboohr

import (
	"bytes"
	"context"
	"net/http"
	"testing"
)

func TestGetEmployeeDirectory(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/acme/v1/employees/directory" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		w.Write([]byte(`{
			"fields": [{"id":"displayName","type":"text","name":"Display name"}],
			"employees": [{"displayName":"Ada Lovelace"}]
		}`))
	})

	directory, err := client.GetEmployeeDirectory(context.Background())
	if err != nil {
		t.Fatalf("GetEmployeeDirectory: %v", err)
	}
	if len(directory.Employees) != 1 {
		t.Fatalf("expected 1 employee, got %d", len(directory.Employees))
	}
	if len(directory.Fields) != 1 || directory.Fields[0].ID != "displayName" {
		t.Fatalf("fields = %+v", directory.Fields)
	}
}

func TestGetEmployee(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/acme/v1/employees/42" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("fields"); got != "id,jobTitle" {
			t.Fatalf("fields query = %q", got)
		}
		w.Write([]byte(`{"id":"42","jobTitle":"Engineer"}`))
	})

	record, err := client.GetEmployee(context.Background(), 42, []string{"id", "jobTitle"})
	if err != nil {
		t.Fatalf("GetEmployee: %v", err)
	}
	if v := record["jobTitle"]; v == nil || *v != "Engineer" {
		t.Fatalf("jobTitle = %v", v)
	}
}

func TestGetEmployeeDefaultsFields(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("fields"); got != "firstName,lastName" {
			t.Fatalf("fields query = %q", got)
		}
		w.Write([]byte(`{"firstName":"Ada","lastName":"Lovelace"}`))
	})

	if _, err := client.GetEmployee(context.Background(), 0, nil); err != nil {
		t.Fatalf("GetEmployee: %v", err)
	}
}

func TestGetPhoto(t *testing.T) {
	photo := []byte{0xff, 0xd8, 0xff}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/acme/v1/employees/7/photo/small" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		w.Write(photo)
	})

	got, err := client.GetPhoto(context.Background(), 7, PhotoSmall)
	if err != nil {
		t.Fatalf("GetPhoto: %v", err)
	}
	if !bytes.Equal(got, photo) {
		t.Fatalf("photo bytes = %v", got)
	}
}

func TestGetPhotoDefaultsToOriginal(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/acme/v1/employees/7/photo/original" {
			t.Fatalf("path = %s", r.URL.Path)
		}
		w.Write([]byte{1})
	})

	if _, err := client.GetPhoto(context.Background(), 7, ""); err != nil {
		t.Fatalf("GetPhoto: %v", err)
	}
}
