package reports

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
reports:
  - id: roster
    title: Current Roster
    fields: [id, firstName, lastName, jobTitle]
  - id: contacts
    fields:
      - workEmail
      - mobilePhone
    enabled: false
    only_current: false
`

func writeReportsFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write reports file: %v", err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	reg, err := LoadRegistry(writeReportsFile(t, "reports.yaml", sampleYAML))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	if got := len(reg.All()); got != 2 {
		t.Fatalf("expected 2 presets, got %d", got)
	}

	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "roster" {
		t.Fatalf("enabled presets = %+v", enabled)
	}

	roster, ok := reg.ByID("roster")
	if !ok {
		t.Fatalf("roster preset missing")
	}
	if roster.Title != "Current Roster" {
		t.Fatalf("title = %q", roster.Title)
	}
	if len(roster.Fields) != 4 || roster.Fields[0] != "id" {
		t.Fatalf("fields = %v", roster.Fields)
	}
	if !roster.OnlyCurrentValue() {
		t.Fatalf("only_current should default to true")
	}

	contacts, _ := reg.ByID("contacts")
	if contacts.Title != "contacts" {
		t.Fatalf("title should default to id, got %q", contacts.Title)
	}
	if contacts.OnlyCurrentValue() {
		t.Fatalf("only_current=false not honored")
	}
}

func TestParseRegistryRejectsDuplicates(t *testing.T) {
	raw := []byte(`{"reports":[{"id":"a","fields":["id"]},{"id":"a","fields":["id"]}]}`)
	if _, err := ParseRegistry(raw, ".json"); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestParseRegistryRequiresFields(t *testing.T) {
	raw := []byte(`reports: [{id: empty, fields: []}]`)
	if _, err := ParseRegistry(raw, ".yaml"); err == nil {
		t.Fatalf("expected error for preset without fields")
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	if _, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
