package models

import (
	"testing"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

func TestRecordIDString(t *testing.T) {
	id := surrealmodels.NewRecordID("event", "abc123")

	s, err := RecordIDString(id)
	if err != nil {
		t.Fatalf("RecordIDString() error = %v", err)
	}
	if s != "abc123" {
		t.Errorf("RecordIDString() = %q, want %q", s, "abc123")
	}
}

func TestRecordIDStringNonString(t *testing.T) {
	id := surrealmodels.NewRecordID("event", 42)

	if _, err := RecordIDString(id); err == nil {
		t.Error("RecordIDString() expected error for non-string ID")
	}
}

func TestMustRecordIDStringPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustRecordIDString() expected panic for non-string ID")
		}
	}()

	MustRecordIDString(surrealmodels.NewRecordID("event", 42))
}
