package model

import "testing"

func TestRoster_LookupKeepsLeadingZeros(t *testing.T) {
	r := NewRoster([]Employee{
		{EmployeeNo: "00123", Name: "Jane Doe", JacketSize: "MEDIUM"},
		{EmployeeNo: " 77 ", Name: "Padded"},
	})

	if _, ok := r.Lookup("123"); ok {
		t.Error("123 must not match 00123")
	}
	e, ok := r.Lookup("  00123 ")
	if !ok {
		t.Fatal("expected 00123 to be found after trimming")
	}
	if e.Name != "Jane Doe" || e.JacketSize != "MEDIUM" {
		t.Errorf("unexpected record: %+v", e)
	}
	if _, ok := r.Lookup("77"); !ok {
		t.Error("stored numbers are normalized too")
	}
	if _, ok := r.Lookup(""); ok {
		t.Error("blank number must never match")
	}
}

func TestRoster_LastOneWins(t *testing.T) {
	r := NewRoster([]Employee{
		{EmployeeNo: "5", Name: "First"},
		{EmployeeNo: "6", Name: "Other"},
		{EmployeeNo: "5 ", Name: "Second"},
	})
	if r.Len() != 2 {
		t.Fatalf("expected 2 employees, got %d", r.Len())
	}
	e, _ := r.Lookup("5")
	if e.Name != "Second" {
		t.Errorf("expected last write to win, got %s", e.Name)
	}
}

func TestRoster_NilIsEmpty(t *testing.T) {
	var r *Roster
	if r.Len() != 0 {
		t.Error("nil roster should be empty")
	}
	if _, ok := r.Lookup("1"); ok {
		t.Error("nil roster should not find anything")
	}
}

func TestDedupeEmployees_DropsBlankAndKeepsOrder(t *testing.T) {
	out := DedupeEmployees([]Employee{
		{EmployeeNo: "b"},
		{EmployeeNo: "   "},
		{EmployeeNo: "a"},
		{EmployeeNo: "b", Name: "again"},
	})
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if out[0].EmployeeNo != "b" || out[0].Name != "again" || out[1].EmployeeNo != "a" {
		t.Errorf("unexpected order or content: %+v", out)
	}
}
