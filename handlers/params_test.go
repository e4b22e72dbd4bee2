package handlers

import (
	"strings"
	"testing"
	"time"

	"timesheet-project/backend/services"
)

func TestObjectIDParam(t *testing.T) {
	t.Parallel()
	if _, err := objectIDParam("507f1f77bcf86cd799439011", "project ID"); err != nil {
		t.Fatalf("valid hex rejected: %v", err)
	}

	_, err := objectIDParam("not-an-id", "project ID")
	if err == nil {
		t.Fatal("malformed hex accepted")
	}
	se := services.AsError(err)
	if se.Code != services.CodeValidation {
		t.Errorf("code = %q, want VALIDATION", se.Code)
	}
	if !strings.Contains(se.Message, "project ID") {
		t.Errorf("message %q does not name the field", se.Message)
	}
}

func TestDecodePatchConvertsDateFields(t *testing.T) {
	t.Parallel()
	body := strings.NewReader(`{"name":"Q2 audit","dueDate":"2024-06-30","priority":"high"}`)
	patch, err := decodePatch(body, "dueDate")
	if err != nil {
		t.Fatalf("decodePatch: %v", err)
	}

	due, ok := patch["dueDate"].(time.Time)
	if !ok {
		t.Fatalf("dueDate = %T, want time.Time", patch["dueDate"])
	}
	if due.Year() != 2024 || due.Month() != time.June {
		t.Errorf("dueDate = %v", due)
	}
	if patch["name"] != "Q2 audit" {
		t.Errorf("name = %v", patch["name"])
	}
}

func TestDecodePatchRejectsBadDate(t *testing.T) {
	t.Parallel()
	body := strings.NewReader(`{"dueDate":"soon"}`)
	if _, err := decodePatch(body, "dueDate"); err == nil {
		t.Fatal("bad date accepted")
	}
}

func TestDecodePatchRejectsBadJSON(t *testing.T) {
	t.Parallel()
	if _, err := decodePatch(strings.NewReader(`{`)); err == nil {
		t.Fatal("truncated JSON accepted")
	}
}

func TestMissingFieldsStableOrder(t *testing.T) {
	t.Parallel()
	missing := missingFields(map[string]string{
		"password": "",
		"email":    "",
		"fullName": "",
		"phone":    "ok",
	})
	if len(missing) != 3 {
		t.Fatalf("missing = %v, want 3 entries", missing)
	}
	if missing[0] != "email" || missing[1] != "fullName" || missing[2] != "password" {
		t.Errorf("missing = %v, want [email fullName password]", missing)
	}
}

func TestMissingFieldsEmptyWhenComplete(t *testing.T) {
	t.Parallel()
	if missing := missingFields(map[string]string{"name": "x", "project": "y"}); len(missing) != 0 {
		t.Errorf("missing = %v, want none", missing)
	}
}
