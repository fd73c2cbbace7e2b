package validation

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kbukum/apikit/errors"
)

func TestValidatorRequired(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"John", false},
		{"", true},
		{"   ", true},
	}
	for _, tc := range tests {
		v := New().Required("name", tc.value)
		if v.HasErrors() != tc.wantErr {
			t.Errorf("Required(%q): expected errors=%v", tc.value, tc.wantErr)
		}
	}
}

func TestValidatorRequiredUUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{"valid", uuid.New().String(), ""},
		{"empty", "", "is required"},
		{"malformed", "not-a-uuid", "must be a valid UUID"},
		{"nil uuid", uuid.Nil.String(), "must not be empty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New().RequiredUUID("id", tc.value)
			if tc.wantMsg == "" {
				if v.HasErrors() {
					t.Errorf("expected no errors, got %v", v.Errors())
				}
				return
			}
			if !v.HasErrors() || v.Errors()[0].Message != tc.wantMsg {
				t.Errorf("expected %q, got %v", tc.wantMsg, v.Errors())
			}
		})
	}
}

func TestValidatorOptionalUUID(t *testing.T) {
	if New().OptionalUUID("id", "").HasErrors() {
		t.Error("expected no error for empty optional UUID")
	}
	if !New().OptionalUUID("id", "bad-uuid").HasErrors() {
		t.Error("expected error for invalid optional UUID")
	}
}

func TestValidatorRules_Table(t *testing.T) {
	tests := []struct {
		name    string
		v       *Validator
		wantErr bool
	}{
		{"max length ok", New().MaxLength("name", "abc", 3), false},
		{"max length exceeded", New().MaxLength("name", "abcd", 3), true},
		{"range ok", New().Range("qty", 5, 1, 10), false},
		{"range low", New().Range("qty", 0, 1, 10), true},
		{"pattern ok", New().Pattern("sku", "AB-12", `^[A-Z]{2}-\d+$`), false},
		{"pattern mismatch", New().Pattern("sku", "ab12", `^[A-Z]{2}-\d+$`), true},
		{"pattern empty skipped", New().Pattern("sku", "", `^x$`), false},
		{"one of ok", New().OneOf("color", "red", []string{"red", "blue"}), false},
		{"one of bad", New().OneOf("color", "green", []string{"red", "blue"}), true},
		{"check true", New().Check(true, "x", "bad"), false},
		{"check false", New().Check(false, "x", "bad"), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.v.HasErrors() != tc.wantErr {
				t.Errorf("expected errors=%v, got %v", tc.wantErr, tc.v.Errors())
			}
		})
	}
}

func TestValidatorValidate_BadRequest(t *testing.T) {
	if err := New().Required("name", "ok").Validate(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	err := New().
		Required("name", "").
		MaxLength("sku", "toolong", 3).
		Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Kind() != errors.KindBadRequest {
		t.Errorf("expected BAD_REQUEST, got %s", err.Code())
	}
	if err.Status() != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.Status())
	}
	want := "name: is required; sku: must be 3 characters or less"
	if err.Message() != want {
		t.Errorf("expected %q, got %q", want, err.Message())
	}
	fields, ok := err.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected 2 field errors in details, got %v", err.Details["fields"])
	}
}

type createItem struct {
	Name      string `json:"name" validate:"required,max=8"`
	Price     int    `json:"price" validate:"gte=0"`
	OwnerID   string `json:"owner_id" validate:"omitempty,uuid"`
	UnitLabel string `validate:"omitempty,oneof=kg g"`
}

func TestStructValidate_Valid(t *testing.T) {
	if err := Validate(createItem{Name: "apple", Price: 3}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestStructValidate_Invalid(t *testing.T) {
	err := Validate(createItem{Name: "", Price: -1, OwnerID: "nope", UnitLabel: "lb"})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Code() != errors.CodeBadRequest {
		t.Errorf("expected BAD_REQUEST, got %s", err.Code())
	}

	msg := err.Message()
	for _, want := range []string{
		"name: is required",
		"price: must be greater than or equal to 0",
		"owner_id: must be a valid UUID",
		"unit_label: must be one of: kg g",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected message to contain %q, got %q", want, msg)
		}
	}
}

func TestStructValidate_Max(t *testing.T) {
	err := Validate(createItem{Name: "much-too-long", Price: 1})
	if err == nil || !strings.Contains(err.Message(), "name: must be at most 8") {
		t.Fatalf("expected max violation, got %v", err)
	}
}

func TestFromError_NonValidator(t *testing.T) {
	cause := fmt.Errorf("weird")
	err := FromError(cause)
	if err.Kind() != errors.KindBadRequest || err.Message() != "validation failed" {
		t.Errorf("unexpected error %v", err)
	}
	if err.Cause != cause {
		t.Error("expected cause to be kept")
	}
}

func TestParseUUID(t *testing.T) {
	want := uuid.New()
	got, err := ParseUUID("id", want.String())
	if err != nil || got != want {
		t.Fatalf("expected %s, got %s (%v)", want, got, err)
	}

	_, err = ParseUUID("id", "42x")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Status() != http.StatusBadRequest || err.Message() != "invalid id" {
		t.Errorf("expected 400 'invalid id', got %d %q", err.Status(), err.Message())
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Name":      "name",
		"UnitLabel": "unit_label",
		"already":   "already",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStructValidate_NonStructPasses(t *testing.T) {
	var nilItem *createItem
	for _, v := range []any{42, []createItem{{}}, nilItem, nil} {
		if err := Validate(v); err != nil {
			t.Errorf("Validate(%T) = %v, want nil", v, err)
		}
	}
	if err := Validate(&createItem{Name: "ok"}); err != nil {
		t.Errorf("expected pointer to valid struct to pass, got %v", err)
	}
}
