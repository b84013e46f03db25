package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input string
	}{
		{name: "iso date", input: "2024-05-18"},
		{name: "day first", input: "18/05/2024"},
		{name: "day first short year", input: "18/05/24"},
		{name: "rfc3339 keeps the calendar day", input: "2024-05-18T23:10:00+07:00"},
		{name: "datetime", input: "2024-05-18 13:45:00"},
		{name: "url escaped", input: "18%2F05%2F2024"},
		{name: "surrounding spaces", input: "  2024-05-18 "},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(want) {
				t.Fatalf("expected %s, got %s", want, got)
			}
		})
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024-13-40"} {
		if _, err := ParseDate(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("amount", " 1,250.50 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1250.50 {
		t.Fatalf("expected 1250.50, got %v", v)
	}

	_, err = ParseAmount("amount", "abc")
	var verr *ValidationError
	if !errors.As(err, &verr) || !verr.HasField("amount") {
		t.Fatalf("expected validation error on amount, got %v", err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation in chain")
	}

	_, err = ParseAmount("fee", "")
	if !errors.As(err, &verr) || !verr.HasField("fee") {
		t.Fatalf("expected required error on fee, got %v", err)
	}
}

func TestParseBool(t *testing.T) {
	tests := map[string]bool{"1": true, "true": true, "On": true, "0": false, "false": false, "no": false}
	for in, want := range tests {
		got, err := ParseBool(in)
		if err != nil {
			t.Fatalf("ParseBool(%q) unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseBool(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Fatalf("expected error for maybe")
	}
	if FormatBool(true) != "1" || FormatBool(false) != "0" {
		t.Fatalf("unexpected FormatBool spelling")
	}
}

func TestValidateStruct(t *testing.T) {
	type input struct {
		Name  string  `json:"name" validate:"required"`
		Email string  `json:"email" validate:"omitempty,email"`
		Fee   float64 `json:"fee" validate:"gte=0"`
	}

	if err := ValidateStruct(input{Name: "Sara"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ValidateStruct(input{Email: "nope", Fee: -1})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	for _, f := range []string{"name", "email", "fee"} {
		if !verr.HasField(f) {
			t.Errorf("expected field error for %s, got %v", f, verr.Fields)
		}
	}
	for _, f := range verr.Fields {
		if f.Field == "name" && f.Error != "this field is required" {
			t.Errorf("unexpected required text %q", f.Error)
		}
	}
}
