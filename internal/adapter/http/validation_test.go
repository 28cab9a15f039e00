package http

import (
	"errors"
	"testing"
)

func TestEmploymentValidation(t *testing.T) {
	type P struct {
		EmploymentType string `json:"employment_type" validate:"required,employment"`
	}
	cv := NewValidator()

	for _, s := range []string{"Salaried", "Self-Employed", "Business", "Other"} {
		if err := cv.Validate(P{EmploymentType: s}); err != nil {
			t.Fatalf("expected %q valid, got %v", s, err)
		}
	}
	for _, s := range []string{"salaried", "Freelance", "Self Employed"} {
		err := cv.Validate(P{EmploymentType: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "employment_type", "must be one of") {
			t.Fatalf("expected employment message for %q, got %+v", s, fe)
		}
	}
}

func TestDec2Validation(t *testing.T) {
	type P struct {
		Amount float64 `json:"loan_amount" validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []float64{50000, 1.29, 2.00, 0.9} {
		if err := cv.Validate(P{Amount: v}); err != nil {
			t.Fatalf("expected dec2 OK for %v, got %v", v, err)
		}
	}
	for _, v := range []float64{1.234, 2.9999} {
		err := cv.Validate(P{Amount: v})
		if err == nil {
			t.Fatalf("expected dec2 error for %v", v)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "loan_amount", "at most 2 decimal places") {
			t.Fatalf("expected 'at most 2 decimal places' for %v, got %+v", v, fe)
		}
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name   string  `json:"name" validate:"required"`
		Tenure int     `json:"tenure_months" validate:"gt=0"`
		Rate   float64 `query:"rate" validate:"gte=0"`
		Max    int     `validate:"lte=5"`
		File   string  `json:"filename" validate:"max=3"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Name: "", Tenure: 0, Rate: -1, Max: 6, File: "abcd"})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	checks := []struct{ field, msg string }{
		{"name", "is required"},
		{"tenure_months", "greater than 0"},
		{"rate", "greater than or equal to 0"},
		{"Max", "less than or equal to 5"},
		{"filename", "at most 3 characters"},
	}
	for _, c := range checks {
		if !containsFieldMsg(fe, c.field, c.msg) {
			t.Fatalf("missing %q for %s: %+v", c.msg, c.field, fe)
		}
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
