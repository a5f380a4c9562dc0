package builtin

import (
	"testing"

	"statcheck/pkg/records"
)

/*
TestCoerceNumeric_Degrade verifies the permissive coercion stance: numeric
text becomes a number, anything uncoercible becomes a missing cell, and no
error is ever raised.
*/
func TestCoerceNumeric_Degrade(t *testing.T) {
	in := []records.Record{{
		"runs":    "600",
		"wickets": "sixty",
		"age":     "30.5",
		"name":    "Alice",
	}}
	CoerceNumeric{Fields: []string{"runs", "wickets", "age"}}.Apply(in)

	r := in[0]
	if v, ok := r["runs"].(int); !ok || v != 600 {
		t.Fatalf("runs = %#v, want int 600", r["runs"])
	}
	if r["wickets"] != nil {
		t.Fatalf("uncoercible cell must degrade to missing, got %#v", r["wickets"])
	}
	if v, ok := r["age"].(float64); !ok || v != 30.5 {
		t.Fatalf("age = %#v, want float64 30.5", r["age"])
	}
	if r["name"] != "Alice" {
		t.Fatalf("untargeted field must be untouched, got %#v", r["name"])
	}
}

func TestCoerceNumeric_AlreadyTyped(t *testing.T) {
	in := []records.Record{{"runs": 600, "wickets": float64(60), "age": nil}}
	CoerceNumeric{Fields: []string{"runs", "wickets", "age"}}.Apply(in)
	r := in[0]
	if v, ok := r["runs"].(int); !ok || v != 600 {
		t.Fatalf("int cell should pass through, got %#v", r["runs"])
	}
	if v, ok := r["wickets"].(int); !ok || v != 60 {
		t.Fatalf("integral float should narrow to int, got %#v", r["wickets"])
	}
	if r["age"] != nil {
		t.Fatalf("missing cell should stay missing")
	}
}
