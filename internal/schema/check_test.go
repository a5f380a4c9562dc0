package schema

import (
	"reflect"
	"testing"

	"statcheck/internal/dataset"
	"statcheck/pkg/records"
)

func conformingDataset() *dataset.Dataset {
	return dataset.New(
		[]string{"eventType", "playerName", "age", "runs", "wickets", "playerType"},
		[]records.Record{{
			"eventType": "test", "playerName": "Alice",
			"age": 30, "runs": 600, "wickets": 60, "playerType": "All-Rounder",
		}},
	)
}

func TestCheck_Conforming(t *testing.T) {
	valid, errs := Check(PlayerResults(), conformingDataset())
	if !valid || len(errs) != 0 {
		t.Fatalf("valid=%v errs=%v, want clean pass", valid, errs)
	}
}

/*
TestCheck_MissingColumns verifies the exact wording and ordering of the
error list: one message per violating column, in contract order, and the
valid flag is false iff the list is non-empty.
*/
func TestCheck_MissingColumns(t *testing.T) {
	ds := dataset.New([]string{"playerName", "age"}, nil)
	valid, errs := Check(PlayerResults(), ds)
	if valid {
		t.Fatalf("schema must be invalid when columns are missing")
	}
	want := []string{
		"Column 'eventType' is missing",
		"Column 'runs' is missing",
		"Column 'wickets' is missing",
		"Column 'playerType' is missing",
	}
	if !reflect.DeepEqual(errs, want) {
		t.Fatalf("errs = %v, want %v", errs, want)
	}
}

func TestCheck_TypeViolations(t *testing.T) {
	ds := conformingDataset()
	ds.Rows[0]["age"] = "thirty"
	ds.Rows[0]["playerType"] = 7

	valid, errs := Check(PlayerResults(), ds)
	if valid {
		t.Fatalf("schema must be invalid on type violations")
	}
	want := []string{
		"Column 'age' should be integer type",
		"Column 'playerType' should be string type",
	}
	if !reflect.DeepEqual(errs, want) {
		t.Fatalf("errs = %v, want %v", errs, want)
	}
}

/*
TestCheck_PermissiveInteger documents the permissive numeric typing: a
wider numeric representation of an integral value conforms, a fractional
value does not.
*/
func TestCheck_PermissiveInteger(t *testing.T) {
	ds := conformingDataset()
	ds.Rows[0]["age"] = float64(30)
	if valid, errs := Check(PlayerResults(), ds); !valid {
		t.Fatalf("integral float must downcast cleanly: %v", errs)
	}

	ds.Rows[0]["age"] = 30.5
	if valid, _ := Check(PlayerResults(), ds); valid {
		t.Fatalf("fractional value must not count as integer")
	}
}

func TestCheck_MissingCellsDoNotViolateTypes(t *testing.T) {
	ds := conformingDataset()
	ds.Rows[0]["wickets"] = nil
	if valid, errs := Check(PlayerResults(), ds); !valid {
		t.Fatalf("missing cell flagged as type violation: %v", errs)
	}
}
