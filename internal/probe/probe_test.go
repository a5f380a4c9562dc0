package probe

import (
	"strings"
	"testing"
)

func TestSample_InferredTypes(t *testing.T) {
	in := "playerName,eventType,age,runs,average,debut\n" +
		"Alice,test,30,600,32.5,1995-04-12\n" +
		"Bob,odi,28,400,28.1,1998-01-03\n"

	cols, err := Sample(strings.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	want := map[string]string{
		"playerName": "text",
		"eventType":  "text",
		"age":        "integer",
		"runs":       "integer",
		"average":    "real",
		"debut":      "date",
	}
	if len(cols) != len(want) {
		t.Fatalf("got %d columns, want %d", len(cols), len(want))
	}
	for _, c := range cols {
		if want[c.Header] != c.Type {
			t.Errorf("column %s inferred %s, want %s", c.Header, c.Type, want[c.Header])
		}
	}
}

func TestSample_SkipsMisalignedRows(t *testing.T) {
	in := "a,b\n1,2\nonly-one-field\n3,4\n"
	cols, err := Sample(strings.NewReader(in), Options{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if cols[0].Type != "integer" {
		t.Fatalf("misaligned row skewed inference: %+v", cols[0])
	}
}

/*
TestNormalizeFieldName covers accent stripping and separator handling — the
canonical name must always be a lowercase ASCII identifier.
*/
func TestNormalizeFieldName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Player Name", "player_name"},
		{"Šárka's column", "sarkas_column"},
		{"runs.scored-total", "runs_scored_total"},
		{"  eventType  ", "eventtype"},
		{"---", "col"},
		{"", "col"},
	}
	for _, tc := range cases {
		if got := NormalizeFieldName(tc.in); got != tc.want {
			t.Errorf("NormalizeFieldName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
