package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"statcheck/internal/dataset"
	"statcheck/pkg/records"
)

func sample() *dataset.Dataset {
	return dataset.New(
		[]string{"playerName", "age", "runs"},
		[]records.Record{
			{"playerName": "Alice", "age": 30, "runs": 600},
			{"playerName": "Bob", "age": nil, "runs": float64(400)},
		},
	)
}

func TestEncode(t *testing.T) {
	data, err := Encode(sample())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "playerName,age,runs\nAlice,30,600\nBob,,400\n"
	if string(data) != want {
		t.Fatalf("encoded = %q, want %q", data, want)
	}
}

/*
TestWriteCSV_Overwrites verifies the one-shot overwrite contract: a second
write fully replaces the file, and writing the same dataset twice produces
byte-identical files (the idempotence property for the merge snapshot).
*/
func TestWriteCSV_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merged_data.csv")

	if err := WriteCSV(path, sample()); err != nil {
		t.Fatalf("first write: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	if err := WriteCSV(path, sample()); err != nil {
		t.Fatalf("second write: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("repeated writes are not byte-identical")
	}
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(sample())
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	b, _ := Fingerprint(sample())
	if a != b {
		t.Fatalf("same dataset hashed differently: %s vs %s", a, b)
	}

	changed := sample()
	changed.Rows[0]["runs"] = 601
	c, _ := Fingerprint(changed)
	if a == c {
		t.Fatalf("different dataset shares fingerprint %s", a)
	}
}
