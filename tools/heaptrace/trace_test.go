package main

import "os"
import "path/filepath"
import "strings"
import "testing"

func writetrace(t *testing.T, text string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "sample.rep")
	if err := os.WriteFile(filename, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestReadtrace(t *testing.T) {
	filename := writetrace(t, "20000\n3\n4\n1\na 0 512\na 1 128\nf 0\nr 1 640\n")
	ops, slots, err := readtrace(filename)
	if err != nil {
		t.Fatal(err)
	} else if len(ops) != 4 {
		t.Errorf("expected %v, got %v", 4, len(ops))
	} else if slots != 2 {
		t.Errorf("expected %v, got %v", 2, slots)
	} else if ops[3].op != 'r' || ops[3].index != 1 || ops[3].size != 640 {
		t.Errorf("unexpected record %+v", ops[3])
	}
}

func TestReadtraceBadIndex(t *testing.T) {
	// a negative slot cannot name a pointer, reject it while parsing.
	filename := writetrace(t, "a -1 512\n")
	if _, _, err := readtrace(filename); err == nil {
		t.Errorf("expected error for negative index")
	} else if !strings.Contains(err.Error(), "negative index") {
		t.Errorf("unexpected error %v", err)
	}

	filename = writetrace(t, "a 0 512\nf -3\n")
	if _, _, err := readtrace(filename); err == nil {
		t.Errorf("expected error for negative index")
	}
}
