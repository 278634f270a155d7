package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestMenuGenerateAndExit(t *testing.T) {
	testConfig(t)
	in := strings.NewReader("1\n0\n")
	var out bytes.Buffer

	if err := runMenu(in, &out); err != nil {
		t.Fatalf("runMenu: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"Generating sample data...",
		"✓ Sample data saved to",
		"✓ Demo completed successfully!",
		"Thank you for using SalesLens!",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("menu output missing %q in:\n%s", want, got)
		}
	}
	if _, err := os.Stat(cfg.SampleFile); err != nil {
		t.Fatalf("sample file not written: %v", err)
	}
}

func TestMenuLoadAndSummary(t *testing.T) {
	c := testConfig(t)
	path := writeSampleCSV(t, c)

	in := strings.NewReader("2\n" + path + "\n3\n0\n")
	var out bytes.Buffer
	if err := runMenu(in, &out); err != nil {
		t.Fatalf("runMenu: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "✓ Loaded 40 records") {
		t.Fatalf("load line missing in:\n%s", got)
	}
	if !strings.Contains(got, "=== DATA SUMMARY ===") {
		t.Fatalf("summary missing in:\n%s", got)
	}
}

func TestMenuRequiresData(t *testing.T) {
	testConfig(t)
	in := strings.NewReader("3\n4\n11\n0\n")
	var out bytes.Buffer
	if err := runMenu(in, &out); err != nil {
		t.Fatalf("runMenu: %v", err)
	}
	if got := strings.Count(out.String(), "Please load data first"); got != 3 {
		t.Fatalf("prompt count = %d, want 3:\n%s", got, out.String())
	}
}

func TestMenuInvalidChoice(t *testing.T) {
	testConfig(t)
	in := strings.NewReader("99\n0\n")
	var out bytes.Buffer
	if err := runMenu(in, &out); err != nil {
		t.Fatalf("runMenu: %v", err)
	}
	if !strings.Contains(out.String(), "Invalid choice") {
		t.Fatalf("missing invalid-choice line:\n%s", out.String())
	}
}

func TestMenuEOF(t *testing.T) {
	testConfig(t)
	var out bytes.Buffer
	if err := runMenu(strings.NewReader(""), &out); err != nil {
		t.Fatalf("runMenu: %v", err)
	}
}
