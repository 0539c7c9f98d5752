package snake

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestParseBool(t *testing.T) {
	for _, in := range []string{"y", "Yes", "true", "1"} {
		if b, err := ParseBool(in); err != nil || !b {
			t.Fatalf("%q: expected true, got %v %v", in, b, err)
		}
	}
	for _, in := range []string{"n", "No", "false", "0"} {
		if b, err := ParseBool(in); err != nil || b {
			t.Fatalf("%q: expected false, got %v %v", in, b, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Fatalf("expected an error for maybe")
	}
}

func testTree() *cobra.Command {
	noop := func(*cobra.Command, []string) error { return nil }
	root := &cobra.Command{Use: "dots"}
	root.PersistentFlags().String("log-level", "warn", "level")

	day := &cobra.Command{Use: "day"}
	set := &cobra.Command{Use: "set [note]", RunE: noop}
	set.Flags().String("date", "", "date")
	set.Flags().Bool("json", false, "json")
	day.AddCommand(set)

	root.AddCommand(day,
		&cobra.Command{Use: "auto", RunE: noop},
		&cobra.Command{Use: "hidden", Hidden: true, RunE: noop},
		&cobra.Command{Use: "key", RunE: noop},
	)
	return root
}

func TestCandidatesSkipsHiddenAndSkipped(t *testing.T) {
	root := testTree()
	got := Candidates(root, []string{"auto"})
	names := []string{}
	for _, c := range got {
		names = append(names, c.Name())
	}
	if len(names) != 2 || names[0] != "day" || names[1] != "key" {
		t.Fatalf("unexpected candidates %v", names)
	}
}

func TestFlagsIncludeInheritedAndContinue(t *testing.T) {
	root := testTree()
	set, _, err := root.Find([]string{"day", "set"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	fs := Flags(set)
	var names []string
	for _, f := range fs {
		names = append(names, f.Name)
	}
	want := []string{"date", "json", "log-level", continueName}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
	if !TakesArgs(set) {
		t.Fatalf("set takes a note")
	}
	if got := FlagArg(fs[0], "2025-6-1"); got != "--date=2025-6-1" {
		t.Fatalf("unexpected flag arg %q", got)
	}
}
