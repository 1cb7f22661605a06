package species

import (
	"sort"
	"testing"
)

func TestAllSortedAndNonEmpty(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("expected embedded species list")
	}
	if !sort.StringsAreSorted(all) {
		t.Error("expected sorted list")
	}
	for _, n := range all {
		if n == "" {
			t.Error("blank species name in list")
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0] = "Changed"
	if All()[0] == "Changed" {
		t.Error("All() exposed internal slice")
	}
}

func TestSuggest(t *testing.T) {
	got := Suggest("ro", 0)
	want := map[string]bool{"Robin": true, "Rook": true}
	if len(got) != len(want) {
		t.Fatalf("Suggest(ro) = %v", got)
	}
	for _, n := range got {
		if !want[n] {
			t.Errorf("unexpected suggestion %q", n)
		}
	}

	if got := Suggest("GREY", 1); len(got) != 1 {
		t.Errorf("Suggest(GREY, 1) = %v, want one result", got)
	}
	if got := Suggest("   ", 5); got != nil {
		t.Errorf("Suggest(blank) = %v, want nil", got)
	}
	if got := Suggest("zzz", 5); len(got) != 0 {
		t.Errorf("Suggest(zzz) = %v, want none", got)
	}
}

func TestCanonicalAndKnown(t *testing.T) {
	name, ok := Canonical("  little egret ")
	if !ok || name != "Little Egret" {
		t.Errorf("Canonical = (%q, %v), want (Little Egret, true)", name, ok)
	}
	if !Known("WREN") {
		t.Error("expected Wren to be known")
	}
	if Known("Dodo") {
		t.Error("expected Dodo to be unknown")
	}
}
