package block

import (
	"testing"

	"composer/common"
)

func TestLookup(t *testing.T) {
	for _, kind := range common.KindValues() {
		info, ok := Lookup(kind)
		if kind.IsPair() {
			if ok {
				t.Error("Lookup(pair) ok = true, pair is never offered directly")
			}
			continue
		}
		if !ok {
			t.Errorf("Lookup(%s) not registered", kind)
			continue
		}
		if info.Label == "" || info.Icon == "" {
			t.Errorf("Lookup(%s) = %+v, label and icon required", kind, info)
		}
		if info.TextBearing != kind.IsTextBearing() {
			t.Errorf("Lookup(%s).TextBearing = %v, want %v", kind, info.TextBearing, kind.IsTextBearing())
		}
	}

	if _, ok := Lookup(common.Kind("slideshow")); ok {
		t.Error("Lookup() of unregistered kind ok = true")
	}
}

func TestKinds_Copy(t *testing.T) {
	k := Kinds()
	k[0].Label = "changed"
	if Kinds()[0].Label == "changed" {
		t.Error("Kinds() exposes registry storage")
	}
}

func TestLayouts(t *testing.T) {
	layouts := Layouts()
	if len(layouts) != 4 {
		t.Fatalf("Layouts() = %d entries, want 4", len(layouts))
	}
	for _, l := range layouts {
		got, ok := LookupLayout(l.Name)
		if !ok || got != l {
			t.Errorf("LookupLayout(%q) = %+v, %v", l.Name, got, ok)
		}
		if l.Left.IsPair() || l.Right.IsPair() {
			t.Errorf("layout %q nests pair", l.Name)
		}
	}
	if _, ok := LookupLayout("image-table"); ok {
		t.Error("LookupLayout() of unknown layout ok = true")
	}
}
