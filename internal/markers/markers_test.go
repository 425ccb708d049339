package markers

import "testing"

func TestIsProjectMarker(t *testing.T) {
	for _, name := range []string{".git", "package.json", "go.mod", "Cargo.toml", ".claude"} {
		if !IsProjectMarker(name) {
			t.Errorf("expected %q to be a project marker", name)
		}
	}
	for _, name := range []string{"main.go", "README.md", "", "src"} {
		if IsProjectMarker(name) {
			t.Errorf("did not expect %q to be a project marker", name)
		}
	}
}

func TestIsPruned(t *testing.T) {
	for _, name := range []string{"node_modules", ".git", "__pycache__", "target", "System Volume Information"} {
		if !IsPruned(name) {
			t.Errorf("expected %q to be pruned", name)
		}
	}
	if IsPruned("src") {
		t.Error("src should not be pruned")
	}
}

func TestIsTaggedIndicator(t *testing.T) {
	for _, name := range []string{".claude", "claude.json", "CLAUDE.md", ".claude.toml", ".claudeignore"} {
		if !IsTaggedIndicator(name) {
			t.Errorf("expected %q to be a tagged indicator", name)
		}
	}
	if IsTaggedIndicator("package.json") {
		t.Error("package.json is a generic marker, not a tagged indicator")
	}
}

// Catalog accessors must return copies, not the backing arrays.
func TestCatalogsAreCopies(t *testing.T) {
	m := ProjectMarkers()
	m[0] = "mutated"
	if ProjectMarkers()[0] == "mutated" {
		t.Error("ProjectMarkers exposed its backing array")
	}

	ti := TaggedIndicators()
	ti[0] = "mutated"
	if TaggedIndicators()[0] == "mutated" {
		t.Error("TaggedIndicators exposed its backing array")
	}
}
