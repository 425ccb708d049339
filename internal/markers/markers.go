// Package markers holds the static catalog of filenames that identify
// project roots, directories excluded from traversal, and the tool-specific
// indicators used for tagged-project detection.
package markers

// projectMarkers are filenames or directory names whose presence among a
// directory's immediate children marks it as a project root. Order matters:
// it is the order markers are reported in Project.MarkersFound.
var projectMarkers = []string{
	".git",
	"package.json",
	"requirements.txt",
	"setup.py",
	"pyproject.toml",
	"Cargo.toml",
	"go.mod",
	"Makefile",
	"CMakeLists.txt",
	"pom.xml",
	"build.gradle",
	".claude",
	"claude.json",
	".claudeignore",
}

// skipDirs are directory names the scanner never enters and never
// marker-checks. Mostly dependency caches, build output, and OS junk.
var skipDirs = map[string]struct{}{
	"node_modules":              {},
	".git":                      {},
	"__pycache__":               {},
	".venv":                     {},
	"venv":                      {},
	"env":                       {},
	".env":                      {},
	"dist":                      {},
	"build":                     {},
	".next":                     {},
	".nuxt":                     {},
	"target":                    {},
	".cache":                    {},
	".npm":                      {},
	".yarn":                     {},
	".pnpm-store":               {},
	"$RECYCLE.BIN":              {},
	"System Volume Information": {},
	"Recovery":                  {},
	".Trash-1000":               {},
}

// taggedIndicators are the tool-specific marker files. A project carrying
// any of these is a "tagged" project, which the --tagged-only filter
// selects for.
var taggedIndicators = []string{
	".claude",
	"claude.json",
	".claudeignore",
	"CLAUDE.md",
	".claude.toml",
}

// ProjectMarkers returns the project-root marker catalog in priority order.
func ProjectMarkers() []string {
	out := make([]string, len(projectMarkers))
	copy(out, projectMarkers)
	return out
}

// IsProjectMarker reports whether name is a project-root marker.
func IsProjectMarker(name string) bool {
	for _, m := range projectMarkers {
		if m == name {
			return true
		}
	}
	return false
}

// IsPruned reports whether a directory with this base name is excluded
// from traversal entirely.
func IsPruned(name string) bool {
	_, ok := skipDirs[name]
	return ok
}

// TaggedIndicators returns the tool-specific indicator filenames.
func TaggedIndicators() []string {
	out := make([]string, len(taggedIndicators))
	copy(out, taggedIndicators)
	return out
}

// IsTaggedIndicator reports whether name is a tool-specific indicator file.
func IsTaggedIndicator(name string) bool {
	for _, m := range taggedIndicators {
		if m == name {
			return true
		}
	}
	return false
}
