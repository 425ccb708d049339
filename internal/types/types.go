package types

// ProjectType classifies a project by its primary toolchain or language.
type ProjectType string

const (
	TypeNode       ProjectType = "Node.js/JavaScript"
	TypeTypeScript ProjectType = "TypeScript"
	TypePython     ProjectType = "Python"
	TypeRust       ProjectType = "Rust"
	TypeGo         ProjectType = "Go"
	TypeJavaMaven  ProjectType = "Java (Maven)"
	TypeJavaGradle ProjectType = "Java (Gradle)"
	TypeCMake      ProjectType = "C/C++ (CMake)"
	TypeMake       ProjectType = "C/C++ (Make)"
	TypeRuby       ProjectType = "Ruby"
	TypePHP        ProjectType = "PHP"
	TypeDart       ProjectType = "Dart/Flutter"
	TypeDotNet     ProjectType = "C#/.NET"
	TypeUnknown    ProjectType = "Unknown"
)

// Project is a single project root discovered by the scanner.
// Records are immutable once emitted; the publisher reads them but never
// modifies them.
type Project struct {
	// Name is the directory's base name, before sanitization.
	Name string

	// Path is the directory as reached during traversal (display form).
	Path string

	// CanonicalPath is the symlink-resolved absolute path. It is the
	// deduplication key: the scanner never emits two records with the
	// same canonical path.
	CanonicalPath string

	// Type is the detected project type, or TypeUnknown.
	Type ProjectType

	// Description is a best-effort short description, possibly empty.
	Description string

	// HasGit reports whether the directory already contains git metadata.
	HasGit bool

	// Tagged reports whether the project carries tool-specific indicator
	// files (a stronger signal than the generic markers).
	Tagged bool

	// MarkersFound lists the catalog markers present in the directory.
	// Diagnostic only.
	MarkersFound []string
}
