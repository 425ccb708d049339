package scanner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/suhteevah/gitpub/internal/types"
)

// descriptionLimit caps descriptions pulled from README files.
const descriptionLimit = 200

// typeRules map marker files to project types, in priority order.
// First match wins. Glob markers match immediate children only.
var typeRules = []struct {
	marker string
	glob   bool
	ptype  types.ProjectType
}{
	{"package.json", false, types.TypeNode},
	{"tsconfig.json", false, types.TypeTypeScript},
	{"requirements.txt", false, types.TypePython},
	{"setup.py", false, types.TypePython},
	{"pyproject.toml", false, types.TypePython},
	{"Cargo.toml", false, types.TypeRust},
	{"go.mod", false, types.TypeGo},
	{"pom.xml", false, types.TypeJavaMaven},
	{"build.gradle", false, types.TypeJavaGradle},
	{"CMakeLists.txt", false, types.TypeCMake},
	{"Makefile", false, types.TypeMake},
	{"Gemfile", false, types.TypeRuby},
	{"composer.json", false, types.TypePHP},
	{"pubspec.yaml", false, types.TypeDart},
	{"*.sln", true, types.TypeDotNet},
}

// Classify inspects a project directory and returns its detected type and
// a best-effort short description. It is a pure function of the directory
// contents at call time; any I/O or parse error during one description
// source falls through to the next.
func Classify(dir string) (types.ProjectType, string) {
	return detectType(dir), extractDescription(dir)
}

func detectType(dir string) types.ProjectType {
	for _, r := range typeRules {
		if r.glob {
			if matches, err := filepath.Glob(filepath.Join(dir, r.marker)); err == nil && len(matches) > 0 {
				return r.ptype
			}
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, r.marker)); err == nil {
			return r.ptype
		}
	}
	return types.TypeUnknown
}

// extractDescription tries each description source in order and returns
// the first non-empty result: a package.json description field, a
// description line in a TOML build file, then the opening lines of an
// existing README.
func extractDescription(dir string) string {
	if d := packageJSONDescription(filepath.Join(dir, "package.json")); d != "" {
		return d
	}
	if d := buildFileDescription(filepath.Join(dir, "pyproject.toml")); d != "" {
		return d
	}
	if d := buildFileDescription(filepath.Join(dir, "Cargo.toml")); d != "" {
		return d
	}
	if d := readmeDescription(dir); d != "" {
		return d
	}
	return ""
}

func packageJSONDescription(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var manifest struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Description
}

// buildFileDescription finds a top-level "description" line in a TOML-ish
// build file by naive prefix matching. Deliberately not a real TOML parse:
// the value is whatever follows the first '=' or ':', quotes stripped.
func buildFileDescription(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "description") {
			continue
		}
		sep := strings.IndexAny(line, "=:")
		if sep < 0 {
			continue
		}
		value := strings.TrimSpace(line[sep+1:])
		value = strings.Trim(value, `"'`)
		if value != "" {
			return value
		}
	}
	return ""
}

// readmeDescription returns the first non-empty, non-heading line among
// lines 2-6 of the project's README, truncated to descriptionLimit.
func readmeDescription(dir string) string {
	for _, name := range []string{"README.md", "README.txt", "README", "readme.md"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		lines := strings.Split(string(data), "\n")
		for i := 1; i < len(lines) && i < 6; i++ {
			line := strings.TrimSpace(lines[i])
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			return truncate(line, descriptionLimit)
		}
	}
	return ""
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
