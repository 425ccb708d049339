// Package readme creates and updates project README files. The interesting
// part is the support section stamp: re-running it replaces any existing
// section in place instead of appending a duplicate, so the publish
// workflow stays idempotent.
package readme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/suhteevah/gitpub/internal/types"
)

// SectionHeading locates the stamped support section inside an existing
// README. Everything from this heading onward is considered ours.
const SectionHeading = "## Support This Project"

// Options describes the project a README is generated for.
type Options struct {
	// Name is the sanitized repository name used in headings and clone
	// instructions.
	Name string

	// Type is the detected project type; empty and TypeUnknown are both
	// treated as "no type".
	Type types.ProjectType

	// Description is the short project description, possibly empty.
	Description string

	// Contact is the attribution contact (an email address); the part
	// before the '@' becomes the paypal.me link.
	Contact string

	// CloneURL, when set, is used for the Getting Started clone block.
	CloneURL string
}

// Ensure guarantees dir contains a README.md with the support section.
// An existing README keeps its content and gets the section stamped;
// a missing one is generated whole. Returns true when the file was
// newly created.
func Ensure(dir string, opts Options) (created bool, err error) {
	path := filepath.Join(dir, "README.md")

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		content := Stamp(string(existing), opts.Contact)
		return false, os.WriteFile(path, []byte(content), 0644)
	case os.IsNotExist(err):
		content := Generate(dir, opts)
		return true, os.WriteFile(path, []byte(content), 0644)
	default:
		return false, fmt.Errorf("reading README: %w", err)
	}
}

// Stamp returns content with exactly one support section: an existing
// section (located by its heading) is replaced, otherwise one is appended.
func Stamp(content, contact string) string {
	section := Section(contact)
	if idx := strings.Index(content, SectionHeading); idx >= 0 {
		before := strings.TrimRight(content[:idx], "-\n \t")
		return strings.TrimRight(before, "\n") + "\n" + section + "\n"
	}
	return strings.TrimRight(content, "\n") + "\n" + section + "\n"
}

// Section builds the support/attribution section for a contact address.
func Section(contact string) string {
	user := contact
	if at := strings.Index(contact, "@"); at > 0 {
		user = contact[:at]
	}
	return fmt.Sprintf(`
---

%s

If you find this project useful, consider buying me a coffee! Your support helps me keep building and sharing open-source tools.

[![Donate via PayPal](https://img.shields.io/badge/Donate-PayPal-blue.svg?logo=paypal)](https://www.paypal.me/%s)

**PayPal:** [%s](https://paypal.me/%s)

Every donation, no matter how small, is greatly appreciated and motivates continued development. Thank you!`,
		SectionHeading, user, contact, user)
}

// Generate builds a complete README for a project with no existing one.
func Generate(dir string, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", opts.Name)

	if opts.Description != "" {
		b.WriteString(opts.Description + "\n\n")
	}
	if opts.Type != "" && opts.Type != types.TypeUnknown {
		fmt.Fprintf(&b, "**Built with:** %s\n\n", opts.Type)
	}

	if opts.CloneURL != "" {
		b.WriteString("## Getting Started\n\nClone the repository:\n\n")
		fmt.Fprintf(&b, "```bash\ngit clone %s\ncd %s\n```\n\n", opts.CloneURL, opts.Name)
	}

	if lines := installInstructions(dir, opts.Type); len(lines) > 0 {
		b.WriteString("## Installation\n\n")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n\n")
	}

	b.WriteString("## License\n\nThis project is open source and available under the [MIT License](LICENSE).\n")
	b.WriteString(Section(opts.Contact))
	b.WriteString("\n")
	return b.String()
}

// installInstructions returns the type-specific install/run snippet, or
// nil when we have nothing useful to say for the type.
func installInstructions(dir string, ptype types.ProjectType) []string {
	switch ptype {
	case types.TypeNode:
		return []string{"```bash", "npm install", "npm start", "```"}
	case types.TypeTypeScript:
		return []string{"```bash", "npm install", "npm run build", "npm start", "```"}
	case types.TypePython:
		return []string{"```bash", "pip install -r requirements.txt", "python main.py", "```"}
	case types.TypeRust:
		return []string{"```bash", "cargo build --release", "cargo run", "```"}
	case types.TypeGo:
		lines := []string{"```bash", "go build", "go run .", "```"}
		if mod := goModulePath(dir); mod != "" {
			lines = append(lines,
				"",
				"Or install directly:",
				"",
				"```bash",
				fmt.Sprintf("go install %s@latest", mod),
				"```")
		}
		return lines
	case types.TypeJavaMaven:
		return []string{"```bash", "mvn clean install", "mvn exec:java", "```"}
	case types.TypeJavaGradle:
		return []string{"```bash", "gradle build", "gradle run", "```"}
	case types.TypeRuby:
		return []string{"```bash", "bundle install", "ruby main.rb", "```"}
	case types.TypePHP:
		return []string{"```bash", "composer install", "php index.php", "```"}
	default:
		return nil
	}
}

// goModulePath reads the module path from the project's go.mod, if any.
func goModulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	f, err := modfile.ParseLax("go.mod", data, nil)
	if err != nil || f.Module == nil {
		return ""
	}
	return f.Module.Mod.Path
}
