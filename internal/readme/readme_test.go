package readme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suhteevah/gitpub/internal/types"
)

const testContact = "gankstapony@hotmail.com"

func TestSectionLinksPayPalUser(t *testing.T) {
	s := Section(testContact)
	assert.Contains(t, s, SectionHeading)
	assert.Contains(t, s, "paypal.me/gankstapony")
	assert.Contains(t, s, testContact)
}

func TestStampAppendsSection(t *testing.T) {
	got := Stamp("# My Project\n\nSome intro.\n", testContact)
	assert.True(t, strings.HasPrefix(got, "# My Project"))
	assert.Equal(t, 1, strings.Count(got, SectionHeading))
	assert.True(t, strings.HasSuffix(got, "\n"))
}

// Stamping twice must not duplicate the section.
func TestStampIsIdempotent(t *testing.T) {
	once := Stamp("# My Project\n\nSome intro.\n", testContact)
	twice := Stamp(once, testContact)
	assert.Equal(t, once, twice)
	assert.Equal(t, 1, strings.Count(twice, SectionHeading))
}

// A stale section (different contact) is replaced, not kept alongside.
func TestStampReplacesExistingSection(t *testing.T) {
	old := Stamp("# My Project\n\nSome intro.\n", "other@example.com")
	got := Stamp(old, testContact)
	assert.Equal(t, 1, strings.Count(got, SectionHeading))
	assert.NotContains(t, got, "other@example.com")
	assert.Contains(t, got, testContact)
	assert.Contains(t, got, "Some intro.")
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	got := Generate(dir, Options{
		Name:        "my-tool",
		Type:        types.TypeNode,
		Description: "Does cool stuff.",
		Contact:     testContact,
		CloneURL:    "https://github.com/suhteevah/my-tool.git",
	})

	assert.True(t, strings.HasPrefix(got, "# my-tool\n"))
	assert.Contains(t, got, "Does cool stuff.")
	assert.Contains(t, got, "**Built with:** Node.js/JavaScript")
	assert.Contains(t, got, "git clone https://github.com/suhteevah/my-tool.git")
	assert.Contains(t, got, "npm install")
	assert.Contains(t, got, "MIT License")
	assert.Equal(t, 1, strings.Count(got, SectionHeading))
}

func TestGenerateOmitsEmptySections(t *testing.T) {
	got := Generate(t.TempDir(), Options{Name: "bare", Contact: testContact})
	assert.NotContains(t, got, "**Built with:**")
	assert.NotContains(t, got, "## Getting Started")
	assert.NotContains(t, got, "## Installation")
}

func TestGenerateUnknownTypeOmitsBuiltWith(t *testing.T) {
	got := Generate(t.TempDir(), Options{Name: "bare", Type: types.TypeUnknown, Contact: testContact})
	assert.NotContains(t, got, "**Built with:**")
}

func TestGenerateGoInstallHint(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"),
		[]byte("module github.com/suhteevah/my-tool\n\ngo 1.25\n"), 0644))

	got := Generate(dir, Options{Name: "my-tool", Type: types.TypeGo, Contact: testContact})
	assert.Contains(t, got, "go install github.com/suhteevah/my-tool@latest")
}

func TestGenerateGoWithoutModFile(t *testing.T) {
	got := Generate(t.TempDir(), Options{Name: "my-tool", Type: types.TypeGo, Contact: testContact})
	assert.Contains(t, got, "go build")
	assert.NotContains(t, got, "go install")
}

func TestEnsureCreatesMissingReadme(t *testing.T) {
	dir := t.TempDir()
	created, err := Ensure(dir, Options{Name: "my-tool", Contact: testContact})
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# my-tool")
	assert.Contains(t, string(data), SectionHeading)
}

func TestEnsureStampsExistingReadme(t *testing.T) {
	dir := t.TempDir()
	original := "# Hand Written\n\nMy own words.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte(original), 0644))

	created, err := Ensure(dir, Options{Name: "my-tool", Contact: testContact})
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "My own words.")
	assert.Equal(t, 1, strings.Count(string(data), SectionHeading))

	// Second run leaves the file unchanged.
	_, err = Ensure(dir, Options{Name: "my-tool", Contact: testContact})
	require.NoError(t, err)
	again, err := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}
