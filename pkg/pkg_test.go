package pkg

import (
	"os"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	expected := "slip"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestVersion(t *testing.T) {
	// Version is embedded from VERSION file, so it should not be empty.
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); strings.TrimSpace(Version) != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Error("Expected Author to have at least one entry")
	}

	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}

	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name != ""
	}) {
		t.Error("Expected at least one named author")
	}
}
