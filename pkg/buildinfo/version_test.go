package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })

	Version, Commit, Date = "v1.2.3", "abc123", "2025-01-01"
	want := "v1.2.3 (commit abc123, built 2025-01-01)"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} v1.2.3") || !strings.HasSuffix(got, "\n") {
		t.Errorf("Template() = %q", got)
	}
}
