package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleDocument is a 25fps document with a frame-timed cue and a
// duration-timed cue containing a line break.
const SampleDocument = `<?xml version="1.0" encoding="UTF-8"?>
<tt xmlns="http://www.w3.org/ns/ttml" ttp:frameRate="25">
  <body><div>
    <tt:p begin="25" end="50">Hello</tt:p>
    <tt:p begin="2.0" dur="1.5">Foo<br/>Bar</tt:p>
  </div></body>
</tt>`

// WriteDocument writes content to path, creating parent directories.
func WriteDocument(t testing.TB, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
