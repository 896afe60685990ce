package util

import (
	"strings"
	"testing"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint("WEAK_HASH", "A.java", 3, `MessageDigest.getInstance("MD5")`)
	b := Fingerprint("WEAK_HASH", "A.java", 3, `MessageDigest.getInstance("MD5")`)
	if a != b {
		t.Fatal("fingerprint not stable")
	}
	if len(a) != 64 {
		t.Fatalf("fingerprint length %d", len(a))
	}
	if a == Fingerprint("WEAK_HASH", "A.java", 4, `MessageDigest.getInstance("MD5")`) {
		t.Error("line ignored")
	}
	if a == Fingerprint("WEAK_HASH", "B.java", 3, `MessageDigest.getInstance("MD5")`) {
		t.Error("file ignored")
	}
}

func TestExtractSnippet(t *testing.T) {
	content := "one\ntwo\nthree\nfour\nfive\nsix"
	got := ExtractSnippet(content, 3, 4)
	if !strings.Contains(got, "three") {
		t.Fatalf("snippet missing target line: %q", got)
	}
	if strings.Contains(got, "six") {
		t.Fatalf("snippet too wide: %q", got)
	}

	if got := ExtractSnippet(content, 1, 4); !strings.Contains(got, "one") {
		t.Fatalf("top-of-file snippet: %q", got)
	}
	if got := ExtractSnippet(content, 6, 4); !strings.Contains(got, "six") {
		t.Fatalf("bottom-of-file snippet: %q", got)
	}
	if got := ExtractSnippet("", 10, 4); got != "" {
		t.Fatalf("empty content snippet: %q", got)
	}
}
