package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/config"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/model"
)

func testEngine(cfg config.Config) *Engine {
	return New(cfg, nil).WithoutCache()
}

func TestScanSource_WeakHashWithLineNumber(t *testing.T) {
	src := `package com.example;
import java.security.MessageDigest;
MessageDigest md = MessageDigest.getInstance("MD5");
`
	res := testEngine(config.Default()).ScanSource("Hash.java", src)
	if res.Error != "" {
		t.Fatalf("unexpected error: %s", res.Error)
	}
	if len(res.Findings) != 1 {
		t.Fatalf("findings: %+v", res.Findings)
	}
	f := res.Findings[0]
	if f.RuleID != "WEAK_HASH" || f.Line != 3 || f.Severity != model.SeverityHigh {
		t.Fatalf("finding: %+v", f)
	}
	if f.File != "Hash.java" || f.API != "MessageDigest.getInstance" {
		t.Fatalf("finding: %+v", f)
	}
	if !strings.Contains(f.Snippet, "MD5") {
		t.Fatalf("snippet missing source line: %q", f.Snippet)
	}
	if len(f.Fingerprint) != 64 {
		t.Fatalf("fingerprint: %q", f.Fingerprint)
	}
}

func TestScanSource_CommentedOutCodeNotFlagged(t *testing.T) {
	src := `// MessageDigest.getInstance("MD5");
/* Cipher.getInstance("DES/ECB/PKCS5Padding"); */
int x = 1;
`
	res := testEngine(config.Default()).ScanSource("Commented.java", src)
	if len(res.Findings) != 0 {
		t.Fatalf("commented-out code flagged: %+v", res.Findings)
	}
}

func TestScanSource_BlockCommentKeepsLineNumbers(t *testing.T) {
	src := `/* header
spanning
lines */
MessageDigest.getInstance("SHA-1");
`
	res := testEngine(config.Default()).ScanSource("Lines.java", src)
	if len(res.Findings) != 1 || res.Findings[0].Line != 4 {
		t.Fatalf("line number drifted: %+v", res.Findings)
	}
}

func TestScanSource_MultipleRulesOneLine(t *testing.T) {
	src := `Cipher c = Cipher.getInstance("DES/ECB/NoPadding");`
	res := testEngine(config.Default()).ScanSource("Multi.java", src)
	got := make([]string, 0, len(res.Findings))
	for _, f := range res.Findings {
		got = append(got, f.RuleID)
	}
	// DES_CIPHER and ECB_MODE are both high, lexical order; NO_PADDING is low.
	want := []string{"DES_CIPHER", "ECB_MODE", "NO_PADDING"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("rule ids = %v, want %v", got, want)
	}
}

func TestScanSource_InsecureRandomRequiresCryptoContext(t *testing.T) {
	eng := testEngine(config.Default())

	alone := eng.ScanSource("Rng.java", `Random r = new Random();`)
	if len(alone.Findings) != 0 {
		t.Fatalf("lone Random flagged: %+v", alone.Findings)
	}

	src := `Random r = new Random();
Cipher c = Cipher.getInstance("AES/CBC/PKCS5Padding");
`
	withCrypto := eng.ScanSource("Rng.java", src)
	if len(withCrypto.Findings) != 1 || withCrypto.Findings[0].RuleID != "INSECURE_RANDOM" {
		t.Fatalf("findings: %+v", withCrypto.Findings)
	}
}

func TestScanSource_EmptyInput(t *testing.T) {
	res := testEngine(config.Default()).ScanSource("Empty.java", "")
	if res.Error != "" || len(res.Findings) != 0 || len(res.Warnings) != 0 {
		t.Fatalf("empty source result: %+v", res)
	}
}

func TestScanSource_InvalidUTF8IsPerFileError(t *testing.T) {
	res := testEngine(config.Default()).ScanSource("Latin1.java", "Cipher\xff\xfe")
	if res.Error == "" {
		t.Fatal("invalid encoding not reported")
	}
	if len(res.Findings) != 0 {
		t.Fatalf("findings from undecodable file: %+v", res.Findings)
	}
}

func TestScanSource_WarningsAreNonFatal(t *testing.T) {
	src := "MessageDigest.getInstance(\"MD5\");\n/* unterminated"
	res := testEngine(config.Default()).ScanSource("Warn.java", src)
	if res.Error != "" {
		t.Fatalf("warning escalated to error: %s", res.Error)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected a warning")
	}
	if len(res.Findings) != 1 {
		t.Fatalf("findings lost alongside warning: %+v", res.Findings)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScan_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Bad.java", `MessageDigest.getInstance("MD5");`)
	writeFile(t, dir, "Good.java", `Cipher.getInstance("AES/CBC/PKCS5Padding");`)
	writeFile(t, dir, "notes.txt", `MessageDigest.getInstance("MD5");`)

	res, err := testEngine(config.Default()).Scan(context.Background(), model.ScanRequest{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	if res.RunID == "" {
		t.Error("missing run id")
	}
	if len(res.Files) != 2 {
		t.Fatalf("expected 2 scanned files, got %+v", res.Files)
	}
	if filepath.Base(res.Files[0].File) != "Bad.java" || filepath.Base(res.Files[1].File) != "Good.java" {
		t.Fatalf("files not in path order: %+v", res.Files)
	}
	if len(res.Findings) != 1 || res.Findings[0].RuleID != "WEAK_HASH" {
		t.Fatalf("findings: %+v", res.Findings)
	}
}

func TestScan_SingleFilePath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "One.java", `SSLContext.getInstance("SSLv3");`)

	res, err := testEngine(config.Default()).Scan(context.Background(), model.ScanRequest{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Findings) != 1 || res.Findings[0].RuleID != "WEAK_SSL_CONTEXT" {
		t.Fatalf("findings: %+v", res.Findings)
	}
}

func TestScan_SeverityThreshold(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Pad.java", `Cipher.getInstance("AES/CBC/NoPadding");`)

	cfg := config.Default()
	cfg.SeverityThreshold = "high"
	res, err := testEngine(cfg).Scan(context.Background(), model.ScanRequest{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Findings) != 0 {
		t.Fatalf("low finding survived high threshold: %+v", res.Findings)
	}
}

func TestScan_RuleAllowlist(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Both.java", "MessageDigest.getInstance(\"MD5\");\nCipher.getInstance(\"DES\");\n")

	cfg := config.Default()
	cfg.Rules = []string{"WEAK_HASH"}
	res, err := testEngine(cfg).Scan(context.Background(), model.ScanRequest{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Findings) != 1 || res.Findings[0].RuleID != "WEAK_HASH" {
		t.Fatalf("allowlist not applied: %+v", res.Findings)
	}
}

func TestScan_IgnoreRuleForPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Legacy.java", `MessageDigest.getInstance("MD5");`)

	cfg := config.Default()
	cfg.Ignore = []config.IgnoreRule{{Rule: "WEAK_HASH", Path: filepath.ToSlash(dir)}}
	res, err := testEngine(cfg).Scan(context.Background(), model.ScanRequest{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Findings) != 0 {
		t.Fatalf("ignore rule not applied: %+v", res.Findings)
	}
}

func TestScan_InlineSuppression(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Sup.java",
		"// cryptoscan:ignore WEAK_HASH legacy checksum\nMessageDigest.getInstance(\"MD5\");\n")

	res, err := testEngine(config.Default()).Scan(context.Background(), model.ScanRequest{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Findings) != 0 {
		t.Fatalf("inline suppression not honored: %+v", res.Findings)
	}
}

func TestScan_Baseline(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Bad.java", `MessageDigest.getInstance("MD5");`)
	eng := testEngine(config.Default())

	first, err := eng.Scan(context.Background(), model.ScanRequest{Path: dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Findings) != 1 {
		t.Fatalf("findings: %+v", first.Findings)
	}

	blPath := filepath.Join(t.TempDir(), "baseline.json")
	if err := WriteBaseline(blPath, first.Findings); err != nil {
		t.Fatal(err)
	}

	second, err := eng.Scan(context.Background(), model.ScanRequest{Path: dir, Baseline: blPath})
	if err != nil {
		t.Fatal(err)
	}
	if len(second.Findings) != 0 {
		t.Fatalf("baselined finding resurfaced: %+v", second.Findings)
	}
}

func TestScan_MissingPath(t *testing.T) {
	_, err := testEngine(config.Default()).Scan(context.Background(),
		model.ScanRequest{Path: filepath.Join(t.TempDir(), "nope")})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}
