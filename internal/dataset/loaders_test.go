package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestInferLabel(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"BrokenHashABICase2.java", LabelInsecure},
		{"InsecureCipher.java", LabelInsecure},
		{"WeakHashCase1.java", LabelInsecure},
		// "incorrect" contains "correct"; the insecure check must win
		{"IncorrectUsage.java", LabelInsecure},
		{"PredictableSeedsCorrected.java", LabelSecure},
		{"SecureConfig.java", LabelSecure},
		{"GoodRandom.java", LabelSecure},
		{"Helper.java", ""},
	}
	for _, c := range cases {
		if got := inferLabel(c.name); got != c.want {
			t.Errorf("inferLabel(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestLoadCryptoAPIBench(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "BrokenCipher.java"), `Cipher.getInstance("DES");`)
	writeFile(t, filepath.Join(dir, "src", "SecureCipher.java"), `Cipher.getInstance("AES/GCM/NoPadding");`)
	writeFile(t, filepath.Join(dir, "src", "Helper.java"), `class Helper {}`)
	writeFile(t, filepath.Join(dir, "README.md"), "not java")

	records, err := LoadCryptoAPIBench(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records: %+v", len(records), records)
	}
	byName := map[string]Record{}
	for _, r := range records {
		byName[r.Filename] = r
		if r.Dataset != "cryptoapi_bench" {
			t.Errorf("dataset tag: %+v", r)
		}
	}
	if byName["BrokenCipher.java"].Label != LabelInsecure {
		t.Errorf("broken file: %+v", byName["BrokenCipher.java"])
	}
	if byName["SecureCipher.java"].Label != LabelSecure {
		t.Errorf("secure file: %+v", byName["SecureCipher.java"])
	}
}

func TestLoadCryptoAPIBench_MissingDir(t *testing.T) {
	records, err := LoadCryptoAPIBench(filepath.Join(t.TempDir(), "absent"), nil)
	if err != nil || records != nil {
		t.Fatalf("missing dir should be a soft skip: %v, %+v", err, records)
	}
}

func TestLoadOWASPBenchmark(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "testcode", "BenchmarkTest00001.java"), `MessageDigest.getInstance("MD5");`)
	writeFile(t, filepath.Join(dir, "testcode", "BenchmarkTest00002.java"), `MessageDigest.getInstance("SHA-256");`)
	writeFile(t, filepath.Join(dir, "testcode", "BenchmarkTest00003.java"), `stmt.execute(query);`)
	writeFile(t, filepath.Join(dir, "expectedresults-1.2.csv"),
		"# test name, category, real vulnerability, cwe\n"+
			"BenchmarkTest00001, hash, true, 328\n"+
			"BenchmarkTest00002, hash, false, 328\n"+
			"BenchmarkTest00003, sqli, true, 89\n")

	records, err := LoadOWASPBenchmark(dir, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("crypto filter: got %d records: %+v", len(records), records)
	}
	byName := map[string]Record{}
	for _, r := range records {
		byName[r.Filename] = r
		if r.Dataset != "owasp_benchmark" || r.CWE != "328" {
			t.Errorf("record metadata: %+v", r)
		}
	}
	if byName["BenchmarkTest00001.java"].Label != LabelInsecure {
		t.Errorf("vulnerable test: %+v", byName["BenchmarkTest00001.java"])
	}
	if byName["BenchmarkTest00002.java"].Label != LabelSecure {
		t.Errorf("safe test: %+v", byName["BenchmarkTest00002.java"])
	}

	all, err := LoadOWASPBenchmark(dir, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("without crypto filter: got %d records", len(all))
	}
}

func TestLoadOWASPBenchmark_MissingDir(t *testing.T) {
	records, err := LoadOWASPBenchmark(filepath.Join(t.TempDir(), "absent"), true, nil)
	if err != nil || records != nil {
		t.Fatalf("missing dir should be a soft skip: %v, %+v", err, records)
	}
}
