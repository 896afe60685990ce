package rules

import (
	"regexp"
	"strings"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/java"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/model"
)

// Rule is one misuse pattern. Match is pure and side-effect-free; it sees a
// single call site and must treat absent arguments as non-matching.
type Rule struct {
	ID       string
	Title    string
	Severity model.Severity
	CWE      string
	// APIs lists the canonical identifiers the rule applies to. The method
	// component is compared case-insensitively.
	APIs []string
	// NeedsCryptoContext restricts the rule to files that contain at least
	// one call site with a different API. Used by INSECURE_RANDOM so that a
	// lone java.util.Random in non-crypto code is not flagged.
	NeedsCryptoContext bool
	Match              func(site java.CallSite) bool
}

func (r Rule) Meta() model.RuleMeta {
	return model.RuleMeta{ID: r.ID, Title: r.Title, Severity: r.Severity, CWE: r.CWE}
}

// AppliesTo reports whether the rule covers the given canonical API name.
func (r Rule) AppliesTo(api string) bool {
	recv, meth, ok := splitAPI(api)
	if !ok {
		return false
	}
	for _, a := range r.APIs {
		r2, m2, ok := splitAPI(a)
		if ok && r2 == recv && strings.EqualFold(m2, meth) {
			return true
		}
	}
	return false
}

func splitAPI(api string) (receiver, method string, ok bool) {
	i := strings.LastIndex(api, ".")
	if i <= 0 || i == len(api)-1 {
		return "", "", false
	}
	return api[:i], api[i+1:], true
}

// Catalog returns the built-in misuse rules in a fresh slice so callers can
// reorder or filter without touching shared state.
func Catalog() []Rule {
	return []Rule{
		{
			ID:       "ECB_MODE",
			Title:    "Cipher in ECB mode",
			Severity: model.SeverityHigh,
			CWE:      "CWE-327",
			APIs:     []string{"Cipher.getInstance"},
			Match: func(site java.CallSite) bool {
				s, ok := site.StringArg(0)
				return ok && containsFold(s, "ECB")
			},
		},
		{
			ID:       "DES_CIPHER",
			Title:    "DES cipher (broken by design)",
			Severity: model.SeverityHigh,
			CWE:      "CWE-327",
			APIs:     []string{"Cipher.getInstance"},
			Match: func(site java.CallSite) bool {
				s, ok := site.StringArg(0)
				if !ok {
					return false
				}
				alg := strings.ToUpper(algorithmComponent(s))
				return alg == "DES"
			},
		},
		{
			ID:       "NO_PADDING",
			Title:    "Cipher without padding",
			Severity: model.SeverityLow,
			CWE:      "CWE-327",
			APIs:     []string{"Cipher.getInstance"},
			Match: func(site java.CallSite) bool {
				s, ok := site.StringArg(0)
				return ok && containsFold(s, "NoPadding")
			},
		},
		{
			ID:       "WEAK_HASH",
			Title:    "Weak hash algorithm",
			Severity: model.SeverityHigh,
			CWE:      "CWE-328",
			APIs:     []string{"MessageDigest.getInstance"},
			Match: func(site java.CallSite) bool {
				s, ok := site.StringArg(0)
				return ok && equalsFoldAny(s, "MD5", "SHA-1", "SHA1")
			},
		},
		{
			ID:                 "INSECURE_RANDOM",
			Title:              "java.util.Random used for crypto",
			Severity:           model.SeverityMedium,
			CWE:                "CWE-338",
			APIs:               []string{"Random.<init>"},
			NeedsCryptoContext: true,
			Match:              func(java.CallSite) bool { return true },
		},
		{
			ID:       "HARDCODED_KEY",
			Title:    "Hardcoded symmetric key",
			Severity: model.SeverityCritical,
			CWE:      "CWE-321",
			APIs:     []string{"SecretKeySpec.<init>"},
			Match:    anyLiteralKeyMaterial,
		},
		{
			ID:       "STATIC_IV",
			Title:    "Static initialization vector",
			Severity: model.SeverityHigh,
			CWE:      "CWE-329",
			APIs:     []string{"IvParameterSpec.<init>"},
			Match:    anyLiteralKeyMaterial,
		},
		{
			ID:       "LOW_PBE_ITERATIONS",
			Title:    "PBE iteration count below 1000",
			Severity: model.SeverityMedium,
			CWE:      "CWE-326",
			APIs:     []string{"PBEKeySpec.<init>"},
			Match: func(site java.CallSite) bool {
				for i := range site.Args {
					if n, ok := site.NumberArg(i); ok && n > 0 && n < 1000 {
						return true
					}
				}
				return false
			},
		},
		{
			ID:       "WEAK_SSL_CONTEXT",
			Title:    "Outdated SSL/TLS protocol",
			Severity: model.SeverityHigh,
			CWE:      "CWE-327",
			APIs:     []string{"SSLContext.getInstance"},
			Match: func(site java.CallSite) bool {
				s, ok := site.StringArg(0)
				return ok && equalsFoldAny(s, "SSL", "SSLv2", "SSLv3", "TLSv1", "TLSv1.1")
			},
		},
	}
}

var (
	reByteArrayLiteral = regexp.MustCompile(`^new\s+byte\s*\[\s*\]\s*\{`)
	reStringGetBytes   = regexp.MustCompile(`^"(?:[^"\\]|\\.)*"\s*\.\s*getBytes\b`)
)

// anyLiteralKeyMaterial fires when any argument is compile-time key material:
// a string literal, a byte-array literal, or a string literal with .getBytes.
// Symbols that are plain identifiers or method calls stay unknown and never
// match.
func anyLiteralKeyMaterial(site java.CallSite) bool {
	for _, a := range site.Args {
		switch a.Kind {
		case java.ArgString:
			return true
		case java.ArgSymbol:
			if reByteArrayLiteral.MatchString(a.Raw) || reStringGetBytes.MatchString(a.Raw) {
				return true
			}
		}
	}
	return false
}

// algorithmComponent returns the algorithm part of a transformation string
// such as "DES/ECB/PKCS5Padding".
func algorithmComponent(transformation string) string {
	if i := strings.Index(transformation, "/"); i >= 0 {
		return transformation[:i]
	}
	return transformation
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToUpper(s), strings.ToUpper(sub))
}

func equalsFoldAny(s string, options ...string) bool {
	for _, o := range options {
		if strings.EqualFold(s, o) {
			return true
		}
	}
	return false
}
