package engine

import (
	"sort"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/java"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/model"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/rules"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/util"
)

// Detect evaluates every call site against every applicable rule and returns
// the deduplicated, deterministically ordered finding set for one file.
//
// Dedup key is (file, line, ruleId): the same rule firing twice on one line
// yields one finding. Order is line asc, severity desc, ruleId lex, so the
// output is independent of call-site discovery order and catalog order.
func Detect(file string, sites []java.CallSite, catalog []rules.Rule) []model.Finding {
	type key struct {
		line   int
		ruleID string
	}
	seen := map[key]bool{}
	var findings []model.Finding

	for _, site := range sites {
		for _, rule := range catalog {
			if !rule.AppliesTo(site.API) {
				continue
			}
			if rule.NeedsCryptoContext && !hasOtherCryptoUse(sites, rule) {
				continue
			}
			if !rule.Match(site) {
				continue
			}
			k := key{line: site.Line, ruleID: rule.ID}
			if seen[k] {
				continue
			}
			seen[k] = true
			findings = append(findings, model.Finding{
				RuleID:      rule.ID,
				Severity:    rule.Severity,
				File:        file,
				Line:        site.Line,
				API:         site.API,
				Message:     rule.Title,
				Fingerprint: util.Fingerprint(rule.ID, file, site.Line, site.Raw),
			})
		}
	}

	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if ra, rb := model.SeverityRank(a.Severity), model.SeverityRank(b.Severity); ra != rb {
			return ra > rb
		}
		return a.RuleID < b.RuleID
	})
	return findings
}

// hasOtherCryptoUse reports whether the file contains a call site outside
// the rule's own API set.
func hasOtherCryptoUse(sites []java.CallSite, rule rules.Rule) bool {
	for _, s := range sites {
		if !rule.AppliesTo(s.API) {
			return true
		}
	}
	return false
}
