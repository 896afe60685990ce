package engine

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/config"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/model"
)

// applyIgnores filters findings based on config ignore rules and inline suppression markers
func applyIgnores(findings []model.Finding, cfg config.Config) []model.Finding {
	var out []model.Finding
	for _, f := range findings {
		if isIgnored(f, cfg) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func isIgnored(f model.Finding, cfg config.Config) bool {
	for _, ig := range cfg.Ignore {
		if ig.Rule != "" && !strings.EqualFold(ig.Rule, f.RuleID) {
			continue
		}
		if ig.Path != "" {
			if !strings.HasPrefix(filepath.ToSlash(f.File), filepath.ToSlash(ig.Path)) {
				continue
			}
		}
		return true
	}
	return hasInlineSuppression(f.File, f.RuleID, f.Line)
}

// hasInlineSuppression looks around the finding location for a suppression comment
// Format: // cryptoscan:ignore RULE_ID reason="..."
func hasInlineSuppression(filePath, ruleID string, line int) bool {
	f, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer f.Close()
	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if len(lines) == 0 {
		return false
	}
	from := line - 1 - 2
	if from < 0 {
		from = 0
	}
	to := line - 1
	if to >= len(lines) {
		to = len(lines) - 1
	}
	needle := "cryptoscan:ignore " + ruleID
	for i := from; i <= to; i++ {
		if strings.Contains(lines[i], needle) {
			return true
		}
	}
	return false
}
