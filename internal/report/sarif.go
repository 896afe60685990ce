package report

import (
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/model"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/rules"
)

const toolName = "cryptoscan"
const toolURI = "https://github.com/Nags-N/Crypto-Misuse-Detection-Agent"

// WriteSARIF renders findings as a SARIF 2.1.0 log. Rule metadata comes
// from the catalog so viewers can show titles next to results.
func WriteSARIF(w io.Writer, result *model.ScanResult, catalog []rules.Rule) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}
	run := sarif.NewRunWithInformationURI(toolName, toolURI)

	for _, r := range catalog {
		run.AddRule(r.ID).
			WithShortDescription(sarif.NewMultiformatMessageString(r.Title))
	}

	for _, f := range result.Findings {
		run.CreateResultForRule(f.RuleID).
			WithLevel(sarifLevel(f.Severity)).
			WithMessage(sarif.NewTextMessage(f.Message)).
			AddLocation(sarif.NewLocationWithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewSimpleArtifactLocation(f.File)).
					WithRegion(sarif.NewSimpleRegion(f.Line, f.Line)),
			))
	}

	report.AddRun(run)
	return report.Write(w)
}

func sarifLevel(s model.Severity) string {
	switch s {
	case model.SeverityHigh, model.SeverityCritical:
		return "error"
	case model.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}
