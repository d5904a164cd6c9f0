package schemas

import _ "embed"

var (
	//go:embed analysis_result.schema.json
	analysisResultJSON []byte
	//go:embed resume_status.schema.json
	resumeStatusJSON []byte

	analysisResult = MustCompile("analysis_result", analysisResultJSON)
	resumeStatus   = MustCompile("resume_status", resumeStatusJSON)
)

// ValidateAnalysisResult checks a /analyze-jd success body.
func ValidateAnalysisResult(document []byte) error {
	return analysisResult.Validate(document)
}

// ValidateResumeStatus checks a /resume/status success body.
func ValidateResumeStatus(document []byte) error {
	return resumeStatus.Validate(document)
}
