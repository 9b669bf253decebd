package models

// AnalysisResult is the match assessment returned by the AI service.
//
// JSON Schema:
//
//	{
//	  "matchScore": "integer (0-100)",
//	  "summary": "string",
//	  "strengths": ["string"],
//	  "weaknesses": ["string"],
//	  "suggestions": ["string"]
//	}
type AnalysisResult struct {
	MatchScore  int      `json:"matchScore"`
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

type AnalyzeResponse struct {
	ID     string          `json:"id"`
	Result *AnalysisResult `json:"result"`
}

type ExtractResponse struct {
	Filename   string `json:"filename"`
	MediaType  string `json:"media_type"`
	Text       string `json:"text"`
	Characters int    `json:"characters"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
	Kind  string `json:"kind"`
}
