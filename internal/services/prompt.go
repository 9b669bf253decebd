package services

import (
	"fmt"

	"google.golang.org/genai"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildMatchAnalysisPrompt creates the prompt for a resume to job description match
func (pb *PromptBuilder) BuildMatchAnalysisPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are a highly experienced HR analyst and recruitment expert. Your task is to meticulously analyze the provided resume against the given job description.
Evaluate the candidate's qualifications, skills, and experience against all requirements of the job. Be critical and objective.
Provide your analysis in a structured JSON format. Do not add any text or explanations outside of the JSON object.

**Resume Text:**
---
%s
---

**Job Description:**
---
%s
---
`, resumeText, jobDescription)
}

// MatchAnalysisSchema is the response schema sent with every analysis request.
func MatchAnalysisSchema() *genai.Schema {
	stringList := func(description string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: description,
		}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"matchScore": {
				Type:        genai.TypeInteger,
				Description: "A score from 0 to 100 representing how well the resume matches the job description. Be critical and objective.",
				Minimum:     genai.Ptr[float64](0),
				Maximum:     genai.Ptr[float64](100),
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "A concise, professional summary (2-3 sentences) of the candidate's suitability for the role, highlighting key qualifications.",
			},
			"strengths":   stringList("An array of specific points detailing how the candidate's skills and experience align with the job requirements."),
			"weaknesses":  stringList("An array of key skills or qualifications from the job description that are missing or not clearly demonstrated in the resume."),
			"suggestions": stringList("An array of actionable suggestions for the candidate to improve their resume for this specific role (e.g., 'Quantify achievements in past roles with metrics')."),
		},
		Required:         []string{"matchScore", "summary", "strengths", "weaknesses", "suggestions"},
		PropertyOrdering: []string{"matchScore", "summary", "strengths", "weaknesses", "suggestions"},
	}
}
