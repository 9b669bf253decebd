package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// ResumeAnalyzer scores a resume against a job description with one request
// to the AI service. There are no retries; callers may simply call again.
type ResumeAnalyzer interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) (*models.AnalysisResult, error)
}

type resumeAnalyzer struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
	temperature   float32
}

func NewResumeAnalyzer(geminiService GeminiService, temperature float32) ResumeAnalyzer {
	return &resumeAnalyzer{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		temperature:   temperature,
	}
}

// ValidateAnalysisInput rejects blank input before any request is made.
func ValidateAnalysisInput(resumeText, jobDescription string) error {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		return ErrValidation
	}
	return nil
}

func (a *resumeAnalyzer) Analyze(ctx context.Context, resumeText, jobDescription string) (*models.AnalysisResult, error) {
	if err := ValidateAnalysisInput(resumeText, jobDescription); err != nil {
		return nil, err
	}

	prompt := a.promptBuilder.BuildMatchAnalysisPrompt(resumeText, jobDescription)
	log.Printf("📝 Match analysis prompt length: %d characters", len(prompt))

	response, err := a.geminiService.GenerateJSON(ctx, prompt, MatchAnalysisSchema(), a.temperature)
	if err != nil {
		log.Printf("❌ Match analysis failed: %v", err)
		if errors.Is(err, ErrAIRequest) || errors.Is(err, ErrMalformedResponse) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrAIRequest, err)
	}

	log.Printf("✅ Match analysis response received: %d characters", len(response))

	result, err := DecodeAnalysisResult(response)
	if err != nil {
		log.Printf("❌ Failed to decode match analysis response: %v", err)
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}

	return result, nil
}
