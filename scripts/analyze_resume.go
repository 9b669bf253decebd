package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// Runs one extraction and analysis against the live Gemini API:
//
//	go run ./scripts -resume ./resume.pdf -job ./job.txt
func main() {
	resumePath := flag.String("resume", "", "path to a PDF or DOCX resume")
	jobPath := flag.String("job", "", "path to a plain text job description")
	flag.Parse()

	if *resumePath == "" || *jobPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Println("🚀 Starting resume analysis...")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx := context.Background()

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	extractor := services.NewDocumentExtractor(
		services.NewPDFParserService(),
		services.NewDocxParserService(),
	)
	analyzer := services.NewResumeAnalyzer(geminiService, cfg.Gemini.Temperature)

	content, err := os.ReadFile(*resumePath)
	if err != nil {
		log.Fatalf("❌ Failed to read resume: %v", err)
	}

	log.Printf("📖 Extracting text from %s", *resumePath)
	resumeText, err := extractor.ExtractText(&models.UploadedDocument{
		Filename:  filepath.Base(*resumePath),
		MediaType: mediaTypeFor(*resumePath),
		Content:   content,
	})
	if err != nil {
		log.Fatalf("❌ Failed to extract text: %v", err)
	}

	jobDescription, err := os.ReadFile(*jobPath)
	if err != nil {
		log.Fatalf("❌ Failed to read job description: %v", err)
	}

	log.Println("🤖 Analyzing resume with LLM...")
	result, err := analyzer.Analyze(ctx, resumeText, string(jobDescription))
	if err != nil {
		log.Fatalf("❌ Analysis failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		log.Fatalf("❌ Failed to write result: %v", err)
	}

	log.Printf("✅ Match score: %d%%", result.MatchScore)
}

func mediaTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return models.MediaTypePDF
	case ".docx":
		return models.MediaTypeDOCX
	default:
		return "application/octet-stream"
	}
}
