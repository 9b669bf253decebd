package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"google.golang.org/genai"
)

type MockGeminiService struct {
	mock.Mock
}

func (m *MockGeminiService) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, temperature float32) (string, error) {
	args := m.Called(ctx, prompt, schema, temperature)
	return args.String(0), args.Error(1)
}
