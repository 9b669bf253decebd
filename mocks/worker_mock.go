package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type MockWorker struct {
	mock.Mock
}

func (m *MockWorker) Start(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockWorker) Stop() {
	m.Called()
}

func (m *MockWorker) Submit(ctx context.Context, resumeText, jobDescription string) (*models.AnalysisResult, error) {
	args := m.Called(ctx, resumeText, jobDescription)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.AnalysisResult), args.Error(1)
}
