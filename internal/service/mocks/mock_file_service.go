package mocks

import (
	"context"
	"io"

	"dms/internal/model"
	"dms/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, documentID int64, r io.Reader, originalFilename, contentType string, size int64) (*model.DocumentFile, error) {
	args := m.Called(ctx, documentID, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentFile), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, documentID int64) ([]model.DocumentFile, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentFile), args.Error(1)
}

func (m *MockFileService) Download(ctx context.Context, documentID, fileID int64) (*service.DownloadResult, error) {
	args := m.Called(ctx, documentID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadResult), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, documentID, fileID int64) (*service.ReclaimReport, error) {
	args := m.Called(ctx, documentID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReclaimReport), args.Error(1)
}
