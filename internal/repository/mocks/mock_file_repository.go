package mocks

import (
	"context"

	"dms/internal/model"
	"dms/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockFileRepository struct {
	mock.Mock
}

// CreateWithNextVersion invokes the put callback with the version configured
// via the "version" return hook, mirroring the real transactional flow: the
// blob write happens before the row is returned.
func (m *MockFileRepository) CreateWithNextVersion(ctx context.Context, f *model.DocumentFile, put repository.PutFunc) (*model.DocumentFile, error) {
	args := m.Called(ctx, f, put)
	if h, ok := args.Get(0).(func(context.Context, *model.DocumentFile, repository.PutFunc) (*model.DocumentFile, error)); ok {
		return h(ctx, f, put)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentFile), args.Error(1)
}

func (m *MockFileRepository) ListByDocument(ctx context.Context, documentID int64) ([]model.DocumentFile, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentFile), args.Error(1)
}

func (m *MockFileRepository) FindByID(ctx context.Context, documentID, fileID int64) (*model.DocumentFile, error) {
	args := m.Called(ctx, documentID, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentFile), args.Error(1)
}

func (m *MockFileRepository) Delete(ctx context.Context, fileID int64) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}
