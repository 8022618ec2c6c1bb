package service

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-feedback/internal/logger"
	"github.com/MKhiriev/go-feedback/internal/mock"
	"github.com/MKhiriev/go-feedback/internal/store"
)

// testStorages bundles the mocked repositories behind a *store.Storages.
type testStorages struct {
	storages   *store.Storages
	users      *mock.MockUserRepository
	feedback   *mock.MockFeedbackRepository
	transactor *mock.MockTransactor
}

func newTestStorages(t *testing.T) testStorages {
	t.Helper()
	ctrl := gomock.NewController(t)

	ts := testStorages{
		users:      mock.NewMockUserRepository(ctrl),
		feedback:   mock.NewMockFeedbackRepository(ctrl),
		transactor: mock.NewMockTransactor(ctrl),
	}
	ts.storages = &store.Storages{
		UserRepository:     ts.users,
		FeedbackRepository: ts.feedback,
		Transactor:         ts.transactor,
	}
	return ts
}

// expectTx makes the transactor run fn directly and return its error.
func (ts testStorages) expectTx() *gomock.Call {
	return ts.transactor.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func testLogger() *logger.Logger {
	return logger.Nop()
}

func strPtr(s string) *string { return &s }
