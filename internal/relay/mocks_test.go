package relay_test

import (
	"context"
	"time"

	"speakup/backend/internal/models"
	"speakup/backend/internal/relay"

	"github.com/stretchr/testify/mock"
)

// MockMessageStore is a testify mock of relay.MessageStore.
type MockMessageStore struct {
	mock.Mock
}

func (m *MockMessageStore) CreateMessage(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageStore) MessagesForCase(ctx context.Context, tenantID, caseID string) ([]models.Message, error) {
	args := m.Called(ctx, tenantID, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageStore) MarkRead(ctx context.Context, tenantID, caseID string, direction models.Direction, readBy *string, at time.Time) error {
	args := m.Called(ctx, tenantID, caseID, direction, readBy, at)
	return args.Error(0)
}

func (m *MockMessageStore) UnreadCounts(ctx context.Context, tenantID, caseID string) (relay.UnreadCounts, error) {
	args := m.Called(ctx, tenantID, caseID)
	return args.Get(0).(relay.UnreadCounts), args.Error(1)
}

func (m *MockMessageStore) UpdateDeliveryStatus(ctx context.Context, messageID string, from, to models.DeliveryStatus) error {
	args := m.Called(ctx, messageID, from, to)
	return args.Error(0)
}

// MockCaseResolver is a testify mock of relay.CaseResolver.
type MockCaseResolver struct {
	mock.Mock
}

func (m *MockCaseResolver) ResolveCase(ctx context.Context, tenantID, caseID string) (*relay.CaseRef, error) {
	args := m.Called(ctx, tenantID, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*relay.CaseRef), args.Error(1)
}

// MockIdentityResolver is a testify mock of relay.IdentityResolver.
type MockIdentityResolver struct {
	mock.Mock
}

func (m *MockIdentityResolver) ResolveByAccessCode(ctx context.Context, code string) (*relay.ReporterRecord, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*relay.ReporterRecord), args.Error(1)
}

func (m *MockIdentityResolver) ResolveForCase(ctx context.Context, tenantID, caseID string) (*relay.ReporterRecord, error) {
	args := m.Called(ctx, tenantID, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*relay.ReporterRecord), args.Error(1)
}

// MockDispatcher is a testify mock of relay.Dispatcher.
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Enqueue(ctx context.Context, jobType string, payload any) error {
	args := m.Called(ctx, jobType, payload)
	return args.Error(0)
}

// MockAuditEmitter is a testify mock of relay.AuditEmitter.
type MockAuditEmitter struct {
	mock.Mock
}

func (m *MockAuditEmitter) Emit(ctx context.Context, event relay.MessageEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
