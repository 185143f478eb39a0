package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"gradinghub/internal/domain"
)

type MockIngestionService struct {
	ctrl     *gomock.Controller
	recorder *MockIngestionServiceMockRecorder
}

type MockIngestionServiceMockRecorder struct {
	mock *MockIngestionService
}

func NewMockIngestionService(ctrl *gomock.Controller) *MockIngestionService {
	mock := &MockIngestionService{ctrl: ctrl}
	mock.recorder = &MockIngestionServiceMockRecorder{mock}
	return mock
}

func (m *MockIngestionService) EXPECT() *MockIngestionServiceMockRecorder {
	return m.recorder
}

func (m *MockIngestionService) Ingest(ctx context.Context, assignmentID uuid.UUID, archivePaths []string) ([]domain.IngestResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Ingest", ctx, assignmentID, archivePaths)
	ret0, _ := ret[0].([]domain.IngestResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockIngestionServiceMockRecorder) Ingest(ctx, assignmentID, archivePaths interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Ingest", reflect.TypeOf((*MockIngestionService)(nil).Ingest), ctx, assignmentID, archivePaths)
}

func (m *MockIngestionService) ValidateArchive(ctx context.Context, path string) domain.ArchiveReport {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ValidateArchive", ctx, path)
	ret0, _ := ret[0].(domain.ArchiveReport)
	return ret0
}

func (mr *MockIngestionServiceMockRecorder) ValidateArchive(ctx, path interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ValidateArchive", reflect.TypeOf((*MockIngestionService)(nil).ValidateArchive), ctx, path)
}

type MockCoordinationService struct {
	ctrl     *gomock.Controller
	recorder *MockCoordinationServiceMockRecorder
}

type MockCoordinationServiceMockRecorder struct {
	mock *MockCoordinationService
}

func NewMockCoordinationService(ctrl *gomock.Controller) *MockCoordinationService {
	mock := &MockCoordinationService{ctrl: ctrl}
	mock.recorder = &MockCoordinationServiceMockRecorder{mock}
	return mock
}

func (m *MockCoordinationService) EXPECT() *MockCoordinationServiceMockRecorder {
	return m.recorder
}

func (m *MockCoordinationService) Claim(ctx context.Context, submissionID uuid.UUID, actor string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Claim", ctx, submissionID, actor)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCoordinationServiceMockRecorder) Claim(ctx, submissionID, actor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Claim", reflect.TypeOf((*MockCoordinationService)(nil).Claim), ctx, submissionID, actor)
}

func (m *MockCoordinationService) Release(ctx context.Context, submissionID uuid.UUID, actor string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Release", ctx, submissionID, actor)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCoordinationServiceMockRecorder) Release(ctx, submissionID, actor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Release", reflect.TypeOf((*MockCoordinationService)(nil).Release), ctx, submissionID, actor)
}

func (m *MockCoordinationService) ForceClaim(ctx context.Context, submissionID uuid.UUID, actor string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ForceClaim", ctx, submissionID, actor)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCoordinationServiceMockRecorder) ForceClaim(ctx, submissionID, actor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ForceClaim", reflect.TypeOf((*MockCoordinationService)(nil).ForceClaim), ctx, submissionID, actor)
}

func (m *MockCoordinationService) UpdateStatus(ctx context.Context, submissionID uuid.UUID, status string, actor *string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateStatus", ctx, submissionID, status, actor)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCoordinationServiceMockRecorder) UpdateStatus(ctx, submissionID, status, actor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateStatus", reflect.TypeOf((*MockCoordinationService)(nil).UpdateStatus), ctx, submissionID, status, actor)
}

func (m *MockCoordinationService) ManualMatch(ctx context.Context, submissionID uuid.UUID, studentID, actor string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ManualMatch", ctx, submissionID, studentID, actor)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCoordinationServiceMockRecorder) ManualMatch(ctx, submissionID, studentID, actor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ManualMatch", reflect.TypeOf((*MockCoordinationService)(nil).ManualMatch), ctx, submissionID, studentID, actor)
}

func (m *MockCoordinationService) Quarantine(ctx context.Context, submissionID uuid.UUID, reason, actor string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Quarantine", ctx, submissionID, reason, actor)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCoordinationServiceMockRecorder) Quarantine(ctx, submissionID, reason, actor interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Quarantine", reflect.TypeOf((*MockCoordinationService)(nil).Quarantine), ctx, submissionID, reason, actor)
}

func (m *MockCoordinationService) Touch(ctx context.Context, submissionID uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Touch", ctx, submissionID)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockCoordinationServiceMockRecorder) Touch(ctx, submissionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Touch", reflect.TypeOf((*MockCoordinationService)(nil).Touch), ctx, submissionID)
}

func (m *MockCoordinationService) ListQueue(ctx context.Context, assignmentID uuid.UUID) ([]*domain.QueueItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListQueue", ctx, assignmentID)
	ret0, _ := ret[0].([]*domain.QueueItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockCoordinationServiceMockRecorder) ListQueue(ctx, assignmentID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListQueue", reflect.TypeOf((*MockCoordinationService)(nil).ListQueue), ctx, assignmentID)
}

func (m *MockCoordinationService) ListUnmatched(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListUnmatched", ctx, assignmentID)
	ret0, _ := ret[0].([]*domain.Submission)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockCoordinationServiceMockRecorder) ListUnmatched(ctx, assignmentID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListUnmatched", reflect.TypeOf((*MockCoordinationService)(nil).ListUnmatched), ctx, assignmentID)
}

type MockAuditService struct {
	ctrl     *gomock.Controller
	recorder *MockAuditServiceMockRecorder
}

type MockAuditServiceMockRecorder struct {
	mock *MockAuditService
}

func NewMockAuditService(ctrl *gomock.Controller) *MockAuditService {
	mock := &MockAuditService{ctrl: ctrl}
	mock.recorder = &MockAuditServiceMockRecorder{mock}
	return mock
}

func (m *MockAuditService) EXPECT() *MockAuditServiceMockRecorder {
	return m.recorder
}

func (m *MockAuditService) GetAudit(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAudit", ctx, limit)
	ret0, _ := ret[0].([]*domain.AuditEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAuditServiceMockRecorder) GetAudit(ctx, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAudit", reflect.TypeOf((*MockAuditService)(nil).GetAudit), ctx, limit)
}

func (m *MockAuditService) Bookmark(ctx context.Context, actor string, assignmentID uuid.UUID) (*domain.Bookmark, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Bookmark", ctx, actor, assignmentID)
	ret0, _ := ret[0].(*domain.Bookmark)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockAuditServiceMockRecorder) Bookmark(ctx, actor, assignmentID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Bookmark", reflect.TypeOf((*MockAuditService)(nil).Bookmark), ctx, actor, assignmentID)
}
