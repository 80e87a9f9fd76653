package service

import (
	"context"
	"time"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
	"github.com/pitchdesk/pitchdesk/internal/domain/lifecycle"
)

// Mock repositories and collaborators. Each field overrides the default
// behavior for a single test case.

type mockPitchRepo struct {
	getByIDFunc          func(ctx context.Context, id int64) (*entity.Pitch, error)
	listByProjectIDFunc  func(ctx context.Context, projectID int64) ([]*entity.Pitch, error)
	listOpenSiblingsFunc func(ctx context.Context, projectID, excludePitchID int64) ([]*entity.Pitch, error)
	updateStatusIfFunc   func(ctx context.Context, id int64, from, to lifecycle.Status) (bool, error)
	markCompletedFunc    func(ctx context.Context, id int64, completedAt time.Time, feedback string, rating *int, paymentStatus string) (bool, error)
	closeFunc            func(ctx context.Context, id int64) error

	closedIDs []int64
}

func (m *mockPitchRepo) GetByID(ctx context.Context, id int64) (*entity.Pitch, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPitchRepo) ListByProjectID(ctx context.Context, projectID int64) ([]*entity.Pitch, error) {
	if m.listByProjectIDFunc != nil {
		return m.listByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockPitchRepo) ListOpenSiblings(ctx context.Context, projectID, excludePitchID int64) ([]*entity.Pitch, error) {
	if m.listOpenSiblingsFunc != nil {
		return m.listOpenSiblingsFunc(ctx, projectID, excludePitchID)
	}
	return nil, nil
}

func (m *mockPitchRepo) UpdateStatusIf(ctx context.Context, id int64, from, to lifecycle.Status) (bool, error) {
	if m.updateStatusIfFunc != nil {
		return m.updateStatusIfFunc(ctx, id, from, to)
	}
	return true, nil
}

func (m *mockPitchRepo) MarkCompleted(ctx context.Context, id int64, completedAt time.Time, feedback string, rating *int, paymentStatus string) (bool, error) {
	if m.markCompletedFunc != nil {
		return m.markCompletedFunc(ctx, id, completedAt, feedback, rating, paymentStatus)
	}
	return true, nil
}

func (m *mockPitchRepo) Close(ctx context.Context, id int64) error {
	m.closedIDs = append(m.closedIDs, id)
	if m.closeFunc != nil {
		return m.closeFunc(ctx, id)
	}
	return nil
}

type mockProjectRepo struct {
	getByIDFunc            func(ctx context.Context, id int64) (*entity.Project, error)
	countEntriesFunc       func(ctx context.Context, projectID int64) (int, error)
	listEntrantUserIDsFunc func(ctx context.Context, projectID int64) ([]int64, error)
	closeEarlyIfFunc       func(ctx context.Context, id int64, closedAt time.Time, closedBy int64, reason string) (bool, error)
	reopenIfFunc           func(ctx context.Context, id int64) (bool, error)
	markCompletedFunc      func(ctx context.Context, id int64) error

	completedIDs []int64
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockProjectRepo) CountEntries(ctx context.Context, projectID int64) (int, error) {
	if m.countEntriesFunc != nil {
		return m.countEntriesFunc(ctx, projectID)
	}
	return 0, nil
}

func (m *mockProjectRepo) ListEntrantUserIDs(ctx context.Context, projectID int64) ([]int64, error) {
	if m.listEntrantUserIDsFunc != nil {
		return m.listEntrantUserIDsFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockProjectRepo) CloseEarlyIf(ctx context.Context, id int64, closedAt time.Time, closedBy int64, reason string) (bool, error) {
	if m.closeEarlyIfFunc != nil {
		return m.closeEarlyIfFunc(ctx, id, closedAt, closedBy, reason)
	}
	return true, nil
}

func (m *mockProjectRepo) ReopenIf(ctx context.Context, id int64) (bool, error) {
	if m.reopenIfFunc != nil {
		return m.reopenIfFunc(ctx, id)
	}
	return true, nil
}

func (m *mockProjectRepo) MarkCompleted(ctx context.Context, id int64) error {
	m.completedIDs = append(m.completedIDs, id)
	if m.markCompletedFunc != nil {
		return m.markCompletedFunc(ctx, id)
	}
	return nil
}

type mockSnapshotRepo struct {
	getByPitchIDFunc func(ctx context.Context, pitchID int64) (*entity.PitchSnapshot, error)
	updateStatusFunc func(ctx context.Context, id int64, status string) error

	updates map[int64]string
}

func (m *mockSnapshotRepo) GetByPitchID(ctx context.Context, pitchID int64) (*entity.PitchSnapshot, error) {
	if m.getByPitchIDFunc != nil {
		return m.getByPitchIDFunc(ctx, pitchID)
	}
	return nil, nil
}

func (m *mockSnapshotRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	if m.updates == nil {
		m.updates = make(map[int64]string)
	}
	m.updates[id] = status
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

type mockEventRepo struct {
	createPitchEventFunc   func(ctx context.Context, event *entity.PitchEvent) error
	createProjectEventFunc func(ctx context.Context, event *entity.ProjectEvent) error

	pitchEvents   []*entity.PitchEvent
	projectEvents []*entity.ProjectEvent
}

func (m *mockEventRepo) CreatePitchEvent(ctx context.Context, event *entity.PitchEvent) error {
	m.pitchEvents = append(m.pitchEvents, event)
	if m.createPitchEventFunc != nil {
		return m.createPitchEventFunc(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) CreateProjectEvent(ctx context.Context, event *entity.ProjectEvent) error {
	m.projectEvents = append(m.projectEvents, event)
	if m.createProjectEventFunc != nil {
		return m.createProjectEventFunc(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) ListByPitchID(ctx context.Context, pitchID int64) ([]*entity.PitchEvent, error) {
	return m.pitchEvents, nil
}

type mockPayoutRepo struct {
	createFunc   func(ctx context.Context, schedule *entity.PayoutSchedule) error
	getByIDFunc  func(ctx context.Context, id int64) (*entity.PayoutSchedule, error)
	bypassIfFunc func(ctx context.Context, id int64, releaseDate time.Time, reason string, adminID int64, bypassedAt time.Time) (bool, error)

	created []*entity.PayoutSchedule
}

func (m *mockPayoutRepo) Create(ctx context.Context, schedule *entity.PayoutSchedule) error {
	m.created = append(m.created, schedule)
	if m.createFunc != nil {
		return m.createFunc(ctx, schedule)
	}
	return nil
}

func (m *mockPayoutRepo) GetByID(ctx context.Context, id int64) (*entity.PayoutSchedule, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPayoutRepo) BypassIf(ctx context.Context, id int64, releaseDate time.Time, reason string, adminID int64, bypassedAt time.Time) (bool, error) {
	if m.bypassIfFunc != nil {
		return m.bypassIfFunc(ctx, id, releaseDate, reason, adminID, bypassedAt)
	}
	return true, nil
}

type mockActorDirectory struct {
	actorByIDFunc func(ctx context.Context, id int64) (*entity.Actor, error)
}

func (m *mockActorDirectory) ActorByID(ctx context.Context, id int64) (*entity.Actor, error) {
	if m.actorByIDFunc != nil {
		return m.actorByIDFunc(ctx, id)
	}
	return nil, nil
}

type mockPolicyStore struct {
	policy *entity.PayoutHoldPolicy
	err    error
}

func (m *mockPolicyStore) CurrentHoldPolicy(ctx context.Context) (*entity.PayoutHoldPolicy, error) {
	return m.policy, m.err
}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type sentNotification struct {
	kind      string
	recipient int64
	subject   port.NotificationSubject
	payload   map[string]interface{}
}

type mockNotifier struct {
	notifyFunc func(ctx context.Context, kind string, recipientUserID int64, subject port.NotificationSubject, payload map[string]interface{}) error

	sent []sentNotification
}

func (m *mockNotifier) Notify(ctx context.Context, kind string, recipientUserID int64, subject port.NotificationSubject, payload map[string]interface{}) error {
	m.sent = append(m.sent, sentNotification{kind: kind, recipient: recipientUserID, subject: subject, payload: payload})
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, kind, recipientUserID, subject, payload)
	}
	return nil
}

type mockFinalizer struct {
	completeProjectFunc func(ctx context.Context, project *entity.Project) error

	completed []int64
}

func (m *mockFinalizer) CompleteProject(ctx context.Context, project *entity.Project) error {
	m.completed = append(m.completed, project.ID)
	if m.completeProjectFunc != nil {
		return m.completeProjectFunc(ctx, project)
	}
	return nil
}

type mockPortalIssuer struct {
	issueLinkFunc func(projectID, clientUserID int64) (string, error)
}

func (m *mockPortalIssuer) IssueLink(projectID, clientUserID int64) (string, error) {
	if m.issueLinkFunc != nil {
		return m.issueLinkFunc(projectID, clientUserID)
	}
	return "http://portal.example/token", nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
