package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitchdesk/pitchdesk/internal/application/port"
	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
	"github.com/pitchdesk/pitchdesk/internal/domain/lifecycle"
)

type completionFixture struct {
	pitchRepo    *mockPitchRepo
	projectRepo  *mockProjectRepo
	snapshotRepo *mockSnapshotRepo
	eventRepo    *mockEventRepo
	payoutRepo   *mockPayoutRepo
	policyStore  *mockPolicyStore
	txManager    *mockTxManager
	finalizer    *mockFinalizer
	notifier     *mockNotifier
	portal       *mockPortalIssuer
	clock        fixedClock
	service      CompletionService
}

func newCompletionFixture(pitch *entity.Pitch, project *entity.Project) *completionFixture {
	f := &completionFixture{
		pitchRepo: &mockPitchRepo{
			getByIDFunc: func(ctx context.Context, id int64) (*entity.Pitch, error) {
				if pitch != nil && id == pitch.ID {
					return pitch, nil
				}
				return nil, nil
			},
		},
		projectRepo: &mockProjectRepo{
			getByIDFunc: func(ctx context.Context, id int64) (*entity.Project, error) {
				if project != nil && id == project.ID {
					return project, nil
				}
				return nil, nil
			},
		},
		snapshotRepo: &mockSnapshotRepo{},
		eventRepo:    &mockEventRepo{},
		payoutRepo:   &mockPayoutRepo{},
		policyStore: &mockPolicyStore{
			policy: &entity.PayoutHoldPolicy{
				Enabled:             true,
				MinimumHoldHours:    2,
				ProcessingTimeOfDay: "14:00",
				HoldDays:            map[string]int{entity.WorkflowTypeStandard: 3},
				DefaultHoldDays:     3,
			},
		},
		txManager: &mockTxManager{},
		finalizer: &mockFinalizer{},
		notifier:  &mockNotifier{},
		portal:    &mockPortalIssuer{},
		clock:     fixedClock{now: time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)},
	}
	f.service = NewCompletionService(
		f.pitchRepo, f.projectRepo, f.snapshotRepo, f.eventRepo,
		f.payoutRepo, f.policyStore, f.txManager, f.finalizer,
		f.notifier, f.portal, f.clock, &mockLogger{},
	)
	return f
}

func approvedPitch() *entity.Pitch {
	return &entity.Pitch{
		ID:            10,
		ProjectID:     20,
		OwnerUserID:   100,
		Status:        lifecycle.StatusApproved.String(),
		PaymentStatus: entity.PaymentStatusNone,
		Title:         "Homepage redesign",
	}
}

func standardProject() *entity.Project {
	return &entity.Project{
		ID:          20,
		OwnerUserID: 200,
		Kind:        entity.ProjectKindStandard,
		Title:       "Site refresh",
		BudgetCents: 50000,
	}
}

func TestCompletionService_Complete_Preconditions(t *testing.T) {
	rating := 4
	badLow := 0
	badHigh := 6

	tests := []struct {
		name    string
		pitch   func() *entity.Pitch
		actorID int64
		rating  *int
		wantErr error
	}{
		{
			name:    "actor is not the project owner",
			pitch:   approvedPitch,
			actorID: 999,
			rating:  &rating,
			wantErr: ErrUnauthorized,
		},
		{
			name: "pitch not approved",
			pitch: func() *entity.Pitch {
				p := approvedPitch()
				p.Status = lifecycle.StatusInProgress.String()
				return p
			},
			actorID: 200,
			rating:  &rating,
			wantErr: ErrInvalidState,
		},
		{
			name:    "rating below range",
			pitch:   approvedPitch,
			actorID: 200,
			rating:  &badLow,
			wantErr: ErrInvalidInput,
		},
		{
			name:    "rating above range",
			pitch:   approvedPitch,
			actorID: 200,
			rating:  &badHigh,
			wantErr: ErrInvalidInput,
		},
		{
			name: "payment already processing",
			pitch: func() *entity.Pitch {
				p := approvedPitch()
				p.PaymentStatus = entity.PaymentStatusProcessing
				return p
			},
			actorID: 200,
			rating:  &rating,
			wantErr: ErrAlreadyFinalized,
		},
		{
			name: "payment already paid",
			pitch: func() *entity.Pitch {
				p := approvedPitch()
				p.PaymentStatus = entity.PaymentStatusPaid
				return p
			},
			actorID: 200,
			rating:  &rating,
			wantErr: ErrAlreadyFinalized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCompletionFixture(tt.pitch(), standardProject())

			_, err := f.service.Complete(context.Background(), 10, tt.actorID, "good work", tt.rating)

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Complete() error = %v, want %v", err, tt.wantErr)
			}
			if len(f.payoutRepo.created) != 0 {
				t.Errorf("Complete() created %d payout schedules on a failed precondition", len(f.payoutRepo.created))
			}
			if len(f.notifier.sent) != 0 {
				t.Errorf("Complete() sent %d notifications on a failed precondition", len(f.notifier.sent))
			}
		})
	}
}

func TestCompletionService_Complete_UnknownPitch(t *testing.T) {
	f := newCompletionFixture(nil, standardProject())

	_, err := f.service.Complete(context.Background(), 10, 200, "", nil)

	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Complete() error = %v, want ErrInvalidInput", err)
	}
}

func TestCompletionService_Complete_RatingBoundaries(t *testing.T) {
	for _, rating := range []int{1, 5} {
		r := rating
		f := newCompletionFixture(approvedPitch(), standardProject())

		_, err := f.service.Complete(context.Background(), 10, 200, "boundary", &r)

		if err != nil {
			t.Errorf("Complete() with rating %d error = %v", rating, err)
		}
	}
}

func TestCompletionService_Complete_StandardCascade(t *testing.T) {
	pitch := approvedPitch()
	project := standardProject()
	f := newCompletionFixture(pitch, project)

	siblings := []*entity.Pitch{
		{ID: 11, ProjectID: 20, OwnerUserID: 101, Status: lifecycle.StatusPending.String(), Title: "Alt A"},
		{ID: 12, ProjectID: 20, OwnerUserID: 102, Status: lifecycle.StatusInProgress.String(), Title: "Alt B"},
	}
	f.pitchRepo.listOpenSiblingsFunc = func(ctx context.Context, projectID, excludePitchID int64) ([]*entity.Pitch, error) {
		if projectID != 20 || excludePitchID != 10 {
			t.Errorf("ListOpenSiblings(%d, %d), want (20, 10)", projectID, excludePitchID)
		}
		return siblings, nil
	}
	snapshots := map[int64]*entity.PitchSnapshot{
		10: {ID: 1, PitchID: 10, Status: entity.SnapshotStatusPending},
		11: {ID: 2, PitchID: 11, Status: entity.SnapshotStatusPending},
		12: {ID: 3, PitchID: 12, Status: entity.SnapshotStatusDenied},
	}
	f.snapshotRepo.getByPitchIDFunc = func(ctx context.Context, pitchID int64) (*entity.PitchSnapshot, error) {
		return snapshots[pitchID], nil
	}

	rating := 5
	_, err := f.service.Complete(context.Background(), 10, 200, "winner", &rating)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if len(f.pitchRepo.closedIDs) != 2 {
		t.Errorf("Complete() closed %d siblings, want 2", len(f.pitchRepo.closedIDs))
	}
	if got := f.snapshotRepo.updates[1]; got != entity.SnapshotStatusCompleted {
		t.Errorf("winner snapshot status = %q, want COMPLETED", got)
	}
	if got := f.snapshotRepo.updates[2]; got != entity.SnapshotStatusDenied {
		t.Errorf("pending sibling snapshot status = %q, want DENIED", got)
	}
	if _, touched := f.snapshotRepo.updates[3]; touched {
		t.Errorf("already-denied sibling snapshot was rewritten")
	}
	if len(f.finalizer.completed) != 1 || f.finalizer.completed[0] != 20 {
		t.Errorf("finalized projects = %v, want [20]", f.finalizer.completed)
	}
	if len(f.eventRepo.pitchEvents) != 1 {
		t.Fatalf("recorded %d pitch events, want 1", len(f.eventRepo.pitchEvents))
	}
	event := f.eventRepo.pitchEvents[0]
	if event.NewStatus != lifecycle.StatusCompleted.String() || event.Rating == nil || *event.Rating != 5 {
		t.Errorf("event = %+v, want COMPLETED with rating 5", event)
	}

	// One closure notice per sibling plus the owner's completion notice.
	if len(f.notifier.sent) != 3 {
		t.Fatalf("sent %d notifications, want 3", len(f.notifier.sent))
	}
	if f.notifier.sent[0].kind != entity.NotificationKindPitchClosed || f.notifier.sent[0].recipient != 101 {
		t.Errorf("first notification = %+v, want closure notice to 101", f.notifier.sent[0])
	}
	if f.notifier.sent[2].kind != entity.NotificationKindPitchCompleted || f.notifier.sent[2].recipient != 100 {
		t.Errorf("last notification = %+v, want completion notice to 100", f.notifier.sent[2])
	}
}

func TestCompletionService_Complete_ContestDoesNotCascade(t *testing.T) {
	project := standardProject()
	project.Kind = entity.ProjectKindContest
	f := newCompletionFixture(approvedPitch(), project)

	f.pitchRepo.listOpenSiblingsFunc = func(ctx context.Context, projectID, excludePitchID int64) ([]*entity.Pitch, error) {
		t.Errorf("ListOpenSiblings called for a contest project")
		return nil, nil
	}

	_, err := f.service.Complete(context.Background(), 10, 200, "", nil)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if len(f.pitchRepo.closedIDs) != 0 {
		t.Errorf("closed %d siblings, want 0", len(f.pitchRepo.closedIDs))
	}
	if len(f.finalizer.completed) != 0 {
		t.Errorf("finalized %d projects, want 0", len(f.finalizer.completed))
	}
}

func TestCompletionService_Complete_PayoutSchedule(t *testing.T) {
	f := newCompletionFixture(approvedPitch(), standardProject())

	_, err := f.service.Complete(context.Background(), 10, 200, "", nil)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if len(f.payoutRepo.created) != 1 {
		t.Fatalf("created %d payout schedules, want 1", len(f.payoutRepo.created))
	}
	schedule := f.payoutRepo.created[0]
	if schedule.AmountCents != 50000 || schedule.WorkflowType != entity.WorkflowTypeStandard {
		t.Errorf("schedule = %+v, want 50000 cents on STANDARD", schedule)
	}
	// Monday + 3 calendar days at the 14:00 processing time.
	want := time.Date(2024, 6, 6, 14, 0, 0, 0, time.UTC)
	if !schedule.HoldReleaseDate.Equal(want) {
		t.Errorf("HoldReleaseDate = %v, want %v", schedule.HoldReleaseDate, want)
	}
}

func TestCompletionService_Complete_ZeroBudgetSkipsPayout(t *testing.T) {
	project := standardProject()
	project.BudgetCents = 0
	f := newCompletionFixture(approvedPitch(), project)

	var gotPayment string
	f.pitchRepo.markCompletedFunc = func(ctx context.Context, id int64, completedAt time.Time, feedback string, rating *int, paymentStatus string) (bool, error) {
		gotPayment = paymentStatus
		return true, nil
	}

	_, err := f.service.Complete(context.Background(), 10, 200, "", nil)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if gotPayment != entity.PaymentStatusNotRequired {
		t.Errorf("payment status = %q, want NOT_REQUIRED", gotPayment)
	}
	if len(f.payoutRepo.created) != 0 {
		t.Errorf("created %d payout schedules on a zero budget", len(f.payoutRepo.created))
	}
}

func TestCompletionService_Complete_LostRace(t *testing.T) {
	f := newCompletionFixture(approvedPitch(), standardProject())
	f.pitchRepo.markCompletedFunc = func(ctx context.Context, id int64, completedAt time.Time, feedback string, rating *int, paymentStatus string) (bool, error) {
		return false, nil
	}

	_, err := f.service.Complete(context.Background(), 10, 200, "", nil)

	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("Complete() error = %v, want ErrInvalidState", err)
	}
	if len(f.eventRepo.pitchEvents) != 0 {
		t.Errorf("recorded %d events after a lost race", len(f.eventRepo.pitchEvents))
	}
	if len(f.notifier.sent) != 0 {
		t.Errorf("sent %d notifications after a lost race", len(f.notifier.sent))
	}
}

func TestCompletionService_Complete_NotificationFailureIsSwallowed(t *testing.T) {
	f := newCompletionFixture(approvedPitch(), standardProject())
	f.notifier.notifyFunc = func(ctx context.Context, kind string, recipientUserID int64, subject port.NotificationSubject, payload map[string]interface{}) error {
		return errors.New("smtp down")
	}

	_, err := f.service.Complete(context.Background(), 10, 200, "", nil)
	if err != nil {
		t.Errorf("Complete() error = %v, notification failures must not surface", err)
	}
}

func TestCompletionService_Complete_ClientProjectGetsPortalLink(t *testing.T) {
	clientID := int64(300)
	project := standardProject()
	project.Kind = entity.ProjectKindClient
	project.ClientUserID = &clientID
	f := newCompletionFixture(approvedPitch(), project)

	_, err := f.service.Complete(context.Background(), 10, 200, "", nil)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	var portalNotice *sentNotification
	for i := range f.notifier.sent {
		if f.notifier.sent[i].kind == entity.NotificationKindClientPortal {
			portalNotice = &f.notifier.sent[i]
		}
	}
	if portalNotice == nil {
		t.Fatalf("no client portal notification sent")
	}
	if portalNotice.recipient != clientID {
		t.Errorf("portal notice recipient = %d, want %d", portalNotice.recipient, clientID)
	}
	if portalNotice.payload["portal_link"] != "http://portal.example/token" {
		t.Errorf("portal notice payload = %+v, missing portal link", portalNotice.payload)
	}
}

func TestCompletionService_Complete_TransactionFailureIsDependencyError(t *testing.T) {
	f := newCompletionFixture(approvedPitch(), standardProject())
	f.eventRepo.createPitchEventFunc = func(ctx context.Context, event *entity.PitchEvent) error {
		return errors.New("disk full")
	}

	_, err := f.service.Complete(context.Background(), 10, 200, "", nil)

	if !errors.Is(err, ErrDependencyFailure) {
		t.Errorf("Complete() error = %v, want ErrDependencyFailure", err)
	}
}
