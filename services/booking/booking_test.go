package booking_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	bookingRepo "stagelink/database/repository/booking"
	"stagelink/models"
	"stagelink/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// --- in-memory fakes ---

type fakeBookingRepo struct {
	mu         sync.Mutex
	bookings   map[string]models.Booking
	failCreate error
	failUpdate error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *fakeBookingRepo) CreateBatch(ctx context.Context, bookings []models.Booking) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return nil, r.failCreate
	}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return bookings, nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	out := b
	return &out, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id string, version int64, status models.BookingStatus, set bson.M) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate != nil {
		return nil, r.failUpdate
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	if b.Version != version {
		return nil, bookingRepo.ErrVersionConflict
	}
	b.Status = status
	for k, v := range set {
		switch k {
		case "decided_by":
			b.DecidedBy = v.(string)
		case "eta_minutes":
			b.EtaMinutes = v.(int)
		case "total_cost":
			b.TotalCost = v.(float64)
		case "deposit_amount":
			b.DepositAmount = v.(float64)
		case "deposit_ref":
			b.DepositRef = v.(string)
		case "verified_by":
			b.VerifiedBy = v.(string)
		case "verified_at":
			at := v.(time.Time)
			b.VerifiedAt = &at
		case "performer_id":
			b.PerformerID = v.(string)
		case "performer_reassigned_from_id":
			b.ReassignedFromID = v.(string)
		case "status":
			b.Status = v.(models.BookingStatus)
		}
	}
	b.Version++
	r.bookings[id] = b
	out := b
	return &out, nil
}

func (r *fakeBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	all, _ := r.ListAll(ctx)
	out := make([]models.Booking, 0)
	for _, b := range all {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByPerformer(ctx context.Context, performerID string) ([]models.Booking, error) {
	all, _ := r.ListAll(ctx)
	out := make([]models.Booking, 0)
	for _, b := range all {
		if b.PerformerID == performerID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeRateCardRepo struct {
	services map[string]models.Service
}

func (r *fakeRateCardRepo) ListAll(ctx context.Context) ([]models.Service, error) {
	out := make([]models.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeRateCardRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakePerformerRepo struct {
	performers map[string]models.Performer
}

func (r *fakePerformerRepo) GetByID(ctx context.Context, id string) (*models.Performer, error) {
	p, ok := r.performers[id]
	if !ok {
		return nil, errors.New("performer not found")
	}
	out := p
	return &out, nil
}

func (r *fakePerformerRepo) ListAll(ctx context.Context) ([]models.Performer, error) {
	out := make([]models.Performer, 0, len(r.performers))
	for _, p := range r.performers {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePerformerRepo) Create(ctx context.Context, p *models.Performer) error {
	r.performers[p.ID] = *p
	return nil
}

func (r *fakePerformerRepo) UpdateStatus(ctx context.Context, id string, status models.PerformerStatus) (*models.Performer, error) {
	p, ok := r.performers[id]
	if !ok {
		return nil, errors.New("performer not found")
	}
	p.Status = status
	r.performers[id] = p
	return &p, nil
}

func (r *fakePerformerRepo) UpdateProfile(ctx context.Context, id string, set bson.M) (*models.Performer, error) {
	p, ok := r.performers[id]
	if !ok {
		return nil, errors.New("performer not found")
	}
	return &p, nil
}

type fakeGuard struct {
	blocked bool
	err     error
}

func (g *fakeGuard) IsBlocked(ctx context.Context, name, email, phone string) (bool, error) {
	return g.blocked, g.err
}

type fakeNotifier struct {
	mu    sync.Mutex
	comms []models.Communication
	notes []models.Communication
}

func (n *fakeNotifier) Notify(ctx context.Context, b *models.Booking, comms []models.Communication) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.comms = append(n.comms, comms...)
	return nil
}

func (n *fakeNotifier) NotifyAdminNote(ctx context.Context, comm models.Communication) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, comm)
	return nil
}

func (n *fakeNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.comms = nil
	n.notes = nil
}

func (n *fakeNotifier) recipients() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.comms))
	for _, c := range n.comms {
		out = append(out, c.Recipient)
	}
	return out
}

type fakeScheduler struct {
	prompts   []string
	reminders []string
}

func (s *fakeScheduler) SchedulePerformerPrompt(bookingID string, delay time.Duration) error {
	s.prompts = append(s.prompts, bookingID)
	return nil
}

func (s *fakeScheduler) ScheduleEventReminder(bookingID string, at time.Time) error {
	s.reminders = append(s.reminders, bookingID)
	return nil
}

// --- test harness ---

type harness struct {
	svc       *booking.DefaultBookingService
	repo      *fakeBookingRepo
	guard     *fakeGuard
	notifier  *fakeNotifier
	scheduler *fakeScheduler
}

func newHarness() *harness {
	repo := newFakeBookingRepo()
	guard := &fakeGuard{}
	notifier := &fakeNotifier{}
	scheduler := &fakeScheduler{}

	rateCard := &fakeRateCardRepo{services: map[string]models.Service{
		"A": {ID: "A", Rate: 100, RateType: models.RateFlat},
		"B": {ID: "B", Rate: 50, RateType: models.RatePerHour, MinDurationHours: 2},
	}}
	performers := &fakePerformerRepo{performers: map[string]models.Performer{
		"perf-1": {ID: "perf-1", Name: "Luna", Phone: "+111", Status: models.PerformerAvailable},
		"perf-2": {ID: "perf-2", Name: "Rex", Phone: "+222", Status: models.PerformerAvailable},
	}}

	svc := &booking.DefaultBookingService{
		Repo:          repo,
		RateCard:      rateCard,
		PerformerRepo: performers,
		Guard:         guard,
		Notifier:      notifier,
		Scheduler:     scheduler,
		Logger:        zap.NewNop(),
	}
	return &harness{svc: svc, repo: repo, guard: guard, notifier: notifier, scheduler: scheduler}
}

func validRequest() booking.CreateBookingRequest {
	return booking.CreateBookingRequest{
		ClientName:    "Dana Cole",
		ClientEmail:   "dana@example.com",
		ClientPhone:   "+1 555 0100",
		Date:          "2026-10-01",
		Time:          "20:00",
		Address:       "12 Harbor Lane",
		EventType:     "birthday",
		DurationHours: 3,
		GuestCount:    25,
		ServiceIDs:    []string{"A", "B"},
		PerformerIDs:  []string{"perf-1"},
	}
}

// --- creation ---

func TestCreate_FansOutPerPerformer(t *testing.T) {
	h := newHarness()
	req := validRequest()
	req.PerformerIDs = []string{"perf-1", "perf-2"}

	created, err := h.svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.NotEqual(t, created[0].ID, created[1].ID)
	assert.NotEqual(t, created[0].PerformerID, created[1].PerformerID)
	assert.Equal(t, created[0].ClientEmail, created[1].ClientEmail)
	for _, b := range created {
		assert.Equal(t, models.StatusPendingPerformerAcceptance, b.Status)
		// 50 * 3h * 2 performers + 100 flat.
		assert.Equal(t, 400.0, b.TotalCost)
		assert.Equal(t, 120.0, b.DepositAmount)
	}

	// One client receipt and one admin alert for the request; one prompt per line.
	assert.ElementsMatch(t, []string{models.RecipientUser, models.RecipientAdmin}, h.notifier.recipients())
	assert.Len(t, h.scheduler.prompts, 2)
}

func TestCreate_BlockedClientCreatesNothing(t *testing.T) {
	h := newHarness()
	h.guard.blocked = true

	created, err := h.svc.Create(context.Background(), validRequest())
	require.Error(t, err)
	assert.Nil(t, created)
	assert.Equal(t, booking.CodeAdmission, booking.CodeOf(err))

	remaining, _ := h.repo.ListAll(context.Background())
	assert.Empty(t, remaining)
	assert.Empty(t, h.notifier.recipients())
}

func TestCreate_ValidatesEventFacts(t *testing.T) {
	h := newHarness()

	req := validRequest()
	req.DurationHours = 0
	_, err := h.svc.Create(context.Background(), req)
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))

	req = validRequest()
	req.GuestCount = -1
	_, err = h.svc.Create(context.Background(), req)
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))

	req = validRequest()
	req.ServiceIDs = []string{"does-not-exist"}
	_, err = h.svc.Create(context.Background(), req)
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
}

// --- performer decision ---

func createOne(t *testing.T, h *harness) models.Booking {
	t.Helper()
	created, err := h.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	require.Len(t, created, 1)
	h.notifier.reset()
	return created[0]
}

func TestPerformerDecide_StandardPathGoesToVetting(t *testing.T) {
	h := newHarness()
	b := createOne(t, h)

	updated, err := h.svc.PerformerDecide(context.Background(), b.ID, booking.DecisionAccept, 15)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingVetting, updated.Status)
	assert.Equal(t, 15, updated.EtaMinutes)
	assert.Equal(t, models.DecidedByPerformer, updated.DecidedBy)

	assert.ElementsMatch(t,
		[]string{b.PerformerID, models.RecipientAdmin, models.RecipientUser},
		h.notifier.recipients())
}

func TestPerformerDecide_VerifiedBookerSkipsVetting(t *testing.T) {
	h := newHarness()

	// An earlier confirmed booking for the same client, matched by email with
	// different casing.
	h.repo.bookings["prior"] = models.Booking{
		ID:          "prior",
		ClientEmail: "DANA@Example.com",
		ClientPhone: "+1555...",
		Status:      models.StatusConfirmed,
		Version:     1,
	}

	b := createOne(t, h)
	updated, err := h.svc.PerformerDecide(context.Background(), b.ID, booking.DecisionAccept, 0)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDepositPending, updated.Status)
	assert.ElementsMatch(t,
		[]string{b.PerformerID, models.RecipientAdmin, models.RecipientUser},
		h.notifier.recipients())
}

func TestPerformerDecide_PhoneMatchAlsoVerifies(t *testing.T) {
	h := newHarness()
	h.repo.bookings["prior"] = models.Booking{
		ID:          "prior",
		ClientEmail: "someone-else@example.com",
		ClientPhone: "+15550100", // same digits, different spacing than the request
		Status:      models.StatusConfirmed,
		Version:     1,
	}

	b := createOne(t, h)
	updated, err := h.svc.PerformerDecide(context.Background(), b.ID, booking.DecisionAccept, 0)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDepositPending, updated.Status)
}

func TestPerformerDecide_DeclineIsTerminal(t *testing.T) {
	h := newHarness()
	b := createOne(t, h)

	updated, err := h.svc.PerformerDecide(context.Background(), b.ID, booking.DecisionDecline, 0)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, updated.Status)

	// No transition leaves rejected.
	_, err = h.svc.AdminDecideVetting(context.Background(), b.ID, true)
	assert.Equal(t, booking.CodeConflict, booking.CodeOf(err))
	_, err = h.svc.AdminConfirmDeposit(context.Background(), b.ID, "Ops")
	assert.Equal(t, booking.CodeConflict, booking.CodeOf(err))
}

// --- vetting ---

func acceptedStandard(t *testing.T, h *harness) models.Booking {
	t.Helper()
	b := createOne(t, h)
	updated, err := h.svc.PerformerDecide(context.Background(), b.ID, booking.DecisionAccept, 0)
	require.NoError(t, err)
	require.Equal(t, models.StatusPendingVetting, updated.Status)
	h.notifier.reset()
	return *updated
}

func TestAdminDecideVetting_ApproveQuotesDeposit(t *testing.T) {
	h := newHarness()
	b := acceptedStandard(t, h)

	updated, err := h.svc.AdminDecideVetting(context.Background(), b.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDepositPending, updated.Status)
	assert.Equal(t, 250.0, updated.TotalCost) // 100 flat + 50*3h*1 performer
	assert.Equal(t, 75.0, updated.DepositAmount)

	assert.ElementsMatch(t,
		[]string{models.RecipientUser, b.PerformerID},
		h.notifier.recipients())
}

func TestAdminDecideVetting_RejectCloses(t *testing.T) {
	h := newHarness()
	b := acceptedStandard(t, h)

	updated, err := h.svc.AdminDecideVetting(context.Background(), b.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, updated.Status)
}

func TestAdminDecideVetting_FailsClosedFromWrongState(t *testing.T) {
	h := newHarness()
	b := createOne(t, h) // still pending performer acceptance

	_, err := h.svc.AdminDecideVetting(context.Background(), b.ID, true)
	assert.Equal(t, booking.CodeConflict, booking.CodeOf(err))

	reloaded, _ := h.repo.GetByID(context.Background(), b.ID)
	assert.Equal(t, models.StatusPendingPerformerAcceptance, reloaded.Status)
}

// --- deposit ---

func depositPending(t *testing.T, h *harness) models.Booking {
	t.Helper()
	b := acceptedStandard(t, h)
	updated, err := h.svc.AdminDecideVetting(context.Background(), b.ID, true)
	require.NoError(t, err)
	h.notifier.reset()
	return *updated
}

func TestClientConfirmDeposit_StampsReceipt(t *testing.T) {
	h := newHarness()
	b := depositPending(t, h)

	updated, err := h.svc.ClientConfirmDeposit(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingDepositConfirmation, updated.Status)
	assert.True(t, strings.HasPrefix(updated.DepositRef, "DEP-"))

	assert.Equal(t, []string{models.RecipientAdmin}, h.notifier.recipients())
}

func TestAdminConfirmDeposit_ConfirmsAndFansOut(t *testing.T) {
	h := newHarness()
	b := depositPending(t, h)
	_, err := h.svc.ClientConfirmDeposit(context.Background(), b.ID)
	require.NoError(t, err)
	h.notifier.reset()

	updated, err := h.svc.AdminConfirmDeposit(context.Background(), b.ID, "Morgan")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	assert.Equal(t, "Morgan", updated.VerifiedBy)
	require.NotNil(t, updated.VerifiedAt)

	// Client, performer, and admin each get one record linked to the booking.
	require.GreaterOrEqual(t, len(h.notifier.comms), 3)
	assert.ElementsMatch(t,
		[]string{models.RecipientUser, b.PerformerID, models.RecipientAdmin},
		h.notifier.recipients())
	for _, c := range h.notifier.comms {
		assert.Equal(t, b.ID, c.BookingID)
	}

	// The performer-facing confirmation is the privacy gate: it carries the
	// client's phone and address for the first time.
	var performerMsg string
	for _, c := range h.notifier.comms {
		if c.Recipient == b.PerformerID {
			performerMsg = c.Message
		}
	}
	assert.Contains(t, performerMsg, "+1 555 0100")
	assert.Contains(t, performerMsg, "12 Harbor Lane")

	assert.Equal(t, []string{b.ID}, h.scheduler.reminders)
}

// --- admin reject / reassign / override ---

func TestAdminReject_FromAnyNonTerminalState(t *testing.T) {
	h := newHarness()
	b := depositPending(t, h)

	updated, err := h.svc.AdminReject(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, updated.Status)

	// Terminal: a second rejection fails closed.
	_, err = h.svc.AdminReject(context.Background(), b.ID)
	assert.Equal(t, booking.CodeConflict, booking.CodeOf(err))
}

func TestAdminReassignPerformer_RestartsAcceptance(t *testing.T) {
	h := newHarness()
	b := depositPending(t, h)

	updated, err := h.svc.AdminReassignPerformer(context.Background(), b.ID, "perf-2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingPerformerAcceptance, updated.Status)
	assert.Equal(t, "perf-2", updated.PerformerID)
	assert.Equal(t, "perf-1", updated.ReassignedFromID)

	// Admin audit, client, old performer, new performer.
	assert.ElementsMatch(t,
		[]string{models.RecipientAdmin, models.RecipientUser, "perf-1", "perf-2"},
		h.notifier.recipients())
	assert.Contains(t, h.scheduler.prompts, b.ID)
}

func TestAdminReassignPerformer_RejectedBookingStaysClosed(t *testing.T) {
	h := newHarness()
	b := createOne(t, h)
	_, err := h.svc.AdminReject(context.Background(), b.ID)
	require.NoError(t, err)

	_, err = h.svc.AdminReassignPerformer(context.Background(), b.ID, "perf-2")
	assert.Equal(t, booking.CodeConflict, booking.CodeOf(err))
}

func TestAdminOverrideForPerformer_RecordsOverride(t *testing.T) {
	h := newHarness()
	b := createOne(t, h)

	updated, err := h.svc.AdminOverrideForPerformer(context.Background(), b.ID, booking.DecisionAccept, 0)
	require.NoError(t, err)
	assert.Equal(t, models.DecidedByAdminOverride, updated.DecidedBy)

	// The override adds an admin-authored note on top of the regular fan-out.
	adminNotes := 0
	for _, c := range h.notifier.comms {
		if c.Type == models.CommAdminNote && c.Recipient == models.RecipientAdmin {
			adminNotes++
		}
	}
	assert.Equal(t, 1, adminNotes)
}

// --- concurrency ---

func TestTransition_VersionConflictSurfacesAsRetryable(t *testing.T) {
	h := newHarness()
	b := createOne(t, h)

	h.repo.failUpdate = bookingRepo.ErrVersionConflict
	_, err := h.svc.PerformerDecide(context.Background(), b.ID, booking.DecisionAccept, 0)
	assert.Equal(t, booking.CodeConflict, booking.CodeOf(err))

	h.repo.failUpdate = errors.New("network down")
	_, err = h.svc.PerformerDecide(context.Background(), b.ID, booking.DecisionAccept, 0)
	assert.Equal(t, booking.CodeBackend, booking.CodeOf(err))
}
