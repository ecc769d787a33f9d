//go:build !integration

package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/repository"
	"github.com/Abdelmagid1892/translation-office-app/internal/usecase"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// =============================
// Transaction manager / locker
// =============================

type MockTxManager struct{}

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

func (m *MockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

// MockLocker hands out per-key mutexes so lock semantics hold in-process.
type MockLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMockLocker() *MockLocker { return &MockLocker{locks: make(map[string]*sync.Mutex)} }

func (l *MockLocker) TryLock(_ context.Context, key string, _ time.Duration) (string, error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()
	m.Lock()
	return "token", nil
}

func (l *MockLocker) Unlock(_ context.Context, key, _ string) error {
	l.mu.Lock()
	m := l.locks[key]
	l.mu.Unlock()
	if m != nil {
		m.Unlock()
	}
	return nil
}

// =============================
// Repositories
// =============================

type MockJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*model.Job
}

func NewMockJobRepo() *MockJobRepo { return &MockJobRepo{jobs: make(map[string]*model.Job)} }

func (r *MockJobRepo) Save(_ context.Context, _ repository.Tx, job *model.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *MockJobRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (r *MockJobRepo) list(filter func(*model.Job) bool) []*model.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Job
	for _, j := range r.jobs {
		if filter(j) {
			cp := *j
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.Before(out[k].CreatedAt) })
	return out
}

func (r *MockJobRepo) ListByClient(_ context.Context, _ repository.Tx, clientID string) ([]*model.Job, error) {
	return r.list(func(j *model.Job) bool { return j.ClientID == clientID }), nil
}

func (r *MockJobRepo) ListByTranslator(_ context.Context, _ repository.Tx, translatorID string) ([]*model.Job, error) {
	return r.list(func(j *model.Job) bool { return j.TranslatorID != nil && *j.TranslatorID == translatorID }), nil
}

func (r *MockJobRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.Job, error) {
	return r.list(func(*model.Job) bool { return true }), nil
}

func (r *MockJobRepo) ListByState(_ context.Context, _ repository.Tx, state model.JobState) ([]*model.Job, error) {
	return r.list(func(j *model.Job) bool { return j.State == state }), nil
}

func (r *MockJobRepo) ListDueWithin(_ context.Context, _ repository.Tx, hours int) ([]*model.Job, error) {
	deadline := time.Now().Add(time.Duration(hours) * time.Hour)
	return r.list(func(j *model.Job) bool {
		return j.DueDate != nil && j.DueDate.Before(deadline) && !model.IsTerminal(j.State)
	}), nil
}

func (r *MockJobRepo) CountByState(_ context.Context, _ repository.Tx) (map[model.JobState]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[model.JobState]int)
	for _, j := range r.jobs {
		out[j.State]++
	}
	return out, nil
}

type MockQuoteRepo struct {
	mu            sync.Mutex
	quotes        map[string]*model.Quote
	FindActiveErr error
}

func NewMockQuoteRepo() *MockQuoteRepo { return &MockQuoteRepo{quotes: make(map[string]*model.Quote)} }

func (r *MockQuoteRepo) Save(_ context.Context, _ repository.Tx, q *model.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *q
	r.quotes[q.ID] = &cp
	return nil
}

func (r *MockQuoteRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *MockQuoteRepo) FindActiveByJob(_ context.Context, _ repository.Tx, jobID string) (*model.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FindActiveErr != nil {
		return nil, r.FindActiveErr
	}
	for _, q := range r.quotes {
		if q.JobID == jobID && !q.Superseded {
			cp := *q
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MockQuoteRepo) ListByJob(_ context.Context, _ repository.Tx, jobID string) ([]*model.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Quote
	for _, q := range r.quotes {
		if q.JobID == jobID {
			cp := *q
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.Before(out[k].CreatedAt) })
	return out, nil
}

func (r *MockQuoteRepo) SupersedeActive(_ context.Context, _ repository.Tx, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.quotes {
		if q.JobID == jobID && !q.Superseded {
			q.Superseded = true
		}
	}
	return nil
}

type MockRateRepo struct {
	mu    sync.Mutex
	rates map[string]*model.Rate // keyed by pair
}

func NewMockRateRepo() *MockRateRepo { return &MockRateRepo{rates: make(map[string]*model.Rate)} }

func (r *MockRateRepo) Save(_ context.Context, _ repository.Tx, rate *model.Rate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rate
	r.rates[rate.Pair()] = &cp
	return nil
}

func (r *MockRateRepo) FindByPair(_ context.Context, _ repository.Tx, src, dst string) (*model.Rate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rate, ok := r.rates[model.LanguagePair(src, dst)]
	if !ok {
		return nil, domain.ErrRateNotFound
	}
	cp := *rate
	return &cp, nil
}

func (r *MockRateRepo) ListAll(_ context.Context, _ repository.Tx) ([]*model.Rate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Rate
	for _, rate := range r.rates {
		cp := *rate
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MockRateRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for pair, rate := range r.rates {
		if rate.ID == id {
			delete(r.rates, pair)
			return nil
		}
	}
	return domain.ErrNotFound
}

type MockDeliverableRepo struct {
	mu    sync.Mutex
	items []*model.Deliverable
}

func NewMockDeliverableRepo() *MockDeliverableRepo { return &MockDeliverableRepo{} }

func (r *MockDeliverableRepo) Save(_ context.Context, _ repository.Tx, d *model.Deliverable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.items = append(r.items, &cp)
	return nil
}

func (r *MockDeliverableRepo) FindLatestByJob(_ context.Context, _ repository.Tx, jobID string) (*model.Deliverable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].JobID == jobID {
			cp := *r.items[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MockDeliverableRepo) ListByJob(_ context.Context, _ repository.Tx, jobID string) ([]*model.Deliverable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Deliverable
	for _, d := range r.items {
		if d.JobID == jobID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

type MockUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func NewMockUserRepo() *MockUserRepo { return &MockUserRepo{users: make(map[string]*model.User)} }

func (r *MockUserRepo) Save(_ context.Context, _ repository.Tx, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *MockUserRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MockUserRepo) FindByUsername(_ context.Context, _ repository.Tx, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MockUserRepo) ListByRole(_ context.Context, _ repository.Tx, role model.Role) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.User
	for _, u := range r.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockUserRepo) CountAll(_ context.Context, _ repository.Tx) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

// mustAddUser seeds a user directly, bypassing registration.
func (r *MockUserRepo) mustAddUser(username string, role model.Role) *model.User {
	u := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    time.Now(),
	}
	_ = r.Save(context.Background(), repository.NoTX, u)
	return u
}

type MockAuditRepo struct {
	mu      sync.Mutex
	Entries []*model.AuditLog
}

func NewMockAuditRepo() *MockAuditRepo { return &MockAuditRepo{} }

func (r *MockAuditRepo) Save(_ context.Context, _ repository.Tx, e *model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, e)
	return nil
}

func (r *MockAuditRepo) ListByObject(_ context.Context, _ repository.Tx, objectType, objectID string) ([]*model.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.AuditLog
	for _, e := range r.Entries {
		if e.ObjectType == objectType && e.ObjectID == objectID {
			out = append(out, e)
		}
	}
	return out, nil
}

type MockChatRepo struct {
	mu       sync.Mutex
	messages map[string][]*model.ChatMessage
}

func NewMockChatRepo() *MockChatRepo {
	return &MockChatRepo{messages: make(map[string][]*model.ChatMessage)}
}

func (r *MockChatRepo) Append(_ context.Context, _ repository.Tx, msg *model.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg.Seq = int64(len(r.messages[msg.JobID])) + 1
	cp := *msg
	r.messages[msg.JobID] = append(r.messages[msg.JobID], &cp)
	return nil
}

func (r *MockChatRepo) ListByJob(_ context.Context, _ repository.Tx, jobID string, afterSeq int64) ([]*model.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.ChatMessage
	for _, m := range r.messages[jobID] {
		if m.Seq > afterSeq {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockChatRepo) LastSeq(_ context.Context, _ repository.Tx, jobID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.messages[jobID])), nil
}

type MockInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*model.Invoice // keyed by job id
	next     int64
}

func NewMockInvoiceRepo() *MockInvoiceRepo {
	return &MockInvoiceRepo{invoices: make(map[string]*model.Invoice)}
}

func (r *MockInvoiceRepo) Save(_ context.Context, _ repository.Tx, inv *model.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.invoices[inv.JobID]; exists {
		return domain.ErrAlreadyInvoiced
	}
	cp := *inv
	r.invoices[inv.JobID] = &cp
	return nil
}

func (r *MockInvoiceRepo) FindByJob(_ context.Context, _ repository.Tx, jobID string) (*model.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *MockInvoiceRepo) ListByClient(_ context.Context, _ repository.Tx, clientID string) ([]*model.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Invoice
	for _, inv := range r.invoices {
		if inv.ClientID == clientID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockInvoiceRepo) NextNumber(_ context.Context, _ repository.Tx) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	return r.next, nil
}

func (r *MockInvoiceRepo) SetPDFHandle(_ context.Context, _ repository.Tx, id, handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.ID == id {
			inv.PDFHandle = handle
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *MockInvoiceRepo) SumByPeriod(_ context.Context, _ repository.Tx, _ string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, inv := range r.invoices {
		sum += inv.AmountCents
	}
	return sum, nil
}

// Count reports how many invoices exist in total.
func (r *MockInvoiceRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.invoices)
}

type MockGlossaryRepo struct {
	mu    sync.Mutex
	terms map[string]*model.GlossaryTerm
}

func NewMockGlossaryRepo() *MockGlossaryRepo {
	return &MockGlossaryRepo{terms: make(map[string]*model.GlossaryTerm)}
}

func (r *MockGlossaryRepo) Save(_ context.Context, _ repository.Tx, t *model.GlossaryTerm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.terms[t.ID] = &cp
	return nil
}

func (r *MockGlossaryRepo) ListByClient(_ context.Context, _ repository.Tx, clientID string) ([]*model.GlossaryTerm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.GlossaryTerm
	for _, t := range r.terms {
		if t.ClientID == clientID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockGlossaryRepo) Delete(_ context.Context, _ repository.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.terms[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.terms, id)
	return nil
}

type MockNotificationLogRepo struct {
	mu      sync.Mutex
	Entries []*model.NotificationLog
}

func NewMockNotificationLogRepo() *MockNotificationLogRepo { return &MockNotificationLogRepo{} }

func (r *MockNotificationLogRepo) Save(_ context.Context, _ repository.Tx, e *model.NotificationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.Entries = append(r.Entries, &cp)
	return nil
}

func (r *MockNotificationLogRepo) ListByJob(_ context.Context, _ repository.Tx, jobID string) ([]*model.NotificationLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.NotificationLog
	for _, e := range r.Entries {
		if e.JobID == jobID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockNotificationLogRepo) ListFailed(_ context.Context, _ repository.Tx, limit int) ([]*model.NotificationLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.NotificationLog
	for _, e := range r.Entries {
		if e.Status != model.NotificationStatusFailed {
			continue
		}
		resolved := false
		for _, s := range r.Entries {
			if s.Status == model.NotificationStatusSent &&
				s.JobID == e.JobID && s.Recipient == e.Recipient && s.Template == e.Template &&
				s.CreatedAt.After(e.CreatedAt) {
				resolved = true
				break
			}
		}
		if resolved {
			continue
		}
		cp := *e
		out = append(out, &cp)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// =============================
// Adapters
// =============================

type MockStorage struct {
	mu    sync.Mutex
	files map[string][]byte
	Fail  bool
}

func NewMockStorage() *MockStorage { return &MockStorage{files: make(map[string][]byte)} }

func (s *MockStorage) Save(_ context.Context, name string, data []byte) (string, error) {
	if s.Fail {
		return "", domain.ErrCollaboratorUnavailable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	handle := fmt.Sprintf("mock://%s/%s", uuid.NewString(), name)
	s.files[handle] = data
	return handle, nil
}

func (s *MockStorage) Load(_ context.Context, handle string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[handle]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

type MockExtractor struct{}

func (MockExtractor) Extract(_ context.Context, data []byte, filename string) (string, int, error) {
	text := string(data)
	return text, model.CountWords(text), nil
}

type MockMail struct {
	mu   sync.Mutex
	Sent []string // "template->recipient"
	Fail bool
}

func NewMockMail() *MockMail { return &MockMail{} }

func (m *MockMail) Send(_ context.Context, templateID, recipient string, _ map[string]string) error {
	if m.Fail {
		return domain.ErrCollaboratorUnavailable
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, templateID+"->"+recipient)
	return nil
}

type MockRenderer struct{ Fail bool }

func (m MockRenderer) Render(_ context.Context, inv *model.Invoice, _ *model.Job, _ *model.User) ([]byte, error) {
	if m.Fail {
		return nil, domain.ErrCollaboratorUnavailable
	}
	return []byte(fmt.Sprintf("INVOICE %04d %s", inv.Number, model.FormatCents(inv.AmountCents))), nil
}

// MockQueue captures enqueued notifications synchronously.
type MockQueue struct {
	mu     sync.Mutex
	Queued []model.Notification
	Fail   bool
}

func NewMockQueue() *MockQueue { return &MockQueue{} }

func (q *MockQueue) Enqueue(n model.Notification) error {
	if q.Fail {
		return fmt.Errorf("queue full")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Queued = append(q.Queued, n)
	return nil
}

func (q *MockQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.Queued)
}

func (q *MockQueue) Last() model.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.Queued[len(q.Queued)-1]
}

// MockBroadcaster records pushed messages per job.
type MockBroadcaster struct {
	mu     sync.Mutex
	Pushed map[string][]*model.ChatMessage
}

func NewMockBroadcaster() *MockBroadcaster {
	return &MockBroadcaster{Pushed: make(map[string][]*model.ChatMessage)}
}

func (b *MockBroadcaster) Broadcast(jobID string, msg *model.ChatMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Pushed[jobID] = append(b.Pushed[jobID], msg)
}

// =============================
// Fixture helpers
// =============================

type fixture struct {
	jobs         *MockJobRepo
	quotes       *MockQuoteRepo
	rates        *MockRateRepo
	deliverables *MockDeliverableRepo
	users        *MockUserRepo
	audit        *MockAuditRepo
	chat         *MockChatRepo
	invoices     *MockInvoiceRepo
	glossary     *MockGlossaryRepo
	notifLogs    *MockNotificationLogRepo
	tm           *MockTxManager
	locker       *MockLocker
	storage      *MockStorage
	mail         *MockMail
	queue        *MockQueue

	client     *model.User
	manager    *model.User
	translator *model.User

	jobUC     usecase.JobUseCase
	quoteUC   usecase.QuoteUseCase
	invoiceUC usecase.InvoiceUseCase
	intakeUC  usecase.IntakeUseCase
}

func newFixture() *fixture {
	f := &fixture{
		jobs:         NewMockJobRepo(),
		quotes:       NewMockQuoteRepo(),
		rates:        NewMockRateRepo(),
		deliverables: NewMockDeliverableRepo(),
		users:        NewMockUserRepo(),
		audit:        NewMockAuditRepo(),
		chat:         NewMockChatRepo(),
		invoices:     NewMockInvoiceRepo(),
		glossary:     NewMockGlossaryRepo(),
		notifLogs:    NewMockNotificationLogRepo(),
		tm:           NewMockTxManager(),
		locker:       NewMockLocker(),
		storage:      NewMockStorage(),
		mail:         NewMockMail(),
		queue:        NewMockQueue(),
	}
	f.client = f.users.mustAddUser("client1", model.RoleClient)
	f.manager = f.users.mustAddUser("manager1", model.RoleManager)
	f.translator = f.users.mustAddUser("translator1", model.RoleTranslator)

	logger := testLogger()
	f.jobUC = usecase.NewJobUseCase(f.jobs, f.deliverables, f.users, f.audit, f.tm, f.locker, f.storage, f.queue, logger)
	f.quoteUC = usecase.NewQuoteUseCase(f.quotes, f.jobs, f.rates, f.audit, f.tm, f.locker, f.queue, logger)
	f.invoiceUC = usecase.NewInvoiceUseCase(f.invoices, f.quotes, f.jobs, f.users, f.audit, f.tm, f.locker, MockRenderer{}, f.storage, f.jobUC, f.queue, logger)
	f.intakeUC = usecase.NewIntakeUseCase(f.jobs, f.audit, f.tm, MockExtractor{}, f.storage, f.quoteUC, logger)
	return f
}

func (f *fixture) clientActor() model.Actor {
	return model.Actor{UserID: f.client.ID, Role: model.RoleClient}
}

func (f *fixture) managerActor() model.Actor {
	return model.Actor{UserID: f.manager.ID, Role: model.RoleManager}
}

func (f *fixture) translatorActor() model.Actor {
	return model.Actor{UserID: f.translator.ID, Role: model.RoleTranslator}
}

// seedRate registers a 0.10 EUR/word rate for en->de.
func (f *fixture) seedRate() {
	rate, _ := model.NewRate(uuid.NewString(), "en", "de", 100_000, "EUR")
	_ = f.rates.Save(context.Background(), repository.NoTX, rate)
}

// seedJob creates a job directly in the given state.
func (f *fixture) seedJob(state model.JobState, words int) *model.Job {
	job, _ := model.NewJob(uuid.NewString(), f.client.ID, "en", "de", "doc.txt")
	job.State = state
	job.WordCount = words
	if state != model.JobStateDraft && state != model.JobStateQuoted &&
		state != model.JobStateApproved && state != model.JobStateRejected {
		job.TranslatorID = &f.translator.ID
	}
	_ = f.jobs.Save(context.Background(), repository.NoTX, job)
	return job
}
