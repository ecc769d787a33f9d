//go:build !integration

package web

import (
	"context"
	"sync"
	"time"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/usecase"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// --- canned entities ---

func testUser(id, username string, role model.Role) *model.User {
	return &model.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    time.Now(),
	}
}

func testJob(id, clientID string, state model.JobState) *model.Job {
	return &model.Job{
		ID:             id,
		ClientID:       clientID,
		SourceLanguage: "en",
		TargetLanguage: "de",
		State:          state,
		WordCount:      1000,
		OriginalName:   "contract.txt",
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func testQuote(id, jobID string) *model.Quote {
	return &model.Quote{
		ID:            id,
		JobID:         jobID,
		WordCount:     1000,
		PerWordMicros: 100_000,
		Currency:      "EUR",
		TotalCents:    10_000,
		CreatedAt:     time.Now(),
	}
}

// --- usecase mocks, one per interface, err hooks to force mapping paths ---

type mockUserUC struct {
	usecase.UserUseCase
	authErr     error
	translators []*model.User
}

func (m *mockUserUC) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if username == "taken" {
		return nil, domain.ErrAlreadyExists
	}
	return testUser("u-new", username, model.RoleClient), nil
}

func (m *mockUserUC) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	if m.authErr != nil {
		return nil, m.authErr
	}
	return testUser("u-1", username, model.RoleClient), nil
}

func (m *mockUserUC) ListTranslators(ctx context.Context) ([]*model.User, error) {
	return m.translators, nil
}

type mockIntakeUC struct {
	submitFn func(ctx context.Context, clientID, sourceLang, targetLang, filename string, data []byte) (*model.Job, *model.Quote, error)
}

func (m *mockIntakeUC) Submit(ctx context.Context, clientID, sourceLang, targetLang, filename string, data []byte) (*model.Job, *model.Quote, error) {
	return m.submitFn(ctx, clientID, sourceLang, targetLang, filename, data)
}

type mockJobUC struct {
	mu   sync.Mutex
	jobs map[string]*model.Job

	assignErr  error
	deliverErr error
	numbers    model.NumericCheck
}

func newMockJobUC(jobs ...*model.Job) *mockJobUC {
	m := &mockJobUC{jobs: map[string]*model.Job{}, numbers: model.NumericCheck{Match: true}}
	for _, j := range jobs {
		m.jobs[j.ID] = j
	}
	return m
}

func (m *mockJobUC) Get(ctx context.Context, jobID string, actor model.Actor) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !m.canView(job, actor) {
		return nil, domain.ErrForbidden
	}
	return job, nil
}

func (m *mockJobUC) ListForActor(ctx context.Context, actor model.Actor) ([]*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Job
	for _, j := range m.jobs {
		if m.canView(j, actor) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *mockJobUC) canView(job *model.Job, actor model.Actor) bool {
	switch actor.Role {
	case model.RoleManager, model.RoleAdmin:
		return true
	case model.RoleClient:
		return job.ClientID == actor.UserID
	case model.RoleTranslator:
		return job.TranslatorID != nil && *job.TranslatorID == actor.UserID
	}
	return false
}

func (m *mockJobUC) CanView(job *model.Job, actor model.Actor) bool { return m.canView(job, actor) }

func (m *mockJobUC) transition(jobID string, to model.JobState) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	job.State = to
	return job, nil
}

func (m *mockJobUC) Assign(ctx context.Context, jobID, translatorID string, dueDate *time.Time, notes string, actor model.Actor) (*model.Job, error) {
	if m.assignErr != nil {
		return nil, m.assignErr
	}
	job, err := m.transition(jobID, model.JobStateAssigned)
	if err != nil {
		return nil, err
	}
	job.TranslatorID = &translatorID
	job.DueDate = dueDate
	job.Notes = notes
	return job, nil
}

func (m *mockJobUC) Start(ctx context.Context, jobID string, actor model.Actor) (*model.Job, error) {
	return m.transition(jobID, model.JobStateInProgress)
}

func (m *mockJobUC) Deliver(ctx context.Context, jobID, filename string, fileBytes []byte, translatedText string, actor model.Actor) (*model.Job, model.NumericCheck, error) {
	if m.deliverErr != nil {
		return nil, model.NumericCheck{}, m.deliverErr
	}
	job, err := m.transition(jobID, model.JobStateDelivered)
	return job, m.numbers, err
}

func (m *mockJobUC) Accept(ctx context.Context, jobID, comment string, actor model.Actor) (*model.Job, error) {
	return m.transition(jobID, model.JobStateAccepted)
}

func (m *mockJobUC) Return(ctx context.Context, jobID, comment string, actor model.Actor) (*model.Job, error) {
	return m.transition(jobID, model.JobStateReturned)
}

type mockQuoteUC struct {
	usecase.QuoteUseCase
	approveErr error
	active     *model.Quote
}

func (m *mockQuoteUC) Approve(ctx context.Context, quoteID string, actor model.Actor) (time.Time, error) {
	if m.approveErr != nil {
		return time.Time{}, m.approveErr
	}
	return time.Now(), nil
}

func (m *mockQuoteUC) Reject(ctx context.Context, quoteID string, actor model.Actor) error {
	return m.approveErr
}

func (m *mockQuoteUC) ActiveForJob(ctx context.Context, jobID string) (*model.Quote, error) {
	if m.active == nil {
		return nil, domain.ErrNotFound
	}
	return m.active, nil
}

func (m *mockQuoteUC) HistoryForJob(ctx context.Context, jobID string) ([]*model.Quote, error) {
	if m.active == nil {
		return nil, nil
	}
	return []*model.Quote{m.active}, nil
}

type mockInvoiceUC struct {
	usecase.InvoiceUseCase
	issueErr error
	invoice  *model.Invoice
}

func (m *mockInvoiceUC) Issue(ctx context.Context, jobID string, actor model.Actor) (*model.Invoice, error) {
	if m.issueErr != nil {
		return nil, m.issueErr
	}
	return m.invoice, nil
}

func (m *mockInvoiceUC) FindByJob(ctx context.Context, jobID string, actor model.Actor) (*model.Invoice, error) {
	if m.invoice == nil {
		return nil, domain.ErrNotFound
	}
	return m.invoice, nil
}

type mockChatUC struct {
	mu       sync.Mutex
	messages map[string][]*model.ChatMessage

	appendErr error
}

func newMockChatUC() *mockChatUC {
	return &mockChatUC{messages: map[string][]*model.ChatMessage{}}
}

func (m *mockChatUC) Append(ctx context.Context, jobID, body string, actor model.Actor) (*model.ChatMessage, error) {
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := &model.ChatMessage{
		ID:         "msg",
		JobID:      jobID,
		SenderID:   actor.UserID,
		SenderRole: actor.Role,
		Body:       model.SanitizeMessage(body),
		Seq:        int64(len(m.messages[jobID]) + 1),
		CreatedAt:  time.Now(),
	}
	m.messages[jobID] = append(m.messages[jobID], msg)
	return msg, nil
}

func (m *mockChatUC) List(ctx context.Context, jobID string, afterSeq int64, actor model.Actor) ([]*model.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.ChatMessage
	for _, msg := range m.messages[jobID] {
		if msg.Seq > afterSeq {
			out = append(out, msg)
		}
	}
	return out, nil
}

type mockQAUC struct {
	usecase.QAUseCase
	report *usecase.QAReport
}

func (m *mockQAUC) Review(ctx context.Context, jobID string, actor model.Actor) (*usecase.QAReport, error) {
	if m.report == nil {
		return nil, domain.ErrNotFound
	}
	return m.report, nil
}

type mockRateUC struct {
	mu    sync.Mutex
	rates map[string]*model.Rate
}

func newMockRateUC() *mockRateUC { return &mockRateUC{rates: map[string]*model.Rate{}} }

func (m *mockRateUC) Create(ctx context.Context, sourceLang, targetLang string, perWordMicros int64, currency string) (*model.Rate, error) {
	rate, err := model.NewRate("r-"+sourceLang+targetLang, sourceLang, targetLang, perWordMicros, currency)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rates[rate.ID]; ok {
		return nil, domain.ErrAlreadyExists
	}
	m.rates[rate.ID] = rate
	return rate, nil
}

func (m *mockRateUC) List(ctx context.Context) ([]*model.Rate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Rate, 0, len(m.rates))
	for _, r := range m.rates {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRateUC) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rates[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rates, id)
	return nil
}

type mockGlossaryUC struct {
	mu    sync.Mutex
	terms []*model.GlossaryTerm
}

func (m *mockGlossaryUC) Add(ctx context.Context, clientID, source, target, notes string) (*model.GlossaryTerm, error) {
	term, err := model.NewGlossaryTerm("t-1", clientID, source, target, notes)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.terms = append(m.terms, term)
	return term, nil
}

func (m *mockGlossaryUC) List(ctx context.Context, clientID string) ([]*model.GlossaryTerm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.GlossaryTerm
	for _, t := range m.terms {
		if t.ClientID == clientID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockGlossaryUC) Delete(ctx context.Context, id string) error { return nil }

type mockStatsUC struct{}

func (mockStatsUC) Totals(ctx context.Context) (int, map[model.JobState]int, error) {
	return 3, map[model.JobState]int{model.JobStateQuoted: 2, model.JobStateInvoiced: 1}, nil
}

func (mockStatsUC) Revenue(ctx context.Context) (int64, int64, int64, error) {
	return 10_000, 20_000, 30_000, nil
}

// denyLimiter rejects everything; for throttle tests.
type denyLimiter struct{}

func (denyLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return false, nil
}
