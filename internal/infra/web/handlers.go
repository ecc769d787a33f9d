package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/metrics"
	"github.com/Abdelmagid1892/translation-office-app/internal/infra/redis"
)

// ===== JSON plumbing =====

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps domain errors onto HTTP statuses. Anything unrecognized is
// a 500 and must not leak internals to the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrStaleQuote),
		errors.Is(err, domain.ErrNotEligible),
		errors.Is(err, domain.ErrAlreadyInvoiced),
		errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateNotFound),
		errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCollaboratorUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrLockNotAcquired):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

// ===== Response views =====

type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

func newUserView(u *model.User) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email, Role: string(u.Role)}
}

type jobView struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"client_id"`
	SourceLanguage string     `json:"source_language"`
	TargetLanguage string     `json:"target_language"`
	State          string     `json:"state"`
	WordCount      int        `json:"word_count"`
	OriginalName   string     `json:"original_name"`
	TranslatorID   *string    `json:"translator_id,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	ManagerComment string     `json:"manager_comment,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func newJobView(j *model.Job) jobView {
	return jobView{
		ID:             j.ID,
		ClientID:       j.ClientID,
		SourceLanguage: j.SourceLanguage,
		TargetLanguage: j.TargetLanguage,
		State:          string(j.State),
		WordCount:      j.WordCount,
		OriginalName:   j.OriginalName,
		TranslatorID:   j.TranslatorID,
		DueDate:        j.DueDate,
		Notes:          j.Notes,
		ManagerComment: j.ManagerComment,
		DeliveredAt:    j.DeliveredAt,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

type quoteView struct {
	ID            string     `json:"id"`
	JobID         string     `json:"job_id"`
	WordCount     int        `json:"word_count"`
	PerWordMicros int64      `json:"per_word_micros"`
	Currency      string     `json:"currency"`
	TotalCents    int64      `json:"total_cents"`
	Total         string     `json:"total"`
	Superseded    bool       `json:"superseded"`
	Approved      bool       `json:"approved"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func newQuoteView(q *model.Quote) quoteView {
	return quoteView{
		ID:            q.ID,
		JobID:         q.JobID,
		WordCount:     q.WordCount,
		PerWordMicros: q.PerWordMicros,
		Currency:      q.Currency,
		TotalCents:    q.TotalCents,
		Total:         model.FormatCents(q.TotalCents),
		Superseded:    q.Superseded,
		Approved:      q.Approved,
		ApprovedAt:    q.ApprovedAt,
		CreatedAt:     q.CreatedAt,
	}
}

type invoiceView struct {
	ID          string    `json:"id"`
	Number      int64     `json:"number"`
	JobID       string    `json:"job_id"`
	AmountCents int64     `json:"amount_cents"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	IssuedAt    time.Time `json:"issued_at"`
	PDFReady    bool      `json:"pdf_ready"`
}

func newInvoiceView(in *model.Invoice) invoiceView {
	return invoiceView{
		ID:          in.ID,
		Number:      in.Number,
		JobID:       in.JobID,
		AmountCents: in.AmountCents,
		Amount:      model.FormatCents(in.AmountCents),
		Currency:    in.Currency,
		IssuedAt:    in.IssuedAt,
		PDFReady:    in.PDFHandle != "",
	}
}

type messageView struct {
	ID         string    `json:"id"`
	JobID      string    `json:"job_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	SenderRole string    `json:"sender_role"`
	Body       string    `json:"body"`
	Seq        int64     `json:"seq"`
	CreatedAt  time.Time `json:"created_at"`
}

func newMessageView(m *model.ChatMessage) messageView {
	return messageView{
		ID:         m.ID,
		JobID:      m.JobID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		SenderRole: string(m.SenderRole),
		Body:       m.Body,
		Seq:        m.Seq,
		CreatedAt:  m.CreatedAt,
	}
}

// ===== Auth handlers =====

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := s.userUC.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.fail(w, err)
		return
	}
	token, err := s.auth.Mint(w, user)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": newUserView(user), "token": token})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if s.limiter != nil {
		ok, err := s.limiter.Allow(r.Context(), redis.LoginKey(req.Username), loginAttemptsPerMinute, time.Minute)
		if err != nil {
			s.log.Warn().Err(err).Msg("login rate limiter unavailable, allowing")
		} else if !ok {
			writeError(w, http.StatusTooManyRequests, "too many login attempts")
			return
		}
	}
	user, err := s.userUC.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		// Do not distinguish unknown user from bad password.
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := s.auth.Mint(w, user)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": newUserView(user), "token": token})
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	s.auth.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// ===== Intake =====

func (s *Server) submitRequestHandler(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r.Context())
	if s.limiter != nil {
		ok, err := s.limiter.Allow(r.Context(), redis.UploadKey(actor.UserID), uploadsPerHour, time.Hour)
		if err == nil && !ok {
			writeError(w, http.StatusTooManyRequests, "upload limit reached")
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "document file is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read upload")
		return
	}

	source := r.FormValue("source_language")
	target := r.FormValue("target_language")
	job, quote, err := s.intakeUC.Submit(r.Context(), actor.UserID, source, target, header.Filename, data)
	if err != nil {
		// The draft survives a missing rate so the client keeps the job id.
		if errors.Is(err, domain.ErrRateNotFound) && job != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error": err.Error(),
				"job":   newJobView(job),
			})
			return
		}
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"job":   newJobView(job),
		"quote": newQuoteView(quote),
	})
}

// ===== Jobs =====

func (s *Server) listJobsHandler(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.jobUC.ListForActor(r.Context(), actorFrom(r.Context()))
	if err != nil {
		s.fail(w, err)
		return
	}
	views := make([]jobView, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, newJobView(j))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": views})
}

func (s *Server) getJobHandler(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobUC.Get(r.Context(), chi.URLParam(r, "id"), actorFrom(r.Context()))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newJobView(job))
}

type assignRequest struct {
	TranslatorID string `json:"translator_id"`
	DueDate      string `json:"due_date,omitempty"` // RFC 3339
	Notes        string `json:"notes,omitempty"`
}

func (s *Server) assignJobHandler(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var due *time.Time
	if req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "due_date must be RFC 3339")
			return
		}
		due = &t
	}
	job, err := s.jobUC.Assign(r.Context(), chi.URLParam(r, "id"), req.TranslatorID, due, req.Notes, actorFrom(r.Context()))
	observeTransition(model.JobStateAssigned, err)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newJobView(job))
}

func (s *Server) startJobHandler(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobUC.Start(r.Context(), chi.URLParam(r, "id"), actorFrom(r.Context()))
	observeTransition(model.JobStateInProgress, err)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newJobView(job))
}

func (s *Server) deliverJobHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
		return
	}
	var (
		filename string
		data     []byte
	)
	if file, header, err := r.FormFile("document"); err == nil {
		defer file.Close()
		filename = header.Filename
		if data, err = io.ReadAll(file); err != nil {
			writeError(w, http.StatusBadRequest, "could not read upload")
			return
		}
	}
	translated := r.FormValue("translated_text")

	job, numbers, err := s.jobUC.Deliver(r.Context(), chi.URLParam(r, "id"), filename, data, translated, actorFrom(r.Context()))
	observeTransition(model.JobStateDelivered, err)
	if err != nil {
		s.fail(w, err)
		return
	}
	body := map[string]any{"job": newJobView(job)}
	if !numbers.Match {
		body["numeric_warning"] = numbers
	}
	writeJSON(w, http.StatusOK, body)
}

type commentRequest struct {
	Comment string `json:"comment,omitempty"`
}

func (s *Server) acceptJobHandler(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	job, err := s.jobUC.Accept(r.Context(), chi.URLParam(r, "id"), req.Comment, actorFrom(r.Context()))
	observeTransition(model.JobStateAccepted, err)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newJobView(job))
}

func (s *Server) returnJobHandler(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	job, err := s.jobUC.Return(r.Context(), chi.URLParam(r, "id"), req.Comment, actorFrom(r.Context()))
	observeTransition(model.JobStateReturned, err)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newJobView(job))
}

// ===== Quotes =====

func (s *Server) activeQuoteHandler(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	// Visibility check rides on the job lookup.
	if _, err := s.jobUC.Get(r.Context(), jobID, actorFrom(r.Context())); err != nil {
		s.fail(w, err)
		return
	}
	quote, err := s.quoteUC.ActiveForJob(r.Context(), jobID)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuoteView(quote))
}

func (s *Server) quoteHistoryHandler(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	if _, err := s.jobUC.Get(r.Context(), jobID, actorFrom(r.Context())); err != nil {
		s.fail(w, err)
		return
	}
	quotes, err := s.quoteUC.HistoryForJob(r.Context(), jobID)
	if err != nil {
		s.fail(w, err)
		return
	}
	views := make([]quoteView, 0, len(quotes))
	for _, q := range quotes {
		views = append(views, newQuoteView(q))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": views})
}

func (s *Server) regenerateQuoteHandler(w http.ResponseWriter, r *http.Request) {
	quote, err := s.quoteUC.Generate(r.Context(), chi.URLParam(r, "id"), actorFrom(r.Context()))
	observeTransition(model.JobStateQuoted, err)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newQuoteView(quote))
}

func (s *Server) approveQuoteHandler(w http.ResponseWriter, r *http.Request) {
	approvedAt, err := s.quoteUC.Approve(r.Context(), chi.URLParam(r, "id"), actorFrom(r.Context()))
	observeTransition(model.JobStateApproved, err)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"approved_at": approvedAt})
}

func (s *Server) rejectQuoteHandler(w http.ResponseWriter, r *http.Request) {
	err := s.quoteUC.Reject(r.Context(), chi.URLParam(r, "id"), actorFrom(r.Context()))
	observeTransition(model.JobStateRejected, err)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== Invoices =====

func (s *Server) issueInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	invoice, err := s.invoiceUC.Issue(r.Context(), chi.URLParam(r, "id"), actorFrom(r.Context()))
	observeTransition(model.JobStateInvoiced, err)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newInvoiceView(invoice))
}

func (s *Server) getInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	invoice, err := s.invoiceUC.FindByJob(r.Context(), chi.URLParam(r, "id"), actorFrom(r.Context()))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newInvoiceView(invoice))
}

func (s *Server) renderInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	invoice, err := s.invoiceUC.RenderPDF(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newInvoiceView(invoice))
}

// ===== Chat =====

func (s *Server) listMessagesHandler(w http.ResponseWriter, r *http.Request) {
	afterSeq, _ := strconv.ParseInt(r.URL.Query().Get("after"), 10, 64)
	msgs, err := s.chatUC.List(r.Context(), chi.URLParam(r, "id"), afterSeq, actorFrom(r.Context()))
	if err != nil {
		s.fail(w, err)
		return
	}
	views := make([]messageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, newMessageView(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": views})
}

type postMessageRequest struct {
	Body string `json:"body"`
}

func (s *Server) postMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	msg, err := s.chatUC.Append(r.Context(), chi.URLParam(r, "id"), req.Body, actorFrom(r.Context()))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newMessageView(msg))
}

// ===== QA =====

func (s *Server) qaReviewHandler(w http.ResponseWriter, r *http.Request) {
	report, err := s.qaUC.Review(r.Context(), chi.URLParam(r, "id"), actorFrom(r.Context()))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ===== Rates =====

type rateView struct {
	ID             string    `json:"id"`
	SourceLanguage string    `json:"source_language"`
	TargetLanguage string    `json:"target_language"`
	PerWordMicros  int64     `json:"per_word_micros"`
	Currency       string    `json:"currency"`
	CreatedAt      time.Time `json:"created_at"`
}

func newRateView(rt *model.Rate) rateView {
	return rateView{
		ID:             rt.ID,
		SourceLanguage: rt.SourceLanguage,
		TargetLanguage: rt.TargetLanguage,
		PerWordMicros:  rt.PerWordMicros,
		Currency:       rt.Currency,
		CreatedAt:      rt.CreatedAt,
	}
}

type rateCreateRequest struct {
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	PerWordMicros  int64  `json:"per_word_micros"`
	Currency       string `json:"currency"`
}

func (s *Server) createRateHandler(w http.ResponseWriter, r *http.Request) {
	var req rateCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rate, err := s.rateUC.Create(r.Context(), req.SourceLanguage, req.TargetLanguage, req.PerWordMicros, req.Currency)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newRateView(rate))
}

func (s *Server) listRatesHandler(w http.ResponseWriter, r *http.Request) {
	rates, err := s.rateUC.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	views := make([]rateView, 0, len(rates))
	for _, rt := range rates {
		views = append(views, newRateView(rt))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": views})
}

func (s *Server) deleteRateHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.rateUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== Glossary =====

type termView struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newTermView(t *model.GlossaryTerm) termView {
	return termView{ID: t.ID, ClientID: t.ClientID, Source: t.Source, Target: t.Target, Notes: t.Notes, CreatedAt: t.CreatedAt}
}

type glossaryAddRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Notes  string `json:"notes,omitempty"`
}

// glossaryClientID resolves whose glossary is addressed: clients always get
// their own, managers may pass ?client_id=.
func glossaryClientID(r *http.Request) string {
	actor := actorFrom(r.Context())
	if actor.Role == model.RoleClient {
		return actor.UserID
	}
	return r.URL.Query().Get("client_id")
}

func (s *Server) addGlossaryTermHandler(w http.ResponseWriter, r *http.Request) {
	var req glossaryAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	clientID := glossaryClientID(r)
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "client_id is required")
		return
	}
	term, err := s.glossaryUC.Add(r.Context(), clientID, req.Source, req.Target, req.Notes)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTermView(term))
}

func (s *Server) listGlossaryHandler(w http.ResponseWriter, r *http.Request) {
	clientID := glossaryClientID(r)
	if clientID == "" {
		writeError(w, http.StatusBadRequest, "client_id is required")
		return
	}
	terms, err := s.glossaryUC.List(r.Context(), clientID)
	if err != nil {
		s.fail(w, err)
		return
	}
	views := make([]termView, 0, len(terms))
	for _, t := range terms {
		views = append(views, newTermView(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": views})
}

func (s *Server) deleteGlossaryTermHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.glossaryUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== Staff =====

func (s *Server) listTranslatorsHandler(w http.ResponseWriter, r *http.Request) {
	translators, err := s.userUC.ListTranslators(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	views := make([]userView, 0, len(translators))
	for _, u := range translators {
		views = append(views, newUserView(u))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": views})
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	users, byState, err := s.statsUC.Totals(ctx)
	if err != nil {
		s.fail(w, err)
		return
	}
	week, month, year, err := s.statsUC.Revenue(ctx)
	if err != nil {
		s.fail(w, err)
		return
	}
	states := make(map[string]int, len(byState))
	for state, n := range byState {
		states[string(state)] = n
		metrics.SetJobsByState(string(state), n)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_users":   users,
		"jobs_by_state": states,
		"revenue": map[string]string{
			"week":  model.FormatCents(week),
			"month": model.FormatCents(month),
			"year":  model.FormatCents(year),
		},
	})
}

func observeTransition(to model.JobState, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.IncJobTransition(string(to), outcome)
}
