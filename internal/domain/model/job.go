package model

import (
	"time"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
)

type JobState string

const (
	JobStateDraft      JobState = "draft"
	JobStateQuoted     JobState = "quoted"
	JobStateApproved   JobState = "approved"
	JobStateRejected   JobState = "rejected"
	JobStateAssigned   JobState = "assigned"
	JobStateInProgress JobState = "in_progress"
	JobStateDelivered  JobState = "delivered"
	JobStateReturned   JobState = "returned"
	JobStateAccepted   JobState = "accepted"
	JobStateInvoiced   JobState = "invoiced"
)

// Transition is one edge of the job state graph.
type Transition struct {
	From JobState
	To   JobState
}

// transitionTable maps every legal edge to the role allowed to apply it.
// Anything absent from this table is rejected; permission checks live here
// rather than scattered through handlers.
var transitionTable = map[Transition]Role{
	{JobStateDraft, JobStateQuoted}:         RoleSystem,
	{JobStateQuoted, JobStateApproved}:      RoleClient,
	{JobStateQuoted, JobStateRejected}:      RoleClient,
	{JobStateApproved, JobStateAssigned}:    RoleManager,
	{JobStateAssigned, JobStateInProgress}:  RoleTranslator,
	{JobStateAssigned, JobStateDelivered}:   RoleTranslator,
	{JobStateInProgress, JobStateDelivered}: RoleTranslator,
	{JobStateDelivered, JobStateAccepted}:   RoleManager,
	{JobStateDelivered, JobStateReturned}:   RoleManager,
	{JobStateReturned, JobStateInProgress}:  RoleTranslator,
	{JobStateAccepted, JobStateInvoiced}:    RoleManager,
}

// RequiredRole returns the role gating the edge, or false if the edge does
// not exist in the graph.
func RequiredRole(from, to JobState) (Role, bool) {
	r, ok := transitionTable[Transition{from, to}]
	return r, ok
}

// NextStates lists the states reachable from the given state.
func NextStates(from JobState) []JobState {
	var out []JobState
	for tr := range transitionTable {
		if tr.From == from {
			out = append(out, tr.To)
		}
	}
	return out
}

// IsTerminal reports whether no edge leaves the state.
func IsTerminal(s JobState) bool {
	for tr := range transitionTable {
		if tr.From == s {
			return false
		}
	}
	return true
}

type Job struct {
	ID             string // UUID
	ClientID       string
	SourceLanguage string
	TargetLanguage string
	State          JobState
	WordCount      int
	SourceText     string
	SourceFile     string // storage handle of the uploaded document
	OriginalName   string
	TranslatorID   *string // nil until assignment
	DueDate        *time.Time
	Notes          string
	ManagerComment string
	DeliveredAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewJob(id, clientID, sourceLang, targetLang, originalName string) (*Job, error) {
	if id == "" || clientID == "" || sourceLang == "" || targetLang == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Job{
		ID:             id,
		ClientID:       clientID,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		State:          JobStateDraft,
		OriginalName:   originalName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Transition moves the job along one edge of the graph. It fails with
// ErrInvalidTransition when the edge is absent or the actor's role does not
// satisfy the edge's gate; the job is left untouched on failure.
func (j *Job) Transition(to JobState, actor Actor) error {
	required, ok := RequiredRole(j.State, to)
	if !ok {
		return domain.ErrInvalidTransition
	}
	if !actor.Role.Satisfies(required) {
		return domain.ErrInvalidTransition
	}
	now := time.Now()
	j.State = to
	j.UpdatedAt = now
	if to == JobStateDelivered {
		j.DeliveredAt = &now
	}
	return nil
}
