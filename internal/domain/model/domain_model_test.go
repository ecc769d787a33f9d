package model

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
)

func TestJobTransition_Graph(t *testing.T) {
	cases := []struct {
		name  string
		from  JobState
		to    JobState
		actor Actor
		ok    bool
	}{
		{"system quotes draft", JobStateDraft, JobStateQuoted, System, true},
		{"client approves quote", JobStateQuoted, JobStateApproved, Actor{"c1", RoleClient}, true},
		{"client rejects quote", JobStateQuoted, JobStateRejected, Actor{"c1", RoleClient}, true},
		{"manager assigns", JobStateApproved, JobStateAssigned, Actor{"m1", RoleManager}, true},
		{"admin assigns", JobStateApproved, JobStateAssigned, Actor{"a1", RoleAdmin}, true},
		{"translator starts", JobStateAssigned, JobStateInProgress, Actor{"t1", RoleTranslator}, true},
		{"translator delivers from assigned", JobStateAssigned, JobStateDelivered, Actor{"t1", RoleTranslator}, true},
		{"translator delivers", JobStateInProgress, JobStateDelivered, Actor{"t1", RoleTranslator}, true},
		{"manager accepts", JobStateDelivered, JobStateAccepted, Actor{"m1", RoleManager}, true},
		{"manager returns", JobStateDelivered, JobStateReturned, Actor{"m1", RoleManager}, true},
		{"translator redelivers", JobStateReturned, JobStateInProgress, Actor{"t1", RoleTranslator}, true},
		{"manager invoices", JobStateAccepted, JobStateInvoiced, Actor{"m1", RoleManager}, true},

		{"skip a state", JobStateDraft, JobStateApproved, System, false},
		{"backwards", JobStateDelivered, JobStateQuoted, Actor{"m1", RoleManager}, false},
		{"terminal rejected", JobStateRejected, JobStateQuoted, System, false},
		{"terminal invoiced", JobStateInvoiced, JobStateAccepted, Actor{"m1", RoleManager}, false},
		{"client cannot assign", JobStateApproved, JobStateAssigned, Actor{"c1", RoleClient}, false},
		{"translator cannot accept", JobStateDelivered, JobStateAccepted, Actor{"t1", RoleTranslator}, false},
		{"manager cannot approve quote", JobStateQuoted, JobStateApproved, Actor{"m1", RoleManager}, false},
		{"client cannot deliver", JobStateInProgress, JobStateDelivered, Actor{"c1", RoleClient}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			job, err := NewJob("j1", "c1", "en", "de", "doc.txt")
			if err != nil {
				t.Fatalf("NewJob: %v", err)
			}
			job.State = tc.from
			before := job.State

			err = job.Transition(tc.to, tc.actor)
			if tc.ok {
				if err != nil {
					t.Fatalf("Transition(%s->%s) as %s: %v", tc.from, tc.to, tc.actor.Role, err)
				}
				if job.State != tc.to {
					t.Fatalf("state = %s, want %s", job.State, tc.to)
				}
				return
			}
			if !errors.Is(err, domain.ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
			if job.State != before {
				t.Fatalf("failed transition mutated state: %s -> %s", before, job.State)
			}
		})
	}
}

func TestJobTransition_DeliveredTimestamp(t *testing.T) {
	job, _ := NewJob("j1", "c1", "en", "de", "doc.txt")
	job.State = JobStateInProgress
	if err := job.Transition(JobStateDelivered, Actor{"t1", RoleTranslator}); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if job.DeliveredAt == nil {
		t.Fatal("DeliveredAt not set on delivery")
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []JobState{JobStateRejected, JobStateInvoiced} {
		if !IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = false, want true", s)
		}
	}
	for _, s := range []JobState{JobStateDraft, JobStateQuoted, JobStateApproved, JobStateAssigned, JobStateInProgress, JobStateDelivered, JobStateReturned, JobStateAccepted} {
		if IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = true, want false", s)
		}
	}
}

func TestComputePriceCents(t *testing.T) {
	cases := []struct {
		words  int
		micros int64
		cents  int64
	}{
		{1000, 100_000, 10_000}, // 1000 words at 0.10 -> 100.00
		{0, 100_000, 0},
		{1, 100_000, 1},    // 0.10 -> 0.10
		{3, 15_000, 5},     // 0.045 -> rounds half up to 0.05
		{1, 4_999, 0},      // just under half a cent rounds down
		{1, 5_000, 1},      // exactly half a cent rounds up
		{12345, 87_654, 108_209}, // 1082.08863 -> 1082.09
	}
	for _, tc := range cases {
		if got := ComputePriceCents(tc.words, tc.micros); got != tc.cents {
			t.Errorf("ComputePriceCents(%d, %d) = %d, want %d", tc.words, tc.micros, got, tc.cents)
		}
	}

	// Determinism: same inputs, same price.
	a := ComputePriceCents(777, 123_456)
	b := ComputePriceCents(777, 123_456)
	if a != b {
		t.Fatalf("price not deterministic: %d vs %d", a, b)
	}
}

func TestFormatCents(t *testing.T) {
	if got := FormatCents(10_000); got != "100.00" {
		t.Errorf("FormatCents(10000) = %q", got)
	}
	if got := FormatCents(5); got != "0.05" {
		t.Errorf("FormatCents(5) = %q", got)
	}
	if got := FormatCents(-1234); got != "-12.34" {
		t.Errorf("FormatCents(-1234) = %q", got)
	}
}

func TestQuoteApprove(t *testing.T) {
	job, _ := NewJob("j1", "c1", "en", "de", "doc.txt")
	job.WordCount = 1000
	rate, _ := NewRate("r1", "en", "de", 100_000, "EUR")

	q, err := NewQuote("q1", job, rate)
	if err != nil {
		t.Fatalf("NewQuote: %v", err)
	}
	if q.TotalCents != 10_000 {
		t.Fatalf("TotalCents = %d, want 10000", q.TotalCents)
	}

	first, err := q.Approve()
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	second, err := q.Approve()
	if err != nil {
		t.Fatalf("re-Approve: %v", err)
	}
	if !first.Equal(second) {
		t.Fatalf("re-approval changed timestamp: %v vs %v", first, second)
	}

	q.Superseded = true
	if _, err := q.Approve(); !errors.Is(err, domain.ErrStaleQuote) {
		t.Fatalf("approving superseded quote: got %v, want ErrStaleQuote", err)
	}
}

func TestHighlightTerms(t *testing.T) {
	terms := []*GlossaryTerm{
		{ID: "1", ClientID: "c1", Source: "invoice", Target: "Rechnung"},
		{ID: "2", ClientID: "c1", Source: "invoice number", Target: "Rechnungsnummer"},
	}
	spans, annotated := HighlightTerms("The Invoice Number is on the invoice.", terms)
	if len(spans) != 2 {
		t.Fatalf("spans = %+v, want 2", spans)
	}
	// Longest match wins for the first occurrence.
	if spans[0].Source != "invoice number" || spans[0].Match != "Invoice Number" {
		t.Errorf("first span = %+v", spans[0])
	}
	if spans[1].Source != "invoice" {
		t.Errorf("second span = %+v", spans[1])
	}
	want := "The [[Invoice Number->Rechnungsnummer]] is on the [[invoice->Rechnung]]."
	if annotated != want {
		t.Errorf("annotated = %q, want %q", annotated, want)
	}
}

func TestHighlightTerms_WordBoundary(t *testing.T) {
	terms := []*GlossaryTerm{{ID: "1", ClientID: "c1", Source: "port", Target: "Hafen"}}
	spans, _ := HighlightTerms("export the port report", terms)
	if len(spans) != 1 || spans[0].Match != "port" || spans[0].Start != 11 {
		t.Fatalf("spans = %+v, want single hit on the standalone word", spans)
	}
}

func TestCompareNumbers(t *testing.T) {
	check := CompareNumbers("Pay 100 and 20%", "Pay 100 and 25%")
	if check.Match {
		t.Fatal("expected mismatch")
	}
	if !reflect.DeepEqual(check.Missing, []string{"20"}) || !reflect.DeepEqual(check.Extra, []string{"25"}) {
		t.Fatalf("check = %+v", check)
	}

	if got := CompareNumbers("1.5 items, 3 boxes", "3 boxes and 1.5 items"); !got.Match {
		t.Fatalf("reordered tokens should match: %+v", got)
	}

	// Multisets, not sets: a dropped duplicate is a mismatch.
	if got := CompareNumbers("5 and 5", "just 5"); got.Match {
		t.Fatalf("duplicate token dropped but check matched: %+v", got)
	}
}

func TestCountWords(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"hello world", 2},
		{"one, two; three.", 3},
		{"hyphen-ated counts as two", 5},
		{"  spaced   out  ", 2},
	}
	for _, tc := range cases {
		if got := CountWords(tc.text); got != tc.want {
			t.Errorf("CountWords(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestSanitizeMessage(t *testing.T) {
	if got := SanitizeMessage("  <b>hi</b>\nthere  "); got != "&lt;b&gt;hi&lt;/b&gt;<br>there" {
		t.Errorf("SanitizeMessage = %q", got)
	}
	if got := SanitizeMessage("   "); got != "" {
		t.Errorf("blank message should sanitize to empty, got %q", got)
	}
	long := strings.Repeat("a", 2000)
	if got := SanitizeMessage(long); len(got) != 1000 {
		t.Errorf("long message not capped: len=%d", len(got))
	}
}

func TestSanitizeMessage_MultiByte(t *testing.T) {
	// 400 euro signs are 1200 bytes but only 400 characters; the cap must
	// leave the message intact and never split a rune.
	short := strings.Repeat("€", 400)
	if got := SanitizeMessage(short); got != short {
		t.Errorf("400-rune message was altered: len=%d", len(got))
	}

	long := strings.Repeat("€", 1500)
	got := SanitizeMessage(long)
	if !utf8.ValidString(got) {
		t.Fatal("capped message is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n != 1000 {
		t.Errorf("capped at %d runes, want 1000", n)
	}
}

func TestRoleSatisfies(t *testing.T) {
	if !RoleAdmin.Satisfies(RoleManager) {
		t.Error("admin should satisfy manager gates")
	}
	if RoleManager.Satisfies(RoleAdmin) {
		t.Error("manager should not satisfy admin gates")
	}
	if RoleClient.Satisfies(RoleTranslator) {
		t.Error("client should not satisfy translator gates")
	}
}
