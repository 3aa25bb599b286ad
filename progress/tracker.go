package progress

import (
	"sort"
	"time"
)

// Tracker applies progress commands to one enrollment document. It is pure
// state manipulation: no I/O, no locking. Callers must apply commands to a
// given enrollment sequentially (the HTTP layer does this under a row lock)
// and persist the document afterwards. Every command either fully applies or
// leaves the document untouched.
type Tracker struct {
	outline CourseOutline
	doc     *Document
	now     func() time.Time
}

// New builds a tracker over an existing document. The outline must be the
// structure snapshot of the course the enrollment belongs to.
func New(outline CourseOutline, doc *Document) *Tracker {
	t := &Tracker{outline: outline, doc: doc, now: time.Now}
	if t.doc.Status == "" {
		t.doc.Status = StatusEnrolled
	}
	return t
}

// WithClock overrides the time source. Used by tests.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// RecordActivity adds viewing time to a section and its module, creating the
// progress entries on first touch. It never changes the completion
// percentage, and it stays permitted after the enrollment completes so that
// re-watching content keeps accumulating time. Negative deltas are ignored.
func (t *Tracker) RecordActivity(moduleID, sectionID uint, seconds int64) error {
	mo := t.outline.moduleByID(moduleID)
	if mo == nil {
		return ErrInvalidReference
	}
	if mo.sectionByID(sectionID) == nil {
		return ErrInvalidReference
	}
	if seconds < 0 {
		seconds = 0
	}

	now := t.now()
	mp := t.ensureModule(moduleID, now)
	sp := t.ensureSection(mp, sectionID, now)

	sp.TimeSpent += seconds
	sp.LastAccessed = now
	mp.TimeSpent += seconds
	mp.LastAccessed = now
	t.doc.LastAccessed = &now
	return nil
}

// CompleteSection marks a section completed and runs the recomputation
// cascade. Completing an already-completed section is a no-op, not an error;
// its notes log is left untouched in that case.
func (t *Tracker) CompleteSection(moduleID, sectionID uint, note string) error {
	if t.doc.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	mo := t.outline.moduleByID(moduleID)
	if mo == nil {
		return ErrInvalidReference
	}
	if mo.sectionByID(sectionID) == nil {
		return ErrInvalidReference
	}

	now := t.now()
	mp := t.ensureModule(moduleID, now)
	sp := t.ensureSection(mp, sectionID, now)

	if sp.Status == StepCompleted {
		return nil
	}

	sp.Status = StepCompleted
	sp.CompletedAt = &now
	sp.LastAccessed = now
	mp.LastAccessed = now
	t.doc.LastAccessed = &now
	if note != "" {
		sp.Notes = append(sp.Notes, Note{Text: note, CreatedAt: now})
	}

	t.recompute()
	return nil
}

// SubmitQuizAttempt scores a submission against the quiz's correctness sets
// and appends the attempt. Scoring is all-or-nothing per question: the
// submitted option set must equal the correct set exactly. The submission is
// validated in full before anything is recorded.
func (t *Tracker) SubmitQuizAttempt(sectionID, quizID uint, answers map[int][]int) (Attempt, error) {
	if t.doc.Status == StatusCompleted {
		return Attempt{}, ErrAlreadyCompleted
	}
	mo, so := t.outline.findSection(sectionID)
	if so == nil || so.Type != SectionQuiz || so.Quiz == nil || so.Quiz.ID != quizID {
		return Attempt{}, ErrInvalidReference
	}
	quiz := so.Quiz

	normalized := make(map[int][]int, len(answers))
	for qIdx, selected := range answers {
		if qIdx < 0 || qIdx >= len(quiz.Questions) {
			return Attempt{}, ErrMalformedAnswer
		}
		q := quiz.Questions[qIdx]
		set := dedupe(selected)
		for _, opt := range set {
			if opt < 0 || opt >= q.Options {
				return Attempt{}, ErrMalformedAnswer
			}
		}
		if q.Type == QuestionSingle && len(set) > 1 {
			return Attempt{}, ErrMalformedAnswer
		}
		normalized[qIdx] = set
	}

	correctCount := 0
	for i, q := range quiz.Questions {
		if sameSet(normalized[i], q.Correct) {
			correctCount++
		}
	}
	score := 0.0
	if len(quiz.Questions) > 0 {
		score = float64(correctCount) / float64(len(quiz.Questions)) * 100
	}

	now := t.now()
	mp := t.ensureModule(mo.ID, now)
	sp := t.ensureSection(mp, sectionID, now)
	sp.LastAccessed = now
	mp.LastAccessed = now
	t.doc.LastAccessed = &now

	ap := t.doc.assessment(sectionID, quizID)
	if ap == nil {
		t.doc.Assessments = append(t.doc.Assessments, AssessmentProgress{
			SectionID: sectionID,
			QuizID:    quizID,
		})
		ap = &t.doc.Assessments[len(t.doc.Assessments)-1]
	}

	attempt := Attempt{
		AttemptNumber: len(ap.Attempts) + 1,
		Score:         score,
		PassingScore:  quiz.PassingScore,
		Passed:        score >= quiz.PassingScore,
		Answers:       normalized,
		SubmittedAt:   now,
	}
	ap.Attempts = append(ap.Attempts, attempt)
	if score > ap.BestScore {
		ap.BestScore = score
	}
	ap.Passed = ap.Passed || attempt.Passed

	// A newly passed required quiz can unblock completion even at 100%.
	t.recompute()
	return attempt, nil
}

// MarkCertificateIssued flips the issued flag. Issuance requires prior
// eligibility and a completed enrollment.
func (t *Tracker) MarkCertificateIssued() error {
	if !t.doc.Certification.Eligible || t.doc.Status != StatusCompleted {
		return ErrNotEligible
	}
	if t.doc.Certification.Issued {
		return nil
	}
	now := t.now()
	t.doc.Certification.Issued = true
	t.doc.Certification.IssuedAt = &now
	return nil
}

// Snapshot returns a deep copy of the document. Mutating the copy does not
// affect the tracker's state.
func (t *Tracker) Snapshot() Document {
	out := *t.doc
	out.Modules = make([]ModuleProgress, len(t.doc.Modules))
	for i, m := range t.doc.Modules {
		cm := m
		cm.Sections = make([]SectionProgress, len(m.Sections))
		for j, s := range m.Sections {
			cs := s
			cs.Notes = append([]Note(nil), s.Notes...)
			cm.Sections[j] = cs
		}
		out.Modules[i] = cm
	}
	out.Assessments = make([]AssessmentProgress, len(t.doc.Assessments))
	for i, a := range t.doc.Assessments {
		ca := a
		ca.Attempts = make([]Attempt, len(a.Attempts))
		for j, at := range a.Attempts {
			cat := at
			cat.Answers = make(map[int][]int, len(at.Answers))
			for q, sel := range at.Answers {
				cat.Answers[q] = append([]int(nil), sel...)
			}
			ca.Attempts[j] = cat
		}
		out.Assessments[i] = ca
	}
	return out
}

// ensureModule returns the module's progress entry, creating it as STARTED on
// first touch. A section entry is only ever created after its module entry.
func (t *Tracker) ensureModule(moduleID uint, now time.Time) *ModuleProgress {
	if mp := t.doc.module(moduleID); mp != nil {
		return mp
	}
	if t.doc.StartedAt == nil {
		started := now
		t.doc.StartedAt = &started
	}
	t.doc.Modules = append(t.doc.Modules, ModuleProgress{
		ModuleID:     moduleID,
		Status:       StepStarted,
		StartedAt:    now,
		LastAccessed: now,
	})
	return &t.doc.Modules[len(t.doc.Modules)-1]
}

func (t *Tracker) ensureSection(mp *ModuleProgress, sectionID uint, now time.Time) *SectionProgress {
	if sp := mp.section(sectionID); sp != nil {
		return sp
	}
	mp.Sections = append(mp.Sections, SectionProgress{
		SectionID:    sectionID,
		Status:       StepStarted,
		StartedAt:    now,
		LastAccessed: now,
	})
	return &mp.Sections[len(mp.Sections)-1]
}

// recompute is the single place percentage, module rollup, enrollment status
// and certification eligibility are derived. Every mutating command ends
// here, which is what keeps the percentage monotonic and section-weighted.
func (t *Tracker) recompute() {
	total := t.outline.TotalSections()
	completed := t.doc.CompletedSections()
	if total > 0 {
		t.doc.CompletionPercentage = float64(completed) / float64(total) * 100
	}

	for i := range t.doc.Modules {
		mp := &t.doc.Modules[i]
		mo := t.outline.moduleByID(mp.ModuleID)
		if mo == nil || mp.Status == StepCompleted {
			continue
		}
		done := 0
		for j := range mp.Sections {
			if mp.Sections[j].Status == StepCompleted {
				done++
			}
		}
		if len(mo.Sections) > 0 && done == len(mo.Sections) {
			mp.Status = StepCompleted
			now := t.now()
			mp.CompletedAt = &now
		} else {
			mp.Status = StepStarted
		}
	}

	// Status only advances from ENROLLED/IN_PROGRESS. DROPPED and SUSPENDED
	// are administrative states the tracker never overrides.
	if t.doc.Status != StatusEnrolled && t.doc.Status != StatusInProgress {
		return
	}
	if completed > 0 && t.doc.Status == StatusEnrolled {
		t.doc.Status = StatusInProgress
	}
	if total > 0 && completed == total && t.requiredPassed() {
		t.doc.Status = StatusCompleted
		now := t.now()
		t.doc.CompletedAt = &now
		t.doc.Certification.Eligible = true
	}
}

// requiredPassed reports whether every required quiz in the course has a
// passing attempt on record.
func (t *Tracker) requiredPassed() bool {
	for _, s := range t.outline.requiredQuizzes() {
		ap := t.doc.assessment(s.ID, s.Quiz.ID)
		if ap == nil || !ap.Passed {
			return false
		}
	}
	return true
}

func dedupe(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[int]bool, len(a))
	for _, v := range a {
		set[v] = true
	}
	for _, v := range b {
		if !set[v] {
			return false
		}
	}
	return true
}
