package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testOutline is a two module course: module 10 has three content sections,
// module 20 has a single required quiz section. Four sections total, so the
// content module alone is worth 75%.
func testOutline() CourseOutline {
	return CourseOutline{
		CourseID: 1,
		Modules: []ModuleOutline{
			{
				ID: 10,
				Sections: []SectionOutline{
					{ID: 11, Type: SectionText},
					{ID: 12, Type: SectionVideo},
					{ID: 13, Type: SectionText},
				},
			},
			{
				ID: 20,
				Sections: []SectionOutline{
					{
						ID:   21,
						Type: SectionQuiz,
						Quiz: &QuizOutline{
							ID:           5,
							PassingScore: 70,
							Required:     true,
							Questions: []QuestionOutline{
								{Type: QuestionSingle, Options: 3, Correct: []int{1}},
								{Type: QuestionMultiple, Options: 4, Correct: []int{0, 2}},
								{Type: QuestionSingle, Options: 2, Correct: []int{0}},
								{Type: QuestionSingle, Options: 3, Correct: []int{2}},
							},
						},
					},
				},
			},
		},
	}
}

func fixedClock() func() time.Time {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		at = at.Add(time.Minute)
		return at
	}
}

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	return New(testOutline(), NewDocument()).WithClock(fixedClock())
}

// passingAnswers answers every question correctly.
func passingAnswers() map[int][]int {
	return map[int][]int{0: {1}, 1: {0, 2}, 2: {0}, 3: {2}}
}

func TestRecordActivity_AccumulatesTime(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.RecordActivity(10, 11, 30))
	require.NoError(t, tr.RecordActivity(10, 11, 45))

	doc := tr.Snapshot()
	require.Len(t, doc.Modules, 1)
	mp := doc.Modules[0]
	assert.Equal(t, StepStarted, mp.Status)
	assert.Equal(t, int64(75), mp.TimeSpent)
	require.Len(t, mp.Sections, 1)
	assert.Equal(t, int64(75), mp.Sections[0].TimeSpent)
	assert.Equal(t, StepStarted, mp.Sections[0].Status)
	assert.NotNil(t, doc.StartedAt)
	assert.Equal(t, 0.0, doc.CompletionPercentage)
}

func TestRecordActivity_RejectsUnknownReferences(t *testing.T) {
	tr := newTestTracker(t)

	assert.ErrorIs(t, tr.RecordActivity(99, 11, 30), ErrInvalidReference)
	assert.ErrorIs(t, tr.RecordActivity(10, 99, 30), ErrInvalidReference)
	// Section 21 exists but belongs to module 20.
	assert.ErrorIs(t, tr.RecordActivity(10, 21, 30), ErrInvalidReference)

	doc := tr.Snapshot()
	assert.Empty(t, doc.Modules)
}

func TestRecordActivity_ClampsNegativeDeltas(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.RecordActivity(10, 11, -50))

	doc := tr.Snapshot()
	require.Len(t, doc.Modules, 1)
	assert.Equal(t, int64(0), doc.Modules[0].TimeSpent)
	assert.Equal(t, int64(0), doc.Modules[0].Sections[0].TimeSpent)
}

func TestCompleteSection_PercentageIsSectionWeighted(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.CompleteSection(10, 11, ""))
	assert.Equal(t, 25.0, tr.Snapshot().CompletionPercentage)

	require.NoError(t, tr.CompleteSection(10, 12, ""))
	require.NoError(t, tr.CompleteSection(10, 13, ""))

	doc := tr.Snapshot()
	// Three of four sections done. The whole first module counts for 75%, not
	// half the course.
	assert.Equal(t, 75.0, doc.CompletionPercentage)
	assert.Equal(t, StatusInProgress, doc.Status)
	assert.Equal(t, StepCompleted, doc.Modules[0].Status)
	assert.NotNil(t, doc.Modules[0].CompletedAt)
}

func TestCompleteSection_IdempotentAndKeepsNotes(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.CompleteSection(10, 11, "first pass"))
	before := tr.Snapshot()

	require.NoError(t, tr.CompleteSection(10, 11, "second pass"))
	after := tr.Snapshot()

	assert.Equal(t, before.CompletionPercentage, after.CompletionPercentage)
	require.Len(t, after.Modules[0].Sections[0].Notes, 1)
	assert.Equal(t, "first pass", after.Modules[0].Sections[0].Notes[0].Text)
}

func TestCompleteSection_RejectsUnknownReferences(t *testing.T) {
	tr := newTestTracker(t)

	assert.ErrorIs(t, tr.CompleteSection(99, 11, ""), ErrInvalidReference)
	assert.ErrorIs(t, tr.CompleteSection(10, 21, ""), ErrInvalidReference)
}

func TestSubmitQuizAttempt_ScoresAllOrNothingPerQuestion(t *testing.T) {
	tr := newTestTracker(t)

	answers := passingAnswers()
	answers[3] = []int{0} // one wrong single choice

	attempt, err := tr.SubmitQuizAttempt(21, 5, answers)
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.AttemptNumber)
	assert.Equal(t, 75.0, attempt.Score)
	assert.True(t, attempt.Passed)

	doc := tr.Snapshot()
	require.Len(t, doc.Assessments, 1)
	assert.Equal(t, 75.0, doc.Assessments[0].BestScore)
	assert.True(t, doc.Assessments[0].Passed)
}

func TestSubmitQuizAttempt_MultipleChoiceNeedsExactSet(t *testing.T) {
	tr := newTestTracker(t)

	// Question 1 needs {0,2}; a subset earns nothing.
	answers := passingAnswers()
	answers[1] = []int{0}

	attempt, err := tr.SubmitQuizAttempt(21, 5, answers)
	require.NoError(t, err)
	assert.Equal(t, 75.0, attempt.Score)

	// A superset earns nothing either.
	answers[1] = []int{0, 2, 3}
	attempt, err = tr.SubmitQuizAttempt(21, 5, answers)
	require.NoError(t, err)
	assert.Equal(t, 75.0, attempt.Score)
}

func TestSubmitQuizAttempt_MalformedSubmissionRecordsNothing(t *testing.T) {
	tr := newTestTracker(t)

	cases := map[string]map[int][]int{
		"question index out of range": {7: {0}},
		"negative question index":     {-1: {0}},
		"option out of range":         {0: {5}},
		"negative option":             {0: {-1}},
		"multiple picks on a single":  {0: {0, 1}},
	}
	for name, answers := range cases {
		_, err := tr.SubmitQuizAttempt(21, 5, answers)
		assert.ErrorIs(t, err, ErrMalformedAnswer, name)
	}

	// Nothing was recorded by any of the rejected submissions.
	doc := tr.Snapshot()
	assert.Empty(t, doc.Assessments)
}

func TestSubmitQuizAttempt_RejectsWrongTargets(t *testing.T) {
	tr := newTestTracker(t)

	_, err := tr.SubmitQuizAttempt(11, 5, passingAnswers())
	assert.ErrorIs(t, err, ErrInvalidReference, "content section has no quiz")

	_, err = tr.SubmitQuizAttempt(21, 99, passingAnswers())
	assert.ErrorIs(t, err, ErrInvalidReference, "quiz id does not match the section")
}

func TestSubmitQuizAttempt_NumbersAttemptsSequentially(t *testing.T) {
	tr := newTestTracker(t)

	failing := map[int][]int{0: {0}, 1: {3}, 2: {1}, 3: {0}}
	first, err := tr.SubmitQuizAttempt(21, 5, failing)
	require.NoError(t, err)
	assert.Equal(t, 1, first.AttemptNumber)
	assert.Equal(t, 0.0, first.Score)
	assert.False(t, first.Passed)

	second, err := tr.SubmitQuizAttempt(21, 5, passingAnswers())
	require.NoError(t, err)
	assert.Equal(t, 2, second.AttemptNumber)
	assert.Equal(t, 100.0, second.Score)

	doc := tr.Snapshot()
	ap := doc.Assessments[0]
	require.Len(t, ap.Attempts, 2)
	assert.Equal(t, 100.0, ap.BestScore)
	assert.True(t, ap.Passed, "one passing attempt marks the assessment passed")
}

func TestCompletion_GatedByRequiredQuiz(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.CompleteSection(10, 11, ""))
	require.NoError(t, tr.CompleteSection(10, 12, ""))
	require.NoError(t, tr.CompleteSection(10, 13, ""))
	require.NoError(t, tr.CompleteSection(20, 21, ""))

	doc := tr.Snapshot()
	assert.Equal(t, 100.0, doc.CompletionPercentage)
	assert.Equal(t, StatusInProgress, doc.Status, "required quiz not passed yet")
	assert.False(t, doc.Certification.Eligible)

	// Passing the required quiz afterwards unblocks completion.
	_, err := tr.SubmitQuizAttempt(21, 5, passingAnswers())
	require.NoError(t, err)

	doc = tr.Snapshot()
	assert.Equal(t, StatusCompleted, doc.Status)
	assert.NotNil(t, doc.CompletedAt)
	assert.True(t, doc.Certification.Eligible)
}

func TestCompletedEnrollment_IsTerminalForMutations(t *testing.T) {
	tr := newTestTracker(t)
	completeCourse(t, tr)

	assert.ErrorIs(t, tr.CompleteSection(10, 11, ""), ErrAlreadyCompleted)
	_, err := tr.SubmitQuizAttempt(21, 5, passingAnswers())
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	// Re-watching content still counts time after completion.
	require.NoError(t, tr.RecordActivity(10, 11, 60))
	assert.Equal(t, StatusCompleted, tr.Snapshot().Status)
}

func TestMarkCertificateIssued_RequiresEligibility(t *testing.T) {
	tr := newTestTracker(t)

	assert.ErrorIs(t, tr.MarkCertificateIssued(), ErrNotEligible)

	completeCourse(t, tr)
	require.NoError(t, tr.MarkCertificateIssued())

	doc := tr.Snapshot()
	assert.True(t, doc.Certification.Issued)
	assert.NotNil(t, doc.Certification.IssuedAt)

	// Issuing twice is a no-op.
	require.NoError(t, tr.MarkCertificateIssued())
}

func TestRecompute_NeverRegressesAdministrativeStates(t *testing.T) {
	doc := NewDocument()
	doc.Status = StatusSuspended
	tr := New(testOutline(), doc).WithClock(fixedClock())

	require.NoError(t, tr.CompleteSection(10, 11, ""))
	assert.Equal(t, StatusSuspended, tr.Snapshot().Status)
}

func TestSnapshot_IsIsolatedFromTracker(t *testing.T) {
	tr := newTestTracker(t)
	require.NoError(t, tr.CompleteSection(10, 11, "note"))
	_, err := tr.SubmitQuizAttempt(21, 5, passingAnswers())
	require.NoError(t, err)

	snap := tr.Snapshot()
	snap.Modules[0].Sections[0].Status = StepStarted
	snap.Modules[0].Sections[0].Notes[0].Text = "tampered"
	snap.Assessments[0].Attempts[0].Answers[0] = []int{2}
	snap.Assessments[0].Attempts[0].Answers[1][0] = 9
	snap.Assessments = append(snap.Assessments, AssessmentProgress{SectionID: 21})

	doc := tr.Snapshot()
	assert.Equal(t, StepCompleted, doc.Modules[0].Sections[0].Status)
	assert.Equal(t, "note", doc.Modules[0].Sections[0].Notes[0].Text)
	assert.Len(t, doc.Assessments, 1)
	assert.Equal(t, []int{1}, doc.Assessments[0].Attempts[0].Answers[0])
	assert.Equal(t, []int{0, 2}, doc.Assessments[0].Attempts[0].Answers[1])
}

func TestEnrollmentLifecycle_EndToEnd(t *testing.T) {
	tr := newTestTracker(t)

	// First study burst.
	require.NoError(t, tr.RecordActivity(10, 11, 600))
	require.NoError(t, tr.CompleteSection(10, 11, "good intro"))
	doc := tr.Snapshot()
	assert.Equal(t, StatusInProgress, doc.Status)
	assert.Equal(t, 25.0, doc.CompletionPercentage)

	// Fail the quiz once, then pass on the retry.
	failing := map[int][]int{0: {0}, 1: {0, 2}, 2: {1}, 3: {0}}
	first, err := tr.SubmitQuizAttempt(21, 5, failing)
	require.NoError(t, err)
	assert.Equal(t, 25.0, first.Score)
	assert.False(t, first.Passed)

	second, err := tr.SubmitQuizAttempt(21, 5, passingAnswers())
	require.NoError(t, err)
	assert.Equal(t, 2, second.AttemptNumber)
	assert.True(t, second.Passed)

	// Finish the remaining sections.
	require.NoError(t, tr.CompleteSection(10, 12, ""))
	require.NoError(t, tr.CompleteSection(10, 13, ""))
	require.NoError(t, tr.CompleteSection(20, 21, ""))

	doc = tr.Snapshot()
	assert.Equal(t, StatusCompleted, doc.Status)
	assert.Equal(t, 100.0, doc.CompletionPercentage)
	assert.True(t, doc.Certification.Eligible)
	assert.Equal(t, 100.0, doc.Assessments[0].BestScore)
}

// completeCourse drives the tracker to COMPLETED.
func completeCourse(t *testing.T, tr *Tracker) {
	t.Helper()
	_, err := tr.SubmitQuizAttempt(21, 5, passingAnswers())
	require.NoError(t, err)
	require.NoError(t, tr.CompleteSection(10, 11, ""))
	require.NoError(t, tr.CompleteSection(10, 12, ""))
	require.NoError(t, tr.CompleteSection(10, 13, ""))
	require.NoError(t, tr.CompleteSection(20, 21, ""))
	require.Equal(t, StatusCompleted, tr.doc.Status)
}
