package course

import (
	"testing"
	"time"

	"educonnect/progress"
)

func TestEnrollmentDocument_EmptyColumnYieldsFreshDocument(t *testing.T) {
	e := Enrollment{}

	doc, err := e.Document()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Status != progress.StatusEnrolled {
		t.Fatalf("expected fresh ENROLLED document, got %q", doc.Status)
	}
	if len(doc.Modules) != 0 || len(doc.Assessments) != 0 {
		t.Fatalf("fresh document must be empty")
	}
}

func TestEnrollmentApplyDocument_RoundTripsAndDenormalizes(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	doc := progress.Document{
		Status:               progress.StatusCompleted,
		CompletionPercentage: 100,
		CompletedAt:          &now,
		Modules: []progress.ModuleProgress{
			{
				ModuleID: 10,
				Status:   progress.StepCompleted,
				Sections: []progress.SectionProgress{
					{SectionID: 11, Status: progress.StepCompleted},
					{SectionID: 12, Status: progress.StepCompleted},
				},
			},
		},
	}

	e := Enrollment{UserID: 1, CourseID: 2}
	if err := e.ApplyDocument(doc, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.Status != progress.StatusCompleted {
		t.Fatalf("status not denormalized, got %q", e.Status)
	}
	if e.CompletionPercentage != 100 || e.CompletedSections != 2 || e.TotalSections != 2 {
		t.Fatalf("columns not refreshed: %+v", e)
	}
	if e.CompletedAt == nil || !e.CompletedAt.Equal(now) {
		t.Fatalf("completed_at not carried over")
	}

	restored, err := e.Document()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.Status != doc.Status || len(restored.Modules) != 1 {
		t.Fatalf("document did not survive the round trip: %+v", restored)
	}
	if restored.Modules[0].Sections[1].SectionID != 12 {
		t.Fatalf("section order not preserved")
	}
}
