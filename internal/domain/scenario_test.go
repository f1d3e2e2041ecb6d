package domain

import (
	"testing"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func TestNewScenario(t *testing.T) {
	fields := ScenarioFields{
		Ticket:         strPtr("T-1"),
		Title:          strPtr("Login with SSO"),
		Description:    strPtr("SSO happy path"),
		Steps:          []string{"open login page"},
		ExpectedResult: strPtr("signed in"),
		Components:     []string{"auth"},
	}

	s := NewScenario(fields, "alice@example.com")

	if _, err := uuid.Parse(s.ID); err != nil {
		t.Fatalf("id %q is not a uuid: %v", s.ID, err)
	}
	if s.CreatedBy != "alice@example.com" {
		t.Fatalf("createdBy = %q", s.CreatedBy)
	}
	if s.CreatedAt.IsZero() {
		t.Fatal("createdAt not stamped")
	}
	if s.UpdatedBy != s.CreatedBy || !s.UpdatedAt.Equal(s.CreatedAt) {
		t.Fatal("creator must be recorded as the first mutator")
	}
	if s.Ticket != "T-1" || s.Title != "Login with SSO" || s.ExpectedResult != "signed in" {
		t.Fatalf("fields not applied: %+v", s)
	}
	if len(s.Steps) != 1 || len(s.Components) != 1 {
		t.Fatalf("slices not applied: %+v", s)
	}
}

func TestNewScenarioAssignsDistinctIDs(t *testing.T) {
	a := NewScenario(ScenarioFields{}, "alice@example.com")
	b := NewScenario(ScenarioFields{}, "alice@example.com")
	if a.ID == b.ID {
		t.Fatalf("two scenarios share id %q", a.ID)
	}
}

func TestScenarioFieldsIsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		fields ScenarioFields
		want   bool
	}{
		{name: "nothing supplied", fields: ScenarioFields{}, want: true},
		{name: "one pointer field", fields: ScenarioFields{Title: strPtr("X")}, want: false},
		{name: "empty string still counts", fields: ScenarioFields{Description: strPtr("")}, want: false},
		{name: "empty slice still counts", fields: ScenarioFields{Steps: []string{}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fields.IsEmpty(); got != tt.want {
				t.Fatalf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}
