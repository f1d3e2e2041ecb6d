package scenarios

import (
	"time"

	"github.com/hilthontt/scenario-tracker/internal/domain"
)

// createScenarioRequest represents the request to create a new scenario
type createScenarioRequest struct {
	Ticket         string   `json:"ticket" example:"QA-1042"`            // External ticket reference
	Title          string   `json:"title" example:"Login with SSO"`      // Short scenario title
	Description    string   `json:"description"`                         // What the scenario verifies
	Steps          []string `json:"steps"`                               // Ordered reproduction steps
	ExpectedResult string   `json:"expectedResult"`                      // Expected outcome
	Components     []string `json:"components" example:"auth,frontend"`  // Affected component tags
}

// updateScenarioRequest carries a partial update; absent fields are left
// untouched.
type updateScenarioRequest struct {
	Ticket         *string  `json:"ticket"`
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	Steps          []string `json:"steps"`
	ExpectedResult *string  `json:"expectedResult"`
	Components     []string `json:"components"`
}

func (r updateScenarioRequest) toFields() domain.ScenarioFields {
	return domain.ScenarioFields{
		Ticket:         r.Ticket,
		Title:          r.Title,
		Description:    r.Description,
		Steps:          r.Steps,
		ExpectedResult: r.ExpectedResult,
		Components:     r.Components,
	}
}

func (r createScenarioRequest) toFields() domain.ScenarioFields {
	return domain.ScenarioFields{
		Ticket:         &r.Ticket,
		Title:          &r.Title,
		Description:    &r.Description,
		Steps:          r.Steps,
		ExpectedResult: &r.ExpectedResult,
		Components:     r.Components,
	}
}

// scenarioResponse represents a tracked scenario
type scenarioResponse struct {
	ID             string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"` // Unique scenario identifier
	Ticket         string    `json:"ticket" example:"QA-1042"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Steps          []string  `json:"steps"`
	ExpectedResult string    `json:"expectedResult"`
	Components     []string  `json:"components"`
	CreatedBy      string    `json:"createdBy" example:"alice@example.com"`
	CreatedAt      time.Time `json:"createdAt" example:"2024-01-01T12:00:00Z"`
	UpdatedBy      string    `json:"updatedBy,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitzero"`
}

// listScenariosResponse is one page of scenarios; nextKey resumes the
// listing when present.
type listScenariosResponse struct {
	Items   []scenarioResponse `json:"items"`
	NextKey string             `json:"nextKey,omitempty"`
}

func toScenarioResponse(s domain.Scenario) scenarioResponse {
	return scenarioResponse{
		ID:             s.ID,
		Ticket:         s.Ticket,
		Title:          s.Title,
		Description:    s.Description,
		Steps:          s.Steps,
		ExpectedResult: s.ExpectedResult,
		Components:     s.Components,
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt,
		UpdatedBy:      s.UpdatedBy,
		UpdatedAt:      s.UpdatedAt,
	}
}
