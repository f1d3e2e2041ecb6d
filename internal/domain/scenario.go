package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// Scenario is a tracked test case. The pair (partition marker, CreatedAt)
// forms the primary storage key; ID is the client-facing identifier and is
// resolved to the primary key through a secondary index.
type Scenario struct {
	ID             string    `bson:"id" json:"id"`
	Ticket         string    `bson:"ticket" json:"ticket"`
	Title          string    `bson:"title" json:"title"`
	Description    string    `bson:"description" json:"description"`
	Steps          []string  `bson:"steps" json:"steps"`
	ExpectedResult string    `bson:"expectedResult" json:"expectedResult"`
	Components     []string  `bson:"components" json:"components"`
	CreatedBy      string    `bson:"createdBy" json:"createdBy"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedBy      string    `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	UpdatedAt      time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitzero"`
}

// ScenarioFields carries client-supplied attributes. Nil pointers mean the
// field was not supplied; partial updates leave those untouched.
type ScenarioFields struct {
	Ticket         *string
	Title          *string
	Description    *string
	Steps          []string
	ExpectedResult *string
	Components     []string
}

// IsEmpty reports whether no field was supplied at all.
func (f ScenarioFields) IsEmpty() bool {
	return f.Ticket == nil &&
		f.Title == nil &&
		f.Description == nil &&
		f.Steps == nil &&
		f.ExpectedResult == nil &&
		f.Components == nil
}

// ScenarioPage is one page of a list query. NextKey is the opaque
// continuation cursor, empty when the listing is exhausted.
type ScenarioPage struct {
	Items   []Scenario
	NextKey string
}

type ListOptions struct {
	Limit     int
	NextKey   string
	CreatedBy string
}

type ScenarioRepository interface {
	List(ctx context.Context, opts ListOptions) (*ScenarioPage, error)
	FindByID(ctx context.Context, id string) (*Scenario, error)
	Create(ctx context.Context, scenario *Scenario) error
	UpdatePartial(ctx context.Context, id string, fields ScenarioFields, updatedBy string) (*Scenario, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

// NewScenario stamps the server-assigned attributes on creation. The
// creator is also recorded as the first mutator so the derived CREATE audit
// entry carries a performedBy.
func NewScenario(fields ScenarioFields, createdBy string) *Scenario {
	now := time.Now().UTC()
	s := &Scenario{
		ID:        uuid.NewString(),
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedBy: createdBy,
		UpdatedAt: now,
	}

	if fields.Ticket != nil {
		s.Ticket = *fields.Ticket
	}
	if fields.Title != nil {
		s.Title = *fields.Title
	}
	if fields.Description != nil {
		s.Description = *fields.Description
	}
	if fields.ExpectedResult != nil {
		s.ExpectedResult = *fields.ExpectedResult
	}
	s.Steps = fields.Steps
	s.Components = fields.Components

	return s
}
