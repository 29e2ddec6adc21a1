package repository

import (
	"context"

	"casillero/internal/model"
)

// DecisionRepository defines data access for judicial decision records using
// SQL queries only. No business logic here, strictly read operations against
// the externally managed registry.
type DecisionRepository interface {
	// FindByNDetalle returns a decision record by its detail identifier.
	FindByNDetalle(ctx context.Context, ndetalle string) (*model.Decision, error)

	// FilterValues returns the distinct non-null values of every filterable
	// attribute, plus the names of judges linked to at least one decision.
	// Lists come back in store order; callers sort as needed.
	FilterValues(ctx context.Context) (*model.FilterValues, error)

	// Search returns a paginated page of distinct (ndetalle, storage path)
	// pairs matching the given filters, and the total distinct match count.
	Search(ctx context.Context, f SearchFilters, pq PageQuery) (*PageResult[model.SearchItem], error)
}

// SearchFilters holds the optional equality predicates of a decision search.
// An empty string means that predicate is absent.
type SearchFilters struct {
	OrganCode   string
	AppealCode  string
	Specialty   string
	OrganDetail string
	JudgeName   string
}

// ByJudge reports whether the judge-name predicate is present. The judge
// filter is the only one that changes the query's join shape.
func (f SearchFilters) ByJudge() bool {
	return f.JudgeName != ""
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
