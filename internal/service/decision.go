package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"casillero/internal/model"
	"casillero/internal/repository"
	"casillero/internal/storage"
)

var (
	ErrNDetalleRequired = errors.New("ndetalle is required")
	ErrNotFound         = errors.New("decision not found")
)

// SearchResult is the service-level DTO for one page of a filtered search.
// Items maps each decision identifier to its storage path; a decision without
// a stored document maps to null.
type SearchResult struct {
	TotalCount int                `json:"total_count"`
	Items      map[string]*string `json:"items"`
}

// DecisionService defines the read-side use cases over the decisions registry.
type DecisionService interface {
	// ResolveDownload mints a time-limited download URL for the stored
	// document of the given decision. Returns ErrNotFound when the decision
	// does not exist or carries no stored document.
	ResolveDownload(ctx context.Context, ndetalle string) (string, error)

	// FilterValues returns the distinct values of every filterable
	// attribute, each list sorted ascending.
	FilterValues(ctx context.Context) (*model.FilterValues, error)

	// Search returns the total distinct match count and one page of results
	// for the given filters using limit/offset.
	Search(ctx context.Context, f repository.SearchFilters, limit, offset int) (*SearchResult, error)
}

// decisionService is a concrete implementation of DecisionService.
type decisionService struct {
	store       storage.Storage
	repo        repository.DecisionRepository
	downloadTTL time.Duration
}

// NewDecisionService constructs a new DecisionService. downloadTTL bounds the
// validity of every minted download URL.
func NewDecisionService(store storage.Storage, repo repository.DecisionRepository, downloadTTL time.Duration) DecisionService {
	return &decisionService{store: store, repo: repo, downloadTTL: downloadTTL}
}

// ResolveDownload looks up the decision's storage path and presigns a GET URL
// for it. The response carries only the URL, never the path itself.
func (s *decisionService) ResolveDownload(ctx context.Context, ndetalle string) (string, error) {
	if ndetalle == "" {
		return "", ErrNDetalleRequired
	}
	d, err := s.repo.FindByNDetalle(ctx, ndetalle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	// A record with no stored document is not downloadable; treat it the
	// same as a missing record.
	if d.StoragePath == nil || *d.StoragePath == "" {
		return "", ErrNotFound
	}

	u, err := s.store.PresignGet(ctx, *d.StoragePath, s.downloadTTL)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u, nil
}

// FilterValues returns the catalog of distinct filter values, sorted for
// stable client display.
func (s *decisionService) FilterValues(ctx context.Context) (*model.FilterValues, error) {
	fv, err := s.repo.FilterValues(ctx)
	if err != nil {
		return nil, err
	}
	fv.OrganCodes = sortedValues(fv.OrganCodes)
	fv.AppealCodes = sortedValues(fv.AppealCodes)
	fv.Specialties = sortedValues(fv.Specialties)
	fv.OrganDetails = sortedValues(fv.OrganDetails)
	fv.JudgeNames = sortedValues(fv.JudgeNames)
	return fv, nil
}

// Search runs the filtered search and folds the page into the identifier to
// storage path mapping returned to clients.
func (s *decisionService) Search(ctx context.Context, f repository.SearchFilters, limit, offset int) (*SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.Search(ctx, f, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	items := make(map[string]*string, len(res.Items))
	for _, it := range res.Items {
		items[it.NDetalle] = it.StoragePath
	}
	return &SearchResult{TotalCount: res.Total, Items: items}, nil
}

// sortedValues sorts vs ascending, mapping nil to an empty list so the field
// marshals as [] rather than null.
func sortedValues(vs []string) []string {
	if vs == nil {
		return []string{}
	}
	sort.Strings(vs)
	return vs
}
