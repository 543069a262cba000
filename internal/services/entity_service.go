package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"catalogo/internal/metrics"
	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/validation"
)

// Publisher delivers record lifecycle events to a broker.
type Publisher interface {
	PublishJSON(routingKey string, payload any) error
}

// Payload is a decoded create or partial-update body for records of type T.
type Payload[T any] interface {
	Apply(dst *T)
}

type recordPtr[T any] interface {
	*T
	models.Record
}

// Dependencies are the collaborators shared by every entity service.
// Publisher and Metrics are optional.
type Dependencies struct {
	Validate  *validator.Validate
	Publisher Publisher
	Metrics   *metrics.Metrics
	Logger    zerolog.Logger
}

// EntityService implements list, get, create, update and delete for one entity kind.
type EntityService[T any, PT recordPtr[T], P Payload[T]] struct {
	repo repositories.Repository[T]
	kind Kind
	deps Dependencies
}

// NewEntityService creates an EntityService over repo for the given kind.
func NewEntityService[T any, PT recordPtr[T], P Payload[T]](repo repositories.Repository[T], kind Kind, deps Dependencies) *EntityService[T, PT, P] {
	if deps.Validate == nil {
		deps.Validate = validation.New()
	}
	deps.Logger = deps.Logger.With().Str("kind", kind.Name).Logger()
	return &EntityService[T, PT, P]{
		repo: repo,
		kind: kind,
		deps: deps,
	}
}

// Kind returns the declaration of the served entity kind.
func (s *EntityService[T, PT, P]) Kind() Kind {
	return s.kind
}

// List retrieves the records matching filter, in the kind's default order unless
// the filter sets one.
func (s *EntityService[T, PT, P]) List(ctx context.Context, filter repositories.Filter) ([]T, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = s.kind.ListOrder
	}
	return s.repo.Find(ctx, filter)
}

// GetByID retrieves a single record. Malformed identifiers are reported as not found.
func (s *EntityService[T, PT, P]) GetByID(ctx context.Context, id string) (*T, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s with ID %s: %w", s.kind.Name, id, ErrNotFound)
	}
	return s.repo.GetByID(ctx, id)
}

// Create validates the payload, rejects a duplicate natural key and inserts the record.
// The lookup before the insert is only a fast path: the store's unique index is what
// settles concurrent creates, and its violation is reported as ErrDuplicate too.
func (s *EntityService[T, PT, P]) Create(ctx context.Context, in P) (*T, error) {
	if err := s.deps.Validate.Struct(in); err != nil {
		return nil, newValidationError(err)
	}

	var record T
	PT(&record).ApplyDefaults()
	in.Apply(&record)
	if err := s.deps.Validate.Struct(&record); err != nil {
		return nil, newValidationError(err)
	}

	column, key := PT(&record).NaturalKey()
	_, err := s.repo.FindOne(ctx, column, key)
	switch {
	case err == nil:
		s.deps.Metrics.DuplicateRejected(s.kind.Name, metrics.GuardProbe)
		return nil, fmt.Errorf("%s with %s %q: %w", s.kind.Name, column, key, ErrDuplicate)
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		if errors.Is(err, ErrDuplicate) {
			s.deps.Metrics.DuplicateRejected(s.kind.Name, metrics.GuardConstraint)
			s.deps.Logger.Warn().Str("key", key).Msg("duplicate passed the lookup and was rejected by the store")
		}
		return nil, err
	}

	s.publish("created", &record)
	return &record, nil
}

// Update merges the fields present in the payload into an existing record and
// re-validates the result before saving it.
func (s *EntityService[T, PT, P]) Update(ctx context.Context, id string, in P) (*T, error) {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Apply(record)
	if err := s.deps.Validate.Struct(record); err != nil {
		return nil, newValidationError(err)
	}

	if err := s.repo.Update(ctx, record); err != nil {
		if errors.Is(err, ErrDuplicate) {
			s.deps.Metrics.DuplicateRejected(s.kind.Name, metrics.GuardConstraint)
		}
		return nil, err
	}

	s.publish("updated", record)
	return record, nil
}

// Delete removes a record and returns it.
func (s *EntityService[T, PT, P]) Delete(ctx context.Context, id string) (*T, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s with ID %s: %w", s.kind.Name, id, ErrNotFound)
	}
	record, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish("deleted", record)
	return record, nil
}

// DistinctValues returns the values currently stored in column; order is store-defined.
func (s *EntityService[T, PT, P]) DistinctValues(ctx context.Context, column string) ([]string, error) {
	return s.repo.Distinct(ctx, column)
}

// Ping checks the store connection.
func (s *EntityService[T, PT, P]) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// publish is best effort: a broker failure never fails the request.
func (s *EntityService[T, PT, P]) publish(action string, record *T) {
	if s.deps.Publisher == nil {
		return
	}
	evt := models.RecordEvent{
		Kind:       s.kind.Name,
		Action:     action,
		ID:         PT(record).GetID(),
		OccurredAt: time.Now().UTC(),
		Record:     record,
	}
	err := s.deps.Publisher.PublishJSON(evt.RoutingKey(), evt)
	s.deps.Metrics.EventPublished(s.kind.Name, action, err)
	if err != nil {
		s.deps.Logger.Warn().Err(err).Str("id", evt.ID).Str("action", action).Msg("failed to publish record event")
	}
}
