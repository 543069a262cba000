// Package seed loads records from a YAML file and creates them through the services.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"catalogo/internal/models"
	"catalogo/internal/server"
	"catalogo/internal/services"
)

// File is the layout of a seed file.
type File struct {
	Products   []models.ProductPayload   `yaml:"products"`
	Books      []models.BookPayload      `yaml:"books"`
	Volunteers []models.VolunteerPayload `yaml:"volunteers"`
}

// Result counts what a seed run did, per kind name.
type Result struct {
	Created map[string]int
	Skipped map[string]int
}

// Load reads and decodes a seed file. Unknown keys are rejected.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}
	return &file, nil
}

// Run creates every entry of file. Entries whose natural key already exists are
// skipped; any other failure stops the run.
func Run(ctx context.Context, file *File, svc *server.Services, logger zerolog.Logger) (Result, error) {
	res := Result{Created: map[string]int{}, Skipped: map[string]int{}}

	if err := create[models.Product](ctx, svc.Products, file.Products, res, logger); err != nil {
		return res, err
	}
	if err := create[models.Book](ctx, svc.Books, file.Books, res, logger); err != nil {
		return res, err
	}
	if err := create[models.Volunteer](ctx, svc.Volunteers, file.Volunteers, res, logger); err != nil {
		return res, err
	}
	return res, nil
}

type creator[T any, P any] interface {
	Kind() services.Kind
	Create(ctx context.Context, in P) (*T, error)
}

func create[T any, P any](ctx context.Context, svc creator[T, P], items []P, res Result, logger zerolog.Logger) error {
	kind := svc.Kind().Name
	for i, item := range items {
		_, err := svc.Create(ctx, item)
		switch {
		case err == nil:
			res.Created[kind]++
		case errors.Is(err, services.ErrDuplicate):
			res.Skipped[kind]++
			logger.Info().Str("kind", kind).Int("entry", i).Msg("record already exists, skipped")
		default:
			return fmt.Errorf("%s entry %d: %w", kind, i, err)
		}
	}
	return nil
}
