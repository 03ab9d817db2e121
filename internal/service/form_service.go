package service

import (
	"context"
	"errors"
	"log"

	"auditdesk/internal/cache"
	"auditdesk/internal/model"
	"auditdesk/internal/repository"
)

var (
	ErrFormExists   = errors.New("a form with that name already exists")
	ErrFormNotFound = errors.New("form not found")
	ErrFormInvalid  = errors.New("form must have a name and at least one section")
)

// FormService handles form-definition CRUD with a Redis snapshot cache
type FormService struct {
	formRepo  repository.FormRepo
	formCache cache.FormCache
}

// NewFormService creates a new form service
func NewFormService(formRepo repository.FormRepo, formCache cache.FormCache) *FormService {
	return &FormService{
		formRepo:  formRepo,
		formCache: formCache,
	}
}

// Create stores a new form definition; names are unique
func (s *FormService) Create(ctx context.Context, form *model.FormDefinition) (string, error) {
	if form.Name == "" || len(form.Sections) == 0 {
		return "", ErrFormInvalid
	}

	existing, err := s.formRepo.GetByName(ctx, form.Name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrFormExists
	}

	return s.formRepo.Create(ctx, form)
}

// GetByName returns a form snapshot, cache first
func (s *FormService) GetByName(ctx context.Context, name string) (*model.FormDefinition, error) {
	form, err := s.formCache.Get(ctx, name)
	if err != nil {
		log.Printf("form cache read failed for %q: %v", name, err)
	}
	if form != nil {
		return form, nil
	}

	form, err = s.formRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, nil
	}

	if err := s.formCache.Set(ctx, form); err != nil {
		log.Printf("form cache write failed for %q: %v", name, err)
	}
	return form, nil
}

// List returns all form definitions
func (s *FormService) List(ctx context.Context) ([]*model.FormDefinition, error) {
	return s.formRepo.List(ctx)
}

// Update replaces a form definition. Submitted reports are unaffected:
// they carry their own section snapshot.
func (s *FormService) Update(ctx context.Context, form *model.FormDefinition) error {
	if form.Name == "" || len(form.Sections) == 0 {
		return ErrFormInvalid
	}

	existing, err := s.formRepo.GetByName(ctx, form.Name)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrFormNotFound
	}

	form.CreatedAt = existing.CreatedAt
	form.CreatedBy = existing.CreatedBy
	if err := s.formRepo.Update(ctx, form); err != nil {
		return err
	}
	if err := s.formCache.Invalidate(ctx, form.Name); err != nil {
		log.Printf("form cache invalidate failed for %q: %v", form.Name, err)
	}
	return nil
}

// Delete removes a form definition
func (s *FormService) Delete(ctx context.Context, name string) error {
	existing, err := s.formRepo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrFormNotFound
	}

	if err := s.formRepo.Delete(ctx, name); err != nil {
		return err
	}
	if err := s.formCache.Invalidate(ctx, name); err != nil {
		log.Printf("form cache invalidate failed for %q: %v", name, err)
	}
	return nil
}
