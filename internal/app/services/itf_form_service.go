package services

import (
	"context"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/pkg/logger"
)

// ITFFormService manages admin-uploaded ITF form documents
type ITFFormService struct {
	forms   ITFFormStore
	storage FileStore
}

// NewITFFormService creates a new ITFFormService
func NewITFFormService(forms ITFFormStore, storage FileStore) *ITFFormService {
	return &ITFFormService{
		forms:   forms,
		storage: storage,
	}
}

// Create records an uploaded form document.
func (s *ITFFormService) Create(ctx context.Context, uploadedBy int64, title, description, fileURL string) (*models.ITFForm, error) {
	form := &models.ITFForm{
		Title:       title,
		Description: description,
		FileURL:     fileURL,
		UploadedBy:  uploadedBy,
	}
	if err := s.forms.Create(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// List returns all form documents, newest first.
func (s *ITFFormService) List(ctx context.Context) ([]*models.ITFForm, error) {
	return s.forms.List(ctx)
}

// Get returns one form document.
func (s *ITFFormService) Get(ctx context.Context, id int64) (*models.ITFForm, error) {
	return s.forms.GetByID(ctx, id)
}

// Delete removes the record and then the stored file. A failed file removal
// is logged but does not fail the request since the record is already gone.
func (s *ITFFormService) Delete(ctx context.Context, id int64) error {
	form, err := s.forms.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.forms.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteFile(form.FileURL); err != nil {
		logger.Warn().Err(err).Str("fileURL", form.FileURL).Msg("Failed to delete stored form file")
	}
	return nil
}
