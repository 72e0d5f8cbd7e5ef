package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/adeyemi/siwes-portal/internal/app/models"
	"github.com/adeyemi/siwes-portal/internal/pkg/apperrors"
)

type fakeITFFormStore struct {
	nextID int64
	forms  map[int64]*models.ITFForm
}

func newFakeITFFormStore() *fakeITFFormStore {
	return &fakeITFFormStore{forms: make(map[int64]*models.ITFForm)}
}

func (f *fakeITFFormStore) Create(ctx context.Context, form *models.ITFForm) error {
	f.nextID++
	form.ID = f.nextID
	form.CreatedAt = time.Now()
	f.forms[form.ID] = form
	return nil
}

func (f *fakeITFFormStore) List(ctx context.Context) ([]*models.ITFForm, error) {
	out := make([]*models.ITFForm, 0, len(f.forms))
	for _, form := range f.forms {
		out = append(out, form)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeITFFormStore) GetByID(ctx context.Context, id int64) (*models.ITFForm, error) {
	form, ok := f.forms[id]
	if !ok {
		return nil, apperrors.ErrITFFormNotFound
	}
	return form, nil
}

func (f *fakeITFFormStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.forms[id]; !ok {
		return apperrors.ErrITFFormNotFound
	}
	delete(f.forms, id)
	return nil
}

type fakeFileStore struct {
	deleted []string
	fail    bool
}

func (f *fakeFileStore) DeleteFile(filePath string) error {
	if f.fail {
		return errors.New("disk gone")
	}
	f.deleted = append(f.deleted, filePath)
	return nil
}

func TestITFFormLifecycle(t *testing.T) {
	store := newFakeITFFormStore()
	files := &fakeFileStore{}
	service := NewITFFormService(store, files)

	form, err := service.Create(context.Background(), 1, "SPE-1 Placement Form", "Fill and return to the ITF office.", "uploads/itf-forms/spe1.pdf")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if form.ID == 0 || form.UploadedBy != 1 {
		t.Errorf("Create() form = %+v", form)
	}

	list, err := service.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].Title != "SPE-1 Placement Form" {
		t.Errorf("List() = %+v", list)
	}

	if err := service.Delete(context.Background(), form.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(files.deleted) != 1 || files.deleted[0] != "uploads/itf-forms/spe1.pdf" {
		t.Errorf("Delete() removed files = %v", files.deleted)
	}
	if _, err := service.Get(context.Background(), form.ID); !errors.Is(err, apperrors.ErrITFFormNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrITFFormNotFound", err)
	}
}

func TestITFFormDeleteSurvivesFileFailure(t *testing.T) {
	store := newFakeITFFormStore()
	files := &fakeFileStore{fail: true}
	service := NewITFFormService(store, files)

	form, err := service.Create(context.Background(), 1, "SPE-1", "", "uploads/itf-forms/spe1.pdf")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The record removal wins even when the file cannot be deleted.
	if err := service.Delete(context.Background(), form.ID); err != nil {
		t.Errorf("Delete() error = %v, want nil despite file failure", err)
	}
	if _, err := service.Get(context.Background(), form.ID); !errors.Is(err, apperrors.ErrITFFormNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrITFFormNotFound", err)
	}
}
