package bulkimport

import (
	"context"
	"errors"
	"testing"

	"github.com/zestotech/cost-estimator/backend/internal/domain"
)

type fakeCatalog struct {
	materials  map[string]*domain.Material
	findFunc   func(ctx context.Context, itemCode string) (*domain.Material, error)
	insertFunc func(ctx context.Context, material *domain.Material) error
	commitFunc func() error
	committed  bool
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{materials: make(map[string]*domain.Material)}
}

func (f *fakeCatalog) FindByItemCode(ctx context.Context, itemCode string) (*domain.Material, error) {
	if f.findFunc != nil {
		return f.findFunc(ctx, itemCode)
	}
	return f.materials[itemCode], nil
}

func (f *fakeCatalog) Insert(ctx context.Context, material *domain.Material) error {
	if f.insertFunc != nil {
		return f.insertFunc(ctx, material)
	}
	f.materials[material.ItemCode] = material
	return nil
}

func (f *fakeCatalog) Commit() error {
	if f.commitFunc != nil {
		return f.commitFunc()
	}
	f.committed = true
	return nil
}

func TestImportTemplate(t *testing.T) {
	catalog := newFakeCatalog()
	rows := Parse(Template())

	summary, err := Import(context.Background(), rows, catalog)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if summary.SuccessCount != 10 {
		t.Errorf("expected 10 successes, got %d", summary.SuccessCount)
	}
	if summary.ErrorCount != 0 {
		t.Errorf("expected no errors, got %d: %v", summary.ErrorCount, summary.Errors)
	}
	if !catalog.committed {
		t.Error("expected the batch to be committed")
	}

	cement := catalog.materials["CEM001"]
	if cement == nil {
		t.Fatal("expected CEM001 in the catalog")
	}
	if cement.ConsumingRate != 0.5 {
		t.Errorf("expected CEM001 consuming rate 0.5, got %v", cement.ConsumingRate)
	}
}

func TestImportDuplicateWithinBatch(t *testing.T) {
	catalog := newFakeCatalog()
	rows := []Row{
		{Line: 2, ItemCode: "CEM001", ItemName: "Portland Cement", StoringUOM: "Bag", PurchasingAmount: 25, ConsumingUOM: "Kg", ConversionUnit: 50},
		{Line: 3, ItemCode: "CEM001", ItemName: "Portland Cement Again", StoringUOM: "Bag", PurchasingAmount: 30, ConsumingUOM: "Kg", ConversionUnit: 50},
	}

	summary, err := Import(context.Background(), rows, catalog)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if summary.SuccessCount != 1 || summary.ErrorCount != 1 {
		t.Fatalf("expected 1 success and 1 error, got %d/%d", summary.SuccessCount, summary.ErrorCount)
	}
	if summary.Errors[0].Row != 3 {
		t.Errorf("expected the second occurrence to be rejected, got row %d", summary.Errors[0].Row)
	}
	if summary.Errors[0].Message != "material with item code 'CEM001' already exists" {
		t.Errorf("unexpected message: %q", summary.Errors[0].Message)
	}

	// First occurrence wins.
	if catalog.materials["CEM001"].ItemName != "Portland Cement" {
		t.Errorf("expected the first occurrence to be kept, got %q", catalog.materials["CEM001"].ItemName)
	}
}

func TestImportDuplicateAgainstCatalog(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.materials["CEM001"] = &domain.Material{ItemCode: "CEM001"}

	rows := []Row{
		{Line: 2, ItemCode: "CEM001", ItemName: "Portland Cement", StoringUOM: "Bag", PurchasingAmount: 25, ConsumingUOM: "Kg", ConversionUnit: 50},
		{Line: 3, ItemCode: "STL001", ItemName: "Steel Rebar 12mm", StoringUOM: "Ton", PurchasingAmount: 2500, ConsumingUOM: "Kg", ConversionUnit: 1000},
	}

	summary, err := Import(context.Background(), rows, catalog)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if summary.SuccessCount != 1 || summary.ErrorCount != 1 {
		t.Fatalf("expected 1 success and 1 error, got %d/%d", summary.SuccessCount, summary.ErrorCount)
	}
	if summary.Errors[0].Row != 2 {
		t.Errorf("expected row 2 rejected, got row %d", summary.Errors[0].Row)
	}
}

func TestImportReimportRejectsEverything(t *testing.T) {
	catalog := newFakeCatalog()
	rows := Parse(Template())

	first, err := Import(context.Background(), rows, catalog)
	if err != nil {
		t.Fatalf("first import failed: %v", err)
	}

	second, err := Import(context.Background(), rows, catalog)
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}

	if second.SuccessCount != 0 {
		t.Errorf("expected no successes on re-import, got %d", second.SuccessCount)
	}
	if second.ErrorCount != first.SuccessCount {
		t.Errorf("expected every previously imported row to be rejected, got %d of %d", second.ErrorCount, first.SuccessCount)
	}
}

func TestImportLookupFailureIsPerRow(t *testing.T) {
	catalog := newFakeCatalog()
	lookupErr := errors.New("connection reset")
	catalog.findFunc = func(ctx context.Context, itemCode string) (*domain.Material, error) {
		if itemCode == "CEM001" {
			return nil, lookupErr
		}
		return nil, nil
	}

	rows := []Row{
		{Line: 2, ItemCode: "CEM001", PurchasingAmount: 25, ConversionUnit: 50},
		{Line: 3, ItemCode: "STL001", PurchasingAmount: 2500, ConversionUnit: 1000},
	}

	summary, err := Import(context.Background(), rows, catalog)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if summary.SuccessCount != 1 || summary.ErrorCount != 1 {
		t.Fatalf("expected the failure to stay on its row, got %d/%d", summary.SuccessCount, summary.ErrorCount)
	}
	if summary.Errors[0].Message != lookupErr.Error() {
		t.Errorf("unexpected message: %q", summary.Errors[0].Message)
	}
}

func TestImportInsertFailureIsPerRow(t *testing.T) {
	catalog := newFakeCatalog()
	insertErr := errors.New("value too long for type character varying(20)")
	catalog.insertFunc = func(ctx context.Context, material *domain.Material) error {
		if material.ItemCode == "STL001" {
			return insertErr
		}
		catalog.materials[material.ItemCode] = material
		return nil
	}

	rows := []Row{
		{Line: 2, ItemCode: "CEM001", PurchasingAmount: 25, ConversionUnit: 50},
		{Line: 3, ItemCode: "STL001", PurchasingAmount: 2500, ConversionUnit: 1000},
		{Line: 4, ItemCode: "BLK001", PurchasingAmount: 3.50, ConversionUnit: 1},
	}

	summary, err := Import(context.Background(), rows, catalog)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if summary.SuccessCount != 2 || summary.ErrorCount != 1 {
		t.Fatalf("expected the bad row alone to fail, got %d/%d", summary.SuccessCount, summary.ErrorCount)
	}
	if summary.Errors[0].Row != 3 || summary.Errors[0].Message != insertErr.Error() {
		t.Errorf("unexpected row error: %+v", summary.Errors[0])
	}
	if catalog.materials["BLK001"] == nil {
		t.Error("expected the row after the failure to be inserted")
	}
	if !catalog.committed {
		t.Error("expected the batch to commit despite the rejected row")
	}
}

func TestImportCommitFailureKeepsSummary(t *testing.T) {
	catalog := newFakeCatalog()
	commitErr := errors.New("deadlock detected")
	catalog.commitFunc = func() error { return commitErr }

	rows := Parse(Template())

	summary, err := Import(context.Background(), rows, catalog)
	if !errors.Is(err, commitErr) {
		t.Fatalf("expected commit error, got %v", err)
	}
	if summary == nil {
		t.Fatal("expected the summary alongside the commit error")
	}
	if summary.SuccessCount != 10 {
		t.Errorf("expected the summary to stay intact, got %d successes", summary.SuccessCount)
	}
}
