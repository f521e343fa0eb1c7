package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Fallback returns the built-in service list used when the catalog store is
// unreachable. The storefront must stay browsable without the backend, so this
// list mirrors the seeded catalog.
func Fallback() []Service {
	fs := func(id, name string, price int64, category, description string, days int) Service {
		return Service{
			ID:            id,
			Name:          name,
			Price:         decimal.NewFromInt(price),
			Category:      category,
			Description:   description,
			EstimatedDays: days,
			Active:        true,
		}
	}

	const (
		gov = "Government & E-Citizen Services"
		it  = "IT Services"
		tax = "Tax Services"
	)

	return []Service{
		fs("1", "Good Conduct Certificate", 1500, gov, "Certificate of good conduct application", 7),
		fs("2", "NTSA Services", 2000, gov, "DL renewal, TIMS account registration, vehicle search", 3),
		fs("3", "Passport Application", 2500, gov, "Passport application assistance", 14),
		fs("4", "NSSF & NHIF Registration", 1000, gov, "Registration and contributions", 5),
		fs("5", "CRB Clearance Certificate", 800, gov, "Credit reference bureau clearance", 3),
		fs("6", "Web Development", 15000, it, "Custom website development", 21),
		fs("7", "Computer Repair", 3000, it, "Hardware and software repairs", 2),
		fs("8", "Windows Activation/Installation", 1500, it, "OS installation and activation", 1),
		fs("9", "Microsoft Office Installation", 2000, it, "MS Office suite installation", 1),
		fs("10", "Antivirus Installation", 1000, it, "Antivirus software installation", 1),
		fs("11", "Hardware Sales", 5000, it, "Computer hardware sales", 3),
		fs("12", "Laptop Ordering", 25000, it, "Order and sell laptops", 7),
		fs("13", "VAT Returns Filing", 3000, tax, "Monthly VAT returns preparation", 2),
		fs("14", "Tax Compliance Certificate", 2500, tax, "Tax compliance certificate application", 5),
		fs("15", "e-TIMS Services", 4000, tax, "Registration, installation, updates, training, receipts", 3),
		fs("16", "P9 Forms", 1500, tax, "P9 form preparation", 2),
		fs("17", "Income Tax Returns", 3500, tax, "Individual and company income tax returns", 5),
		fs("18", "PIN Registration", 500, tax, "Individual and non-individual PIN registration", 1),
	}
}

var _ Repository = (*FallbackRepository)(nil)

// FallbackRepository wraps a Repository so the storefront read path degrades
// to the built-in list when the store fails. ListActive never returns an error
// and is never silently empty; every other operation passes through untouched.
type FallbackRepository struct {
	inner Repository
	lg    *zap.Logger
}

// WithFallback wraps repo with fallback behaviour on ListActive.
func WithFallback(repo Repository, lg *zap.Logger) *FallbackRepository {
	return &FallbackRepository{inner: repo, lg: lg}
}

// ListActive returns the stored catalog, or the built-in list when the lookup
// fails or comes back empty.
func (r *FallbackRepository) ListActive(ctx context.Context) ([]Service, error) {
	services, err := r.inner.ListActive(ctx)
	if err != nil {
		r.lg.Warn("catalog store unavailable, serving built-in list", zap.Error(err))
		return Fallback(), nil
	}
	if len(services) == 0 {
		return Fallback(), nil
	}
	return services, nil
}

func (r *FallbackRepository) List(ctx context.Context) ([]Service, error) {
	return r.inner.List(ctx)
}

func (r *FallbackRepository) GetByIDs(ctx context.Context, ids []string) ([]Service, error) {
	return r.inner.GetByIDs(ctx, ids)
}

func (r *FallbackRepository) Create(ctx context.Context, s *Service) error {
	return r.inner.Create(ctx, s)
}

func (r *FallbackRepository) Update(ctx context.Context, s *Service) error {
	return r.inner.Update(ctx, s)
}

func (r *FallbackRepository) Delete(ctx context.Context, id string) error {
	return r.inner.Delete(ctx, id)
}
