package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/carbonx_exchange/internal/apperrors"
	"github.com/SscSPs/carbonx_exchange/internal/core/domain"
	portssvc "github.com/SscSPs/carbonx_exchange/internal/core/ports/services"
	"github.com/SscSPs/carbonx_exchange/internal/utils"
)

// CompanySeed is a directory entry with its plaintext fixture password.
type CompanySeed struct {
	Company  domain.Company
	Password string
}

// DefaultCompanySeeds are the demo participants of the marketplace.
func DefaultCompanySeeds() []CompanySeed {
	return []CompanySeed{
		{
			Company: domain.Company{
				CompanyID: "BEE-KA-S001",
				Name:      "JSW Steel",
				Industry:  "Steel Manufacturing",
				Sector:    "Iron & Steel",
				Location:  "Bengaluru, Karnataka",
				Logo:      "🏭",
			},
			Password: "jsw2025",
		},
		{
			Company: domain.Company{
				CompanyID: "BEE-KA-C001",
				Name:      "ACC Cement",
				Industry:  "Cement Manufacturing",
				Sector:    "Cement",
				Location:  "Bengaluru, Karnataka",
				Logo:      "🏗️",
			},
			Password: "acc2025",
		},
		{
			Company: domain.Company{
				CompanyID: "BEE-KA-R001",
				Name:      "HPCL",
				Industry:  "Oil & Gas Refinery",
				Sector:    "Petroleum Refining",
				Location:  "Bengaluru, Karnataka",
				Logo:      "⛽",
			},
			Password: "hpcl2025",
		},
	}
}

// companyService is a read-only, in-process company directory. Passwords are
// bcrypt-hashed once at construction.
type companyService struct {
	BaseService
	companies map[string]domain.Company
	order     []string
}

func NewCompanyService(seeds []CompanySeed) (portssvc.CompanySvcFacade, error) {
	svc := &companyService{companies: make(map[string]domain.Company, len(seeds))}
	for _, seed := range seeds {
		if _, dup := svc.companies[seed.Company.CompanyID]; dup {
			return nil, fmt.Errorf("%w: company %s", apperrors.ErrDuplicate, seed.Company.CompanyID)
		}
		hash, err := utils.HashPassword(seed.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %s: %w", seed.Company.CompanyID, err)
		}
		company := seed.Company
		company.PasswordHash = hash
		svc.companies[company.CompanyID] = company
		svc.order = append(svc.order, company.CompanyID)
	}
	sort.Strings(svc.order)
	return svc, nil
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) GetCompany(_ context.Context, companyID string) (*domain.Company, error) {
	company, ok := s.companies[companyID]
	if !ok {
		return nil, fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
	}
	return &company, nil
}

func (s *companyService) ListCompanies(_ context.Context) ([]domain.Company, error) {
	out := make([]domain.Company, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.companies[id])
	}
	return out, nil
}

func (s *companyService) Authenticate(ctx context.Context, companyID string, password string) (*domain.Company, error) {
	company, ok := s.companies[companyID]
	if !ok || !utils.CheckPasswordHash(password, company.PasswordHash) {
		s.LogInfo(ctx, "Login rejected", "company_id", companyID)
		return nil, apperrors.ErrUnauthorized
	}
	return &company, nil
}
