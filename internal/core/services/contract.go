package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driving"
	"github.com/matcha-labs/matcha-mcp/internal/logger"
)

// Ensure ContractService implements the interface.
var _ driving.ContractService = (*ContractService)(nil)

// DefaultContractLanguage is used when the caller omits a language.
const DefaultContractLanguage = "English"

// contractSections are rendered in this order.
var contractSections = []string{
	"deliverables",
	"timeline",
	"payment_terms",
	"usage_rights",
	"revisions",
	"termination",
}

// ContractService renders contract documents for finalized deals. The
// core only supplies the finalized terms; rendering is delegated to the
// injected text generator and the record is persisted for retrieval.
type ContractService struct {
	deals     driven.DealStore
	contracts driven.ContractStore
	generator driven.TextGenerator
	clock     driven.Clock
	ids       driven.IDGenerator
	baseURL   string
}

// NewContractService creates a new contract service.
// The generator is optional (can be nil).
func NewContractService(
	deals driven.DealStore,
	contracts driven.ContractStore,
	generator driven.TextGenerator,
	clock driven.Clock,
	ids driven.IDGenerator,
) *ContractService {
	return &ContractService{
		deals:     deals,
		contracts: contracts,
		generator: generator,
		clock:     clock,
		ids:       ids,
		baseURL:   "matcha://contracts",
	}
}

// SetBaseURL overrides the base URL contracts are published under.
func (s *ContractService) SetBaseURL(u string) {
	if u != "" {
		s.baseURL = strings.TrimSuffix(u, "/")
	}
}

// Generate renders a contract for a finalized deal. Rendering the same
// deal twice returns the existing contract.
func (s *ContractService) Generate(ctx context.Context, dealID, language string) (*domain.Contract, error) {
	if language == "" {
		language = DefaultContractLanguage
	}

	deal, err := s.deals.Get(ctx, dealID)
	if err != nil {
		return nil, err
	}
	// A contract must never exist for a deal that has not reached mutual
	// confirmation.
	if deal.Status != domain.DealFinal {
		return nil, fmt.Errorf("%w: deal %s is %s, not finalized", domain.ErrInvalidState, dealID, deal.Status)
	}

	existing, err := s.contracts.GetByDeal(ctx, dealID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("looking up contract: %w", err)
	}

	if s.generator == nil {
		return nil, domain.ErrGeneratorUnavailable
	}

	sections, err := s.render(ctx, deal, language)
	if err != nil {
		return nil, err
	}

	contract := domain.Contract{
		ID:        s.ids.NewID("contract"),
		DealID:    dealID,
		Language:  language,
		Sections:  sections,
		CreatedAt: s.clock.Now(),
	}
	contract.URL = fmt.Sprintf("%s/%s.pdf", s.baseURL, contract.ID)

	if err := s.contracts.Save(ctx, contract); err != nil {
		return nil, fmt.Errorf("saving contract: %w", err)
	}
	logger.Info("Rendered contract %s for deal %s", contract.ID, dealID)
	return &contract, nil
}

// render asks the generator for each contract section, feeding it the
// finalized terms as structured context.
func (s *ContractService) render(ctx context.Context, deal *domain.Deal, language string) (map[string]string, error) {
	terms := fmt.Sprintf(
		"Deliverables: %s\nTimeline: %s\nPayment: %.2f\nUsage rights: %s",
		strings.Join(deal.Terms.Deliverables, "; "), deal.Terms.Timeline,
		deal.Terms.PaymentAmount, deal.Terms.UsageRights,
	)

	sections := make(map[string]string, len(contractSections))
	for _, name := range contractSections {
		prompt := fmt.Sprintf(
			"Write the %q section of a brand-creator collaboration contract in %s.\n\nAgreed terms:\n%s",
			name, language, terms,
		)
		text, err := s.generator.Generate(ctx, prompt, driven.GenerateOptions{
			MaxTokens:   512,
			Temperature: 0.2,
			System:      "You draft precise, plain-language contract clauses.",
		})
		if err != nil {
			return nil, fmt.Errorf("rendering section %s: %w", name, err)
		}
		sections[name] = strings.TrimSpace(text)
	}
	return sections, nil
}
