package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matcha-labs/matcha-mcp/internal/adapters/driven/storage/memory"
	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
)

type contractFixture struct {
	service   *ContractService
	deals     *memory.DealStore
	contracts *memory.ContractStore
	generator *fakeGenerator
}

func newContractFixture(t *testing.T, generator *fakeGenerator) *contractFixture {
	t.Helper()
	f := &contractFixture{
		deals:     memory.NewDealStore(),
		contracts: memory.NewContractStore(),
		generator: generator,
	}
	if generator == nil {
		f.service = NewContractService(f.deals, f.contracts, nil, newFakeClock(), newSeqIDs())
	} else {
		f.service = NewContractService(f.deals, f.contracts, generator, newFakeClock(), newSeqIDs())
	}

	err := f.deals.Save(context.Background(), domain.Deal{
		ID:        "deal-1",
		RequestID: "request-1",
		BrandID:   "brand-1",
		CreatorID: "creator-1",
		Terms: domain.DealTerms{
			Deliverables:  []string{"3 posts"},
			Timeline:      "4 weeks",
			PaymentAmount: 2500,
			UsageRights:   "organic social",
		},
		Confirmations: []string{"creator-1", "brand-1"},
		Status:        domain.DealFinal,
	})
	require.NoError(t, err)
	return f
}

func TestContractService_Generate_Success(t *testing.T) {
	f := newContractFixture(t, &fakeGenerator{text: "  Clause text.  "})

	contract, err := f.service.Generate(context.Background(), "deal-1", "")

	require.NoError(t, err)
	assert.Equal(t, "contract_1", contract.ID)
	assert.Equal(t, "deal-1", contract.DealID)
	assert.Equal(t, "English", contract.Language)
	assert.Equal(t, "matcha://contracts/contract_1.pdf", contract.URL)

	expected := []string{"deliverables", "timeline", "payment_terms", "usage_rights", "revisions", "termination"}
	require.Len(t, contract.Sections, len(expected))
	for _, name := range expected {
		assert.Equal(t, "Clause text.", contract.Sections[name], name)
	}

	// One generation per section, fed the finalized terms.
	assert.Equal(t, len(expected), f.generator.callCount())
	assert.Contains(t, f.generator.prompts[0], "Payment: 2500.00")
	assert.Equal(t, 512, f.generator.opts[0].MaxTokens)
}

func TestContractService_Generate_Language(t *testing.T) {
	f := newContractFixture(t, &fakeGenerator{text: "Klausel."})

	contract, err := f.service.Generate(context.Background(), "deal-1", "German")

	require.NoError(t, err)
	assert.Equal(t, "German", contract.Language)
	assert.Contains(t, f.generator.prompts[0], "in German")
}

func TestContractService_Generate_Idempotent(t *testing.T) {
	f := newContractFixture(t, &fakeGenerator{text: "Clause."})
	ctx := context.Background()

	first, err := f.service.Generate(ctx, "deal-1", "")
	require.NoError(t, err)
	calls := f.generator.callCount()

	second, err := f.service.Generate(ctx, "deal-1", "French")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "English", second.Language)
	assert.Equal(t, calls, f.generator.callCount(), "existing contract must be returned without regenerating")
}

func TestContractService_Generate_DealNotFinal(t *testing.T) {
	f := newContractFixture(t, &fakeGenerator{text: "Clause."})
	ctx := context.Background()

	for _, status := range []domain.DealStatus{domain.DealProposed, domain.DealPending, domain.DealExpired} {
		deal, err := f.deals.Get(ctx, "deal-1")
		require.NoError(t, err)
		deal.Status = status
		require.NoError(t, f.deals.Save(ctx, *deal))

		_, err = f.service.Generate(ctx, "deal-1", "")
		assert.ErrorIs(t, err, domain.ErrInvalidState, string(status))
	}
}

func TestContractService_Generate_UnknownDeal(t *testing.T) {
	f := newContractFixture(t, &fakeGenerator{text: "Clause."})

	_, err := f.service.Generate(context.Background(), "deal-missing", "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContractService_Generate_NoGenerator(t *testing.T) {
	f := newContractFixture(t, nil)

	_, err := f.service.Generate(context.Background(), "deal-1", "")

	assert.ErrorIs(t, err, domain.ErrGeneratorUnavailable)
}

func TestContractService_SetBaseURL(t *testing.T) {
	f := newContractFixture(t, &fakeGenerator{text: "Clause."})
	f.service.SetBaseURL("https://contracts.example.com/")

	contract, err := f.service.Generate(context.Background(), "deal-1", "")

	require.NoError(t, err)
	assert.Equal(t, "https://contracts.example.com/contract_1.pdf", contract.URL)
}
