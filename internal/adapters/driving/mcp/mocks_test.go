package mcp

import (
	"context"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driving"
)

// mockProfileService is a mock implementation of driving.ProfileService.
type mockProfileService struct {
	profile  *domain.Profile
	profiles []domain.Profile
	err      error
}

func (m *mockProfileService) Create(_ context.Context, _ driving.NewProfile) (*domain.Profile, error) {
	return m.profile, m.err
}

func (m *mockProfileService) Get(_ context.Context, _ string) (*domain.Profile, error) {
	return m.profile, m.err
}

func (m *mockProfileService) UpdateBio(_ context.Context, _, _ string, _ []string) (*domain.Profile, error) {
	return m.profile, m.err
}

func (m *mockProfileService) List(_ context.Context) ([]domain.Profile, error) {
	return m.profiles, m.err
}

// mockRequestService is a mock implementation of driving.RequestService.
type mockRequestService struct {
	request *domain.Request
	err     error
}

func (m *mockRequestService) Create(_ context.Context, _ driving.NewRequest) (*domain.Request, error) {
	return m.request, m.err
}

func (m *mockRequestService) Get(_ context.Context, _ string) (*domain.Request, error) {
	return m.request, m.err
}

func (m *mockRequestService) Withdraw(_ context.Context, _, _ string) error {
	return m.err
}

// mockMatchingService is a mock implementation of driving.MatchingService.
type mockMatchingService struct {
	matches []domain.MatchResult
	err     error
}

func (m *mockMatchingService) FindMatches(
	_ context.Context,
	_ string,
	_ float64,
	_ *domain.MatchFilters,
) ([]domain.MatchResult, error) {
	return m.matches, m.err
}

// mockInterestService is a mock implementation of driving.InterestService.
type mockInterestService struct {
	interest *domain.Interest
	err      error
}

func (m *mockInterestService) Express(_ context.Context, _, _ string) (*domain.Interest, error) {
	return m.interest, m.err
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	window   *domain.ChatWindow
	message  *domain.Message
	messages []domain.Message
	err      error
}

func (m *mockChatService) Open(_ context.Context, _, _, _ string) (*domain.ChatWindow, error) {
	return m.window, m.err
}

func (m *mockChatService) Send(_ context.Context, _, _, _ string) (*domain.Message, error) {
	return m.message, m.err
}

func (m *mockChatService) Close(_ context.Context, _, _ string) (*domain.ChatWindow, error) {
	return m.window, m.err
}

func (m *mockChatService) History(_ context.Context, _ string) ([]domain.Message, error) {
	return m.messages, m.err
}

// mockDealService is a mock implementation of driving.DealService.
type mockDealService struct {
	deal *domain.Deal
	err  error
}

func (m *mockDealService) Propose(_ context.Context, _, _, _ string, _ domain.DealTerms) (*domain.Deal, error) {
	return m.deal, m.err
}

func (m *mockDealService) Confirm(_ context.Context, _, _ string, _ domain.DealTerms) (*domain.Deal, error) {
	return m.deal, m.err
}

func (m *mockDealService) Get(_ context.Context, _ string) (*domain.Deal, error) {
	return m.deal, m.err
}

// mockInsightService is a mock implementation of driving.InsightService.
type mockInsightService struct {
	analysis *domain.ROIAnalysis
	err      error
}

func (m *mockInsightService) AnalyseROI(_ context.Context, _, _ string, _ float64) (*domain.ROIAnalysis, error) {
	return m.analysis, m.err
}

// mockContractService is a mock implementation of driving.ContractService.
type mockContractService struct {
	contract *domain.Contract
	err      error
}

func (m *mockContractService) Generate(_ context.Context, _, _ string) (*domain.Contract, error) {
	return m.contract, m.err
}

// mockAnalyticsService is a mock implementation of driving.AnalyticsService.
type mockAnalyticsService struct {
	snapshot *domain.AnalyticsSnapshot
	err      error
}

func (m *mockAnalyticsService) Snapshot(
	_ context.Context,
	_ string,
	_ domain.EntityType,
	_ string,
) (*domain.AnalyticsSnapshot, error) {
	return m.snapshot, m.err
}

// allPorts builds a Ports value with every mock wired in. Individual
// mocks can be overridden before constructing the server.
func allPorts() *Ports {
	return &Ports{
		Profile:   &mockProfileService{},
		Request:   &mockRequestService{},
		Matching:  &mockMatchingService{},
		Interest:  &mockInterestService{},
		Chat:      &mockChatService{},
		Deal:      &mockDealService{},
		Insight:   &mockInsightService{},
		Contract:  &mockContractService{},
		Analytics: &mockAnalyticsService{},
	}
}
