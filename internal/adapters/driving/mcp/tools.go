package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driving"
)

// CreateProfileInput is the input schema for the create_creator_profile tool.
type CreateProfileInput struct {
	UserID    string   `json:"userId" jsonschema:"user ID of the creator"`
	Bio       string   `json:"bio" jsonschema:"creator biography and description"`
	NicheTags []string `json:"nicheTags" jsonschema:"content niche tags (e.g. tech, fashion, food)"`
	Location  string   `json:"location" jsonschema:"creator location"`
	Languages []string `json:"languages" jsonschema:"languages the creator creates content in"`
}

// CreateProfileOutput is the output schema for the create_creator_profile tool.
type CreateProfileOutput struct {
	ProfileID          string `json:"profileId"`
	Status             string `json:"status"`
	EmbeddingGenerated bool   `json:"embeddingGenerated"`
	CreatedAt          string `json:"createdAt"`
}

// CreateRequestInput is the input schema for the create_collaboration_request tool.
type CreateRequestInput struct {
	BrandID      string   `json:"brandId" jsonschema:"brand user ID"`
	Title        string   `json:"title" jsonschema:"collaboration title"`
	Description  string   `json:"description" jsonschema:"detailed collaboration description"`
	BudgetMin    float64  `json:"budgetMin" jsonschema:"minimum budget"`
	BudgetMax    float64  `json:"budgetMax" jsonschema:"maximum budget"`
	Timeline     string   `json:"timeline" jsonschema:"expected timeline (e.g. '2 weeks', '1 month')"`
	Deliverables []string `json:"deliverables" jsonschema:"expected deliverables"`
	NicheTags    []string `json:"nicheTags" jsonschema:"target niche tags"`
}

// CreateRequestOutput is the output schema for the create_collaboration_request tool.
type CreateRequestOutput struct {
	RequestID          string `json:"requestId"`
	Status             string `json:"status"`
	EmbeddingGenerated bool   `json:"embeddingGenerated"`
	CreatedAt          string `json:"createdAt"`
}

// BudgetRangeInput restricts candidates to an overlapping budget interval.
type BudgetRangeInput struct {
	Min float64 `json:"min" jsonschema:"minimum budget"`
	Max float64 `json:"max" jsonschema:"maximum budget"`
}

// MatchFiltersInput narrows the candidate set for a match query.
type MatchFiltersInput struct {
	Niche       []string          `json:"niche,omitempty" jsonschema:"filter by niche tags"`
	Location    string            `json:"location,omitempty" jsonschema:"filter by location"`
	BudgetRange *BudgetRangeInput `json:"budgetRange,omitempty" jsonschema:"filter by budget range overlap"`
}

// FindCreatorsInput is the input schema for the find_matching_creators tool.
type FindCreatorsInput struct {
	RequestID string             `json:"requestId" jsonschema:"collaboration request ID"`
	MinScore  float64            `json:"minScore,omitempty" jsonschema:"minimum match score (0-100)"`
	Filters   *MatchFiltersInput `json:"filters,omitempty" jsonschema:"optional candidate filters"`
}

// MatchOutput is one ranked creator in the find_matching_creators output.
type MatchOutput struct {
	CreatorID  string   `json:"creatorId"`
	ProfileID  string   `json:"profileId"`
	MatchScore float64  `json:"matchScore"`
	NicheTags  []string `json:"nicheTags"`
	Location   string   `json:"location"`
}

// FindCreatorsOutput is the output schema for the find_matching_creators tool.
type FindCreatorsOutput struct {
	Matches      []MatchOutput `json:"matches"`
	TotalMatches int           `json:"totalMatches"`
	MinScore     float64       `json:"minScore"`
}

// ROIAnalysisInput is the input schema for the generate_roi_analysis tool.
type ROIAnalysisInput struct {
	CreatorID  string  `json:"creatorId" jsonschema:"creator user ID"`
	RequestID  string  `json:"requestId" jsonschema:"collaboration request ID"`
	MatchScore float64 `json:"matchScore" jsonschema:"match score from semantic matching"`
}

// ROIAnalysisOutput is the output schema for the generate_roi_analysis tool.
type ROIAnalysisOutput struct {
	MatchScore       float64  `json:"matchScore"`
	ContentAlignment string   `json:"contentAlignment"`
	AudienceFit      string   `json:"audienceFit"`
	KeyFactors       []string `json:"keyFactors"`
	GeneratedAt      string   `json:"generatedAt"`
	ExpiresAt        string   `json:"expiresAt"`
}

// ExpressInterestInput is the input schema for the express_interest tool.
type ExpressInterestInput struct {
	CreatorID string `json:"creatorId" jsonschema:"creator user ID"`
	RequestID string `json:"requestId" jsonschema:"collaboration request ID"`
}

// ExpressInterestOutput is the output schema for the express_interest tool.
type ExpressInterestOutput struct {
	InterestID string `json:"interestId"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

// CreateChatWindowInput is the input schema for the create_chat_window tool.
type CreateChatWindowInput struct {
	BrandID   string `json:"brandId" jsonschema:"brand user ID"`
	CreatorID string `json:"creatorId" jsonschema:"creator user ID"`
	RequestID string `json:"requestId" jsonschema:"collaboration request ID"`
}

// CreateChatWindowOutput is the output schema for the create_chat_window tool.
type CreateChatWindowOutput struct {
	ChatID         string  `json:"chatId"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"createdAt"`
	ExpiresAt      string  `json:"expiresAt"`
	RemainingHours float64 `json:"remainingHours"`
}

// SendMessageInput is the input schema for the send_message tool.
type SendMessageInput struct {
	ChatID   string `json:"chatId" jsonschema:"chat window ID"`
	SenderID string `json:"senderId" jsonschema:"user ID of sender"`
	Content  string `json:"content" jsonschema:"message content"`
}

// SendMessageOutput is the output schema for the send_message tool.
type SendMessageOutput struct {
	MessageID string `json:"messageId"`
	SentAt    string `json:"sentAt"`
	Seq       int64  `json:"seq"`
}

// DealTermsInput carries the terms a party confirms.
type DealTermsInput struct {
	Deliverables  []string `json:"deliverables" jsonschema:"agreed deliverables"`
	Timeline      string   `json:"timeline" jsonschema:"agreed timeline"`
	PaymentAmount float64  `json:"paymentAmount" jsonschema:"agreed payment amount"`
	UsageRights   string   `json:"usageRights" jsonschema:"agreed content usage rights"`
}

// ProposeDealInput is the input schema for the propose_deal tool.
type ProposeDealInput struct {
	RequestID string         `json:"requestId" jsonschema:"collaboration request ID"`
	BrandID   string         `json:"brandId" jsonschema:"brand user ID"`
	CreatorID string         `json:"creatorId" jsonschema:"creator user ID"`
	Terms     DealTermsInput `json:"terms" jsonschema:"the proposed terms"`
}

// ProposeDealOutput is the output schema for the propose_deal tool.
type ProposeDealOutput struct {
	DealID    string `json:"dealId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// ConfirmDealInput is the input schema for the confirm_deal tool.
type ConfirmDealInput struct {
	DealID string         `json:"dealId" jsonschema:"deal ID"`
	UserID string         `json:"userId" jsonschema:"user ID confirming the deal"`
	Terms  DealTermsInput `json:"terms" jsonschema:"the terms being confirmed"`
}

// ConfirmDealOutput is the output schema for the confirm_deal tool.
type ConfirmDealOutput struct {
	DealID      string   `json:"dealId"`
	Status      string   `json:"status"`
	ConfirmedBy []string `json:"confirmedBy"`
	FinalizedAt string   `json:"finalizedAt,omitempty"`
}

// GenerateContractInput is the input schema for the generate_contract tool.
type GenerateContractInput struct {
	DealID   string `json:"dealId" jsonschema:"finalized deal ID"`
	Language string `json:"language,omitempty" jsonschema:"contract language (default English)"`
}

// GenerateContractOutput is the output schema for the generate_contract tool.
type GenerateContractOutput struct {
	ContractID  string            `json:"contractId"`
	DealID      string            `json:"dealId"`
	Language    string            `json:"language"`
	Sections    map[string]string `json:"sections"`
	ContractURL string            `json:"contractUrl"`
	GeneratedAt string            `json:"generatedAt"`
}

// GetAnalyticsInput is the input schema for the get_analytics tool.
type GetAnalyticsInput struct {
	UserID     string `json:"userId" jsonschema:"user ID"`
	EntityType string `json:"entityType" jsonschema:"analytics side: brand or creator"`
	TimeRange  string `json:"timeRange,omitempty" jsonschema:"time range (e.g. '7d', '30d', '90d')"`
}

// AnalyticsMetricsOutput holds the activity counts of one window.
type AnalyticsMetricsOutput struct {
	MatchAppearances int `json:"matchAppearances"`
	Interests        int `json:"interests"`
	ChatWindows      int `json:"chatWindows"`
	Messages         int `json:"messages"`
	DealsFinalized   int `json:"dealsFinalized"`
}

// AnalyticsTrendsOutput holds the window-over-window changes.
type AnalyticsTrendsOutput struct {
	InterestsChange string `json:"interestsChange"`
	ChatsChange     string `json:"chatsChange"`
	DealsChange     string `json:"dealsChange"`
}

// GetAnalyticsOutput is the output schema for the get_analytics tool.
type GetAnalyticsOutput struct {
	UserID      string                 `json:"userId"`
	EntityType  string                 `json:"entityType"`
	TimeRange   string                 `json:"timeRange"`
	Metrics     AnalyticsMetricsOutput `json:"metrics"`
	Trends      AnalyticsTrendsOutput  `json:"trends"`
	GeneratedAt string                 `json:"generatedAt"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_creator_profile",
		Description: "Create a new creator profile. Generates an embedding for semantic matching.",
	}, s.handleCreateProfile)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_collaboration_request",
		Description: "Create a new brand collaboration request. Generates an embedding for semantic matching.",
	}, s.handleCreateRequest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_matching_creators",
		Description: "Find creators that semantically match a collaboration request.",
	}, s.handleFindCreators)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_roi_analysis",
		Description: "Generate an ROI analysis explaining why a creator matches a brand's request.",
	}, s.handleROIAnalysis)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "express_interest",
		Description: "Creator expresses interest in a collaboration request.",
	}, s.handleExpressInterest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_chat_window",
		Description: "Create a 48-hour ephemeral chat window between brand and creator.",
	}, s.handleCreateChatWindow)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "send_message",
		Description: "Send a message in an active chat window.",
	}, s.handleSendMessage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "propose_deal",
		Description: "Propose a collaboration deal for a request between brand and creator.",
	}, s.handleProposeDeal)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "confirm_deal",
		Description: "Confirm a collaboration deal. Requires mutual confirmation from both parties.",
	}, s.handleConfirmDeal)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_contract",
		Description: "Generate a contract for a finalized deal.",
	}, s.handleGenerateContract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_analytics",
		Description: "Get activity analytics for a brand or creator.",
	}, s.handleGetAnalytics)
}

// handleCreateProfile handles the create_creator_profile tool invocation.
func (s *Server) handleCreateProfile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateProfileInput,
) (*mcp.CallToolResult, CreateProfileOutput, error) {
	profile, err := s.ports.Profile.Create(ctx, driving.NewProfile{
		UserID:    input.UserID,
		Bio:       input.Bio,
		NicheTags: input.NicheTags,
		Location:  input.Location,
		Languages: input.Languages,
	})
	if err != nil {
		return errorResult(err), CreateProfileOutput{}, nil
	}

	return nil, CreateProfileOutput{
		ProfileID:          profile.ID,
		Status:             string(profile.Status),
		EmbeddingGenerated: len(profile.Embedding) > 0,
		CreatedAt:          profile.CreatedAt.Format(time.RFC3339),
	}, nil
}

// handleCreateRequest handles the create_collaboration_request tool invocation.
func (s *Server) handleCreateRequest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateRequestInput,
) (*mcp.CallToolResult, CreateRequestOutput, error) {
	request, err := s.ports.Request.Create(ctx, driving.NewRequest{
		BrandID:      input.BrandID,
		Title:        input.Title,
		Description:  input.Description,
		BudgetMin:    input.BudgetMin,
		BudgetMax:    input.BudgetMax,
		Timeline:     input.Timeline,
		Deliverables: input.Deliverables,
		NicheTags:    input.NicheTags,
	})
	if err != nil {
		return errorResult(err), CreateRequestOutput{}, nil
	}

	return nil, CreateRequestOutput{
		RequestID:          request.ID,
		Status:             string(request.Status),
		EmbeddingGenerated: len(request.Embedding) > 0,
		CreatedAt:          request.CreatedAt.Format(time.RFC3339),
	}, nil
}

// handleFindCreators handles the find_matching_creators tool invocation.
func (s *Server) handleFindCreators(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindCreatorsInput,
) (*mcp.CallToolResult, FindCreatorsOutput, error) {
	var filters *domain.MatchFilters
	if input.Filters != nil {
		filters = &domain.MatchFilters{
			Niche:    input.Filters.Niche,
			Location: input.Filters.Location,
		}
		if input.Filters.BudgetRange != nil {
			filters.BudgetRange = &domain.BudgetRange{
				Min: input.Filters.BudgetRange.Min,
				Max: input.Filters.BudgetRange.Max,
			}
		}
	}

	matches, err := s.ports.Matching.FindMatches(ctx, input.RequestID, input.MinScore, filters)
	if err != nil {
		return errorResult(err), FindCreatorsOutput{}, nil
	}

	output := FindCreatorsOutput{
		Matches:      make([]MatchOutput, len(matches)),
		TotalMatches: len(matches),
		MinScore:     input.MinScore,
	}
	for i := range matches {
		output.Matches[i] = MatchOutput{
			CreatorID:  matches[i].CreatorID,
			ProfileID:  matches[i].ProfileID,
			MatchScore: matches[i].Score,
			NicheTags:  matches[i].NicheTags,
			Location:   matches[i].Location,
		}
	}
	return nil, output, nil
}

// handleROIAnalysis handles the generate_roi_analysis tool invocation.
func (s *Server) handleROIAnalysis(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ROIAnalysisInput,
) (*mcp.CallToolResult, ROIAnalysisOutput, error) {
	analysis, err := s.ports.Insight.AnalyseROI(ctx, input.CreatorID, input.RequestID, input.MatchScore)
	if err != nil {
		return errorResult(err), ROIAnalysisOutput{}, nil
	}

	return nil, ROIAnalysisOutput{
		MatchScore:       analysis.MatchScore,
		ContentAlignment: analysis.ContentAlignment,
		AudienceFit:      analysis.AudienceFit,
		KeyFactors:       analysis.KeyFactors,
		GeneratedAt:      analysis.GeneratedAt.Format(time.RFC3339),
		ExpiresAt:        analysis.ExpiresAt.Format(time.RFC3339),
	}, nil
}

// handleExpressInterest handles the express_interest tool invocation.
func (s *Server) handleExpressInterest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExpressInterestInput,
) (*mcp.CallToolResult, ExpressInterestOutput, error) {
	interest, err := s.ports.Interest.Express(ctx, input.CreatorID, input.RequestID)
	if err != nil {
		return errorResult(err), ExpressInterestOutput{}, nil
	}

	return nil, ExpressInterestOutput{
		InterestID: interest.ID,
		Status:     string(interest.Status),
		CreatedAt:  interest.CreatedAt.Format(time.RFC3339),
	}, nil
}

// handleCreateChatWindow handles the create_chat_window tool invocation.
func (s *Server) handleCreateChatWindow(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateChatWindowInput,
) (*mcp.CallToolResult, CreateChatWindowOutput, error) {
	window, err := s.ports.Chat.Open(ctx, input.BrandID, input.CreatorID, input.RequestID)
	if err != nil {
		return errorResult(err), CreateChatWindowOutput{}, nil
	}

	return nil, CreateChatWindowOutput{
		ChatID:         window.ID,
		Status:         string(window.Status),
		CreatedAt:      window.CreatedAt.Format(time.RFC3339),
		ExpiresAt:      window.ExpiresAt.Format(time.RFC3339),
		RemainingHours: window.ExpiresAt.Sub(window.CreatedAt).Hours(),
	}, nil
}

// handleSendMessage handles the send_message tool invocation.
func (s *Server) handleSendMessage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SendMessageInput,
) (*mcp.CallToolResult, SendMessageOutput, error) {
	msg, err := s.ports.Chat.Send(ctx, input.ChatID, input.SenderID, input.Content)
	if err != nil {
		return errorResult(err), SendMessageOutput{}, nil
	}

	return nil, SendMessageOutput{
		MessageID: msg.ID,
		SentAt:    msg.SentAt.Format(time.RFC3339),
		Seq:       msg.Seq,
	}, nil
}

// handleProposeDeal handles the propose_deal tool invocation.
func (s *Server) handleProposeDeal(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProposeDealInput,
) (*mcp.CallToolResult, ProposeDealOutput, error) {
	deal, err := s.ports.Deal.Propose(ctx, input.RequestID, input.BrandID, input.CreatorID, domain.DealTerms{
		Deliverables:  input.Terms.Deliverables,
		Timeline:      input.Terms.Timeline,
		PaymentAmount: input.Terms.PaymentAmount,
		UsageRights:   input.Terms.UsageRights,
	})
	if err != nil {
		return errorResult(err), ProposeDealOutput{}, nil
	}

	return nil, ProposeDealOutput{
		DealID:    deal.ID,
		Status:    string(deal.Status),
		CreatedAt: deal.CreatedAt.Format(time.RFC3339),
	}, nil
}

// handleConfirmDeal handles the confirm_deal tool invocation.
func (s *Server) handleConfirmDeal(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConfirmDealInput,
) (*mcp.CallToolResult, ConfirmDealOutput, error) {
	deal, err := s.ports.Deal.Confirm(ctx, input.DealID, input.UserID, domain.DealTerms{
		Deliverables:  input.Terms.Deliverables,
		Timeline:      input.Terms.Timeline,
		PaymentAmount: input.Terms.PaymentAmount,
		UsageRights:   input.Terms.UsageRights,
	})
	if err != nil {
		return errorResult(err), ConfirmDealOutput{}, nil
	}

	output := ConfirmDealOutput{
		DealID:      deal.ID,
		Status:      string(deal.Status),
		ConfirmedBy: deal.Confirmations,
	}
	if !deal.FinalizedAt.IsZero() {
		output.FinalizedAt = deal.FinalizedAt.Format(time.RFC3339)
	}
	return nil, output, nil
}

// handleGenerateContract handles the generate_contract tool invocation.
func (s *Server) handleGenerateContract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateContractInput,
) (*mcp.CallToolResult, GenerateContractOutput, error) {
	contract, err := s.ports.Contract.Generate(ctx, input.DealID, input.Language)
	if err != nil {
		return errorResult(err), GenerateContractOutput{}, nil
	}

	return nil, GenerateContractOutput{
		ContractID:  contract.ID,
		DealID:      contract.DealID,
		Language:    contract.Language,
		Sections:    contract.Sections,
		ContractURL: contract.URL,
		GeneratedAt: contract.CreatedAt.Format(time.RFC3339),
	}, nil
}

// handleGetAnalytics handles the get_analytics tool invocation.
func (s *Server) handleGetAnalytics(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetAnalyticsInput,
) (*mcp.CallToolResult, GetAnalyticsOutput, error) {
	snapshot, err := s.ports.Analytics.Snapshot(ctx, input.UserID, domain.EntityType(input.EntityType), input.TimeRange)
	if err != nil {
		return errorResult(err), GetAnalyticsOutput{}, nil
	}

	timeRange := input.TimeRange
	if timeRange == "" {
		timeRange = "30d"
	}

	return nil, GetAnalyticsOutput{
		UserID:     snapshot.UserID,
		EntityType: string(snapshot.EntityType),
		TimeRange:  timeRange,
		Metrics: AnalyticsMetricsOutput{
			MatchAppearances: snapshot.Metrics.MatchAppearances,
			Interests:        snapshot.Metrics.Interests,
			ChatWindows:      snapshot.Metrics.ChatWindows,
			Messages:         snapshot.Metrics.Messages,
			DealsFinalized:   snapshot.Metrics.DealsFinalized,
		},
		Trends: AnalyticsTrendsOutput{
			InterestsChange: snapshot.Trends.InterestsChange,
			ChatsChange:     snapshot.Trends.ChatsChange,
			DealsChange:     snapshot.Trends.DealsChange,
		},
		GeneratedAt: snapshot.Generated.Format(time.RFC3339),
	}, nil
}
