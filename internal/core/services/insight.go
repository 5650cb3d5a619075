package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driving"
)

// Ensure InsightService implements the interface.
var _ driving.InsightService = (*InsightService)(nil)

// roiSystemPrompt frames the generation request.
const roiSystemPrompt = `You analyse brand-creator pairings for a collaboration marketplace.
Answer in three paragraphs separated by blank lines: content alignment,
audience fit, then one line per key factor prefixed with "- ".`

// InsightService generates ROI narratives for a creator-request pairing.
// The core only assembles the structured inputs; narrative generation is
// delegated to the injected text generator.
type InsightService struct {
	profiles  driven.ProfileStore
	requests  driven.RequestStore
	generator driven.TextGenerator
	clock     driven.Clock
}

// NewInsightService creates a new insight service.
// The generator is optional (can be nil).
func NewInsightService(
	profiles driven.ProfileStore,
	requests driven.RequestStore,
	generator driven.TextGenerator,
	clock driven.Clock,
) *InsightService {
	return &InsightService{
		profiles:  profiles,
		requests:  requests,
		generator: generator,
		clock:     clock,
	}
}

// AnalyseROI generates a narrative explaining why the creator matches the
// request at the given score.
func (s *InsightService) AnalyseROI(
	ctx context.Context, creatorID, requestID string, matchScore float64,
) (*domain.ROIAnalysis, error) {
	if matchScore < 0 || matchScore > 100 {
		return nil, fmt.Errorf("%w: matchScore must be in [0,100]", domain.ErrInvalidInput)
	}
	if s.generator == nil {
		return nil, domain.ErrGeneratorUnavailable
	}

	profile, err := s.profiles.GetByUser(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("loading creator %s: %w", creatorID, err)
	}
	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("loading request %s: %w", requestID, err)
	}

	prompt := fmt.Sprintf(
		"Campaign: %s\n%s\nTarget niches: %s\nBudget: %.0f-%.0f\n\nCreator bio: %s\nCreator niches: %s\nLocation: %s\nLanguages: %s\n\nMatch score: %.0f/100.",
		request.Title, request.Description, strings.Join(request.NicheTags, ", "),
		request.BudgetMin, request.BudgetMax,
		profile.Bio, strings.Join(profile.NicheTags, ", "), profile.Location,
		strings.Join(profile.Languages, ", "), matchScore,
	)

	text, err := s.generator.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   1024,
		Temperature: 0.4,
		System:      roiSystemPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("generating analysis: %w", err)
	}

	now := s.clock.Now()
	analysis := &domain.ROIAnalysis{
		CreatorID:   creatorID,
		RequestID:   requestID,
		MatchScore:  matchScore,
		GeneratedAt: now,
		ExpiresAt:   now.Add(domain.ROIAnalysisTTL),
	}
	analysis.ContentAlignment, analysis.AudienceFit, analysis.KeyFactors = splitNarrative(text)
	return analysis, nil
}

// splitNarrative parses the generator output into the structured sections.
// Output that does not follow the expected shape lands wholesale in the
// content alignment field rather than being dropped.
func splitNarrative(text string) (alignment, audience string, factors []string) {
	var blocks []string
	for _, b := range strings.Split(text, "\n\n") {
		if b = strings.TrimSpace(b); b != "" {
			blocks = append(blocks, b)
		}
	}
	switch {
	case len(blocks) == 0:
		return text, "", nil
	case len(blocks) == 1:
		return blocks[0], "", nil
	}
	alignment = blocks[0]
	audience = blocks[1]
	for _, block := range blocks[2:] {
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
			if line != "" {
				factors = append(factors, line)
			}
		}
	}
	return alignment, audience, factors
}
