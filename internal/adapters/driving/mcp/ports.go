package mcp

import (
	"fmt"

	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Profile manages creator profiles.
	Profile driving.ProfileService

	// Request manages collaboration requests.
	Request driving.RequestService

	// Matching ranks creators against requests.
	Matching driving.MatchingService

	// Interest records creator interest in requests.
	Interest driving.InterestService

	// Chat manages ephemeral negotiation windows.
	Chat driving.ChatService

	// Deal runs the mutual confirmation protocol.
	Deal driving.DealService

	// Insight produces ROI narratives.
	Insight driving.InsightService

	// Contract renders contracts for finalized deals.
	Contract driving.ContractService

	// Analytics computes activity snapshots.
	Analytics driving.AnalyticsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	required := []struct {
		name string
		ok   bool
	}{
		{"profile", p.Profile != nil},
		{"request", p.Request != nil},
		{"matching", p.Matching != nil},
		{"interest", p.Interest != nil},
		{"chat", p.Chat != nil},
		{"deal", p.Deal != nil},
		{"insight", p.Insight != nil},
		{"contract", p.Contract != nil},
		{"analytics", p.Analytics != nil},
	}
	for _, r := range required {
		if !r.ok {
			return fmt.Errorf("%w: %s", ErrMissingService, r.name)
		}
	}
	return nil
}
