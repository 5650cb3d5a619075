package domain

import "time"

// ROIAnalysisTTL is how long a generated ROI narrative stays valid.
const ROIAnalysisTTL = 24 * time.Hour

// ROIAnalysis explains why a creator matches a brand's request. The
// narrative fields are produced by an external text generation
// collaborator from the structured inputs the core supplies.
type ROIAnalysis struct {
	// CreatorID and RequestID identify the pairing analysed.
	CreatorID string
	RequestID string

	// MatchScore is the similarity score the analysis was requested for.
	MatchScore float64

	// ContentAlignment narrates how the creator's content fits the brand.
	ContentAlignment string

	// AudienceFit narrates audience overlap.
	AudienceFit string

	// KeyFactors lists the main drivers behind the match.
	KeyFactors []string

	// GeneratedAt and ExpiresAt bound the narrative's validity.
	GeneratedAt time.Time
	ExpiresAt   time.Time
}
