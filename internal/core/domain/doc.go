// Package domain defines the core business entities for Matcha.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Profile: A creator's registered identity and niche metadata
//   - Request: A brand's posted collaboration campaign
//   - MatchResult: A derived creator-request ranking
//   - Interest: A creator's recorded interest in a request
//   - ChatWindow / Message: A 48-hour two-party negotiation channel
//   - Deal / DealTerms: A mutually confirmed agreement
//   - Contract: The rendered document for a finalized deal
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
