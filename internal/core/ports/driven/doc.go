// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ProfileStore: Creator profile persistence
//   - RequestStore: Collaboration request persistence
//   - InterestStore: Interest persistence
//   - ChatStore: Chat window and message persistence
//   - DealStore: Deal persistence
//   - ContractStore: Contract record persistence
//   - Clock: Time source injected into every service
//   - IDGenerator: Unique ID source, never derived from wall clock alone
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates similarity vectors. Without it, matching
//     falls back to tag overlap scoring.
//   - TextGenerator: Language model text generation. Without it, ROI
//     narratives and contract rendering are disabled.
//   - EventSink: Receives deal finalization events. Without it, events
//     are dropped.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
