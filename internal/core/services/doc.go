// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The extraction pipeline is split into stages:
//
//   - Collect: drains a paginated listing
//   - UserAggregator: runs the discovery steps and merges their handles
//   - EmailResolver: resolves profiles and infers emails from push events
//   - ExtractService: sequences the stages per repository and per batch
//   - Summarise: reduces reports across repositories
package services
