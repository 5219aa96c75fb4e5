// Package services holds the domain services of the check core that work
// across aggregates or need configuration the aggregates do not own:
//
//   - TaxSnapshotCalculator freezes the tax treatment of a newly rung item
//   - CheckTotalsEngine recomputes the four money fields of a check
//   - RoundDispatcher turns unsent items into a round and routed kitchen tickets
//   - DynamicOrderController drives the preview ticket of Dynamic Order Mode
//   - CheckSplitter moves and shares items between checks
//
// Services are stateless and never touch storage; command handlers load the
// aggregates, call a service and persist what it returns.
package services
