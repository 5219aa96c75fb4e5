// Package kitchen models what the kitchen sees of a check: rounds (one per
// send-to-kitchen), KDS tickets grouped by station, and the routing and
// Dynamic Order Mode settings that decide where items land.
package kitchen
