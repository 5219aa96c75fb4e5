// Package check contains the Check aggregate: a guest check, its items with
// their frozen tax snapshots, and its check-level discounts.
//
// All money is shopspring/decimal rounded through the kernel helpers. Totals
// are never computed here; the CheckTotalsEngine domain service derives them
// from items and discounts and stores them with ApplyTotals.
package check
