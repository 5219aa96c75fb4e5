// Package kernel holds the primitives shared by every aggregate of the check core:
// identifiers (UUID), fixed-point money helpers built on shopspring/decimal, and the
// business date. Currency never passes through binary floating point; amounts are
// rounded half away from zero to two places, rates to six, quantities to four.
package kernel
