// Package payment holds tenders applied against a check. A check closes once
// the sum of its completed payments covers its total within kernel.PaymentTolerance.
package payment
