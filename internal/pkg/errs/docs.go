// Package errs provides the error taxonomy shared by the check core.
//
// Every error type pairs a sentinel (matched with errors.Is) with a struct
// carrying details (extracted with errors.As):
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: input validation
//   - ObjectNotFoundError: a check, item, ticket or payment does not exist
//   - PreconditionFailedError: the operation is illegal in the current state
//   - NotAuthorizedError: a gated mutation was not approved by a manager
//   - VersionConflictError: a write was based on a stale version token
//
// Adapters map these to transport-level codes; see the HTTP server for the mapping.
package errs
