package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when signup fails because a user
	// with the same normalized email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrSessionNotFound is returned when a session lookup or deletion
	// targets a token with no matching row.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrAccountNotFound is returned when an account lookup by id (scoped to
	// its owner) matches no row.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrAccountTypeAlreadyExists is returned when a user attempts to open a
	// second account of a type they already hold.
	ErrAccountTypeAlreadyExists = errors.New("account of this type already exists")

	// ErrAccountInactive is returned when a funding operation targets an
	// account whose status is not active.
	ErrAccountInactive = errors.New("account is not active")

	// ErrConsistency is returned when a row write succeeds but the immediate
	// re-fetch fails; the orphaned row is deleted before this is surfaced.
	// Callers must treat it as an internal error, never fabricate a result.
	ErrConsistency = errors.New("stored row could not be read back")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
