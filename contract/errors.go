package contract

import "kodama_protocol/sdk"

// Failure taxonomy, mapped onto sdk.Revert symbols. Every failure is raised
// synchronously; the host discards all state writes of the failing call, so
// none of these ever leave partial effects behind.

const (
	symValidation   = "validation_error"
	symAuth         = "authorization_error"
	symState        = "state_error"
	symInvariant    = "invariant_breach"
	symExternalCall = "external_call_failure"
)

// abortValidation rejects malformed or out-of-range input before any mutation.
func abortValidation(msg string) {
	sdk.Revert(msg, symValidation)
}

// abortAuth rejects callers lacking the required role or eligibility.
func abortAuth(msg string) {
	sdk.Revert(msg, symAuth)
}

// abortState rejects operations invalid for the current lifecycle state;
// the caller must wait for or trigger the required transition.
func abortState(msg string) {
	sdk.Revert(msg, symState)
}

// abortInvariant rejects operations that would breach a cap or ceiling.
func abortInvariant(msg string) {
	sdk.Revert(msg, symInvariant)
}

// abortExternal surfaces a downstream call failure, aborting the whole batch.
func abortExternal(msg string) {
	sdk.Revert(msg, symExternalCall)
}
