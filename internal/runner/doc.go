// Package runner sends one chat turn to the Anthropic Messages API.
//
// Invariants:
//   - The outbound window is the trailing WindowSize messages of the log and
//     always ends with the user message appended for this turn.
//   - Send never mutates the caller's slice; the returned log is the input
//     plus exactly one user and one assistant message.
//   - A failed call returns *RemoteCallError and no log at all.
//
// Flow:
//
//	idle -> awaiting-response (request in flight) -> idle
package runner
