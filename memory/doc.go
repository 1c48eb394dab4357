// Package memory persists the conversation log.
//
// Persistence model:
//   - One JSON array of {role, content} objects per session file, oldest first.
//   - Every save rewrites the whole file; there is no append path.
//   - Missing or malformed files load as an empty log.
package memory
