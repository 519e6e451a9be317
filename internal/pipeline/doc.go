// Package pipeline prepares slot content for a web summary.
//
// This package handles the content-producing stages that run before slot
// substitution:
//   - Data embedding: the payload becomes an HTML-safe window assignment
//   - Payload extraction from a finished document (the reverse of embedding)
//   - Summary body rendering: Markdown via Goldmark, [[ include FILE ]]
//     expansion, and relative <img> sources inlined as data URIs
//
// Slot scanning and substitution live in internal/slots; size enforcement
// in internal/budget. Keeping the stages apart lets the assembler run them
// in a fixed order and fail on the first error.
package pipeline
