// Package linkctx turns a raw URL into a contextualized smart link: a
// generative model reads the page and returns a title, a verbatim highlight
// phrase, a descriptive label, a one-sentence summary and tags, from which a
// readable slug link and a text-fragment deep link are derived.
//
// This package contains domain types, interfaces and the pure parsing and
// link functions, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., gemini/, trafilatura/, rod/).
package linkctx
