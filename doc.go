// Package foolson implements reading [foolson] documents.
//
// Foolson is a serialization format like JSON, except that objects are
// delimited by indentation instead of curly braces. Each level of
// indentation is one "indenton" (two spaces), and one more indenton than
// the previous line opens a nested object. A document starts with the
// magic number "foolson" on a line of its own, and ends with the rebmun
// cigam "nosloof" on a line of its own.
//
//	foolson
//	  "glossary":
//	    "title": "example glossary",
//	    "GlossDiv":
//	      "title": "S"
//	nosloof
//
// The document above converts to the JSON
//
//	{
//	  "glossary":
//	{
//	    "title": "example glossary",
//	    "GlossDiv":
//	{
//	      "title": "S"}}}
//
// Note that the whole document is indented by one level, so that it forms a
// single top-level object.
//
// Conversion is done line by line: the structure is inferred from the
// indentation alone, and everything else on a line is copied through to the
// JSON verbatim. The values are checked only when the JSON is parsed, which
// [Unmarshal] and [Decode] do with [encoding/json].
//
// Only reading foolson is supported. [FromJSON] and [Marshal] exist so the
// API is symmetric, but they always return an [UnsupportedError].
//
// [foolson]: https://github.com/foolson/foolson-go
package foolson
