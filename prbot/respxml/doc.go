// Package respxml parses the structured payload a language model embeds
// in its free-text reply.
//
// Parsing is a two-stage contract: Extract locates the single payload
// region by fixed delimiters, then Decode checks it against the schema.
// The stages are independent so each can be tested on its own.
package respxml
