// Package fetch walks a repository tree through a host.Host and
// downloads every file's decoded content.
//
// The walk is depth-first and sequential: one subtree is fully fetched
// before the next begins. Errors on a subtree or a single file are
// logged and that subtree contributes no files; the walk continues.
// A single unreadable file must not block the whole pipeline.
package fetch
