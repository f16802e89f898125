// Package generate sends the repository content and a
// change request to the model and collects the reply
// text together with the model's reasoning trace.
package generate
