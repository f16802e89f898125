// Package publish turns a decoded change set into a
// branch, commits, a pull request and a reasoning
// comment on the hosting platform.
package publish
