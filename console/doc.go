// Package console implements input.Console over a Linux virtual console
// using KD* and VT* ioctls.
package console
