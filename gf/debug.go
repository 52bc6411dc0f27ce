//go:build !gfdebug

package gf

// debug enables the same-field checks on binary element operations. Build
// with -tags gfdebug to turn them on.
const debug = false
