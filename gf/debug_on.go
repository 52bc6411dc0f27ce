//go:build gfdebug

package gf

const debug = true
