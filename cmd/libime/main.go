// Command libime is built with `go build -buildmode=c-shared` (or
// c-archive) to produce the shared library spec.md §6 describes. It
// carries no logic of its own — every //export symbol lives in
// internal/abi, which this package blank-imports so the linker pulls
// its exported C symbols into the final object.
//
//go:build cabi

package main

import (
	_ "github.com/vnkey/govietd/internal/abi"
)

func main() {}
