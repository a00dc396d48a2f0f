//go:build !(js && wasm)

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "storefront runs in the browser: build with GOOS=js GOARCH=wasm and serve it with storefront-dev serve")
	os.Exit(2)
}
