package main

import "github.com/goplus/easyblocks/cmd/easyblock/internal"

func main() {
	internal.Execute()
}
