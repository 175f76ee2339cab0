package main

import "github.com/theirongolddev/fundcagr/cmd"

func main() {
	cmd.Execute()
}
