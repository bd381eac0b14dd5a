package main

import "github.com/onegii/go-lapse/cmd/lapse/cmd"

func main() {
	cmd.Execute()
}
