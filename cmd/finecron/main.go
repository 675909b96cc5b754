package main

import "finecron/cmd/finecron/cmd"

func main() {
	cmd.Execute()
}
