package main

import "github.com/chaind/chaind/app/tooling/chainctl/cmd"

func main() {
	cmd.Execute()
}
