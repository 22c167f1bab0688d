package main

import "fixstatic/cmd/fixstatic/cmd"

func main() {
	cmd.Execute()
}
