package main

import "github.com/peekknuf/eda-cli/cmd"

func main() {
	cmd.Execute()
}
