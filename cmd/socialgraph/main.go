package main

import "github.com/socialgraph-dev/socialgraph/cmd/socialgraph/commands"

func main() {
	commands.Execute()
}
