package main

import (
	"os"

	"github.com/K0NGR3SS/profilebench/commands"
)

func main() {
	os.Exit(commands.Execute())
}
