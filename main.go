package main

import (
	"github.com/AriadneD/musicemotions/cmd"
)

func main() {
	cmd.Execute()
}
