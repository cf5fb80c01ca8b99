package main

import (
	"os"

	"github.com/anshgoel/quizarena/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
