package main

import (
	"fmt"
	"os"

	"github.com/adarsh-priydarshi-5646/My-Campus-Hub/internal/tools/smokecheck"
)

func main() {
	if err := smokecheck.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
