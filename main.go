package main

import (
	"fmt"
	"os"

	"github.com/jaffee/commandeer"
)

func main() {
	if err := commandeer.Run(NewListCreation()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
