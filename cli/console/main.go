package main

import (
	"log"
	"os"

	"github.com/aetherid/console/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
