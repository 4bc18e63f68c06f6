package main

import (
	"log"

	"github.com/SheetMetalConnect/eryxon-flow-sub007/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
