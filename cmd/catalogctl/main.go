package main

import (
	"log"

	tool "github.com/kashmiricraft/treasures-api/internal/tools/catalog"
)

func main() {
	if err := tool.NewRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
