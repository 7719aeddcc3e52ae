package main

import (
	"os"

	"github.com/shelfd/shelfd/shelfservice"
)

func main() {
	if err := shelfservice.Run(); err != nil {
		os.Exit(1)
	}
}
