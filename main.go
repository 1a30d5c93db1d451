package main

import (
	"fmt"

	"github.com/sqlcoach/sqlcoach/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
	}
}
