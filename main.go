package main

import (
	"os"

	"pdf-to-txt/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], os.Stdout, os.Stderr))
}
