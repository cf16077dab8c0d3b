package main

import (
	"os"
	sys "os"
)

type app struct{}

func (app) main() {
	os.Exit(3)
}

func helper() {
	os.Exit(2)
}

func main() {
	defer helper()
	if len(os.Args) > 5 {
		sys.Exit(1) // want "os.Exit called in main func in main package"
	}
	func() {
		os.Exit(0) // want "os.Exit called in main func in main package"
	}()
	os.Exit(0) // want "os.Exit called in main func in main package"
}
