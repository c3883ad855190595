package main

import (
	"flag"
	"fmt"
	"os"

	"futsald/internal/di"
	"futsald/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "./futsald.yml", "path to the yaml config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "force debug log level")
	flag.Parse()

	_, err := di.InitApp(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "futsald: %s\n", err)
		os.Exit(1)
	}
}
