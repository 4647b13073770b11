package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type optsGeneral struct {
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// optsClient are shared by every subcommand that talks to a server.
type optsClient struct {
	Addr   string `long:"addr" env:"GOFER_ADDR" description:"Address of the gofer server" default:"http://localhost:8200"`
	CACert string `long:"ca-cert" env:"GOFER_CA_CERT" description:"Path to a CA certificate for HTTPS servers"`
}

func main() {
	parser := flags.NewParser(nil, flags.Default)

	parser.AddCommand("server", docServer, docServer, &optsServer{})
	parser.AddCommand("start", docStart, docStart, &optsStart{})
	parser.AddCommand("list", docList, docList, &optsList{})
	parser.AddCommand("get", docGet, docGet, &optsGet{})
	parser.AddCommand("cancel", docCancel, docCancel, &optsCancel{})
	parser.AddCommand("delete", docDelete, docDelete, &optsDelete{})
	parser.AddCommand("deps", docDeps, docDeps, &optsDeps{})
	parser.AddCommand("output", docOutput, docOutput, &optsOutput{})
	parser.AddCommand("clear", docClear, docClear, &optsClear{})

	if _, err := parser.Parse(); err != nil {
		switch flagsErr := err.(type) {
		case flags.ErrorType:
			if flagsErr == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(1)
		default:
			os.Exit(1)
		}
	}
}
