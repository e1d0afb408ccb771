// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/ezrec/mvd/emulator"
)

type Options struct {
	Verbose bool   `short:"v" long:"verbose" description:"Verbose mode"`
	Limit   int    `short:"l" long:"limit" default:"1000000" description:"Maximum instructions to execute, 0 for no limit"`
	Input   string `short:"i" long:"input" default:"-" description:"Input tape for RD"`
	Output  string `short:"o" long:"output" default:"-" description:"Output tape for PRN"`
	List    bool   `short:"L" long:"list" description:"Print the program listing, do not execute"`
	Debug   bool   `short:"d" long:"debug" description:"Interactive step debugger"`

	Args struct {
		Source string `positional-arg-name:"FILE" description:".mvd file to assemble"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	var opts Options

	parser := flags.NewParser(&opts, flags.Default)
	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	source, err := os.ReadFile(opts.Args.Source)
	if err != nil {
		log.Fatalf("%v: %v", opts.Args.Source, err)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = opts.Verbose
	emu.Limit = opts.Limit

	err = emu.Load(string(source))
	if err != nil {
		log.Fatalf("%v: %v", opts.Args.Source, err)
	}

	if opts.List {
		fmt.Println(emu.Program.String())
		return
	}

	if opts.Debug {
		repl, err := NewREPL(emu, opts.Args.Source)
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
		repl.Start()
		return
	}

	if opts.Input == "-" {
		emu.SetInput(os.Stdin)
	} else {
		inf, err := os.Open(opts.Input)
		if err != nil {
			log.Fatalf("%v: %v", opts.Input, err)
		}
		defer inf.Close()
		emu.SetInput(inf)
	}

	var output io.Writer = os.Stdout
	if opts.Output != "-" {
		ouf, err := os.Create(opts.Output)
		if err != nil {
			log.Fatalf("%v: %v", opts.Output, err)
		}
		defer ouf.Close()
		output = ouf
	}
	emu.Output = output

	err = emu.Run()
	if err != nil {
		log.Printf("%v: %v", opts.Args.Source, err)
		os.Exit(1)
	}
}
