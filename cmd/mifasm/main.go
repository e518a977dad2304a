// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/ezrec/mifasm/config"
	"github.com/ezrec/mifasm/cpu"
	mifio "github.com/ezrec/mifasm/io"
	"github.com/ezrec/mifasm/translate"
)

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err != nil {
		atexit.Fatalf("%v: %v", filepath.Base(os.Args[0]), err)
	}

	atexit.Exit(0)
}

// run parses the command line and assembles, or disassembles, one file.
func run(args []string, stdout io.Writer) (err error) {
	var configFile string
	var output string
	var verbose bool
	var workers int
	var disassemble bool
	var language string

	flags := flag.NewFlagSet("mifasm", flag.ContinueOnError)
	flags.StringVar(&configFile, "config", "", ".toml configuration file")
	flags.StringVar(&output, "o", "", ".mif file to write")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.IntVar(&workers, "j", 1, "Concurrent line encoders")
	flags.BoolVar(&disassemble, "d", false, "Disassemble a .mif file")
	flags.StringVar(&language, "lang", "", "Message language")

	err = flags.Parse(args)
	if err != nil {
		return
	}

	if flags.NArg() != 1 {
		err = fmt.Errorf("expected one source file, got %d", flags.NArg())
		return
	}
	source := flags.Arg(0)

	cfg := config.Default()
	if len(configFile) != 0 {
		cfg, err = config.Load(configFile)
		if err != nil {
			err = fmt.Errorf("%v: %w", configFile, err)
			return
		}
	}

	// Flags override the configuration file.
	flags.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "o":
			cfg.Output = output
		case "v":
			cfg.Verbose = verbose
		case "j":
			cfg.Workers = workers
		case "lang":
			cfg.Language = language
		}
	})

	err = cfg.Validate()
	if err != nil {
		return
	}

	err = translate.SetLanguage(cfg.Language)
	if err != nil {
		return
	}

	if disassemble {
		return disassembleImage(source, stdout)
	}

	return assemble(cfg, source)
}

// imageName derives the image path from the source path.
func imageName(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".mif"
}

// assemble writes the image of the source. No image is left behind
// if assembly fails.
func assemble(cfg config.Config, source string) (err error) {
	inf, err := os.Open(source)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{
		Verbose: cfg.Verbose,
		Workers: cfg.Workers,
	}
	prog, err := asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", source, err)
		return
	}

	mif := mifio.NewMif(prog.Binary())
	mif.Depth = cfg.Depth
	mif.Width = cfg.Width
	err = mif.Validate()
	if err != nil {
		return
	}

	image := cfg.Output
	if len(image) == 0 {
		image = imageName(source)
	}

	ouf, err := os.CreateTemp(filepath.Dir(image), ".mifasm-*")
	if err != nil {
		return
	}
	partial := ouf.Name()
	atexit.Register(func() { os.Remove(partial) })
	defer func() {
		if err != nil {
			ouf.Close()
			os.Remove(partial)
		}
	}()

	_, err = mif.WriteTo(ouf)
	if err != nil {
		return
	}

	err = ouf.Close()
	if err != nil {
		return
	}

	err = os.Rename(partial, image)
	if err != nil {
		return
	}

	if cfg.Verbose {
		log.Printf("%v: %d instructions, %d words\n", image, asm.Label.Count(), len(mif.Data))
	}

	return
}

// disassembleImage writes a listing of a .mif image.
func disassembleImage(image string, stdout io.Writer) (err error) {
	inf, err := os.Open(image)
	if err != nil {
		return
	}
	defer inf.Close()

	mif, err := mifio.ReadMif(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", image, err)
		return
	}

	words := make([]cpu.Word, len(mif.Data))
	for n, bits := range mif.Data {
		words[n], err = cpu.ParseWord(bits)
		if err != nil {
			return
		}
	}

	prog, err := cpu.Disassemble(words)
	if err != nil {
		err = fmt.Errorf("%v: %w", image, err)
		return
	}

	for _, op := range prog.Opcodes {
		_, err = fmt.Fprintf(stdout, "%5d: %v %v  %v\n", op.Address(), op.Code.Words[0], op.Code.Words[1], op.Code)
		if err != nil {
			return
		}
	}

	return
}
