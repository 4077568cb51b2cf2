package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/goth-lang/goth/internal/ast"
	"github.com/goth-lang/goth/internal/format"
	"github.com/goth-lang/goth/internal/ser"
)

// goth-fmt reads a module in one encoding and writes it in another.
// Flags:
//
//	-from   input encoding: gast, gbin (default: by file extension)
//	-to     output encoding: goth, gast, gbin (default goth)
//	-ascii  render goth output with ASCII operator spellings
//	-o      write output to this file instead of stdout
//	-w      rewrite each input file in place
//	-l      list files whose contents differ from the converted output
//	-stdin  read from stdin instead of files
//	-watch  keep running and reprocess files as they change
func main() {
	var (
		fromFormat string
		toFormat   string
		asciiMode  bool
		outPath    string
		inPlace    bool
		listOnly   bool
		fromStdin  bool
		watchMode  bool
	)
	flag.StringVar(&fromFormat, "from", "", "input encoding: gast or gbin (default: by extension)")
	flag.StringVar(&toFormat, "to", "goth", "output encoding: goth, gast or gbin")
	flag.BoolVar(&asciiMode, "ascii", false, "use ASCII operator spellings for goth output")
	flag.StringVar(&outPath, "o", "", "write output to file instead of stdout")
	flag.BoolVar(&inPlace, "w", false, "rewrite each input file in place")
	flag.BoolVar(&listOnly, "l", false, "list files whose contents differ from the converted output")
	flag.BoolVar(&fromStdin, "stdin", false, "read from stdin instead of files")
	flag.BoolVar(&watchMode, "watch", false, "reprocess files whenever they change")
	flag.Parse()

	switch toFormat {
	case "goth", "gast", "gbin":
	default:
		fmt.Fprintf(os.Stderr, "goth-fmt: unknown output encoding %q\n", toFormat)
		os.Exit(2)
	}

	if watchMode && inPlace {
		fmt.Fprintln(os.Stderr, "goth-fmt: -watch and -w cannot be combined")
		os.Exit(2)
	}

	opts := format.DefaultOptions()
	if asciiMode {
		opts = format.ASCIIOptions()
	}

	if fromStdin {
		in, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, "goth-fmt:", err)
			os.Exit(1)
		}
		out, err := convert(in, inputFormat(fromFormat, "", in), toFormat, opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, "goth-fmt:", err)
			os.Exit(1)
		}
		if err := emit(out, outPath); err != nil {
			fmt.Fprintln(os.Stderr, "goth-fmt:", err)
			os.Exit(1)
		}
		return
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "goth-fmt: no input files")
		os.Exit(2)
	}
	if outPath != "" && len(files) > 1 {
		fmt.Fprintln(os.Stderr, "goth-fmt: -o requires a single input file")
		os.Exit(2)
	}

	exitCode := 0
	for _, path := range files {
		if err := processFile(path, fromFormat, toFormat, opts, outPath, inPlace, listOnly); err != nil {
			fmt.Fprintf(os.Stderr, "goth-fmt: %s: %v\n", path, err)
			exitCode = 1
		}
	}

	if watchMode {
		if err := watch(files, fromFormat, toFormat, opts, outPath, inPlace); err != nil {
			fmt.Fprintln(os.Stderr, "goth-fmt:", err)
			os.Exit(1)
		}
		return
	}
	os.Exit(exitCode)
}

func processFile(path, from, to string, opts format.Options, outPath string, inPlace, listOnly bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out, err := convert(data, inputFormat(from, path, data), to, opts)
	if err != nil {
		return err
	}
	if listOnly {
		if !bytes.Equal(data, out) {
			fmt.Println(path)
		}
		return nil
	}
	if inPlace {
		return os.WriteFile(path, out, 0o644)
	}
	return emit(out, outPath)
}

// inputFormat resolves the input encoding: an explicit flag wins, then
// the file extension, then the payload magic.
func inputFormat(flagValue, path string, data []byte) string {
	if flagValue != "" {
		return flagValue
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gbin":
		return "gbin"
	case ".gast":
		return "gast"
	}
	if bytes.HasPrefix(data, []byte("GOTH")) {
		return "gbin"
	}
	return "gast"
}

func convert(in []byte, from, to string, opts format.Options) ([]byte, error) {
	var m *ast.Module
	var err error
	switch from {
	case "gast":
		m, err = ser.DecodeModuleText(in)
	case "gbin":
		m, err = ser.DecodeModuleBinary(in)
	default:
		return nil, fmt.Errorf("unknown input encoding %q", from)
	}
	if err != nil {
		return nil, err
	}

	for _, d := range m.Validate() {
		fmt.Fprintf(os.Stderr, "goth-fmt: warning: %v\n", d)
	}

	switch to {
	case "goth":
		return []byte(format.Module(m, opts)), nil
	case "gast":
		return ser.EncodeModuleText(m)
	default:
		return ser.EncodeModuleBinary(m), nil
	}
}

func emit(out []byte, outPath string) error {
	if outPath == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(outPath, out, 0o644)
}

// watch reprocesses each file on every write until interrupted.
func watch(files []string, from, to string, opts format.Options, outPath string, inPlace bool) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	for _, path := range files {
		if err := w.Add(path); err != nil {
			return err
		}
	}
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := processFile(ev.Name, from, to, opts, outPath, inPlace, false); err != nil {
				fmt.Fprintf(os.Stderr, "goth-fmt: %s: %v\n", ev.Name, err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "goth-fmt:", err)
		}
	}
}
