// mkicon renders the application icon from the embedded brand logo.
// Usage: go run ./cmd/mkicon <output.png|output.ico> [size]
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Mavwarf/favicon/internal/brand"
	"github.com/Mavwarf/favicon/internal/paths"
	"github.com/Mavwarf/favicon/internal/raster"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: mkicon <output.png|output.ico> [size]")
		os.Exit(1)
	}
	out := os.Args[1]
	size := 256
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n <= 0 {
			fmt.Fprintln(os.Stderr, "Error: size must be a positive integer")
			os.Exit(1)
		}
		size = n
	}

	if err := write(out, size); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func write(out string, size int) error {
	var data []byte
	if strings.EqualFold(filepath.Ext(out), ".ico") {
		var err error
		if data, err = brand.ICO(size); err != nil {
			return err
		}
	} else {
		img, err := brand.Draw(size)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := raster.EncodePNG(&buf, img); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	return paths.AtomicWrite(out, data)
}
