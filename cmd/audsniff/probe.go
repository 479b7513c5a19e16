// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ik5/audsniff"
	"github.com/ik5/audsniff/audio"
)

type probeCmd struct {
	Files []string `arg:"" name:"file" help:"Audio files to identify."`
}

// Run reports every file and fails when none of them was recognised.
func (c *probeCmd) Run(a *app) error {
	recognised := 0
	for _, name := range c.Files {
		if a.probe(name) {
			recognised++
		}
	}

	if recognised == 0 {
		return fmt.Errorf("%w: no file recognised", audsniff.ErrUnsupportedFormat)
	}
	return nil
}

func (a *app) probe(name string) bool {
	printFile(a.stdout, name)

	dec, err := a.factory.OpenFile(name, false)
	if err != nil {
		reason := "unreadable"
		if errors.Is(err, audsniff.ErrUnsupportedFormat) {
			reason = "unsupported format"
		}
		printInfo(a.stdout, "Status", reason)
		a.logger.Debug("probe failed", "file", name, "error", err)
		return false
	}
	defer dec.Close()

	printInfo(a.stdout, "Type", dec.Type())
	printInfo(a.stdout, "Format", describeFormat(dec.Format()))

	if msg := dec.ErrorMessage(); msg != "" {
		printInfo(a.stdout, "Message", strings.ReplaceAll(strings.TrimSpace(msg), "\n", " "))
	}
	if !dec.WasInited() {
		printInfo(a.stdout, "Status", "backend not initialised")
	}
	if pos := dec.Tell(); pos >= 0 {
		printInfo(a.stdout, "Position", strconv.FormatInt(pos, 10))
	}
	return true
}

func describeFormat(rate int, format audio.Format, channels int) string {
	return fmt.Sprintf("%d Hz %v, %d channel(s)", rate, format, channels)
}
