// SPDX-License-Identifier: EPL-2.0

package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ik5/audsniff/audio"
	"github.com/ik5/audsniff/formats/wav"
)

var errNothingDecoded = errors.New("nothing decoded")

type decodeCmd struct {
	Input    string `arg:"" help:"Audio file to decode." type:"existingfile"`
	Output   string `arg:"" help:"WAV file to write." type:"path"`
	Rate     int    `help:"Output sample rate, 0 for the configured one."`
	Channels int    `help:"Output channels, 0 for the configured ones."`
}

func (c *decodeCmd) Run(a *app) error {
	dec, err := a.factory.OpenFile(c.Input, a.cfg.Resample)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer dec.Close()

	rate, channels := a.cfg.Output.Rate, a.cfg.Output.Channels
	if c.Rate > 0 {
		rate = c.Rate
	}
	if c.Channels > 0 {
		channels = c.Channels
	}

	// without resampling only the native S16 output can be written
	if !dec.SetFormat(rate, audio.S16, channels) {
		a.logger.Debug("keeping native format", "file", c.Input)
	}
	rate, format, channels := dec.Format()
	if format != audio.S16 {
		return fmt.Errorf("%s decodes to %v, enable resampling to convert it", c.Input, format)
	}

	dec.SetLooping(false)
	start := time.Now()
	raw := dec.DecodeAll()
	if len(raw) == 0 {
		if msg := strings.TrimSpace(dec.ErrorMessage()); msg != "" {
			return fmt.Errorf("%w: %s", errNothingDecoded, msg)
		}
		return fmt.Errorf("%w from %s", errNothingDecoded, c.Input)
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
	}

	out, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := wav.WriteWAV(out, rate, channels, samples); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	length := time.Duration(len(samples)/channels) * time.Second / time.Duration(rate)
	printSuccess(a.stdout, fmt.Sprintf("%s: %s of %s audio written to %s",
		c.Input, formatDuration(length), dec.Type(), c.Output))
	printInfo(a.stdout, "Format", describeFormat(rate, format, channels))
	printInfo(a.stdout, "Took", formatDuration(time.Since(start)))
	return nil
}
