// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ik5/audsniff/audio"
	"github.com/ik5/audsniff/internal/player"
)

type playCmd struct {
	Input  string        `arg:"" help:"Audio file to play." type:"existingfile"`
	Volume int           `help:"Volume in percent." default:"100"`
	FadeIn time.Duration `help:"Fade in from silence over this long."`
	Pitch  int           `help:"Playback speed in percent." default:"100"`
	Loop   bool          `help:"Loop until interrupted."`
}

func (c *playCmd) Run(a *app) error {
	// the device format is fixed, so the decoder always resamples
	dec, err := a.factory.OpenFile(c.Input, true)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer dec.Close()

	if dec.IsFinished() {
		return fmt.Errorf("%w: %s", errNothingDecoded, dec.ErrorMessage())
	}

	p, err := player.New(a.cfg.Output.Rate, a.cfg.Output.Channels, a.logger)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	src, err := player.NewSource(dec, p.Rate(), p.Channels())
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	c.configure(dec)

	printFile(a.stdout, c.Input)
	printInfo(a.stdout, "Type", dec.Type())
	printInfo(a.stdout, "Output", describeFormat(dec.Format()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = p.Play(ctx, src)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w", err)
	}

	printSuccess(a.stdout, "played "+formatDuration(src.Played()))
	return nil
}

func (c *playCmd) configure(dec *audio.Decoder) {
	dec.SetLooping(c.Loop)
	if c.Pitch != 100 {
		dec.SetPitch(c.Pitch)
	}
	if c.FadeIn > 0 {
		dec.SetFade(0, c.Volume, c.FadeIn)
	} else {
		dec.SetVolume(c.Volume)
	}
}
