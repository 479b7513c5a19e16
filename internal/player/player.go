// SPDX-License-Identifier: EPL-2.0

package player

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ebitengine/oto/v3"
)

const pollInterval = 20 * time.Millisecond

// track is the part of *oto.Player the Player drives.
type track interface {
	Play()
	Pause()
	IsPlaying() bool
	Err() error
}

// Player owns the process wide oto context. oto allows one context per
// process, so a Player is created once and reused for every decoder.
type Player struct {
	rate     int
	channels int
	logger   *slog.Logger
	newTrack func(io.Reader) track
}

// New opens the output device at rate with channels and waits until it is
// ready.
func New(rate, channels int, logger *slog.Logger) (*Player, error) {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	logger.Debug("audio output initialized",
		slog.Int("rate", rate), slog.Int("channels", channels))

	return &Player{
		rate:     rate,
		channels: channels,
		logger:   logger,
		newTrack: func(r io.Reader) track { return otoCtx.NewPlayer(r) },
	}, nil
}

func (p *Player) Rate() int     { return p.rate }
func (p *Player) Channels() int { return p.channels }

// Play plays src until it ends or ctx is done. Cancelling ctx pauses
// the output and returns ctx.Err().
func (p *Player) Play(ctx context.Context, src *Source) error {
	t := p.newTrack(src)
	t.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for t.IsPlaying() {
		select {
		case <-ctx.Done():
			t.Pause()
			p.logger.Debug("playback interrupted", slog.Duration("played", src.Played()))
			return fmt.Errorf("%w", ctx.Err())
		case <-ticker.C:
		}
	}

	if err := t.Err(); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}

	p.logger.Debug("playback finished", slog.Duration("played", src.Played()))
	return nil
}
