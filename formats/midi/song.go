// SPDX-License-Identifier: EPL-2.0

package midi

import (
	"fmt"
	"io"
	"sort"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// percussionChannel is skipped; the synth has no drum kit.
const percussionChannel = 9

type note struct {
	start, end int64 // µs
	key        uint8
	velocity   uint8
}

// tickMark maps an absolute time in µs to the absolute MIDI tick.
type tickMark struct {
	micros int64
	ticks  int64
}

// song is the flattened, tempo mapped content of a standard MIDI file.
type song struct {
	notes  []note // sorted by start
	marks  []tickMark
	length int64 // µs
}

func parseSong(r io.Reader) (*song, error) {
	type voice struct {
		channel, key uint8
	}

	var (
		sng      = &song{}
		sounding = make(map[voice][]note)
	)

	rd := smf.ReadTracksFrom(r).Do(func(ev smf.TrackEvent) {
		sng.marks = append(sng.marks, tickMark{micros: ev.AbsMicroSeconds, ticks: ev.AbsTicks})
		sng.length = max(sng.length, ev.AbsMicroSeconds)

		msg := gomidi.Message(ev.Message)

		var channel, key, velocity uint8
		switch {
		case msg.GetNoteStart(&channel, &key, &velocity):
			if channel == percussionChannel {
				return
			}
			v := voice{channel, key}
			sounding[v] = append(sounding[v], note{start: ev.AbsMicroSeconds, key: key, velocity: velocity})

		case msg.GetNoteEnd(&channel, &key):
			v := voice{channel, key}
			started := sounding[v]
			if len(started) == 0 {
				return
			}
			n := started[0]
			n.end = ev.AbsMicroSeconds
			sounding[v] = started[1:]
			sng.notes = append(sng.notes, n)
		}
	})
	if err := rd.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMidiFile, err)
	}

	// notes never released ring until the last event
	for _, started := range sounding {
		for _, n := range started {
			n.end = sng.length
			sng.notes = append(sng.notes, n)
		}
	}
	if len(sng.notes) == 0 {
		return nil, ErrNoNotes
	}

	sort.Slice(sng.notes, func(i, j int) bool { return sng.notes[i].start < sng.notes[j].start })
	sort.Slice(sng.marks, func(i, j int) bool { return sng.marks[i].micros < sng.marks[j].micros })

	return sng, nil
}

// ticksAt returns the MIDI tick at time µs, interpolating between events.
func (s *song) ticksAt(micros int64) int64 {
	i := sort.Search(len(s.marks), func(i int) bool { return s.marks[i].micros > micros })
	if i == 0 {
		return 0
	}

	prev := s.marks[i-1]
	if i == len(s.marks) {
		return prev.ticks
	}

	next := s.marks[i]
	if next.micros == prev.micros {
		return prev.ticks
	}
	return prev.ticks + (next.ticks-prev.ticks)*(micros-prev.micros)/(next.micros-prev.micros)
}
