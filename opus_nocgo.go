// SPDX-License-Identifier: EPL-2.0

//go:build !cgo

package audsniff

import "github.com/ik5/audsniff/audio"

// registerOpus is a no-op: the Opus backend needs libopusfile through cgo.
func registerOpus(*audio.Registry) {}
