// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package audsniff

import (
	"github.com/ik5/audsniff/audio"
	"github.com/ik5/audsniff/formats/opus"
)

func registerOpus(r *audio.Registry) {
	r.Register(KindOpus, func() audio.Backend { return opus.New() })
}
