// SPDX-License-Identifier: EPL-2.0

// Package tracker classifies tracker module files (MOD, S3M, XM, IT, ...).
//
// Modules carry no common magic number, so they are recognised by file
// extension only. No tracker decoder ships with this module; callers
// register their own backend under the "tracker" kind.
package tracker

import (
	"path/filepath"
	"strings"
)

var extensions = map[string]struct{}{
	".669":  {},
	".amf":  {},
	".dsm":  {},
	".far":  {},
	".it":   {},
	".med":  {},
	".mo3":  {},
	".mod":  {},
	".mptm": {},
	".mtm":  {},
	".okt":  {},
	".ptm":  {},
	".s3m":  {},
	".stm":  {},
	".ult":  {},
	".umx":  {},
	".xm":   {},
}

// IsModule reports whether name has the extension of a tracker module.
// The check is case insensitive.
func IsModule(name string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}
