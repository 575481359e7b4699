// SPDX-License-Identifier: Apache-2.0

// Package identity derives location-independent identities for test cases.
package identity

import (
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// rootMarkers are the directory segments a normalised source path is cut at,
// in both separator styles.
var rootMarkers = []string{"/tests/", "/scripts/", `\tests\`, `\scripts\`}

// NormalizeSource lowercases a suite source path and strips everything before
// the first "tests/" or "scripts/" segment, whichever comes first. Windows
// paths are cut at "\tests\" or "\scripts\"; separators are never rewritten.
// Paths with neither segment are returned lowercased in full.
func NormalizeSource(source string) string {
	s := strings.ToLower(source)

	cut := -1
	for _, marker := range rootMarkers {
		if strings.HasPrefix(s, marker[1:]) {
			return s
		}
		if i := strings.Index(s, marker); i != -1 && (cut == -1 || i < cut) {
			cut = i
		}
	}
	if cut == -1 {
		return s
	}
	return s[cut+1:]
}

// Checksum returns the hex MD5 digest of name, documentation and the
// normalised source path. The digest is an identity, not a security control.
func Checksum(testName, doc, source string) string {
	sum := md5.Sum([]byte(testName + doc + NormalizeSource(source)))
	return hex.EncodeToString(sum[:])
}

var indexPrefix = regexp.MustCompile(`^(\d+)_`)

// IndexFromFilename returns the 1-based position encoded as the leading
// "<n>_" of a chunk filename, or 0 when there is none.
func IndexFromFilename(path string) int {
	m := indexPrefix.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
