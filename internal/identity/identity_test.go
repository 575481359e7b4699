// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "tests segment", source: "/repo/checkout/tests/suite/case.robot", want: "tests/suite/case.robot"},
		{name: "uppercase tests segment", source: "/other/root/TESTS/suite/case.robot", want: "tests/suite/case.robot"},
		{name: "scripts segment", source: "/home/ci/Scripts/smoke.robot", want: "scripts/smoke.robot"},
		{name: "earliest segment wins", source: "/a/scripts/x/tests/y.robot", want: "scripts/x/tests/y.robot"},
		{name: "relative path already rooted", source: "tests/login.robot", want: "tests/login.robot"},
		{name: "windows separators are kept", source: `C:\work\Repo\tests\api\get.robot`, want: `tests\api\get.robot`},
		{name: "windows path without marker", source: `C:\Work\Repo\Suites\a.robot`, want: `c:\work\repo\suites\a.robot`},
		{name: "no marker keeps full path", source: "/Repo/Suites/a.robot", want: "/repo/suites/a.robot"},
		{name: "marker must be a whole segment", source: "/repo/mytests/a.robot", want: "/repo/mytests/a.robot"},
		{name: "empty", source: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSource(tt.source))
		})
	}
}

func TestChecksum(t *testing.T) {
	hex32 := regexp.MustCompile(`^[0-9a-f]{32}$`)

	base := Checksum("Login Works", "Steps:\n1. Login", "/repo/tests/login.robot")
	assert.Regexp(t, hex32, base)
	assert.Equal(t, base, Checksum("Login Works", "Steps:\n1. Login", "/repo/tests/login.robot"), "pure function")

	t.Run("relocated checkout keeps identity", func(t *testing.T) {
		moved := Checksum("Login Works", "Steps:\n1. Login", "/other/root/TESTS/login.robot")
		assert.Equal(t, base, moved)
	})

	t.Run("digest of the lowercased path", func(t *testing.T) {
		sum := md5.Sum([]byte("TD" + `c:\work\repo\suites\a.robot`))
		assert.Equal(t, hex.EncodeToString(sum[:]), Checksum("T", "D", `C:\Work\Repo\Suites\a.robot`))
	})

	t.Run("each input changes the digest", func(t *testing.T) {
		variants := []string{
			Checksum("Login Fails", "Steps:\n1. Login", "/repo/tests/login.robot"),
			Checksum("Login Works", "Steps:\n1. Logout", "/repo/tests/login.robot"),
			Checksum("Login Works", "Steps:\n1. Login", "/repo/tests/logout.robot"),
		}
		seen := map[string]bool{base: true}
		for _, v := range variants {
			assert.Regexp(t, hex32, v)
			assert.False(t, seen[v], "digest collision for %s", v)
			seen[v] = true
		}
	})
}

func TestIndexFromFilename(t *testing.T) {
	assert.Equal(t, 12, IndexFromFilename("/tmp/out/12_DB_Login_s1-t1.xml"))
	assert.Equal(t, 1, IndexFromFilename("1_Login_s1-t1.xml"))
	assert.Equal(t, 0, IndexFromFilename("Login_s1-t1.xml"))
	assert.Equal(t, 0, IndexFromFilename("/tmp/7/Login.xml"))
}
