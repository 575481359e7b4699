// SPDX-License-Identifier: Apache-2.0

package render

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func lookPath(t *testing.T, name string) string {
	t.Helper()
	p, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
	return p
}

func TestRebot_Args(t *testing.T) {
	r := NewRebot("", 0)
	args := r.Args(Job{Input: "out/1_Login_s1-t1.xml", Log: "out/1_Login_s1-t1_log.html", Name: "Login"})
	assert.Equal(t, []string{
		"--output", "NONE",
		"--log", "out/1_Login_s1-t1_log.html",
		"--name", "Login",
		"--nostatusrc",
		"out/1_Login_s1-t1.xml",
	}, args)
}

func TestRebot_Render(t *testing.T) {
	job := Job{Input: "in.xml", Log: "in_log.html", Name: "Case"}

	t.Run("success", func(t *testing.T) {
		r := NewRebot(lookPath(t, "true"), 0)
		assert.NoError(t, r.Render(context.Background(), job))
	})

	t.Run("non-zero exit", func(t *testing.T) {
		r := NewRebot(lookPath(t, "false"), 0)
		err := r.Render(context.Background(), job)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 1, exitErr.Code)
		assert.Contains(t, exitErr.Error(), "code 1")
	})

	t.Run("missing binary", func(t *testing.T) {
		r := NewRebot("logchunks-no-such-renderer", 0)
		err := r.Render(context.Background(), job)
		assert.ErrorIs(t, err, ErrRendererNotFound)
	})

	t.Run("missing binary path", func(t *testing.T) {
		r := NewRebot(filepath.Join(t.TempDir(), "rebot"), 0)
		err := r.Render(context.Background(), job)
		assert.ErrorIs(t, err, ErrRendererNotFound)
	})
}

func TestExitError_IncludesStderr(t *testing.T) {
	err := &ExitError{Code: 252, Stderr: "[ ERROR ] Reading XML source failed.\n"}
	assert.Equal(t, "renderer exited with code 252: [ ERROR ] Reading XML source failed.", err.Error())
}
