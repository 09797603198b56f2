package cmd

import (
	"bytes"
	"context"
	"testing"
)

// executeCmd runs a fresh command tree with the given args and returns
// everything written to its stdout and stderr.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd := newRootCmd()
	// Set args explicitly (nil would fall back to os.Args)
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
