package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain lets the qcpm binary run in-process under testscript
// rather than ad hoc exec.Command plumbing.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"qcpm": func() int {
			main()
			return 0
		},
	}))
}

func TestQCPM(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
	})
}
