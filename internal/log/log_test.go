// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

// TestSubsystems ensures every subsystem is listed and levels are applied
// only to known subsystems.
func TestSubsystems(t *testing.T) {
	require.Equal(t, []string{"CHAN", "CMDS", "FEES", "MEMP", "PSTR"},
		SupportedSubsystems())

	SetLogLevels("debug")
	for _, id := range SupportedSubsystems() {
		require.Equal(t, btclog.LevelDebug, SubsystemLoggers[id].Level(), id)
	}
	SetLogLevel("MEMP", "warn")
	require.Equal(t, btclog.LevelWarn, SubsystemLoggers["MEMP"].Level())
	SetLogLevel("NOPE", "trace")
	require.Len(t, SubsystemLoggers, 5)

	// Invalid levels fall back to info.
	SetLogLevel("FEES", "loud")
	require.Equal(t, btclog.LevelInfo, SubsystemLoggers["FEES"].Level())
	SetLogLevels("off")
}

// TestInitLogRotator ensures the rotator creates the log directory and
// receives backend output.
func TestInitLogRotator(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "test.log")
	require.NoError(t, InitLogRotator(logFile))
	defer func() {
		LogRotator.Close()
		LogRotator = nil
	}()

	_, err := os.Stat(filepath.Dir(logFile))
	require.NoError(t, err)
	require.Equal(t, "noun", PickNoun(1, "noun", "nouns"))
	require.Equal(t, "nouns", PickNoun(2, "noun", "nouns"))
}
