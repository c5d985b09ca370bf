/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigscope/sigscope/authenticode"
)

type statusRound struct {
	code uint32
}

func (r *statusRound) Code() uint32                                   { return r.code }
func (r *statusRound) SecondaryCount() uint32                         { return 0 }
func (r *statusRound) HasState() bool                                 { return false }
func (r *statusRound) Message() ([]byte, error)                       { return nil, nil }
func (r *statusRound) Chain() ([]authenticode.CertificateInfo, error) { return nil, nil }
func (r *statusRound) Close() error                                   { return nil }

// statusVerifier reports a fixed status per file name.
type statusVerifier struct {
	codes map[string]uint32
	calls atomic.Int32
}

func (v *statusVerifier) Verify(path string, index uint32) (authenticode.Round, error) {
	v.calls.Add(1)
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	code, ok := v.codes[filepath.Base(path)]
	if !ok {
		code = authenticode.CodeNoSignature
	}
	return &statusRound{code: code}, nil
}

func testOptions(verifier authenticode.Verifier) Options {
	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return Options{
		Enumerator: authenticode.NewEnumerator(authenticode.Options{Verifier: verifier, Logger: logger}),
		Workers:    4,
		Logger:     logger,
	}
}

func writeFiles(t *testing.T, dir string, names ...string) []string {
	var paths []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte(name), 0o600))
		paths = append(paths, path)
	}
	return paths
}

func TestFilesKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var names []string
	for i := 0; i < 32; i++ {
		names = append(names, fmt.Sprintf("file%02d.exe", i))
	}
	paths := writeFiles(t, dir, names...)
	paths = append(paths, filepath.Join(dir, "missing.exe"))
	verifier := &statusVerifier{codes: map[string]uint32{"file07.exe": authenticode.CodeBadDigest}}

	results, err := Files(context.Background(), paths, testOptions(verifier))
	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for i, result := range results {
		assert.Equal(t, paths[i], result.Path)
	}
	assert.True(t, results[7].Tampered())
	assert.False(t, results[8].Tampered())
	assert.NoError(t, results[8].Err)
	assert.Empty(t, results[8].Signers)
	assert.Equal(t, int64(len("file08.exe")), results[8].Size)
	assert.ErrorIs(t, results[len(paths)-1].Err, os.ErrNotExist)
	assert.Equal(t, int32(len(paths)), verifier.calls.Load())
}

func TestFilesCancelled(t *testing.T) {
	paths := writeFiles(t, t.TempDir(), "a.exe", "b.exe")
	verifier := &statusVerifier{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Files(ctx, paths, testOptions(verifier))
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	for _, result := range results {
		assert.ErrorIs(t, result.Err, context.Canceled)
	}
	assert.Zero(t, verifier.calls.Load())
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.exe", "a.dll", filepath.Join("sub", "c.sys"), filepath.Join("sub", "deeper", "d.exe"))
	single := filepath.Join(dir, "b.exe")

	files, err := Expand([]string{dir, single}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.dll"),
		filepath.Join(dir, "b.exe"),
		single,
	}, files)

	files, err = Expand([]string{dir}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.dll"),
		filepath.Join(dir, "b.exe"),
		filepath.Join(dir, "sub", "c.sys"),
		filepath.Join(dir, "sub", "deeper", "d.exe"),
	}, files)
}

func TestFilesRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "top.exe", filepath.Join("nested", "inner.exe"))
	opts := testOptions(&statusVerifier{})

	results, err := Files(context.Background(), []string{dir}, opts)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	opts.Recursive = true
	results, err = Files(context.Background(), []string{dir}, opts)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
