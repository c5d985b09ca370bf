/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package scan

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/alitto/pond/v2"
	"github.com/sirupsen/logrus"

	"github.com/sigscope/sigscope/authenticode"
)

type Options struct {
	Enumerator *authenticode.Enumerator
	// Workers bounds the files enumerated at once; zero means one per CPU.
	Workers int
	// Recursive walks directories to any depth instead of their top level only.
	Recursive bool
	Logger    logrus.FieldLogger
}

type Result struct {
	Path    string
	Size    int64
	Signers []*authenticode.SignerRecord
	Err     error
}

// Tampered reports whether the file failed because a signature's hash did not match.
func (r *Result) Tampered() bool {
	var tampered *authenticode.TamperedFileError
	return errors.As(r.Err, &tampered)
}

// Files enumerates the signers of every file named by paths, expanding
// directories, and returns one result per file in the order the files were
// named. A cancelled context stops files that have not started yet; their
// results carry the context's error, which is also returned.
func Files(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Enumerator == nil {
		opts.Enumerator = authenticode.NewEnumerator(authenticode.Options{Logger: opts.Logger})
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	files, err := Expand(paths, opts.Recursive)
	if err != nil {
		return nil, err
	}
	results := make([]*Result, len(files))
	pool := pond.NewPool(workers)
	for i, path := range files {
		pool.Submit(func() {
			results[i] = scanFile(ctx, opts, path)
		})
	}
	pool.StopAndWait()
	return results, ctx.Err()
}

func scanFile(ctx context.Context, opts Options, path string) *Result {
	result := &Result{Path: path}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}
	if info, err := os.Stat(path); err == nil {
		result.Size = info.Size()
	}
	log := opts.Logger.WithField("path", path)
	log.Debug("Enumerating signers")
	result.Signers, result.Err = opts.Enumerator.EnumerateSigners(path)
	if result.Err != nil {
		log.WithError(result.Err).Warn("Unable to enumerate signers")
	}
	return result
}

// Expand replaces every directory in paths with the regular files inside
// it, sorted by name. Plain files are passed through even if they do not
// exist, so that their error surfaces in their result.
func Expand(paths []string, recursive bool) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			files = append(files, path)
			continue
		}
		var found []string
		err = filepath.WalkDir(path, func(name string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if name != path && !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() {
				found = append(found, name)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
