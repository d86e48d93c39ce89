// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package analysis binds the incremental query engine, the syntax/HIR/
// schema/validate/lint layers, and the IDE feature layer into the single
// entry point an LSP server, CLI, or programmatic caller drives: Engine
// for mutation and Snapshot for every read-only query.
//
// Engine additionally implements the LSP concurrency boundary: writes
// take the analysis lock unconditionally (bounded by the work itself —
// a single input set plus a snapshot copy), while reads take it with a
// short timeout and return an empty result rather than block, so a slow
// write never freezes the editor.
package analysis

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/kraklabs/graphqlcore/pkg/engine"
	"github.com/kraklabs/graphqlcore/pkg/lint"
	"github.com/kraklabs/graphqlcore/pkg/validate"
)

// DefaultReadTimeout is the read-lock timeout named in the concurrency
// model: short enough that a request handler blocked behind a write
// still returns promptly.
const DefaultReadTimeout = 500 * time.Millisecond

// lockWeight is a semaphore.Weighted capacity used as an RWMutex: a
// reader acquires 1, a writer acquires the whole weight for exclusive
// access. golang.org/x/sync/semaphore's context-aware Acquire is what
// makes the read side's timeout possible — sync.RWMutex has no
// cancelable/timed acquisition.
const lockWeight = 1 << 30

// Engine is the mutable analysis core: one project's file registry, its
// own validation cache (not shared with other engines), and its
// configured lint rule set. All
// of its exported mutation methods serialize against in-flight reads
// through the same semaphore-backed lock.
type Engine struct {
	reg    *engine.Registry
	sem    *semaphore.Weighted
	logger *slog.Logger

	validationCache *validate.Cache
	lintRegistry    *lint.Registry

	structureMemo *engine.Memo[fileStructureEntry]
	schemaMemo    *engine.Memo[schemaEntry]
	fragmentsMemo *engine.Memo[fragmentsEntry]

	lintCfg lint.LintConfig
}

// NewEngine creates an empty analysis core with the default lint rule
// set (§4.6's six required baseline rules) registered and no lint
// overrides configured.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		reg:             engine.NewRegistry(logger),
		sem:             semaphore.NewWeighted(lockWeight),
		logger:          logger,
		validationCache: validate.NewCache(),
		lintRegistry:    lint.NewDefaultRegistry(),
		structureMemo:   engine.NewMemo[fileStructureEntry](),
		schemaMemo:      engine.NewMemo[schemaEntry](),
		fragmentsMemo:   engine.NewMemo[fragmentsEntry](),
	}
}

// Stats exposes the registry's tracked-query invocation counters, for
// instrumentation verifying the granularity invariant.
func (e *Engine) Stats() *engine.QueryStats { return e.reg.Stats() }

// ValidationCacheLen reports this engine's validation cache's current
// entry count, mostly useful in tests asserting the ≈1000-entry cap.
func (e *Engine) ValidationCacheLen() int { return e.validationCache.Len() }

// SetLintConfig replaces the active lint rule-severity/options overrides.
// Like every mutation, it is serialized under the exclusive write lock
// since it affects every subsequent RunDocument/RunProject call.
func (e *Engine) SetLintConfig(cfg lint.LintConfig) {
	_ = e.sem.Acquire(context.Background(), lockWeight)
	defer e.sem.Release(lockWeight)
	e.lintCfg = cfg
}

// AddFile registers or updates a file's content. See engine.Registry's
// AddFile for the no-op-save / per-file-revision contract this
// delegates to.
func (e *Engine) AddFile(uri, text string, language engine.Language, kind engine.DocumentKind) (engine.FileId, bool) {
	_ = e.sem.Acquire(context.Background(), lockWeight)
	defer e.sem.Release(lockWeight)
	return e.reg.AddFile(uri, text, language, kind)
}

// AddFileVersioned is AddFile plus the editor version-ordering guarantee:
// a version <= the last one seen for uri is dropped.
func (e *Engine) AddFileVersioned(uri, text string, language engine.Language, kind engine.DocumentKind, version int64) (engine.FileId, bool) {
	_ = e.sem.Acquire(context.Background(), lockWeight)
	defer e.sem.Release(lockWeight)
	return e.reg.AddFileVersioned(uri, text, language, kind, version)
}

// RemoveFile drops a file's tracked inputs.
func (e *Engine) RemoveFile(id engine.FileId) {
	_ = e.sem.Acquire(context.Background(), lockWeight)
	defer e.sem.Release(lockWeight)
	e.reg.RemoveFile(id)
}

// RebuildProjectFiles recomputes the schema/document file-id partitions.
// Must be called after AddFile/RemoveFile changes the file set, never
// after a content-only edit.
func (e *Engine) RebuildProjectFiles() {
	_ = e.sem.Acquire(context.Background(), lockWeight)
	defer e.sem.Release(lockWeight)
	e.reg.RebuildProjectFiles()
}

// AddFileAndSnapshot combines AddFile and Snapshot under one lock
// acquisition, avoiding the double-lock an editor's "apply edit, then
// re-run diagnostics" sequence would otherwise need.
func (e *Engine) AddFileAndSnapshot(uri, text string, language engine.Language, kind engine.DocumentKind) (*Snapshot, engine.FileId, bool) {
	_ = e.sem.Acquire(context.Background(), lockWeight)
	defer e.sem.Release(lockWeight)
	snap, id, isNew := e.reg.AddFileAndSnapshot(uri, text, language, kind)
	return e.wrap(snap), id, isNew
}

// Snapshot takes a consistent, immutable view of the engine at the
// current revision without timing out — used by callers outside the
// LSP request path (CLI commands, batch tooling) that have no reason to
// bound how long they wait for a concurrent write to finish.
func (e *Engine) Snapshot() *Snapshot {
	_ = e.sem.Acquire(context.Background(), 1)
	defer e.sem.Release(1)
	return e.wrap(e.reg.Snapshot())
}

// TryRead acquires a shared read slot within timeout (DefaultReadTimeout
// if timeout <= 0) and runs fn against a fresh Snapshot. ok is false,
// without fn having run at all, if the lock wasn't available in time —
// the request handler should return an empty result rather than block,
// per the concurrency model's read-timeout rule. A timed-out acquire is
// simply abandoned: Cancellation is the caller's to handle, not the
// engine's; an in-flight write that currently holds the lock keeps
// running to completion regardless.
func TryRead[T any](e *Engine, timeout time.Duration, fn func(*Snapshot) T) (result T, ok bool) {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return result, false
	}
	defer e.sem.Release(1)
	return fn(e.wrap(e.reg.Snapshot())), true
}

func (e *Engine) wrap(s *engine.Snapshot) *Snapshot {
	return &Snapshot{raw: s, engine: e}
}
