// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fakerp is an internal helper for the test packages.
// It provides in-memory reifications of the repo.Pool, repo.Users,
// and repo.Directories interfaces, so the use cases and REST resources
// may be tested without a PostgreSQL DBMS server.
// Transactions are not isolated and may not be rolled back. Tables
// assign identifiers sequentially starting from 1, just like a serial
// primary key column.
package fakerp

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/momeni/clean-crud/pkg/core/repo"
)

// ErrRawSQL is returned by Exec and Query methods.
var ErrRawSQL = errors.New("raw SQL is not supported by fakerp")

// Pool is a fake connections pool. Err, if set, is returned by Conn
// without calling its handler, simulating an unreachable database.
type Pool struct {
	Err    error
	closed bool
}

// Conn calls h with a fake connection.
func (p *Pool) Conn(ctx context.Context, h repo.ConnHandler) error {
	if p.Err != nil {
		return p.Err
	}
	return h(ctx, &Conn{})
}

// Close marks p as closed.
func (p *Pool) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *Pool) Closed() bool {
	return p.closed
}

type Conn struct{}

func (c *Conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

func (c *Conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrRawSQL
}

func (c *Conn) Tx(ctx context.Context, h repo.TxHandler) error {
	return h(ctx, &Tx{})
}

func (c *Conn) IsConn() {
}

type Tx struct{}

func (tx *Tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

func (tx *Tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrRawSQL
}

func (tx *Tx) IsTx() {
}

// table keeps M rows by their identifiers. The id function returns
// a pointer to the identifier field of a row.
type table[M any] struct {
	mu       sync.Mutex
	prepared bool
	nextID   uint64
	rows     map[uint64]M
	id       func(*M) *uint64
	notFound func() error
}

func newTable[M any](id func(*M) *uint64, notFound func() error) *table[M] {
	return &table[M]{
		prepared: true,
		nextID:   1,
		rows:     make(map[uint64]M),
		id:       id,
		notFound: notFound,
	}
}

func (t *table[M]) all() []M {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]uint64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	list := make([]M, 0, len(ids))
	for _, id := range ids {
		list = append(list, t.rows[id])
	}
	return list
}

func (t *table[M]) create(m M) *M {
	t.mu.Lock()
	defer t.mu.Unlock()
	*t.id(&m) = t.nextID
	t.nextID++
	t.rows[*t.id(&m)] = m
	return &m
}

func (t *table[M]) fetch(id uint64) (*M, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.rows[id]
	if !ok {
		return nil, t.notFound()
	}
	return &m, nil
}

func (t *table[M]) save(m M) (*M, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := *t.id(&m)
	if _, ok := t.rows[id]; !ok {
		return nil, t.notFound()
	}
	t.rows[id] = m
	return &m, nil
}

func (t *table[M]) delete(id uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return t.notFound()
	}
	delete(t.rows, id)
	return nil
}

func (t *table[M]) deleteAll() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := int64(len(t.rows))
	t.rows = make(map[uint64]M)
	return n
}

func (t *table[M]) setPrepared(prepared bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prepared = prepared
	if !prepared {
		t.rows = make(map[uint64]M)
		t.nextID = 1
	}
}

func (t *table[M]) isPrepared() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.prepared
}
