package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WalkBookingService/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}
func (t *fakeTx) Rollback() error { t.rolledBack = true; return nil }

type fakeBeginner struct {
	tx       *fakeTx
	lastOpts *sql.TxOptions
	begins   int
	err      error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begins++
	b.lastOpts = opts
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestDoSerializable_Commits(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, sql.LevelSerializable, b.lastOpts.Isolation)
	assert.True(t, b.tx.committed)
	assert.False(t, b.tx.rolledBack)
}

func TestDo_RollsBackOnError(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, b.tx.rolledBack)
	assert.False(t, b.tx.committed)
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, b.begins)
}

func TestDo_BeginFails(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{err: errors.New("conn refused")})

	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrBeginTx)
}

func TestDoSerializable_SerializationFailure(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{commitErr: &pq.Error{Code: "40001", Message: "could not serialize access"}}}
	m := NewTransactionManager(b)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrSerializationFailure)
	assert.NotErrorIs(t, err, ErrCommitTx)
}

func TestDoSerializable_OtherCommitError(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{commitErr: errors.New("connection reset")}}
	m := NewTransactionManager(b)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommitTx)
}

func TestDoSerializable_SerializationFailureFromStatement(t *testing.T) {
	pqErr := &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}

	tests := []struct {
		name string
		err  error
	}{
		{name: "driver error", err: pqErr},
		{name: "wrapped by repository", err: fmt.Errorf("%w: CountConfirmedWalks - execute query: %w", errors.New("booking.repository: exec"), pqErr)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBeginner{tx: &fakeTx{}}
			m := NewTransactionManager(b)

			err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return tt.err })

			assert.ErrorIs(t, err, ErrSerializationFailure)
			assert.True(t, b.tx.rolledBack)
			assert.False(t, b.tx.committed)
		})
	}
}

func TestDo_OtherStatementErrorPassesThrough(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{tx: &fakeTx{}})
	uniqueViolation := &pq.Error{Code: "23505"}

	err := m.Do(context.Background(), func(ctx context.Context) error { return uniqueViolation })

	assert.ErrorIs(t, err, uniqueViolation)
	assert.NotErrorIs(t, err, ErrSerializationFailure)
}
