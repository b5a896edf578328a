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

	"github.com/glowpoint/salon-booking-service/pkg/dbmetrics"
)

// --- Фейки ---

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	// Ошибка Commit для каждой следующей открытой транзакции
	commitErrs []error
	txs        []*fakeTx
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	var commitErr error
	if len(b.txs) < len(b.commitErrs) {
		commitErr = b.commitErrs[len(b.txs)]
	}
	tx := &fakeTx{commitErr: commitErr}
	b.txs = append(b.txs, tx)
	return tx, nil
}

// --- Тесты ---

func TestDo_CommitsOnSuccess(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, err)
	require.Len(t, beginner.txs, 1)
	assert.True(t, beginner.txs[0].committed)
	assert.False(t, beginner.txs[0].rolledBack)
}

func TestDo_RollsBackOnError(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	boom := errors.New("boom")
	err := m.Do(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	require.Len(t, beginner.txs, 1)
	assert.True(t, beginner.txs[0].rolledBack)
	assert.False(t, beginner.txs[0].committed)
}

func TestDoSerializable_RetriesOnceOnSerializationConflict(t *testing.T) {
	// Первый COMMIT падает с конфликтом сериализации, второй проходит
	beginner := &fakeBeginner{
		commitErrs: []error{&pq.Error{Code: serializationFailure}, nil},
	}
	m := NewTransactionManager(beginner)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, beginner.txs, 2)
	assert.True(t, beginner.txs[1].committed)
}

func TestDoSerializable_GivesUpAfterSecondConflict(t *testing.T) {
	conflict := &pq.Error{Code: serializationFailure}
	beginner := &fakeBeginner{commitErrs: []error{conflict, conflict}}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.Len(t, beginner.txs, 2)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode(serializationFailure), pqErr.Code)
}

func TestDoSerializable_NoRetryOnOtherErrors(t *testing.T) {
	// Нарушение уникальности повтором не лечится
	beginner := &fakeBeginner{commitErrs: []error{&pq.Error{Code: "23505"}}}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.Len(t, beginner.txs, 1)
}

func TestDoSerializable_NoRetryOnFnError(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return errors.New("domain error")
	})

	require.Error(t, err)
	assert.Len(t, beginner.txs, 1)
	assert.True(t, beginner.txs[0].rolledBack)
}

func TestIsSerializationFailure(t *testing.T) {
	conflict := &pq.Error{Code: serializationFailure}

	assert.True(t, isSerializationFailure(conflict))
	// Обертка через %w цепочку не рвет
	assert.True(t, isSerializationFailure(fmt.Errorf("failed to commit transaction: %w", conflict)))

	assert.False(t, isSerializationFailure(nil))
	assert.False(t, isSerializationFailure(errors.New("plain")))
	assert.False(t, isSerializationFailure(&pq.Error{Code: "23505"}))
}
