package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset-billing/internal/core/domain"
)

func newTestBalance(userKey string) *domain.UserBalance {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.UserBalance{
		UserKey:        userKey,
		Balance:        100,
		TotalPurchased: 100,
		TotalConsumed:  0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func balanceRow(b *domain.UserBalance) *pgxmock.Rows {
	cols := []string{"user_key", "balance", "total_purchased", "total_consumed", "last_purchase_at", "created_at", "updated_at"}
	return pgxmock.NewRows(cols).AddRow(
		b.UserKey, b.Balance, b.TotalPurchased, b.TotalConsumed,
		b.LastPurchaseAt, b.CreatedAt, b.UpdatedAt,
	)
}

func TestBalanceRepo_EnsureWithGrant(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBalanceRepo(mock)
	b := newTestBalance("user-1")

	mock.ExpectExec("INSERT INTO user_balances").
		WithArgs("user-1", int64(100)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT .+ FROM user_balances WHERE user_key").
		WithArgs("user-1").
		WillReturnRows(balanceRow(b))

	result, err := repo.EnsureWithGrant(context.Background(), "user-1", 100)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(100), result.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepo_EnsureWithGrant_ExistingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBalanceRepo(mock)
	b := newTestBalance("user-1")
	b.Balance = 40
	b.TotalConsumed = 60

	// Insert hits the conflict and changes nothing; the existing row wins.
	mock.ExpectExec("INSERT INTO user_balances").
		WithArgs("user-1", int64(100)).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectQuery("SELECT .+ FROM user_balances WHERE user_key").
		WithArgs("user-1").
		WillReturnRows(balanceRow(b))

	result, err := repo.EnsureWithGrant(context.Background(), "user-1", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(40), result.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepo_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBalanceRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM user_balances WHERE user_key").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"user_key"}))

	result, err := repo.Get(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepo_Credit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBalanceRepo(mock)
	b := newTestBalance("user-1")
	b.Balance = 1100
	b.TotalPurchased = 1100

	mock.ExpectQuery("UPDATE user_balances").
		WithArgs(int64(1000), "user-1").
		WillReturnRows(balanceRow(b))

	result, err := repo.Credit(context.Background(), "user-1", 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1100), result.Balance)
	assert.Equal(t, int64(1100), result.TotalPurchased)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepo_Debit_Applied(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBalanceRepo(mock)

	mock.ExpectQuery("UPDATE user_balances").
		WithArgs(int64(10), "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(90)))

	out, err := repo.Debit(context.Background(), "user-1", 10)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, int64(90), out.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepo_Debit_Insufficient(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBalanceRepo(mock)

	// Conditional UPDATE matches no rows, then the current balance is read.
	mock.ExpectQuery("UPDATE user_balances").
		WithArgs(int64(50), "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"balance"}))
	mock.ExpectQuery("SELECT balance FROM user_balances").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(5)))

	out, err := repo.Debit(context.Background(), "user-1", 50)
	require.NoError(t, err)
	assert.False(t, out.OK)
	assert.Equal(t, int64(5), out.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBalanceRepo_Debit_UnknownUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewBalanceRepo(mock)

	mock.ExpectQuery("UPDATE user_balances").
		WithArgs(int64(10), "ghost").
		WillReturnRows(pgxmock.NewRows([]string{"balance"}))
	mock.ExpectQuery("SELECT balance FROM user_balances").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"balance"}))

	out, err := repo.Debit(context.Background(), "ghost", 10)
	require.NoError(t, err)
	assert.False(t, out.OK)
	assert.Equal(t, int64(0), out.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
