package menu

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPricesByIDs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPGRepo(mock)

	rows := pgxmock.NewRows([]string{"id", "price_thb"}).
		AddRow(int64(1), "199.00").
		AddRow(int64(2), "249.00")
	mock.ExpectQuery("SELECT id, price_thb").
		WithArgs([]int64{1, 2, 9}).
		WillReturnRows(rows)

	prices, err := repo.GetPricesByIDs(context.Background(), []int64{1, 2, 9})
	require.NoError(t, err)

	assert.Len(t, prices, 2)
	assert.True(t, prices[1].Equal(decimal.RequireFromString("199.00")))
	assert.True(t, prices[2].Equal(decimal.RequireFromString("249.00")))
	_, ok := prices[9]
	assert.False(t, ok, "absent id must produce an absent map entry")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPricesByIDs_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPGRepo(mock)

	mock.ExpectQuery("SELECT id, price_thb").
		WithArgs([]int64{1}).
		WillReturnError(errors.New("connection refused"))

	_, err = repo.GetPricesByIDs(context.Background(), []int64{1})
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPGRepo(mock)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO menu_items").
		WithArgs("Pad Thai", "stir-fried noodles", "89.00", "noodles", true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	it := &Item{Name: "Pad Thai", Description: "stir-fried noodles", PriceTHB: "89.00", Category: "noodles", Available: true}
	require.NoError(t, repo.Create(context.Background(), it))
	assert.Equal(t, int64(7), it.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPGRepo(mock)

	mock.ExpectQuery("SELECT id, name, description, price_thb").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "price_thb", "category", "available", "created_at", "updated_at"}))

	_, err = repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPGRepo(mock)

	mock.ExpectExec("DELETE FROM menu_items").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM menu_items").
		WithArgs(int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repo.Delete(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), 8)
	require.NoError(t, err)
	assert.False(t, deleted)

	require.NoError(t, mock.ExpectationsWereMet())
}
