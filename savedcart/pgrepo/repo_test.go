package pgrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepo_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithPool(mock)
	updatedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO saved_carts").
		WithArgs("customer-1", []byte(`[{"variantId":"A","quantity":2}]`), updatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Upsert(context.Background(), &savedcart.SavedCart{
		CustomerID: "customer-1",
		Items:      []savedcart.SavedItem{{VariantID: "A", Quantity: 2}},
		UpdatedAt:  updatedAt,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Upsert_EmptyItemsStoredAsArray(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithPool(mock)

	mock.ExpectExec("INSERT INTO saved_carts").
		WithArgs("customer-1", []byte(`[]`), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Upsert(context.Background(), &savedcart.SavedCart{CustomerID: "customer-1"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Upsert_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithPool(mock)

	mock.ExpectExec("INSERT INTO saved_carts").
		WithArgs("customer-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	err = repo.Upsert(context.Background(), &savedcart.SavedCart{
		CustomerID: "customer-1",
		Items:      []savedcart.SavedItem{{VariantID: "A", Quantity: 1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Upsert_MissingCustomer(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	err = NewWithPool(mock).Upsert(context.Background(), &savedcart.SavedCart{})
	assert.ErrorIs(t, err, apperrors.ErrMissingCustomerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWithPool(mock)
	updatedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{"items", "updated_at"}).
		AddRow([]byte(`[{"variantId":"A","quantity":2},{"variantId":"B","quantity":1}]`), updatedAt)
	mock.ExpectQuery("SELECT items, updated_at FROM saved_carts").
		WithArgs("customer-1").
		WillReturnRows(rows)

	cart, err := repo.Get(context.Background(), "customer-1")
	require.NoError(t, err)
	assert.Equal(t, "customer-1", cart.CustomerID)
	assert.Equal(t, []savedcart.SavedItem{{VariantID: "A", Quantity: 2}, {VariantID: "B", Quantity: 1}}, cart.Items)
	assert.Equal(t, updatedAt, cart.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT items, updated_at FROM saved_carts").
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	_, err = NewWithPool(mock).Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_EnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS saved_carts").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	assert.NoError(t, NewWithPool(mock).EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
