package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextBookID(t *testing.T) {
	lib := New()
	assert.Equal(t, 1, lib.NextBookID())

	for i := 1; i <= 10; i++ {
		require.NoError(t, lib.AddBook(Book{ID: i}))
	}
	assert.Equal(t, 11, lib.NextBookID())

	// Removed ids are never reassigned.
	require.NoError(t, lib.RemoveBook(10))
	assert.Equal(t, 11, lib.NextBookID())
}

func TestAddDuplicateIDs(t *testing.T) {
	lib := New()
	require.NoError(t, lib.AddBook(Book{ID: 1, Title: "A"}))
	assert.ErrorIs(t, lib.AddBook(Book{ID: 1, Title: "B"}), ErrDuplicateID)

	require.NoError(t, lib.AddPatron(Patron{ID: 101, Name: "Alice", Role: Student}))
	assert.ErrorIs(t, lib.AddPatron(Patron{ID: 101, Name: "Bob", Role: Faculty}), ErrDuplicateID)
}

func TestFindReturnsNilOnMiss(t *testing.T) {
	lib := New()
	assert.Nil(t, lib.FindBook(1))
	assert.Nil(t, lib.FindPatron(1))
}

func TestRemoveBookOnLoan(t *testing.T) {
	lib := testLibrary(t)
	_, err := lib.Borrow(101, 1, 10)
	require.NoError(t, err)

	assert.ErrorIs(t, lib.RemoveBook(1), ErrBookOnLoan)
	require.NotNil(t, lib.FindBook(1))

	_, err = lib.Return(101, 1, 12)
	require.NoError(t, err)
	require.NoError(t, lib.RemoveBook(1))
	assert.Nil(t, lib.FindBook(1))
}

func TestRemovePatronWithLoans(t *testing.T) {
	lib := testLibrary(t)
	_, err := lib.Borrow(101, 1, 10)
	require.NoError(t, err)

	assert.ErrorIs(t, lib.RemovePatron(101), ErrPatronHasLoans)

	_, err = lib.Return(101, 1, 12)
	require.NoError(t, err)
	require.NoError(t, lib.RemovePatron(101))
	assert.Nil(t, lib.FindPatron(101))
}

func TestRemoveMisses(t *testing.T) {
	lib := New()
	assert.ErrorIs(t, lib.RemoveBook(1), ErrBookNotFound)
	assert.ErrorIs(t, lib.RemovePatron(1), ErrPatronNotFound)
}
