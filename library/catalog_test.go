package library

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, kind StoreKind) *LibraryManager {
	t.Helper()
	mgr, err := NewLibraryManager(kind, nil)
	require.NoError(t, err, "new manager")
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func forEachManager(t *testing.T, fn func(t *testing.T, mgr *LibraryManager)) {
	t.Helper()
	for _, kind := range storeKinds {
		t.Run(string(kind), func(t *testing.T) {
			fn(t, newManager(t, kind))
		})
	}
}

func TestSeedCatalog(t *testing.T) {
	want := []Book{
		{1, "The God of Small Things", "Arundhati Roy", true},
		{2, "Midnight's Children", "Salman Rushdie", true},
		{3, "A Suitable Boy", "Vikram Seth", true},
		{4, "The White Tiger", "Aravind Adiga", true},
		{5, "Train to Pakistan", "Khushwant Singh", true},
		{6, "Interpreter of Maladies", "Jhumpa Lahiri", true},
		{7, "The Palace of Illusions", "Chitra Banerjee Divakaruni", true},
		{8, "The Guide", "R.K. Narayan", true},
		{9, "The Inheritance of Loss", "Kiran Desai", true},
		{10, "Sita: An Illustrated Retelling of the Ramayana", "Devdutt Pattanaik", true},
	}

	forEachManager(t, func(t *testing.T, mgr *LibraryManager) {
		books, err := mgr.Catalog.Books()
		require.NoError(t, err)
		require.Len(t, books, len(want))
		for i, b := range books {
			assert.Equal(t, want[i], *b)
		}
	})
}

func TestAddThenFind(t *testing.T) {
	cases := [][2]string{
		{"Gitanjali", "Rabindranath Tagore"},
		{"", ""},
		{"Malgudi Days", "R.K. Narayan"},
	}

	forEachManager(t, func(t *testing.T, mgr *LibraryManager) {
		for _, c := range cases {
			before, err := mgr.Catalog.Books()
			require.NoError(t, err)

			added, err := mgr.Catalog.AddBook(c[0], c[1])
			require.NoError(t, err)
			assert.Equal(t, int64(len(before))+1, added.ID)

			found, err := mgr.Catalog.FindBookByID(added.ID)
			require.NoError(t, err)
			assert.Equal(t, c[0], found.Title)
			assert.Equal(t, c[1], found.Author)
			assert.True(t, found.Available)
		}
	})
}

func TestFindBookByIDMissing(t *testing.T) {
	forEachManager(t, func(t *testing.T, mgr *LibraryManager) {
		_, err := mgr.Catalog.FindBookByID(11)
		assert.ErrorIs(t, err, ErrBookNotFound)
		_, err = mgr.Catalog.FindBookByID(0)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestBorrowReturnBoundary(t *testing.T) {
	forEachManager(t, func(t *testing.T, mgr *LibraryManager) {
		res, err := mgr.Catalog.BorrowBook(1, "current")
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "Book 'The God of Small Things' borrowed successfully by user current", res.Message)

		b, err := mgr.Catalog.FindBookByID(1)
		require.NoError(t, err)
		assert.False(t, b.Available)

		res, err = mgr.Catalog.BorrowBook(1, "current")
		assert.ErrorIs(t, err, ErrNotAvailable)
		assert.False(t, res.Success)
		assert.Equal(t, msgBorrowFailed, res.Message)

		res, err = mgr.Catalog.ReturnBook(1)
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "Book 'The God of Small Things' returned successfully.", res.Message)

		b, err = mgr.Catalog.FindBookByID(1)
		require.NoError(t, err)
		assert.True(t, b.Available)

		res, err = mgr.Catalog.ReturnBook(1)
		assert.ErrorIs(t, err, ErrAlreadyAvailable)
		assert.False(t, res.Success)
		assert.Equal(t, msgReturnFailed, res.Message)
	})
}

func TestBorrowReturnUnknownBook(t *testing.T) {
	forEachManager(t, func(t *testing.T, mgr *LibraryManager) {
		res, err := mgr.Catalog.BorrowBook(99, "current")
		assert.ErrorIs(t, err, ErrNotAvailable)
		assert.Equal(t, msgBorrowFailed, res.Message)

		res, err = mgr.Catalog.ReturnBook(99)
		assert.ErrorIs(t, err, ErrBookNotFound)
		assert.Equal(t, msgReturnFailed, res.Message)
	})
}

func TestSearchBooks(t *testing.T) {
	tests := []struct {
		keyword string
		wantIDs []int64
	}{
		{"roy", []int64{1}},
		{"ROY", []int64{1}},
		{"xyz", []int64{}},
		{"the", []int64{1, 4, 7, 8, 9, 10}},
		{"narayan", []int64{8}},
		{"", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
	}

	forEachManager(t, func(t *testing.T, mgr *LibraryManager) {
		for _, tt := range tests {
			t.Run(fmt.Sprintf("keyword=%q", tt.keyword), func(t *testing.T) {
				res, err := mgr.Catalog.SearchBooks(tt.keyword)
				require.NoError(t, err)
				require.NotNil(t, res)
				ids := make([]int64, 0, len(res))
				for _, b := range res {
					ids = append(ids, b.ID)
				}
				assert.Equal(t, tt.wantIDs, ids)
			})
		}
	})
}

func TestAvailableBooksSkipsBorrowed(t *testing.T) {
	forEachManager(t, func(t *testing.T, mgr *LibraryManager) {
		_, err := mgr.Catalog.BorrowBook(2, "current")
		require.NoError(t, err)
		_, err = mgr.Catalog.BorrowBook(5, "current")
		require.NoError(t, err)

		books, err := mgr.Catalog.AvailableBooks()
		require.NoError(t, err)
		require.Len(t, books, 8)
		for _, b := range books {
			assert.NotContains(t, []int64{2, 5}, b.ID)
			assert.True(t, b.Available)
		}
	})
}

func TestManagersAreIndependent(t *testing.T) {
	a := newManager(t, StoreMemory)
	b := newManager(t, StoreMemory)

	_, err := a.Catalog.BorrowBook(3, "current")
	require.NoError(t, err)

	book, err := b.Catalog.FindBookByID(3)
	require.NoError(t, err)
	assert.True(t, book.Available)
}
