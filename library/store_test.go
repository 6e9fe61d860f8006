package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeKinds lists every Store so each test runs against both.
var storeKinds = []StoreKind{StoreMemory, StoreSQLite}

func tempStore(t *testing.T, kind StoreKind) Store {
	t.Helper()
	store, err := OpenStore(kind)
	require.NoError(t, err, "open %s store", kind)
	t.Cleanup(func() { store.Close() })
	return store
}

func forEachStore(t *testing.T, fn func(t *testing.T, store Store)) {
	t.Helper()
	for _, kind := range storeKinds {
		t.Run(string(kind), func(t *testing.T) {
			fn(t, tempStore(t, kind))
		})
	}
}

func TestOpenStoreUnknownKind(t *testing.T) {
	_, err := OpenStore("postgres")
	assert.Error(t, err)
}

func TestStoreAddBookAssignsSequentialIDs(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		for want := int64(1); want <= 3; want++ {
			b, err := store.AddBook("Title", "Author")
			require.NoError(t, err)
			assert.Equal(t, want, b.ID)
			assert.True(t, b.Available)
		}

		books, err := store.GetAllBooks()
		require.NoError(t, err)
		require.Len(t, books, 3)
		for i, b := range books {
			assert.Equal(t, int64(i+1), b.ID, "books should come back in id order")
		}
	})
}

func TestStoreGetBookMissing(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		_, err := store.GetBook(42)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestStoreCheckoutAndReturn(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		b, err := store.AddBook("Book", "Author")
		require.NoError(t, err)

		out, err := store.CheckoutBook(b.ID)
		require.NoError(t, err)
		assert.False(t, out.Available)

		_, err = store.CheckoutBook(b.ID)
		assert.ErrorIs(t, err, ErrNotAvailable)

		back, err := store.ReturnBook(b.ID)
		require.NoError(t, err)
		assert.True(t, back.Available)

		_, err = store.ReturnBook(b.ID)
		assert.ErrorIs(t, err, ErrAlreadyAvailable)

		_, err = store.CheckoutBook(99)
		assert.ErrorIs(t, err, ErrBookNotFound)
		_, err = store.ReturnBook(99)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestStoreReturnsCopies(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		b, err := store.AddBook("Book", "Author")
		require.NoError(t, err)
		b.Available = false
		b.Title = "changed"

		got, err := store.GetBook(b.ID)
		require.NoError(t, err)
		assert.True(t, got.Available)
		assert.Equal(t, "Book", got.Title)
	})
}

func TestStoreSearchIsPlainSubstring(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		_, _ = store.AddBook("100% Pure", "Anon")
		_, _ = store.AddBook("Plain Title", "Some_One")
		_, _ = store.AddBook("Other", "Writer")

		res, err := store.SearchBooks("%")
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "100% Pure", res[0].Title)

		res, err = store.SearchBooks("_")
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "Some_One", res[0].Author)

		res, err = store.SearchBooks("nothing here")
		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})
}

func TestStoreSearchFoldsNonASCII(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		_, _ = store.AddBook("Émile", "Jean-Jacques Rousseau")
		_, _ = store.AddBook("Der Zauberberg", "THOMAS MANN")
		_, _ = store.AddBook("Война и мир", "Лев Толстой")

		for _, kw := range []string{"émile", "ÉMILE", "mann", "ВОЙНА", "толстой"} {
			res, err := store.SearchBooks(kw)
			require.NoError(t, err)
			assert.Len(t, res, 1, "keyword %q", kw)
		}
	})
}

func TestStoreUsers(t *testing.T) {
	forEachStore(t, func(t *testing.T, store Store) {
		_, err := store.GetUser("R001")
		assert.ErrorIs(t, err, ErrUserNotFound)

		require.NoError(t, store.PutUser(User{RegistrationNumber: "R001", Password: "pw"}))
		u, err := store.GetUser("R001")
		require.NoError(t, err)
		assert.Equal(t, "pw", u.Password)

		require.NoError(t, store.PutUser(User{RegistrationNumber: "R001", Password: "other"}))
		u, err = store.GetUser("R001")
		require.NoError(t, err)
		assert.Equal(t, "other", u.Password, "a second put should overwrite")
	})
}

func TestSQLiteStoresAreIsolated(t *testing.T) {
	a := tempStore(t, StoreSQLite)
	b := tempStore(t, StoreSQLite)

	_, err := a.AddBook("Only in A", "Author")
	require.NoError(t, err)

	books, err := b.GetAllBooks()
	require.NoError(t, err)
	assert.Empty(t, books)
}
