package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeBookFormat(t *testing.T) {
	b := Book{ID: 3, Title: "Effective C++", Author: "Scott Meyers", Publisher: "O'Reilly", Year: 2005, ISBN: "9780321334879"}
	assert.Equal(t, "3,Effective C++,Scott Meyers,O'Reilly,2005,9780321334879,0", EncodeBook(b))

	b.Status = Borrowed
	assert.Equal(t, "3,Effective C++,Scott Meyers,O'Reilly,2005,9780321334879,1", EncodeBook(b))
}

func TestBookRoundTrip(t *testing.T) {
	books := []Book{
		{ID: 1, Title: "Clean Code", Author: "Robert C. Martin", Publisher: "Prentice Hall", Year: 2008, ISBN: "9780132350884"},
		{ID: 42, Title: "Untitled", Author: "Anon", Publisher: "Self", Year: 0, ISBN: "x", Status: Reserved},
		{ID: 7, Title: "", Author: "", Publisher: "", Year: 1999, ISBN: "", Status: Borrowed},
	}
	for _, b := range books {
		got, err := DecodeBook(EncodeBook(b))
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
}

func TestDecodeBookMalformed(t *testing.T) {
	cases := []string{
		"",
		"1,Title,Author",
		"x,Title,Author,Pub,2000,isbn,0",
		"1,Title,Author,Pub,year,isbn,0",
		"1,Title,Author,Pub,2000,isbn,9",
		"1,Title,Author,Pub,2000,isbn,x",
	}
	for _, line := range cases {
		_, err := DecodeBook(line)
		assert.Error(t, err, "line %q", line)
	}
}

func TestEncodeAccountFormat(t *testing.T) {
	acc := NewAccount()
	acc.AddLoan(5, 115)
	acc.AddLoan(2, 40)
	acc.RecordHistory(1)
	acc.RecordHistory(2)
	acc.RecordHistory(2)
	acc.AddFine(12.5)

	// Loans serialize in ascending book-id order.
	assert.Equal(t, "12.5,2:40,5:115,H:1-2-2", EncodeAccount(acc))
	assert.Equal(t, "0,H:", EncodeAccount(NewAccount()))
}

func TestAccountRoundTrip(t *testing.T) {
	acc := NewAccount()
	acc.AddLoan(9, 130)
	acc.AddFine(50)
	got, err := DecodeAccount(EncodeAccount(acc))
	require.NoError(t, err)
	assert.Equal(t, acc, got)

	empty, err := DecodeAccount(EncodeAccount(NewAccount()))
	require.NoError(t, err)
	assert.Equal(t, NewAccount(), empty)
}

func TestDecodeAccountIgnoresBareTokens(t *testing.T) {
	// Tokens without a colon are neither loans nor history; skip them.
	acc, err := DecodeAccount("0,garbage,H:")
	require.NoError(t, err)
	assert.Empty(t, acc.Loans)
	assert.Empty(t, acc.History)
}

func TestDecodeAccountMalformed(t *testing.T) {
	cases := []string{
		"abc,H:",
		"0,x:10,H:",
		"0,3:x,H:",
		"0,3:10,H:1-x",
	}
	for _, data := range cases {
		_, err := DecodeAccount(data)
		assert.Error(t, err, "data %q", data)
	}
}

func TestPatronRoundTrip(t *testing.T) {
	for _, role := range []Role{Student, Faculty, Librarian} {
		p := Patron{ID: 101, Name: "Alice", Role: role, Account: NewAccount()}
		p.Account.AddLoan(5, 115)
		p.Account.RecordHistory(3)
		p.Account.AddFine(20)

		got, err := DecodePatron(EncodePatron(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestEncodePatronFormat(t *testing.T) {
	p := Patron{ID: 201, Name: "Professor X", Role: Faculty, Account: NewAccount()}
	assert.Equal(t, "Faculty,201,Professor X,0,H:", EncodePatron(p))
}

func TestDecodePatronMalformed(t *testing.T) {
	cases := []string{
		"",
		"Student,101,Alice",
		"Wizard,101,Alice,0,H:",
		"Student,x,Alice,0,H:",
		"Student,101,Alice,notafine,H:",
	}
	for _, line := range cases {
		_, err := DecodePatron(line)
		assert.Error(t, err, "line %q", line)
	}
}

func TestBookRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := Book{
			ID:        rapid.IntRange(1, 1_000_000).Draw(t, "id"),
			Title:     rapid.StringMatching(`[A-Za-z0-9 .'&-]*`).Draw(t, "title"),
			Author:    rapid.StringMatching(`[A-Za-z0-9 .'&-]*`).Draw(t, "author"),
			Publisher: rapid.StringMatching(`[A-Za-z0-9 .'&-]*`).Draw(t, "publisher"),
			Year:      rapid.IntRange(0, 9999).Draw(t, "year"),
			ISBN:      rapid.StringMatching(`[0-9X]*`).Draw(t, "isbn"),
			Status:    Status(rapid.IntRange(0, 2).Draw(t, "status")),
		}
		got, err := DecodeBook(EncodeBook(b))
		require.NoError(t, err)
		require.Equal(t, b, got)
	})
}

func TestAccountRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		acc := NewAccount()
		for id, due := range rapid.MapOf(rapid.IntRange(1, 9999), rapid.IntRange(0, 99999)).Draw(t, "loans") {
			acc.AddLoan(id, due)
		}
		for _, h := range rapid.SliceOf(rapid.IntRange(1, 9999)).Draw(t, "history") {
			acc.RecordHistory(h)
		}
		acc.AddFine(rapid.Float64Range(0, 1e9).Draw(t, "fine"))

		got, err := DecodeAccount(EncodeAccount(acc))
		require.NoError(t, err)
		require.Equal(t, acc.Fine, got.Fine)
		require.Equal(t, acc.Loans, got.Loans)
		if len(acc.History) == 0 {
			require.Empty(t, got.History)
		} else {
			require.Equal(t, acc.History, got.History)
		}
	})
}
