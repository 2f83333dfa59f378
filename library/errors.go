package library

import "errors"

// Lookup misses.
var (
	ErrBookNotFound   = errors.New("book not found")
	ErrPatronNotFound = errors.New("patron not found")
)

// Policy rejections. The shell shows these messages verbatim; a rejected
// operation leaves no side effect.
var (
	ErrNotAvailable     = errors.New("that book is not available")
	ErrBorrowLimit      = errors.New("borrowing limit reached")
	ErrOutstandingFines = errors.New("you have outstanding fines; clear them before borrowing")
	ErrOverdueBlock     = errors.New("cannot borrow new books due to an item overdue more than 60 days")
	ErrNotBorrowed      = errors.New("you didn't borrow this book")
	ErrLibrarianAccount = errors.New("librarian accounts cannot borrow or return books")
	ErrDuplicateID      = errors.New("identifier already in use")
	ErrBookOnLoan       = errors.New("book is on loan and cannot be removed")
	ErrPatronHasLoans   = errors.New("patron has active loans and cannot be removed")
)
