package library

// Library aggregates the catalog and the patron roster and mediates every
// borrow/return between them. Books and Patrons are owned by value; lookups
// hand out pointers into the slices, so callers must not retain them across
// adds or removes.
type Library struct {
	Books   []Book
	Patrons []Patron

	maxBookID int // high-water mark so removed ids are never reassigned
}

func New() *Library {
	return &Library{}
}

// FindBook returns the catalog entry with the given id, or nil.
func (l *Library) FindBook(id int) *Book {
	for i := range l.Books {
		if l.Books[i].ID == id {
			return &l.Books[i]
		}
	}
	return nil
}

// FindPatron returns the patron with the given id, or nil.
func (l *Library) FindPatron(id int) *Patron {
	for i := range l.Patrons {
		if l.Patrons[i].ID == id {
			return &l.Patrons[i]
		}
	}
	return nil
}

// NextBookID returns the next catalog identifier: one past the highest id
// ever assigned, or 1 for a catalog that has never held a book.
func (l *Library) NextBookID() int {
	highest := l.maxBookID
	for i := range l.Books {
		if l.Books[i].ID > highest {
			highest = l.Books[i].ID
		}
	}
	return highest + 1
}

// AddBook appends a catalog entry. Duplicate ids are rejected.
func (l *Library) AddBook(b Book) error {
	if l.FindBook(b.ID) != nil {
		return ErrDuplicateID
	}
	l.Books = append(l.Books, b)
	if b.ID > l.maxBookID {
		l.maxBookID = b.ID
	}
	return nil
}

// RemoveBook deletes a catalog entry. Removal is rejected while any patron
// holds an active loan on it.
func (l *Library) RemoveBook(id int) error {
	idx := -1
	for i := range l.Books {
		if l.Books[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrBookNotFound
	}
	for i := range l.Patrons {
		if _, held := l.Patrons[i].Account.Loans[id]; held {
			return ErrBookOnLoan
		}
	}
	l.Books = append(l.Books[:idx], l.Books[idx+1:]...)
	return nil
}

// AddPatron appends a patron to the roster. Duplicate ids are rejected.
func (l *Library) AddPatron(p Patron) error {
	if l.FindPatron(p.ID) != nil {
		return ErrDuplicateID
	}
	if p.Account.Loans == nil {
		p.Account.Loans = make(map[int]int)
	}
	l.Patrons = append(l.Patrons, p)
	return nil
}

// RemovePatron deletes a patron. Removal is rejected while the patron holds
// active loans, so borrowed books can never be stranded.
func (l *Library) RemovePatron(id int) error {
	idx := -1
	for i := range l.Patrons {
		if l.Patrons[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrPatronNotFound
	}
	if len(l.Patrons[idx].Account.Loans) > 0 {
		return ErrPatronHasLoans
	}
	l.Patrons = append(l.Patrons[:idx], l.Patrons[idx+1:]...)
	return nil
}

// Borrow checks the patron's role policy and the book's availability, then
// records the loan. It returns the due day. The check order is: role
// precondition, borrow limit, book lookup, availability.
func (l *Library) Borrow(patronID, bookID, day int) (int, error) {
	p := l.FindPatron(patronID)
	if p == nil {
		return 0, ErrPatronNotFound
	}
	pol := policyFor(p.Role)
	if !pol.canBorrow {
		return 0, ErrLibrarianAccount
	}
	if err := pol.precheck(&p.Account, day); err != nil {
		return 0, err
	}
	if len(p.Account.Loans) >= pol.limit {
		return 0, ErrBorrowLimit
	}
	bk := l.FindBook(bookID)
	if bk == nil {
		return 0, ErrBookNotFound
	}
	if bk.Status != Available {
		return 0, ErrNotAvailable
	}

	due := day + pol.period
	p.Account.AddLoan(bookID, due)
	bk.Status = Borrowed
	return due, nil
}

// ReturnReceipt reports the outcome of a successful return.
type ReturnReceipt struct {
	BookID      int
	OverdueDays int
	Fine        float64
}

// Return closes the loan, records it in the patron's history, and makes the
// book available again. Fined roles accrue overdue penalties on the ledger;
// Faculty are never fined regardless of lateness.
func (l *Library) Return(patronID, bookID, day int) (ReturnReceipt, error) {
	p := l.FindPatron(patronID)
	if p == nil {
		return ReturnReceipt{}, ErrPatronNotFound
	}
	if !policyFor(p.Role).canBorrow {
		return ReturnReceipt{}, ErrLibrarianAccount
	}
	bk := l.FindBook(bookID)
	if bk == nil {
		return ReturnReceipt{}, ErrBookNotFound
	}
	due, held := p.Account.Loans[bookID]
	if !held {
		return ReturnReceipt{}, ErrNotBorrowed
	}

	rec := ReturnReceipt{BookID: bookID}
	if rate := policyFor(p.Role).fineRate; rate > 0 && day > due {
		rec.OverdueDays = day - due
		rec.Fine = float64(rec.OverdueDays) * rate
		p.Account.AddFine(rec.Fine)
	}
	p.Account.RemoveLoan(bookID)
	p.Account.RecordHistory(bookID)
	bk.Status = Available
	return rec, nil
}

// PayFine clears the patron's fine balance and returns the amount paid,
// which is zero when nothing was owed.
func (l *Library) PayFine(patronID int) (float64, error) {
	p := l.FindPatron(patronID)
	if p == nil {
		return 0, ErrPatronNotFound
	}
	paid := p.Account.Fine
	p.Account.ClearFine()
	return paid, nil
}
