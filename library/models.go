package library

// Status tracks the lifecycle of a catalog entry.
type Status int

const (
	Available Status = iota
	Borrowed
	Reserved
)

func (s Status) String() string {
	switch s {
	case Available:
		return "Available"
	case Borrowed:
		return "Borrowed"
	case Reserved:
		return "Reserved"
	default:
		return "Unknown"
	}
}

// Book represents a single title/copy record in the catalog.
type Book struct {
	ID        int
	Title     string
	Author    string
	Publisher string
	Year      int
	ISBN      string
	Status    Status
}

// Role selects the borrowing policy applied to a patron.
type Role string

const (
	Student   Role = "Student"
	Faculty   Role = "Faculty"
	Librarian Role = "Librarian"
)

// ParseRole maps a stored role tag to a Role. The second result is false
// for unrecognised tags.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case Student, Faculty, Librarian:
		return Role(s), true
	}
	return "", false
}

// Account is a patron's ledger: active loans keyed by book id, the return
// history, and the outstanding fine balance. Mutators are unchecked; callers
// are responsible for policy.
type Account struct {
	Loans   map[int]int // book id -> due day
	History []int       // returned book ids, append-only, duplicates allowed
	Fine    float64
}

// NewAccount returns an empty account with an initialised loan map.
func NewAccount() Account {
	return Account{Loans: make(map[int]int)}
}

// AddLoan records a loan. Borrowing an already-held book overwrites the
// due day (last write wins).
func (a *Account) AddLoan(bookID, dueDay int) {
	if a.Loans == nil {
		a.Loans = make(map[int]int)
	}
	a.Loans[bookID] = dueDay
}

// RemoveLoan deletes the loan if present, no-op otherwise.
func (a *Account) RemoveLoan(bookID int) {
	delete(a.Loans, bookID)
}

// RecordHistory appends the book id to the return history.
func (a *Account) RecordHistory(bookID int) {
	a.History = append(a.History, bookID)
}

// AddFine adds amount to the fine balance.
func (a *Account) AddFine(amount float64) {
	a.Fine += amount
}

// ClearFine resets the fine balance to exactly zero.
func (a *Account) ClearFine() {
	a.Fine = 0
}

// Patron is a library-account holder. Each patron owns exactly one Account.
type Patron struct {
	ID      int
	Name    string
	Role    Role
	Account Account
}
