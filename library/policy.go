package library

// policy bundles the role-specific borrowing constants. Prechecks run before
// the limit and availability checks and may veto the borrow outright.
type policy struct {
	limit     int
	period    int // days until due
	fineRate  float64
	canBorrow bool
	precheck  func(acct *Account, day int) error
}

var policies = map[Role]policy{
	Student: {
		limit:     3,
		period:    15,
		fineRate:  10.0,
		canBorrow: true,
		precheck:  studentPrecheck,
	},
	Faculty: {
		limit:     5,
		period:    30,
		canBorrow: true,
		precheck:  facultyPrecheck,
	},
	Librarian: {},
}

// Students may not borrow while any fine is outstanding.
func studentPrecheck(acct *Account, _ int) error {
	if acct.Fine > 0 {
		return ErrOutstandingFines
	}
	return nil
}

// Faculty are never fined, but a loan overdue by more than 60 days blocks
// further borrowing. Exactly 60 days overdue is still permitted.
func facultyPrecheck(acct *Account, day int) error {
	for _, due := range acct.Loans {
		if day-due > 60 {
			return ErrOverdueBlock
		}
	}
	return nil
}

func policyFor(r Role) policy {
	return policies[r]
}
