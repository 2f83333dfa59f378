package library

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Line-oriented persistence codec.
//
// Catalog record:  id,title,author,publisher,year,isbn,status
// Account record:  fine[,bookId:dueDay]*,H:[id[-id]*]
// Patron record:   type,id,name,<account record>
//
// Fields are not escaped, so text fields must not contain commas; the
// boundary validator enforces that before anything reaches the codec.
// Decoding is strict: any malformed line yields an error and the store
// skips it with a diagnostic.

const historyPrefix = "H:"

// EncodeBook renders a catalog entry as one record line.
func EncodeBook(b Book) string {
	return strings.Join([]string{
		strconv.Itoa(b.ID),
		b.Title,
		b.Author,
		b.Publisher,
		strconv.Itoa(b.Year),
		b.ISBN,
		strconv.Itoa(int(b.Status)),
	}, ",")
}

// DecodeBook parses a catalog record line.
func DecodeBook(line string) (Book, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 7 {
		return Book{}, fmt.Errorf("catalog record: want 7 fields, got %d", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return Book{}, fmt.Errorf("catalog record: bad id %q: %w", fields[0], err)
	}
	year, err := strconv.Atoi(fields[4])
	if err != nil {
		return Book{}, fmt.Errorf("catalog record: bad year %q: %w", fields[4], err)
	}
	status, err := strconv.Atoi(fields[6])
	if err != nil || status < int(Available) || status > int(Reserved) {
		return Book{}, fmt.Errorf("catalog record: bad status %q", fields[6])
	}
	return Book{
		ID:        id,
		Title:     fields[1],
		Author:    fields[2],
		Publisher: fields[3],
		Year:      year,
		ISBN:      fields[5],
		Status:    Status(status),
	}, nil
}

// EncodeAccount renders a ledger. Loans are written in ascending book-id
// order so the encoding is deterministic; the history field is always
// present, "H:" alone for an empty history.
func EncodeAccount(a Account) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatFloat(a.Fine, 'g', -1, 64))

	ids := make([]int, 0, len(a.Loans))
	for id := range a.Loans {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(&sb, ",%d:%d", id, a.Loans[id])
	}

	sb.WriteString("," + historyPrefix)
	for i, h := range a.History {
		if i > 0 {
			sb.WriteByte('-')
		}
		sb.WriteString(strconv.Itoa(h))
	}
	return sb.String()
}

// DecodeAccount parses a ledger record. The first field is the fine
// balance; each later field is either a bookId:dueDay pair or the
// "H:"-prefixed history. Fields without a colon are ignored.
func DecodeAccount(data string) (Account, error) {
	acc := NewAccount()
	fields := strings.Split(data, ",")

	fine, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Account{}, fmt.Errorf("account record: bad fine balance %q: %w", fields[0], err)
	}
	acc.Fine = fine

	for _, tok := range fields[1:] {
		if rest, ok := strings.CutPrefix(tok, historyPrefix); ok {
			for _, part := range strings.Split(rest, "-") {
				if part == "" {
					continue
				}
				id, err := strconv.Atoi(part)
				if err != nil {
					return Account{}, fmt.Errorf("account record: bad history id %q: %w", part, err)
				}
				acc.History = append(acc.History, id)
			}
			continue
		}
		bookStr, dueStr, ok := strings.Cut(tok, ":")
		if !ok {
			continue
		}
		bookID, err := strconv.Atoi(bookStr)
		if err != nil {
			return Account{}, fmt.Errorf("account record: bad loan book id %q: %w", bookStr, err)
		}
		due, err := strconv.Atoi(dueStr)
		if err != nil {
			return Account{}, fmt.Errorf("account record: bad due day %q: %w", dueStr, err)
		}
		acc.Loans[bookID] = due
	}
	return acc, nil
}

// EncodePatron renders a patron with their embedded ledger.
func EncodePatron(p Patron) string {
	return fmt.Sprintf("%s,%d,%s,%s", p.Role, p.ID, p.Name, EncodeAccount(p.Account))
}

// DecodePatron parses a patron record line. The role tag selects the policy
// variant applied on later operations.
func DecodePatron(line string) (Patron, error) {
	fields := strings.SplitN(line, ",", 4)
	if len(fields) < 4 {
		return Patron{}, fmt.Errorf("patron record: want 4 fields, got %d", len(fields))
	}
	role, ok := ParseRole(fields[0])
	if !ok {
		return Patron{}, fmt.Errorf("patron record: unknown type %q", fields[0])
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return Patron{}, fmt.Errorf("patron record: bad id %q: %w", fields[1], err)
	}
	acc, err := DecodeAccount(fields[3])
	if err != nil {
		return Patron{}, err
	}
	return Patron{ID: id, Name: fields[2], Role: role, Account: acc}, nil
}
