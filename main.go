package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"lendingdesk/library"

	"github.com/spf13/cobra"
)

var (
	dataDir     string
	dayOverride int
	daySet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "lendingdesk",
		Short:        "Single-branch library lending desk",
		Long:         "Interactive lending desk for a single-branch library: books, patrons, loans, due days and fines, persisted to flat text files.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			daySet = cmd.Flags().Changed("day")
			return runShell()
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "directory holding books.txt and users.txt")
	rootCmd.PersistentFlags().IntVar(&dayOverride, "day", 0, "override the current day counter (default: derive from system clock)")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Print overdue loans and outstanding fines",
		RunE: func(cmd *cobra.Command, args []string) error {
			daySet = cmd.Flags().Changed("day")
			return runReport()
		},
	}
	rootCmd.AddCommand(reportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// today counts days since the unix epoch, like the original deployment did.
// An explicit --day value wins, including zero and negative day counters.
func today() int {
	if daySet {
		return dayOverride
	}
	return int(time.Now().Unix() / (60 * 60 * 24))
}

func runShell() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store := library.NewStore(dataDir, logger)

	firstRun := store.FirstRun()
	lib, err := store.Load()
	if err != nil {
		return err
	}
	if firstRun {
		logger.Info("no existing data, seeding defaults")
		seedLibrary(lib)
	}

	creds, err := loadCredentials(dataDir)
	if err != nil {
		return err
	}

	day := today()
	checker := library.NewValidator()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to the lending desk.")
	for {
		fmt.Print("\nEnter Patron ID to log in (or 'exit' to quit): ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "exit" {
			break
		}
		patronID, err := strconv.Atoi(input)
		if err != nil {
			fmt.Printf("Invalid patron ID: %s\n", input)
			continue
		}
		patron := lib.FindPatron(patronID)
		if patron == nil {
			fmt.Println("Patron not found.")
			continue
		}
		if creds.required(patronID) {
			pass, err := readPassphrase("Passphrase: ")
			if err != nil {
				fmt.Printf("Error reading passphrase: %v\n", err)
				continue
			}
			if err := creds.verify(patronID, pass); err != nil {
				fmt.Println("Authentication failed.")
				continue
			}
		}

		fmt.Printf("Logged in as %s (%s)\n", patron.Name, patron.Role)
		if patron.Role == library.Librarian {
			librarianMenu(scanner, lib, creds, checker)
		} else {
			borrowerMenu(scanner, lib, patron.ID, day)
		}
	}

	fmt.Println("Saving data and exiting...")
	if err := store.Save(lib); err != nil {
		return err
	}
	if err := creds.save(); err != nil {
		return err
	}
	fmt.Println("Library data saved. Goodbye.")
	return nil
}

// ------------------ Student / Faculty session ------------------

func borrowerMenu(sc *bufio.Scanner, lib *library.Library, patronID, day int) {
	p := lib.FindPatron(patronID)
	fmt.Printf("Borrowed books: %d\n", len(p.Account.Loans))
	fmt.Printf("Outstanding fines: %.2f rupees\n", p.Account.Fine)

	for {
		fmt.Print("\n1. Borrow Book\n2. Return Book\n3. Pay Fine\n4. View Account\n5. Logout\nChoice: ")
		if !sc.Scan() {
			return
		}
		switch strings.TrimSpace(sc.Text()) {
		case "1":
			handleBorrow(sc, lib, patronID, day)
		case "2":
			handleReturn(sc, lib, patronID, day)
		case "3":
			handlePayFine(lib, patronID)
		case "4":
			printPatron(lib.FindPatron(patronID))
		case "5":
			fmt.Println("Logging out...")
			return
		default:
			fmt.Println("Invalid choice.")
		}
	}
}

func handleBorrow(sc *bufio.Scanner, lib *library.Library, patronID, day int) {
	bookID, ok := promptInt(sc, "Enter Book ID: ")
	if !ok {
		return
	}
	due, err := lib.Borrow(patronID, bookID, day)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Book borrowed. Due on day %d.\n", due)
}

func handleReturn(sc *bufio.Scanner, lib *library.Library, patronID, day int) {
	bookID, ok := promptInt(sc, "Enter Book ID: ")
	if !ok {
		return
	}
	rec, err := lib.Return(patronID, bookID, day)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if rec.OverdueDays > 0 {
		fmt.Printf("Late return. Overdue by %d day(s). Fine: %.2f rupees.\n", rec.OverdueDays, rec.Fine)
	} else {
		fmt.Println("Returned on time.")
	}
}

func handlePayFine(lib *library.Library, patronID int) {
	paid, err := lib.PayFine(patronID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if paid <= 0 {
		fmt.Println("No outstanding fines.")
		return
	}
	fmt.Printf("Paid %.2f rupees. Fines cleared.\n", paid)
}

// ------------------ Librarian session ------------------

func librarianMenu(sc *bufio.Scanner, lib *library.Library, creds *credentials, checker *library.Validator) {
	for {
		fmt.Print("\n1. Display Books\n2. Display Patrons\n3. Add Book\n4. Remove Book\n" +
			"5. Add Patron\n6. Remove Patron\n7. Set Patron Passphrase\n8. Logout\nChoice: ")
		if !sc.Scan() {
			return
		}
		switch strings.TrimSpace(sc.Text()) {
		case "1":
			printBooks(lib)
		case "2":
			for i := range lib.Patrons {
				printPatron(&lib.Patrons[i])
				fmt.Println(strings.Repeat("-", 30))
			}
		case "3":
			handleAddBook(sc, lib, checker)
		case "4":
			handleRemoveBook(sc, lib)
		case "5":
			handleAddPatron(sc, lib, checker)
		case "6":
			handleRemovePatron(sc, lib)
		case "7":
			handleSetPassphrase(sc, lib, creds)
		case "8":
			fmt.Println("Logging out...")
			return
		default:
			fmt.Println("Invalid choice.")
		}
	}
}

func handleAddBook(sc *bufio.Scanner, lib *library.Library, checker *library.Validator) {
	in := library.BookInput{}
	var ok bool
	if in.Title, ok = promptLine(sc, "Title: "); !ok {
		return
	}
	if in.Author, ok = promptLine(sc, "Author: "); !ok {
		return
	}
	if in.Publisher, ok = promptLine(sc, "Publisher: "); !ok {
		return
	}
	if in.Year, ok = promptInt(sc, "Year: "); !ok {
		return
	}
	if in.ISBN, ok = promptLine(sc, "ISBN: "); !ok {
		return
	}
	if err := checker.ValidateBook(in); err != nil {
		fmt.Printf("Invalid book: %v\n", err)
		return
	}

	book := library.Book{
		ID:        lib.NextBookID(),
		Title:     in.Title,
		Author:    in.Author,
		Publisher: in.Publisher,
		Year:      in.Year,
		ISBN:      in.ISBN,
	}
	if err := lib.AddBook(book); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Book added with ID %d.\n", book.ID)
}

func handleRemoveBook(sc *bufio.Scanner, lib *library.Library) {
	bookID, ok := promptInt(sc, "Enter Book ID to remove: ")
	if !ok {
		return
	}
	if err := lib.RemoveBook(bookID); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Book removed successfully.")
}

func handleAddPatron(sc *bufio.Scanner, lib *library.Library, checker *library.Validator) {
	in := library.PatronInput{}
	var ok bool
	if in.ID, ok = promptInt(sc, "Enter Patron ID: "); !ok {
		return
	}
	if in.Name, ok = promptLine(sc, "Name: "); !ok {
		return
	}
	if in.Role, ok = promptLine(sc, "Role (Student/Faculty/Librarian): "); !ok {
		return
	}
	if err := checker.ValidatePatron(in); err != nil {
		fmt.Printf("Invalid patron: %v\n", err)
		return
	}

	role, _ := library.ParseRole(in.Role)
	patron := library.Patron{ID: in.ID, Name: in.Name, Role: role, Account: library.NewAccount()}
	if err := lib.AddPatron(patron); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Patron added.")
}

func handleRemovePatron(sc *bufio.Scanner, lib *library.Library) {
	patronID, ok := promptInt(sc, "Enter Patron ID to remove: ")
	if !ok {
		return
	}
	if err := lib.RemovePatron(patronID); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Patron removed successfully.")
}

func handleSetPassphrase(sc *bufio.Scanner, lib *library.Library, creds *credentials) {
	patronID, ok := promptInt(sc, "Enter Patron ID: ")
	if !ok {
		return
	}
	patron := lib.FindPatron(patronID)
	if patron == nil {
		fmt.Println("Patron not found.")
		return
	}
	pass, err := readPassphrase(fmt.Sprintf("New passphrase for %s (ID %d): ", patron.Name, patronID))
	if err != nil {
		fmt.Printf("Error reading passphrase: %v\n", err)
		return
	}
	if pass == "" {
		fmt.Println("Passphrase cannot be empty.")
		return
	}
	if err := creds.set(patronID, pass); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Passphrase set for %s.\n", patron.Name)
}

// ------------------ Rendering ------------------

func printBooks(lib *library.Library) {
	if len(lib.Books) == 0 {
		fmt.Println("No books in library.")
		return
	}
	fmt.Printf("%-5s %-35s %-25s %-20s %-6s %-15s %s\n", "ID", "Title", "Author", "Publisher", "Year", "ISBN", "Status")
	fmt.Println(strings.Repeat("-", 120))
	for _, b := range lib.Books {
		fmt.Printf("%-5d %-35s %-25s %-20s %-6d %-15s %s\n",
			b.ID, truncate(b.Title, 35), truncate(b.Author, 25), truncate(b.Publisher, 20), b.Year, b.ISBN, b.Status)
	}
}

func printPatron(p *library.Patron) {
	fmt.Printf("Role: %s\nPatron ID: %d\nName: %s\n", p.Role, p.ID, p.Name)
	if p.Role == library.Librarian {
		return
	}
	fmt.Printf("Fine: %.2f rupees\nBorrowed Books:\n", p.Account.Fine)
	for _, id := range sortedLoanIDs(p.Account) {
		fmt.Printf("  Book ID %d, Due Day: %d\n", id, p.Account.Loans[id])
	}
	fmt.Print("Borrowing History: ")
	for _, h := range p.Account.History {
		fmt.Printf("%d ", h)
	}
	fmt.Println()
}

func sortedLoanIDs(a library.Account) []int {
	ids := make([]int, 0, len(a.Loans))
	for id := range a.Loans {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// ------------------ Prompt helpers ------------------

func promptLine(sc *bufio.Scanner, prompt string) (string, bool) {
	fmt.Print(prompt)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func promptInt(sc *bufio.Scanner, prompt string) (int, bool) {
	raw, ok := promptLine(sc, prompt)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Printf("Invalid number: %s\n", raw)
		return 0, false
	}
	return n, true
}

// ------------------ Report ------------------

func runReport() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	lib, err := library.NewStore(dataDir, logger).Load()
	if err != nil {
		return err
	}
	day := today()

	fmt.Printf("Overdue loans as of day %d:\n", day)
	overdue := 0
	for i := range lib.Patrons {
		p := &lib.Patrons[i]
		for _, id := range sortedLoanIDs(p.Account) {
			due := p.Account.Loans[id]
			if day <= due {
				continue
			}
			overdue++
			title := "(removed)"
			if b := lib.FindBook(id); b != nil {
				title = b.Title
			}
			fmt.Printf("  %s (ID %d): book %d %q, due day %d, %d day(s) overdue\n",
				p.Name, p.ID, id, title, due, day-due)
		}
	}
	if overdue == 0 {
		fmt.Println("  none")
	}

	fmt.Println("Outstanding fines:")
	fined := 0
	for i := range lib.Patrons {
		if p := &lib.Patrons[i]; p.Account.Fine > 0 {
			fined++
			fmt.Printf("  %s (ID %d): %.2f rupees\n", p.Name, p.ID, p.Account.Fine)
		}
	}
	if fined == 0 {
		fmt.Println("  none")
	}
	return nil
}

// ------------------ Seed data ------------------

// seedLibrary installs the stock catalog and roster used on a first run,
// carried over from the original deployment.
func seedLibrary(lib *library.Library) {
	books := []library.Book{
		{ID: 1, Title: "The C++ Programming Language", Author: "Bjarne Stroustrup", Publisher: "Addison-Wesley", Year: 2013, ISBN: "9780321563842"},
		{ID: 2, Title: "Clean Code", Author: "Robert C. Martin", Publisher: "Prentice Hall", Year: 2008, ISBN: "9780132350884"},
		{ID: 3, Title: "Effective C++", Author: "Scott Meyers", Publisher: "O'Reilly", Year: 2005, ISBN: "9780321334879"},
		{ID: 4, Title: "Design Patterns", Author: "Erich Gamma et al.", Publisher: "Addison-Wesley", Year: 1994, ISBN: "9780201633610"},
		{ID: 5, Title: "Introduction to Algorithms", Author: "Cormen-Leiserson-Rivest-Stein", Publisher: "MIT Press", Year: 2009, ISBN: "9780262033848"},
		{ID: 6, Title: "Programming Principles", Author: "Some Author", Publisher: "Some Publisher", Year: 2010, ISBN: "1111111111"},
		{ID: 7, Title: "Data Structures", Author: "Another Author", Publisher: "Another Publisher", Year: 2011, ISBN: "2222222222"},
		{ID: 8, Title: "Algorithms Unlocked", Author: "Thomas Cormen", Publisher: "MIT Press", Year: 2013, ISBN: "9780262518802"},
		{ID: 9, Title: "Operating System Concepts", Author: "Silberschatz et al.", Publisher: "Wiley", Year: 2018, ISBN: "9781119456339"},
		{ID: 10, Title: "Computer Networks", Author: "Andrew Tanenbaum", Publisher: "Pearson", Year: 2011, ISBN: "9780132126953"},
	}
	for _, b := range books {
		_ = lib.AddBook(b)
	}

	patrons := []library.Patron{
		{ID: 101, Name: "Alice", Role: library.Student},
		{ID: 102, Name: "Bob", Role: library.Student},
		{ID: 103, Name: "Charlie", Role: library.Student},
		{ID: 104, Name: "Diana", Role: library.Student},
		{ID: 105, Name: "Evan", Role: library.Student},
		{ID: 201, Name: "Professor X", Role: library.Faculty},
		{ID: 202, Name: "Professor Y", Role: library.Faculty},
		{ID: 203, Name: "Professor Z", Role: library.Faculty},
		{ID: 301, Name: "Librarian A", Role: library.Librarian},
	}
	for _, p := range patrons {
		p.Account = library.NewAccount()
		_ = lib.AddPatron(p)
	}
}
