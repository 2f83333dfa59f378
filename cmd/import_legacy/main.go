// Command import_legacy migrates the catalog out of the previous
// SQLite-based deployment into the flat-file format.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"lendingdesk/library"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	dbPath := flag.String("db", "library.db", "path to the legacy SQLite database")
	dataDir := flag.String("data-dir", ".", "directory holding books.txt and users.txt")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(*dbPath, *dataDir, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath, dataDir string, logger *slog.Logger) error {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	store := library.NewStore(dataDir, logger)
	lib, err := store.Load()
	if err != nil {
		return err
	}

	rows, err := db.Query(`SELECT id, title, author, publisher, year, isbn, status FROM books ORDER BY id`)
	if err != nil {
		return fmt.Errorf("query legacy books: %w", err)
	}
	defer rows.Close()

	checker := library.NewValidator()
	imported := 0
	skipped := 0

	for rows.Next() {
		var b library.Book
		var status int
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Publisher, &b.Year, &b.ISBN, &status); err != nil {
			return fmt.Errorf("scan legacy book: %w", err)
		}
		if status < int(library.Available) || status > int(library.Reserved) {
			logger.Warn("skipping legacy book", "id", b.ID, "reason", "unknown status", "status", status)
			skipped++
			continue
		}
		b.Status = library.Status(status)
		// Loans are not migrated, so a non-available status would leave the
		// book with no ledger referencing it and no way to borrow or return
		// it. Imported books always start available.
		if b.Status != library.Available {
			logger.Warn("resetting legacy status", "id", b.ID, "status", b.Status.String())
			b.Status = library.Available
		}

		in := library.BookInput{Title: b.Title, Author: b.Author, Publisher: b.Publisher, Year: b.Year, ISBN: b.ISBN}
		if err := checker.ValidateBook(in); err != nil {
			logger.Warn("skipping legacy book", "id", b.ID, "reason", err)
			skipped++
			continue
		}
		if err := lib.AddBook(b); err != nil {
			logger.Warn("skipping legacy book", "id", b.ID, "reason", err)
			skipped++
			continue
		}
		imported++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read legacy books: %w", err)
	}

	if err := store.Save(lib); err != nil {
		return err
	}

	fmt.Printf("Import complete. Imported: %d, skipped: %d\n", imported, skipped)
	return nil
}
