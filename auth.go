package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

const credentialsFile = "credentials.txt"

// credentials is the optional passphrase gate on shell logins. Hashes live
// in a sidecar file, one "patronID,bcryptHash" per line, separate from the
// two library data files. Patrons with no entry log in without a prompt.
type credentials struct {
	path   string
	hashes map[int]string
}

func loadCredentials(dir string) (*credentials, error) {
	c := &credentials{
		path:   filepath.Join(dir, credentialsFile),
		hashes: make(map[int]string),
	}
	f, err := os.Open(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		id, hash, ok := strings.Cut(strings.TrimSpace(sc.Text()), ",")
		if !ok {
			continue
		}
		patronID, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		c.hashes[patronID] = hash
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	return c, nil
}

func (c *credentials) save() error {
	ids := make([]int, 0, len(c.hashes))
	for id := range c.hashes {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var sb strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&sb, "%d,%s\n", id, c.hashes[id])
	}
	if err := os.WriteFile(c.path, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	return nil
}

func (c *credentials) required(patronID int) bool {
	_, ok := c.hashes[patronID]
	return ok
}

func (c *credentials) set(patronID int, passphrase string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash passphrase: %w", err)
	}
	c.hashes[patronID] = string(hash)
	return nil
}

func (c *credentials) verify(patronID int, passphrase string) error {
	hash, ok := c.hashes[patronID]
	if !ok {
		return nil
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passphrase))
}

// readPassphrase reads a masked passphrase from the terminal.
func readPassphrase(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(raw)), nil
}
