package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"group-chat/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	prefix := flag.String("prefix", "group:", "Key prefix to scan (group:, member:, msg:, user:...)")
	limit := flag.Int("limit", 200, "Maximum number of rows")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	rows := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes) && rows < *limit; it.Next() {
			item := it.Item()
			key := string(item.KeyCopy(nil))
			err := item.Value(func(v []byte) error {
				row := repositories.InspectMapper(key, v)
				table.Append([]string{key, row.Type, row.Detail})
				return nil
			})
			if err != nil {
				return err
			}
			rows++
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
	fmt.Printf("%d rows\n", rows)
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil && strings.Contains(err.Error(), "Log truncate required") {
		// A crashed writer leaves the value log untruncated; a write open repairs it.
		repaired, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil).WithBypassLockGuard(true))
		if err != nil {
			return nil, fmt.Errorf("repair failed: %w", err)
		}
		_ = repaired.Close()
		return badger.Open(opts)
	}
	return db, err
}
