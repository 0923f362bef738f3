package orerr_test

import (
	"errors"
	"fmt"

	"github.com/getoutreach/archivebox/pkg/orerr"
)

const ErrEntryExists orerr.SentinelError = "entry already exists"

func addEntry(name string) error {
	return ErrEntryExists
}

func ExampleSentinelError() {
	if err := addEntry("META-INF/MANIFEST.MF"); err != nil {
		if errors.Is(err, ErrEntryExists) {
			fmt.Println("entry already exists")
			return
		}

		panic(err)
	}

	// Output: entry already exists
}
