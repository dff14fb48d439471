// Command clubctl runs the content normalizers from the shell so editors and operators
// can check how a CMS value will be interpreted by the site.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
