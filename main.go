// lush is the listing toolkit CLI. See cmd/root.go for the command tree.
package main

import (
	"github.com/ginjaninja78/lush-listing-kit/cmd"
)

func main() {
	cmd.Execute()
}
