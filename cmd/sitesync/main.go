package main

import (
	"github.com/Altinity/site-sync/cmd/sitesync/cmd"
)

func main() {
	cmd.Execute()
}
