package main

import (
	"sisuva-scraper/cmd/sis-cli/commands"
	"sisuva-scraper/internal/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
