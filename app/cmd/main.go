package main

import (
	"os"

	"github.com/ribgsilva/note-sync/app/cmd/schema"

	_ "github.com/go-sql-driver/mysql"
)

func listCommands() {
	println("Commands")
	println("\tschema\t\t\t- Manages the database schema")
	println("\thelp\t\t\t- Print the commands available")
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		listCommands()
		return
	}

	switch args[0] {
	case "schema":
		schema.Run(args[1:])
	case "help":
		fallthrough
	default:
		listCommands()
	}
}
