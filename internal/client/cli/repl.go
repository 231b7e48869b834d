package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	List(ctx context.Context) error
	ListAll(ctx context.Context) error
	Upload(ctx context.Context) error
	Delete(ctx context.Context) error
	SaveImage(ctx context.Context) error
	AdminLogin(ctx context.Context) error
	AdminLogout(ctx context.Context) error
	AdminList(ctx context.Context) error
	AdminDelete(ctx context.Context) error
	Export(ctx context.Context) error
	Import(ctx context.Context) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vq %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, listall, upload, delete, saveimage, profile, edit, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}
			printlnFn("Admin commands: admin, adminlist, admindelete, export, import, adminlogout")

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "listall":
			_ = a.ListAll(ctx)

		case "upload":
			_ = a.Upload(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "saveimage":
			_ = a.SaveImage(ctx)

		case "admin":
			_ = a.AdminLogin(ctx)

		case "adminlogout":
			_ = a.AdminLogout(ctx)

		case "adminlist":
			_ = a.AdminList(ctx)

		case "admindelete":
			_ = a.AdminDelete(ctx)

		case "export":
			_ = a.Export(ctx)

		case "import":
			_ = a.Import(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
