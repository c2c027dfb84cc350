package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with
// a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	TOTPPreview(ctx context.Context) error
	SaveQR(ctx context.Context) error
	Status(ctx context.Context) error
	ProfileInfo(ctx context.Context) error
	Watch(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	loginScreenHelp     = "Available commands: login, signup, totp, saveqr, exit"
	dashboardScreenHelp = "Available commands: status, profile, watch, totp, logout, exit"
)

// runREPL is the console loop. It reads a line from scanner, dispatches the
// first token as a command, and repeats until EOF or exit/quit.
//
// The command set is gated on the authenticated flag: login-screen commands
// (login, signup, saveqr) are rejected once signed in and dashboard commands
// (status, profile, watch, logout) are rejected before; a rejected command
// prints the other screen's help instead, mirroring a route redirect.
//
// Errors returned by command handlers are not propagated; handlers print
// their own user-facing messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cofrap %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(dashboardScreenHelp)
			} else {
				printlnFn(loginScreenHelp)
			}

		case "login":
			if a.isLoggedIn() {
				printlnFn("Already signed in.", dashboardScreenHelp)
				continue
			}
			_ = a.Login(ctx)

		case "signup":
			if a.isLoggedIn() {
				printlnFn("Already signed in.", dashboardScreenHelp)
				continue
			}
			_ = a.Signup(ctx)

		case "saveqr":
			if a.isLoggedIn() {
				printlnFn("Already signed in.", dashboardScreenHelp)
				continue
			}
			_ = a.SaveQR(ctx)

		case "totp":
			_ = a.TOTPPreview(ctx)

		case "status":
			if !a.isLoggedIn() {
				printlnFn("Sign in first.", loginScreenHelp)
				continue
			}
			_ = a.Status(ctx)

		case "profile":
			if !a.isLoggedIn() {
				printlnFn("Sign in first.", loginScreenHelp)
				continue
			}
			_ = a.ProfileInfo(ctx)

		case "watch":
			if !a.isLoggedIn() {
				printlnFn("Sign in first.", loginScreenHelp)
				continue
			}
			_ = a.Watch(ctx)

		case "logout":
			if !a.isLoggedIn() {
				printlnFn("Not signed in.", loginScreenHelp)
				continue
			}
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
