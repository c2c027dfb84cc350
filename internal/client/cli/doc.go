// Package cli implements the interactive COFRAP console: a login screen,
// the signup (enrollment) flow, and a dashboard summarizing account security
// status. Which commands are reachable depends solely on the session's
// authenticated flag.
package cli
