// Package services contains the application services behind the console:
// the authentication flow (login state machine, logout) and the enrollment
// flow (generated password, two-factor provisioning). Both drive the gateway
// through api.Client and never retry failed calls.
package services
