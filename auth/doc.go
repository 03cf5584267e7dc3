// Package auth exposes the service's account operations: register,
// login, and verify. Successful registration or login persists the
// issued bearer token into the session; every other component picks it
// up through the shared transport.
//
// Credential forms and screens are out of scope; this is only the wire
// contract.
package auth
