// Package session manages the client's bearer credential.
//
// A Session holds a single token slot backed by a pluggable Store. The
// token is overwritten on login and erased on logout or whenever the
// service rejects a request as unauthorized. Components read the token
// through the Session rather than ambient global state, so tests can
// swap in an in-memory store.
//
// # Usage
//
//	store, _ := session.DefaultFileStore()
//	sess, _ := session.New(store)
//	if sess.Authenticated() {
//	    // attach sess.Token() as a bearer credential
//	}
package session
