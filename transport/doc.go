// Package transport provides the HTTP client shared by every EchoForge
// API component.
//
// The client is configured once with the service's base endpoint and a
// session. Every outgoing request reads the session's bearer credential;
// every 401 response purges the credential and invokes the configured
// unauthorized hook before the typed error is returned to the caller.
//
// # Usage
//
//	client, err := transport.New(transport.Config{
//	    BaseURL: "http://localhost:5000",
//	}, sess, transport.WithUnauthorizedHook(func() {
//	    // redirect the user to the login surface
//	}))
//
//	resp, err := client.Do(ctx, transport.Request{
//	    Method: http.MethodGet,
//	    Path:   "/status/" + jobID,
//	})
package transport
