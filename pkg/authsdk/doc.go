/*
Package authsdk is a Go client for the Folio authentication service, and the
home of the wire types and error values the service itself writes.

# Credentials

The service authenticates browsers with two cookies: "sid" (a server side
session) and "token" (a signed JWT). SDKClient keeps a cookie jar, so one
client behaves like one browser:

	client := authsdk.NewSDKClient("https://auth.example.com")

	_, err := client.Register(ctx, authsdk.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct-horse",
	})

	_, err = client.Login(ctx, "ada@example.com", "correct-horse")
	me, err := client.Me(ctx)

	err = client.Logout(ctx)

# Errors

Every failure is an *APIError carrying the HTTP status, a stable code and a
message. Compare against the predefined values with errors.Is:

	if errors.Is(err, authsdk.ErrUnauthenticated) {
		// log in again
	}

The server side uses the same values through APIError.WriteError.
*/
package authsdk
