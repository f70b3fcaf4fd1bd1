// Package devigo is a Go client for the Devigo agency REST API. It covers
// the admin back-office surface: authentication, services, projects, team
// members, contact inquiries, site settings, and image uploads.
//
// # Client Creation
//
// Configuration comes from the environment via [config.Load], or a
// [config.Config] assembled by hand:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal().Err(err).Msg("Configuration error")
//	}
//	client, err := devigo.New(cfg)
//	if err != nil {
//	    log.Fatal().Err(err).Msg("Client error")
//	}
//
//	result, err := client.Auth.Login(ctx, auth.Credentials{
//	    Username: "admin",
//	    Password: "secret",
//	})
//
// # Sessions
//
// The session (access token, refresh token, cached profile) is persisted
// through a pluggable [sessionstore.Store]; file, in-memory, and Redis
// backends ship with the SDK. An expired access token is refreshed silently:
// a request failing with 401 triggers at most one token refresh and one
// retry, and the caller only observes the final outcome. When refresh is
// impossible or fails, the session is cleared so the application can route
// to login.
//
// # Error Handling
//
// Errors follow a fixed taxonomy:
//
//   - [transport.ErrTransport]: no response reached the client (offline).
//   - [transport.APIError]: the server answered with an error status; the
//     payload is preserved for field-level error display.
//   - [ErrInvalidID], [auth.ErrMissingCredentials],
//     [auth.ErrInvalidServerResponse]: local validation failures raised
//     before any network I/O.
//
// Use errors.Is / errors.As to branch:
//
//	var apiErr *transport.APIError
//	if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
//	    // not found
//	}
//
// # Response Normalization
//
// The backend is inconsistent about list envelopes and image references.
// The SDK absorbs that in [pkg/normalize]: every list call returns a
// [Page] with items in server order and a total count, image fields are
// resolved to absolute URLs, and the technologies field is always the
// canonical name map regardless of what shape the server sent.
//
// # Thread Safety
//
// A [Client] is safe for concurrent use. Independent requests are not
// coordinated beyond sharing the session singleton.
package devigo
