// Package server provides HTTP routing, middleware, session cookies, and the
// LinkedIn feed web application.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Sessions
//
// [Sessions] signs the browser session cookie as an HS256 JWT carrying the
// LinkedIn member ID. Access tokens stay server side in the session store;
// the cookie only identifies which record belongs to the request.
//
// [Sessions.Middleware] resolves the cookie into a member ID on the request
// context, where handlers read it with [MemberID]. Requests without a valid
// session pass through so public pages keep working.
//
// # Web Application
//
// [App] holds the route handlers: the feed page, the login redirect, the
// OAuth callback, post creation, refresh, and logout. Each login issues a
// fresh random state stored in a short-lived cookie and validated when the
// provider redirects back.
//
// Pages render from templates embedded in the views directory; [Assets]
// serves the embedded stylesheets under /static/.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the authorization code callback for CLI flows.
// When the user runs `lix auth login`, a temporary HTTP server starts on the
// redirect URI's port, handles the callback, and shuts down after delivering
// the token through the result channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
