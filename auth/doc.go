// Package auth carries caller identity through the admin API.
//
// The server keeps no session state. A successful login returns a signed
// token holding the display name, the authorization tags and opaque user
// info; the client replays it in the Authorization header and Middleware
// decodes it into an Identity on the request context. Requests without a
// valid token run as the anonymous identity, which has no tags.
package auth
