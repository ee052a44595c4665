// Package page provides URL-addressable pages whose element trees are built
// per request.
//
// A page is registered once with a path such as "/users" and a Builder. The
// page set resolves incoming layout requests: an exact path match wins, and
// otherwise the first path segment selects the page and the remainder is
// handed to the builder as a sub-path:
//
//	set := page.NewSet()
//	set.Add(page.MustNew("/users", "Users", page.SubPathFunc(userDetail)))
//
//	m, ok := set.Resolve("users/42") // m.Page.Path == "/users", m.SubPath == "42"
//
// Pages may require an authorization tag, checked against the caller's tags
// with Authorized before building.
package page
