// Package api serves the JSON endpoints the admin frontend talks to, plus
// the favicon, extra static folders and the single-page application shell.
//
// Endpoints (mounted under /api):
//
//	GET  /page_layout/{path}  resolve and build a page
//	GET  /main_menu           menu filtered by the caller's tags
//	GET  /app_settings        application settings document
//	POST /upload              multipart file upload (field "upload")
//	POST /login               credential exchange
//	POST /page_action         invoke a registered callback
//
// Domain failures are returned as "Error" elements with an HTTP-like
// error_type ("403", "404", "501", "204", ...) and transport status 200.
// Recovered panics and rate-limited logins use their transport status too.
//
// Usage:
//
//	h, err := api.NewRouter(&api.Config{Pages: pages, Callbacks: reg, Signer: signer})
//	http.ListenAndServe(":8000", h)
package api
