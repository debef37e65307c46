// Package web serves the browser-facing login, signup and profile pages.
//
// Pages are rendered server side. Each form post runs the same validation
// and submission flow used for HTMX field-change posts, and the bearer
// token returned by the account backend stays in server-side session storage
// keyed by the browser session cookie.
package web
