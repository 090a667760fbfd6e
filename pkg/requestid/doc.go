// Package requestid tags every storefront request with an id carried in the
// X-Request-ID header and the request context. LoggerExtractor feeds it to
// the logger so every record written while serving a request (cart persist
// failures, commerce retries, session checks) can be correlated.
package requestid
