// Package environment identifies the deployment (development, staging,
// production) and carries it through request contexts. The storefront uses
// it to pick the log format and to force Secure cookies outside
// development.
package environment
