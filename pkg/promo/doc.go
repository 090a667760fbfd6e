// Package promo keeps per-device promotional state: whether the promo modal
// was dismissed recently and the result of the discount wheel. Values live in
// a kvstore.Vault keyed by the device keyring, so state follows the browser
// rather than the account.
package promo
