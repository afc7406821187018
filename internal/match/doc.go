// Package match picks the best rating-site candidate for a free-text
// instructor name. It is pure and deterministic: same name and same candidate
// set always yield the same choice.
package match
