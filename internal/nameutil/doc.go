// Package nameutil normalizes free-text instructor names as they appear on
// schedule pages.
//
// Schedule exports are inconsistent about casing, punctuation, and middle
// names ("Smith, John A." vs "JOHN SMITH"). The helpers here produce the two
// canonical forms the rest of the pipeline relies on: a punctuation-free
// uppercase key used for cache and override lookups, and a {first, last}
// split used for candidate matching.
package nameutil
