// Package petstore contains the pet store contract tests themselves and their supporting API.
//
// The tests are data: a catalog of scenarios, each of which is run as one test named by its
// endpoint, its category and its description. Test harness infrastructure that is not specific
// to the pet store, such as test contexts, filtering and result reporting, is in the lower-level
// framework package.
package petstore
