// Package contract defines the data model of the conformance suite: scenarios, the categories
// they belong to, the assertions they make about a response, and the catalog that holds them.
//
// Nothing in this package talks to the network. A Scenario is plain data that the client package
// turns into an HTTP request and the verify package checks an Outcome against.
package contract
