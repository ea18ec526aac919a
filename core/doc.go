// Package core holds the authenticated REST invoker shared by every Watson
// service client: configuration layering, request descriptors, credential
// signing and the fault taxonomy. Service packages describe their operations
// declaratively and delegate every network call to an Invoker.
package core
