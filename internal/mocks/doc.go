// Package mocks provides test doubles for the store, service and auth
// interfaces. Store and service mocks use testify/mock; the auth doubles are
// function-field structs for simple stubbing.
package mocks
