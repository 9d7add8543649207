/*
Package pacttest provides mocks and helpers shared by the tests of the pact
packages: a transaction with an asserted caller, a configurable message and
handler, and an iavl backed commit store.
*/
package pacttest
