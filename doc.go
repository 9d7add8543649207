/*

Package pact defines interfaces used throughout the escrow coordinator, such
as: storage, transactions, handlers, parties and addresses. It also contains
helpers to work with context and abci responses.

Look into this package to get a brief overview of the design decisions made
around interfaces and extension building blocks. The escrow state machine
itself lives in x/escrow.

*/

package pact
