/*
Package escrow implements a multi-party escrow coordinator.

A set of owners jointly author a bundle of terms. Each term is a conditional
transfer: the sender owes the receiver a specific asset. Once every owner
signed the bundle it can no longer be edited. Each sender then deposits the
exact asset its term requires, and when every term is satisfied the bundle
is executed: a release instruction is written to the outbox for every term
and the deposits are cleared, all in a single write.

Bundle lifecycle:

	EMPTY ──add_term──> DRAFTING ──add_term/remove_term──> DRAFTING
	DRAFTING ──sign(all owners)──> RATIFIED
	RATIFIED ──deposit(all terms satisfied)──> READY
	READY ──execute──> SETTLED ──reset──> DRAFTING

Releases are handed to an external Releaser by the Outbox after the block
that produced them was committed.
*/
package escrow
