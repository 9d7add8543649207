/*
Package app contains the ABCI application that serialises escrow calls.

StoreApp owns the committed state and answers Info, Query, InitChain and
Commit. BaseApp adds CheckTx and DeliverTx on top, decoding the transaction
envelope and dispatching it to a Handler, usually a Router wrapped in a
chain of decorators. After every commit the outbox Announcer hands the
releases of the committed block to a Releaser.
*/
package app
