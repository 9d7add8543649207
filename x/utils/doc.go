/*
Package utils contains the decorators every escrow handler stack is built
with: panic recovery, transaction logging, savepoints that drop the writes
of a failed transaction, and the action tagger that makes transactions
searchable by message path.
*/
package utils
