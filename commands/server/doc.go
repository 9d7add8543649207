/*
Package server implements the init and start commands of the node binary.

init writes the application state into an existing tendermint genesis file
and creates a default node configuration. start loads the configuration,
builds the ABCI application and serves it over a socket until the process
is interrupted.
*/
package server
