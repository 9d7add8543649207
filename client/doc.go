/*
Package client talks to a pactd node through the tendermint RPC. It submits
binary transactions built by the MsgCodec and decodes query results into
models.
*/
package client
