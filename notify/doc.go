/*
Package notify contains the escrow.Releaser implementations used by the
node to announce settled releases.

LogReleaser writes the release instruction to the node log. RedisReleaser
appends every release to a Redis stream, where the service performing the
actual transfers consumes it.
*/
package notify
