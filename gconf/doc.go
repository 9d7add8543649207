/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object, a protobuf message that can
validate itself, under the "_c:<package>" key. The object is loaded from the
genesis file "conf" section and read back by the handlers.
*/
package gconf
