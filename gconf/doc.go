/*
Package gconf implements a configuration store intended to be used as a
per-package, in-database configuration.

Each package keeps a single configuration object stored under the "_c:<pkg>"
key. The configuration is loaded from the "conf" section of the genesis file
with InitConfig and read back with Load.
*/
package gconf
