// Package cmd provides the subcommands of the slip command line interface.
package cmd

// CacheIdentifier is the kong variable identifier containing the path to
// the runtime cache directory.
var CacheIdentifier = "cache"
