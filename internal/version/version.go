// Package version contains information on the current version of the
// toolkit. It is split from the commands for easy use by all of them.
package version

// Current is the string representing the current version of chef.
const Current = "0.1.0"
