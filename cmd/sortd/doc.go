// Command sortd sorts a watched directory into category buckets. It can run
// a single reconciliation pass, watch continuously, inspect the action
// journal, and bulk-clean a directory.
package main
