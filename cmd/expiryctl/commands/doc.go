// Package commands implements the expiryctl command tree.
//
// expiryctl runs the expiry dashboard in a terminal. Preferences live in an
// INI file under the client id "local", so a terminal keeps its theme and
// date format across runs the way a browser does.
package commands
