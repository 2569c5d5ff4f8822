/*
Package errors implements the error kinds used across swapsies.

Every error returned by an engine operation wraps one of the root errors
declared here. Use Register(code, description) only when an extension needs a
kind that is not shared with other packages (see x/nft for an example).

Reuse errors with ErrXyz.New and ErrXyz.Newf, or add context to an existing
error with Wrap and Wrapf. The first wrap records a stacktrace, further wraps
only add a description.

Once you have an error, fmt verbs give you more context:
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created

Use Is to test for a kind. It follows Cause() chains and checks every member
of an error built with Append.
*/
package errors
