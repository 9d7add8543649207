/*
Package errors implements custom error interfaces for pact.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when absolutely necessary. Every error returned by
the framework should wrap one of the root errors declared here, so that the
client can tell apart an authorization problem from a missing entity or a
bundle that is not yet ready for settlement.

If you want to register a custom root error, use Register(code, description).
To create an error instance, use ErrXyz.New and ErrXyz.Newf or wrap a root
error with Wrap and Wrapf.

Code stands for the ABCI error code, which allows to distinguish types of
errors on the client side and act accordingly.

Stack traces are attached at the point of the first wrap. Once you have an
error, use fmt to get more context:

	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
