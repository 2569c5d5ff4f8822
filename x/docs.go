/*
Package x contains the pieces shared by all swapsies extensions.

Sub-packages implement the ledgers (cash, nft) and the swap engine itself.
This package provides the glue between them: the Authenticator used to learn
who is calling and helpers to persist models.
*/
package x
