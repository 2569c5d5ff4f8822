/*
Package cash implements a fungible token ledger.

Each token is identified by its contract address. The ledger keeps a balance
per (token, holder) and an allowance per (token, owner, spender). A spender
can pull tokens from an owner with TransferFrom, up to the allowance the
owner granted. An allowance equal to the maximum uint256 value never
decreases.

There is no logic in the tokens, except that a balance may not go below
zero. Thus, this implementation is referred to as cash. Simple and safe.
*/
package cash
