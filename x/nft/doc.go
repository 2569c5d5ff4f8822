/*
Package nft provides a ledger of non-fungible tokens.

Every item is identified by the address of its collection and a 256 bit id.
An item has exactly one owner. The owner can approve one address to move a
single item, or make another address an operator for all their items in a
collection. Any approved party can pull an item with TransferFrom, which
also clears the item approval.
*/
package nft
