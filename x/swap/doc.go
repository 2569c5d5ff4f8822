/*
Package swap implements a trustless escrow for exchanging bundles of fungible
and non-fungible tokens between two parties.

The asker publishes an Ask naming everything they give, everything they want
in return and the only party allowed to accept it. An ask is identified by
its fingerprint, the Keccak-256 hash of its canonical ABI encoding, so the
terms cannot change once published. Only the designated filler can fill an
active ask and only the asker can cancel it.

Filling an ask pulls every listed asset from its owner through the ledgers,
with the engine address as the spender. Both parties must have approved the
engine beforehand. Either every transfer happens and the ask becomes
inactive, or nothing changes at all.
*/
package swap
