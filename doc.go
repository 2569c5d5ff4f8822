/*

Package swapsies defines the interfaces used throughout the swap engine, such as
storage, addresses, genesis options and serialization.
The extensions under x/ build on these: x/cash and x/nft are the asset ledgers,
x/swap is the ask lifecycle engine that exchanges bundles between two parties.
Look into this package to get a brief overview of the design decisions made
around interfaces and extension building blocks.

*/

package swapsies
