// Package keys implements the public key cryptography used to identify
// simulated nodes.
//
// Every node in a simulation owns a cryptographic key-pair, exactly like the
// participants of a live network. The public key is the node's identity; a
// compact uint32 form of it ties log lines and run records back to a node.
//
// We use elliptic curve cryptography (ECDSA) with the secp256k1 curve. We
// chose the secp256k1 curve because it is also used by Bitcoin and Ethereum,
// so simulated populations carry the same kind of identities as production
// networks.
package keys
