package keys

import (
	"crypto/elliptic"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

/*
Node identities are based on elliptic curve cryptography. We chose the
secp256k1 curve because it is also used by Bitcoin and Ethereum, which means
that simulated identities look exactly like the ones a live deployment would
carry.
*/

//Parameters of the secp256k1 curve. They are used in other functions to verify
//that a private key is valid.
var (
	secp256k1N, _ = new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
)

//Curve returns an elliptic.Curve. We use btcsuite's golang implementation of
//secp256k1.
func Curve() elliptic.Curve {
	return btcec.S256() //secp256k1
}
