package node

import (
	"crypto/ecdsa"

	"github.com/mosaicnetworks/beaconsim/src/keys"
)

//Participant struct holds the identity of a simulated node: a secp256k1 key
//pair and a moniker
type Participant struct {
	Key     *ecdsa.PrivateKey
	Moniker string

	id       uint32
	pubBytes []byte
	pubHex   string
}

//NewParticipant is a factory method for a Participant
func NewParticipant(key *ecdsa.PrivateKey, moniker string) *Participant {
	return &Participant{
		Key:     key,
		Moniker: moniker,
	}
}

//ID returns a compact numerical ID for the participant
func (p *Participant) ID() uint32 {
	if p.id == 0 {
		p.id = keys.PublicKeyID(p.PublicKeyBytes())
	}
	return p.id
}

//PublicKeyBytes returns the participant's public key as a byte array
func (p *Participant) PublicKeyBytes() []byte {
	if len(p.pubBytes) == 0 {
		p.pubBytes = keys.FromPublicKey(&p.Key.PublicKey)
	}
	return p.pubBytes
}

//PublicKeyHex returns the participant's public key as a hex string
func (p *Participant) PublicKeyHex() string {
	if len(p.pubHex) == 0 {
		p.pubHex = keys.PublicKeyHex(&p.Key.PublicKey)
	}
	return p.pubHex
}
