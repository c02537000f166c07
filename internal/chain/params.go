package chain

import (
	"errors"

	"github.com/libsv/go-p2p/chaincfg/chainhash"
	"github.com/libsv/go-p2p/wire"
)

var ErrUnknownNet = errors.New("no genesis hash for network")

var (
	mainNetGenesisHash  = mustHash("000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f")
	testNet3GenesisHash = mustHash("000000000933ea01ad0ee984209779baaec3ced90fa3f408719526f8d77f4943")
	regTestGenesisHash  = mustHash("0f9188f13cb7b2c71f2a335e3a4fc328bf5beb436012afca590b1a11466e2206")
)

// GenesisHash returns the hash of the genesis block for the given
// network magic.
func GenesisHash(net wire.BitcoinNet) (*chainhash.Hash, error) {
	switch net {
	case wire.MainNet:
		return mainNetGenesisHash, nil
	case wire.TestNet3:
		return testNet3GenesisHash, nil
	case wire.TestNet:
		return regTestGenesisHash, nil
	default:
		return nil, ErrUnknownNet
	}
}

func mustHash(s string) *chainhash.Hash {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		panic(err)
	}
	return h
}
