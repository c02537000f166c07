package validator

import (
	"errors"
	"fmt"
	"math"

	"github.com/libsv/go-p2p/chaincfg/chainhash"
	"github.com/libsv/go-p2p/wire"
)

const (
	maxBlockSize   = 32 * 1024 * 1024
	maxTxSize      = 1 * 1024 * 1024
	maxSatoshis    = 21_000_000_0000_0000
	minTxSizeBytes = 61
)

var (
	ErrNoInputsOrOutputs  = errors.New("transaction has no inputs or outputs")
	ErrTxOutputInvalid    = errors.New("transaction output value is out of range")
	ErrTxCoinbaseInput    = errors.New("transaction spends a null previous outpoint")
	ErrEmptyBlock         = errors.New("block has no transactions")
	ErrFirstTxNotCoinbase = errors.New("first transaction in block is not a coinbase")
	ErrMultipleCoinbase   = errors.New("block has more than one coinbase")

	ErrTxSizeLessThanMinSize   = fmt.Errorf("transaction size in bytes is less than %d bytes", minTxSizeBytes)
	ErrTxSizeGreaterThanMax    = fmt.Errorf("transaction size in bytes is greater than %d bytes", maxTxSize)
	ErrBlockSizeGreaterThanMax = fmt.Errorf("block size in bytes is greater than %d bytes", maxBlockSize)
)

// DefaultValidator applies the context-free sanity checks that gate
// relay: structural limits only, no UTXO lookups and no script
// execution.
type DefaultValidator struct{}

func New() *DefaultValidator {
	return &DefaultValidator{}
}

// ValidateTx checks a transaction received from a peer before it is
// accepted for further processing.
func (v *DefaultValidator) ValidateTx(tx *wire.MsgTx) error {
	if len(tx.TxIn) == 0 || len(tx.TxOut) == 0 {
		return ErrNoInputsOrOutputs
	}

	size := tx.SerializeSize()
	if size < minTxSizeBytes {
		return ErrTxSizeLessThanMinSize
	}
	if size > maxTxSize {
		return ErrTxSizeGreaterThanMax
	}

	// Coinbase transactions are only valid inside a block.
	for _, in := range tx.TxIn {
		if isNullOutpoint(&in.PreviousOutPoint) {
			return ErrTxCoinbaseInput
		}
	}

	return checkOutputValues(tx)
}

// ValidateBlock checks a block received from a peer: structure and
// size limits, exactly one leading coinbase, and per-transaction
// sanity for the remainder.
func (v *DefaultValidator) ValidateBlock(block *wire.MsgBlock) error {
	if len(block.Transactions) == 0 {
		return ErrEmptyBlock
	}

	if block.SerializeSize() > maxBlockSize {
		return ErrBlockSizeGreaterThanMax
	}

	if !isCoinbase(block.Transactions[0]) {
		return ErrFirstTxNotCoinbase
	}
	if err := checkOutputValues(block.Transactions[0]); err != nil {
		return err
	}

	for _, tx := range block.Transactions[1:] {
		if isCoinbase(tx) {
			return ErrMultipleCoinbase
		}
		if err := v.ValidateTx(tx); err != nil {
			return err
		}
	}

	return nil
}

func checkOutputValues(tx *wire.MsgTx) error {
	total := int64(0)
	for _, out := range tx.TxOut {
		if out.Value < 0 || out.Value > maxSatoshis {
			return ErrTxOutputInvalid
		}
		total += out.Value
		if total > maxSatoshis {
			return ErrTxOutputInvalid
		}
	}
	return nil
}

func isCoinbase(tx *wire.MsgTx) bool {
	return len(tx.TxIn) == 1 && isNullOutpoint(&tx.TxIn[0].PreviousOutPoint)
}

func isNullOutpoint(op *wire.OutPoint) bool {
	return op.Index == math.MaxUint32 && op.Hash == (chainhash.Hash{})
}
