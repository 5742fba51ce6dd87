// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/beetlecoin/beetled/wire"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	btcwire "github.com/btcsuite/btcd/wire"
)

const (
	// FileName is the name of the payments file in the data directory.
	FileName = "mnpayments.dat"

	// magicMessage starts every payments file.
	magicMessage = "MasternodePayments"

	// filePver is the protocol version the payments file is encoded with.
	filePver = wire.ProtocolVersion

	// maxScriptSize bounds the payee scripts read from the payments file.
	maxScriptSize = wire.MaxPayeeScriptSize
)

// ReadResult enumerates the outcomes of reading the payments file.
type ReadResult int

// These constants define the outcomes of reading the payments file.
const (
	ReadOk ReadResult = iota
	ReadFileError
	ReadHashReadError
	ReadIncorrectHash
	ReadIncorrectMagicMessage
	ReadIncorrectMagicNumber
	ReadIncorrectFormat
)

var readResultStrings = map[ReadResult]string{
	ReadOk:                    "Ok",
	ReadFileError:             "FileError",
	ReadHashReadError:         "HashReadError",
	ReadIncorrectHash:         "IncorrectHash",
	ReadIncorrectMagicMessage: "IncorrectMagicMessage",
	ReadIncorrectMagicNumber:  "IncorrectMagicNumber",
	ReadIncorrectFormat:       "IncorrectFormat",
}

// String returns the ReadResult in human-readable form.
func (r ReadResult) String() string {
	if s, ok := readResultStrings[r]; ok {
		return s
	}
	return fmt.Sprintf("Unknown ReadResult (%d)", int(r))
}

// ReadResultOf returns the outcome of a read of the payments file that
// returned err.
func ReadResultOf(err error) ReadResult {
	switch {
	case err == nil:
		return ReadOk
	case errors.Is(err, ErrFileError):
		return ReadFileError
	case errors.Is(err, ErrHashRead):
		return ReadHashReadError
	case errors.Is(err, ErrIncorrectHash):
		return ReadIncorrectHash
	case errors.Is(err, ErrIncorrectMagicMessage):
		return ReadIncorrectMagicMessage
	case errors.Is(err, ErrIncorrectMagicNumber):
		return ReadIncorrectMagicNumber
	}
	return ReadIncorrectFormat
}

// DB is the payments file of a network.
type DB struct {
	path   string
	params *chaincfg.Params
}

// NewDB returns the payments file in dataDir.
func NewDB(dataDir string, params *chaincfg.Params) *DB {
	return &DB{
		path:   filepath.Join(dataDir, FileName),
		params: params,
	}
}

// Path returns the path of the payments file.
func (db *DB) Path() string {
	return db.path
}

// Write replaces the payments file with the votes and blocks of p.
func (db *DB) Write(p *Payments) error {
	start := time.Now()

	var buf bytes.Buffer
	if err := btcwire.WriteVarString(&buf, filePver, magicMessage); err != nil {
		return err
	}
	magic := db.params.Net.Magic()
	buf.Write(magic[:])
	if err := p.encode(&buf); err != nil {
		return err
	}
	hash := chainhash.DoubleHashH(buf.Bytes())
	buf.Write(hash[:])

	if err := os.WriteFile(db.path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", db.path, err)
	}
	log.Debugf("Written info to %s  %v", FileName, time.Since(start))
	return nil
}

// Read verifies the payments file and loads its votes and blocks into p,
// replacing what p held, before cleaning the old votes.  A dry run only
// verifies the file and leaves p untouched.
func (db *DB) Read(p *Payments, dryRun bool) error {
	start := time.Now()

	data, err := os.ReadFile(db.path)
	if err != nil {
		str := fmt.Sprintf("failed to open file %s: %v", db.path, err)
		return paymentError(ErrFileError, str)
	}
	if len(data) < chainhash.HashSize {
		str := fmt.Sprintf("%s is too short to hold a checksum", db.path)
		return paymentError(ErrHashRead, str)
	}

	payload := data[:len(data)-chainhash.HashSize]
	var hashIn chainhash.Hash
	copy(hashIn[:], data[len(payload):])
	if hash := chainhash.DoubleHashH(payload); hash != hashIn {
		return paymentError(ErrIncorrectHash, "checksum mismatch, data corrupted")
	}

	r := bytes.NewReader(payload)
	msg, err := btcwire.ReadVarString(r, filePver)
	if err != nil {
		str := fmt.Sprintf("unable to read the magic message: %v", err)
		return paymentError(ErrIncorrectFormat, str)
	}
	if msg != magicMessage {
		return paymentError(ErrIncorrectMagicMessage,
			"invalid masternode payment cache magic message")
	}

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		str := fmt.Sprintf("unable to read the network magic: %v", err)
		return paymentError(ErrIncorrectFormat, str)
	}
	if magic != db.params.Net.Magic() {
		return paymentError(ErrIncorrectMagicNumber, "invalid network magic number")
	}

	votes, blocks, err := decodePayments(r)
	if err != nil {
		if !dryRun {
			p.clear()
		}
		str := fmt.Sprintf("unable to decode %s: %v", FileName, err)
		return paymentError(ErrIncorrectFormat, str)
	}
	if dryRun {
		log.Debugf("Verified %s (%d votes, %d blocks)  %v", FileName,
			len(votes), len(blocks), time.Since(start))
		return nil
	}
	p.load(votes, blocks)

	log.Debugf("Loaded info from %s  %v", FileName, time.Since(start))
	log.Debugf("  %v", p)
	log.Debugf("Masternode payments manager - cleaning....")
	p.Clean()
	log.Debugf("Masternode payments manager - result: %v", p)
	return nil
}

// encode writes the votes and blocks of p.
func (p *Payments) encode(w io.Writer) error {
	p.votesMtx.RLock()
	defer p.votesMtx.RUnlock()
	p.blocksMtx.RLock()
	defer p.blocksMtx.RUnlock()

	if err := btcwire.WriteVarInt(w, filePver, uint64(len(p.votes))); err != nil {
		return err
	}
	for _, vote := range p.votes {
		if err := vote.BtcEncode(w, filePver, btcwire.BaseEncoding); err != nil {
			return err
		}
		if err := writeUint32(w, vote.PayeeLevel); err != nil {
			return err
		}
	}

	if err := btcwire.WriteVarInt(w, filePver, uint64(len(p.blocks))); err != nil {
		return err
	}
	for height, bp := range p.blocks {
		if err := writeUint32(w, uint32(height)); err != nil {
			return err
		}
		payees := bp.Payees()
		if err := btcwire.WriteVarInt(w, filePver, uint64(len(payees))); err != nil {
			return err
		}
		for i := range payees {
			payee := &payees[i]
			if err := writeUint32(w, payee.Level); err != nil {
				return err
			}
			if err := btcwire.WriteVarBytes(w, filePver, payee.Script); err != nil {
				return err
			}
			if err := writeUint32(w, uint32(payee.Votes)); err != nil {
				return err
			}
		}
	}
	return nil
}

// decodePayments reads the votes and blocks written by encode.
func decodePayments(r *bytes.Reader) (map[chainhash.Hash]*Winner, map[int32]*BlockPayees, error) {
	numVotes, err := btcwire.ReadVarInt(r, filePver)
	if err != nil {
		return nil, nil, err
	}
	votes := make(map[chainhash.Hash]*Winner)
	for i := uint64(0); i < numVotes; i++ {
		var w Winner
		if err := w.BtcDecode(r, filePver, btcwire.BaseEncoding); err != nil {
			return nil, nil, err
		}
		if w.PayeeLevel, err = readUint32(r); err != nil {
			return nil, nil, err
		}
		votes[w.Hash()] = &w
	}

	numBlocks, err := btcwire.ReadVarInt(r, filePver)
	if err != nil {
		return nil, nil, err
	}
	blocks := make(map[int32]*BlockPayees)
	for i := uint64(0); i < numBlocks; i++ {
		height, err := readUint32(r)
		if err != nil {
			return nil, nil, err
		}
		bp := newBlockPayees(int32(height))
		numPayees, err := btcwire.ReadVarInt(r, filePver)
		if err != nil {
			return nil, nil, err
		}
		for j := uint64(0); j < numPayees; j++ {
			level, err := readUint32(r)
			if err != nil {
				return nil, nil, err
			}
			script, err := btcwire.ReadVarBytes(r, filePver, maxScriptSize,
				"payee script")
			if err != nil {
				return nil, nil, err
			}
			count, err := readUint32(r)
			if err != nil {
				return nil, nil, err
			}
			bp.AddPayee(level, script, int32(count))
		}
		blocks[bp.Height] = bp
	}

	if r.Len() != 0 {
		return nil, nil, fmt.Errorf("%d trailing bytes", r.Len())
	}
	return votes, blocks, nil
}

// load replaces the votes and blocks of p.
func (p *Payments) load(votes map[chainhash.Hash]*Winner, blocks map[int32]*BlockPayees) {
	p.votesMtx.Lock()
	defer p.votesMtx.Unlock()
	p.blocksMtx.Lock()
	defer p.blocksMtx.Unlock()

	p.votes = votes
	p.blocks = blocks
	p.cfg.Metrics.SetVotes(len(votes))
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// DumpPayments writes p to the payments file after making sure the existing
// file, if any, is a payments file that can be overwritten.
func DumpPayments(db *DB, p *Payments) error {
	start := time.Now()

	log.Debugf("Verifying %s format...", FileName)
	err := db.Read(p, true)
	switch ReadResultOf(err) {
	case ReadOk:
	case ReadFileError:
		log.Debugf("Missing payments file - %s, will try to recreate", FileName)
	case ReadIncorrectFormat:
		log.Debugf("Error reading %s: magic is ok but data has invalid "+
			"format, will try to recreate", FileName)
	default:
		log.Errorf("Error reading %s: file format is unknown or invalid, "+
			"please fix it manually", FileName)
		return err
	}

	log.Debugf("Writing info to %s...", FileName)
	if err := db.Write(p); err != nil {
		return err
	}
	log.Debugf("Payments dump finished  %v", time.Since(start))
	return nil
}

// LoadPayments loads the payments file into p and removes the votes that
// became too old.
func LoadPayments(db *DB, p *Payments) error {
	return db.Read(p, false)
}
