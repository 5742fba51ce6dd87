// Copyright (c) 2015-2022 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package spork

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/beetlecoin/beetled/chaincfg"
	"github.com/beetlecoin/beetled/wire"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/syndtr/goleveldb/leveldb"
	ldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// dbName is the name of the spork database directory.
const dbName = "sporks"

// sporkKeyPrefix prefixes the keys of stored spork messages.  It is followed
// by the big-endian spork identifier.
var sporkKeyPrefix = []byte("spork")

func sporkKey(id ID) []byte {
	key := make([]byte, len(sporkKeyPrefix)+4)
	copy(key, sporkKeyPrefix)
	binary.BigEndian.PutUint32(key[len(sporkKeyPrefix):], uint32(id))
	return key
}

// convertLdbErr converts the passed leveldb error into a spork error that
// includes the passed description.
func convertLdbErr(ldbErr error, desc string) Error {
	switch {
	case ldberrors.IsCorrupted(ldbErr):
		desc = fmt.Sprintf("%s: database corruption: %v", desc, ldbErr)
	case errors.Is(ldbErr, leveldb.ErrClosed):
		desc = fmt.Sprintf("%s: database is closed", desc)
	default:
		desc = fmt.Sprintf("%s: %v", desc, ldbErr)
	}
	return sporkError(ErrSporkDatabase, desc)
}

// Store keeps the latest signed message of every spork, persisted to a
// leveldb database, and answers spork queries.
//
// The store is safe for concurrent access.
type Store struct {
	params *chaincfg.Params
	db     *leveldb.DB
	now    func() time.Time

	// key signs sporks updated locally.  It is nil unless the node holds
	// the spork key.
	key *secp256k1.PrivateKey

	mtx    sync.RWMutex
	active map[ID]*wire.MsgSpork
}

// Open loads (or creates when needed) the spork database in dataDir and
// returns a store holding the sporks it contains.
func Open(params *chaincfg.Params, dataDir string) (*Store, error) {
	dbPath := filepath.Join(dataDir, dbName)

	// The regression test network starts with default sporks on each run.
	if params.ID == chaincfg.NetRegTest {
		if _, err := os.Stat(dbPath); err == nil {
			log.Infof("Removing regression test spork database from '%s'",
				dbPath)
			_ = os.RemoveAll(dbPath)
		}
	}

	_ = os.MkdirAll(dataDir, 0700)
	opts := opt.Options{
		Strict:      opt.DefaultStrict,
		Compression: opt.NoCompression,
	}
	db, err := leveldb.OpenFile(dbPath, &opts)
	if err != nil {
		return nil, convertLdbErr(err, "failed to open spork database")
	}

	s := &Store{
		params: params,
		db:     db,
		now:    time.Now,
		active: make(map[ID]*wire.MsgSpork),
	}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}
	log.Infof("Loaded %d sporks from '%s'", len(s.active), dbPath)
	return s, nil
}

// load reads every stored spork message into memory.
func (s *Store) load() error {
	iter := s.db.NewIterator(util.BytesPrefix(sporkKeyPrefix), nil)
	defer iter.Release()
	for iter.Next() {
		var msg wire.MsgSpork
		err := msg.BtcDecode(bytes.NewReader(iter.Value()), wire.ProtocolVersion,
			0)
		if err != nil {
			log.Warnf("Skipping malformed spork entry %x: %v", iter.Key(), err)
			continue
		}
		if !ID(msg.ID).IsKnown() {
			continue
		}
		s.active[ID(msg.ID)] = &msg
	}
	if err := iter.Error(); err != nil {
		return convertLdbErr(err, "failed to load sporks")
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return convertLdbErr(err, "failed to close spork database")
	}
	return nil
}

// SetSigningKey sets the private key used by Update.  The key must match the
// spork key of the network.
func (s *Store) SetSigningKey(key *secp256k1.PrivateKey) error {
	msg := NewMessage(MaxValue, 0, s.now(), key)
	if err := CheckSignature(s.params, msg, s.now()); err != nil {
		return fmt.Errorf("signing key does not match the spork key: %w", err)
	}
	s.mtx.Lock()
	s.key = key
	s.mtx.Unlock()
	return nil
}

// Process validates a spork message received from the network and, when it
// is newer than the one already known, stores it.
func (s *Store) Process(msg *wire.MsgSpork) error {
	id := ID(msg.ID)
	if !id.IsKnown() {
		str := fmt.Sprintf("unknown spork %d", msg.ID)
		return sporkError(ErrUnknownSpork, str)
	}

	s.mtx.RLock()
	prev, ok := s.active[id]
	s.mtx.RUnlock()
	if ok && prev.TimeSigned >= msg.TimeSigned {
		str := fmt.Sprintf("spork %v signed at %d is not newer than %d", id,
			msg.TimeSigned, prev.TimeSigned)
		return sporkError(ErrSporkSeen, str)
	}

	if err := CheckSignature(s.params, msg, s.now()); err != nil {
		return err
	}
	if err := s.store(msg); err != nil {
		return err
	}
	log.Infof("Spork %v set to %d (signed at %v)", id, msg.Value,
		time.Unix(msg.TimeSigned, 0))
	return nil
}

// store persists the message and makes it the active one of its spork.
func (s *Store) store(msg *wire.MsgSpork) error {
	var buf bytes.Buffer
	if err := msg.BtcEncode(&buf, wire.ProtocolVersion, 0); err != nil {
		return err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	// Another message may have been stored while the signature was
	// verified.
	id := ID(msg.ID)
	if prev, ok := s.active[id]; ok && prev.TimeSigned >= msg.TimeSigned {
		str := fmt.Sprintf("spork %v signed at %d is not newer than %d", id,
			msg.TimeSigned, prev.TimeSigned)
		return sporkError(ErrSporkSeen, str)
	}
	if err := s.db.Put(sporkKey(id), buf.Bytes(), nil); err != nil {
		return convertLdbErr(err, "failed to store spork")
	}
	s.active[id] = msg
	return nil
}

// Update signs a message setting the spork to value with the signing key and
// stores it.  The message is returned for relaying.
func (s *Store) Update(id ID, value int64) (*wire.MsgSpork, error) {
	s.mtx.RLock()
	key := s.key
	s.mtx.RUnlock()
	if key == nil {
		return nil, sporkError(ErrNoSporkKey, "no spork signing key")
	}
	if !id.IsKnown() {
		str := fmt.Sprintf("unknown spork %d", int32(id))
		return nil, sporkError(ErrUnknownSpork, str)
	}

	msg := NewMessage(id, value, s.now(), key)
	if err := s.Process(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Value returns the current value of the spork, falling back to its default
// when no message has been received.
func (s *Store) Value(id ID) int64 {
	s.mtx.RLock()
	msg, ok := s.active[id]
	s.mtx.RUnlock()
	if ok {
		return msg.Value
	}
	value := Default(id)
	if value == -1 {
		log.Debugf("Unknown spork %d queried", int32(id))
	}
	return value
}

// IsActive returns whether the spork value is a time in the past.
func (s *Store) IsActive(id ID) bool {
	value := s.Value(id)
	if value == -1 {
		return false
	}
	return value < s.now().Unix()
}

// Message returns the active message of the spork.
func (s *Store) Message(id ID) (*wire.MsgSpork, bool) {
	s.mtx.RLock()
	msg, ok := s.active[id]
	s.mtx.RUnlock()
	return msg, ok
}

// Messages returns the active message of every spork ordered by identifier,
// as sent in response to a getsporks request.
func (s *Store) Messages() []*wire.MsgSpork {
	s.mtx.RLock()
	msgs := make([]*wire.MsgSpork, 0, len(s.active))
	for _, msg := range s.active {
		msgs = append(msgs, msg)
	}
	s.mtx.RUnlock()
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].ID < msgs[j].ID })
	return msgs
}
