// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"sync"
)

// rsa2048Modulus is the RSA-2048 factoring challenge number used as the
// zerocoin accumulator modulus on every network.
const rsa2048Modulus = "2519590847565789349402718324004839857142928212620403202777713783" +
	"6043662020707595556264018525880784406918290641249515082189298559" +
	"1491761845028084891200728449926873928072877767359714183472702618" +
	"9637501497182469116507761337985909570009733045974880842840179742" +
	"9100642458691817195118746121515172654632282216869987549182422433" +
	"6372590851418654620435767984233871847744479207399342365848238242" +
	"8119816381501067481045166037730605620161967625613384414360383390" +
	"4414952634432190114657544454178424020924616515723350778707749817" +
	"1257724679629263863563732899121548314381678998850404453640235273" +
	"81951378636564391212010397122822120720357"

// ZerocoinParams holds the group parameters the zerocoin accumulator is built
// on.
type ZerocoinParams struct {
	// Modulus is the accumulator RSA modulus.
	Modulus *big.Int

	// SecurityLevel is the default number of proof repetitions.
	SecurityLevel int32
}

// zerocoinMemo lazily decodes both readings of the modulus once.
type zerocoinMemo struct {
	once sync.Once
	v1   *ZerocoinParams
	v2   *ZerocoinParams
}

// ZerocoinParams returns the zerocoin accumulator parameters.  Version 1 coins
// were minted against the modulus string read as hexadecimal while version 2
// coins use its decimal value.  Both are decoded on first use and shared by
// every later call.
//
// This function is safe for concurrent access.
func (p *Params) ZerocoinParams(useV1 bool) *ZerocoinParams {
	memo := p.zerocoin
	if memo == nil {
		memo = new(zerocoinMemo)
	}
	memo.once.Do(func() {
		v1, ok := new(big.Int).SetString(p.Zerocoin.Modulus, 16)
		if !ok {
			panic("invalid zerocoin modulus: " + p.Zerocoin.Modulus)
		}
		v2, ok := new(big.Int).SetString(p.Zerocoin.Modulus, 10)
		if !ok {
			panic("invalid zerocoin modulus: " + p.Zerocoin.Modulus)
		}
		level := p.Zerocoin.DefaultSecurityLevel
		memo.v1 = &ZerocoinParams{Modulus: v1, SecurityLevel: level}
		memo.v2 = &ZerocoinParams{Modulus: v2, SecurityLevel: level}
	})
	if useV1 {
		return memo.v1
	}
	return memo.v2
}
