// Copyright (c) 2019-2022 The Decred developers
// Copyright (c) 2018-2024 The BeetleCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package standalone provides standalone functions useful for working with the
BeetleCoin consensus rules.

The primary goal of offering these functions via a separate package is to keep
the required dependencies to a minimum as compared to the blockchain package so
that the chain parameters and lightweight tooling can use them directly.

# Function categories

The provided functions fall into the following categories:

  - Proof-of-work
  - Subsidy calculation

# Proof-of-work

  - Converting to and from the compact target difficulty representation
  - Calculating work values based on the compact target difficulty
  - Checking a block hash satisfies a target difficulty and that target
    difficulty is within a valid range

# Subsidy calculation

  - Block value for a given height
  - Masternode payment for a given height, tier and block value
  - Treasury award for a given height

# Errors

Errors returned by this package are of type standalone.RuleError.  This allows
the caller to differentiate between errors further up the call stack through
type assertions.  In addition, callers can programmatically determine the
specific rule violation by using errors.Is with the exported ErrorKind values.
*/
package standalone
