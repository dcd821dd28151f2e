// Package cidutil derives content identifiers for stored slot bytes.
//
// Every checksum in this repository is a CIDv1 over the raw multicodec with a
// sha2-256 multihash, so slot contents are portable to any system speaking
// the same CID contract.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ContentCID returns the CIDv1 (raw + sha2-256) of data.
func ContentCID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// ContentCIDString returns the string form of ContentCID, or "" on error.
// multihash.Sum only errors for invalid inputs; with SHA2_256 and default
// length the error path should be unreachable.
func ContentCIDString(data []byte) string {
	id, err := ContentCID(data)
	if err != nil {
		return ""
	}
	return id.String()
}
