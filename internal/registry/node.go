package registry

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/jroosing/tldclaim/internal/dns"
)

// RootNode is the node of the empty name.
var RootNode = common.Hash{}

// LabelHash is keccak256 of a single lowercased label.
func LabelHash(label string) common.Hash {
	return crypto.Keccak256Hash([]byte(strings.ToLower(label)))
}

// SubNode derives a child node: keccak256(parent || labelHash).
func SubNode(parent, labelHash common.Hash) common.Hash {
	return crypto.Keccak256Hash(parent.Bytes(), labelHash.Bytes())
}

// NameHash folds the labels of n from the root down.
//
//	namehash(".")        = 0x00…00
//	namehash("test.")    = keccak256(namehash(".") || keccak256("test"))
func NameHash(n dns.Name) common.Hash {
	node := RootNode
	for i := len(n) - 1; i >= 0; i-- {
		node = SubNode(node, LabelHash(n[i]))
	}
	return node
}
