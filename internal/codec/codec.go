// Package codec implements the state codec: it turns a nested user document
// into a transportable, optionally PIN-encrypted, backward-compatible token
// and back.
//
// Encoding runs Prune -> key compaction -> JSON -> (encryption) ->
// compression and prepends a format tag. Decoding branches on the tag and
// reverses the chain. The codec never panics across its boundary; all
// failure modes are sentinel errors from internal/common, matched with
// errors.Is:
//
//	ErrEncodeFailure     the document could not be serialized
//	ErrMalformedToken    unrecognized tag, or unparseable after decompression
//	ErrPasswordRequired  encrypted token, no password given
//	ErrIncorrectPassword decryption produced no usable plaintext
package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lovelab-app/lovelab/internal/common"
)

// Tag is the token format discriminant. The set is closed: anything outside
// it is a legacy or foreign token the codec refuses to guess about.
type Tag string

const (
	// TagRaw marks a compressed, unencrypted token.
	TagRaw Tag = "raw"
	// TagEnc marks a token whose payload was encrypted before compression.
	TagEnc Tag = "enc"
)

const tagSeparator = "_"

// ParseTag splits a token into its tag and payload. ok is false when the
// prefix is not a recognized tag, which callers treat as a legacy token.
func ParseTag(token string) (tag Tag, payload string, ok bool) {
	head, rest, found := strings.Cut(token, tagSeparator)
	if !found {
		return "", "", false
	}
	switch Tag(head) {
	case TagRaw, TagEnc:
		return Tag(head), rest, true
	default:
		return "", "", false
	}
}

// Encode turns a document into a token. With an empty password the result
// is tagged raw; otherwise the serialized document is encrypted first and
// the result is tagged enc. Encoding is lossy only with respect to
// emptiness: Decode(Encode(d, p), p) == Prune(d).
func Encode(doc map[string]any, password string) (string, error) {
	compacted := compact(Prune(doc))

	plaintext, err := json.Marshal(compacted)
	if err != nil {
		// Unreachable for documents of the supported shape, but the
		// boundary contract is a failure value, not a panic.
		return "", fmt.Errorf("%w: %v", common.ErrEncodeFailure, err)
	}

	tag := TagRaw
	payload := plaintext
	if password != "" {
		payload, err = encryptText(plaintext, password)
		if err != nil {
			return "", fmt.Errorf("%w: %v", common.ErrEncodeFailure, err)
		}
		tag = TagEnc
	}

	compressed, err := deflateToURLSafe(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrEncodeFailure, err)
	}
	return string(tag) + tagSeparator + compressed, nil
}

// Decode reconstructs the document carried by a token.
//
// An encrypted token with no password returns ErrPasswordRequired before any
// decompression is attempted, so the caller learns nothing about the payload
// without the PIN. Resolving untagged legacy tokens is the caller's concern
// (see the share package); here they are malformed.
func Decode(token, password string) (map[string]any, error) {
	tag, payload, ok := ParseTag(token)
	if !ok {
		return nil, common.ErrMalformedToken
	}
	if tag == TagEnc && password == "" {
		return nil, common.ErrPasswordRequired
	}

	data, err := inflateFromURLSafe(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}

	if tag == TagEnc {
		data, err = decryptText(data, password)
		if err != nil {
			return nil, err
		}
	}

	var compacted map[string]any
	if err := json.Unmarshal(data, &compacted); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}

	doc, _ := expand(compacted).(map[string]any)
	return doc, nil
}
