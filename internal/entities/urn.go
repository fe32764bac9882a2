package entities

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// URNNamespace is the namespace segment of every identifier issued by this node.
const URNNamespace = "mehgu"

// Entity type segments used in URNs.
const (
	TypeSeries     = "series"
	TypeUnit       = "unit"
	TypeUser       = "user"
	TypeCollection = "collection"
	TypeComment    = "comment"
	TypeReport     = "report"
	TypePasskey    = "passkey"
)

// NewURN mints an identifier of the form urn:mehgu:<type>:<uuid>.
func NewURN(entityType string) string {
	return fmt.Sprintf("urn:%s:%s:%s", URNNamespace, entityType, uuid.NewString())
}

// URNType extracts the entity-type segment of a URN, or "" if the value is
// not a well-formed URN.
func URNType(urn string) string {
	parts := strings.Split(urn, ":")
	if len(parts) != 4 || parts[0] != "urn" {
		return ""
	}
	return parts[2]
}

// ValidURN reports whether the value has the urn:<ns>:<type>:<id> shape with
// no empty segments.
func ValidURN(urn string) bool {
	parts := strings.Split(urn, ":")
	if len(parts) != 4 || parts[0] != "urn" {
		return false
	}
	return parts[1] != "" && parts[2] != "" && parts[3] != ""
}
