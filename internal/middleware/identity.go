package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	identityKey  = "identity"
	authErrorKey = "auth_error"
)

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID       string
	Username string
}

// String renders the identity as "<id>:<username>", or "anonymous" for a nil identity.
func (i *Identity) String() string {
	if i == nil {
		return "anonymous"
	}
	return i.ID + ":" + i.Username
}

// IdentityFrom returns the caller resolved by Authenticate, or nil when the
// request is anonymous.
func IdentityFrom(c *fiber.Ctx) *Identity {
	identity, _ := c.Locals(identityKey).(*Identity)
	return identity
}

func setIdentity(c *fiber.Ctx, identity *Identity) {
	c.Locals(identityKey, identity)
}
