// file: internals/middlewares/auth/session_middleware.go
package auth

import (
	"log"
	"time"

	helper "worknest_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/utils"
)

const (
	CookieName = "worknest_session"

	sessAdminID   = "admin_id"
	sessAdminName = "admin_name"
	sessWorkerID  = "worker_id"
)

type SessionOptions struct {
	TTL          time.Duration
	CookieSecure bool
	// nil keeps sessions in process memory
	Storage fiber.Storage
}

func NewSessionStore(opts SessionOptions) *session.Store {
	if opts.TTL <= 0 {
		opts.TTL = 12 * time.Hour
	}
	return session.New(session.Config{
		Expiration:     opts.TTL,
		Storage:        opts.Storage,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSecure:   opts.CookieSecure,
		CookieSameSite: "Lax",
	})
}

// Principal is whoever the session cookie belongs to.
type Principal struct {
	AdminID   string
	AdminName string
	WorkerID  string
}

func (p Principal) IsAdmin() bool { return p.AdminID != "" && p.WorkerID == "" }

// CanAccessWorker allows the owning admin or the worker itself.
func (p Principal) CanAccessWorker(adminID, workerID string) bool {
	if p.AdminID == "" || p.AdminID != adminID {
		return false
	}
	return p.WorkerID == "" || p.WorkerID == workerID
}

func sessString(sess *session.Session, key string) string {
	if v, ok := sess.Get(key).(string); ok {
		return v
	}
	return ""
}

// CurrentPrincipal reads the session; an absent session is the zero Principal.
func CurrentPrincipal(c *fiber.Ctx, store *session.Store) (Principal, error) {
	sess, err := store.Get(c)
	if err != nil {
		return Principal{}, err
	}
	return Principal{
		AdminID:   sessString(sess, sessAdminID),
		AdminName: sessString(sess, sessAdminName),
		WorkerID:  sessString(sess, sessWorkerID),
	}, nil
}

// SignIn replaces any previous session with a fresh id.
func SignIn(c *fiber.Ctx, store *session.Store, p Principal) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessAdminID, utils.ImmutableString(p.AdminID))
	sess.Set(sessAdminName, utils.ImmutableString(p.AdminName))
	if p.WorkerID != "" {
		sess.Set(sessWorkerID, utils.ImmutableString(p.WorkerID))
	} else {
		sess.Delete(sessWorkerID)
	}
	return sess.Save()
}

func SignOut(c *fiber.Ctx, store *session.Store) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// RequireAdmin redirects to "/" unless an admin is signed in.
func RequireAdmin(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := CurrentPrincipal(c, store)
		if err != nil {
			log.Printf("[ERROR] read session: %v", err)
			return c.Redirect("/")
		}
		if !p.IsAdmin() {
			return c.Redirect("/")
		}
		c.Locals(helper.LocAdminID, p.AdminID)
		c.Locals(helper.LocAdminName, p.AdminName)
		return c.Next()
	}
}

// RequireSignedIn lets any session through; handlers check worker scope.
func RequireSignedIn(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := CurrentPrincipal(c, store)
		if err != nil || p.AdminID == "" {
			return c.Redirect("/")
		}
		c.Locals(LocPrincipal, p)
		if p.IsAdmin() {
			c.Locals(helper.LocAdminID, p.AdminID)
			c.Locals(helper.LocAdminName, p.AdminName)
		}
		return c.Next()
	}
}

const LocPrincipal = "principal"

func PrincipalFromLocals(c *fiber.Ctx) Principal {
	p, _ := c.Locals(LocPrincipal).(Principal)
	return p
}
